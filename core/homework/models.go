package homework

import (
	"regexp"
	"strconv"

	"github.com/vidyasetu/backend/core"
)

// Status classifies a student's homework for a day.
type Status string

const (
	StatusNoHomework Status = "no_homework"
	StatusCompleted  Status = "completed"
	StatusPartial    Status = "partial"
	StatusPending    Status = "pending"
)

// SubmissionStatus is the state of one period's homework for one student.
type SubmissionStatus string

const (
	SubmissionCompleted SubmissionStatus = "completed"
	SubmissionPending   SubmissionStatus = "pending"
)

// Submission is unique per (student, date, period number).
type Submission struct {
	ID           string           `json:"id"`
	StudentID    string           `json:"student_id"`
	Date         core.Date        `json:"date"`
	PeriodNumber int              `json:"period_number"`
	Status       SubmissionStatus `json:"status"`
}

type StudentStatus struct {
	StudentID          string `json:"student_id"`
	StudentName        string `json:"student_name"`
	ClassName          string `json:"class_name"`
	ParentName         string `json:"parent_name"`
	TotalHomeworks     int    `json:"total_homeworks"`
	CompletedHomeworks int    `json:"completed_homeworks"`
	Status             Status `json:"status"`
}

type Summary struct {
	TotalStudents    int             `json:"total_students"`
	FullyCompleted   int             `json:"fully_completed"`
	PartialCompleted int             `json:"partial_completed"`
	Pending          int             `json:"pending"`
	Students         []StudentStatus `json:"student_list"`
}

// ParentItem is one period of homework as shown to a parent.
type ParentItem struct {
	ID           string           `json:"id"`
	Period       string           `json:"period"`
	Subject      string           `json:"subject"`
	TeacherName  string           `json:"teacher_name"`
	Homework     string           `json:"homework"`
	HomeworkType string           `json:"homework_type"`
	Status       SubmissionStatus `json:"status"`
}

type MarkDone struct {
	StudentID string `json:"student_id" validate:"required"`
	Period    string `json:"period" validate:"required"`
}

// SubmissionFilter applies AND on the non-empty fields.
type SubmissionFilter struct {
	SchoolID  string
	StudentID string
	Date      core.Date
}

var nonDigits = regexp.MustCompile(`\D`)

// ParsePeriodLabel extracts the period number from a label such as "Period 3".
// Labels without a positive number map to period 1.
func ParsePeriodLabel(label string) int {
	n, err := strconv.Atoi(nonDigits.ReplaceAllString(label, ""))
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

// PeriodLabel is the inverse of ParsePeriodLabel.
func PeriodLabel(n int) string {
	return "Period " + strconv.Itoa(n)
}
