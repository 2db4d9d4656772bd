package period

import (
	"github.com/go-playground/validator/v10"

	"github.com/vidyasetu/backend/core"
)

const (
	DefaultHomeworkType = "Manual"
	DefaultTeacherName  = "Teacher"
)

// Period is what a teacher taught in one period of a day. Unique per (teacher, date, number).
type Period struct {
	ID           string    `json:"id"`
	SchoolID     string    `json:"school_id"`
	TeacherID    string    `json:"teacher_user_id"`
	TeacherName  string    `json:"teacher_name,omitempty"` // read-only, joined from the teacher
	Date         core.Date `json:"date"`
	Number       int       `json:"period_number"`
	ClassName    string    `json:"class_name"`
	Subject      string    `json:"subject"`
	Lesson       string    `json:"lesson"`
	Homework     string    `json:"homework"`
	HomeworkType string    `json:"homework_type"`
}

// Teacher is the joined teacher name, or DefaultTeacherName.
func (p Period) Teacher() string {
	return core.StringOr(p.TeacherName, DefaultTeacherName)
}

type NewPeriod struct {
	Number       int    `json:"period_number" validate:"required,periods"`
	ClassName    string `json:"class_name" validate:"required,notblank"`
	Subject      string `json:"subject" validate:"required,notblank"`
	Lesson       string `json:"lesson"`
	Homework     string `json:"homework"`
	HomeworkType string `json:"homework_type"`
}

func (np *NewPeriod) Validate(validate *validator.Validate) error {
	np.ClassName = core.CleanString(np.ClassName)
	np.Subject = core.CleanString(np.Subject)
	np.Lesson = core.CleanString(np.Lesson)
	np.Homework = core.CleanString(np.Homework)
	np.HomeworkType = core.StringOr(core.CleanString(np.HomeworkType), DefaultHomeworkType)
	return validate.Struct(np)
}

// QueryFilter applies AND on the non-empty fields. Results are ordered by period number.
type QueryFilter struct {
	SchoolID  string
	TeacherID string
	ClassName string
	Date      core.Date
}
