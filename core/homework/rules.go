package homework

import (
	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/period"
	"github.com/vidyasetu/backend/core/student"
)

const unknownParent = "Unknown"

// Classify the homework of one student for a day. The first matching rule wins.
func Classify(scheduled, submitted int) Status {
	switch {
	case scheduled == 0:
		return StatusNoHomework
	case submitted >= scheduled:
		return StatusCompleted
	case submitted > 0:
		return StatusPartial
	default:
		return StatusPending
	}
}

// Summarize classifies every student against the periods scheduled for their class and their own submissions.
// periods and subs are expected to be for a single date.
func Summarize(students []student.Student, periods []period.Period, subs []Submission) Summary {
	scheduled := make(map[string]map[int]struct{})
	for _, p := range periods {
		if scheduled[p.ClassName] == nil {
			scheduled[p.ClassName] = make(map[int]struct{})
		}
		scheduled[p.ClassName][p.Number] = struct{}{}
	}
	submitted := make(map[string]int)
	for _, s := range subs {
		submitted[s.StudentID]++
	}

	summary := Summary{
		TotalStudents: len(students),
		Students:      make([]StudentStatus, 0, len(students)),
	}
	for _, st := range students {
		ss := StudentStatus{
			StudentID:          st.ID,
			StudentName:        st.Name,
			ClassName:          st.ClassName,
			ParentName:         core.StringOr(st.ParentName, unknownParent),
			TotalHomeworks:     len(scheduled[st.ClassName]),
			CompletedHomeworks: submitted[st.ID],
		}
		ss.Status = Classify(ss.TotalHomeworks, ss.CompletedHomeworks)

		switch ss.Status {
		case StatusCompleted:
			summary.FullyCompleted++
		case StatusPartial:
			summary.PartialCompleted++
		case StatusPending:
			summary.Pending++
		case StatusNoHomework:
		}
		summary.Students = append(summary.Students, ss)
	}
	return summary
}

// ParentView pairs each class period with the student's submission for it, pending when absent.
func ParentView(periods []period.Period, subs []Submission) []ParentItem {
	done := make(map[int]SubmissionStatus, len(subs))
	for _, s := range subs {
		done[s.PeriodNumber] = s.Status
	}
	items := make([]ParentItem, 0, len(periods))
	for _, p := range periods {
		status, ok := done[p.Number]
		if !ok || status == "" {
			status = SubmissionPending
		}
		items = append(items, ParentItem{
			ID:           p.ID,
			Period:       PeriodLabel(p.Number),
			Subject:      p.Subject,
			TeacherName:  p.Teacher(),
			Homework:     p.Homework,
			HomeworkType: p.HomeworkType,
			Status:       status,
		})
	}
	return items
}
