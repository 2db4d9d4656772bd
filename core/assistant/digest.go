// Package assistant turns a user's live school data into a plain-text digest and answers
// questions about it through a language model.
package assistant

import (
	"fmt"
	"strings"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/attendance"
	"github.com/vidyasetu/backend/core/leave"
	"github.com/vidyasetu/backend/core/notice"
	"github.com/vidyasetu/backend/core/period"
)

const (
	FallbackNoContext   = "System: No user context available."
	FallbackUnavailable = "System: Unable to retrieve live school data at this moment."
)

// Context is the data a digest is built from. Empty sections are left out of the digest.
type Context struct {
	Today       core.Date
	Notices     []notice.Notice
	StaffLeaves []leave.StaffLeave
	Student     *StudentContext // parents and students asking about a student
	Submissions []period.Period // teachers only
}

type StudentContext struct {
	Attendance  attendance.Status // attendance.StatusPending when not marked
	ClassName   string            // empty skips the homework section
	Homework    []period.Period
	LatestLeave *leave.StudentLeave
}

// Build renders c. Sections are separated by a blank line and their items by a newline.
func Build(c Context) string {
	sections := []string{"TODAY'S DATE: " + c.Today.String()}

	if len(c.Notices) > 0 {
		lines := []string{"LATEST NOTICES:"}
		for _, n := range c.Notices {
			lines = append(lines, fmt.Sprintf("- [%s] %s: %s (For Date: %s)",
				strings.ToUpper(n.Category), n.Title, n.Message, n.Date))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if len(c.StaffLeaves) > 0 {
		lines := []string{"YOUR LEAVE STATUS:"}
		for _, l := range c.StaffLeaves {
			lines = append(lines, fmt.Sprintf("- Type: %s, Period: %s to %s, Status: %s (Note: %s)",
				l.Type, l.Start, l.End, strings.ToUpper(string(l.Status)), core.StringOr(l.PrincipalComment, "None")))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if st := c.Student; st != nil {
		sections = append(sections, attendanceLine(st.Attendance))
		if st.ClassName != "" {
			sections = append(sections, homeworkSection(st.ClassName, st.Homework))
		}
		if l := st.LatestLeave; l != nil {
			sections = append(sections, fmt.Sprintf("LATEST STUDENT LEAVE: %s is %s.", l.Type, strings.ToUpper(string(l.Status))))
		}
	}

	if len(c.Submissions) > 0 {
		lines := []string{"YOUR SUBMISSIONS TODAY:"}
		for _, p := range c.Submissions {
			lines = append(lines, fmt.Sprintf("- Period %d for %s (%s): %s", p.Number, p.ClassName, p.Subject, p.Homework))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	return strings.Join(sections, "\n\n")
}

func attendanceLine(status attendance.Status) string {
	if status == "" || status == attendance.StatusPending {
		return "TODAY'S ATTENDANCE: NOT MARKED YET."
	}
	return fmt.Sprintf("TODAY'S ATTENDANCE: %s.", strings.ToUpper(string(status)))
}

func homeworkSection(className string, periods []period.Period) string {
	if len(periods) == 0 {
		return fmt.Sprintf("TODAY'S CLASS HOMEWORK: No homework has been uploaded for %s today yet.", className)
	}
	lines := []string{fmt.Sprintf("TODAY'S CLASS HOMEWORK (%s):", className)}
	for _, p := range periods {
		lines = append(lines, fmt.Sprintf("- Period %d [%s by %s]: %s (Type: %s)",
			p.Number, p.Subject, p.Teacher(), p.Homework, p.HomeworkType))
	}
	return strings.Join(lines, "\n")
}
