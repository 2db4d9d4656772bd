package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/attendance"
	"github.com/vidyasetu/backend/core/leave"
	"github.com/vidyasetu/backend/core/notice"
	"github.com/vidyasetu/backend/core/period"
)

var today = core.MustParseDate("2024-01-15")

func TestBuild_onlyDate(t *testing.T) {
	assert.Equal(t, "TODAY'S DATE: 2024-01-15", Build(Context{Today: today}))
}

func TestBuild_staffLeave(t *testing.T) {
	got := Build(Context{
		Today: today,
		StaffLeaves: []leave.StaffLeave{{Request: leave.Request{
			Type:   "Sick",
			Start:  core.MustParseDate("2024-01-01"),
			End:    core.MustParseDate("2024-01-02"),
			Status: leave.StatusApproved,
		}}},
	})
	assert.Equal(t, "TODAY'S DATE: 2024-01-15\n\n"+
		"YOUR LEAVE STATUS:\n"+
		"- Type: Sick, Period: 2024-01-01 to 2024-01-02, Status: APPROVED (Note: None)", got)
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		c    Context
		want string
	}{
		{
			name: "notices",
			c: Context{Today: today, Notices: []notice.Notice{
				{Category: "Holiday", Title: "Pongal", Message: "School closed", Date: core.MustParseDate("2024-01-16")},
				{Category: "exam", Title: "Unit test", Message: "Maths on Friday", Date: core.MustParseDate("2024-01-19")},
			}},
			want: "TODAY'S DATE: 2024-01-15\n\n" +
				"LATEST NOTICES:\n" +
				"- [HOLIDAY] Pongal: School closed (For Date: 2024-01-16)\n" +
				"- [EXAM] Unit test: Maths on Friday (For Date: 2024-01-19)",
		},
		{
			name: "staff leave with comment",
			c: Context{Today: today, StaffLeaves: []leave.StaffLeave{{Request: leave.Request{
				Type:             "Casual",
				Start:            core.MustParseDate("2024-01-20"),
				End:              core.MustParseDate("2024-01-20"),
				Status:           leave.StatusRejected,
				PrincipalComment: "Exams week",
			}}}},
			want: "TODAY'S DATE: 2024-01-15\n\n" +
				"YOUR LEAVE STATUS:\n" +
				"- Type: Casual, Period: 2024-01-20 to 2024-01-20, Status: REJECTED (Note: Exams week)",
		},
		{
			name: "student not marked without class",
			c:    Context{Today: today, Student: &StudentContext{Attendance: attendance.StatusPending}},
			want: "TODAY'S DATE: 2024-01-15\n\nTODAY'S ATTENDANCE: NOT MARKED YET.",
		},
		{
			name: "student with empty class homework",
			c:    Context{Today: today, Student: &StudentContext{Attendance: attendance.StatusPresent, ClassName: "5A"}},
			want: "TODAY'S DATE: 2024-01-15\n\n" +
				"TODAY'S ATTENDANCE: PRESENT.\n\n" +
				"TODAY'S CLASS HOMEWORK: No homework has been uploaded for 5A today yet.",
		},
		{
			name: "student with homework and leave",
			c: Context{Today: today, Student: &StudentContext{
				Attendance: attendance.StatusAbsent,
				ClassName:  "5A",
				Homework: []period.Period{
					{Number: 1, Subject: "Maths", TeacherName: "Meena", Homework: "Ex 2.1", HomeworkType: "Manual"},
					{Number: 3, Subject: "Science", Homework: "Draw a leaf", HomeworkType: "AI"},
				},
				LatestLeave: &leave.StudentLeave{Request: leave.Request{Type: "Fever", Status: leave.StatusPending}},
			}},
			want: "TODAY'S DATE: 2024-01-15\n\n" +
				"TODAY'S ATTENDANCE: ABSENT.\n\n" +
				"TODAY'S CLASS HOMEWORK (5A):\n" +
				"- Period 1 [Maths by Meena]: Ex 2.1 (Type: Manual)\n" +
				"- Period 3 [Science by Teacher]: Draw a leaf (Type: AI)\n\n" +
				"LATEST STUDENT LEAVE: Fever is PENDING.",
		},
		{
			name: "teacher submissions",
			c: Context{Today: today, Submissions: []period.Period{
				{Number: 2, ClassName: "6B", Subject: "English", Homework: "Read chapter 4"},
			}},
			want: "TODAY'S DATE: 2024-01-15\n\n" +
				"YOUR SUBMISSIONS TODAY:\n" +
				"- Period 2 for 6B (English): Read chapter 4",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.c))
		})
	}
}
