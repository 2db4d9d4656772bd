package tests

import (
	"net/http"
	"testing"

	. "github.com/vidyasetu/backend/apps/api/echo"
	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/attendance"
	"github.com/vidyasetu/backend/core/user"
	"github.com/vidyasetu/backend/tests"
)

func Test_attendanceApi_otherSchool(t *testing.T) {
	f := setup(t)
	other := testutil.CreateSchool(t, f.schools, "Hill Top", "HTS02", core.TodayIST().AddYears(1).Ptr())
	intruder := testutil.CreateUser(t, f.users, other.ID, "Vikram", "9000000010", pwd, user.RoleTeacher)
	asha := testutil.CreateStudent(t, f.students, f.sch.ID, "Asha", "5A", f.parent.ID)

	batch := attendance.Batch{ClassName: "5A", Records: []attendance.Entry{{StudentID: asha.ID, Status: attendance.StatusPresent}}}
	foreign := attendance.Batch{ClassName: "5A", Records: []attendance.Entry{{StudentID: asha.ID, Status: attendance.StatusAbsent}}}
	notInClass := marshalObj(t, map[string]string{"records": attendance.ErrNotInClass.Error()})

	runHTTPTests(t, f.app, []httpTest{
		{
			name: "own school", method: http.MethodPost, path: "/v1/attendance", token: f.token(t, f.teacher),
			body: marshalObj(t, batch), wantCode: http.StatusOK, wantData: marshalObj(t, SuccessResponse{Success: true}),
		},
		{
			name: "other school's student", method: http.MethodPost, path: "/v1/attendance", token: f.token(t, intruder),
			body: marshalObj(t, foreign), wantCode: http.StatusBadRequest, wantData: notInClass,
		},
		{
			name: "wrong class", method: http.MethodPost, path: "/v1/attendance", token: f.token(t, f.teacher),
			body:     marshalObj(t, attendance.Batch{ClassName: "6B", Records: foreign.Records}),
			wantCode: http.StatusBadRequest, wantData: notInClass,
		},
		{name: "completed is intact", path: "/v1/attendance/completed", token: f.token(t, f.principal), wantCode: http.StatusOK, wantData: marshalList(t, "5A")},
		{name: "intruder sees nothing", path: "/v1/attendance/completed", token: f.token(t, intruder), wantCode: http.StatusOK, wantData: marshalList(t)},
		{
			name: "status is intact", path: "/v1/attendance/class?class=5A", token: f.token(t, f.principal), wantCode: http.StatusOK,
			wantData: marshalObj(t, map[string]attendance.Status{asha.ID: attendance.StatusPresent}),
		},
	})
}
