package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/vidyasetu/backend/apps/api/echo"
	"github.com/vidyasetu/backend/core/attendance"
	"github.com/vidyasetu/backend/core/homework"
	"github.com/vidyasetu/backend/core/period"
	"github.com/vidyasetu/backend/core/student"
	"github.com/vidyasetu/backend/core/user"
	"github.com/vidyasetu/backend/tests"
)

func Test_studentApi_access(t *testing.T) {
	f := setup(t)
	other := testutil.CreateUser(t, f.users, f.sch.ID, "Kiran", "9000000005", pwd, user.RoleParent)
	asha := testutil.CreateStudent(t, f.students, f.sch.ID, "Asha", "5A", f.parent.ID)

	runHTTPTests(t, f.app, []httpTest{
		{name: "own child", path: "/v1/students/" + asha.ID, token: f.token(t, f.parent), wantCode: http.StatusOK, wantData: marshalObj(t, mustGetStudent(t, f, asha.ID))},
		{name: "someone else's child", path: "/v1/students/" + asha.ID, token: f.token(t, other), wantCode: http.StatusNotFound, wantData: marshalObj(t, errNoRow)},
		{name: "staff of the school", path: "/v1/students/" + asha.ID, token: f.token(t, f.teacher), wantCode: http.StatusOK, wantData: marshalObj(t, mustGetStudent(t, f, asha.ID))},
		{name: "unknown", path: "/v1/students/nope", token: f.token(t, f.teacher), wantCode: http.StatusNotFound, wantData: marshalObj(t, errNoRow)},
		{name: "parents cannot list", path: "/v1/students", token: f.token(t, f.parent), wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden)},
	})
}

func mustGetStudent(t *testing.T, f fixture, id string) student.Student {
	st, err := f.students.GetStudent(ctx, id)
	require.NoError(t, err)
	return st
}

func Test_studentApi_createAndLink(t *testing.T) {
	f := setup(t)
	token := f.token(t, f.principal)

	req, rec := newAuthRequest(http.MethodPost, "/v1/students", token, marshalObj(t, student.NewStudent{
		SchoolID:  "ignored",
		Name:      " Bala ",
		ClassName: "6B",
	}))
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var st student.Student
	unmarshal(t, rec, &st)
	assert.Equal(t, f.sch.ID, st.SchoolID)
	assert.Equal(t, "Bala", st.Name)

	req, rec = newAuthRequest(http.MethodPut, "/v1/students/"+st.ID+"/link", token, marshalObj(t, student.Link{ParentUserID: f.parent.ID}))
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	req, rec = newAuthRequest(http.MethodGet, "/v1/students/children", f.token(t, f.parent))
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var kids []student.Student
	unmarshal(t, rec, &kids)
	require.Len(t, kids, 1)
	assert.Equal(t, st.ID, kids[0].ID)
}

func Test_attendanceApi(t *testing.T) {
	f := setup(t)
	teacherToken := f.token(t, f.teacher)
	asha := testutil.CreateStudent(t, f.students, f.sch.ID, "Asha", "5A", f.parent.ID)
	bala := testutil.CreateStudent(t, f.students, f.sch.ID, "Bala", "5A", "")

	batch := attendance.Batch{ClassName: "5A", Records: []attendance.Entry{
		{StudentID: asha.ID, Status: attendance.StatusPresent},
		{StudentID: bala.ID, Status: attendance.StatusAbsent},
	}}
	runHTTPTests(t, f.app, []httpTest{
		{
			name: "empty batch", method: http.MethodPost, path: "/v1/attendance", token: teacherToken,
			body:     marshalObj(t, attendance.Batch{ClassName: "5A", Records: []attendance.Entry{}}),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, map[string]string{"records": "records must contain at least 1 item"}),
		},
		{
			name: "parents cannot mark", method: http.MethodPost, path: "/v1/attendance", token: f.token(t, f.parent),
			body: marshalObj(t, batch), wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden),
		},
		{
			name: "submit", method: http.MethodPost, path: "/v1/attendance", token: teacherToken,
			body: marshalObj(t, batch), wantCode: http.StatusOK, wantData: marshalObj(t, SuccessResponse{Success: true}),
		},
		{name: "completed", path: "/v1/attendance/completed", token: teacherToken, wantCode: http.StatusOK, wantData: marshalList(t, "5A")},
		{
			name: "class", path: "/v1/attendance/class?class=5A", token: teacherToken, wantCode: http.StatusOK,
			wantData: marshalObj(t, map[string]attendance.Status{asha.ID: attendance.StatusPresent, bala.ID: attendance.StatusAbsent}),
		},
		{
			name: "bad date", path: "/v1/attendance/completed?date=15-06-2024", token: teacherToken,
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, map[string]string{"date": "must be a YYYY-MM-DD date"}),
		},
	})

	req, rec := newAuthRequest(http.MethodGet, "/v1/students/"+asha.ID+"/attendance", f.token(t, f.parent))
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []attendance.HistoryItem
	unmarshal(t, rec, &history)
	require.Len(t, history, 1)
	assert.Equal(t, attendance.StatusPresent, history[0].Status)
	assert.Equal(t, "Meena", history[0].MarkedByName)
}

func Test_homeworkFlow(t *testing.T) {
	f := setup(t)
	asha := testutil.CreateStudent(t, f.students, f.sch.ID, "Asha", "5A", f.parent.ID)
	parentToken := f.token(t, f.parent)

	req, rec := newAuthRequest(http.MethodPost, "/v1/periods", f.token(t, f.teacher), marshalObj(t, period.NewPeriod{
		Number:    3,
		ClassName: "5A",
		Subject:   "Maths",
		Homework:  "Ex 2.1",
	}))
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var p period.Period
	unmarshal(t, rec, &p)
	assert.Equal(t, period.DefaultHomeworkType, p.HomeworkType)

	items := func() []homework.ParentItem {
		req, rec := newAuthRequest(http.MethodGet, "/v1/students/"+asha.ID+"/homework", parentToken)
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var items []homework.ParentItem
		unmarshal(t, rec, &items)
		return items
	}

	got := items()
	require.Len(t, got, 1)
	assert.Equal(t, "Period 3", got[0].Period)
	assert.Equal(t, "Meena", got[0].TeacherName)
	assert.Equal(t, homework.SubmissionPending, got[0].Status)

	req, rec = newAuthRequest(http.MethodPost, "/v1/students/"+asha.ID+"/homework/done", parentToken,
		marshalObj(t, homework.MarkDone{Period: "Period 3"}))
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, homework.SubmissionCompleted, items()[0].Status)
}
