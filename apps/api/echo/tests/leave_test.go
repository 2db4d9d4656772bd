package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/vidyasetu/backend/apps/api/echo"
	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/leave"
	"github.com/vidyasetu/backend/core/user"
	"github.com/vidyasetu/backend/tests"
)

func Test_leaveApi_staff(t *testing.T) {
	f := setup(t)
	teacherToken := f.token(t, f.teacher)
	principalToken := f.token(t, f.principal)

	req, rec := newAuthRequest(http.MethodPost, "/v1/leaves/staff", teacherToken, marshalObj(t, leave.NewLeave{
		Type:  "Sick",
		Start: core.MustParseDate("2024-06-20"),
		End:   core.MustParseDate("2024-06-21"),
	}))
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var l leave.StaffLeave
	unmarshal(t, rec, &l)
	assert.Equal(t, leave.StatusPending, l.Status)

	runHTTPTests(t, f.app, []httpTest{
		{
			name: "end before start", method: http.MethodPost, path: "/v1/leaves/staff", token: teacherToken,
			body: marshalObj(t, leave.NewLeave{
				Type:  "Casual",
				Start: core.MustParseDate("2024-06-21"),
				End:   core.MustParseDate("2024-06-20"),
			}),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, map[string]string{"end_date": "end date cannot be before start date"}),
		},
		{
			name: "teachers cannot review", method: http.MethodPut, path: "/v1/leaves/staff/" + l.ID + "/review", token: teacherToken,
			body: marshalObj(t, leave.Review{Status: leave.StatusApproved}), wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden),
		},
		{
			name: "review", method: http.MethodPut, path: "/v1/leaves/staff/" + l.ID + "/review", token: principalToken,
			body:     marshalObj(t, leave.Review{Status: "APPROVED", Comment: "Get well soon"}),
			wantCode: http.StatusOK, wantData: marshalObj(t, SuccessResponse{Success: true}),
		},
		{
			name: "review unknown", method: http.MethodPut, path: "/v1/leaves/staff/nope/review", token: principalToken,
			body:     marshalObj(t, leave.Review{Status: leave.StatusRejected}),
			wantCode: http.StatusNotFound, wantData: marshalObj(t, errNoRow),
		},
	})

	req, rec = newAuthRequest(http.MethodGet, "/v1/leaves/staff/mine", teacherToken)
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []leave.StaffLeave
	unmarshal(t, rec, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, leave.StatusApproved, mine[0].Status)
	assert.Equal(t, "Get well soon", mine[0].PrincipalComment)
}

func Test_leaveApi_student(t *testing.T) {
	f := setup(t)
	other := testutil.CreateUser(t, f.users, f.sch.ID, "Kiran", "9000000005", pwd, user.RoleParent)
	asha := testutil.CreateStudent(t, f.students, f.sch.ID, "Asha", "5A", f.parent.ID)

	nsl := leave.NewStudentLeave{
		NewLeave: leave.NewLeave{
			Type:   "Fever",
			Start:  core.MustParseDate("2024-06-20"),
			End:    core.MustParseDate("2024-06-20"),
			Reason: "Doctor visit",
		},
		StudentID: asha.ID,
	}
	runHTTPTests(t, f.app, []httpTest{
		{
			name: "not their child", method: http.MethodPost, path: "/v1/leaves/students", token: f.token(t, other),
			body: marshalObj(t, nsl), wantCode: http.StatusNotFound, wantData: marshalObj(t, errNoRow),
		},
		{
			name: "teachers cannot apply", method: http.MethodPost, path: "/v1/leaves/students", token: f.token(t, f.teacher),
			body: marshalObj(t, nsl), wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden),
		},
	})

	req, rec := newAuthRequest(http.MethodPost, "/v1/leaves/students", f.token(t, f.parent), marshalObj(t, nsl))
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	req, rec = newAuthRequest(http.MethodGet, "/v1/leaves/students", f.token(t, f.principal))
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var leaves []leave.StudentLeave
	unmarshal(t, rec, &leaves)
	require.Len(t, leaves, 1)
	assert.Equal(t, "Asha", leaves[0].StudentName)
	assert.Equal(t, f.parent.ID, leaves[0].ParentID)
}
