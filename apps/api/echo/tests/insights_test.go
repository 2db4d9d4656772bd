package tests

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	. "github.com/vidyasetu/backend/apps/api/echo"
	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/analytics"
	"github.com/vidyasetu/backend/core/attendance"
	"github.com/vidyasetu/backend/core/user"
	"github.com/vidyasetu/backend/tests"
)

func Test_insightsApi_ask(t *testing.T) {
	f := setup(t)
	token := f.token(t, f.teacher)

	runHTTPTests(t, f.app, []httpTest{
		{
			name: "empty question", method: http.MethodPost, path: "/v1/assistant/ask", token: token,
			body:     marshalObj(t, Question{Question: "   "}),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, map[string]string{"question": "question cannot be empty"}),
		},
		{
			name: "answer", method: http.MethodPost, path: "/v1/assistant/ask", token: token,
			body:     marshalObj(t, Question{Question: " Any holidays? "}),
			wantCode: http.StatusOK, wantData: marshalObj(t, Answer{Answer: "answer to Any holidays?"}),
		},
	})

	f.model.err = errors.New("quota exceeded")
	runHTTPTests(t, f.app, []httpTest{
		{
			name: "model down", method: http.MethodPost, path: "/v1/assistant/ask", token: token,
			body:     marshalObj(t, Question{Question: "Any holidays?"}),
			wantCode: http.StatusServiceUnavailable, wantData: marshalObj(t, httpErr{Error: "assistant is not available right now"}),
		},
	})
	assert.Contains(t, f.logger.Messages(), "ERROR: asking assistant (asking model: quota exceeded)")
}

func Test_insightsApi_askAboutStudent(t *testing.T) {
	f := setup(t)
	other := testutil.CreateSchool(t, f.schools, "Hill Top", "HTS02", core.TodayIST().AddYears(1).Ptr())
	otherTeacher := testutil.CreateUser(t, f.users, other.ID, "Vikram", "9000000010", pwd, user.RoleTeacher)
	otherParent := testutil.CreateUser(t, f.users, other.ID, "Suresh", "9000000011", pwd, user.RoleParent)
	asha := testutil.CreateStudent(t, f.students, f.sch.ID, "Asha", "5A", f.parent.ID)
	dev := testutil.CreateStudent(t, f.students, other.ID, "Dev", "7C", otherParent.ID)

	runHTTPTests(t, f.app, []httpTest{
		{
			name: "mark other school", method: http.MethodPost, path: "/v1/attendance", token: f.token(t, otherTeacher),
			body:     marshalObj(t, attendance.Batch{ClassName: "7C", Records: []attendance.Entry{{StudentID: dev.ID, Status: attendance.StatusAbsent}}}),
			wantCode: http.StatusOK, wantData: marshalObj(t, SuccessResponse{Success: true}),
		},
		{
			name: "someone else's child", method: http.MethodPost, path: "/v1/assistant/ask", token: f.token(t, f.parent),
			body:     marshalObj(t, Question{Question: "Was my child present?", StudentID: dev.ID}),
			wantCode: http.StatusNotFound, wantData: marshalObj(t, errNoRow),
		},
	})
	assert.Empty(t, f.model.digest)

	runHTTPTests(t, f.app, []httpTest{
		{
			name: "own child", method: http.MethodPost, path: "/v1/assistant/ask", token: f.token(t, f.parent),
			body:     marshalObj(t, Question{Question: "Was my child present?", StudentID: asha.ID}),
			wantCode: http.StatusOK, wantData: marshalObj(t, Answer{Answer: "answer to Was my child present?"}),
		},
	})
	assert.Contains(t, f.model.digest, "TODAY'S ATTENDANCE: NOT MARKED YET.")
	assert.Contains(t, f.model.digest, "No homework has been uploaded for 5A today yet.")
	assert.NotContains(t, f.model.digest, "ABSENT")
}

func Test_insightsApi_teachers(t *testing.T) {
	f := setup(t)

	runHTTPTests(t, f.app, []httpTest{
		{
			name: "managers only", path: "/v1/analytics/teachers", token: f.token(t, f.teacher),
			wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden),
		},
		{
			name: "empty day", path: "/v1/analytics/teachers?date=2024-06-15", token: f.token(t, f.principal),
			wantCode: http.StatusOK, wantData: marshalObj(t, analytics.Teachers([]user.User{f.teacher}, nil, 8)),
		},
	})
}
