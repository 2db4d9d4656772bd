package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/vidyasetu/backend/apps/api/echo"
	"github.com/vidyasetu/backend/core/dashboard"
	"github.com/vidyasetu/backend/core/subscription"
	"github.com/vidyasetu/backend/core/user"
)

func Test_home(t *testing.T) {
	f := setup(t)
	req, rec := newRequest(http.MethodGet, "/")
	f.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to VidyaSetu API!", rec.Body.String())
}

func Test_authApi_login(t *testing.T) {
	f := setup(t)
	errInvalid := marshalObj(t, httpErr{Error: "invalid school code, mobile number or password"})

	runHTTPTests(t, f.app, []httpTest{
		{
			name: "missing fields", method: http.MethodPost, path: "/v1/auth/login",
			body:     marshalObj(t, dashboard.Credentials{SchoolCode: "GVS01"}),
			wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"mobile": "this field is required", "password": "this field is required"}),
		},
		{
			name: "unknown school", method: http.MethodPost, path: "/v1/auth/login",
			body:     marshalObj(t, dashboard.Credentials{SchoolCode: "NOPE", Mobile: f.teacher.Mobile, Password: pwd}),
			wantCode: http.StatusBadRequest, wantData: errInvalid,
		},
		{
			name: "wrong password", method: http.MethodPost, path: "/v1/auth/login",
			body:     marshalObj(t, dashboard.Credentials{SchoolCode: "GVS01", Mobile: f.teacher.Mobile, Password: "wrong"}),
			wantCode: http.StatusBadRequest, wantData: errInvalid,
		},
	})

	t.Run("success", func(t *testing.T) {
		body := marshalObj(t, dashboard.Credentials{SchoolCode: " gvs01 ", Mobile: f.teacher.Mobile, Password: pwd})
		req, rec := newRequest(http.MethodPost, "/v1/auth/login", body)
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp LoginResponse
		unmarshal(t, rec, &resp)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, f.teacher.ID, resp.Data.UserID)
		assert.Equal(t, user.RoleTeacher, resp.Data.Role)
		assert.Equal(t, "Green Valley", resp.Data.SchoolName)
		assert.Equal(t, subscription.StatusActive, resp.Data.Status)

		// the token opens the dashboard
		req, rec = newAuthRequest(http.MethodGet, "/v1/me", resp.Token)
		f.app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		var data dashboard.Data
		unmarshal(t, rec, &data)
		assert.Equal(t, f.teacher.ID, data.UserID)
	})
}

func Test_authApi_me(t *testing.T) {
	f := setup(t)
	otherConf := *f.conf
	otherConf.SecretKey = "another-secret"
	other := getToken(t, &otherConf, f.teacher)

	runHTTPTests(t, f.app, []httpTest{
		{name: "auth required", path: "/v1/me", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
		{
			name: "bad signature", path: "/v1/me", token: other,
			wantCode: http.StatusUnauthorized, wantData: marshalObj(t, httpErr{Error: "invalid or expired jwt"}),
		},
	})
}

func Test_authApi_refreshToken(t *testing.T) {
	f := setup(t)

	req, rec := newAuthRequest(http.MethodPost, "/v1/auth/token-refresh", f.token(t, f.parent))
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp TokenResponse
	unmarshal(t, rec, &resp)
	assert.NotEmpty(t, resp.Token)

	// a deleted user cannot refresh
	require.NoError(t, f.users.DeleteUser(ctx, f.parent.ID))
	req, rec = newAuthRequest(http.MethodPost, "/v1/auth/token-refresh", resp.Token)
	f.app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
