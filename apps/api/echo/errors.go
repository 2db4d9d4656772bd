package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/attendance"
	"github.com/vidyasetu/backend/core/curriculum"
	"github.com/vidyasetu/backend/core/leave"
	"github.com/vidyasetu/backend/core/notice"
	"github.com/vidyasetu/backend/core/school"
	"github.com/vidyasetu/backend/core/student"
	"github.com/vidyasetu/backend/core/user"
	"github.com/vidyasetu/backend/core/vehicle"
)

const noMatchingRow = "No matching row found."

var (
	errUnauthorized         = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, "invalid school code, mobile number or password")
	errRefreshExpired       = echo.NewHTTPError(http.StatusForbidden, "refresh has expired")
	errHttpForbidden        = echo.NewHTTPError(http.StatusForbidden, "permission denied")
)

// SuccessResponse is the body of actions without a resource to return.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// isNotFound reports whether the root cause of err is one of the domain "no such row" errors.
func isNotFound(err error) bool {
	switch errors.Cause(err) {
	case school.ErrNotFound, user.ErrNotFound, student.ErrNotFound, attendance.ErrNotFound,
		notice.ErrNotFound, leave.ErrNotFound, vehicle.ErrNotFound, curriculum.ErrNotFound:
		return true
	}
	return false
}

// isClientError reports whether err is the caller's fault and must reach the error handler as is.
func isClientError(err error) bool {
	if isNotFound(err) || core.IsValidationError(err) {
		return true
	}
	switch cause := errors.Cause(err).(type) {
	case *echo.HTTPError, validator.ValidationErrors:
		return true
	default:
		return cause == curriculum.ErrInvalidLevel || cause == user.ErrInvalidRole
	}
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default:
			switch {
			case isNotFound(err):
				code = http.StatusNotFound
				message = SuccessResponse{Error: noMatchingRow}
			case origErr == curriculum.ErrInvalidLevel || origErr == user.ErrInvalidRole:
				code = http.StatusBadRequest
				message = origErr.Error()
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg
				logger.Error(msg, errors.Wrap(err, msg), claimsUser(ctx))

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// claimsUser is the user the request was authenticated as, for logging.
func claimsUser(ctx echo.Context) user.User {
	var usr user.User
	if claims, err := getContextClaims(ctx); err == nil {
		usr.ID = claims.Subject
		usr.Name = claims.Name
		usr.SchoolID = claims.SchoolID
		usr.Role = claims.Role
	}
	return usr
}
