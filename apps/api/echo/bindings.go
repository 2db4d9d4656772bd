package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
)

const dateParam = "date"

// today is the IST civil date of the request.
func today() core.Date {
	return core.TodayIST()
}

// bindDate reads the optional ?date=YYYY-MM-DD query param, defaulting to today.
func bindDate(ctx echo.Context) (core.Date, error) {
	raw := ctx.QueryParam(dateParam)
	if raw == "" {
		return today(), nil
	}
	d, err := core.ParseDate(raw)
	if err != nil {
		return core.Date{}, core.NewValidationError(err, core.FieldError{Field: dateParam, Error: "must be a YYYY-MM-DD date"})
	}
	return d, nil
}

// bindAndValidate binds the request body into dest and runs its Validate method.
func bindAndValidate(ctx echo.Context, dest interface{}, validate func() error) error {
	if err := ctx.Bind(dest); err != nil {
		return errors.Wrapf(err, "binding to %T", dest)
	}
	return validate()
}

// The store-facing handlers answer store failures with a neutral value instead of an error:
// an empty list, null or {"success": false}. Client errors still reach the error handler.

func (d Deps) neutral(ctx echo.Context, err error, msg string) error {
	if isClientError(err) || core.IsShutdown(err) {
		return err
	}
	d.Logger.Error(msg, errors.Wrap(err, msg), claimsUser(ctx))
	return nil
}

func (d Deps) respondList(ctx echo.Context, items interface{}, err error, msg string) error {
	if err != nil {
		if err = d.neutral(ctx, err, msg); err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, []struct{}{})
	}
	return ctx.JSON(http.StatusOK, items)
}

func (d Deps) respondObject(ctx echo.Context, code int, obj interface{}, err error, msg string) error {
	if err != nil {
		if err = d.neutral(ctx, err, msg); err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, nil)
	}
	return ctx.JSON(code, obj)
}

func (d Deps) respondAction(ctx echo.Context, err error, msg string) error {
	if err != nil {
		if err = d.neutral(ctx, err, msg); err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, SuccessResponse{Success: false})
	}
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: true})
}
