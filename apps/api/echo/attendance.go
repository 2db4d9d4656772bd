package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core/attendance"
)

type attendanceApi struct {
	deps Deps
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := attendanceApi{deps: deps}

	ag := g.Group("/attendance", jwt, schoolStaff)
	ag.POST("", api.submit)
	ag.GET("/completed", api.completed)
	ag.GET("/class", api.class)

	g.GET("/students/:id/attendance", api.history, jwt, studentMiddleware(deps.Students))
}

// submit marks today's attendance of a class, replacing earlier marks of the same students.
func (api *attendanceApi) submit(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	var batch attendance.Batch
	if err = ctx.Bind(&batch); err != nil {
		return errors.Wrap(err, "binding to Batch")
	}
	err = api.deps.Attendance.Submit(ctx.Request().Context(), claims.SchoolID, claims.Subject, today(), batch)
	return api.deps.respondAction(ctx, err, "submitting attendance")
}

// completed lists the classes already marked on ?date=.
func (api *attendanceApi) completed(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	date, err := bindDate(ctx)
	if err != nil {
		return err
	}
	classes, err := api.deps.Attendance.CompletedClasses(ctx.Request().Context(), claims.SchoolID, date)
	return api.deps.respondList(ctx, classes, err, "listing completed classes")
}

// class maps the students of ?class= to their status on ?date=.
func (api *attendanceApi) class(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	date, err := bindDate(ctx)
	if err != nil {
		return err
	}
	marks, err := api.deps.Attendance.ClassAttendance(ctx.Request().Context(), claims.SchoolID, ctx.QueryParam("class"), date)
	if err != nil {
		if err = api.deps.neutral(ctx, err, "getting class attendance"); err != nil {
			return err
		}
		marks = map[string]attendance.Status{}
	}
	return ctx.JSON(http.StatusOK, marks)
}

func (api *attendanceApi) history(ctx echo.Context) error {
	st := contextStudent(ctx)
	items, err := api.deps.Attendance.History(ctx.Request().Context(), st.ID)
	return api.deps.respondList(ctx, items, err, "getting attendance history")
}
