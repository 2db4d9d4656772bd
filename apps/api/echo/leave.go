package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core/leave"
	"github.com/vidyasetu/backend/core/student"
)

type leaveApi struct {
	deps Deps
}

func registerLeaveAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := leaveApi{deps: deps}

	sg := g.Group("/leaves/staff", jwt)
	sg.POST("", api.applyStaff, staffOnly)
	sg.GET("/mine", api.myStaffLeaves, staffOnly)
	sg.GET("", api.schoolStaffLeaves, principalOnly)
	sg.PUT("/:id/review", api.reviewStaff, principalOnly)

	pg := g.Group("/leaves/students", jwt)
	pg.POST("", api.applyStudent, parentsOnly)
	pg.GET("/mine", api.parentLeaves, parentsOnly)
	pg.GET("", api.schoolStudentLeaves, principalOnly)
	pg.PUT("/:id/review", api.reviewStudent, principalOnly)
}

func (api *leaveApi) applyStaff(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.deps.Users)
	if err != nil {
		return err
	}
	var data leave.NewLeave
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLeave")
	}
	l, err := api.deps.Leaves.ApplyStaff(ctx.Request().Context(), usr, data)
	return api.deps.respondObject(ctx, http.StatusCreated, l, err, "applying for staff leave")
}

func (api *leaveApi) myStaffLeaves(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	leaves, err := api.deps.Leaves.StaffLeaves(ctx.Request().Context(), claims.Subject)
	return api.deps.respondList(ctx, leaves, err, "listing own leaves")
}

func (api *leaveApi) schoolStaffLeaves(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	leaves, err := api.deps.Leaves.SchoolStaffLeaves(ctx.Request().Context(), claims.SchoolID)
	return api.deps.respondList(ctx, leaves, err, "listing staff leaves")
}

func (api *leaveApi) reviewStaff(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	var data leave.Review
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Review")
	}
	err = api.deps.Leaves.ReviewStaff(ctx.Request().Context(), claims.SchoolID, ctx.Param("id"), data)
	return api.deps.respondAction(ctx, err, "reviewing staff leave")
}

// applyStudent files a leave for one of the parent's children.
func (api *leaveApi) applyStudent(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.deps.Users)
	if err != nil {
		return err
	}
	var data leave.NewStudentLeave
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudentLeave")
	}

	reqCtx := ctx.Request().Context()
	if data.StudentID != "" {
		st, err := api.deps.Students.GetByID(reqCtx, data.StudentID)
		if err != nil {
			return errors.Wrap(err, "finding student by ID")
		}
		if st.ParentUserID != usr.ID {
			return student.ErrNotFound
		}
	}
	l, err := api.deps.Leaves.ApplyStudent(reqCtx, usr, data)
	return api.deps.respondObject(ctx, http.StatusCreated, l, err, "applying for student leave")
}

func (api *leaveApi) parentLeaves(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	leaves, err := api.deps.Leaves.ParentLeaves(ctx.Request().Context(), claims.Subject)
	return api.deps.respondList(ctx, leaves, err, "listing child leaves")
}

func (api *leaveApi) schoolStudentLeaves(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	leaves, err := api.deps.Leaves.SchoolStudentLeaves(ctx.Request().Context(), claims.SchoolID)
	return api.deps.respondList(ctx, leaves, err, "listing student leaves")
}

func (api *leaveApi) reviewStudent(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	var data leave.Review
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Review")
	}
	err = api.deps.Leaves.ReviewStudent(ctx.Request().Context(), claims.SchoolID, ctx.Param("id"), data)
	return api.deps.respondAction(ctx, err, "reviewing student leave")
}
