package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core/student"
	"github.com/vidyasetu/backend/core/user"
)

const studentContextKey = "student"

type studentApi struct {
	deps Deps
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := studentApi{deps: deps}

	sg := g.Group("/students", jwt)
	sg.POST("", api.create, managers)
	sg.GET("", api.list, schoolStaff)
	sg.GET("/children", api.children, parentsOnly)

	// detail endpoints
	dg := sg.Group("/:id", studentMiddleware(deps.Students))
	dg.GET("", api.retrieve)
	dg.PUT("/link", api.link, managers)
	dg.DELETE("", api.destroy, managers)
}

// studentMiddleware loads the student of the :id param. Staff reach the students of their school,
// parents their own children and students themselves.
func studentMiddleware(svc *student.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			st, err := svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
			if err != nil {
				return errors.Wrap(err, "finding student by ID")
			}
			if !canSeeStudent(claims, st) {
				return student.ErrNotFound
			}
			ctx.Set(studentContextKey, st)
			return next(ctx)
		}
	}
}

func canSeeStudent(claims Claims, st student.Student) bool {
	switch claims.Role {
	case user.RoleAdmin:
		return true
	case user.RoleParent:
		return st.ParentUserID == claims.Subject
	case user.RoleStudent:
		return st.StudentUserID == claims.Subject || (st.SchoolID == claims.SchoolID && st.Name == claims.Name)
	case user.RolePrincipal, user.RoleTeacher, user.RoleDriver:
	}
	return st.SchoolID == claims.SchoolID
}

func contextStudent(ctx echo.Context) student.Student {
	return ctx.Get(studentContextKey).(student.Student)
}

func (api *studentApi) create(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	var data student.NewStudent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if claims.Role != user.RoleAdmin {
		data.SchoolID = claims.SchoolID
	}
	reqCtx := ctx.Request().Context()
	st, err := api.deps.Students.Create(reqCtx, data)
	if err == nil {
		api.deps.Cache.Delete(reqCtx, summaryKey(st.SchoolID))
	}
	return api.deps.respondObject(ctx, http.StatusCreated, st, err, "creating student")
}

// list returns the students of the school, or of ?class= only, ordered by name.
func (api *studentApi) list(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	var students []student.Student
	if class := ctx.QueryParam("class"); class != "" {
		students, err = api.deps.Students.ListClass(ctx.Request().Context(), claims.SchoolID, class)
	} else {
		students, err = api.deps.Students.ListSchool(ctx.Request().Context(), claims.SchoolID)
	}
	return api.deps.respondList(ctx, students, err, "listing students")
}

func (api *studentApi) children(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	kids, err := api.deps.Students.Children(ctx.Request().Context(), claims.Subject)
	return api.deps.respondList(ctx, kids, err, "listing children")
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, contextStudent(ctx))
}

func (api *studentApi) link(ctx echo.Context) error {
	st := contextStudent(ctx)
	var data student.Link
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Link")
	}
	st, err := api.deps.Students.Link(ctx.Request().Context(), st.ID, data)
	return api.deps.respondObject(ctx, http.StatusOK, st, err, "linking student")
}

func (api *studentApi) destroy(ctx echo.Context) error {
	st := contextStudent(ctx)
	reqCtx := ctx.Request().Context()
	err := api.deps.Students.Delete(reqCtx, st.ID)
	if err == nil {
		api.deps.Cache.Delete(reqCtx, summaryKey(st.SchoolID))
	}
	return api.deps.respondAction(ctx, err, "deleting student")
}
