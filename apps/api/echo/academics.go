package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core/curriculum"
	"github.com/vidyasetu/backend/core/homework"
	"github.com/vidyasetu/backend/core/period"
)

type academicsApi struct {
	deps Deps
}

func registerAcademicsAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := academicsApi{deps: deps}

	// daily periods
	pg := g.Group("/periods", jwt)
	pg.POST("", api.submitPeriod, teachersOnly)
	pg.GET("", api.schoolPeriods, managers)
	pg.GET("/mine", api.myPeriods, teachersOnly)
	pg.GET("/class", api.classPeriods)

	// a student's homework
	hg := g.Group("/students/:id/homework", jwt, studentMiddleware(deps.Students))
	hg.GET("", api.homework)
	hg.POST("/done", api.markDone)

	// curriculum tree: /curriculum/classes, /curriculum/subjects?parent_id=...
	cg := g.Group("/curriculum/:level", jwt)
	cg.GET("", api.listItems)
	cg.POST("", api.addItem, managers)
	cg.DELETE("/:id", api.deleteItem, managers)
}

// submitPeriod records what the teacher taught in a period today.
func (api *academicsApi) submitPeriod(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.deps.Users)
	if err != nil {
		return err
	}
	var data period.NewPeriod
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPeriod")
	}
	p, err := api.deps.Periods.Submit(ctx.Request().Context(), usr, today(), data)
	return api.deps.respondObject(ctx, http.StatusCreated, p, err, "submitting period")
}

func (api *academicsApi) schoolPeriods(ctx echo.Context) error {
	schoolID, err := managedSchoolID(ctx)
	if err != nil {
		return err
	}
	date, err := bindDate(ctx)
	if err != nil {
		return err
	}
	periods, err := api.deps.Periods.SchoolPeriods(ctx.Request().Context(), schoolID, date)
	return api.deps.respondList(ctx, periods, err, "listing school periods")
}

func (api *academicsApi) myPeriods(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	date, err := bindDate(ctx)
	if err != nil {
		return err
	}
	periods, err := api.deps.Periods.TeacherPeriods(ctx.Request().Context(), claims.Subject, date)
	return api.deps.respondList(ctx, periods, err, "listing teacher periods")
}

// classPeriods lists the periods of ?class= on ?date= with their teachers.
func (api *academicsApi) classPeriods(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	date, err := bindDate(ctx)
	if err != nil {
		return err
	}
	periods, err := api.deps.Periods.ClassPeriods(ctx.Request().Context(), claims.SchoolID, ctx.QueryParam("class"), date)
	return api.deps.respondList(ctx, periods, err, "listing class periods")
}

// homework lists the periods of the student's class on ?date= with the student's status.
func (api *academicsApi) homework(ctx echo.Context) error {
	st := contextStudent(ctx)
	date, err := bindDate(ctx)
	if err != nil {
		return err
	}
	items, err := api.deps.Homework.ForParent(ctx.Request().Context(), st, date)
	return api.deps.respondList(ctx, items, err, "listing homework")
}

// markDone records a period's homework of ?date= as completed by the student.
func (api *academicsApi) markDone(ctx echo.Context) error {
	st := contextStudent(ctx)
	date, err := bindDate(ctx)
	if err != nil {
		return err
	}
	var data homework.MarkDone
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkDone")
	}
	data.StudentID = st.ID
	_, err = api.deps.Homework.MarkDone(ctx.Request().Context(), date, data)
	return api.deps.respondAction(ctx, err, "marking homework done")
}

func (api *academicsApi) listItems(ctx echo.Context) error {
	schoolID, err := managedSchoolID(ctx)
	if err != nil {
		return err
	}
	level := curriculum.Level(ctx.Param("level"))
	items, err := api.deps.Curriculum.List(ctx.Request().Context(), level, schoolID, ctx.QueryParam("parent_id"))
	return api.deps.respondList(ctx, items, err, "listing curriculum")
}

func (api *academicsApi) addItem(ctx echo.Context) error {
	schoolID, err := managedSchoolID(ctx)
	if err != nil {
		return err
	}
	var data curriculum.NewItem
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewItem")
	}
	item, err := api.deps.Curriculum.Add(ctx.Request().Context(), curriculum.Level(ctx.Param("level")), schoolID, data)
	return api.deps.respondObject(ctx, http.StatusCreated, item, err, "adding curriculum item")
}

func (api *academicsApi) deleteItem(ctx echo.Context) error {
	schoolID, err := managedSchoolID(ctx)
	if err != nil {
		return err
	}
	err = api.deps.Curriculum.Delete(ctx.Request().Context(), curriculum.Level(ctx.Param("level")), schoolID, ctx.Param("id"))
	return api.deps.respondAction(ctx, err, "deleting curriculum item")
}
