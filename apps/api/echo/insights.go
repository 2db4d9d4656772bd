package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/assistant"
	"github.com/vidyasetu/backend/core/student"
)

var errAssistantUnavailable = echo.NewHTTPError(http.StatusServiceUnavailable, "assistant is not available right now")

type insightsApi struct {
	deps Deps
}

func registerInsightsAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := insightsApi{deps: deps}

	ag := g.Group("/analytics", jwt, managers)
	ag.GET("/teachers", api.teachers)
	ag.GET("/homework", api.homework)

	g.POST("/assistant/ask", api.ask, jwt)
}

// teachers is the period submission progress of every teacher on ?date=.
func (api *insightsApi) teachers(ctx echo.Context) error {
	schoolID, err := managedSchoolID(ctx)
	if err != nil {
		return err
	}
	date, err := bindDate(ctx)
	if err != nil {
		return err
	}
	summary, err := api.deps.Analytics.Teachers(ctx.Request().Context(), schoolID, date)
	return api.deps.respondObject(ctx, http.StatusOK, summary, err, "analysing teachers")
}

// homework classifies every student of the school by homework completion on ?date=.
func (api *insightsApi) homework(ctx echo.Context) error {
	schoolID, err := managedSchoolID(ctx)
	if err != nil {
		return err
	}
	date, err := bindDate(ctx)
	if err != nil {
		return err
	}
	summary, err := api.deps.Analytics.Homework(ctx.Request().Context(), schoolID, date)
	return api.deps.respondObject(ctx, http.StatusOK, summary, err, "analysing homework")
}

type (
	Question struct {
		Question  string `json:"question"`
		StudentID string `json:"student_id"` // parents and students
	}

	Answer struct {
		Answer string `json:"answer"`
	}
)

// ask answers a question about the caller's own school data. Parents and students may name one of
// their students, whose class is taken from the record.
func (api *insightsApi) ask(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	var data Question
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Question")
	}

	reqCtx := ctx.Request().Context()
	req := assistant.Request{
		Role:   claims.Role,
		UserID: claims.Subject,
	}
	if data.StudentID != "" && claims.Role.IsFamily() {
		st, err := api.deps.Students.GetByID(reqCtx, data.StudentID)
		if err != nil {
			return errors.Wrap(err, "finding student by ID")
		}
		if !canSeeStudent(claims, st) {
			return student.ErrNotFound
		}
		req.StudentID, req.ClassName = st.ID, st.ClassName
	}
	if sch, err := api.deps.Schools.GetByID(reqCtx, claims.SchoolID); err == nil {
		req.SchoolCode = sch.Code
	}
	digest, err := api.deps.Assistant.Digest(reqCtx, req, today())
	if err != nil {
		api.deps.Logger.Warn("building assistant digest", err, claimsUser(ctx))
	}

	answer, err := api.deps.Assistant.Ask(reqCtx, digest, data.Question)
	if err != nil {
		if core.IsValidationError(err) {
			return err
		}
		api.deps.Logger.Error("asking assistant", err, claimsUser(ctx))
		return errAssistantUnavailable
	}
	return ctx.JSON(http.StatusOK, Answer{Answer: answer})
}
