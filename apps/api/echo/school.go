package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/dashboard"
	"github.com/vidyasetu/backend/core/school"
	"github.com/vidyasetu/backend/core/user"
	"github.com/vidyasetu/backend/services/cache"
)

type schoolApi struct {
	deps Deps
}

func registerSchoolAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := schoolApi{deps: deps}

	// platform admin
	sg := g.Group("/schools", jwt, adminOnly)
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.POST("/:id/toggle-active", api.toggleActive)
	sg.PUT("/:id/subscription", api.setSubscription)
	sg.DELETE("/:id", api.destroy)

	// the principal's own school
	mg := g.Group("/school", jwt)
	mg.GET("/summary", api.summary, managers)
	mg.GET("/members", api.members, managers)
	mg.PUT("/periods", api.setPeriods, principalOnly)
}

func summaryKey(schoolID string) string {
	return cache.Key("summary", schoolID)
}

// SubscriptionUpdate sets a subscription end date; null removes it.
type SubscriptionUpdate struct {
	End *core.Date `json:"subscription_end_date"`
}

func (api *schoolApi) query(ctx echo.Context) error {
	schools, err := api.deps.Schools.QueryAll(ctx.Request().Context())
	return api.deps.respondList(ctx, schools, err, "querying schools")
}

func (api *schoolApi) create(ctx echo.Context) error {
	var data school.NewSchool
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSchool")
	}
	sch, err := api.deps.Schools.Create(ctx.Request().Context(), data, today())
	return api.deps.respondObject(ctx, http.StatusCreated, sch, err, "creating school")
}

func (api *schoolApi) toggleActive(ctx echo.Context) error {
	sch, err := api.deps.Schools.ToggleActive(ctx.Request().Context(), ctx.Param("id"))
	return api.deps.respondObject(ctx, http.StatusOK, sch, err, "toggling school")
}

func (api *schoolApi) setSubscription(ctx echo.Context) error {
	var data SubscriptionUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubscriptionUpdate")
	}
	sch, err := api.deps.Schools.SetSubscriptionEnd(ctx.Request().Context(), ctx.Param("id"), data.End)
	return api.deps.respondObject(ctx, http.StatusOK, sch, err, "setting school subscription")
}

func (api *schoolApi) destroy(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	err := api.deps.Schools.Delete(reqCtx, ctx.Param("id"))
	if err == nil {
		api.deps.Cache.Delete(reqCtx, summaryKey(ctx.Param("id")))
	}
	return api.deps.respondAction(ctx, err, "deleting school")
}

// summary is the principal's overview of their school. Admins pass ?school_id=.
func (api *schoolApi) summary(ctx echo.Context) error {
	schoolID, err := managedSchoolID(ctx)
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	summary, err := cache.Fetch(reqCtx, api.deps.Cache, summaryKey(schoolID), func() (dashboard.Summary, error) {
		return api.deps.Dashboard.Summary(reqCtx, schoolID)
	})
	return api.deps.respondObject(ctx, http.StatusOK, summary, err, "summarizing school")
}

// members lists ?category=students|teachers|drivers of the school.
func (api *schoolApi) members(ctx echo.Context) error {
	schoolID, err := managedSchoolID(ctx)
	if err != nil {
		return err
	}
	members, err := api.deps.Dashboard.Members(ctx.Request().Context(), schoolID, ctx.QueryParam("category"))
	return api.deps.respondList(ctx, members, err, "listing school members")
}

func (api *schoolApi) setPeriods(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	var data school.UpdatePeriods
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePeriods")
	}
	reqCtx := ctx.Request().Context()
	sch, err := api.deps.Schools.SetTotalPeriods(reqCtx, claims.SchoolID, data)
	if err == nil {
		api.deps.Cache.Delete(reqCtx, summaryKey(claims.SchoolID))
	}
	return api.deps.respondObject(ctx, http.StatusOK, sch, err, "setting total periods")
}

// managedSchoolID is the school of the token, or for admins the ?school_id= they ask about.
func managedSchoolID(ctx echo.Context) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", err
	}
	if id := ctx.QueryParam("school_id"); id != "" && claims.Role == user.RoleAdmin {
		return id, nil
	}
	return claims.SchoolID, nil
}
