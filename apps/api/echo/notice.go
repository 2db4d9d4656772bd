package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core/notice"
	"github.com/vidyasetu/backend/core/user"
	"github.com/vidyasetu/backend/services/cache"
)

type noticeApi struct {
	deps Deps
}

func registerNoticeAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := noticeApi{deps: deps}

	ng := g.Group("/notices", jwt)
	ng.GET("", api.list)
	ng.POST("", api.submit, managers)
	ng.DELETE("/:id", api.destroy, managers)
}

func noticesKey(schoolID string, role user.Role) string {
	return cache.Key("notices", schoolID, string(role))
}

// invalidate drops the cached lists of every audience of the school.
func (api *noticeApi) invalidate(ctx echo.Context, schoolID string) {
	keys := make([]string, 0, len(user.AllRoles))
	for _, role := range user.AllRoles {
		keys = append(keys, noticesKey(schoolID, role))
	}
	api.deps.Cache.Delete(ctx.Request().Context(), keys...)
}

// list returns the notices addressed to the caller's role, newest first.
func (api *noticeApi) list(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	notices, err := cache.Fetch(reqCtx, api.deps.Cache, noticesKey(claims.SchoolID, claims.Role), func() ([]notice.Notice, error) {
		return api.deps.Notices.ListFor(reqCtx, claims.SchoolID, claims.Role)
	})
	return api.deps.respondList(ctx, notices, err, "listing notices")
}

func (api *noticeApi) submit(ctx echo.Context) error {
	schoolID, err := managedSchoolID(ctx)
	if err != nil {
		return err
	}
	var data notice.NewNotice
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNotice")
	}
	n, err := api.deps.Notices.Submit(ctx.Request().Context(), schoolID, today(), data)
	if err == nil {
		api.invalidate(ctx, schoolID)
	}
	return api.deps.respondObject(ctx, http.StatusCreated, n, err, "submitting notice")
}

func (api *noticeApi) destroy(ctx echo.Context) error {
	schoolID, err := managedSchoolID(ctx)
	if err != nil {
		return err
	}
	err = api.deps.Notices.Delete(ctx.Request().Context(), schoolID, ctx.Param("id"))
	if err == nil {
		api.invalidate(ctx, schoolID)
	}
	return api.deps.respondAction(ctx, err, "deleting notice")
}
