package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/user"
)

const errNoPermsToSetRole = "not enough rights to set this role"

type userApi struct {
	deps Deps
}

func registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := userApi{deps: deps}

	ug := g.Group("/users", jwt)
	ug.POST("", api.create, managers)
	ug.GET("", api.query, managers)

	// detail endpoints
	dg := ug.Group("/:id", managers, api.objectMiddleware)
	dg.PUT("/subscription", api.setSubscription)
	dg.PUT("/password", api.resetPassword)
	dg.DELETE("", api.destroy)
}

// objectMiddleware puts the user of the :id param in the context as "object".
// Principals only reach the users of their own school.
func (api *userApi) objectMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return err
		}
		usr, err := api.deps.Users.GetByID(ctx.Request().Context(), ctx.Param("id"))
		if err != nil {
			return errors.Wrap(err, "finding user by ID")
		}
		if claims.Role != user.RoleAdmin && usr.SchoolID != claims.SchoolID {
			return user.ErrNotFound
		}
		ctx.Set("object", usr)
		return next(ctx)
	}
}

func (api *userApi) create(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	var data user.NewUser
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if claims.Role != user.RoleAdmin {
		// principals add people to their own school, and cannot add managers
		data.SchoolID = claims.SchoolID
		if role, _ := user.ParseRole(string(data.Role)); role.IsManager() {
			return core.NewValidationError(nil, core.FieldError{Field: "role", Error: errNoPermsToSetRole})
		}
	}

	reqCtx := ctx.Request().Context()
	usr, err := api.deps.Users.Create(reqCtx, data)
	if err == nil {
		api.deps.Cache.Delete(reqCtx, summaryKey(usr.SchoolID))
	}
	return api.deps.respondObject(ctx, http.StatusCreated, usr, err, "creating user")
}

// query lists the users of the school, optionally filtered by ?role= (repeatable).
func (api *userApi) query(ctx echo.Context) error {
	schoolID, err := managedSchoolID(ctx)
	if err != nil {
		return err
	}
	roles := make([]user.Role, 0)
	for _, r := range ctx.QueryParams()["role"] {
		role, err := user.ParseRole(r)
		if err != nil {
			return ctx.JSON(http.StatusOK, []user.User{})
		}
		roles = append(roles, role)
	}
	users, err := api.deps.Users.Query(ctx.Request().Context(), schoolID, roles...)
	return api.deps.respondList(ctx, users, err, "querying users")
}

func (api *userApi) setSubscription(ctx echo.Context) error {
	usr := ctx.Get("object").(user.User)
	var data SubscriptionUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SubscriptionUpdate")
	}
	usr, err := api.deps.Users.SetSubscriptionEnd(ctx.Request().Context(), usr.ID, data.End)
	return api.deps.respondObject(ctx, http.StatusOK, usr, err, "setting user subscription")
}

func (api *userApi) resetPassword(ctx echo.Context) error {
	usr := ctx.Get("object").(user.User)
	var data user.ResetUserPassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ResetUserPassword")
	}
	_, err := api.deps.Users.ResetPassword(ctx.Request().Context(), usr.ID, data)
	return api.deps.respondAction(ctx, err, "resetting password")
}

func (api *userApi) destroy(ctx echo.Context) error {
	usr := ctx.Get("object").(user.User)
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	// nobody deletes themselves
	if usr.ID == claims.Subject {
		return errHttpForbidden
	}
	reqCtx := ctx.Request().Context()
	err = api.deps.Users.Delete(reqCtx, usr.ID)
	if err == nil {
		api.deps.Cache.Delete(reqCtx, summaryKey(usr.SchoolID))
	}
	return api.deps.respondAction(ctx, err, "deleting user")
}
