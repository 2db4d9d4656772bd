package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/vidyasetu/backend/core/user"
)

// rolesMiddleware lets through the requests whose token carries one of roles.
func rolesMiddleware(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(ctx)
				}
			}
			return errHttpForbidden
		}
	}
}

var (
	adminOnly     = rolesMiddleware(user.RoleAdmin)
	principalOnly = rolesMiddleware(user.RolePrincipal)
	managers      = rolesMiddleware(user.RolePrincipal, user.RoleAdmin)
	schoolStaff   = rolesMiddleware(user.RolePrincipal, user.RoleTeacher)
	teachersOnly  = rolesMiddleware(user.RoleTeacher)
	driversOnly   = rolesMiddleware(user.RoleDriver)
	staffOnly     = rolesMiddleware(user.RolePrincipal, user.RoleTeacher, user.RoleDriver)
	parentsOnly   = rolesMiddleware(user.RoleParent)
)
