package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/dashboard"
	"github.com/vidyasetu/backend/core/user"
)

const (
	tokenContextKey = "userToken"
	userContextKey  = "user"
	tokenAudience   = "VidyaSetu"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64     `json:"oriat,omitempty"`
	SchoolID     string    `json:"school_id"`
	Role         user.Role `json:"role"`
	Name         string    `json:"name,omitempty"`
}

type tokenAuth struct {
	conf      *core.Config
	jwtConfig middleware.JWTConfig
}

func newTokenAuth(conf *core.Config) *tokenAuth {
	return &tokenAuth{
		conf: conf,
		jwtConfig: middleware.JWTConfig{
			SigningKey:    []byte(conf.SecretKey),
			SigningMethod: middleware.AlgorithmHS256,
			ContextKey:    tokenContextKey,
			Claims:        new(Claims),
		},
	}
}

// NewClaims returns the claims of usr. origIat carries the first issue time across refreshes.
func NewClaims(conf *core.Config, usr user.User, origIat ...int64) *Claims {
	now := core.NowFunc()
	nownix := now.Unix()

	oriat := nownix
	if len(origIat) > 0 {
		oriat = origIat[0]
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    conf.AppName,
			Subject:   usr.ID,
			Audience:  tokenAudience,
			ExpiresAt: now.Add(conf.JWTExpirationDelta).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		SchoolID:     usr.SchoolID,
		Role:         usr.Role,
		Name:         usr.Name,
	}
}

// GenerateToken signs claims with the app's secret key.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)
	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(tokenContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

// getContextUser loads the user behind the request's token once per request.
func getContextUser(ctx echo.Context, svc *user.Service) (user.User, error) {
	if usr, ok := ctx.Get(userContextKey).(user.User); ok {
		return usr, nil
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return user.User{}, err
	}
	usr, err := svc.GetByID(ctx.Request().Context(), claims.Subject)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return user.User{}, errUnauthorized
		}
		return user.User{}, errors.Wrap(err, "finding user by ID")
	}
	ctx.Set(userContextKey, usr)
	return usr, nil
}

func (a *tokenAuth) refresh(ctx echo.Context, svc *user.Service) (string, error) {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return "", err
	}
	usr, err := getContextUser(ctx, svc)
	if err != nil {
		return "", errors.Wrap(err, "getting context user")
	}

	// check if refresh has not expired
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(a.conf.JWTRefreshExpirationDelta)
	if core.NowFunc().After(expTime) {
		return "", errRefreshExpired
	}

	token, err := GenerateToken(a.conf, NewClaims(a.conf, usr, claims.OrigIssuedAt))
	return token, errors.Wrap(err, "generating token")
}

type authApi struct {
	deps Deps
	auth *tokenAuth
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps, auth *tokenAuth) {
	api := authApi{deps: deps, auth: auth}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)
	ag.POST("/token-refresh", api.refreshToken, jwt)

	g.GET("/me", api.me, jwt)
}

type (
	LoginResponse struct {
		Token string         `json:"token"`
		Data  dashboard.Data `json:"data"`
	}

	TokenResponse struct {
		Token string `json:"token"`
	}
)

// login resolves the school, checks the credentials and returns a token with the user's dashboard.
func (api *authApi) login(ctx echo.Context) error {
	var creds dashboard.Credentials
	if err := ctx.Bind(&creds); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := api.deps.Validate.Struct(creds); err != nil {
		return err
	}

	usr, data, err := api.deps.Dashboard.Login(ctx.Request().Context(), creds, today())
	if err != nil {
		if errors.Cause(err) == dashboard.ErrInvalidCredentials {
			return errAuthenticationFailed
		}
		return errors.Wrap(err, "logging in")
	}
	token, err := GenerateToken(api.deps.Conf, NewClaims(api.deps.Conf, usr))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, Data: data})
}

func (api *authApi) refreshToken(ctx echo.Context) error {
	token, err := api.auth.refresh(ctx, api.deps.Users)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}

// me rebuilds the dashboard of the logged in user. Parents pick a child with ?student_id=.
func (api *authApi) me(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.deps.Users)
	if err != nil {
		return err
	}
	data, err := api.deps.Dashboard.Load(ctx.Request().Context(), usr, ctx.QueryParam("student_id"), today())
	if err != nil {
		return errors.Wrap(err, "loading dashboard")
	}
	return ctx.JSON(http.StatusOK, data)
}
