package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/dig"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/analytics"
	"github.com/vidyasetu/backend/core/assistant"
	"github.com/vidyasetu/backend/core/attendance"
	"github.com/vidyasetu/backend/core/curriculum"
	"github.com/vidyasetu/backend/core/dashboard"
	"github.com/vidyasetu/backend/core/homework"
	"github.com/vidyasetu/backend/core/leave"
	"github.com/vidyasetu/backend/core/notice"
	"github.com/vidyasetu/backend/core/period"
	"github.com/vidyasetu/backend/core/school"
	"github.com/vidyasetu/backend/core/student"
	"github.com/vidyasetu/backend/core/user"
	"github.com/vidyasetu/backend/core/vehicle"
	"github.com/vidyasetu/backend/services/cache"
)

type (
	// Deps are the services the API is built on. Filled by dig or by hand in tests.
	Deps struct {
		dig.In

		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator
		Cache      *cache.Cache `optional:"true"`

		Schools    *school.Service
		Users      *user.Service
		Students   *student.Service
		Attendance *attendance.Service
		Periods    *period.Service
		Homework   *homework.Service
		Notices    *notice.Service
		Leaves     *leave.Service
		Vehicles   *vehicle.Service
		Curriculum *curriculum.Service
		Dashboard  *dashboard.Service
		Analytics  *analytics.Service
		Assistant  *assistant.Service
	}

	Server struct {
		deps     Deps
		auth     *tokenAuth
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps Deps) *Server {
	s := &Server{
		deps:     deps,
		auth:     newTokenAuth(deps.Conf),
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORS())

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug && !conf.TestMode

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(s.auth.jwtConfig)

	registerAuthAPI(v1, jwt, s.deps, s.auth)
	registerSchoolAPI(v1, jwt, s.deps)
	registerUserAPI(v1, jwt, s.deps)
	registerStudentAPI(v1, jwt, s.deps)
	registerAttendanceAPI(v1, jwt, s.deps)
	registerAcademicsAPI(v1, jwt, s.deps)
	registerNoticeAPI(v1, jwt, s.deps)
	registerLeaveAPI(v1, jwt, s.deps)
	registerVehicleAPI(v1, jwt, s.deps)
	registerInsightsAPI(v1, jwt, s.deps)
}

// Start blocks until the server stops. Startup and listener errors are sent to Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Host); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to VidyaSetu API!")
}
