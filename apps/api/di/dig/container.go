package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	echoapi "github.com/vidyasetu/backend/apps/api/echo"
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
	assistantsvc "github.com/vidyasetu/backend/services/assistant"
	"github.com/vidyasetu/backend/services/cache"
	logsvc "github.com/vidyasetu/backend/services/logger"
	"github.com/vidyasetu/backend/services/scheduler"
	"github.com/vidyasetu/backend/storage/database"
	dummydb "github.com/vidyasetu/backend/storage/database/dummy"
	sqlxrepos "github.com/vidyasetu/backend/storage/database/sqlx"
)

const (
	engineDummy  = "dummy"
	setupTimeout = 30 * time.Second
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

// DBCloser releases the store behind the repositories.
type DBCloser func() error

// Repositories are the stores of every domain, backed by PostgreSQL or by memory.
type Repositories struct {
	dig.Out

	Closer     DBCloser
	Schools    school.Repository
	Users      user.Repository
	Students   student.Repository
	Attendance attendance.Repository
	Periods    period.Repository
	Homework   homework.Repository
	Notices    notice.Repository
	Leaves     leave.Repository
	Vehicles   vehicle.Repository
	Curriculum curriculum.Repository
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger
}

func newRepositories(conf *core.Config, loggerParam DBLoggerParam) Repositories {
	if conf.Database.Engine == engineDummy {
		db, err := dummydb.Open()
		if err != nil {
			loggerParam.Logger.Fatal(fmt.Sprintf("opening in-memory database: %v", err), err)
		}
		loggerParam.Logger.Warn("using the in-memory database; data is lost on exit")
		return Repositories{
			Closer:     func() error { return nil },
			Schools:    dummydb.NewSchoolRepository(db),
			Users:      dummydb.NewUserRepository(db),
			Students:   dummydb.NewStudentRepository(db),
			Attendance: dummydb.NewAttendanceRepository(db),
			Periods:    dummydb.NewPeriodRepository(db),
			Homework:   dummydb.NewHomeworkRepository(db),
			Notices:    dummydb.NewNoticeRepository(db),
			Leaves:     dummydb.NewLeaveRepository(db),
			Vehicles:   dummydb.NewVehicleRepository(db),
			Curriculum: dummydb.NewCurriculumRepository(db),
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()

	setUp := func() (core.DB, error) {
		if err := database.CreateIfNotExist(ctx, conf); err != nil {
			return nil, err
		}
		db, err := database.Open(ctx, conf)
		if err != nil {
			return nil, err
		}
		if err = database.Migrate(db, "up"); err != nil {
			_ = db.Close()
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return Repositories{
		Closer:     db.Close,
		Schools:    sqlxrepos.NewSchoolRepository(db),
		Users:      sqlxrepos.NewUserRepository(db),
		Students:   sqlxrepos.NewStudentRepository(db),
		Attendance: sqlxrepos.NewAttendanceRepository(db),
		Periods:    sqlxrepos.NewPeriodRepository(db),
		Homework:   sqlxrepos.NewHomeworkRepository(db),
		Notices:    sqlxrepos.NewNoticeRepository(db),
		Leaves:     sqlxrepos.NewLeaveRepository(db),
		Vehicles:   sqlxrepos.NewVehicleRepository(db),
		Curriculum: sqlxrepos.NewCurriculumRepository(db),
	}
}

func newValidator() (*validator.Validate, ut.Translator) {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	notice.InitValidators(validate, translator)
	return validate, translator
}

func newRedisClient(conf *core.Config, logger core.Logger) *redis.Client {
	ctx, cancel := context.WithTimeout(context.Background(), setupTimeout)
	defer cancel()
	return cache.NewRedisClient(ctx, conf.Redis, logger)
}

func newCache(rdb *redis.Client, conf *core.Config, logger core.Logger) *cache.Cache {
	return cache.New(rdb, conf.Redis, logger)
}

func newGeminiModel(conf *core.Config, logger core.Logger) (*assistantsvc.GeminiModel, error) {
	model, err := assistantsvc.NewGeminiModel(context.Background(), conf.Gemini)
	if err != nil {
		return nil, errors.Wrap(err, "creating gemini model")
	}
	if conf.Gemini.APIKey == "" {
		logger.Warn("GEMINI_API_KEY is not set; the assistant is disabled")
	}
	return model, nil
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newRepositories))
	must(c.Provide(newValidator))
	must(c.Provide(newRedisClient))
	must(c.Provide(newCache))
	must(c.Provide(newGeminiModel))
	must(c.Provide(func(m *assistantsvc.GeminiModel) assistant.Model { return m }))

	must(c.Provide(school.NewService))
	must(c.Provide(user.NewService))
	must(c.Provide(student.NewService))
	must(c.Provide(attendance.NewService))
	must(c.Provide(period.NewService))
	must(c.Provide(homework.NewService))
	must(c.Provide(notice.NewService))
	must(c.Provide(leave.NewService))
	must(c.Provide(vehicle.NewService))
	must(c.Provide(curriculum.NewService))
	must(c.Provide(dashboard.NewService))
	must(c.Provide(analytics.NewService))
	must(c.Provide(assistant.NewService))

	must(c.Provide(scheduler.New))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
