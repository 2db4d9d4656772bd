package tests

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	. "github.com/vidyasetu/backend/apps/api/echo"
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
	"github.com/vidyasetu/backend/storage/database/dummy"
	"github.com/vidyasetu/backend/tests"
)

const pwd = "Vidya@2024"

var (
	ctx = context.Background()

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
	errNoRow        = SuccessResponse{Error: "No matching row found."}
)

type stubModel struct {
	digest, question string
	err              error
}

func (m *stubModel) Answer(_ context.Context, digest, question string) (string, error) {
	m.digest, m.question = digest, question
	if m.err != nil {
		return "", m.err
	}
	return "answer to " + question, nil
}

type fixture struct {
	app    *Server
	conf   *core.Config
	logger *testutil.Logger
	model  *stubModel

	schools  school.Repository
	users    user.Repository
	students student.Repository

	sch       school.School
	admin     user.User
	principal user.User
	teacher   user.User
	parent    user.User
}

func setup(t *testing.T) fixture {
	db, err := dummydb.Open()
	require.NoError(t, err)
	validate, translator := testutil.NewValidator()

	f := fixture{
		conf: &core.Config{
			AppName:                   "VidyaSetu",
			TestMode:                  true,
			SecretKey:                 "test-secret",
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 24 * time.Hour,
		},
		logger:   new(testutil.Logger),
		model:    new(stubModel),
		schools:  dummydb.NewSchoolRepository(db),
		users:    dummydb.NewUserRepository(db),
		students: dummydb.NewStudentRepository(db),
	}
	attRepo := dummydb.NewAttendanceRepository(db)
	periodRepo := dummydb.NewPeriodRepository(db)

	schoolSvc := school.NewService(f.schools, validate)
	userSvc := user.NewService(f.users, validate)
	studentSvc := student.NewService(f.students, validate)
	attSvc := attendance.NewService(attRepo, f.students, validate)
	periodSvc := period.NewService(periodRepo, validate)
	hwSvc := homework.NewService(dummydb.NewHomeworkRepository(db), f.students, periodRepo, validate)
	noticeSvc := notice.NewService(dummydb.NewNoticeRepository(db), validate)
	leaveSvc := leave.NewService(dummydb.NewLeaveRepository(db), validate)

	f.app = NewServer(Deps{
		Conf:       f.conf,
		Logger:     f.logger,
		Validate:   validate,
		Translator: translator,
		Schools:    schoolSvc,
		Users:      userSvc,
		Students:   studentSvc,
		Attendance: attSvc,
		Periods:    periodSvc,
		Homework:   hwSvc,
		Notices:    noticeSvc,
		Leaves:     leaveSvc,
		Vehicles:   vehicle.NewService(dummydb.NewVehicleRepository(db), validate),
		Curriculum: curriculum.NewService(dummydb.NewCurriculumRepository(db), validate),
		Dashboard:  dashboard.NewService(schoolSvc, userSvc, studentSvc, attSvc, periodSvc),
		Analytics:  analytics.NewService(f.schools, f.users, periodRepo, hwSvc),
		Assistant:  assistant.NewService(schoolSvc, noticeSvc, leaveSvc, attSvc, periodSvc, f.model),
	})

	end := core.TodayIST().AddYears(1).Ptr()
	f.sch = testutil.CreateSchool(t, f.schools, "Green Valley", "GVS01", end)
	f.admin = testutil.CreateUser(t, f.users, "", "Root", "9000000000", pwd, user.RoleAdmin)
	f.principal = testutil.CreateUser(t, f.users, f.sch.ID, "Lakshmi", "9000000001", pwd, user.RolePrincipal)
	f.teacher = testutil.CreateUser(t, f.users, f.sch.ID, "Meena", "9000000002", pwd, user.RoleTeacher)
	f.parent = testutil.CreateUser(t, f.users, f.sch.ID, "Ravi", "9000000003", pwd, user.RoleParent, end)
	return f
}

func (f fixture) token(t *testing.T, usr user.User) string {
	return getToken(t, f.conf, usr)
}
