package period

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/user"
)

type (
	Repository interface {
		// UpsertPeriod inserts p or replaces the row with the same (teacher, date, number).
		UpsertPeriod(ctx context.Context, p Period) (Period, error)
		QueryPeriods(ctx context.Context, filter QueryFilter) ([]Period, error)
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

// Submit records (or overwrites) what teacher taught in a period today.
func (svc *Service) Submit(ctx context.Context, teacher user.User, today core.Date, np NewPeriod) (Period, error) {
	if err := np.Validate(svc.validate); err != nil {
		return Period{}, err
	}
	p, err := svc.repo.UpsertPeriod(ctx, Period{
		SchoolID:     teacher.SchoolID,
		TeacherID:    teacher.ID,
		Date:         today,
		Number:       np.Number,
		ClassName:    np.ClassName,
		Subject:      np.Subject,
		Lesson:       np.Lesson,
		Homework:     np.Homework,
		HomeworkType: np.HomeworkType,
	})
	return p, errors.Wrap(err, "upserting period")
}

func (svc *Service) TeacherPeriods(ctx context.Context, teacherID string, date core.Date) ([]Period, error) {
	return svc.repo.QueryPeriods(ctx, QueryFilter{TeacherID: teacherID, Date: date})
}

func (svc *Service) ClassPeriods(ctx context.Context, schoolID, className string, date core.Date) ([]Period, error) {
	return svc.repo.QueryPeriods(ctx, QueryFilter{SchoolID: schoolID, ClassName: className, Date: date})
}

func (svc *Service) SchoolPeriods(ctx context.Context, schoolID string, date core.Date) ([]Period, error) {
	return svc.repo.QueryPeriods(ctx, QueryFilter{SchoolID: schoolID, Date: date})
}
