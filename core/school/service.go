package school

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
)

var (
	// errors
	ErrNotFound   = errors.New("school not found")
	ErrCodeExists = errors.New("a school with this code already exists")
)

type (
	Repository interface {
		// CreateSchool returns ErrCodeExists when the code is taken.
		CreateSchool(ctx context.Context, sch School) (School, error)
		// GetSchool matches Code case-insensitively.
		GetSchool(ctx context.Context, filter GetFilter) (School, error)
		// QuerySchools returns every school, newest first.
		QuerySchools(ctx context.Context) ([]School, error)
		UpdateSchool(ctx context.Context, sch School) (School, error)
		DeleteSchool(ctx context.Context, id string) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

// Create registers an active school whose subscription runs for one year from today.
func (svc *Service) Create(ctx context.Context, ns NewSchool, today core.Date) (School, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return School{}, err
	}
	sch := School{
		Name:            ns.Name,
		Code:            ns.Code,
		IsActive:        true,
		SubscriptionEnd: today.AddYears(1).Ptr(),
		TotalPeriods:    ns.TotalPeriods,
		CreatedAt:       core.NowFunc().UTC(),
	}
	if sch.TotalPeriods == 0 {
		sch.TotalPeriods = DefaultTotalPeriods
	}

	sch, err := svc.repo.CreateSchool(ctx, sch)
	if err != nil {
		if errors.Cause(err) == ErrCodeExists {
			return School{}, core.NewValidationError(err, core.FieldError{Field: "school_code", Error: err.Error()})
		}
		return School{}, errors.Wrap(err, "creating school")
	}
	return sch, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (School, error) {
	return svc.repo.GetSchool(ctx, GetFilter{ID: id})
}

// GetByCode resolves a school from a user-typed code (trimmed, case-insensitive).
func (svc *Service) GetByCode(ctx context.Context, code string) (School, error) {
	code = core.CleanCode(code)
	if code == "" {
		return School{}, ErrNotFound
	}
	return svc.repo.GetSchool(ctx, GetFilter{Code: code})
}

func (svc *Service) QueryAll(ctx context.Context) ([]School, error) {
	return svc.repo.QuerySchools(ctx)
}

func (svc *Service) ToggleActive(ctx context.Context, id string) (School, error) {
	sch, err := svc.repo.GetSchool(ctx, GetFilter{ID: id})
	if err != nil {
		return School{}, err
	}
	sch.IsActive = !sch.IsActive
	return svc.repo.UpdateSchool(ctx, sch)
}

func (svc *Service) SetSubscriptionEnd(ctx context.Context, id string, end *core.Date) (School, error) {
	sch, err := svc.repo.GetSchool(ctx, GetFilter{ID: id})
	if err != nil {
		return School{}, err
	}
	sch.SubscriptionEnd = end
	return svc.repo.UpdateSchool(ctx, sch)
}

func (svc *Service) SetTotalPeriods(ctx context.Context, id string, data UpdatePeriods) (School, error) {
	if err := svc.validate.Struct(data); err != nil {
		return School{}, err
	}
	sch, err := svc.repo.GetSchool(ctx, GetFilter{ID: id})
	if err != nil {
		return School{}, err
	}
	sch.TotalPeriods = data.TotalPeriods
	return svc.repo.UpdateSchool(ctx, sch)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteSchool(ctx, id)
}
