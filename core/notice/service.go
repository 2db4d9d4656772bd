package notice

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/user"
)

// ErrNotFound is returned when a delete matches no row.
var ErrNotFound = errors.New("no matching row found")

type (
	Repository interface {
		CreateNotice(ctx context.Context, n Notice) (Notice, error)
		QueryNotices(ctx context.Context, filter QueryFilter) ([]Notice, error)
		// DeleteNotice returns ErrNotFound when no notice of the school has that id.
		DeleteNotice(ctx context.Context, schoolID, id string) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

// Audience returns the notice targets visible to role; nil means every notice.
func Audience(role user.Role) []string {
	if role.IsManager() {
		return nil
	}
	return []string{TargetAll, role.NoticeAudience()}
}

func (svc *Service) ListFor(ctx context.Context, schoolID string, role user.Role) ([]Notice, error) {
	return svc.repo.QueryNotices(ctx, QueryFilter{SchoolID: schoolID, Targets: Audience(role)})
}

// Latest returns the n most recent notices of a school, whatever their target.
func (svc *Service) Latest(ctx context.Context, schoolID string, n int) ([]Notice, error) {
	return svc.repo.QueryNotices(ctx, QueryFilter{SchoolID: schoolID, Limit: n})
}

func (svc *Service) Submit(ctx context.Context, schoolID string, today core.Date, nn NewNotice) (Notice, error) {
	if err := nn.Validate(svc.validate); err != nil {
		return Notice{}, err
	}
	if nn.Date.IsZero() {
		nn.Date = today
	}
	n, err := svc.repo.CreateNotice(ctx, Notice{
		SchoolID:  schoolID,
		Date:      nn.Date,
		Title:     nn.Title,
		Message:   nn.Message,
		Category:  nn.Category,
		Target:    nn.Target,
		CreatedAt: core.NowFunc().UTC(),
	})
	return n, errors.Wrap(err, "creating notice")
}

func (svc *Service) Delete(ctx context.Context, schoolID, id string) error {
	return svc.repo.DeleteNotice(ctx, schoolID, id)
}
