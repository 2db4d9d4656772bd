package leave

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/user"
)

var ErrNotFound = errors.New("leave request not found")

type (
	Repository interface {
		CreateStaffLeave(ctx context.Context, l StaffLeave) (StaffLeave, error)
		QueryStaffLeaves(ctx context.Context, filter QueryFilter) ([]StaffLeave, error)
		// ReviewStaffLeave returns ErrNotFound when no leave of the school has that id.
		ReviewStaffLeave(ctx context.Context, schoolID, id string, review Review) error

		CreateStudentLeave(ctx context.Context, l StudentLeave) (StudentLeave, error)
		QueryStudentLeaves(ctx context.Context, filter QueryFilter) ([]StudentLeave, error)
		ReviewStudentLeave(ctx context.Context, schoolID, id string, review Review) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

// Staff leaves

func (svc *Service) ApplyStaff(ctx context.Context, usr user.User, nl NewLeave) (StaffLeave, error) {
	if err := nl.Validate(svc.validate); err != nil {
		return StaffLeave{}, err
	}
	l, err := svc.repo.CreateStaffLeave(ctx, StaffLeave{
		Request: newRequest(usr.SchoolID, nl),
		UserID:  usr.ID,
	})
	return l, errors.Wrap(err, "creating staff leave")
}

func (svc *Service) StaffLeaves(ctx context.Context, userID string) ([]StaffLeave, error) {
	return svc.repo.QueryStaffLeaves(ctx, QueryFilter{UserID: userID})
}

func (svc *Service) LatestStaffLeaves(ctx context.Context, userID string, n int) ([]StaffLeave, error) {
	return svc.repo.QueryStaffLeaves(ctx, QueryFilter{UserID: userID, Limit: n})
}

func (svc *Service) SchoolStaffLeaves(ctx context.Context, schoolID string) ([]StaffLeave, error) {
	return svc.repo.QueryStaffLeaves(ctx, QueryFilter{SchoolID: schoolID})
}

func (svc *Service) ReviewStaff(ctx context.Context, schoolID, id string, review Review) error {
	if err := svc.cleanReview(&review); err != nil {
		return err
	}
	return svc.repo.ReviewStaffLeave(ctx, schoolID, id, review)
}

// Student leaves

// ApplyStudent files a leave for a student on behalf of parent.
func (svc *Service) ApplyStudent(ctx context.Context, parent user.User, nsl NewStudentLeave) (StudentLeave, error) {
	if err := nsl.Validate(svc.validate); err != nil {
		return StudentLeave{}, err
	}
	l, err := svc.repo.CreateStudentLeave(ctx, StudentLeave{
		Request:   newRequest(parent.SchoolID, nsl.NewLeave),
		StudentID: nsl.StudentID,
		ParentID:  parent.ID,
	})
	return l, errors.Wrap(err, "creating student leave")
}

func (svc *Service) ParentLeaves(ctx context.Context, parentID string) ([]StudentLeave, error) {
	return svc.repo.QueryStudentLeaves(ctx, QueryFilter{ParentID: parentID})
}

func (svc *Service) LatestStudentLeaves(ctx context.Context, studentID string, n int) ([]StudentLeave, error) {
	return svc.repo.QueryStudentLeaves(ctx, QueryFilter{StudentID: studentID, Limit: n})
}

func (svc *Service) SchoolStudentLeaves(ctx context.Context, schoolID string) ([]StudentLeave, error) {
	return svc.repo.QueryStudentLeaves(ctx, QueryFilter{SchoolID: schoolID})
}

func (svc *Service) ReviewStudent(ctx context.Context, schoolID, id string, review Review) error {
	if err := svc.cleanReview(&review); err != nil {
		return err
	}
	return svc.repo.ReviewStudentLeave(ctx, schoolID, id, review)
}

func (svc *Service) cleanReview(review *Review) error {
	review.Status = Status(strings.ToLower(strings.TrimSpace(string(review.Status))))
	review.Comment = strings.TrimSpace(review.Comment)
	return svc.validate.Struct(review)
}

func newRequest(schoolID string, nl NewLeave) Request {
	return Request{
		SchoolID:  schoolID,
		Type:      nl.Type,
		Start:     nl.Start,
		End:       nl.End,
		Reason:    nl.Reason,
		Status:    StatusPending,
		CreatedAt: core.NowFunc().UTC(),
	}
}
