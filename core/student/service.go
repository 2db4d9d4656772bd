package student

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/user"
)

var ErrNotFound = errors.New("student not found")

type (
	Repository interface {
		CreateStudent(ctx context.Context, st Student) (Student, error)
		GetStudent(ctx context.Context, id string) (Student, error)
		// QueryStudents returns the matching students ordered by name, with the parent name and mobile filled in.
		QueryStudents(ctx context.Context, filter QueryFilter) ([]Student, error)
		UpdateStudent(ctx context.Context, st Student) (Student, error)
		DeleteStudent(ctx context.Context, id string) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(svc.validate); err != nil {
		return Student{}, err
	}
	st, err := svc.repo.CreateStudent(ctx, Student{
		SchoolID:      ns.SchoolID,
		Name:          ns.Name,
		ClassName:     ns.ClassName,
		Section:       ns.Section,
		FatherName:    ns.FatherName,
		ParentUserID:  ns.ParentUserID,
		StudentUserID: ns.StudentUserID,
		CreatedAt:     core.NowFunc().UTC(),
	})
	return st, errors.Wrap(err, "creating student")
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudent(ctx, id)
}

func (svc *Service) ListSchool(ctx context.Context, schoolID string) ([]Student, error) {
	return svc.repo.QueryStudents(ctx, QueryFilter{SchoolID: schoolID})
}

func (svc *Service) ListClass(ctx context.Context, schoolID, className string) ([]Student, error) {
	return svc.repo.QueryStudents(ctx, QueryFilter{SchoolID: schoolID, ClassName: className})
}

func (svc *Service) Children(ctx context.Context, parentID string) ([]Student, error) {
	return svc.repo.QueryStudents(ctx, QueryFilter{ParentUserID: parentID})
}

// ForUser finds the student a student-role user logs in as: the linked record first,
// otherwise the record with the same name in the user's school. Returns ErrNotFound when neither exists.
func (svc *Service) ForUser(ctx context.Context, usr user.User) (Student, error) {
	sts, err := svc.repo.QueryStudents(ctx, QueryFilter{StudentUserID: usr.ID})
	if err != nil {
		return Student{}, errors.Wrap(err, "querying linked student")
	}
	if len(sts) > 0 {
		return sts[0], nil
	}

	sts, err = svc.repo.QueryStudents(ctx, QueryFilter{SchoolID: usr.SchoolID, Name: usr.Name})
	if err != nil {
		return Student{}, errors.Wrap(err, "querying student by name")
	}
	if len(sts) > 0 {
		return sts[0], nil
	}
	return Student{}, ErrNotFound
}

func (svc *Service) Link(ctx context.Context, id string, link Link) (Student, error) {
	st, err := svc.repo.GetStudent(ctx, id)
	if err != nil {
		return Student{}, err
	}
	if link.ParentUserID != "" {
		st.ParentUserID = link.ParentUserID
	}
	if link.StudentUserID != "" {
		st.StudentUserID = link.StudentUserID
	}
	return svc.repo.UpdateStudent(ctx, st)
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteStudent(ctx, id)
}
