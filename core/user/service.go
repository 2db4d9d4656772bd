package user

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
)

var (
	// errors
	ErrNotFound    = errors.New("user not found")
	ErrUserExists  = errors.New("a user with this mobile number already exists in this school")
	ErrInvalidRole = errors.New("invalid role")
)

type (
	Repository interface {
		// CreateUser returns ErrUserExists when (SchoolID, Mobile) is taken.
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUser(ctx context.Context, filter GetFilter) (User, error)
		// QueryUsers returns the users of a school ordered by name. An empty Roles matches every role.
		QueryUsers(ctx context.Context, filter QueryFilter) ([]User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
		DeleteUser(ctx context.Context, id string) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	if err := nu.Validate(svc.validate); err != nil {
		return User{}, err
	}
	usr := User{
		SchoolID:        nu.SchoolID,
		Name:            nu.Name,
		Mobile:          nu.Mobile,
		Role:            nu.Role,
		SubscriptionEnd: nu.SubscriptionEnd,
		CreatedAt:       core.NowFunc().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}

	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		if errors.Cause(err) == ErrUserExists {
			return User{}, core.NewValidationError(err, core.FieldError{Field: "mobile", Error: err.Error()})
		}
		return User{}, errors.Wrap(err, "creating user")
	}
	return usr, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{ID: id})
}

func (svc *Service) GetByMobile(ctx context.Context, schoolID, mobile string) (User, error) {
	return svc.repo.GetUser(ctx, GetFilter{SchoolID: schoolID, Mobile: core.CleanString(mobile)})
}

func (svc *Service) Query(ctx context.Context, schoolID string, roles ...Role) ([]User, error) {
	return svc.repo.QueryUsers(ctx, QueryFilter{SchoolID: schoolID, Roles: roles})
}

// SetSubscriptionEnd sets (or clears, with nil) the personal subscription end date of a user.
func (svc *Service) SetSubscriptionEnd(ctx context.Context, id string, end *core.Date) (User, error) {
	usr, err := svc.repo.GetUser(ctx, GetFilter{ID: id})
	if err != nil {
		return User{}, err
	}
	usr.SubscriptionEnd = end
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *Service) ResetPassword(ctx context.Context, id string, data ResetUserPassword) (User, error) {
	usr, err := svc.repo.GetUser(ctx, GetFilter{ID: id})
	if err != nil {
		return User{}, err
	}
	if err = data.Validate(svc.validate, usr); err != nil {
		return User{}, err
	}
	if err = usr.SetPassword(data.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	return svc.repo.UpdateUser(ctx, usr)
}

// Authenticate finds the user of a school by mobile and checks the password.
// Unknown mobiles and wrong passwords both yield ErrNotFound.
func (svc *Service) Authenticate(ctx context.Context, schoolID, mobile, pwd string) (User, error) {
	usr, err := svc.GetByMobile(ctx, schoolID, mobile)
	if err != nil {
		return User{}, err
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrNotFound
	}
	return usr, nil
}

func (svc *Service) Delete(ctx context.Context, id string) error {
	return svc.repo.DeleteUser(ctx, id)
}
