package user

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/vidyasetu/backend/core"
)

// Role is the closed set of roles a user can hold in a school.
// Switches over Role must list every constant (enforced by the exhaustive linter).
type Role string

const (
	RolePrincipal Role = "principal"
	RoleTeacher   Role = "teacher"
	RoleDriver    Role = "driver"
	RoleParent    Role = "parent"
	RoleStudent   Role = "student"
	RoleAdmin     Role = "admin"
)

var AllRoles = []Role{RolePrincipal, RoleTeacher, RoleDriver, RoleParent, RoleStudent, RoleAdmin}

func ParseRole(s string) (Role, error) {
	r := Role(core.CleanString(s, true /* lower */))
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RolePrincipal, RoleTeacher, RoleDriver, RoleParent, RoleStudent, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// IsStaff reports whether r is employed by the school.
func (r Role) IsStaff() bool {
	switch r {
	case RolePrincipal, RoleTeacher, RoleDriver:
		return true
	case RoleParent, RoleStudent, RoleAdmin:
		return false
	}
	return false
}

// IsFamily reports whether r acts on behalf of a student.
func (r Role) IsFamily() bool {
	switch r {
	case RoleParent, RoleStudent:
		return true
	case RolePrincipal, RoleTeacher, RoleDriver, RoleAdmin:
		return false
	}
	return false
}

// NeedsPersonalSubscription reports whether access also depends on the user's own subscription.
func (r Role) NeedsPersonalSubscription() bool {
	return r.IsFamily()
}

// IsManager reports whether r administers the school (sees every notice, reviews leaves, ...).
func (r Role) IsManager() bool {
	switch r {
	case RolePrincipal, RoleAdmin:
		return true
	case RoleTeacher, RoleDriver, RoleParent, RoleStudent:
		return false
	}
	return false
}

// NoticeAudience is the notice target matching r. Students read what parents read.
func (r Role) NoticeAudience() string {
	switch r {
	case RoleStudent:
		return string(RoleParent)
	case RolePrincipal, RoleTeacher, RoleDriver, RoleParent, RoleAdmin:
		return string(r)
	}
	return string(r)
}

type User struct {
	ID              string     `json:"id"`
	SchoolID        string     `json:"school_id"`
	Name            string     `json:"name"`
	Mobile          string     `json:"mobile"`
	Role            Role       `json:"role"`
	PasswordHash    []byte     `json:"-"`
	SubscriptionEnd *core.Date `json:"subscription_end_date"`
	CreatedAt       time.Time  `json:"created_at"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	SchoolID        string     `json:"school_id" validate:"required"`
	Name            string     `json:"name" validate:"required,notblank"`
	Mobile          string     `json:"mobile" validate:"required,mobile"`
	Role            Role       `json:"role" validate:"required,allroles"`
	Password        string     `json:"password" validate:"required"`
	PasswordConfirm string     `json:"password_confirm" validate:"required,eqfield=Password"`
	SubscriptionEnd *core.Date `json:"subscription_end_date"`
}

func (nu *NewUser) Validate(validate *validator.Validate) error {
	nu.Name = core.CleanString(nu.Name)
	nu.Mobile = core.CleanString(nu.Mobile)
	nu.Role = Role(core.CleanString(string(nu.Role), true /* lower */))
	return validate.Struct(nu)
}

type ResetUserPassword struct {
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`

	name, mobile string
}

// Validate checks the new password against the policy, using the attributes of usr for similarity checks.
func (rp *ResetUserPassword) Validate(validate *validator.Validate, usr User) error {
	rp.name = usr.Name
	rp.mobile = usr.Mobile
	return validate.Struct(rp)
}

// GetFilter selects a single user: by ID, or by school and mobile.
type GetFilter struct {
	ID       string
	SchoolID string
	Mobile   string
}

type QueryFilter struct {
	SchoolID string
	Roles    []Role
}
