package student

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vidyasetu/backend/core"
)

// Student is a pupil of a school. A student may exist before any parent or login account is linked.
type Student struct {
	ID            string    `json:"id"`
	SchoolID      string    `json:"school_id"`
	Name          string    `json:"name"`
	ClassName     string    `json:"class_name"`
	Section       string    `json:"section"`
	FatherName    string    `json:"father_name"`
	ParentUserID  string    `json:"parent_user_id,omitempty"`
	StudentUserID string    `json:"student_user_id,omitempty"`
	ParentName    string    `json:"parent_name,omitempty"`   // read-only, joined from the parent user
	ParentMobile  string    `json:"parent_mobile,omitempty"` // read-only, joined from the parent user
	CreatedAt     time.Time `json:"created_at"`              // UTC
}

type NewStudent struct {
	SchoolID      string `json:"school_id" validate:"required"`
	Name          string `json:"name" validate:"required,notblank"`
	ClassName     string `json:"class_name" validate:"required,notblank"`
	Section       string `json:"section"`
	FatherName    string `json:"father_name"`
	ParentUserID  string `json:"parent_user_id"`
	StudentUserID string `json:"student_user_id"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.ClassName = core.CleanString(ns.ClassName)
	ns.Section = core.CleanString(ns.Section)
	ns.FatherName = core.CleanString(ns.FatherName)
	return validate.Struct(ns)
}

// Link attaches login accounts to a student. Empty fields are left untouched.
type Link struct {
	ParentUserID  string `json:"parent_user_id"`
	StudentUserID string `json:"student_user_id"`
}

// QueryFilter applies AND on the non-empty fields. Name matches exactly.
type QueryFilter struct {
	SchoolID      string
	ClassName     string
	ParentUserID  string
	StudentUserID string
	Name          string
}
