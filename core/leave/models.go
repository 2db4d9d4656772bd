package leave

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vidyasetu/backend/core"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Request holds what staff and student leaves have in common.
type Request struct {
	ID               string    `json:"id"`
	SchoolID         string    `json:"school_id"`
	Type             string    `json:"leave_type"`
	Start            core.Date `json:"start_date"`
	End              core.Date `json:"end_date"`
	Reason           string    `json:"reason"`
	Status           Status    `json:"status"`
	PrincipalComment string    `json:"principal_comment"`
	CreatedAt        time.Time `json:"created_at"` // UTC
}

type StaffLeave struct {
	Request
	UserID   string `json:"user_id"`
	UserName string `json:"user_name,omitempty"` // read-only, joined from the user
}

type StudentLeave struct {
	Request
	StudentID   string `json:"student_id"`
	ParentID    string `json:"parent_id"`
	StudentName string `json:"student_name,omitempty"` // read-only, joined from the student
}

type NewLeave struct {
	Type   string    `json:"leave_type" validate:"required,notblank"`
	Start  core.Date `json:"start_date" validate:"required"`
	End    core.Date `json:"end_date" validate:"required"`
	Reason string    `json:"reason"`
}

func (nl *NewLeave) Validate(validate *validator.Validate) error {
	nl.clean()
	if err := validate.Struct(nl); err != nil {
		return err
	}
	return nl.checkRange()
}

func (nl *NewLeave) clean() {
	nl.Type = core.CleanString(nl.Type)
	nl.Reason = core.CleanString(nl.Reason)
}

func (nl NewLeave) checkRange() error {
	if nl.End.Before(nl.Start) {
		return core.NewValidationError(nil, core.FieldError{Field: "end_date", Error: "end date cannot be before start date"})
	}
	return nil
}

type NewStudentLeave struct {
	NewLeave
	StudentID string `json:"student_id" validate:"required"`
}

func (nsl *NewStudentLeave) Validate(validate *validator.Validate) error {
	nsl.clean()
	if err := validate.Struct(nsl); err != nil {
		return err
	}
	return nsl.checkRange()
}

type Review struct {
	Status  Status `json:"status" validate:"required,oneof=approved rejected"`
	Comment string `json:"principal_comment"`
}

// QueryFilter applies AND on the non-empty fields. Results are newest first.
type QueryFilter struct {
	SchoolID  string
	UserID    string
	StudentID string
	ParentID  string
	Limit     int
}
