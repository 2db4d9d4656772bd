package attendance

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/vidyasetu/backend/core"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLeave   Status = "leave"

	// StatusPending is reported when no attendance was marked for the day. It is never stored.
	StatusPending Status = "pending"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLeave:
		return true
	case StatusPending:
		return false
	}
	return false
}

type Record struct {
	ID        string    `json:"id"`
	SchoolID  string    `json:"school_id"`
	StudentID string    `json:"student_id"`
	MarkedBy  string    `json:"marked_by_user_id"`
	Date      core.Date `json:"date"`
	Status    Status    `json:"status"`
}

// ClassMark is an attendance row joined to its student's class.
type ClassMark struct {
	StudentID string `db:"student_id"`
	ClassName string `db:"class_name"`
	Status    Status `db:"status"`
}

type HistoryItem struct {
	ID           string    `json:"id"`
	Date         core.Date `json:"date"`
	Status       Status    `json:"status"`
	MarkedByName string    `json:"marked_by_name"`
}

type Entry struct {
	StudentID string `json:"student_id" validate:"required"`
	Status    Status `json:"status" validate:"required,oneof=present absent leave"`
}

// Batch is one class's attendance for a day.
type Batch struct {
	ClassName string  `json:"class_name" validate:"required,notblank"`
	Records   []Entry `json:"records" validate:"required,min=1,dive"`
}

func (b *Batch) Validate(validate *validator.Validate) error {
	b.ClassName = strings.TrimSpace(b.ClassName)
	return validate.Struct(b)
}
