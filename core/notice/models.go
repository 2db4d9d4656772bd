package notice

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vidyasetu/backend/core"
)

// TargetAll addresses a notice to every role.
const TargetAll = "all"

type Notice struct {
	ID        string    `json:"id"`
	SchoolID  string    `json:"school_id"`
	Date      core.Date `json:"date"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Category  string    `json:"category"`
	Target    string    `json:"target"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

type NewNotice struct {
	Date     core.Date `json:"date"`
	Title    string    `json:"title" validate:"required,notblank"`
	Message  string    `json:"message" validate:"required,notblank"`
	Category string    `json:"category" validate:"required,notblank"`
	Target   string    `json:"target" validate:"required,notice_target"`
}

func (nn *NewNotice) Validate(validate *validator.Validate) error {
	nn.Title = core.CleanString(nn.Title)
	nn.Message = core.CleanString(nn.Message)
	nn.Category = core.CleanString(nn.Category)
	nn.Target = core.CleanString(nn.Target, true /* lower */)
	return validate.Struct(nn)
}

// QueryFilter selects a school's notices, newest first. Nil Targets matches every target.
type QueryFilter struct {
	SchoolID string
	Targets  []string
	Limit    int
}
