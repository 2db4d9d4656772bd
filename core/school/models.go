package school

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vidyasetu/backend/core"
)

const DefaultTotalPeriods = 8

type School struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Code            string     `json:"school_code"`
	IsActive        bool       `json:"is_active"`
	SubscriptionEnd *core.Date `json:"subscription_end_date"`
	TotalPeriods    int        `json:"total_periods"`
	CreatedAt       time.Time  `json:"created_at"` // UTC
}

// Periods is the configured number of daily periods, falling back to DefaultTotalPeriods.
func (s School) Periods() int {
	if s.TotalPeriods <= 0 {
		return DefaultTotalPeriods
	}
	return s.TotalPeriods
}

// NewSchool contains information needed to register a new School.
type NewSchool struct {
	Name         string `json:"name" validate:"required,notblank"`
	Code         string `json:"school_code" validate:"required,schoolcode"`
	TotalPeriods int    `json:"total_periods" validate:"omitempty,periods"`
}

func (ns *NewSchool) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Code = core.CleanCode(ns.Code)
	return validate.Struct(ns)
}

type UpdatePeriods struct {
	TotalPeriods int `json:"total_periods" validate:"required,periods"`
}

// GetFilter selects a single school by ID or by code.
type GetFilter struct {
	ID   string
	Code string
}
