package vehicle

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
)

var ErrNotFound = errors.New("vehicle not found")

type Vehicle struct {
	ID         string    `json:"id"`
	SchoolID   string    `json:"school_id"`
	Number     string    `json:"vehicle_number"`
	Type       string    `json:"vehicle_type"`
	DriverID   string    `json:"driver_id,omitempty"`
	DriverName string    `json:"driver_name,omitempty"` // read-only, joined from the driver
	IsActive   bool      `json:"is_active"`
	LastLat    *float64  `json:"last_lat"`
	LastLng    *float64  `json:"last_lng"`
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

type NewVehicle struct {
	ID       string `json:"id"` // set to update an existing vehicle
	Number   string `json:"vehicle_number" validate:"required,notblank"`
	Type     string `json:"vehicle_type" validate:"required,notblank"`
	DriverID string `json:"driver_id"`
	IsActive *bool  `json:"is_active"`
}

func (nv *NewVehicle) Validate(validate *validator.Validate) error {
	nv.Number = core.CleanCode(nv.Number)
	nv.Type = core.CleanString(nv.Type)
	return validate.Struct(nv)
}

type Location struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

type (
	Repository interface {
		// UpsertVehicle inserts v, or updates it when v.ID is set.
		UpsertVehicle(ctx context.Context, v Vehicle) (Vehicle, error)
		QueryVehicles(ctx context.Context, schoolID string) ([]Vehicle, error)
		DeleteVehicle(ctx context.Context, schoolID, id string) error
		// UpdateLocation moves every vehicle assigned to the driver. ErrNotFound when there is none.
		UpdateLocation(ctx context.Context, driverID string, loc Location, at time.Time) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

func (svc *Service) List(ctx context.Context, schoolID string) ([]Vehicle, error) {
	return svc.repo.QueryVehicles(ctx, schoolID)
}

// Save creates or updates a vehicle. Vehicles are active unless stated otherwise.
func (svc *Service) Save(ctx context.Context, schoolID string, nv NewVehicle) (Vehicle, error) {
	if err := nv.Validate(svc.validate); err != nil {
		return Vehicle{}, err
	}
	active := true
	if nv.IsActive != nil {
		active = *nv.IsActive
	}
	v, err := svc.repo.UpsertVehicle(ctx, Vehicle{
		ID:        nv.ID,
		SchoolID:  schoolID,
		Number:    nv.Number,
		Type:      nv.Type,
		DriverID:  nv.DriverID,
		IsActive:  active,
		UpdatedAt: core.NowFunc().UTC(),
	})
	return v, errors.Wrap(err, "upserting vehicle")
}

func (svc *Service) Delete(ctx context.Context, schoolID, id string) error {
	return svc.repo.DeleteVehicle(ctx, schoolID, id)
}

func (svc *Service) UpdateLocation(ctx context.Context, driverID string, loc Location) error {
	if err := svc.validate.Struct(loc); err != nil {
		return err
	}
	return svc.repo.UpdateLocation(ctx, driverID, loc, core.NowFunc().UTC())
}
