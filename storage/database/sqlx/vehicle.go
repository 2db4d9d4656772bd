package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/vehicle"
)

type vehicleRow struct {
	ID         string       `db:"id"`
	SchoolID   string       `db:"school_id"`
	Number     string       `db:"vehicle_number"`
	Type       string       `db:"vehicle_type"`
	DriverID   null.String  `db:"driver_id"`
	DriverName null.String  `db:"driver_name"`
	IsActive   bool         `db:"is_active"`
	LastLat    null.Float64 `db:"last_lat"`
	LastLng    null.Float64 `db:"last_lng"`
	UpdatedAt  time.Time    `db:"updated_at"`
}

func (r vehicleRow) unboil() vehicle.Vehicle {
	return vehicle.Vehicle{
		ID:         r.ID,
		SchoolID:   r.SchoolID,
		Number:     r.Number,
		Type:       r.Type,
		DriverID:   r.DriverID.String,
		DriverName: r.DriverName.String,
		IsActive:   r.IsActive,
		LastLat:    r.LastLat.Ptr(),
		LastLng:    r.LastLng.Ptr(),
		UpdatedAt:  r.UpdatedAt.UTC(),
	}
}

func vehicleSelect() sq.SelectBuilder {
	return psql.Select(
		"v.id", "v.school_id", "v.vehicle_number", "v.vehicle_type", "v.driver_id", "d.name AS driver_name",
		"v.is_active", "v.last_lat", "v.last_lng", "v.updated_at",
	).From("vehicles v").LeftJoin("users d ON d.id = v.driver_id")
}

type vehicleRepository struct {
	db core.DB
}

var _ vehicle.Repository = (*vehicleRepository)(nil) // interface compliance check

func NewVehicleRepository(db core.DB) *vehicleRepository {
	return &vehicleRepository{db: db}
}

func (repo vehicleRepository) UpsertVehicle(ctx context.Context, v vehicle.Vehicle) (vehicle.Vehicle, error) {
	driverID := null.NewString(v.DriverID, v.DriverID != "")
	if v.ID == "" {
		v.ID = newID()
		q := psql.Insert("vehicles").
			Columns("id", "school_id", "vehicle_number", "vehicle_type", "driver_id", "is_active", "updated_at").
			Values(v.ID, v.SchoolID, v.Number, v.Type, driverID, v.IsActive, v.UpdatedAt.UTC())
		if _, err := execQuery(ctx, repo.db, q); err != nil {
			return vehicle.Vehicle{}, errors.Wrap(err, "inserting vehicle")
		}
	} else {
		q := psql.Update("vehicles").SetMap(map[string]interface{}{
			"vehicle_number": v.Number,
			"vehicle_type":   v.Type,
			"driver_id":      driverID,
			"is_active":      v.IsActive,
			"updated_at":     v.UpdatedAt.UTC(),
		}).Where(sq.Eq{"id": v.ID, "school_id": v.SchoolID})
		n, err := execQuery(ctx, repo.db, q)
		if err != nil {
			return vehicle.Vehicle{}, errors.Wrap(err, "updating vehicle")
		}
		if n == 0 {
			return vehicle.Vehicle{}, vehicle.ErrNotFound
		}
	}

	var row vehicleRow
	if err := getQuery(ctx, repo.db, &row, vehicleSelect().Where(sq.Eq{"v.id": v.ID})); err != nil {
		return vehicle.Vehicle{}, trapNoRowsErr(err, vehicle.ErrNotFound, "getting vehicle")
	}
	return row.unboil(), nil
}

func (repo vehicleRepository) QueryVehicles(ctx context.Context, schoolID string) ([]vehicle.Vehicle, error) {
	var rows []vehicleRow
	q := vehicleSelect().Where(sq.Eq{"v.school_id": schoolID}).OrderBy("v.vehicle_number", "v.id")
	if err := selectQuery(ctx, repo.db, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying vehicles")
	}
	vehicles := make([]vehicle.Vehicle, 0, len(rows))
	for _, r := range rows {
		vehicles = append(vehicles, r.unboil())
	}
	return vehicles, nil
}

func (repo vehicleRepository) DeleteVehicle(ctx context.Context, schoolID, id string) error {
	n, err := execQuery(ctx, repo.db, psql.Delete("vehicles").Where(sq.Eq{"id": id, "school_id": schoolID}))
	if err != nil {
		return errors.Wrap(err, "deleting vehicle")
	}
	if n == 0 {
		return vehicle.ErrNotFound
	}
	return nil
}

func (repo vehicleRepository) UpdateLocation(ctx context.Context, driverID string, loc vehicle.Location, at time.Time) error {
	q := psql.Update("vehicles").SetMap(map[string]interface{}{
		"last_lat":   loc.Lat,
		"last_lng":   loc.Lng,
		"updated_at": at.UTC(),
	}).Where(sq.Eq{"driver_id": driverID})
	n, err := execQuery(ctx, repo.db, q)
	if err != nil {
		return errors.Wrap(err, "updating vehicle location")
	}
	if n == 0 {
		return vehicle.ErrNotFound
	}
	return nil
}
