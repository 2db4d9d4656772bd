package dummydb

import (
	"context"
	"sort"
	"time"

	"github.com/vidyasetu/backend/core/vehicle"
)

type vehicleRepository struct {
	db *DB
}

var _ vehicle.Repository = (*vehicleRepository)(nil) // interface compliance check

func NewVehicleRepository(db *DB) *vehicleRepository {
	return &vehicleRepository{db: db}
}

func (repo *vehicleRepository) UpsertVehicle(_ context.Context, v vehicle.Vehicle) (vehicle.Vehicle, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if v.ID == "" {
		v.ID = newID()
	} else {
		orig, ok := repo.db.vehicles[v.ID]
		if !ok || orig.SchoolID != v.SchoolID {
			return vehicle.Vehicle{}, vehicle.ErrNotFound
		}
		v.LastLat, v.LastLng = orig.LastLat, orig.LastLng
	}
	v.DriverName = ""
	repo.db.vehicles[v.ID] = v
	v.DriverName = repo.db.userName(v.DriverID)
	return v, nil
}

func (repo *vehicleRepository) QueryVehicles(_ context.Context, schoolID string) ([]vehicle.Vehicle, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	vehicles := make([]vehicle.Vehicle, 0)
	for _, v := range repo.db.vehicles {
		if v.SchoolID != schoolID {
			continue
		}
		v.DriverName = repo.db.userName(v.DriverID)
		vehicles = append(vehicles, v)
	}
	sort.SliceStable(vehicles, func(i, j int) bool {
		if vehicles[i].Number == vehicles[j].Number {
			return vehicles[i].ID < vehicles[j].ID
		}
		return vehicles[i].Number < vehicles[j].Number
	})
	return vehicles, nil
}

func (repo *vehicleRepository) DeleteVehicle(_ context.Context, schoolID, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if v, ok := repo.db.vehicles[id]; !ok || v.SchoolID != schoolID {
		return vehicle.ErrNotFound
	}
	delete(repo.db.vehicles, id)
	return nil
}

func (repo *vehicleRepository) UpdateLocation(_ context.Context, driverID string, loc vehicle.Location, at time.Time) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	found := false
	for id, v := range repo.db.vehicles {
		if driverID == "" || v.DriverID != driverID {
			continue
		}
		lat, lng := loc.Lat, loc.Lng
		v.LastLat, v.LastLng, v.UpdatedAt = &lat, &lng, at.UTC()
		repo.db.vehicles[id] = v
		found = true
	}
	if !found {
		return vehicle.ErrNotFound
	}
	return nil
}
