package vehicle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/user"
	"github.com/vidyasetu/backend/core/vehicle"
	"github.com/vidyasetu/backend/storage/database/dummy"
	"github.com/vidyasetu/backend/tests"
)

func TestService_timestamps(t *testing.T) {
	saved := time.Date(2024, 6, 15, 3, 30, 0, 0, time.UTC)
	moved := saved.Add(10 * time.Minute)
	now := saved
	core.NowFunc = func() time.Time { return now }
	defer func() { core.NowFunc = time.Now }()

	db, err := dummydb.Open()
	require.NoError(t, err)
	validate, _ := testutil.NewValidator()
	svc := vehicle.NewService(dummydb.NewVehicleRepository(db), validate)
	ctx := context.Background()
	driver := testutil.CreateUser(t, dummydb.NewUserRepository(db), "s1", "Kumar", "9000000003", "", user.RoleDriver)

	v, err := svc.Save(ctx, "s1", vehicle.NewVehicle{Number: " ka01ab1234 ", Type: "Bus", DriverID: driver.ID})
	require.NoError(t, err)
	assert.True(t, v.IsActive)
	assert.Equal(t, saved, v.UpdatedAt)

	now = moved
	require.NoError(t, svc.UpdateLocation(ctx, driver.ID, vehicle.Location{Lat: 12.97, Lng: 77.59}))
	assert.Error(t, svc.UpdateLocation(ctx, driver.ID, vehicle.Location{Lat: 91}))

	vs, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, moved, vs[0].UpdatedAt)
	require.NotNil(t, vs[0].LastLng)
	assert.Equal(t, 77.59, *vs[0].LastLng)
}
