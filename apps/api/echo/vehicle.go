package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core/vehicle"
)

type vehicleApi struct {
	deps Deps
}

func registerVehicleAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps Deps) {
	api := vehicleApi{deps: deps}

	vg := g.Group("/vehicles", jwt)
	vg.GET("", api.list)
	vg.POST("", api.save, managers)
	vg.DELETE("/:id", api.destroy, managers)
	vg.PUT("/location", api.updateLocation, driversOnly)
}

func (api *vehicleApi) list(ctx echo.Context) error {
	schoolID, err := managedSchoolID(ctx)
	if err != nil {
		return err
	}
	vehicles, err := api.deps.Vehicles.List(ctx.Request().Context(), schoolID)
	return api.deps.respondList(ctx, vehicles, err, "listing vehicles")
}

// save adds a vehicle, or updates the one with the given id.
func (api *vehicleApi) save(ctx echo.Context) error {
	schoolID, err := managedSchoolID(ctx)
	if err != nil {
		return err
	}
	var data vehicle.NewVehicle
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewVehicle")
	}
	v, err := api.deps.Vehicles.Save(ctx.Request().Context(), schoolID, data)
	return api.deps.respondObject(ctx, http.StatusOK, v, err, "saving vehicle")
}

func (api *vehicleApi) destroy(ctx echo.Context) error {
	schoolID, err := managedSchoolID(ctx)
	if err != nil {
		return err
	}
	err = api.deps.Vehicles.Delete(ctx.Request().Context(), schoolID, ctx.Param("id"))
	return api.deps.respondAction(ctx, err, "deleting vehicle")
}

// updateLocation moves the vehicles driven by the caller.
func (api *vehicleApi) updateLocation(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	var data vehicle.Location
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Location")
	}
	err = api.deps.Vehicles.UpdateLocation(ctx.Request().Context(), claims.Subject, data)
	return api.deps.respondAction(ctx, err, "updating location")
}
