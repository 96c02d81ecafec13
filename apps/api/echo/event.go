package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Akr1040317/hiveUniDash/core/event"
)

type eventApi struct {
	deps ServerDeps
}

func registerEventAPI(g *echo.Group, jwt, region echo.MiddlewareFunc, deps ServerDeps) {
	api := eventApi{deps: deps}

	eg := g.Group("/events", jwt, region)
	eg.GET("", api.query)
	eg.POST("", api.create)
	eg.GET("/:id", api.retrieve)
	eg.PUT("/:id", api.update)
	eg.DELETE("/:id", api.destroy)
}

func (api *eventApi) query(ctx echo.Context) error {
	items := api.deps.EventSvc.All(ctx.Request().Context(), getContextRegion(ctx))
	return ctx.JSON(http.StatusOK, items)
}

func (api *eventApi) create(ctx echo.Context) error {
	var data event.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	evt, err := api.deps.EventSvc.Create(ctx.Request().Context(), getContextRegion(ctx), data)
	if err != nil {
		return errors.Wrap(err, "creating event")
	}
	return ctx.JSON(http.StatusCreated, evt)
}

func (api *eventApi) retrieve(ctx echo.Context) error {
	evt, err := api.deps.EventSvc.GetByID(ctx.Request().Context(), getContextRegion(ctx), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == event.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding event by ID")
	}
	return ctx.JSON(http.StatusOK, evt)
}

func (api *eventApi) update(ctx echo.Context) error {
	var data event.UpdateEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEvent")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	evt, err := api.deps.EventSvc.Update(ctx.Request().Context(), getContextRegion(ctx), ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == event.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating event")
	}
	return ctx.JSON(http.StatusOK, evt)
}

func (api *eventApi) destroy(ctx echo.Context) error {
	if err := api.deps.EventSvc.Delete(ctx.Request().Context(), getContextRegion(ctx), ctx.Param("id")); err != nil {
		if errors.Cause(err) == event.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting event")
	}
	return ctx.NoContent(http.StatusNoContent)
}
