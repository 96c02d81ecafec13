package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Akr1040317/hiveUniDash/core/analytics"
)

type analyticsApi struct {
	deps ServerDeps
}

func registerAnalyticsAPI(g *echo.Group, jwt, region echo.MiddlewareFunc, deps ServerDeps) {
	api := analyticsApi{deps: deps}

	ag := g.Group("/analytics", jwt, region)
	ag.GET("", api.query)
	ag.POST("", api.record)
}

func (api *analyticsApi) query(ctx echo.Context) error {
	var filter analytics.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return ctx.JSON(http.StatusOK, []analytics.Entry{})
	}
	if err := filter.Validate(); err != nil {
		return err
	}
	items := api.deps.AnalyticsSvc.Filter(ctx.Request().Context(), getContextRegion(ctx), filter)
	return ctx.JSON(http.StatusOK, items)
}

func (api *analyticsApi) record(ctx echo.Context) error {
	var data analytics.NewEntry
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEntry")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	entry, err := api.deps.AnalyticsSvc.Record(ctx.Request().Context(), getContextRegion(ctx), data)
	if err != nil {
		return errors.Wrap(err, "recording analytics entry")
	}
	return ctx.JSON(http.StatusCreated, entry)
}
