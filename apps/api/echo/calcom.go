package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Akr1040317/hiveUniDash/core/calendar"
	"github.com/Akr1040317/hiveUniDash/services/calcom"
)

type calcomApi struct {
	deps ServerDeps
}

func registerCalcomAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := calcomApi{deps: deps}

	cg := g.Group("/calcom", jwt)
	cg.GET("/bookings", api.bookings)
	cg.GET("/event-types", api.eventTypes)
	cg.GET("/status", api.status)
	cg.GET("/proxy", api.proxy)
}

// bookings lists Cal.com bookings as calendar entries. ?period narrows to
// today, week or month; ?from/?to give an explicit date range.
func (api *calcomApi) bookings(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	region := ctx.QueryParam("region")

	var (
		events []calendar.Event
		err    error
	)
	switch ctx.QueryParam("period") {
	case "today":
		events, err = api.deps.Calcom.Today(reqCtx, region)
	case "week":
		events, err = api.deps.Calcom.ThisWeek(reqCtx, region)
	case "month":
		events, err = api.deps.Calcom.ThisMonth(reqCtx, region)
	default:
		rng := calendar.Range{From: ctx.QueryParam("from"), To: ctx.QueryParam("to")}
		events, err = api.deps.Calcom.Bookings(reqCtx, region, rng)
	}
	if err != nil {
		return calcomHTTPError(err)
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *calcomApi) eventTypes(ctx echo.Context) error {
	types, err := api.deps.Calcom.EventTypes(ctx.Request().Context())
	if err != nil {
		return calcomHTTPError(err)
	}
	return ctx.JSON(http.StatusOK, types)
}

// status reports whether the Cal.com integration is reachable with the
// configured credentials.
func (api *calcomApi) status(ctx echo.Context) error {
	if err := api.deps.Calcom.TestConnection(ctx.Request().Context()); err != nil {
		return ctx.JSON(http.StatusOK, echo.Map{"connected": false, "error": err.Error()})
	}
	return ctx.JSON(http.StatusOK, echo.Map{"connected": true})
}

// proxy forwards a raw bookings query with the server-held API key. The
// upstream status and body pass through untouched.
func (api *calcomApi) proxy(ctx echo.Context) error {
	params := map[string]string{
		"username":  ctx.QueryParam("username"),
		"startTime": ctx.QueryParam("startTime"),
		"endTime":   ctx.QueryParam("endTime"),
		"type":      ctx.QueryParam("type"),
	}
	status, body, err := api.deps.Calcom.Proxy(ctx.Request().Context(), params)
	if err != nil {
		return echo.NewHTTPError(status, err.Error())
	}
	return ctx.JSONBlob(status, body)
}

func calcomHTTPError(err error) error {
	switch errors.Cause(err) {
	case calcom.ErrUnauthorized:
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case calcom.ErrForbidden:
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case calcom.ErrNotFound:
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if apiErr, ok := errors.Cause(err).(*calcom.APIError); ok {
		return echo.NewHTTPError(http.StatusBadGateway, apiErr.Error())
	}
	return errors.Wrap(err, "fetching Cal.com bookings")
}
