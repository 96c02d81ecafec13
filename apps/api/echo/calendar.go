package echoapi

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/Akr1040317/hiveUniDash/core/calendar"
)

type calendarApi struct {
	deps ServerDeps

	mu      sync.Mutex
	loaders map[string]*calendar.Loader
}

func registerCalendarAPI(g *echo.Group, jwt, region echo.MiddlewareFunc, deps ServerDeps) {
	api := &calendarApi{deps: deps, loaders: make(map[string]*calendar.Loader)}

	cg := g.Group("/calendar", jwt, region)
	cg.GET("", api.query)
}

// query returns the region's unified calendar: feature and bug due dates,
// webinars, custom events and external bookings in one sorted list.
// ?from and ?to bound the view by date; ?include_external=false drops the
// Cal.com source.
func (api *calendarApi) query(ctx echo.Context) error {
	region := getContextRegion(ctx)
	rng := calendar.Range{
		From: ctx.QueryParam("from"),
		To:   ctx.QueryParam("to"),
	}
	includeExternal := ctx.QueryParam("include_external") != "false"

	loader := api.loader(region)
	events := loader.Load(ctx.Request().Context(), region, rng, includeExternal)
	if events == nil {
		// superseded by a newer refresh, serve whatever that one installed
		_, events = loader.Current()
	}
	return ctx.JSON(http.StatusOK, events)
}

// loader returns the region's refresh serializer, so overlapping requests
// for the same region cannot install a stale result over a fresher one.
func (api *calendarApi) loader(region string) *calendar.Loader {
	api.mu.Lock()
	defer api.mu.Unlock()
	ldr, ok := api.loaders[region]
	if !ok {
		ldr = calendar.NewLoader(api.deps.Aggregator)
		api.loaders[region] = ldr
	}
	return ldr
}
