package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Akr1040317/hiveUniDash/core/bug"
	"github.com/Akr1040317/hiveUniDash/core/calendar"
	"github.com/Akr1040317/hiveUniDash/core/content"
	"github.com/Akr1040317/hiveUniDash/core/feature"
)

type dashboardApi struct {
	deps ServerDeps
}

func registerDashboardAPI(g *echo.Group, jwt, region echo.MiddlewareFunc, deps ServerDeps) {
	api := dashboardApi{deps: deps}

	dg := g.Group("/dashboard", jwt, region)
	dg.GET("", api.summary)
}

const (
	recentContentLimit = 5
	dueDateHorizonDays = 30
)

type DashboardSummary struct {
	Region        string        `json:"region"`
	Content       content.Stats `json:"content"`
	OpenBugs      int           `json:"open_bugs"`
	CriticalBugs  int           `json:"critical_bugs"`
	ActiveFeature int           `json:"features_in_progress"`
	TodayEvents   int           `json:"today_events"`

	RecentContent    []content.Content `json:"recent_content"`
	CriticalOpenBugs []bug.Bug         `json:"critical_open_bugs"`
	UpcomingDueDates []calendar.Event  `json:"upcoming_due_dates"`
}

// summary backs the dashboard landing cards. Every count degrades
// independently; a broken collection shows as zero, not as a failed page.
func (api *dashboardApi) summary(ctx echo.Context) error {
	region := getContextRegion(ctx)
	reqCtx := ctx.Request().Context()

	summary := DashboardSummary{
		Region:           region,
		Content:          api.deps.ContentSvc.Stats(reqCtx, region),
		RecentContent:    []content.Content{},
		CriticalOpenBugs: []bug.Bug{},
		UpcomingDueDates: []calendar.Event{},
	}

	for _, c := range api.deps.ContentSvc.Filter(reqCtx, region, content.QueryFilter{}) {
		if len(summary.RecentContent) == recentContentLimit {
			break
		}
		summary.RecentContent = append(summary.RecentContent, c)
	}

	for _, b := range api.deps.BugSvc.Filter(reqCtx, region, bug.QueryFilter{}) {
		open := b.Status != bug.StatusResolved
		if open {
			summary.OpenBugs++
		}
		if b.IsCritical() {
			summary.CriticalBugs++
			if open {
				summary.CriticalOpenBugs = append(summary.CriticalOpenBugs, b)
			}
		}
	}

	for _, f := range api.deps.FeatureSvc.Filter(reqCtx, region, feature.QueryFilter{}) {
		if f.Status == feature.StatusInDevelopment || f.Status == feature.StatusTesting {
			summary.ActiveFeature++
		}
	}

	now := time.Now().UTC()
	today := now.Format("2006-01-02")
	horizon := now.AddDate(0, 0, dueDateHorizonDays).Format("2006-01-02")
	// aggregator output is already date-ascending
	for _, evt := range api.deps.Aggregator.Events(reqCtx, region, calendar.Range{To: horizon}, true) {
		if evt.StartDate == today {
			summary.TodayEvents++
		}
		if evt.StartDate >= today && evt.StartDate <= horizon {
			summary.UpcomingDueDates = append(summary.UpcomingDueDates, evt)
		}
	}

	return ctx.JSON(http.StatusOK, summary)
}
