package calendar

import (
	"context"
	"sort"
	"sync"

	"github.com/Akr1040317/hiveUniDash/core"
	"github.com/Akr1040317/hiveUniDash/core/bug"
	"github.com/Akr1040317/hiveUniDash/core/event"
	"github.com/Akr1040317/hiveUniDash/core/feature"
	"github.com/Akr1040317/hiveUniDash/core/quiz"
)

// BookingSource is any service that can list externally booked meetings
// as calendar entries within a date range. A source that is not
// configured returns an empty slice, not an error.
type BookingSource interface {
	Bookings(ctx context.Context, region string, rng Range) ([]Event, error)
}

// Aggregator merges every schedulable collection of a region into one
// calendar. Sources are fetched concurrently and independently: a failing
// source contributes nothing, the rest still show.
type Aggregator struct {
	featureSvc *feature.Service
	bugSvc     *bug.Service
	quizSvc    *quiz.Service
	eventSvc   *event.Service
	bookings   BookingSource
	logger     core.Logger
}

func NewAggregator(
	featureSvc *feature.Service,
	bugSvc *bug.Service,
	quizSvc *quiz.Service,
	eventSvc *event.Service,
	bookings BookingSource,
	logger core.Logger,
) *Aggregator {
	return &Aggregator{
		featureSvc: featureSvc,
		bugSvc:     bugSvc,
		quizSvc:    quizSvc,
		eventSvc:   eventSvc,
		bookings:   bookings,
		logger:     logger,
	}
}

// Events builds the region's full calendar: every feature and bug with a
// due date, every webinar quiz with a scheduled date, every custom event
// and, when includeExternal is set, every external booking, sorted by
// start date then start time. The range is forwarded to the booking
// source so the upstream query stays bounded to the visible window;
// internal sources are cheap enough to fetch whole.
func (agg *Aggregator) Events(ctx context.Context, region string, rng Range, includeExternal bool) []Event {
	var (
		wg      sync.WaitGroup
		results [5][]Event
	)

	fetch := func(idx int, fn func() []Event) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[idx] = fn()
		}()
	}

	fetch(0, func() []Event { return agg.featureEvents(ctx, region) })
	fetch(1, func() []Event { return agg.bugEvents(ctx, region) })
	fetch(2, func() []Event { return agg.webinarEvents(ctx, region) })
	fetch(3, func() []Event { return agg.customEvents(ctx, region) })
	if includeExternal {
		fetch(4, func() []Event { return agg.bookingEvents(ctx, region, rng) })
	}
	wg.Wait()

	merged := make([]Event, 0, len(results[0])+len(results[1])+len(results[2])+len(results[3])+len(results[4]))
	for _, evts := range results {
		merged = append(merged, evts...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].StartDate != merged[j].StartDate {
			return merged[i].StartDate < merged[j].StartDate
		}
		return merged[i].StartTime < merged[j].StartTime
	})
	return merged
}

func (agg *Aggregator) featureEvents(ctx context.Context, region string) []Event {
	items := agg.featureSvc.Filter(ctx, region, feature.QueryFilter{})
	evts := make([]Event, 0, len(items))
	for _, f := range items {
		if f.DueDate == "" {
			continue
		}
		evts = append(evts, Event{
			ID:          SourceFeature + "-" + f.ID,
			Title:       "Feature Due: " + f.Title,
			Description: f.Description,
			SourceType:  SourceFeature,
			StartDate:   f.DueDate,
			Priority:    f.Priority,
			Original:    f,
		})
	}
	return evts
}

func (agg *Aggregator) bugEvents(ctx context.Context, region string) []Event {
	items := agg.bugSvc.Filter(ctx, region, bug.QueryFilter{})
	evts := make([]Event, 0, len(items))
	for _, b := range items {
		if b.DueDate == "" {
			continue
		}
		evts = append(evts, Event{
			ID:          SourceBug + "-" + b.ID,
			Title:       "Bug Due: " + b.DisplayTitle(region),
			Description: b.Description,
			SourceType:  SourceBug,
			StartDate:   b.DueDate,
			Priority:    severityPriority(b.DisplaySeverity(region)),
			Original:    b,
		})
	}
	return evts
}

func (agg *Aggregator) webinarEvents(ctx context.Context, region string) []Event {
	items := agg.quizSvc.Webinars(ctx, region)
	evts := make([]Event, 0, len(items))
	for _, q := range items {
		if q.ScheduledDate == "" {
			continue
		}
		start, end := q.WebinarWindow()
		evts = append(evts, Event{
			ID:          SourceWebinar + "-" + q.ID,
			Title:       "Webinar: " + q.Title,
			Description: q.Description,
			SourceType:  SourceWebinar,
			StartDate:   q.ScheduledDate,
			StartTime:   start,
			EndTime:     end,
			Location:    q.MeetingLink,
			Priority:    "medium",
			Original:    q,
		})
	}
	return evts
}

func (agg *Aggregator) customEvents(ctx context.Context, region string) []Event {
	items := agg.eventSvc.All(ctx, region)
	evts := make([]Event, 0, len(items))
	for _, e := range items {
		evts = append(evts, Event{
			ID:          SourceEvent + "-" + e.ID,
			Title:       e.Title,
			Description: e.Description,
			SourceType:  SourceEvent,
			StartDate:   e.Date,
			StartTime:   e.StartTime,
			EndTime:     e.EndTime,
			Location:    e.Location,
			Attendees:   e.Attendees,
			Priority:    "medium",
			Original:    e,
		})
	}
	return evts
}

func (agg *Aggregator) bookingEvents(ctx context.Context, region string, rng Range) []Event {
	if agg.bookings == nil {
		return nil
	}
	evts, err := agg.bookings.Bookings(ctx, region, rng)
	if err != nil {
		agg.logger.Error("fetching bookings: "+err.Error(), err)
		return nil
	}
	return evts
}

func severityPriority(severity string) string {
	switch severity {
	case bug.SeverityCritical, bug.SeverityHigh:
		return "high"
	case bug.SeverityMedium:
		return "medium"
	default:
		return "low"
	}
}
