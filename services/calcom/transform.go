package calcom

import (
	"fmt"
	"strings"

	"github.com/Akr1040317/hiveUniDash/core/calendar"
)

type booking struct {
	ID          int    `json:"id"`
	UID         string `json:"uid"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"startTime"` // RFC 3339
	EndTime     string `json:"endTime"`
	Status      string `json:"status"`
	EventType   struct {
		Slug  string `json:"slug"`
		Title string `json:"title"`
	} `json:"eventType"`
	Attendees []struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"attendees"`
	Location string `json:"location"`
}

// transform maps bookings to calendar entries, dropping ones whose event
// type the config filters out. Cancelled bookings stay in, flagged, so
// the calendar can strike them through instead of silently losing them.
func (c *Client) transform(bookings []booking) []calendar.Event {
	events := make([]calendar.Event, 0, len(bookings))
	for _, bk := range bookings {
		if !c.eventTypeAllowed(bk.EventType.Slug, bk.EventType.Title) {
			continue
		}

		startDate, startTime := splitTimestamp(bk.StartTime)
		endDate, endTime := splitTimestamp(bk.EndTime)

		attendees := make([]string, 0, len(bk.Attendees))
		for _, att := range bk.Attendees {
			if att.Email != "" {
				attendees = append(attendees, att.Email)
			}
		}

		events = append(events, calendar.Event{
			ID:          fmt.Sprintf("%s-%d", calendar.SourceBooking, bk.ID),
			Title:       bk.Title,
			Description: bk.Description,
			SourceType:  calendar.SourceBooking,
			StartDate:   startDate,
			EndDate:     endDate,
			StartTime:   startTime,
			EndTime:     endTime,
			Location:    bk.Location,
			Attendees:   attendees,
			Priority:    "medium",
			Cancelled:   strings.EqualFold(bk.Status, "cancelled"),
			Original:    bk,
		})
	}
	return events
}

// eventTypeAllowed applies the configured filters. A non-empty allow-list
// wins: the deny-list is only consulted when no allow-list is set.
func (c *Client) eventTypeAllowed(slug, title string) bool {
	if len(c.conf.IncludedEventTypes) > 0 {
		return matchesAny(c.conf.IncludedEventTypes, slug, title)
	}
	if len(c.conf.ExcludedEventTypes) > 0 {
		return !matchesAny(c.conf.ExcludedEventTypes, slug, title)
	}
	return true
}

func matchesAny(patterns []string, slug, title string) bool {
	for _, pattern := range patterns {
		if strings.EqualFold(pattern, slug) || strings.EqualFold(pattern, title) {
			return true
		}
	}
	return false
}

// splitTimestamp breaks an RFC 3339 timestamp into the calendar's date and
// wall-clock parts by splitting on the literal T. The upstream value is
// taken at face value, no timezone conversion, so the booking lands on
// the same day Cal.com says it does.
func splitTimestamp(ts string) (date, clock string) {
	idx := strings.IndexByte(ts, 'T')
	if idx <= 0 {
		return ts, ""
	}
	date = ts[:idx]
	if len(ts) >= idx+6 {
		clock = ts[idx+1 : idx+6]
	}
	return date, clock
}
