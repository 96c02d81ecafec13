package calcom

import (
	"fmt"
	"time"

	"github.com/Akr1040317/hiveUniDash/core/calendar"
)

// mockEvents returns a few sample bookings spread over the coming days.
// IDs carry a mock marker so the UI and tests can tell them from real
// bookings.
func (c *Client) mockEvents() []calendar.Event {
	loc := c.location()
	now := time.Now().In(loc)

	samples := []struct {
		title     string
		dayOffset int
		start     string
		end       string
	}{
		{"Parent Consultation", 0, "10:00", "10:30"},
		{"Coaching Session", 1, "16:00", "17:00"},
		{"Team Standup", 2, "09:00", "09:15"},
	}

	events := make([]calendar.Event, 0, len(samples))
	for i, s := range samples {
		day := now.AddDate(0, 0, s.dayOffset).Format("2006-01-02")
		events = append(events, calendar.Event{
			ID:         fmt.Sprintf("%s-mock-%d", calendar.SourceBooking, i+1),
			Title:      s.title,
			SourceType: calendar.SourceBooking,
			StartDate:  day,
			StartTime:  s.start,
			EndTime:    s.end,
			Priority:   "medium",
		})
	}
	return events
}
