package calendar

// Source types, also used as ID prefixes so entries derived from
// different collections can never collide.
const (
	SourceFeature = "feature"
	SourceBug     = "bug"
	SourceWebinar = "webinar"
	SourceEvent   = "event"
	SourceBooking = "calcom"
)

// Event is the unified calendar entry. Entries are derived from feature
// and bug due dates, webinar quizzes, manually scheduled events and
// Cal.com bookings; Original keeps the source record for detail views.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	SourceType  string      `json:"source_type"`
	StartDate   string      `json:"start_date"` // YYYY-MM-DD
	EndDate     string      `json:"end_date,omitempty"`
	StartTime   string      `json:"start_time,omitempty"` // HH:MM
	EndTime     string      `json:"end_time,omitempty"`
	Location    string      `json:"location,omitempty"`
	Attendees   []string    `json:"attendees,omitempty"`
	Priority    string      `json:"priority,omitempty"` // high | medium | low
	Cancelled   bool        `json:"cancelled,omitempty"`
	Original    interface{} `json:"original,omitempty"`
}

// Range bounds a calendar view by inclusive YYYY-MM-DD dates. A zero
// value on either side leaves that side open.
type Range struct {
	From string
	To   string
}

func (r Range) IsZero() bool { return r.From == "" && r.To == "" }
