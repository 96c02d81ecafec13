package event

import (
	"time"

	"github.com/Akr1040317/hiveUniDash/core"
)

// Event types shown on the team calendar.
const (
	TypeMeeting       = "meeting"
	TypeDeadline      = "deadline"
	TypeRelease       = "release"
	TypeContentReview = "content_review"
	TypeTeamSync      = "team_sync"
	TypeOther         = "other"
)

// RegionBoth marks an event visible to every workspace.
const RegionBoth = "both"

var Types = []string{TypeMeeting, TypeDeadline, TypeRelease, TypeContentReview, TypeTeamSync, TypeOther}

// Event is a manually scheduled calendar entry, as opposed to the derived
// entries the aggregator builds from due dates and bookings.
type Event struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Type        string    `json:"type" bson:"type"`
	Date        string    `json:"date" bson:"date"`                           // YYYY-MM-DD
	StartTime   string    `json:"start_time,omitempty" bson:"startTime,omitempty"` // HH:MM
	EndTime     string    `json:"end_time,omitempty" bson:"endTime,omitempty"`     // HH:MM
	Location    string    `json:"location,omitempty" bson:"location,omitempty"`
	Attendees   []string  `json:"attendees,omitempty" bson:"attendees,omitempty"`
	Region      string    `json:"region" bson:"region"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"` // UTC
}

// NewEvent contains information needed to schedule a new Event.
type NewEvent struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description"`
	Type        string   `json:"type" validate:"omitempty,oneof=meeting deadline release content_review team_sync other"`
	Date        string   `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string   `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime     string   `json:"end_time" validate:"omitempty,datetime=15:04"`
	Location    string   `json:"location"`
	Attendees   []string `json:"attendees" validate:"omitempty,dive,email"`
	// Region may be a workspace or "both" to show everywhere.
	Region string `json:"region" validate:"omitempty"`
}

func (ne *NewEvent) Validate() error {
	ne.Title = core.CleanString(ne.Title)
	if ne.Type == "" {
		ne.Type = TypeOther
	}
	return core.Validate.Struct(ne)
}

// UpdateEvent defines what information may be provided to modify an
// existing Event. Empty fields are left untouched.
type UpdateEvent struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type" validate:"omitempty,oneof=meeting deadline release content_review team_sync other"`
	Date        string   `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime   string   `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime     string   `json:"end_time" validate:"omitempty,datetime=15:04"`
	Location    string   `json:"location"`
	Attendees   []string `json:"attendees" validate:"omitempty,dive,email"`
}

func (ue *UpdateEvent) Validate() error {
	ue.Title = core.CleanString(ue.Title)
	return core.Validate.Struct(ue)
}
