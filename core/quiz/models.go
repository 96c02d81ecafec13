package quiz

import (
	"time"

	"github.com/Akr1040317/hiveUniDash/core"
)

// Default webinar slot when a scheduled quiz carries no times.
const (
	DefaultStartTime = "18:00"
	DefaultEndTime   = "19:00"
)

// Quiz is a practice set. Ones flagged as webinars are hosted live and
// surface on the team calendar.
type Quiz struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	Title         string    `json:"title" bson:"title"`
	Description   string    `json:"description,omitempty" bson:"description,omitempty"`
	WordCount     int       `json:"word_count,omitempty" bson:"wordCount,omitempty"`
	Difficulty    string    `json:"difficulty,omitempty" bson:"difficulty,omitempty"`
	IsWebinar     bool      `json:"is_webinar" bson:"isWebinar"`
	ScheduledDate string    `json:"scheduled_date,omitempty" bson:"scheduledDate,omitempty"` // YYYY-MM-DD
	StartTime     string    `json:"start_time,omitempty" bson:"startTime,omitempty"`         // HH:MM
	EndTime       string    `json:"end_time,omitempty" bson:"endTime,omitempty"`             // HH:MM
	MeetingLink   string    `json:"meeting_link,omitempty" bson:"meetingLink,omitempty"`
	Host          string    `json:"host,omitempty" bson:"host,omitempty"`
	Region        string    `json:"region" bson:"region"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"` // UTC
}

// WebinarWindow returns the live slot, defaulting to the usual evening
// hour when the quiz has no explicit times.
func (q Quiz) WebinarWindow() (start, end string) {
	start = core.FirstNonEmpty(q.StartTime, DefaultStartTime)
	end = core.FirstNonEmpty(q.EndTime, DefaultEndTime)
	return start, end
}

// NewQuiz contains information needed to add a new Quiz.
type NewQuiz struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description"`
	WordCount     int    `json:"word_count" validate:"omitempty,min=1"`
	Difficulty    string `json:"difficulty"`
	IsWebinar     bool   `json:"is_webinar"`
	ScheduledDate string `json:"scheduled_date" validate:"omitempty,datetime=2006-01-02"`
	StartTime     string `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime       string `json:"end_time" validate:"omitempty,datetime=15:04"`
	MeetingLink   string `json:"meeting_link" validate:"omitempty,url"`
	Host          string `json:"host"`
}

func (nq *NewQuiz) Validate() error {
	nq.Title = core.CleanString(nq.Title)
	return core.Validate.Struct(nq)
}
