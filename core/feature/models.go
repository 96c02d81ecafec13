package feature

import (
	"time"

	"github.com/Akr1040317/hiveUniDash/core"
)

// Pipeline columns, in board order.
const (
	StatusBacklog       = "backlog"
	StatusPlanning      = "planning"
	StatusInDevelopment = "in_development"
	StatusTesting       = "testing"
	StatusCompleted     = "completed"
)

const (
	CategorySoftware  = "software"
	CategoryContent   = "content"
	CategoryMarketing = "marketing"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

const Unassigned = "Unassigned"

var (
	Statuses   = []string{StatusBacklog, StatusPlanning, StatusInDevelopment, StatusTesting, StatusCompleted}
	Categories = []string{CategorySoftware, CategoryContent, CategoryMarketing}
	Priorities = []string{PriorityHigh, PriorityMedium, PriorityLow}
)

type Feature struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Status      string    `json:"status" bson:"status"`
	Category    string    `json:"category,omitempty" bson:"category,omitempty"`
	Priority    string    `json:"priority,omitempty" bson:"priority,omitempty"`
	Assignee    string    `json:"assignee,omitempty" bson:"assignee,omitempty"`
	DueDate     string    `json:"due_date,omitempty" bson:"dueDate,omitempty"` // YYYY-MM-DD
	Region      string    `json:"region" bson:"region"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"` // UTC
}

// BoardStatus maps unrecognized or missing statuses to the backlog column
// for display. The stored value is left untouched.
func (f Feature) BoardStatus() string {
	for _, st := range Statuses {
		if f.Status == st {
			return st
		}
	}
	return StatusBacklog
}

// NewFeature contains information needed to add a new Feature.
type NewFeature struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=backlog planning in_development testing completed"`
	Category    string `json:"category" validate:"omitempty,oneof=software content marketing"`
	Priority    string `json:"priority" validate:"omitempty,oneof=high medium low"`
	Assignee    string `json:"assignee"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

func (nf *NewFeature) Validate() error {
	nf.Title = core.CleanString(nf.Title)
	if nf.Status == "" {
		nf.Status = StatusBacklog
	}
	if nf.Priority == "" {
		nf.Priority = PriorityMedium
	}
	if nf.Assignee == "" {
		nf.Assignee = Unassigned
	}
	return core.Validate.Struct(nf)
}

// UpdateFeature defines what information may be provided to modify an
// existing Feature. Empty fields are left untouched.
type UpdateFeature struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"omitempty,oneof=software content marketing"`
	Priority    string `json:"priority" validate:"omitempty,oneof=high medium low"`
	Assignee    string `json:"assignee"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

func (uf *UpdateFeature) Validate() error {
	uf.Title = core.CleanString(uf.Title)
	return core.Validate.Struct(uf)
}

// QueryFilter narrows feature listings. The UI sends "all" to mean no
// constraint.
type QueryFilter struct {
	Status   string `query:"status"`
	Category string `query:"category"`
	Priority string `query:"priority"`
}

func (qf *QueryFilter) Clean() {
	if qf.Status == "all" {
		qf.Status = ""
	}
	if qf.Category == "all" {
		qf.Category = ""
	}
	if qf.Priority == "all" {
		qf.Priority = ""
	}
}
