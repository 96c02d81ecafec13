package bug

import (
	"fmt"
	"time"

	"github.com/Akr1040317/hiveUniDash/core"
)

// Workflow states
const (
	StatusNew        = "new"
	StatusInProgress = "in_progress"
	StatusTesting    = "testing"
	StatusResolved   = "resolved"
)

// Severity levels, stored verbatim (the Dubai feedback form writes these
// full strings and the US tracker adopted them).
const (
	SeverityCritical = "Critical - System down"
	SeverityHigh     = "High - Major functionality broken"
	SeverityMedium   = "Medium - Affects functionality"
	SeverityLow      = "Low - Minor issue"
)

const Unassigned = "Unassigned"

var (
	Statuses   = []string{StatusNew, StatusInProgress, StatusTesting, StatusResolved}
	Severities = []string{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}
)

// Bug carries the union of both tenants' field shapes: the US tracker
// stores title/priority/reporter/platform while the Dubai feedback system
// stores subject/severity/name/device. Display* accessors resolve the
// per-tenant chains.
type Bug struct {
	ID          string `json:"id" bson:"_id,omitempty"`
	Title       string `json:"title,omitempty" bson:"title,omitempty"`
	Subject     string `json:"subject,omitempty" bson:"subject,omitempty"`
	Description string `json:"description" bson:"description"`
	Status      string `json:"status" bson:"status"`
	Severity    string `json:"severity,omitempty" bson:"severity,omitempty"`
	Priority    string `json:"priority,omitempty" bson:"priority,omitempty"`
	Assignee    string `json:"assignee,omitempty" bson:"assignee,omitempty"`
	Reporter    string `json:"reporter,omitempty" bson:"reporter,omitempty"`
	Name        string `json:"name,omitempty" bson:"name,omitempty"`
	Email       string `json:"email,omitempty" bson:"email,omitempty"`
	Platform    string `json:"platform,omitempty" bson:"platform,omitempty"`
	Device      string `json:"device,omitempty" bson:"device,omitempty"`
	Browser     string `json:"browser,omitempty" bson:"browser,omitempty"`

	StepsToReproduce string `json:"steps_to_reproduce,omitempty" bson:"stepsToReproduce,omitempty"`
	ExpectedBehavior string `json:"expected_behavior,omitempty" bson:"expectedBehavior,omitempty"`
	ActualBehavior   string `json:"actual_behavior,omitempty" bson:"actualBehavior,omitempty"`

	DueDate   string    `json:"due_date,omitempty" bson:"dueDate,omitempty"` // YYYY-MM-DD
	Region    string    `json:"region" bson:"region"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"` // UTC
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"` // UTC
}

func (b Bug) fieldValue(name string) string {
	switch name {
	case "title":
		return b.Title
	case "subject":
		return b.Subject
	case "description":
		return b.Description
	case "severity":
		return b.Severity
	case "priority":
		return b.Priority
	case "reporter":
		return b.Reporter
	case "name":
		return b.Name
	case "email":
		return b.Email
	case "platform":
		return b.Platform
	case "device":
		return b.Device
	case "browser":
		return b.Browser
	}
	return ""
}

func (b Bug) resolve(region, display string) string {
	spec := chainFor(region, display)
	for _, field := range spec.chain {
		if val := b.fieldValue(field); val != "" {
			return val
		}
	}
	return spec.fallback
}

// DisplayTitle resolves the bug's human-facing title for a tenant:
// tenant-specific field first, then the generic field, then a literal
// default. Never an empty string.
func (b Bug) DisplayTitle(region string) string {
	return b.resolve(region, "title")
}

func (b Bug) DisplaySeverity(region string) string {
	return b.resolve(region, "severity")
}

func (b Bug) DisplayReporter(region string) string {
	return b.resolve(region, "reporter")
}

func (b Bug) DisplayPlatform(region string) string {
	return b.resolve(region, "platform")
}

// BoardStatus maps unrecognized or missing statuses to the initial column
// for display. The stored value is left untouched.
func (b Bug) BoardStatus() string {
	for _, st := range Statuses {
		if b.Status == st {
			return st
		}
	}
	return StatusNew
}

func (b Bug) IsCritical() bool {
	return b.Severity == SeverityCritical
}

// NewBug contains information needed to file a new Bug.
type NewBug struct {
	Title            string `json:"title" validate:"required"`
	Description      string `json:"description" validate:"required"`
	Severity         string `json:"severity" validate:"omitempty,oneof='Critical - System down' 'High - Major functionality broken' 'Medium - Affects functionality' 'Low - Minor issue'"`
	Assignee         string `json:"assignee"`
	Reporter         string `json:"reporter"`
	Platform         string `json:"platform"`
	StepsToReproduce string `json:"steps_to_reproduce"`
	ExpectedBehavior string `json:"expected_behavior"`
	ActualBehavior   string `json:"actual_behavior"`
	DueDate          string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

func (nb *NewBug) Validate() error {
	nb.Title = core.CleanString(nb.Title)
	if nb.Severity == "" {
		nb.Severity = SeverityLow
	}
	if nb.Assignee == "" {
		nb.Assignee = Unassigned
	}
	return core.Validate.Struct(nb)
}

// UpdateBug defines what information may be provided to modify an
// existing Bug. Empty fields are left untouched.
type UpdateBug struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Severity         string `json:"severity" validate:"omitempty,oneof='Critical - System down' 'High - Major functionality broken' 'Medium - Affects functionality' 'Low - Minor issue'"`
	Assignee         string `json:"assignee"`
	Platform         string `json:"platform"`
	StepsToReproduce string `json:"steps_to_reproduce"`
	ExpectedBehavior string `json:"expected_behavior"`
	ActualBehavior   string `json:"actual_behavior"`
	DueDate          string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

func (ub *UpdateBug) Validate() error {
	ub.Title = core.CleanString(ub.Title)
	return core.Validate.Struct(ub)
}

// QueryFilter narrows bug listings. The UI sends "all" to mean no
// constraint.
type QueryFilter struct {
	Status   string `query:"status"`
	Severity string `query:"severity"`
	Assignee string `query:"assignee"`
}

func (qf *QueryFilter) Clean() {
	if qf.Status == "all" {
		qf.Status = ""
	}
	if qf.Severity == "all" {
		qf.Severity = ""
	}
	if qf.Assignee == "all" {
		qf.Assignee = ""
	}
}

// field chains

type chainSpec struct {
	chain    []string
	fallback string
}

// fieldChains is the per-tenant field-resolution table: (region, display
// field) -> ordered storage fields to try, then a literal default.
var fieldChains = map[string]map[string]chainSpec{
	"us": {
		"title":    {chain: []string{"title"}, fallback: "No title"},
		"severity": {chain: []string{"severity", "priority"}, fallback: SeverityLow},
		"reporter": {chain: []string{"reporter"}, fallback: "Anonymous"},
		"platform": {chain: []string{"platform"}, fallback: "Unknown"},
	},
	"dubai": {
		"title":    {chain: []string{"subject", "title", "description"}, fallback: "No title"},
		"severity": {chain: []string{"severity"}, fallback: SeverityLow},
		"reporter": {chain: []string{"name", "email", "reporter"}, fallback: "Anonymous"},
		"platform": {chain: []string{"device", "browser", "platform"}, fallback: "Unknown"},
	},
}

func chainFor(region, display string) chainSpec {
	chains, ok := fieldChains[region]
	if !ok {
		chains = fieldChains["us"]
	}
	return chains[display]
}

// ValidateFieldChains checks the per-tenant resolution table at startup:
// every chain entry must name a known storage field.
func ValidateFieldChains() error {
	probe := Bug{
		Title: "x", Subject: "x", Description: "x", Severity: "x", Priority: "x",
		Reporter: "x", Name: "x", Email: "x", Platform: "x", Device: "x", Browser: "x",
	}
	for region, chains := range fieldChains {
		for display, spec := range chains {
			for _, field := range spec.chain {
				if probe.fieldValue(field) == "" {
					return core.NewConfigurationError(
						fmt.Sprintf("bug field chain %s/%s references unknown field %q", region, display, field))
				}
			}
			if spec.fallback == "" {
				return core.NewConfigurationError(
					fmt.Sprintf("bug field chain %s/%s has no fallback", region, display))
			}
		}
	}
	return nil
}
