package content

import (
	"time"

	"github.com/Akr1040317/hiveUniDash/core"
)

// Types
const (
	TypeLesson     = "lesson"
	TypeQuiz       = "quiz"
	TypeArticle    = "article"
	TypeWordList   = "word_list"
	TypeMiniLesson = "mini_lesson"
)

// Statuses
const (
	StatusDraft     = "draft"
	StatusReview    = "review"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

var (
	Types    = []string{TypeLesson, TypeQuiz, TypeArticle, TypeWordList, TypeMiniLesson}
	Statuses = []string{StatusDraft, StatusReview, StatusPublished, StatusArchived}
)

type Content struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Type        string    `json:"type" bson:"type"`
	Status      string    `json:"status" bson:"status"`
	Difficulty  string    `json:"difficulty" bson:"difficulty"`
	Author      string    `json:"author" bson:"author"`
	Region      string    `json:"region" bson:"region"`
	DueDate     string    `json:"due_date,omitempty" bson:"due_date,omitempty"` // YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`                 // UTC
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`                 // UTC
}

// NewContent contains information needed to create a new Content item.
type NewContent struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Type        string `json:"type" validate:"required,oneof=lesson quiz article word_list mini_lesson"`
	Status      string `json:"status" validate:"omitempty,oneof=draft review published archived"`
	Difficulty  string `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Author      string `json:"author"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

func (nc *NewContent) Validate() error {
	nc.Title = core.CleanString(nc.Title)
	if nc.Status == "" {
		nc.Status = StatusDraft
	}
	return core.Validate.Struct(nc)
}

// UpdateContent defines what information may be provided to modify existing Content.
// Empty fields are left unchanged.
type UpdateContent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type" validate:"omitempty,oneof=lesson quiz article word_list mini_lesson"`
	Status      string `json:"status" validate:"omitempty,oneof=draft review published archived"`
	Difficulty  string `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Author      string `json:"author"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

func (uc *UpdateContent) Validate() error {
	uc.Title = core.CleanString(uc.Title)
	return core.Validate.Struct(uc)
}

// QueryFilter narrows a content listing. Search does a case-insensitive
// match on Title or Description and is applied in memory, not by the backend.
type QueryFilter struct {
	Search string `query:"search"`
	Status string `query:"status"`
	Type   string `query:"type"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	if qf.Status == "all" {
		qf.Status = ""
	}
	if qf.Type == "all" {
		qf.Type = ""
	}
}

// Stats summarizes a content collection for the library header.
type Stats struct {
	Total     int            `json:"total"`
	Published int            `json:"published"`
	Drafts    int            `json:"drafts"`
	ByType    map[string]int `json:"by_type"`
}
