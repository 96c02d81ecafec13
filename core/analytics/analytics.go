package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/Akr1040317/hiveUniDash/core"
)

var ErrNotFound = errors.New("analytics entry not found")

// Entry is one recorded measurement, such as a daily active-user count or
// a quiz completion total.
type Entry struct {
	ID         string            `json:"id" bson:"_id,omitempty"`
	Metric     string            `json:"metric" bson:"metric"`
	Value      float64           `json:"value" bson:"value"`
	Dimensions map[string]string `json:"dimensions,omitempty" bson:"dimensions,omitempty"`
	Date       string            `json:"date" bson:"date"` // YYYY-MM-DD
	Region     string            `json:"region" bson:"region"`
	CreatedAt  time.Time         `json:"created_at" bson:"created_at"` // UTC
}

// NewEntry contains information needed to record a measurement.
type NewEntry struct {
	Metric     string            `json:"metric" validate:"required"`
	Value      float64           `json:"value"`
	Dimensions map[string]string `json:"dimensions"`
	Date       string            `json:"date" validate:"required,datetime=2006-01-02"`
}

func (ne *NewEntry) Validate() error {
	ne.Metric = core.CleanString(ne.Metric, true)
	return core.Validate.Struct(ne)
}

// QueryFilter narrows analytics listings to a metric and a date range.
type QueryFilter struct {
	Metric string `query:"metric"`
	From   string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

func (qf *QueryFilter) Validate() error {
	qf.Metric = core.CleanString(qf.Metric, true)
	return core.Validate.Struct(qf)
}

type (
	Repository interface {
		CreateEntry(ctx context.Context, region string, e Entry) (Entry, error)
		// FilterEntries applies AND on the cleaned filter's equality
		// constraints, sorted by date ascending. "date_from"/"date_to" bound
		// the date field inclusively.
		FilterEntries(ctx context.Context, region string, filter core.Filter) ([]Entry, error)
	}

	Service struct {
		repo   Repository
		logger core.Logger
	}
)

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (svc *Service) Record(ctx context.Context, region string, ne NewEntry) (Entry, error) {
	e := Entry{
		Metric:     ne.Metric,
		Value:      ne.Value,
		Dimensions: ne.Dimensions,
		Date:       ne.Date,
		Region:     region,
		CreatedAt:  time.Now().UTC(),
	}
	return svc.repo.CreateEntry(ctx, region, e)
}

// Filter lists a region's measurements in date order. Backend failures are
// logged and degrade to an empty listing.
func (svc *Service) Filter(ctx context.Context, region string, qf QueryFilter) []Entry {
	items, err := svc.repo.FilterEntries(ctx, region, core.Filter{
		"region":    region,
		"metric":    qf.Metric,
		"date_from": qf.From,
		"date_to":   qf.To,
	})
	if err != nil {
		svc.logger.Error("filtering analytics: "+err.Error(), err)
		return []Entry{}
	}
	return items
}
