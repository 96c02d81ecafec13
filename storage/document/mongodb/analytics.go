package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Akr1040317/hiveUniDash/core"
	"github.com/Akr1040317/hiveUniDash/core/analytics"
	"github.com/Akr1040317/hiveUniDash/storage/document"
)

var _ analytics.Repository = (*analyticsRepository)(nil)

type analyticsRepository struct {
	gateway *document.Gateway
}

func NewAnalyticsRepository(gateway *document.Gateway) analytics.Repository {
	return &analyticsRepository{gateway: gateway}
}

func (repo *analyticsRepository) coll(region string) *mongo.Collection {
	return repo.gateway.Resolve(region).Collection(analyticsCollection)
}

func (repo *analyticsRepository) CreateEntry(ctx context.Context, region string, e analytics.Entry) (analytics.Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if _, err := repo.coll(region).InsertOne(ctx, e); err != nil {
		return analytics.Entry{}, err
	}
	return e, nil
}

func (repo *analyticsRepository) FilterEntries(ctx context.Context, region string, filter core.Filter) ([]analytics.Entry, error) {
	cur, err := repo.coll(region).Find(ctx, buildFilter(filter.Clean()), sortOpts(core.Ordering{Field: "date", Ascending: true}))
	if err != nil {
		return nil, err
	}
	items := make([]analytics.Entry, 0)
	if err = cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
