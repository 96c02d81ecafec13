package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Akr1040317/hiveUniDash/core"
	"github.com/Akr1040317/hiveUniDash/core/feature"
	"github.com/Akr1040317/hiveUniDash/storage/document"
)

var _ feature.Repository = (*featureRepository)(nil)

type featureRepository struct {
	gateway *document.Gateway
}

func NewFeatureRepository(gateway *document.Gateway) feature.Repository {
	return &featureRepository{gateway: gateway}
}

func (repo *featureRepository) coll(region string) *mongo.Collection {
	return repo.gateway.Resolve(region).Collection(featuresCollection)
}

func (repo *featureRepository) CreateFeature(ctx context.Context, region string, f feature.Feature) (feature.Feature, error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if _, err := repo.coll(region).InsertOne(ctx, f); err != nil {
		return feature.Feature{}, err
	}
	return f, nil
}

func (repo *featureRepository) GetFeatureByID(ctx context.Context, region, id string) (feature.Feature, error) {
	var f feature.Feature
	if err := findOne(ctx, repo.coll(region), id, &f, feature.ErrNotFound); err != nil {
		return feature.Feature{}, err
	}
	return f, nil
}

func (repo *featureRepository) FilterFeatures(ctx context.Context, region string, filter core.Filter) ([]feature.Feature, error) {
	cur, err := repo.coll(region).Find(ctx, buildFilter(filter.Clean()), sortOpts(core.Ordering{Field: "created_at"}))
	if err != nil {
		return nil, err
	}
	items := make([]feature.Feature, 0)
	if err = cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (repo *featureRepository) UpdateFeature(ctx context.Context, region, id string, fields core.Filter) (feature.Feature, error) {
	var f feature.Feature
	if err := findOneAndUpdate(ctx, repo.coll(region), id, fields, &f, feature.ErrNotFound); err != nil {
		return feature.Feature{}, err
	}
	return f, nil
}

func (repo *featureRepository) DeleteFeature(ctx context.Context, region, id string) error {
	return deleteOne(ctx, repo.coll(region), id, feature.ErrNotFound)
}
