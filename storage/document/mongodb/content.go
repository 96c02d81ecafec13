package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Akr1040317/hiveUniDash/core"
	"github.com/Akr1040317/hiveUniDash/core/content"
	"github.com/Akr1040317/hiveUniDash/storage/document"
)

var _ content.Repository = (*contentRepository)(nil)

type contentRepository struct {
	gateway *document.Gateway
}

func NewContentRepository(gateway *document.Gateway) content.Repository {
	return &contentRepository{gateway: gateway}
}

func (repo *contentRepository) coll(region string) *mongo.Collection {
	return repo.gateway.Resolve(region).Collection(contentCollection)
}

func (repo *contentRepository) CreateContent(ctx context.Context, region string, cnt content.Content) (content.Content, error) {
	if cnt.ID == "" {
		cnt.ID = uuid.New().String()
	}
	if _, err := repo.coll(region).InsertOne(ctx, cnt); err != nil {
		return content.Content{}, err
	}
	return cnt, nil
}

func (repo *contentRepository) GetContentByID(ctx context.Context, region, id string) (content.Content, error) {
	var cnt content.Content
	if err := findOne(ctx, repo.coll(region), id, &cnt, content.ErrNotFound); err != nil {
		return content.Content{}, err
	}
	return cnt, nil
}

func (repo *contentRepository) FilterContent(ctx context.Context, region string, filter core.Filter) ([]content.Content, error) {
	cur, err := repo.coll(region).Find(ctx, buildFilter(filter.Clean()), sortOpts(core.Ordering{Field: "created_at"}))
	if err != nil {
		return nil, err
	}
	items := make([]content.Content, 0)
	if err = cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (repo *contentRepository) UpdateContent(ctx context.Context, region, id string, fields core.Filter) (content.Content, error) {
	var cnt content.Content
	if err := findOneAndUpdate(ctx, repo.coll(region), id, fields, &cnt, content.ErrNotFound); err != nil {
		return content.Content{}, err
	}
	return cnt, nil
}

func (repo *contentRepository) DeleteContent(ctx context.Context, region, id string) error {
	return deleteOne(ctx, repo.coll(region), id, content.ErrNotFound)
}
