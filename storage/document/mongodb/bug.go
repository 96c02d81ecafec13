package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Akr1040317/hiveUniDash/core"
	"github.com/Akr1040317/hiveUniDash/core/bug"
	"github.com/Akr1040317/hiveUniDash/storage/document"
)

var _ bug.Repository = (*bugRepository)(nil)

type bugRepository struct {
	gateway *document.Gateway
}

func NewBugRepository(gateway *document.Gateway) bug.Repository {
	return &bugRepository{gateway: gateway}
}

func (repo *bugRepository) coll(region string) *mongo.Collection {
	return repo.gateway.Resolve(region).Collection(bugsCollection)
}

func (repo *bugRepository) CreateBug(ctx context.Context, region string, b bug.Bug) (bug.Bug, error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if _, err := repo.coll(region).InsertOne(ctx, b); err != nil {
		return bug.Bug{}, err
	}
	return b, nil
}

func (repo *bugRepository) GetBugByID(ctx context.Context, region, id string) (bug.Bug, error) {
	var b bug.Bug
	if err := findOne(ctx, repo.coll(region), id, &b, bug.ErrNotFound); err != nil {
		return bug.Bug{}, err
	}
	return b, nil
}

func (repo *bugRepository) FilterBugs(ctx context.Context, region string, filter core.Filter) ([]bug.Bug, error) {
	cur, err := repo.coll(region).Find(ctx, buildFilter(filter.Clean()), sortOpts(core.Ordering{Field: "created_at"}))
	if err != nil {
		return nil, err
	}
	items := make([]bug.Bug, 0)
	if err = cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (repo *bugRepository) UpdateBug(ctx context.Context, region, id string, fields core.Filter) (bug.Bug, error) {
	var b bug.Bug
	if err := findOneAndUpdate(ctx, repo.coll(region), id, fields, &b, bug.ErrNotFound); err != nil {
		return bug.Bug{}, err
	}
	return b, nil
}

func (repo *bugRepository) DeleteBug(ctx context.Context, region, id string) error {
	return deleteOne(ctx, repo.coll(region), id, bug.ErrNotFound)
}
