package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Akr1040317/hiveUniDash/core"
	"github.com/Akr1040317/hiveUniDash/core/event"
	"github.com/Akr1040317/hiveUniDash/storage/document"
)

var _ event.Repository = (*eventRepository)(nil)

type eventRepository struct {
	gateway *document.Gateway
}

func NewEventRepository(gateway *document.Gateway) event.Repository {
	return &eventRepository{gateway: gateway}
}

func (repo *eventRepository) coll(region string) *mongo.Collection {
	return repo.gateway.Resolve(region).Collection(eventsCollection)
}

func (repo *eventRepository) CreateEvent(ctx context.Context, region string, evt event.Event) (event.Event, error) {
	if evt.ID == "" {
		evt.ID = uuid.New().String()
	}
	if _, err := repo.coll(region).InsertOne(ctx, evt); err != nil {
		return event.Event{}, err
	}
	return evt, nil
}

func (repo *eventRepository) GetEventByID(ctx context.Context, region, id string) (event.Event, error) {
	var evt event.Event
	if err := findOne(ctx, repo.coll(region), id, &evt, event.ErrNotFound); err != nil {
		return event.Event{}, err
	}
	return evt, nil
}

func (repo *eventRepository) FilterEvents(ctx context.Context, region string, filter core.Filter) ([]event.Event, error) {
	cur, err := repo.coll(region).Find(ctx, buildFilter(filter.Clean()), sortOpts(core.Ordering{Field: "date", Ascending: true}))
	if err != nil {
		return nil, err
	}
	items := make([]event.Event, 0)
	if err = cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (repo *eventRepository) UpdateEvent(ctx context.Context, region, id string, fields core.Filter) (event.Event, error) {
	var evt event.Event
	if err := findOneAndUpdate(ctx, repo.coll(region), id, fields, &evt, event.ErrNotFound); err != nil {
		return event.Event{}, err
	}
	return evt, nil
}

func (repo *eventRepository) DeleteEvent(ctx context.Context, region, id string) error {
	return deleteOne(ctx, repo.coll(region), id, event.ErrNotFound)
}
