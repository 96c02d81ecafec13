package event

import (
	"context"
	"errors"
	"time"

	"github.com/Akr1040317/hiveUniDash/core"
)

var ErrNotFound = errors.New("event not found")

type (
	Repository interface {
		CreateEvent(ctx context.Context, region string, evt Event) (Event, error)
		GetEventByID(ctx context.Context, region, id string) (Event, error)
		// FilterEvents applies AND on the cleaned filter's equality
		// constraints, sorted by date ascending. A "region" entry holding a
		// []string matches any of the listed workspaces.
		FilterEvents(ctx context.Context, region string, filter core.Filter) ([]Event, error)
		UpdateEvent(ctx context.Context, region, id string, fields core.Filter) (Event, error)
		DeleteEvent(ctx context.Context, region, id string) error
	}

	Service struct {
		repo   Repository
		logger core.Logger
	}
)

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (svc *Service) Create(ctx context.Context, region string, ne NewEvent) (Event, error) {
	now := time.Now().UTC()
	evtRegion := region
	if ne.Region == RegionBoth {
		evtRegion = RegionBoth
	}
	evt := Event{
		Title:       ne.Title,
		Description: ne.Description,
		Type:        ne.Type,
		Date:        ne.Date,
		StartTime:   ne.StartTime,
		EndTime:     ne.EndTime,
		Location:    ne.Location,
		Attendees:   ne.Attendees,
		Region:      evtRegion,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateEvent(ctx, region, evt)
}

func (svc *Service) GetByID(ctx context.Context, region, id string) (Event, error) {
	return svc.repo.GetEventByID(ctx, region, id)
}

// All lists a region's calendar entries in date order, including the ones
// marked visible to both workspaces. Backend failures are logged and
// degrade to an empty listing.
func (svc *Service) All(ctx context.Context, region string) []Event {
	items, err := svc.repo.FilterEvents(ctx, region, core.Filter{
		"region": []string{region, RegionBoth},
	})
	if err != nil {
		svc.logger.Error("listing events: "+err.Error(), err)
		return []Event{}
	}
	return items
}

func (svc *Service) Update(ctx context.Context, region, id string, ue UpdateEvent) (Event, error) {
	fields := core.Filter{
		"title":       ue.Title,
		"description": ue.Description,
		"type":        ue.Type,
		"date":        ue.Date,
		"startTime":   ue.StartTime,
		"endTime":     ue.EndTime,
		"location":    ue.Location,
	}
	if len(ue.Attendees) > 0 {
		fields["attendees"] = ue.Attendees
	}
	return svc.repo.UpdateEvent(ctx, region, id, fields.Clean())
}

func (svc *Service) Delete(ctx context.Context, region, id string) error {
	return svc.repo.DeleteEvent(ctx, region, id)
}
