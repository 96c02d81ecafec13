package feature

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Akr1040317/hiveUniDash/core"
)

var ErrNotFound = errors.New("feature not found")

type (
	Repository interface {
		CreateFeature(ctx context.Context, region string, f Feature) (Feature, error)
		GetFeatureByID(ctx context.Context, region, id string) (Feature, error)
		// FilterFeatures applies AND on the cleaned filter's equality
		// constraints, sorted by created_at descending.
		FilterFeatures(ctx context.Context, region string, filter core.Filter) ([]Feature, error)
		UpdateFeature(ctx context.Context, region, id string, fields core.Filter) (Feature, error)
		DeleteFeature(ctx context.Context, region, id string) error
	}

	Service struct {
		repo   Repository
		logger core.Logger
	}
)

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (svc *Service) Create(ctx context.Context, region string, nf NewFeature) (Feature, error) {
	now := time.Now().UTC()
	f := Feature{
		Title:       nf.Title,
		Description: nf.Description,
		Status:      nf.Status,
		Category:    nf.Category,
		Priority:    nf.Priority,
		Assignee:    nf.Assignee,
		DueDate:     nf.DueDate,
		Region:      region,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateFeature(ctx, region, f)
}

func (svc *Service) GetByID(ctx context.Context, region, id string) (Feature, error) {
	return svc.repo.GetFeatureByID(ctx, region, id)
}

// Filter lists a region's features, newest first. Backend failures are
// logged and degrade to an empty listing.
func (svc *Service) Filter(ctx context.Context, region string, qf QueryFilter) []Feature {
	qf.Clean()

	items, err := svc.repo.FilterFeatures(ctx, region, core.Filter{
		"region":   region,
		"status":   qf.Status,
		"category": qf.Category,
		"priority": qf.Priority,
	})
	if err != nil {
		svc.logger.Error("filtering features: "+err.Error(), err)
		return []Feature{}
	}
	return items
}

func (svc *Service) Update(ctx context.Context, region, id string, uf UpdateFeature) (Feature, error) {
	fields := core.Filter{
		"title":       uf.Title,
		"description": uf.Description,
		"category":    uf.Category,
		"priority":    uf.Priority,
		"assignee":    uf.Assignee,
		"dueDate":     uf.DueDate,
	}
	return svc.repo.UpdateFeature(ctx, region, id, fields.Clean())
}

// UpdateStatus persists a pipeline transition. Used by the board
// reconciler, which relies on the returned error to decide reverts.
func (svc *Service) UpdateStatus(ctx context.Context, region, id, status string) error {
	valid := false
	for _, st := range Statuses {
		if status == st {
			valid = true
			break
		}
	}
	if !valid {
		return core.NewValidationError(fmt.Errorf("invalid feature status %q", status))
	}
	_, err := svc.repo.UpdateFeature(ctx, region, id, core.Filter{"status": status})
	return err
}

// UpdateField persists a single editable field such as the assignee or
// the due date.
func (svc *Service) UpdateField(ctx context.Context, region, id, field string, value interface{}) error {
	_, err := svc.repo.UpdateFeature(ctx, region, id, core.Filter{field: value})
	return err
}

func (svc *Service) Delete(ctx context.Context, region, id string) error {
	return svc.repo.DeleteFeature(ctx, region, id)
}
