package content

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Akr1040317/hiveUniDash/core"
)

var ErrNotFound = errors.New("content not found")

type (
	Repository interface {
		CreateContent(ctx context.Context, region string, cnt Content) (Content, error)
		GetContentByID(ctx context.Context, region, id string) (Content, error)
		// FilterContent applies AND on the cleaned filter's equality constraints,
		// sorted by created_at descending.
		FilterContent(ctx context.Context, region string, filter core.Filter) ([]Content, error)
		UpdateContent(ctx context.Context, region, id string, fields core.Filter) (Content, error)
		DeleteContent(ctx context.Context, region, id string) error
	}

	Service struct {
		repo   Repository
		logger core.Logger
	}
)

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (svc *Service) Create(ctx context.Context, region string, nc NewContent) (Content, error) {
	now := time.Now().UTC()
	cnt := Content{
		Title:       nc.Title,
		Description: nc.Description,
		Type:        nc.Type,
		Status:      nc.Status,
		Difficulty:  nc.Difficulty,
		Author:      nc.Author,
		Region:      region,
		DueDate:     nc.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateContent(ctx, region, cnt)
}

func (svc *Service) GetByID(ctx context.Context, region, id string) (Content, error) {
	return svc.repo.GetContentByID(ctx, region, id)
}

// Filter lists a region's content, narrowed by qf. Backend failures are
// logged and degrade to an empty listing; a broken content collection must
// not block the rest of the dashboard.
func (svc *Service) Filter(ctx context.Context, region string, qf QueryFilter) []Content {
	qf.Clean()

	items, err := svc.repo.FilterContent(ctx, region, core.Filter{
		"region": region,
		"status": qf.Status,
		"type":   qf.Type,
	})
	if err != nil {
		svc.logger.Error("filtering content: "+err.Error(), err)
		return []Content{}
	}
	if qf.Search == "" {
		return items
	}

	search := strings.ToLower(qf.Search)
	matched := make([]Content, 0, len(items))
	for _, cnt := range items {
		if strings.Contains(strings.ToLower(cnt.Title), search) ||
			strings.Contains(strings.ToLower(cnt.Description), search) {
			matched = append(matched, cnt)
		}
	}
	return matched
}

func (svc *Service) Update(ctx context.Context, region, id string, uc UpdateContent) (Content, error) {
	fields := core.Filter{
		"title":       uc.Title,
		"description": uc.Description,
		"type":        uc.Type,
		"status":      uc.Status,
		"difficulty":  uc.Difficulty,
		"author":      uc.Author,
		"due_date":    uc.DueDate,
	}
	return svc.repo.UpdateContent(ctx, region, id, fields.Clean())
}

func (svc *Service) Delete(ctx context.Context, region, id string) error {
	return svc.repo.DeleteContent(ctx, region, id)
}

// Stats summarizes the region's whole content collection.
func (svc *Service) Stats(ctx context.Context, region string) Stats {
	items := svc.Filter(ctx, region, QueryFilter{})
	stats := Stats{ByType: make(map[string]int, len(Types))}
	for _, cnt := range items {
		stats.Total++
		switch cnt.Status {
		case StatusPublished:
			stats.Published++
		case StatusDraft:
			stats.Drafts++
		}
		stats.ByType[cnt.Type]++
	}
	return stats
}
