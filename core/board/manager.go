package board

import (
	"context"
	"sync"

	"github.com/Akr1040317/hiveUniDash/core"
	"github.com/Akr1040317/hiveUniDash/core/bug"
	"github.com/Akr1040317/hiveUniDash/core/feature"
)

// Manager builds region-scoped boards over the feature pipeline and the
// bug workflow. Boards are kept per region so card moves go through the
// board's optimistic update and revert path instead of hitting the
// services directly.
type Manager struct {
	featureSvc *feature.Service
	bugSvc     *bug.Service
	logger     core.Logger

	mu       sync.Mutex
	features map[string]*Board
	bugs     map[string]*Board
}

func NewManager(featureSvc *feature.Service, bugSvc *bug.Service, logger core.Logger) *Manager {
	return &Manager{
		featureSvc: featureSvc,
		bugSvc:     bugSvc,
		logger:     logger,
		features:   make(map[string]*Board),
		bugs:       make(map[string]*Board),
	}
}

// FeatureBoard reloads a region's feature pipeline into its board and
// returns it.
func (m *Manager) FeatureBoard(ctx context.Context, region string) *Board {
	b := m.featureBoard(region)
	b.Load(m.featureCards(ctx, region))
	return b
}

// BugBoard reloads a region's bug workflow into its board and returns it.
// Card titles and extras go through the tenant field resolution, so Dubai
// feedback records render alongside US tracker ones.
func (m *Manager) BugBoard(ctx context.Context, region string) *Board {
	b := m.bugBoard(region)
	b.Load(m.bugCards(ctx, region))
	return b
}

// MoveFeature moves a feature card through its board, so the status
// change is applied optimistically and reverted if persistence fails.
// An unknown id is reloaded once before giving up with feature.ErrNotFound.
func (m *Manager) MoveFeature(ctx context.Context, region, id, status string) error {
	b := m.featureBoard(region)
	if _, ok := b.Item(id); !ok {
		b.Load(m.featureCards(ctx, region))
		if _, ok := b.Item(id); !ok {
			return feature.ErrNotFound
		}
	}
	return b.Move(ctx, id, status)
}

// EditFeatureField edits a feature card's field through its board.
func (m *Manager) EditFeatureField(ctx context.Context, region, id, field string, value interface{}) error {
	b := m.featureBoard(region)
	if _, ok := b.Item(id); !ok {
		b.Load(m.featureCards(ctx, region))
		if _, ok := b.Item(id); !ok {
			return feature.ErrNotFound
		}
	}
	return b.EditField(ctx, id, field, value)
}

// MoveBug moves a bug card through its board, same optimistic update and
// revert path as MoveFeature.
func (m *Manager) MoveBug(ctx context.Context, region, id, status string) error {
	b := m.bugBoard(region)
	if _, ok := b.Item(id); !ok {
		b.Load(m.bugCards(ctx, region))
		if _, ok := b.Item(id); !ok {
			return bug.ErrNotFound
		}
	}
	return b.Move(ctx, id, status)
}

// EditBugField edits a bug card's field through its board.
func (m *Manager) EditBugField(ctx context.Context, region, id, field string, value interface{}) error {
	b := m.bugBoard(region)
	if _, ok := b.Item(id); !ok {
		b.Load(m.bugCards(ctx, region))
		if _, ok := b.Item(id); !ok {
			return bug.ErrNotFound
		}
	}
	return b.EditField(ctx, id, field, value)
}

func (m *Manager) featureBoard(region string) *Board {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.features[region]
	if !ok {
		b = New(region, feature.Statuses, featureUpdater{m.featureSvc}, m.logger)
		m.features[region] = b
	}
	return b
}

func (m *Manager) bugBoard(region string) *Board {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bugs[region]
	if !ok {
		b = New(region, bug.Statuses, bugUpdater{m.bugSvc}, m.logger)
		m.bugs[region] = b
	}
	return b
}

func (m *Manager) featureCards(ctx context.Context, region string) []Item {
	items := m.featureSvc.Filter(ctx, region, feature.QueryFilter{})
	cards := make([]Item, 0, len(items))
	for _, f := range items {
		cards = append(cards, Item{
			ID:     f.ID,
			Title:  f.Title,
			Status: f.BoardStatus(),
			Fields: map[string]interface{}{
				"assignee": f.Assignee,
				"priority": f.Priority,
				"category": f.Category,
				"dueDate":  f.DueDate,
			},
		})
	}
	return cards
}

func (m *Manager) bugCards(ctx context.Context, region string) []Item {
	items := m.bugSvc.Filter(ctx, region, bug.QueryFilter{})
	cards := make([]Item, 0, len(items))
	for _, bg := range items {
		cards = append(cards, Item{
			ID:     bg.ID,
			Title:  bg.DisplayTitle(region),
			Status: bg.BoardStatus(),
			Fields: map[string]interface{}{
				"assignee": bg.Assignee,
				"severity": bg.DisplaySeverity(region),
				"reporter": bg.DisplayReporter(region),
				"platform": bg.DisplayPlatform(region),
				"dueDate":  bg.DueDate,
			},
		})
	}
	return cards
}

type featureUpdater struct {
	svc *feature.Service
}

func (u featureUpdater) UpdateItemStatus(ctx context.Context, region, id, status string) error {
	return u.svc.UpdateStatus(ctx, region, id, status)
}

func (u featureUpdater) UpdateItemField(ctx context.Context, region, id, field string, value interface{}) error {
	return u.svc.UpdateField(ctx, region, id, field, value)
}

type bugUpdater struct {
	svc *bug.Service
}

func (u bugUpdater) UpdateItemStatus(ctx context.Context, region, id, status string) error {
	return u.svc.UpdateStatus(ctx, region, id, status)
}

func (u bugUpdater) UpdateItemField(ctx context.Context, region, id, field string, value interface{}) error {
	return u.svc.UpdateField(ctx, region, id, field, value)
}

var (
	_ Updater = (*featureUpdater)(nil)
	_ Updater = (*bugUpdater)(nil)
)
