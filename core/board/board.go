package board

import (
	"context"
	"fmt"
	"sync"

	"github.com/Akr1040317/hiveUniDash/core"
)

// Item is one card on a Kanban board. Fields carries the editable extras
// (assignee, due date and the like) alongside the column status.
type Item struct {
	ID     string                 `json:"id"`
	Title  string                 `json:"title"`
	Status string                 `json:"status"`
	Fields map[string]interface{} `json:"fields,omitempty"`
}

// Updater persists board mutations to the backing collection.
type Updater interface {
	UpdateItemStatus(ctx context.Context, region, id, status string) error
	UpdateItemField(ctx context.Context, region, id, field string, value interface{}) error
}

type boardItem struct {
	item Item
	// version increments on every local mutation; a failed persist only
	// reverts when no later mutation has touched the item.
	version uint64
}

// Board applies drag-and-drop and inline edits optimistically: the local
// view changes first, the write follows, and a failed write rolls the item
// back unless a newer local change already superseded it.
type Board struct {
	region  string
	columns []string
	initial string
	updater Updater
	logger  core.Logger

	mu    sync.Mutex
	items map[string]*boardItem
	order []string // load order, kept stable across moves
}

func New(region string, columns []string, updater Updater, logger core.Logger) *Board {
	return &Board{
		region:  region,
		columns: columns,
		initial: columns[0],
		updater: updater,
		logger:  logger,
		items:   make(map[string]*boardItem),
	}
}

// Load replaces the board's cards. Items with an unknown status land in
// the initial column for display; the stored record is not rewritten.
func (b *Board) Load(items []Item) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = make(map[string]*boardItem, len(items))
	b.order = make([]string, 0, len(items))
	for _, it := range items {
		if !b.validColumn(it.Status) {
			it.Status = b.initial
		}
		b.items[it.ID] = &boardItem{item: it}
		b.order = append(b.order, it.ID)
	}
}

// Move drags a card to another column. The move shows immediately; if the
// write fails the card snaps back, unless the user already moved it again.
func (b *Board) Move(ctx context.Context, id, status string) error {
	if !b.validColumn(status) {
		return core.NewValidationError(fmt.Errorf("unknown column %q", status))
	}

	b.mu.Lock()
	bi, ok := b.items[id]
	if !ok {
		b.mu.Unlock()
		return core.NewValidationError(fmt.Errorf("unknown item %q", id))
	}
	prev := bi.item.Status
	if prev == status {
		b.mu.Unlock()
		return nil
	}
	bi.item.Status = status
	bi.version++
	version := bi.version
	b.mu.Unlock()

	if err := b.updater.UpdateItemStatus(ctx, b.region, id, status); err != nil {
		b.revertStatus(id, version, prev)
		return err
	}
	return nil
}

// EditField changes one card field in place with the same optimistic
// semantics as Move.
func (b *Board) EditField(ctx context.Context, id, field string, value interface{}) error {
	b.mu.Lock()
	bi, ok := b.items[id]
	if !ok {
		b.mu.Unlock()
		return core.NewValidationError(fmt.Errorf("unknown item %q", id))
	}
	if bi.item.Fields == nil {
		bi.item.Fields = make(map[string]interface{})
	}
	prev, hadPrev := bi.item.Fields[field]
	bi.item.Fields[field] = value
	bi.version++
	version := bi.version
	b.mu.Unlock()

	if err := b.updater.UpdateItemField(ctx, b.region, id, field, value); err != nil {
		b.revertField(id, version, field, prev, hadPrev)
		return err
	}
	return nil
}

func (b *Board) revertStatus(id string, version uint64, prev string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	bi, ok := b.items[id]
	if !ok || bi.version != version {
		// a later change owns the card, leave it be
		return
	}
	bi.item.Status = prev
	bi.version++
	b.logger.Warn(fmt.Sprintf("board: reverted %s to %s after failed update", id, prev))
}

func (b *Board) revertField(id string, version uint64, field string, prev interface{}, hadPrev bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	bi, ok := b.items[id]
	if !ok || bi.version != version {
		return
	}
	if hadPrev {
		bi.item.Fields[field] = prev
	} else {
		delete(bi.item.Fields, field)
	}
	bi.version++
	b.logger.Warn(fmt.Sprintf("board: reverted %s.%s after failed update", id, field))
}

// Columns returns the cards grouped by column, keyed in board order.
func (b *Board) Columns() map[string][]Item {
	b.mu.Lock()
	defer b.mu.Unlock()
	cols := make(map[string][]Item, len(b.columns))
	for _, c := range b.columns {
		cols[c] = []Item{}
	}
	for _, id := range b.order {
		bi := b.items[id]
		cols[bi.item.Status] = append(cols[bi.item.Status], bi.item)
	}
	return cols
}

// Item returns a card's current local view.
func (b *Board) Item(id string) (Item, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	bi, ok := b.items[id]
	if !ok {
		return Item{}, false
	}
	return bi.item, true
}

func (b *Board) validColumn(status string) bool {
	for _, c := range b.columns {
		if c == status {
			return true
		}
	}
	return false
}
