package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_Clean(t *testing.T) {
	filter := Filter{
		"status":   "open",
		"severity": "",
		"assignee": nil,
		"region":   []string{"us", "both"},
		"tags":     []string{},
		"raw":      []interface{}{},
		"count":    0, // non-string scalars pass through untouched
	}

	cleaned := filter.Clean()
	assert.Equal(t, Filter{
		"status": "open",
		"region": []string{"us", "both"},
		"count":  0,
	}, cleaned)

	// the original is left alone
	assert.Len(t, filter, 7)
}

func TestFilter_Clean_empty(t *testing.T) {
	assert.Empty(t, Filter{}.Clean())
	assert.Empty(t, Filter{"status": ""}.Clean())
}

func TestOrdering_String(t *testing.T) {
	assert.Equal(t, "created_at desc", Ordering{Field: "created_at"}.String())
	assert.Equal(t, "date asc", Ordering{Field: "date", Ascending: true}.String())
}
