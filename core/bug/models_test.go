package bug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBug_DisplayFields_dubai(t *testing.T) {
	tests := []struct {
		name         string
		bug          Bug
		wantTitle    string
		wantReporter string
		wantPlatform string
	}{
		{
			name:         "feedback shape",
			bug:          Bug{Subject: "App crashes on quiz start", Name: "Fatima", Device: "iPhone 14"},
			wantTitle:    "App crashes on quiz start",
			wantReporter: "Fatima",
			wantPlatform: "iPhone 14",
		},
		{
			name:         "tracker shape falls through",
			bug:          Bug{Title: "Scoring off by one", Reporter: "qa@hivespelling.com", Platform: "web"},
			wantTitle:    "Scoring off by one",
			wantReporter: "qa@hivespelling.com",
			wantPlatform: "web",
		},
		{
			name:         "email before generic reporter",
			bug:          Bug{Subject: "x", Email: "parent@example.com", Reporter: "ignored"},
			wantTitle:    "x",
			wantReporter: "parent@example.com",
			wantPlatform: "Unknown",
		},
		{
			name:         "empty record gets literals",
			bug:          Bug{},
			wantTitle:    "No title",
			wantReporter: "Anonymous",
			wantPlatform: "Unknown",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantTitle, tt.bug.DisplayTitle("dubai"))
			assert.Equal(t, tt.wantReporter, tt.bug.DisplayReporter("dubai"))
			assert.Equal(t, tt.wantPlatform, tt.bug.DisplayPlatform("dubai"))
		})
	}
}

func TestBug_DisplayFields_us(t *testing.T) {
	b := Bug{Title: "Broken login", Subject: "should not be used", Reporter: "dev@hivespelling.com"}
	assert.Equal(t, "Broken login", b.DisplayTitle("us"))
	assert.Equal(t, "dev@hivespelling.com", b.DisplayReporter("us"))

	// unknown regions resolve like the default tenant
	assert.Equal(t, "Broken login", b.DisplayTitle("nowhere"))
}

func TestBug_DisplaySeverity(t *testing.T) {
	assert.Equal(t, SeverityCritical, Bug{Severity: SeverityCritical}.DisplaySeverity("dubai"))
	// us chain falls back to legacy priority field
	assert.Equal(t, "P1", Bug{Priority: "P1"}.DisplaySeverity("us"))
	assert.Equal(t, SeverityLow, Bug{}.DisplaySeverity("us"))
}

func TestBug_BoardStatus(t *testing.T) {
	assert.Equal(t, StatusTesting, Bug{Status: StatusTesting}.BoardStatus())
	assert.Equal(t, StatusNew, Bug{Status: "open"}.BoardStatus())
	assert.Equal(t, StatusNew, Bug{}.BoardStatus())
}

func TestValidateFieldChains(t *testing.T) {
	assert.NoError(t, ValidateFieldChains())
}
