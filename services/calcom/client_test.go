package calcom

import (
	"context"
	"strings"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akr1040317/hiveUniDash/core"
	"github.com/Akr1040317/hiveUniDash/core/calendar"
)

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type fakeSender struct {
	status   int
	body     string
	err      error
	requests []rest.Request
}

func (f *fakeSender) SendWithContext(_ context.Context, req rest.Request) (*rest.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &rest.Response{StatusCode: f.status, Body: f.body}, nil
}

func newTestClient(conf core.CalcomConfig, send *fakeSender) *Client {
	c := NewClient(conf, nopLogger{})
	c.send = send
	return c
}

const bookingsBody = `{"bookings": [
	{"id": 1, "title": "Hive Platform Demo", "startTime": "2026-09-03T14:00:00Z", "endTime": "2026-09-03T14:30:00Z",
	 "status": "ACCEPTED", "eventType": {"slug": "platform-demo", "title": "Hive Platform Demo"},
	 "attendees": [{"name": "A", "email": "a@example.com"}]},
	{"id": 2, "title": "Cancelled Call", "startTime": "2026-09-04T09:00:00Z", "endTime": "2026-09-04T09:30:00Z",
	 "status": "CANCELLED", "eventType": {"slug": "call", "title": "Call"}},
	{"id": 3, "title": "Networking", "startTime": "2026-09-05T11:00:00Z", "endTime": "2026-09-05T12:00:00Z",
	 "status": "ACCEPTED", "eventType": {"slug": "networking", "title": "Networking"}}
]}`

func configured() core.CalcomConfig {
	return core.CalcomConfig{
		APIKey:          "cal_test_key",
		Username:        "hive",
		BaseURL:         "https://api.cal.com/v1",
		DefaultTimezone: "UTC",
	}
}

func TestClient_Bookings_unconfigured(t *testing.T) {
	send := &fakeSender{}
	c := newTestClient(core.CalcomConfig{}, send)

	events, err := c.Bookings(context.Background(), "us", calendar.Range{})
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Empty(t, send.requests, "unconfigured client must not touch the network")
}

func TestClient_Bookings_unconfiguredMockFallback(t *testing.T) {
	send := &fakeSender{}
	c := newTestClient(core.CalcomConfig{MockFallback: true}, send)

	events, err := c.Bookings(context.Background(), "us", calendar.Range{})
	require.NoError(t, err)
	require.NotEmpty(t, events)
	for _, evt := range events {
		assert.True(t, strings.HasPrefix(evt.ID, "calcom-mock-"), "mock entries must be marked: %s", evt.ID)
	}
	assert.Empty(t, send.requests)
}

func TestClient_Bookings_transform(t *testing.T) {
	send := &fakeSender{status: 200, body: bookingsBody}
	c := newTestClient(configured(), send)

	events, err := c.Bookings(context.Background(), "us", calendar.Range{})
	require.NoError(t, err)
	require.Len(t, events, 3)

	evt := events[0]
	assert.Equal(t, "calcom-1", evt.ID)
	assert.Equal(t, "2026-09-03", evt.StartDate)
	assert.Equal(t, "14:00", evt.StartTime)
	assert.Equal(t, "14:30", evt.EndTime)
	assert.Equal(t, []string{"a@example.com"}, evt.Attendees)
	assert.False(t, evt.Cancelled)

	// cancelled bookings stay in, flagged for the calendar to render
	assert.Equal(t, "Cancelled Call", events[1].Title)
	assert.True(t, events[1].Cancelled)

	// API key is injected server side
	require.Len(t, send.requests, 1)
	assert.Equal(t, "cal_test_key", send.requests[0].QueryParams["apiKey"])
	assert.Equal(t, "hive", send.requests[0].QueryParams["username"])
}

func TestClient_Bookings_statusMapping(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{401, ErrUnauthorized},
		{403, ErrForbidden},
		{404, ErrNotFound},
	}
	for _, tt := range tests {
		send := &fakeSender{status: tt.status}
		c := newTestClient(configured(), send)

		_, err := c.Bookings(context.Background(), "us", calendar.Range{})
		assert.Equal(t, tt.wantErr, err)
	}

	// any other non-2xx is an APIError
	send := &fakeSender{status: 500, body: "boom"}
	c := newTestClient(configured(), send)
	_, err := c.Bookings(context.Background(), "us", calendar.Range{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
}

func TestClient_Bookings_mockFallbackOnFailure(t *testing.T) {
	conf := configured()
	conf.MockFallback = true
	send := &fakeSender{status: 401}
	c := newTestClient(conf, send)

	events, err := c.Bookings(context.Background(), "us", calendar.Range{})
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.True(t, strings.HasPrefix(events[0].ID, "calcom-mock-"))
}

func TestClient_eventTypeFilters(t *testing.T) {
	conf := configured()
	conf.IncludedEventTypes = []string{"Networking"}
	conf.ExcludedEventTypes = []string{"Networking"} // allow-list wins
	c := newTestClient(conf, &fakeSender{status: 200, body: bookingsBody})

	events, err := c.Bookings(context.Background(), "us", calendar.Range{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Networking", events[0].Title)

	// deny-list applies only without an allow-list
	conf.IncludedEventTypes = nil
	c = newTestClient(conf, &fakeSender{status: 200, body: bookingsBody})
	events, err = c.Bookings(context.Background(), "us", calendar.Range{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Hive Platform Demo", events[0].Title)
	assert.Equal(t, "Cancelled Call", events[1].Title)
}

func TestClient_Bookings_range(t *testing.T) {
	send := &fakeSender{status: 200, body: bookingsBody}
	c := newTestClient(configured(), send)

	events, err := c.Bookings(context.Background(), "us", calendar.Range{From: "2026-09-04", To: "2026-09-30"})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "2026-09-04", events[0].StartDate)
	assert.Equal(t, "2026-09-05", events[1].StartDate)

	// the window goes upstream with the query
	require.Len(t, send.requests, 1)
	params := send.requests[0].QueryParams
	assert.Equal(t, "2026-09-04", params["startTime"])
	assert.Equal(t, "2026-09-30", params["endTime"])
}

func TestClient_EventTypes(t *testing.T) {
	send := &fakeSender{status: 200, body: `{"event_types": [
		{"id": 10, "title": "Parent Consultation", "slug": "parent-consultation", "length": 30}
	]}`}
	c := newTestClient(configured(), send)

	types, err := c.EventTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "parent-consultation", types[0].Slug)
	assert.Equal(t, 30, types[0].Length)

	require.Len(t, send.requests, 1)
	assert.Contains(t, send.requests[0].BaseURL, "/event-types")

	// unconfigured clients answer empty without a call
	c = newTestClient(core.CalcomConfig{}, send)
	types, err = c.EventTypes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, types)
	assert.Len(t, send.requests, 1)
}

func TestClient_TestConnection(t *testing.T) {
	c := newTestClient(configured(), &fakeSender{status: 200, body: `{"event_types": []}`})
	assert.NoError(t, c.TestConnection(context.Background()))

	c = newTestClient(configured(), &fakeSender{status: 401})
	assert.Equal(t, ErrUnauthorized, c.TestConnection(context.Background()))

	c = newTestClient(core.CalcomConfig{}, &fakeSender{})
	assert.Error(t, c.TestConnection(context.Background()))
}

func TestClient_Proxy(t *testing.T) {
	send := &fakeSender{status: 200, body: `{"bookings": []}`}
	c := newTestClient(configured(), send)

	status, body, err := c.Proxy(context.Background(), map[string]string{
		"username": "hive", "startTime": "2026-09-01", "type": "platform-demo", "endTime": "",
	})
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.JSONEq(t, `{"bookings": []}`, string(body))

	require.Len(t, send.requests, 1)
	params := send.requests[0].QueryParams
	assert.Equal(t, "cal_test_key", params["apiKey"])
	assert.Equal(t, "platform-demo", params["type"])
	_, hasEnd := params["endTime"]
	assert.False(t, hasEnd, "empty params are not forwarded")
}

func TestClient_Proxy_unconfigured(t *testing.T) {
	c := newTestClient(core.CalcomConfig{}, &fakeSender{})
	status, _, err := c.Proxy(context.Background(), nil)
	assert.Error(t, err)
	assert.Equal(t, 503, status)
}

func TestSplitTimestamp(t *testing.T) {
	date, clock := splitTimestamp("2026-09-03T14:00:00Z")
	assert.Equal(t, "2026-09-03", date)
	assert.Equal(t, "14:00", clock)

	// the upstream value is taken at face value, offsets never shift the day
	date, clock = splitTimestamp("2026-09-03T22:00:00+04:00")
	assert.Equal(t, "2026-09-03", date)
	assert.Equal(t, "22:00", clock)

	// too short for a wall clock still lands on the day
	date, clock = splitTimestamp("2026-09-03T9")
	assert.Equal(t, "2026-09-03", date)
	assert.Equal(t, "", clock)

	date, clock = splitTimestamp("garbage")
	assert.Equal(t, "garbage", date)
	assert.Equal(t, "", clock)
}
