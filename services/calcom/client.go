// Package calcom fetches booked meetings from the Cal.com API and exposes
// them as calendar entries.
package calcom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sendgrid/rest"

	"github.com/Akr1040317/hiveUniDash/core"
	"github.com/Akr1040317/hiveUniDash/core/calendar"
)

// Sign-in and lookup failures, mapped to user-facing messages by the API
// layer.
var (
	ErrUnauthorized = errors.New("invalid Cal.com API key")
	ErrForbidden    = errors.New("Cal.com API key lacks access to bookings")
	ErrNotFound     = errors.New("Cal.com bookings endpoint not found, check the configured base URL")
)

// APIError is any other non-2xx response from Cal.com.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Cal.com API returned %d", e.Status)
}

type sender interface {
	SendWithContext(ctx context.Context, req rest.Request) (*rest.Response, error)
}

// Client lists Cal.com bookings. A client without an API key or username
// is unconfigured: it returns no bookings and never touches the network.
type Client struct {
	conf   core.CalcomConfig
	logger core.Logger
	send   sender
}

var _ calendar.BookingSource = (*Client)(nil)

func NewClient(conf core.CalcomConfig, logger core.Logger) *Client {
	return &Client{
		conf:   conf,
		logger: logger,
		send:   &rest.Client{HTTPClient: &http.Client{Timeout: 15 * time.Second}},
	}
}

func (c *Client) configured() bool {
	return c.conf.APIKey != "" && c.conf.Username != ""
}

// Bookings lists the configured account's bookings inside rng as calendar
// entries. The range is forwarded upstream as startTime/endTime so Cal.com
// only returns the visible window; results are filtered again locally
// since the upstream bound is advisory. Unconfigured clients return an
// empty slice; API failures fall back to sample data when enabled so the
// calendar stays demonstrable.
func (c *Client) Bookings(ctx context.Context, region string, rng calendar.Range) ([]calendar.Event, error) {
	if !c.configured() {
		if c.conf.MockFallback {
			return c.mockEvents(), nil
		}
		return []calendar.Event{}, nil
	}

	params := map[string]string{"username": c.conf.Username}
	if rng.From != "" {
		params["startTime"] = rng.From
	}
	if rng.To != "" {
		params["endTime"] = rng.To
	}
	raw, err := c.fetch(ctx, params)
	if err != nil {
		if c.conf.MockFallback {
			c.logger.Warn("calcom: falling back to sample bookings: " + err.Error())
			return c.mockEvents(), nil
		}
		return nil, err
	}
	return clampRange(c.transform(raw), rng), nil
}

func clampRange(events []calendar.Event, rng calendar.Range) []calendar.Event {
	if rng.IsZero() {
		return events
	}
	ranged := make([]calendar.Event, 0, len(events))
	for _, evt := range events {
		if (rng.From == "" || evt.StartDate >= rng.From) && (rng.To == "" || evt.StartDate <= rng.To) {
			ranged = append(ranged, evt)
		}
	}
	return ranged
}

// Today lists today's bookings in the configured timezone.
func (c *Client) Today(ctx context.Context, region string) ([]calendar.Event, error) {
	day := time.Now().In(c.location()).Format("2006-01-02")
	return c.Bookings(ctx, region, calendar.Range{From: day, To: day})
}

// ThisWeek lists bookings from today through the next seven days.
func (c *Client) ThisWeek(ctx context.Context, region string) ([]calendar.Event, error) {
	now := time.Now().In(c.location())
	return c.Bookings(ctx, region, calendar.Range{
		From: now.Format("2006-01-02"),
		To:   now.AddDate(0, 0, 7).Format("2006-01-02"),
	})
}

// ThisMonth lists bookings in the current calendar month.
func (c *Client) ThisMonth(ctx context.Context, region string) ([]calendar.Event, error) {
	now := time.Now().In(c.location())
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, c.location())
	last := first.AddDate(0, 1, -1)
	return c.Bookings(ctx, region, calendar.Range{
		From: first.Format("2006-01-02"),
		To:   last.Format("2006-01-02"),
	})
}

// Proxy forwards a raw bookings query, injecting the server-held API key.
// It returns the upstream status and body untouched so the frontend keeps
// driving the Cal.com response shape.
func (c *Client) Proxy(ctx context.Context, params map[string]string) (int, []byte, error) {
	if !c.configured() {
		return http.StatusServiceUnavailable, nil, errors.New("Cal.com integration not configured")
	}
	query := map[string]string{"apiKey": c.conf.APIKey}
	for _, key := range []string{"username", "startTime", "endTime", "type"} {
		if val, ok := params[key]; ok && val != "" {
			query[key] = val
		}
	}
	res, err := c.send.SendWithContext(ctx, rest.Request{
		Method:      rest.Get,
		BaseURL:     c.conf.BaseURL + "/bookings",
		QueryParams: query,
	})
	if err != nil {
		return http.StatusBadGateway, nil, err
	}
	return res.StatusCode, []byte(res.Body), nil
}

// EventType is one bookable meeting kind on the configured account.
type EventType struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Slug   string `json:"slug"`
	Length int    `json:"length"` // minutes
}

// EventTypes lists the account's bookable event types.
func (c *Client) EventTypes(ctx context.Context) ([]EventType, error) {
	if !c.configured() {
		return []EventType{}, nil
	}
	body, err := c.get(ctx, "/event-types", map[string]string{"username": c.conf.Username})
	if err != nil {
		return nil, err
	}
	var payload struct {
		EventTypes []EventType `json:"event_types"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, fmt.Errorf("decoding Cal.com response: %w", err)
	}
	return payload.EventTypes, nil
}

// TestConnection verifies the configured credentials with a cheap
// event-types call.
func (c *Client) TestConnection(ctx context.Context) error {
	if !c.configured() {
		return errors.New("Cal.com integration not configured")
	}
	_, err := c.EventTypes(ctx)
	return err
}

func (c *Client) fetch(ctx context.Context, params map[string]string) ([]booking, error) {
	body, err := c.get(ctx, "/bookings", params)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Bookings []booking `json:"bookings"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, fmt.Errorf("decoding Cal.com response: %w", err)
	}
	return payload.Bookings, nil
}

func (c *Client) get(ctx context.Context, path string, params map[string]string) (string, error) {
	query := map[string]string{"apiKey": c.conf.APIKey}
	for key, val := range params {
		query[key] = val
	}
	res, err := c.send.SendWithContext(ctx, rest.Request{
		Method:      rest.Get,
		BaseURL:     c.conf.BaseURL + path,
		QueryParams: query,
	})
	if err != nil {
		return "", err
	}
	switch res.StatusCode {
	case http.StatusUnauthorized:
		return "", ErrUnauthorized
	case http.StatusForbidden:
		return "", ErrForbidden
	case http.StatusNotFound:
		return "", ErrNotFound
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", &APIError{Status: res.StatusCode, Body: res.Body}
	}
	return res.Body, nil
}

func (c *Client) location() *time.Location {
	loc, err := time.LoadLocation(c.conf.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
