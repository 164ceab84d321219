// Package dataops implements the HTTP client for the data operations
// backend that owns all hotel records. The backend signals absence and
// authorization denials with bare JSON strings instead of status codes,
// so decoding is centralized here and mapped onto typed errors.
package dataops

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"hoteldash/internal/core/apperror"
	appctx "hoteldash/internal/core/context"
	"hoteldash/internal/domain"
	"hoteldash/internal/schema"
)

var tracer = otel.Tracer("hoteldash/dataops")

// notFoundSentinel is the exact string the backend returns in place of a
// record when nothing matched. It must be compared byte-for-byte.
const notFoundSentinel = "Not Found"

// Client talks to the data operations backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a backend client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// request performs one backend call and returns the raw response body.
// Transport failures and non-2xx statuses are never mistaken for empty
// data; they come back as upstream-unavailable errors.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, in any) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "dataops.request",
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("upstream.path", path),
		))
	defer span.End()

	if eid := appctx.GetEmployeeID(ctx); eid != 0 {
		span.SetAttributes(attribute.Int("enduser.id", eid))
	}

	var body io.Reader
	if in != nil {
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return nil, apperror.NewInternal(err)
		}
		body = buf
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewUpstreamUnavailable(err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperror.NewUpstreamUnavailable(err)
	}
	if resp.StatusCode >= 400 {
		err := fmt.Errorf("backend status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
		span.RecordError(err)
		return nil, apperror.NewUpstreamUnavailable(err)
	}
	return raw, nil
}

// sentinel extracts the backend's string answer, if the body is one.
func sentinel(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// decodeRecords interprets a body expected to hold rows. A "Not Found"
// sentinel means zero rows; any other string is an authorization denial
// surfaced verbatim. Single objects are wrapped into a one-row slice.
func decodeRecords(raw json.RawMessage) ([]domain.Record, error) {
	if s, ok := sentinel(raw); ok {
		if s == notFoundSentinel {
			return []domain.Record{}, nil
		}
		return nil, apperror.NewUpstreamDenied(s)
	}

	var records []domain.Record
	if err := json.Unmarshal(raw, &records); err == nil {
		return records, nil
	}

	var rec domain.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, apperror.NewUpstreamUnavailable(fmt.Errorf("malformed backend response: %w", err))
	}
	return []domain.Record{rec}, nil
}

// decodeRecord interprets a body expected to hold exactly one record.
func decodeRecord(raw json.RawMessage, entity string, id any) (domain.Record, error) {
	if s, ok := sentinel(raw); ok {
		if s == notFoundSentinel {
			return nil, apperror.NewNotFound(entity, id)
		}
		return nil, apperror.NewUpstreamDenied(s)
	}

	var rec domain.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, apperror.NewUpstreamUnavailable(fmt.Errorf("malformed backend response: %w", err))
	}
	return rec, nil
}

// Ping checks backend reachability with a cheap read.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.request(ctx, http.MethodGet, "/dataops/chains", nil, nil)
	return err
}

// List returns all records of the entity.
func (c *Client) List(ctx context.Context, ent schema.EntityDef) ([]domain.Record, error) {
	raw, err := c.request(ctx, http.MethodGet, ent.PathPrefix, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecords(raw)
}

// Get returns one record by id.
func (c *Client) Get(ctx context.Context, ent schema.EntityDef, id int) (domain.Record, error) {
	raw, err := c.request(ctx, http.MethodGet, fmt.Sprintf("%s/%d", ent.PathPrefix, id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord(raw, ent.Label, id)
}

// Create posts a new record.
func (c *Client) Create(ctx context.Context, ent schema.EntityDef, payload map[string]any) (domain.Record, error) {
	raw, err := c.request(ctx, http.MethodPost, ent.PathPrefix, nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeRecord(raw, ent.Label, payload[ent.IDField])
}

// Update replaces an existing record.
func (c *Client) Update(ctx context.Context, ent schema.EntityDef, id int, payload map[string]any) (domain.Record, error) {
	raw, err := c.request(ctx, http.MethodPut, fmt.Sprintf("%s/%d", ent.PathPrefix, id), nil, payload)
	if err != nil {
		return nil, err
	}
	return decodeRecord(raw, ent.Label, id)
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, ent schema.EntityDef, id int) error {
	_, err := c.request(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", ent.PathPrefix, id), nil, nil)
	return err
}

// FindByPath queries a lookup that takes its argument as a path segment.
func (c *Client) FindByPath(ctx context.Context, ent schema.EntityDef, lookup string, value int) ([]domain.Record, error) {
	raw, err := c.request(ctx, http.MethodGet, fmt.Sprintf("%s/%s/%d", ent.PathPrefix, lookup, value), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecords(raw)
}

// FindByQuery queries a lookup that takes its argument as a query parameter.
func (c *Client) FindByQuery(ctx context.Context, ent schema.EntityDef, lookup, field, value string) ([]domain.Record, error) {
	q := url.Values{field: []string{value}}
	raw, err := c.request(ctx, http.MethodGet, fmt.Sprintf("%s/%s", ent.PathPrefix, lookup), q, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecords(raw)
}

// FindByCredentials verifies a username/password pair against login records.
func (c *Client) FindByCredentials(ctx context.Context, username, password string) (domain.Record, error) {
	q := url.Values{
		"username": []string{username},
		"password": []string{password},
	}
	raw, err := c.request(ctx, http.MethodGet, "/dataops/login/byusernamepassword", q, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecord(raw, "login", username)
}

// QuoteTotalCost asks the backend to price a reservation of the given
// unavailable-room slot for the client. An empty result means the pair is
// already taken by another reservation; excludeReid makes the backend skip
// the reservation being updated.
func (c *Client) QuoteTotalCost(ctx context.Context, ruid, clid int, excludeReid *int) (float64, bool, error) {
	path := fmt.Sprintf("/dataops/reserve/totalcost/%d/%d", ruid, clid)
	if excludeReid != nil {
		path = fmt.Sprintf("%s/%d", path, *excludeReid)
	}
	raw, err := c.request(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return 0, false, err
	}
	rows, err := decodeRecords(raw)
	if err != nil {
		return 0, false, err
	}
	if len(rows) == 0 {
		return 0, false, nil
	}
	total, ok := rows[0].Float("Total Cost")
	if !ok {
		return 0, false, apperror.NewUpstreamUnavailable(fmt.Errorf("quote response missing total cost"))
	}
	return total, true, nil
}

// GlobalReport runs a system-wide statistic. The employee id travels in the
// body because the backend re-checks the position on its own records.
func (c *Client) GlobalReport(ctx context.Context, path string, eid int) ([]domain.Record, error) {
	raw, err := c.request(ctx, http.MethodPost, path, nil, map[string]any{"eid": eid})
	if err != nil {
		return nil, err
	}
	return decodeRecords(raw)
}

// HotelReport runs a per-hotel statistic.
func (c *Client) HotelReport(ctx context.Context, hid int, section string, eid int) ([]domain.Record, error) {
	path := fmt.Sprintf("/dataops/hotel/%d/%s", hid, section)
	raw, err := c.request(ctx, http.MethodPost, path, nil, map[string]any{"eid": eid})
	if err != nil {
		return nil, err
	}
	return decodeRecords(raw)
}
