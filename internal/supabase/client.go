package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const listingsPath = "/rest/v1/listings"

// DefaultTimeout bounds each outbound call when the config gives none.
const DefaultTimeout = 20 * time.Second

// Client issues single-shot requests against the listings table. It is
// constructed once at startup and injected into every tool; nothing is
// read from the environment inside a request path. A Client with empty
// credentials is valid to construct — each operation then reports a
// config error instead of dialing out.
type Client struct {
	httpClient *http.Client
	baseURL    string
	serviceKey string
}

// NewClient builds a client for the given project URL and service key.
func NewClient(baseURL, serviceKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		serviceKey: serviceKey,
	}
}

// Outcome is the uniform envelope for insert/update/delete.
type Outcome struct {
	Success bool      `json:"success"`
	Status  int       `json:"status"`
	Result  any       `json:"result,omitempty"`
	Error   string    `json:"error,omitempty"`
	Kind    ErrorKind `json:"error_kind,omitempty"`
}

// SearchOutcome is the envelope for a filtered search.
type SearchOutcome struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Results []json.RawMessage `json:"results,omitempty"`
	Status  int               `json:"status,omitempty"`
	Error   string            `json:"error,omitempty"`
	Kind    ErrorKind         `json:"error_kind,omitempty"`
}

// ListOutcome is the envelope for a per-owner listing read.
type ListOutcome struct {
	Success  bool              `json:"success"`
	Status   int               `json:"status"`
	Listings []json.RawMessage `json:"listings,omitempty"`
	Count    int               `json:"count"`
	Error    string            `json:"error,omitempty"`
	Kind     ErrorKind         `json:"error_kind,omitempty"`
}

// ListingFields holds the writable listing attributes. Nil fields are
// omitted from request bodies, which is what gives Update its partial
// patch semantics.
type ListingFields struct {
	Title       *string
	UserID      *string
	Price       *int
	Condition   *string
	Category    *string
	Description *string
	Location    *string
	Stock       *int
	Status      *string
	Metadata    map[string]any
}

func (f ListingFields) payload() map[string]any {
	body := map[string]any{}
	if f.Title != nil {
		body["title"] = *f.Title
	}
	if f.UserID != nil {
		body["user_id"] = *f.UserID
	}
	if f.Price != nil {
		body["price"] = *f.Price
	}
	if f.Condition != nil {
		body["condition"] = *f.Condition
	}
	if f.Category != nil {
		body["category"] = *f.Category
	}
	if f.Description != nil {
		body["description"] = *f.Description
	}
	if f.Location != nil {
		body["location"] = *f.Location
	}
	if f.Stock != nil {
		body["stock"] = *f.Stock
	}
	if f.Status != nil {
		body["status"] = *f.Status
	}
	if f.Metadata != nil {
		body["metadata"] = f.Metadata
	}
	return body
}

// Insert creates a listing. Status is forced to "active" and the
// created row is requested back.
func (c *Client) Insert(ctx context.Context, fields ListingFields) Outcome {
	body := fields.payload()
	body["status"] = "active"

	status, result, apiErr := c.do(ctx, http.MethodPost, nil, body, "return=representation")
	if apiErr != nil {
		return failOutcome(apiErr)
	}
	return Outcome{Success: true, Status: status, Result: result}
}

// Update patches a listing by id. Only supplied fields are sent;
// omitted fields keep their stored values.
func (c *Client) Update(ctx context.Context, listingID string, fields ListingFields) Outcome {
	query := url.Values{}
	query.Add("id", Predicate{Field: "id", Op: OpEq, Value: listingID}.encode())

	status, result, apiErr := c.do(ctx, http.MethodPatch, query, fields.payload(), "return=representation")
	if apiErr != nil {
		return failOutcome(apiErr)
	}
	return Outcome{Success: true, Status: status, Result: result}
}

// Delete removes a listing by id. Hard delete; success means the server
// accepted the deletion.
func (c *Client) Delete(ctx context.Context, listingID string) Outcome {
	query := url.Values{}
	query.Add("id", Predicate{Field: "id", Op: OpEq, Value: listingID}.encode())

	status, result, apiErr := c.do(ctx, http.MethodDelete, query, nil, "")
	if apiErr != nil {
		return failOutcome(apiErr)
	}
	return Outcome{Success: true, Status: status, Result: result}
}

// Search runs a filtered read and returns the full matching set,
// newest first.
func (c *Client) Search(ctx context.Context, params SearchParams) SearchOutcome {
	_, result, apiErr := c.do(ctx, http.MethodGet, params.Values(), nil, "")
	if apiErr != nil {
		return SearchOutcome{Success: false, Status: apiErr.Status, Error: apiErr.Message, Kind: apiErr.Kind}
	}

	rows, err := asRows(result)
	if err != nil {
		ie := errInternal(err)
		return SearchOutcome{Success: false, Status: ie.Status, Error: ie.Message, Kind: ie.Kind}
	}
	return SearchOutcome{Success: true, Count: len(rows), Results: rows}
}

// ListByOwner reads one owner's listings, optionally filtered by
// status, newest first.
func (c *Client) ListByOwner(ctx context.Context, userID, status string, limit int) ListOutcome {
	code, result, apiErr := c.do(ctx, http.MethodGet, ownerValues(userID, status, limit), nil, "")
	if apiErr != nil {
		return ListOutcome{Success: false, Status: apiErr.Status, Error: apiErr.Message, Kind: apiErr.Kind}
	}

	rows, err := asRows(result)
	if err != nil {
		ie := errInternal(err)
		return ListOutcome{Success: false, Status: ie.Status, Error: ie.Message, Kind: ie.Kind}
	}
	return ListOutcome{Success: true, Status: code, Listings: rows, Count: len(rows)}
}

func failOutcome(apiErr *Error) Outcome {
	return Outcome{Success: false, Status: apiErr.Status, Error: apiErr.Message, Kind: apiErr.Kind}
}

// asRows coerces a decoded 2xx body into a row slice. PostgREST always
// answers reads with a JSON array.
func asRows(result any) ([]json.RawMessage, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// do issues the single outbound call. It returns the response status,
// the decoded body (raw text when not JSON), or a tagged error. No
// retries: every failure is terminal for the call.
func (c *Client) do(ctx context.Context, method string, query url.Values, body any, prefer string) (int, any, *Error) {
	if c.baseURL == "" || c.serviceKey == "" {
		return 0, nil, errConfig("SUPABASE_URL or SUPABASE_SERVICE_KEY is not set")
	}

	endpoint := c.baseURL + listingsPath
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, errInternal(err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return 0, nil, errInternal(err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return 0, nil, errTimeout()
		}
		return 0, nil, errConnection(err)
	}
	defer resp.Body.Close()

	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, errInternal(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, nil, errUpstream(resp.StatusCode, string(respData))
	}

	return resp.StatusCode, decodeBody(respData), nil
}

// decodeBody parses a 2xx body as JSON, falling back to the raw text.
func decodeBody(data []byte) any {
	if len(data) == 0 {
		return nil
	}
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return string(data)
	}
	return decoded
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
