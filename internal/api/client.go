package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Denizcan35/barin/internal/core"
	applog "github.com/Denizcan35/barin/internal/log"
)

// StatusError is a non-2xx response from the backend. The body is kept
// truncated for diagnostics only; the dashboard never parses it.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Code, e.Body)
}

// ErrDecode wraps payloads that did not match the contract. Decoding
// fails closed on type mismatches: a half-shaped document is never
// handed to the view. Fields this client does not know are ignored,
// the backend owns these shapes and may grow them.
var ErrDecode = errors.New("malformed backend response")

// Client is the HTTP client for the receipt backend.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *applog.Logger
}

// NewClient builds a client for the given base URL. The token is
// optional; when set it is sent as a bearer credential.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		log:        applog.Default(applog.ComponentAPI),
	}
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, params url.Values, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, endpoint, err)
	}
	if params != nil {
		req.URL.RawQuery = params.Encode()
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		c.log.Warn("Backend request failed",
			applog.FieldMethod, req.Method,
			applog.FieldPath, req.URL.Path,
			applog.FieldStatusCode, resp.StatusCode)
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return resp, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrDecode, endpoint, err)
	}
	return nil
}

// Stats implements StatsReader against GET /api/stats.
func (c *Client) Stats(ctx context.Context) (core.Stats, error) {
	var stats core.Stats
	if err := c.getJSON(ctx, "/api/stats", nil, &stats); err != nil {
		return core.Stats{}, err
	}
	return stats, nil
}

// List implements ReceiptLister against GET /api/receipts. Empty filter
// fields are already omitted by Filter.Values.
func (c *Client) List(ctx context.Context, f core.Filter) (core.ReceiptPage, error) {
	var page core.ReceiptPage
	if err := c.getJSON(ctx, "/api/receipts", f.Values(), &page); err != nil {
		return core.ReceiptPage{}, err
	}
	if page.Total < 0 {
		return core.ReceiptPage{}, fmt.Errorf("%w: negative total %d", ErrDecode, page.Total)
	}
	return page, nil
}

// Update implements ReceiptUpdater against PUT /api/receipts/:id with the
// full document as body.
func (c *Client) Update(ctx context.Context, r core.Receipt) (core.Receipt, error) {
	if err := r.Validate(); err != nil {
		return core.Receipt{}, err
	}
	body, err := json.Marshal(r)
	if err != nil {
		return core.Receipt{}, fmt.Errorf("marshal receipt %d: %w", r.ID, err)
	}
	req, err := c.newRequest(ctx, http.MethodPut, "/api/receipts/"+strconv.FormatInt(r.ID, 10), nil, bytes.NewReader(body))
	if err != nil {
		return core.Receipt{}, err
	}
	resp, err := c.do(req)
	if err != nil {
		return core.Receipt{}, err
	}
	defer resp.Body.Close()

	// The backend echoes the updated record; treat an unparseable echo as
	// success with the submitted document, the contract only promises
	// success/failure here.
	updated := r
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return r, nil
	}
	return updated, nil
}

// Delete implements ReceiptDeleter against DELETE /api/receipts/:id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return core.ErrInvalidID
	}
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/receipts/"+strconv.FormatInt(id, 10), nil, nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// ExportExcel implements ExcelExporter against GET /api/receipts/export/excel.
// The caller owns the returned stream.
func (c *Client) ExportExcel(ctx context.Context, params url.Values) (io.ReadCloser, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/receipts/export/excel", params, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
