package datastore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mohanbhogavarapu07/bolisetti-fast-api/internal/core/domain"
)

// The remote record store cannot filter reliably by arbitrary fields, so
// repositories fetch a bounded page and filter client-side. These caps mirror
// the store's observed behavior and must not be raised casually.
const (
	// DefaultPageSize is the page cap for client-side filtered reads
	DefaultPageSize = 1000
	// AdminPageSize is the page cap for the (small) admin collection
	AdminPageSize = 100
)

// ErrNoMatch is returned by Update when no record satisfied the where clause.
// Conditional updates (e.g. mark-used on an OTP) rely on this.
var ErrNoMatch = errors.New("no record matched")

// Client is a typed HTTP client for the record-store service.
// All calls carry a bounded timeout; no retries are performed.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a record-store client for the given base URL
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL + "/api",
		http:    &http.Client{Timeout: timeout},
	}
}

// envelope is the store's response wrapper
type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta json.RawMessage `json:"meta,omitempty"`
}

// updateBody is the store's update request shape
type updateBody struct {
	Where interface{} `json:"where"`
	Data  interface{} `json:"data"`
}

// createBody is the store's create request shape
type createBody struct {
	Data interface{} `json:"data"`
}

// whereBody is the store's delete request shape
type whereBody struct {
	Where interface{} `json:"where"`
}

// FindMany fetches a page of records from a collection and decodes the
// envelope's data array into out
func (c *Client) FindMany(ctx context.Context, model string, skip, take int, bearer string, out interface{}) error {
	url := fmt.Sprintf("%s/%s/findMany?skip=%d&take=%d", c.baseURL, model, skip, take)
	return c.do(ctx, http.MethodGet, url, model+".findMany", nil, bearer, out)
}

// Create inserts a record and decodes the created row into out
func (c *Client) Create(ctx context.Context, model string, data interface{}, bearer string, out interface{}) error {
	url := fmt.Sprintf("%s/%s/create", c.baseURL, model)
	return c.do(ctx, http.MethodPost, url, model+".create", createBody{Data: data}, bearer, out)
}

// Update applies data to the record(s) matching where. Returns ErrNoMatch when
// the store rejects the update because nothing satisfied the where clause.
func (c *Client) Update(ctx context.Context, model string, where, data interface{}, bearer string, out interface{}) error {
	url := fmt.Sprintf("%s/%s/update", c.baseURL, model)
	err := c.do(ctx, http.MethodPut, url, model+".update", updateBody{Where: where, Data: data}, bearer, out)
	var se *domain.StoreError
	if errors.As(err, &se) && (se.Status == http.StatusNotFound || se.Status == http.StatusBadRequest) {
		return ErrNoMatch
	}
	return err
}

// Delete removes the record matching where
func (c *Client) Delete(ctx context.Context, model string, where interface{}, bearer string) error {
	url := fmt.Sprintf("%s/%s/delete", c.baseURL, model)
	return c.do(ctx, http.MethodDelete, url, model+".delete", whereBody{Where: where}, bearer, nil)
}

// DeleteMany removes all records matching where
func (c *Client) DeleteMany(ctx context.Context, model string, where interface{}, bearer string) error {
	url := fmt.Sprintf("%s/%s/deleteMany", c.baseURL, model)
	return c.do(ctx, http.MethodDelete, url, model+".deleteMany", whereBody{Where: where}, bearer, nil)
}

// do issues one request and decodes the envelope. Non-2xx responses become
// StoreError with the upstream body kept for logs.
func (c *Client) do(ctx context.Context, method, url, op string, body interface{}, bearer string, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return domain.NewStoreError(op, 0, err.Error())
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return domain.NewStoreError(op, 0, err.Error())
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.NewStoreError(op, 0, err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewStoreError(op, 0, err.Error())
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return domain.NewStoreError(op, resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return domain.NewStoreError(op, 0, err.Error())
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return domain.NewStoreError(op, 0, err.Error())
	}
	return nil
}
