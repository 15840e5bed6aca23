package client

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/crucial707/asset-registry/internal/models"
	"github.com/go-resty/resty/v2"
)

// APIError is a non-2xx response from the registry API.
type APIError struct {
	StatusCode int
	Detail     string            `json:"detail"`
	Fields     map[string]string `json:"fields"`
}

func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = "unexpected response"
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+e.Fields[k])
		}
		msg += " (" + strings.Join(parts, ", ") + ")"
	}
	return fmt.Sprintf("%d: %s", e.StatusCode, msg)
}

// Client is a resty-backed client for the registry HTTP API.
type Client struct {
	httpClient *resty.Client
}

// New builds a client for the API at baseURL.
func New(baseURL string) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)

	return &Client{httpClient: restyClient}
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	apiErr := &APIError{}
	req := c.httpClient.R().
		SetContext(ctx).
		SetError(apiErr)
	if result != nil {
		req.SetResult(result)
	}
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		apiErr.StatusCode = resp.StatusCode()
		return apiErr
	}
	return nil
}

// List returns all assets in insertion order.
func (c *Client) List(ctx context.Context) ([]models.Asset, error) {
	var out []models.Asset
	if err := c.do(ctx, resty.MethodGet, "/assets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns the asset with id.
func (c *Client) Get(ctx context.Context, id int) (models.Asset, error) {
	var out models.Asset
	err := c.do(ctx, resty.MethodGet, "/assets/"+strconv.Itoa(id), nil, &out)
	return out, err
}

// Create posts payload, a JSON object holding only the fields to send.
func (c *Client) Create(ctx context.Context, payload map[string]any) (models.Asset, error) {
	var out models.Asset
	err := c.do(ctx, resty.MethodPost, "/assets", payload, &out)
	return out, err
}

// Replace puts payload as the full replacement for the asset at id.
func (c *Client) Replace(ctx context.Context, id int, payload map[string]any) (models.Asset, error) {
	var out models.Asset
	err := c.do(ctx, resty.MethodPut, "/assets/"+strconv.Itoa(id), payload, &out)
	return out, err
}

// Delete removes the asset at id and returns the server's confirmation.
func (c *Client) Delete(ctx context.Context, id int) (string, error) {
	var out struct {
		Detail string `json:"detail"`
	}
	err := c.do(ctx, resty.MethodDelete, "/assets/"+strconv.Itoa(id), nil, &out)
	return out.Detail, err
}

// Audit returns the server's audit trail, newest first.
func (c *Client) Audit(ctx context.Context) ([]models.AuditEntry, error) {
	var out []models.AuditEntry
	if err := c.do(ctx, resty.MethodGet, "/audit", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
