// Package api wraps HTTP calls to the remote call-center complaint
// service. All methods take a context and return explicit errors; the
// service is a black box reached over JSON/HTTP with either basic-auth
// or bearer-token credentials.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/ravshan77/shikoyatlar-web/internal/models"
)

// Sentinel errors callers branch on.
var (
	// ErrInvalidCode means the server rejected the one-time login code.
	ErrInvalidCode = errors.New("api: invalid code")
	// ErrNotFound means the requested complaint does not exist (or, in
	// list-scan mode, is not on the first page of results).
	ErrNotFound = errors.New("api: complaint not found")
	// ErrUploadRejected means the image store accepted the request but
	// declined the file.
	ErrUploadRejected = errors.New("api: image upload rejected")
)

const defaultTimeout = 15 * time.Second

// Options holds parameters for creating a Client.
type Options struct {
	BaseURL     string
	Credentials Credentials
	Timeout     time.Duration
	// ShowEndpoint enables the dedicated single-complaint endpoint.
	// When false, Complaint falls back to scanning page 1 of the list;
	// records beyond the first page are then reported as not found.
	ShowEndpoint bool
	// HTTPClient overrides the default client, for tests.
	HTTPClient *http.Client
}

// Client talks to the remote complaint API.
type Client struct {
	baseURL      string
	http         *http.Client
	showEndpoint bool

	mu    sync.RWMutex
	creds Credentials
}

// New creates a Client for the given API.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("api: base URL is required")
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:      opts.BaseURL,
		http:         hc,
		showEndpoint: opts.ShowEndpoint,
		creds:        opts.Credentials,
	}, nil
}

// SetCredentials swaps the credential strategy, used in bearer mode once
// a token has been obtained from Authenticate.
func (c *Client) SetCredentials(creds Credentials) {
	c.mu.Lock()
	c.creds = creds
	c.mu.Unlock()
}

// authResponse is the wire shape of the authenticate endpoint.
type authResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    *struct {
		WorkerID   int    `json:"worker_id"`
		WorkerName string `json:"worker_name"`
		Token      string `json:"token"`
	} `json:"data"`
}

// Authenticate exchanges a 6-digit one-time code for a worker session.
// A rejected code yields ErrInvalidCode carrying the server's message.
func (c *Client) Authenticate(ctx context.Context, code string) (models.Session, error) {
	var out authResponse
	err := c.do(ctx, http.MethodPost, "/call-center-complaint-code", map[string]string{"code": code}, &out)
	if err != nil {
		return models.Session{}, err
	}
	if !out.Status || out.Data == nil {
		if out.Message != "" {
			return models.Session{}, fmt.Errorf("%w: %s", ErrInvalidCode, out.Message)
		}
		return models.Session{}, ErrInvalidCode
	}
	return models.Session{
		WorkerID:   out.Data.WorkerID,
		WorkerName: out.Data.WorkerName,
		Token:      out.Data.Token,
	}, nil
}

// Branches lists the business locations used to tag complaints.
func (c *Client) Branches(ctx context.Context) ([]models.Branch, error) {
	var out struct {
		Status bool            `json:"status"`
		Data   []models.Branch `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/call-center-complaint-branch", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// Complaints fetches one page of the complaints list under the given
// filters. The pagination envelope comes straight from the server.
func (c *Client) Complaints(ctx context.Context, page int, filters models.Filters) ([]models.Complaint, models.Pagination, error) {
	if page < 1 {
		page = 1
	}
	var out struct {
		Status     bool               `json:"status"`
		Data       []models.Complaint `json:"data"`
		Pagination models.Pagination  `json:"pagination"`
	}
	path := fmt.Sprintf("/call-center-complaint-index?page=%d", page)
	if err := c.do(ctx, http.MethodPost, path, filters, &out); err != nil {
		return nil, models.Pagination{}, err
	}
	return out.Data, out.Pagination, nil
}

// Complaint fetches a single complaint by id. Without the dedicated
// show endpoint it scans page 1 of the unfiltered list, which misses
// records past the first page — a documented limitation of that API
// variant.
func (c *Client) Complaint(ctx context.Context, id int) (models.Complaint, error) {
	if c.showEndpoint {
		var out struct {
			Status bool             `json:"status"`
			Data   models.Complaint `json:"data"`
		}
		path := fmt.Sprintf("/call-center-complaint-index-show/%d", id)
		if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
			return models.Complaint{}, err
		}
		if !out.Status || out.Data.ID == 0 {
			return models.Complaint{}, ErrNotFound
		}
		return out.Data, nil
	}

	list, _, err := c.Complaints(ctx, 1, models.Filters{})
	if err != nil {
		return models.Complaint{}, err
	}
	for _, cm := range list {
		if cm.ID == id {
			return cm, nil
		}
	}
	return models.Complaint{}, ErrNotFound
}

// UploadImage stores a single image and returns its server-assigned URL.
func (c *Client) UploadImage(ctx context.Context, filename string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("api: build multipart: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("api: read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("api: build multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/call-center-complaint-image-store", &buf)
	if err != nil {
		return "", fmt.Errorf("api: new request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	c.applyCreds(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("api: upload image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("api: upload image: status %d", resp.StatusCode)
	}
	var out struct {
		Status bool   `json:"status"`
		Result string `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("api: upload image: decode: %w", err)
	}
	if !out.Status || out.Result == "" {
		return "", ErrUploadRejected
	}
	return out.Result, nil
}

// CreateComplaint registers a new complaint record.
func (c *Client) CreateComplaint(ctx context.Context, payload models.ComplaintRequest) error {
	return c.do(ctx, http.MethodPost, "/call-center-complaint", payload, nil)
}

// UpdateComplaint replaces an existing complaint record by id.
func (c *Client) UpdateComplaint(ctx context.Context, id int, payload models.ComplaintRequest) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/call-center-complaint/%d", id), payload, nil)
}

func (c *Client) applyCreds(req *http.Request) {
	c.mu.RLock()
	creds := c.creds
	c.mu.RUnlock()
	if creds != nil {
		creds.Apply(req)
	}
}

// do issues a JSON request and decodes the response body into out when
// out is non-nil. Non-2xx statuses are errors.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.applyCreds(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("api: %s %s: status %d", method, path, resp.StatusCode)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: %s %s: decode: %w", method, path, err)
	}
	return nil
}
