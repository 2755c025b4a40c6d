package client

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

	"github.com/google/uuid"

	"github.com/dmitrijs2005/usermanager/internal/client/models"
	"github.com/dmitrijs2005/usermanager/internal/logging"
)

// RequestIDHeader carries the per-call correlation id.
const RequestIDHeader = "X-Request-ID"

const (
	usersPath    = "/users"
	maxErrorBody = 512
)

var _ Client = (*HTTPClient)(nil)

// HTTPClient talks to the remote user service over HTTP+JSON.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// NewHTTPClient validates baseURL and builds a client whose calls time out
// after timeout (0 disables the client-side timeout).
func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

func userPath(id int64) string {
	return usersPath + "/" + models.FormatID(id)
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, "list users", http.MethodGet, usersPath, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, "get user", http.MethodGet, userPath(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser posts u without an identifier and returns the record with the
// identifier the service assigned.
func (c *HTTPClient) CreateUser(ctx context.Context, u models.User) (*models.User, error) {
	u.ID = 0

	var created models.User
	if err := c.do(ctx, "create user", http.MethodPost, usersPath, u, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateUser replaces the record id with the full payload u.
func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, u models.User) (*models.User, error) {
	u.ID = id

	var updated models.User
	if err := c.do(ctx, "update user", http.MethodPut, userPath(id), u, &updated); err != nil {
		return nil, err
	}
	if updated.ID == 0 {
		updated.ID = id
	}
	return &updated, nil
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, "delete user", http.MethodDelete, userPath(id), nil, nil)
}

// do performs one request. A nil out means the response body is ignored.
func (c *HTTPClient) do(ctx context.Context, op, method, path string, in, out any) error {
	requestID := uuid.NewString()
	target := c.baseURL + path

	callErr := &RemoteCallError{Op: op, Method: method, URL: target, RequestID: requestID}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			callErr.Err = fmt.Errorf("encode request: %w", err)
			return callErr
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		callErr.Err = err
		return callErr
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		callErr.Err = fmt.Errorf("%w: %w", ErrUnavailable, err)
		return callErr
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "remote call",
		"op", op,
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	callErr.Status = resp.StatusCode

	switch {
	case resp.StatusCode == http.StatusNotFound:
		callErr.Err = ErrNotFound
		return callErr
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		callErr.Err = fmt.Errorf("%w: %s", ErrUnexpectedStatus, strings.TrimSpace(string(snippet)))
		return callErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		callErr.Err = fmt.Errorf("%w: %w", ErrMalformedResponse, err)
		return callErr
	}
	return nil
}
