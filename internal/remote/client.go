// Package remote is the JSON-over-HTTP client for the task-keeper API.
//
// The client only classifies outcomes; it never substitutes data. Offline
// fallback is policy and lives with the services that call it.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/and161185/task-keeper/internal/errs"
	"github.com/and161185/task-keeper/internal/model"
)

// APIError is a classified remote failure. Status holds the HTTP status
// code; 0 is reserved for transport-level failures (network unreachable,
// timeout) where no response was received.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote: status=%d %s", e.Status, e.Message)
}

// Unreachable reports whether the failure happened before any HTTP
// response arrived.
func (e *APIError) Unreachable() bool { return e.Status == 0 }

// Is lets errors.Is(err, errs.ErrUnreachable) match transport failures.
func (e *APIError) Is(target error) bool {
	return target == errs.ErrUnreachable && e.Unreachable()
}

// IsUnreachable reports whether err is a transport-level remote failure.
func IsUnreachable(err error) bool {
	return errors.Is(err, errs.ErrUnreachable)
}

// TokenSource supplies the current bearer token, or "" when anonymous.
type TokenSource func() string

// Client talks to one API base URL. The zero value is not usable; use New.
type Client struct {
	base  string
	http  *http.Client
	token TokenSource
}

// New constructs a client. timeout bounds each call unless the caller's
// context expires first; token may be nil for anonymous use.
func New(baseURL string, timeout time.Duration, token TokenSource) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		http:  &http.Client{Timeout: timeout},
		token: token,
	}
}

// apiMessage is the error body shape the server responds with.
type apiMessage struct {
	Message string `json:"message"`
}

// do performs one round trip. body (when non-nil) is sent as JSON; a 2xx
// response is decoded into out (when non-nil). Every failure comes back as
// *APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &APIError{Status: 0, Message: err.Error()}
		}
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return &APIError{Status: 0, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Status: 0, Message: "network error: " + err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var m apiMessage
		_ = json.NewDecoder(resp.Body).Decode(&m)
		if m.Message == "" {
			m.Message = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Message: m.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "decode response: " + err.Error()}
	}
	return nil
}

// Login authenticates against the remote API.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", creds, &out)
	return out, err
}

// Signup registers a new remote account.
func (c *Client) Signup(ctx context.Context, su model.Signup) (model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", su, &out)
	return out, err
}

// UserByID fetches a user record.
func (c *Client) UserByID(ctx context.Context, id string) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, &out)
	return out, err
}

// SearchUsers queries users by free text.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]model.User, error) {
	var out struct {
		Users []model.User `json:"users"`
	}
	err := c.do(ctx, http.MethodGet, "/users/search?q="+url.QueryEscape(query), nil, &out)
	return out.Users, err
}

// UpdateUser replaces mutable profile fields of a user.
func (c *Client) UpdateUser(ctx context.Context, id string, u model.User) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPut, "/users/"+url.PathEscape(id), u, &out)
	return out, err
}

// TodosByUser fetches a user's todos.
func (c *Client) TodosByUser(ctx context.Context, userID string) ([]model.Todo, error) {
	var out struct {
		Todos []model.Todo `json:"todos"`
	}
	err := c.do(ctx, http.MethodGet, "/todos/user/"+url.PathEscape(userID), nil, &out)
	return out.Todos, err
}

// CreateTodo creates a todo remotely and returns the stored record.
func (c *Client) CreateTodo(ctx context.Context, t model.Todo) (model.Todo, error) {
	var out model.Todo
	err := c.do(ctx, http.MethodPost, "/todos", t, &out)
	return out, err
}

// UpdateTodo replaces a todo remotely and returns the stored record.
func (c *Client) UpdateTodo(ctx context.Context, id string, t model.Todo) (model.Todo, error) {
	var out model.Todo
	err := c.do(ctx, http.MethodPut, "/todos/"+url.PathEscape(id), t, &out)
	return out, err
}

// DeleteTodo deletes a todo remotely.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), nil, nil)
}
