// Package client is a Go client for the Shipsy API. Authentication rides on
// the server's HttpOnly cookies; the client keeps a cookie jar and silently
// refreshes the session shortly before the access token expires.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"
)

// Client talks to a Shipsy API server. Create one with New; the zero value
// is not usable.
type Client struct {
	baseURL string
	http    *http.Client

	onLogout  func()
	refresher *refresher

	mu     sync.Mutex
	authed bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A cookie jar is
// installed on it when it has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogoutHandler registers a callback invoked when the session is lost,
// either through an explicit Logout or a failed silent refresh.
func WithLogoutHandler(fn func()) Option {
	return func(c *Client) { c.onLogout = fn }
}

// WithRefreshLeeway overrides how long before expiry the silent refresh
// fires. Defaults to two minutes.
func WithRefreshLeeway(d time.Duration) Option {
	return func(c *Client) { c.refresher.leeway = d }
}

// New builds a client for the API rooted at baseURL, e.g.
// "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("client: invalid base url: %w", err)
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	c.refresher = newRefresher(defaultLeeway, c.silentRefresh)

	for _, opt := range opts {
		opt(c)
	}

	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("client: cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	return c, nil
}

// --- Session lifecycle ---

// Register creates an account. It does not start a session.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*User, error) {
	return doJSON[User](ctx, c, http.MethodPost, "/api/auth/register", in)
}

// Login starts a session. The server sets the auth cookies; the client arms
// the silent-refresh timer from the reported access-token lifetime.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	in := map[string]string{"email": email, "password": password}
	session, err := doJSON[Session](ctx, c, http.MethodPost, "/api/auth/login", in)
	if err != nil {
		return nil, err
	}
	c.sessionStarted(session.ExpiresIn)
	return session, nil
}

// Refresh rotates the session now instead of waiting for the timer.
func (c *Client) Refresh(ctx context.Context) error {
	type refreshed struct {
		ExpiresIn int64 `json:"expires_in"`
	}
	resp, err := doJSON[refreshed](ctx, c, http.MethodPost, "/api/auth/refresh", nil)
	if err != nil {
		c.sessionLost()
		return err
	}
	c.sessionStarted(resp.ExpiresIn)
	return nil
}

// Logout ends the session on the server and locally. The local state is
// cleared even when the server call fails.
func (c *Client) Logout(ctx context.Context) error {
	_, err := doJSON[struct{}](ctx, c, http.MethodPost, "/api/auth/logout", nil)
	c.sessionLost()
	return err
}

// Me returns the authenticated account.
func (c *Client) Me(ctx context.Context) (*User, error) {
	return doJSON[User](ctx, c, http.MethodGet, "/api/auth/me", nil)
}

// UpdateProfile changes name and/or phone. Nil fields are left untouched.
func (c *Client) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*User, error) {
	return doJSON[User](ctx, c, http.MethodPut, "/api/auth/profile", in)
}

// ChangePassword rotates the account password.
func (c *Client) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	_, err := doJSON[struct{}](ctx, c, http.MethodPut, "/api/auth/change-password", in)
	return err
}

func (c *Client) sessionStarted(expiresIn int64) {
	c.mu.Lock()
	c.authed = true
	c.mu.Unlock()
	c.refresher.schedule(time.Duration(expiresIn) * time.Second)
}

func (c *Client) sessionLost() {
	c.mu.Lock()
	wasAuthed := c.authed
	c.authed = false
	c.mu.Unlock()

	c.refresher.cancel()
	if wasAuthed && c.onLogout != nil {
		c.onLogout()
	}
}

// silentRefresh runs on the refresher timer.
func (c *Client) silentRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	_ = c.Refresh(ctx)
}

func (c *Client) isAuthed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.authed
}

// --- Transport ---

// doJSON sends one request and decodes the envelope's data into T. An
// authenticated request that comes back 401 is retried exactly once after a
// silent refresh.
func doJSON[T any](ctx context.Context, c *Client, method, path string, body any) (*T, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("client: encode request: %w", err)
		}
	}

	res, err := c.send(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}

	if res.StatusCode == http.StatusUnauthorized && c.isAuthed() && !isAuthPath(path) {
		res.Body.Close()
		if err := c.Refresh(ctx); err != nil {
			return nil, err
		}
		res, err = c.send(ctx, method, path, payload)
		if err != nil {
			return nil, err
		}
	}
	defer res.Body.Close()

	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("client: decode response: %w", err)
	}

	if res.StatusCode >= 400 || !env.Success {
		apiErr := &APIError{StatusCode: res.StatusCode, Message: env.Message}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			apiErr.Details = env.Error.Details
		}
		return nil, apiErr
	}

	out := new(T)
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("client: decode data: %w", err)
		}
	}
	return out, nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte) (*http.Response, error) {
	var body *bytes.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("client: build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	return res, nil
}

func isAuthPath(path string) bool {
	switch path {
	case "/api/auth/login", "/api/auth/refresh", "/api/auth/logout", "/api/auth/register":
		return true
	}
	return false
}
