// Package jellyfin is a small client for the Jellyfin endpoints behind the
// home screen.
package jellyfin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	clientName       = "homefeed"
	clientVersion    = "0.1.0"
	defaultCacheTTL  = 5 * time.Minute
	defaultUserAgent = clientName + "/" + clientVersion
)

// Sentinel errors for Jellyfin API responses.
var (
	ErrNotFound         = errors.New("item not found")
	ErrUnauthorized     = errors.New("unauthorized: invalid or expired token")
	ErrNotAuthenticated = errors.New("not authenticated: token and user id required")
	ErrInvalidID        = errors.New("invalid item id")
)

// Client is a Jellyfin API client scoped to a single user.
type Client struct {
	baseURL    string
	deviceID   string
	httpClient *http.Client
	log        *slog.Logger
	views      *viewCache

	mu     sync.RWMutex
	token  string
	userID string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken sets a pre-issued access token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithUserID sets the user the home feed is built for.
func WithUserID(id string) Option {
	return func(c *Client) {
		c.userID = id
	}
}

// WithDeviceID overrides the generated device id.
func WithDeviceID(id string) Option {
	return func(c *Client) {
		c.deviceID = id
	}
}

// WithLogger sets a logger for debug output. A nil logger keeps the default.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log == nil {
			return
		}
		c.log = log.With("component", "jellyfin")
	}
}

// WithCacheTTL sets how long user views are cached. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.views = newViewCache(ttl)
	}
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		deviceID: uuid.NewString(),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		log:   slog.Default().With("component", "jellyfin"),
		views: newViewCache(defaultCacheTTL),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server URL images are fetched from.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// UserID returns the current user id.
func (c *Client) UserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

// Authenticate logs in with a username and password and keeps the issued
// token and user id for later calls.
func (c *Client) Authenticate(ctx context.Context, username, password string) (*AuthResponse, error) {
	body, err := json.Marshal(authRequest{Username: username, Pw: password})
	if err != nil {
		return nil, fmt.Errorf("marshal auth body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/Users/AuthenticateByName", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.authHeader(""))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute auth request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("authenticate: %s", resp.Status)
	}

	var auth AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return nil, fmt.Errorf("decode auth response: %w", err)
	}
	if auth.AccessToken == "" {
		return nil, errors.New("auth response missing token")
	}

	c.mu.Lock()
	c.token = auth.AccessToken
	c.userID = auth.User.ID
	c.mu.Unlock()
	c.views.clear()

	c.log.Debug("authenticated", "user", auth.User.Name, "user_id", auth.User.ID)
	return &auth, nil
}

// UserViews returns the user's libraries.
func (c *Client) UserViews(ctx context.Context) ([]Item, error) {
	uid, err := c.requireUser()
	if err != nil {
		return nil, err
	}
	if items, ok := c.views.get(uid); ok {
		return items, nil
	}

	var resp ItemsResponse
	if err := c.getJSON(ctx, "/Users/"+url.PathEscape(uid)+"/Views", nil, &resp); err != nil {
		return nil, fmt.Errorf("user views: %w", err)
	}
	c.views.set(uid, resp.Items)
	return resp.Items, nil
}

// ResumeItems returns partially watched items, most recent first.
func (c *Client) ResumeItems(ctx context.Context, limit int) ([]Item, error) {
	uid, err := c.requireUser()
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("MediaTypes", "Video")
	q.Set("Fields", "PrimaryImageAspectRatio")
	setLimit(q, limit)

	var resp ItemsResponse
	if err := c.getJSON(ctx, "/Users/"+url.PathEscape(uid)+"/Items/Resume", q, &resp); err != nil {
		return nil, fmt.Errorf("resume items: %w", err)
	}
	return resp.Items, nil
}

// NextUp returns the next unwatched episode of each series in progress.
func (c *Client) NextUp(ctx context.Context, limit int) ([]Item, error) {
	uid, err := c.requireUser()
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("UserId", uid)
	setLimit(q, limit)

	var resp ItemsResponse
	if err := c.getJSON(ctx, "/Shows/NextUp", q, &resp); err != nil {
		return nil, fmt.Errorf("next up: %w", err)
	}
	return resp.Items, nil
}

// LatestItems returns recently added items under a library.
func (c *Client) LatestItems(ctx context.Context, parentID string, limit int) ([]Item, error) {
	uid, err := c.requireUser()
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("ParentId", parentID)
	setLimit(q, limit)

	// This endpoint returns a bare array.
	var items []Item
	if err := c.getJSON(ctx, "/Users/"+url.PathEscape(uid)+"/Items/Latest", q, &items); err != nil {
		return nil, fmt.Errorf("latest items for %s: %w", parentID, err)
	}
	return items, nil
}

// Item fetches a single item.
func (c *Client) Item(ctx context.Context, id string) (*Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	uid, err := c.requireUser()
	if err != nil {
		return nil, err
	}

	var item Item
	if err := c.getJSON(ctx, "/Users/"+url.PathEscape(uid)+"/Items/"+url.PathEscape(id), nil, &item); err != nil {
		return nil, fmt.Errorf("item %s: %w", id, err)
	}
	return &item, nil
}

// Ping checks that the server answers its public info endpoint.
func (c *Client) Ping(ctx context.Context) error {
	var info struct {
		ServerName string `json:"ServerName"`
		Version    string `json:"Version"`
	}
	if err := c.getJSON(ctx, "/System/Info/Public", nil, &info); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	c.log.Debug("server reachable", "name", info.ServerName, "version", info.Version)
	return nil
}

func (c *Client) requireUser() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == "" || c.userID == "" {
		return "", ErrNotAuthenticated
	}
	return c.userID, nil
}

func (c *Client) authHeader(token string) string {
	h := fmt.Sprintf(`MediaBrowser Client="%s", Device="%s", DeviceId="%s", Version="%s"`,
		clientName, clientName, c.deviceID, clientVersion)
	if token != "" {
		h += fmt.Sprintf(`, Token="%s"`, token)
	}
	return h
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	req.Header.Set("Authorization", c.authHeader(token))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", defaultUserAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug("request", "path", path, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("jellyfin API error: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func setLimit(q url.Values, limit int) {
	if limit > 0 {
		q.Set("Limit", strconv.Itoa(limit))
	}
}
