// Package client is the Go client for the Trackly API plus the local state
// layer the UI reads from: a Store mirroring server data with optimistic
// updates, and a debounce helper for search-as-you-type.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"trackly-server/models"
)

// Client talks to one Trackly server on behalf of one user.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken installs the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) { c.token = token }

// envelope is the server's common response wrapper.
type envelope struct {
	StatusCode int    `json:"status_code"`
	StatusMsg  string `json:"status_msg"`

	UserID     int64           `json:"user_id"`
	Token      string          `json:"token"`
	User       *models.User    `json:"user"`
	Entity     *models.Entity  `json:"entity"`
	Entities   []models.Entity `json:"entities"`
	Entry      *models.Entry   `json:"entry"`
	Entries    []models.Entry  `json:"entries"`
	NextCursor string          `json:"next_cursor"`
	URL        string          `json:"url"`
	Title      string          `json:"title"`
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("unauthorized")
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if env.StatusCode != 0 {
		return nil, fmt.Errorf("server: %s", env.StatusMsg)
	}
	return &env, nil
}

// Register creates an account and installs the returned token.
func (c *Client) Register(ctx context.Context, username, password string) (int64, error) {
	env, err := c.do(ctx, http.MethodPost, "/user/register", map[string]string{
		"username": username, "password": password,
	})
	if err != nil {
		return 0, err
	}
	c.token = env.Token
	return env.UserID, nil
}

// Login authenticates and installs the returned token.
func (c *Client) Login(ctx context.Context, username, password string) (int64, error) {
	env, err := c.do(ctx, http.MethodPost, "/user/login", map[string]string{
		"username": username, "password": password,
	})
	if err != nil {
		return 0, err
	}
	c.token = env.Token
	return env.UserID, nil
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/user/info", nil)
	if err != nil {
		return nil, err
	}
	return env.User, nil
}

// EntityInput is the create/update payload for an entity.
type EntityInput struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Categories []string `json:"categories"`
	ValueType  string   `json:"value_type"`
	Properties string   `json:"properties"`
}

func (c *Client) CreateEntity(ctx context.Context, in EntityInput) (*models.Entity, error) {
	env, err := c.do(ctx, http.MethodPost, "/entities", in)
	if err != nil {
		return nil, err
	}
	return env.Entity, nil
}

func (c *Client) ListEntities(ctx context.Context) ([]models.Entity, error) {
	env, err := c.do(ctx, http.MethodGet, "/entities", nil)
	if err != nil {
		return nil, err
	}
	return env.Entities, nil
}

func (c *Client) UpdateEntity(ctx context.Context, id int64, in EntityInput) (*models.Entity, error) {
	env, err := c.do(ctx, http.MethodPut, "/entities/"+strconv.FormatInt(id, 10), in)
	if err != nil {
		return nil, err
	}
	return env.Entity, nil
}

func (c *Client) DeleteEntity(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, "/entities/"+strconv.FormatInt(id, 10), nil)
	return err
}

// EntryInput is the create/update payload for an entry.
type EntryInput struct {
	EntityID  int64     `json:"entity_id"`
	Timestamp time.Time `json:"timestamp,omitempty"`
	Notes     string    `json:"notes"`
	Value     *float64  `json:"value,omitempty"`
	Location  string    `json:"location,omitempty"`
	Images    []string  `json:"images"`
}

func (c *Client) CreateEntry(ctx context.Context, in EntryInput) (*models.Entry, error) {
	env, err := c.do(ctx, http.MethodPost, "/entries", in)
	if err != nil {
		return nil, err
	}
	return env.Entry, nil
}

func (c *Client) UpdateEntry(ctx context.Context, id int64, in EntryInput) (*models.Entry, error) {
	env, err := c.do(ctx, http.MethodPut, "/entries/"+strconv.FormatInt(id, 10), in)
	if err != nil {
		return nil, err
	}
	return env.Entry, nil
}

func (c *Client) DeleteEntry(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, "/entries/"+strconv.FormatInt(id, 10), nil)
	return err
}

// ToggleArchiveEntry flips the archived flag and returns the updated entry.
func (c *Client) ToggleArchiveEntry(ctx context.Context, id int64) (*models.Entry, error) {
	env, err := c.do(ctx, http.MethodPost, "/entries/"+strconv.FormatInt(id, 10)+"/archive", nil)
	if err != nil {
		return nil, err
	}
	return env.Entry, nil
}

// TimelineQuery selects and orders a timeline page.
type TimelineQuery struct {
	EntityID        int64
	Hashtag         string
	Search          string
	Ascending       bool
	IncludeArchived bool
	Limit           int
	Cursor          string
}

func (q TimelineQuery) encode() string {
	v := url.Values{}
	if q.EntityID != 0 {
		v.Set("entity_id", strconv.FormatInt(q.EntityID, 10))
	}
	if q.Hashtag != "" {
		v.Set("hashtag", q.Hashtag)
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Ascending {
		v.Set("order", "asc")
	}
	if q.IncludeArchived {
		v.Set("include_archived", "1")
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Cursor != "" {
		v.Set("cursor", q.Cursor)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// ListEntries fetches one timeline page; the returned cursor is "" on the
// last page.
func (c *Client) ListEntries(ctx context.Context, q TimelineQuery) ([]models.Entry, string, error) {
	env, err := c.do(ctx, http.MethodGet, "/entries"+q.encode(), nil)
	if err != nil {
		return nil, "", err
	}
	return env.Entries, env.NextCursor, nil
}

// LinkTitle asks the server for a page title preview.
func (c *Client) LinkTitle(ctx context.Context, rawURL string) (string, error) {
	v := url.Values{}
	v.Set("url", rawURL)
	env, err := c.do(ctx, http.MethodGet, "/links/title?"+v.Encode(), nil)
	if err != nil {
		return "", err
	}
	return env.Title, nil
}
