// Package communityclient talks to the community board API and keeps optimistic
// local state for likes and comment threads.
package communityclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Post is a board post as the API returns it.
type Post struct {
	ID          string    `json:"id"`
	AuthorID    string    `json:"author_id"`
	CityID      string    `json:"city_id"`
	ApartmentID string    `json:"apartment_id,omitempty"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	LikeCount   int       `json:"like_count"`
	Liked       bool      `json:"liked"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	ParentID  string    `json:"parent_id,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeState is the server's answer to a toggle.
type LikeState struct {
	Liked bool `json:"liked"`
	Count int  `json:"count"`
}

type Counts struct {
	Total      int64            `json:"total"`
	ByCategory map[string]int64 `json:"byCategory"`
}

type CreatePostInput struct {
	CityID      string `json:"city_id"`
	ApartmentID string `json:"apartment_id,omitempty"`
	Category    string `json:"category"`
	Title       string `json:"title"`
	Content     string `json:"content"`
}

type CommentInput struct {
	Content  string `json:"content"`
	ParentID string `json:"parent_id,omitempty"`
}

// ListOptions filters a post listing. Zero values are omitted.
type ListOptions struct {
	City        string
	ApartmentID string
	Category    string
	Sort        string
	Page        int
	Limit       int
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("city", o.City)
	set("apartmentId", o.ApartmentID)
	set("category", o.Category)
	set("sort", o.Sort)
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	return q
}

// FieldError is one field-level validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("community api: %d %s", e.Status, e.Message)
}

// Client calls the community API. The zero value is not usable; use New.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sends token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []FieldError    `json:"errors"`
}

// do sends body as JSON and decodes the response into out. When wrapped is
// true the payload sits under the data key of the envelope.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, wrapped bool) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var env envelope
		if json.Unmarshal(raw, &env) == nil && env.Message != "" {
			apiErr.Message = env.Message
			apiErr.Fields = env.Errors
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if !wrapped {
		return json.Unmarshal(raw, out)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return json.Unmarshal(env.Data, out)
}

func (c *Client) ListPosts(ctx context.Context, opts ListOptions) ([]Post, error) {
	path := "/api/community/posts"
	if q := opts.query().Encode(); q != "" {
		path += "?" + q
	}
	var posts []Post
	if err := c.do(ctx, http.MethodGet, path, nil, &posts, true); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) CreatePost(ctx context.Context, in CreatePostInput) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodPost, "/api/community/posts", in, &post, true); err != nil {
		return nil, err
	}
	return &post, nil
}

// CountPosts returns the per-category badges of a location.
func (c *Client) CountPosts(ctx context.Context, city, apartmentID string) (*Counts, error) {
	q := ListOptions{City: city, ApartmentID: apartmentID}.query()
	path := "/api/community/posts/counts"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	var counts Counts
	if err := c.do(ctx, http.MethodGet, path, nil, &counts, false); err != nil {
		return nil, err
	}
	return &counts, nil
}

func (c *Client) CreateComment(ctx context.Context, postID string, in CommentInput) (*Comment, error) {
	var comment Comment
	path := "/api/community/posts/" + url.PathEscape(postID) + "/comments"
	if err := c.do(ctx, http.MethodPost, path, in, &comment, true); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) DeleteComment(ctx context.Context, postID, commentID string) error {
	path := "/api/community/posts/" + url.PathEscape(postID) + "/comments/" + url.PathEscape(commentID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, true)
}

// ToggleLike sends no count; the server decides both fields of the result.
func (c *Client) ToggleLike(ctx context.Context, postID string) (LikeState, error) {
	var state LikeState
	path := "/api/community/posts/" + url.PathEscape(postID) + "/like"
	err := c.do(ctx, http.MethodPost, path, nil, &state, true)
	return state, err
}
