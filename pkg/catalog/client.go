package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mgierok/guitar-specs2/frontend/pkg/httpclient"
)

// DefaultRevalidate is the revalidation hint attached to every catalog request.
const DefaultRevalidate = 60 * time.Second

// Client talks to the catalog backend API.
type Client struct {
	base       string
	http       httpclient.Client
	revalidate time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithRevalidate overrides the revalidation hint. Zero disables it.
func WithRevalidate(d time.Duration) Option {
	return func(c *Client) { c.revalidate = d }
}

// New builds a client for the API rooted at base. A nil transport falls back
// to a resty client without a timeout.
func New(base string, transport httpclient.Client, opts ...Option) *Client {
	if transport == nil {
		transport = httpclient.NewRestyClient(0)
	}
	c := &Client{
		base:       strings.TrimRight(base, "/"),
		http:       transport,
		revalidate: DefaultRevalidate,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was configured with.
func (c *Client) BaseURL() string { return c.base }

// ListGuitars fetches {base}/guitars and returns its items in order.
func (c *Client) ListGuitars(ctx context.Context) ([]GuitarListItem, error) {
	page, err := c.ListGuitarsPage(ctx, ListQuery{})
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}

// ListGuitarsPage fetches one page of the catalog, forwarding the non-zero query fields.
// Items is never nil on success.
func (c *Client) ListGuitarsPage(ctx context.Context, q ListQuery) (ListPage, error) {
	target := c.base + "/guitars"
	if qs := q.encode(); qs != "" {
		target += "?" + qs
	}

	body, err := c.get(ctx, "list guitars", target, ErrListFailed)
	if err != nil {
		return ListPage{}, err
	}

	var page ListPage
	if err := json.Unmarshal(body, &page); err != nil {
		return ListPage{}, fmt.Errorf("decode guitars response: %w", err)
	}
	if page.Items == nil {
		page.Items = []GuitarListItem{}
	}
	return page, nil
}

// GetGuitar fetches {base}/guitars/{slug}. The slug is used verbatim.
func (c *Client) GetGuitar(ctx context.Context, slug string) (GuitarDetail, error) {
	if strings.TrimSpace(slug) == "" {
		return GuitarDetail{}, ErrSlugRequired
	}

	body, err := c.get(ctx, "get guitar", c.base+"/guitars/"+slug, ErrDetailFailed)
	if err != nil {
		return GuitarDetail{}, err
	}

	var detail GuitarDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return GuitarDetail{}, fmt.Errorf("decode guitar response: %w", err)
	}
	return detail, nil
}

func (c *Client) get(ctx context.Context, op, target string, failure error) ([]byte, error) {
	resp, err := c.http.Get(ctx, target, httpclient.RevalidateHeaders(c.revalidate))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	status := resp.StatusCode()
	if status < 200 || status >= 300 {
		return nil, &StatusError{Op: op, URL: target, StatusCode: status, err: failure}
	}
	return resp.Body(), nil
}

func (q ListQuery) encode() string {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		values.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if s := strings.TrimSpace(q.Sort); s != "" {
		values.Set("sort", s)
	}
	for _, f := range q.Filters {
		if f = strings.TrimSpace(f); f != "" {
			values.Add("filter", f)
		}
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		values.Set("q", s)
	}
	return values.Encode()
}
