package ishare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

const DefaultBaseURL = "https://maps.swindon.gov.uk/getdata.aspx"

const (
	DefaultPageSize = 150
	DefaultTimeout  = 15 * time.Second

	// MapSource selects the council's local-info lookup layer.
	MapSource = "mapsources/LocalInfoLookup"

	// WasteGroup is the LocalInfo category holding collection-day attributes.
	WasteGroup = "Waste Collection Days"
)

// Client talks to the council's iShare getdata endpoint. One blocking call per
// operation, no retries; an optional minimum interval spaces calls out.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	userAgent   string
	minInterval time.Duration
	capture     func(service, query string, body []byte)
	mu          sync.Mutex
	lastRequest time.Time
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if strings.TrimSpace(baseURL) != "" {
			c.baseURL = baseURL
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

func WithMinInterval(interval time.Duration) Option {
	return func(c *Client) {
		c.minInterval = interval
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithCapture registers a hook that receives every raw response body before
// decoding. Used for the raw-response store.
func WithCapture(fn func(service, query string, body []byte)) Option {
	return func(c *Client) {
		c.capture = fn
	}
}

func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  "swindon-bins/0.1",
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type LocationSearchParams struct {
	Location string
	PageSize int
	Start    int
}

func (p LocationSearchParams) Encode() (url.Values, error) {
	if strings.TrimSpace(p.Location) == "" {
		return nil, errors.New("ishare: location is required")
	}
	pageSize := p.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	start := p.Start
	if start <= 0 {
		start = 1
	}

	values := url.Values{}
	values.Set("type", "json")
	values.Set("service", "LocationSearch")
	values.Set("RequestType", "LocationSearch")
	values.Set("location", p.Location)
	values.Set("pagesize", strconv.Itoa(pageSize))
	values.Set("startnum", strconv.Itoa(start))
	values.Set("mapsource", MapSource)
	return values, nil
}

type LocalInfoParams struct {
	UID   string
	Group string
}

func (p LocalInfoParams) Encode() (url.Values, error) {
	if strings.TrimSpace(p.UID) == "" {
		return nil, errors.New("ishare: uid is required")
	}
	group := p.Group
	if group == "" {
		group = WasteGroup
	}

	values := url.Values{}
	values.Set("RequestType", "LocalInfo")
	values.Set("ms", MapSource)
	values.Set("group", group)
	values.Set("uid", p.UID)
	values.Set("format", "json")
	return values, nil
}

// LocationSearch runs one search page for a postcode or free-form location.
func (c *Client) LocationSearch(ctx context.Context, params LocationSearchParams) (*LocationSearchResponse, error) {
	values, err := params.Encode()
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, "LocationSearch", values)
	if err != nil {
		return nil, err
	}

	var out LocationSearchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &out, nil
}

// LocalInfo fetches the attribute groups for a resolved property. The service
// sometimes returns a bare object instead of a one-element list; both decode.
func (c *Client) LocalInfo(ctx context.Context, params LocalInfoParams) ([]LocalInfoItem, error) {
	values, err := params.Encode()
	if err != nil {
		return nil, err
	}
	body, err := c.get(ctx, "LocalInfo", values)
	if err != nil {
		return nil, err
	}

	var items []LocalInfoItem
	if err := json.Unmarshal(body, &items); err != nil {
		var single LocalInfoItem
		if err2 := json.Unmarshal(body, &single); err2 != nil {
			return nil, &ParseError{Err: err}
		}
		items = append(items, single)
	}

	attrs := 0
	for _, item := range items {
		attrs += len(item.Results)
	}
	if attrs == 0 {
		return nil, fmt.Errorf("ishare: no attributes for uid %s: %w", params.UID, ErrNotFound)
	}
	return items, nil
}

// get performs one GET and returns the body bytes. The declared content-type
// is ignored throughout; callers decode the body as JSON regardless.
func (c *Client) get(ctx context.Context, service string, values url.Values) ([]byte, error) {
	if c == nil {
		return nil, errors.New("ishare: client is nil")
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if err := c.waitRateLimit(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = values.Encode()
	req.Header.Set("Accept", "application/json")
	if strings.TrimSpace(c.userAgent) != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ConnectionError{StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ConnectionError{StatusCode: resp.StatusCode}
	}
	if c.capture != nil {
		c.capture(service, values.Encode(), body)
	}
	return body, nil
}

func (c *Client) waitRateLimit(ctx context.Context) error {
	if c.minInterval <= 0 {
		return nil
	}
	c.mu.Lock()
	now := time.Now()
	next := c.lastRequest.Add(c.minInterval)
	if next.Before(now) || next.Equal(now) {
		c.lastRequest = now
		c.mu.Unlock()
		return nil
	}
	c.lastRequest = next
	c.mu.Unlock()

	timer := time.NewTimer(time.Until(next))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
