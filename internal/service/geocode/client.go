// Package geocode resolves free-text addresses to coordinates via a
// Nominatim-compatible geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"vkarimov/food-delivery/internal/geo"

	"github.com/andybalholm/brotli"
	"golang.org/x/sync/singleflight"
)

// ErrNoMatch is returned when the upstream finds nothing for an address.
var ErrNoMatch = errors.New("geocode: no match for address")

const cacheTTL = 10 * time.Minute

type Config struct {
	APIURL    string
	UserAgent string
}

type cachedPoint struct {
	point  geo.Point
	expiry time.Time
}

type Client struct {
	client *http.Client
	config Config

	cacheMu   sync.RWMutex
	cacheData map[string]cachedPoint

	// Concurrent lookups of the same address share one upstream call.
	group singleflight.Group
}

func NewClient(cfg Config) *Client {
	return &Client{
		client: &http.Client{
			Transport: &headerTransport{
				UserAgent: cfg.UserAgent,
				Base:      http.DefaultTransport,
			},
			Timeout: 10 * time.Second,
		},
		config:    cfg,
		cacheData: make(map[string]cachedPoint),
	}
}

// headerTransport adds the identification and encoding headers the
// upstream requires on every request.
type headerTransport struct {
	UserAgent string
	Base      http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", t.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br")
	return t.Base.RoundTrip(req)
}

// Resolve returns the coordinates for an address. Results are cached for a
// short period and concurrent lookups of the same address are collapsed
// into a single upstream request.
func (c *Client) Resolve(ctx context.Context, address string) (geo.Point, error) {
	c.cacheMu.RLock()
	cached, ok := c.cacheData[address]
	c.cacheMu.RUnlock()
	if ok && time.Now().Before(cached.expiry) {
		return cached.point, nil
	}

	v, err, _ := c.group.Do(address, func() (any, error) {
		point, err := c.fetch(ctx, address)
		if err != nil {
			return geo.Point{}, err
		}

		c.cacheMu.Lock()
		c.cacheData[address] = cachedPoint{point: point, expiry: time.Now().Add(cacheTTL)}
		c.cacheMu.Unlock()

		return point, nil
	})
	if err != nil {
		return geo.Point{}, err
	}
	return v.(geo.Point), nil
}

// searchResult is one entry of a Nominatim /search response.
// Coordinates come back as strings.
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (c *Client) fetch(ctx context.Context, address string) (geo.Point, error) {
	url := fmt.Sprintf("%s/search", c.config.APIURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return geo.Point{}, err
	}

	q := req.URL.Query()
	q.Add("q", address)
	q.Add("format", "json")
	q.Add("limit", "1")
	req.URL.RawQuery = q.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return geo.Point{}, err
	}

	if resp.Header.Get("Content-Encoding") == "br" {
		resp.Body = &readCloserWrapper{Reader: brotli.NewReader(resp.Body), Closer: resp.Body}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return geo.Point{}, fmt.Errorf("geocode: unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return geo.Point{}, fmt.Errorf("geocode: decode response: %w", err)
	}
	if len(results) == 0 {
		return geo.Point{}, ErrNoMatch
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("geocode: parse lat %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("geocode: parse lon %q: %w", results[0].Lon, err)
	}

	return geo.Point{Lat: lat, Lon: lon}, nil
}

type readCloserWrapper struct {
	io.Reader
	io.Closer
}

func (r *readCloserWrapper) Read(p []byte) (n int, err error) {
	return r.Reader.Read(p)
}

func (r *readCloserWrapper) Close() error {
	return r.Closer.Close()
}
