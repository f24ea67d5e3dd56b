package geocoder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/wolfxl/campbuddy/pkg/geo"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "CampBuddy/1.0"

	// Nominatim's usage policy allows one request per second
	DefaultRequestsPerSecond = 1.0
	DefaultBurst             = 1
)

// ErrNotFound is returned when no source can resolve a location
var ErrNotFound = errors.New("location not found")

// knownZips resolve without any lookup
var knownZips = map[string]geo.Point{
	"75034": {Latitude: 33.1360792, Longitude: -96.8368919},
}

// ZipStore looks up zip code centroids from a local table
type ZipStore interface {
	GetZipcode(ctx context.Context, zip string) (*geo.Point, error)
}

// PersistentCache stores resolved coordinates between runs
type PersistentCache interface {
	Get(ctx context.Context, key string) (geo.Point, bool, error)
	Put(ctx context.Context, key string, p geo.Point) error
}

// Config configures the Nominatim client
type Config struct {
	BaseURL           string
	UserAgent         string
	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration
}

// Client resolves zip codes and location names to coordinates.
// Lookups go through an in-memory cache, the persistent cache, the zipcode table
// (zips only) and finally Nominatim.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter

	zips   ZipStore
	store  PersistentCache
	logger *zap.Logger

	mu    sync.Mutex
	cache map[string]geo.Point
}

// NewClient creates a geocoder. zips and store are optional.
func NewClient(cfg Config, zips ZipStore, store PersistentCache, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:  cfg.UserAgent,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		zips:       zips,
		store:      store,
		logger:     logger,
		cache:      make(map[string]geo.Point),
	}
}

// GeocodeZip resolves a 5-digit US zip code
func (c *Client) GeocodeZip(ctx context.Context, zip string) (geo.Point, error) {
	zip = strings.TrimSpace(zip)
	key := "zip:" + zip

	if p, ok := c.cached(ctx, key); ok {
		return p, nil
	}

	// Step 1: zipcode table
	if c.zips != nil {
		p, err := c.zips.GetZipcode(ctx, zip)
		if err != nil {
			c.logger.Warn("Zipcode table lookup failed", zap.String("zip", zip), zap.Error(err))
		} else if p != nil {
			c.remember(ctx, key, *p)
			return *p, nil
		}
	}

	// Step 2: Nominatim postal code search
	p, err := c.search(ctx, map[string]string{"countrycodes": "us", "postalcode": zip})
	if err == nil {
		c.remember(ctx, key, p)
		return p, nil
	}
	if ctx.Err() != nil {
		return geo.Point{}, ctx.Err()
	}
	c.logger.Debug("Nominatim zip lookup failed", zap.String("zip", zip), zap.Error(err))

	// Step 3: hardcoded zips
	if p, ok := knownZips[zip]; ok {
		c.remember(ctx, key, p)
		return p, nil
	}

	return geo.Point{}, fmt.Errorf("zip %s: %w", zip, err)
}

// GeocodeName resolves a free-text place name
func (c *Client) GeocodeName(ctx context.Context, name string) (geo.Point, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return geo.Point{}, ErrNotFound
	}
	key := "name:" + strings.ToLower(name)

	if p, ok := c.cached(ctx, key); ok {
		return p, nil
	}

	p, err := c.search(ctx, map[string]string{"q": name})
	if err != nil {
		return geo.Point{}, fmt.Errorf("location %q: %w", name, err)
	}

	c.remember(ctx, key, p)
	return p, nil
}

// CacheSize returns the number of in-memory cached points
func (c *Client) CacheSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

func (c *Client) cached(ctx context.Context, key string) (geo.Point, bool) {
	c.mu.Lock()
	p, ok := c.cache[key]
	c.mu.Unlock()
	if ok {
		return p, true
	}

	if c.store == nil {
		return geo.Point{}, false
	}

	p, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.Warn("Failed to read geocode cache", zap.String("key", key), zap.Error(err))
		return geo.Point{}, false
	}
	if ok {
		c.mu.Lock()
		c.cache[key] = p
		c.mu.Unlock()
	}
	return p, ok
}

func (c *Client) remember(ctx context.Context, key string, p geo.Point) {
	c.mu.Lock()
	c.cache[key] = p
	c.mu.Unlock()

	if c.store == nil {
		return
	}
	if err := c.store.Put(ctx, key, p); err != nil {
		c.logger.Warn("Failed to write geocode cache", zap.String("key", key), zap.Error(err))
	}
}
