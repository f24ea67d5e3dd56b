package planner

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wolfxl/campbuddy/pkg/core/model"
	"github.com/wolfxl/campbuddy/pkg/geo"
)

// Geocoder resolves zip codes and free-text location names to coordinates
type Geocoder interface {
	GeocodeZip(ctx context.Context, zip string) (geo.Point, error)
	GeocodeName(ctx context.Context, name string) (geo.Point, error)
}

type radiusKey struct {
	locationName string
	reference    string
	radius       int
}

// RadiusCache remembers within-radius results for one optimization run
type RadiusCache struct {
	mu      sync.Mutex
	entries map[radiusKey]bool
}

// NewRadiusCache creates an empty cache
func NewRadiusCache() *RadiusCache {
	return &RadiusCache{entries: make(map[radiusKey]bool)}
}

func (c *RadiusCache) get(key radiusKey) (bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	within, ok := c.entries[key]
	return within, ok
}

func (c *RadiusCache) set(key radiusKey, within bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = within
}

// Len returns the number of cached results
func (c *RadiusCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// LocationMatcher decides whether a camp is within the family's travel radius
type LocationMatcher struct {
	geocoder Geocoder
	cache    *RadiusCache
	logger   *zap.Logger
}

// NewLocationMatcher creates a matcher; a nil cache gets a fresh one
func NewLocationMatcher(geocoder Geocoder, cache *RadiusCache, logger *zap.Logger) *LocationMatcher {
	if cache == nil {
		cache = NewRadiusCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocationMatcher{
		geocoder: geocoder,
		cache:    cache,
		logger:   logger,
	}
}

// IsWithinRadius reports whether any of the camp's locations is within radius miles of location.
//
// Rules, in order:
//   - empty reference location matches everything
//   - case-insensitive substring match against a camp location name matches
//   - radius <= 0 disables radius filtering
//   - references that are not 5-digit zip codes skip radius filtering
//   - a reference zip that cannot be geocoded skips radius filtering
//   - otherwise the first camp location within radius wins; a location that cannot be geocoded is not within
func (m *LocationMatcher) IsWithinRadius(ctx context.Context, camp model.Camp, location string, radius int) bool {
	reference := strings.ToLower(strings.TrimSpace(location))
	if reference == "" {
		return true
	}

	// Fast path: text match on location names
	for _, name := range camp.Locations {
		if strings.Contains(strings.ToLower(name), reference) {
			return true
		}
	}

	if radius <= 0 {
		return true
	}

	if !geo.IsZipCode(reference) {
		return true
	}

	if m.geocoder == nil {
		return true
	}

	origin, err := m.geocoder.GeocodeZip(ctx, reference)
	if err != nil {
		m.logger.Warn("Failed to geocode reference zip, skipping radius check",
			zap.String("zip", reference),
			zap.Error(err))
		return true
	}

	for _, name := range camp.Locations {
		key := radiusKey{locationName: name, reference: reference, radius: radius}
		if within, ok := m.cache.get(key); ok {
			if within {
				return true
			}
			continue
		}

		within := m.locationWithinRadius(ctx, camp, name, origin, radius)
		m.cache.set(key, within)
		if within {
			return true
		}
	}

	return false
}

// locationWithinRadius checks a single camp location, geocoding it when no coordinates are stored
func (m *LocationMatcher) locationWithinRadius(ctx context.Context, camp model.Camp, name string, origin geo.Point, radius int) bool {
	var point geo.Point
	if coords, ok := camp.CoordsFor(name); ok {
		point = geo.Point{Latitude: coords.Latitude, Longitude: coords.Longitude}
	} else {
		geocoded, err := m.geocoder.GeocodeName(ctx, name)
		if err != nil {
			m.logger.Debug("Failed to geocode camp location",
				zap.Int64("camp_id", camp.ID),
				zap.String("location", name),
				zap.Error(err))
			return false
		}
		point = geocoded
	}

	distance := geo.DistanceMiles(origin, point)
	m.logger.Debug("Checked camp location distance",
		zap.Int64("camp_id", camp.ID),
		zap.String("location", name),
		zap.Float64("distance_miles", distance),
		zap.Int("radius_miles", radius))

	return geo.WithinRadius(origin, point, float64(radius))
}
