package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/wolfxl/campbuddy/pkg/geo"
)

type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// search runs a rate-limited Nominatim search and returns the first result
func (c *Client) search(ctx context.Context, params map[string]string) (geo.Point, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return geo.Point{}, fmt.Errorf("rate limiter: %w", err)
	}

	query := url.Values{}
	query.Set("format", "json")
	query.Set("limit", "1")
	for k, v := range params {
		query.Set(k, v)
	}

	reqURL := c.baseURL + "/search?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return geo.Point{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return geo.Point{}, fmt.Errorf("failed to call nominatim: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return geo.Point{}, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return geo.Point{}, fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	if len(results) == 0 {
		return geo.Point{}, ErrNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return geo.Point{}, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}

	c.logger.Debug("Resolved location via Nominatim",
		zap.String("query", query.Encode()),
		zap.String("display_name", results[0].DisplayName))

	return geo.Point{Latitude: lat, Longitude: lon}, nil
}
