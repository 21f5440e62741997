package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"accessible-route-planner/internal/models"
)

// GeocodingResult contains the result of a geocoding operation
type GeocodingResult struct {
	Coords      models.Coordinate
	DisplayName string
}

// Geocoder converts between addresses and coordinates
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*GeocodingResult, error)
	GeocodeWithRetry(ctx context.Context, address string, maxRetries int) (*GeocodingResult, error)
	Search(ctx context.Context, query string, limit int) ([]GeocodingResult, error)
	Reverse(ctx context.Context, coord models.Coordinate) (*GeocodingResult, error)
}

// ErrGeocodingFailed is returned when an address cannot be geocoded
type ErrGeocodingFailed struct {
	Address string
	Reason  string
}

func (e *ErrGeocodingFailed) Error() string {
	return fmt.Sprintf("geocoding failed for address: %s - %s", e.Address, e.Reason)
}

type nominatimGeocoder struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *time.Ticker
}

type nominatimResponse struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NewNominatimGeocoder creates a new Nominatim geocoder with rate limiting
func NewNominatimGeocoder() Geocoder {
	return newNominatimGeocoder("https://nominatim.openstreetmap.org")
}

func newNominatimGeocoder(baseURL string) *nominatimGeocoder {
	return &nominatimGeocoder{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		rateLimiter: time.NewTicker(1 * time.Second),
	}
}

func (g *nominatimGeocoder) Geocode(ctx context.Context, address string) (*GeocodingResult, error) {
	select {
	case <-g.rateLimiter.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	queryURL := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", g.baseURL, url.QueryEscape(address))
	log.Printf("[GEOCODING] Request: address=%s url=%s", address, queryURL)

	results, err := g.fetch(ctx, address, queryURL)
	if err != nil {
		return nil, err
	}

	if len(results) == 0 {
		log.Printf("[ERROR] No geocoding results found: address=%s", address)
		return nil, &ErrGeocodingFailed{Address: address, Reason: "no results found"}
	}

	parsed, err := parseResult(address, results[0])
	if err != nil {
		return nil, err
	}

	log.Printf("[GEOCODING] Response: address=%s lat=%.6f lng=%.6f display_name=%s", address, parsed.Coords.Lat, parsed.Coords.Lng, parsed.DisplayName)
	return parsed, nil
}

func (g *nominatimGeocoder) GeocodeWithRetry(ctx context.Context, address string, maxRetries int) (*GeocodingResult, error) {
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		result, err := g.Geocode(ctx, address)
		if err == nil {
			log.Printf("[GEOCODING] Success after %d attempt(s): address=%s", i+1, address)
			return result, nil
		}

		lastErr = err

		if i < maxRetries-1 {
			backoff := time.Duration(1<<uint(i)) * time.Second
			log.Printf("[GEOCODING] Retry %d/%d: address=%s backoff=%v err=%v", i+1, maxRetries, address, backoff, err)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	log.Printf("[ERROR] Geocoding failed after %d retries: address=%s err=%v", maxRetries, address, lastErr)
	return nil, lastErr
}

func (g *nominatimGeocoder) Search(ctx context.Context, query string, limit int) ([]GeocodingResult, error) {
	select {
	case <-g.rateLimiter.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	queryURL := fmt.Sprintf("%s/search?q=%s&format=json&limit=%d", g.baseURL, url.QueryEscape(query), limit)
	log.Printf("[GEOCODING] Search request: query=%s limit=%d url=%s", query, limit, queryURL)

	results, err := g.fetch(ctx, query, queryURL)
	if err != nil {
		return nil, err
	}

	log.Printf("[GEOCODING] Search response: query=%s results_count=%d", query, len(results))

	geocodingResults := make([]GeocodingResult, 0, len(results))
	for _, result := range results {
		parsed, err := parseResult(query, result)
		if err != nil {
			log.Printf("[ERROR] Skipping unparseable geocoding search result: query=%s err=%v", query, err)
			continue
		}
		geocodingResults = append(geocodingResults, *parsed)
	}

	return geocodingResults, nil
}

// Reverse resolves a coordinate to a human-readable place name
func (g *nominatimGeocoder) Reverse(ctx context.Context, coord models.Coordinate) (*GeocodingResult, error) {
	if err := models.ValidateCoordinate(coord); err != nil {
		return nil, err
	}

	select {
	case <-g.rateLimiter.C:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	label := fmt.Sprintf("%.6f,%.6f", coord.Lat, coord.Lng)
	queryURL := fmt.Sprintf("%s/reverse?lat=%f&lon=%f&format=json", g.baseURL, coord.Lat, coord.Lng)
	log.Printf("[GEOCODING] Reverse request: coord=%s url=%s", label, queryURL)

	req, err := http.NewRequestWithContext(ctx, "GET", queryURL, nil)
	if err != nil {
		log.Printf("[ERROR] Failed to create reverse geocoding request: coord=%s err=%v", label, err)
		return nil, &ErrGeocodingFailed{Address: label, Reason: err.Error()}
	}

	req.Header.Set("User-Agent", "AccessibleRoutePlanner/1.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("[ERROR] Reverse geocoding API request failed: coord=%s err=%v", label, err)
		return nil, &ErrGeocodingFailed{Address: label, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("[ERROR] Reverse geocoding API error: coord=%s status=%d body=%s", label, resp.StatusCode, string(body))
		return nil, &ErrGeocodingFailed{
			Address: label,
			Reason:  fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body)),
		}
	}

	var result nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Printf("[ERROR] Failed to decode reverse geocoding response: coord=%s err=%v", label, err)
		return nil, &ErrGeocodingFailed{Address: label, Reason: err.Error()}
	}

	if result.DisplayName == "" {
		log.Printf("[ERROR] No reverse geocoding result: coord=%s", label)
		return nil, &ErrGeocodingFailed{Address: label, Reason: "no results found"}
	}

	log.Printf("[GEOCODING] Reverse response: coord=%s display_name=%s", label, result.DisplayName)
	return &GeocodingResult{
		Coords:      coord,
		DisplayName: result.DisplayName,
	}, nil
}

// fetch runs a search-style request and decodes the result list
func (g *nominatimGeocoder) fetch(ctx context.Context, label, queryURL string) ([]nominatimResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", queryURL, nil)
	if err != nil {
		log.Printf("[ERROR] Failed to create geocoding request: query=%s err=%v", label, err)
		return nil, &ErrGeocodingFailed{Address: label, Reason: err.Error()}
	}

	req.Header.Set("User-Agent", "AccessibleRoutePlanner/1.0")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Printf("[ERROR] Geocoding API request failed: query=%s err=%v", label, err)
		return nil, &ErrGeocodingFailed{Address: label, Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Printf("[ERROR] Geocoding API error: query=%s status=%d body=%s", label, resp.StatusCode, string(body))
		return nil, &ErrGeocodingFailed{
			Address: label,
			Reason:  fmt.Sprintf("HTTP %d: %s", resp.StatusCode, string(body)),
		}
	}

	var results []nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		log.Printf("[ERROR] Failed to decode geocoding response: query=%s err=%v", label, err)
		return nil, &ErrGeocodingFailed{Address: label, Reason: err.Error()}
	}
	return results, nil
}

func parseResult(label string, result nominatimResponse) (*GeocodingResult, error) {
	var lat, lng float64
	if _, err := fmt.Sscanf(result.Lat, "%f", &lat); err != nil {
		return nil, &ErrGeocodingFailed{Address: label, Reason: "invalid latitude"}
	}
	if _, err := fmt.Sscanf(result.Lon, "%f", &lng); err != nil {
		return nil, &ErrGeocodingFailed{Address: label, Reason: "invalid longitude"}
	}
	return &GeocodingResult{
		Coords:      models.Coordinate{Lat: lat, Lng: lng},
		DisplayName: result.DisplayName,
	}, nil
}
