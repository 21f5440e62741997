package geocoding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessible-route-planner/internal/models"
)

func testGeocoder(baseURL string) *nominatimGeocoder {
	g := newNominatimGeocoder(baseURL)
	// fast rate limit so tests do not wait a second per call
	g.rateLimiter = time.NewTicker(1 * time.Millisecond)
	return g
}

func TestNominatimGeocodeSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/search")
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.NotEmpty(t, r.URL.Query().Get("q"))

		response := []nominatimResponse{
			{
				Lat:         "40.7128",
				Lon:         "-74.0060",
				DisplayName: "New York, NY, USA",
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	result, err := testGeocoder(server.URL).Geocode(context.Background(), "New York")

	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, 40.7128, result.Coords.Lat)
	assert.Equal(t, -74.0060, result.Coords.Lng)
	assert.Equal(t, "New York, NY, USA", result.DisplayName)
}

func TestNominatimGeocodeNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]nominatimResponse{})
	}))
	defer server.Close()

	result, err := testGeocoder(server.URL).Geocode(context.Background(), "Nonexistent Location")

	require.Error(t, err)
	assert.Nil(t, result)

	geocodingErr, ok := err.(*ErrGeocodingFailed)
	require.True(t, ok)
	assert.Contains(t, geocodingErr.Reason, "no results found")
}

func TestNominatimGeocodeHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	result, err := testGeocoder(server.URL).Geocode(context.Background(), "Test Address")

	require.Error(t, err)
	assert.Nil(t, result)

	geocodingErr, ok := err.(*ErrGeocodingFailed)
	require.True(t, ok)
	assert.Contains(t, geocodingErr.Reason, "HTTP 500")
}

func TestNominatimGeocodeInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("invalid json"))
	}))
	defer server.Close()

	result, err := testGeocoder(server.URL).Geocode(context.Background(), "Test Address")

	require.Error(t, err)
	assert.Nil(t, result)
}

func TestNominatimGeocodeInvalidLatLon(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := []nominatimResponse{
			{Lat: "invalid", Lon: "-74.0060", DisplayName: "Test"},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	result, err := testGeocoder(server.URL).Geocode(context.Background(), "Test Address")

	require.Error(t, err)
	assert.Nil(t, result)

	geocodingErr, ok := err.(*ErrGeocodingFailed)
	require.True(t, ok)
	assert.Contains(t, geocodingErr.Reason, "invalid latitude")
}

func TestNominatimGeocodeRateLimiting(t *testing.T) {
	requestCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestCount++
		response := []nominatimResponse{
			{Lat: "40.7128", Lon: "-74.0060", DisplayName: "Test"},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	geocoder := newNominatimGeocoder(server.URL)
	geocoder.rateLimiter = time.NewTicker(50 * time.Millisecond)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := geocoder.Geocode(context.Background(), "Test")
		require.NoError(t, err)
	}
	elapsed := time.Since(start)

	// 3 requests need at least two 50ms ticks
	assert.True(t, elapsed >= 100*time.Millisecond, "Rate limiting not working")
	assert.Equal(t, 3, requestCount)
}

func TestNominatimGeocodeWithRetrySuccess(t *testing.T) {
	attemptCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attemptCount++
		if attemptCount < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		response := []nominatimResponse{
			{Lat: "40.7128", Lon: "-74.0060", DisplayName: "New York"},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	result, err := testGeocoder(server.URL).GeocodeWithRetry(context.Background(), "New York", 3)

	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, 40.7128, result.Coords.Lat)
	assert.Equal(t, 2, attemptCount)
}

func TestNominatimGeocodeWithRetryAllFail(t *testing.T) {
	attemptCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attemptCount++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	result, err := testGeocoder(server.URL).GeocodeWithRetry(context.Background(), "Test", 3)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 3, attemptCount)
}

func TestNominatimGeocodeContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		response := []nominatimResponse{
			{Lat: "40.7128", Lon: "-74.0060", DisplayName: "Test"},
		}
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	result, err := testGeocoder(server.URL).Geocode(ctx, "Test")

	require.Error(t, err)
	assert.Nil(t, result)
}

func TestNominatimGeocodeUserAgent(t *testing.T) {
	userAgentReceived := ""
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgentReceived = r.Header.Get("User-Agent")
		response := []nominatimResponse{
			{Lat: "40.7128", Lon: "-74.0060", DisplayName: "Test"},
		}
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	_, err := testGeocoder(server.URL).Geocode(context.Background(), "Test")

	require.NoError(t, err)
	assert.Equal(t, "AccessibleRoutePlanner/1.0", userAgentReceived)
}

func TestNominatimSearchMultipleResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		response := []nominatimResponse{
			{Lat: "40.7128", Lon: "-74.0060", DisplayName: "New York, NY, USA"},
			{Lat: "invalid", Lon: "-73.0000", DisplayName: "Broken entry"},
			{Lat: "40.6892", Lon: "-74.0445", DisplayName: "Statue of Liberty"},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	results, err := testGeocoder(server.URL).Search(context.Background(), "new york", 5)

	require.NoError(t, err)
	// the unparseable entry is skipped, not fatal
	require.Len(t, results, 2)
	assert.Equal(t, "New York, NY, USA", results[0].DisplayName)
	assert.Equal(t, 40.6892, results[1].Coords.Lat)
}

func TestNominatimReverseSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/reverse")
		assert.NotEmpty(t, r.URL.Query().Get("lat"))
		assert.NotEmpty(t, r.URL.Query().Get("lon"))

		response := nominatimResponse{
			Lat:         "40.7128",
			Lon:         "-74.0060",
			DisplayName: "City Hall, New York, NY, USA",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	coord := models.Coordinate{Lat: 40.7128, Lng: -74.0060}
	result, err := testGeocoder(server.URL).Reverse(context.Background(), coord)

	require.NoError(t, err)
	assert.Equal(t, "City Hall, New York, NY, USA", result.DisplayName)
	assert.Equal(t, coord, result.Coords)
}

func TestNominatimReverseRejectsInvalidCoordinate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should not reach the server")
	}))
	defer server.Close()

	_, err := testGeocoder(server.URL).Reverse(context.Background(), models.Coordinate{Lat: 91, Lng: 0})

	var invalidErr *models.ErrInvalidCoordinate
	require.ErrorAs(t, err, &invalidErr)
}

func TestNominatimReverseNoResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(nominatimResponse{})
	}))
	defer server.Close()

	result, err := testGeocoder(server.URL).Reverse(context.Background(), models.Coordinate{Lat: 0, Lng: 0})

	require.Error(t, err)
	assert.Nil(t, result)

	geocodingErr, ok := err.(*ErrGeocodingFailed)
	require.True(t, ok)
	assert.Contains(t, geocodingErr.Reason, "no results found")
}
