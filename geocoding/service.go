package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Components are the address pieces sent to the geocoder. City, State and
// Country are the minimum; Line1 and PostalCode narrow the match when set.
type Components struct {
	Line1      string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Result is a resolved coordinate pair.
type Result struct {
	Latitude  decimal.Decimal
	Longitude decimal.Decimal
}

// Geocoder resolves address components to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, components Components) (*Result, error)
}

var (
	// ErrInsufficientComponents means the caller did not supply the
	// city/state/country minimum and no request was made.
	ErrInsufficientComponents = errors.New("geocoding requires at least city, state and country")
	// ErrNoResults means the service answered but found nothing.
	ErrNoResults = errors.New("no coordinates found for address")
)

const (
	defaultBaseURL = "https://nominatim.openstreetmap.org/search"
	userAgent      = "sales-ops-backend/1.0"
	cacheTTL       = 24 * time.Hour
	maxRetries     = 3
	baseRetryDelay = 2 * time.Second
	requestTimeout = 15 * time.Second
)

// NominatimService is the production Geocoder, backed by the OpenStreetMap
// Nominatim API. Calls are rate-limited to one per second per the Nominatim
// usage policy, retried with exponential backoff on transient failures, and
// results are cached in Redis so repeated imports of the same city do not
// re-query the service. The cache is optional; a nil client disables it.
type NominatimService struct {
	BaseURL string

	client  *http.Client
	limiter *rate.Limiter
	cache   *redis.Client
	logger  *zap.Logger
}

func NewNominatimService(logger *zap.Logger, cache *redis.Client) *NominatimService {
	return &NominatimService{
		BaseURL: defaultBaseURL,
		client:  &http.Client{Timeout: requestTimeout},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		cache:   cache,
		logger:  logger,
	}
}

// Geocode resolves the components to a coordinate pair, or fails after the
// bounded retries are exhausted.
func (s *NominatimService) Geocode(ctx context.Context, components Components) (*Result, error) {
	if components.City == "" || components.State == "" || components.Country == "" {
		return nil, ErrInsufficientComponents
	}

	cacheKey := s.cacheKey(components)
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			delay := baseRetryDelay * time.Duration(1<<uint(attempt-1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		result, retryable, err := s.query(ctx, components)
		if err == nil {
			s.toCache(ctx, cacheKey, result)
			return result, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		s.logger.Warn("geocoding attempt failed",
			zap.String("city", components.City),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
	}

	return nil, fmt.Errorf("geocoding failed after %d attempts: %w", maxRetries, lastErr)
}

func (s *NominatimService) query(ctx context.Context, components Components) (result *Result, retryable bool, err error) {
	params := url.Values{}
	if components.Line1 != "" {
		params.Set("street", components.Line1)
	}
	params.Set("city", components.City)
	params.Set("state", components.State)
	if components.PostalCode != "" {
		params.Set("postalcode", components.PostalCode)
	}
	params.Set("country", components.Country)
	params.Set("format", "json")
	params.Set("limit", "1")

	reqURL := fmt.Sprintf("%s?%s", s.BaseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, true, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		body, _ := io.ReadAll(resp.Body)
		return nil, true, fmt.Errorf("geocoding service returned status %d: %s", resp.StatusCode, string(body))
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, false, fmt.Errorf("geocoding service returned status %d: %s", resp.StatusCode, string(body))
	}

	var places []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, true, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if len(places) == 0 {
		return nil, false, ErrNoResults
	}

	lat, err := decimal.NewFromString(places[0].Lat)
	if err != nil {
		return nil, false, fmt.Errorf("invalid latitude %q in geocoding response: %w", places[0].Lat, err)
	}
	lng, err := decimal.NewFromString(places[0].Lon)
	if err != nil {
		return nil, false, fmt.Errorf("invalid longitude %q in geocoding response: %w", places[0].Lon, err)
	}

	return &Result{Latitude: lat, Longitude: lng}, false, nil
}

func (s *NominatimService) cacheKey(components Components) string {
	parts := []string{components.Line1, components.City, components.State, components.PostalCode, components.Country}
	return "geocode:" + strings.ToLower(strings.Join(parts, "|"))
}

func (s *NominatimService) fromCache(ctx context.Context, key string) *Result {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return nil
	}
	parts := strings.SplitN(raw, ",", 2)
	if len(parts) != 2 {
		return nil
	}
	lat, latErr := decimal.NewFromString(parts[0])
	lng, lngErr := decimal.NewFromString(parts[1])
	if latErr != nil || lngErr != nil {
		return nil
	}
	return &Result{Latitude: lat, Longitude: lng}
}

func (s *NominatimService) toCache(ctx context.Context, key string, result *Result) {
	if s.cache == nil {
		return
	}
	value := result.Latitude.String() + "," + result.Longitude.String()
	if err := s.cache.Set(ctx, key, value, cacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache geocoding result", zap.String("key", key), zap.Error(err))
	}
}
