package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joshua-takyi/nearnow/internal/geo"
	"github.com/joshua-takyi/nearnow/internal/models"
)

var ErrInvalidCoordinates = errors.New("coordinates out of range")

// LocationService resolves what the event form's location picker selects:
// a free-text search or a point clicked on the map.
type LocationService struct {
	provider geo.Provider
	cache    geo.Cache
	ttl      time.Duration
	logger   *slog.Logger
}

func NewLocationService(provider geo.Provider, cache geo.Cache, ttl time.Duration, logger *slog.Logger) *LocationService {
	if cache == nil {
		cache = geo.NewMemoryCache()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LocationService{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
	}
}

func (ls *LocationService) ProviderName() string {
	return ls.provider.Name()
}

func (ls *LocationService) Ready() bool {
	return ls.provider.Ready()
}

// SetAPIKey hands the key pasted by the user to the provider.
func (ls *LocationService) SetAPIKey(key string) error {
	if err := ls.provider.Initialize(key); err != nil {
		return err
	}
	ls.logger.Info("Map provider initialized", "provider", ls.provider.Name())
	return nil
}

func (ls *LocationService) SelectByQuery(ctx context.Context, query string) (geo.Place, error) {
	if !ls.provider.Ready() {
		return geo.Place{}, geo.ErrNotInitialized
	}

	key := geo.QueryCacheKey(ls.provider.Name(), query)
	if place, ok := ls.cached(ctx, key); ok {
		return place, nil
	}

	place, err := ls.provider.Geocode(ctx, query)
	if err != nil {
		if errors.Is(err, geo.ErrNotFound) || errors.Is(err, geo.ErrEmptyQuery) {
			return geo.Place{}, err
		}
		ls.logger.Warn("Geocoding failed", "provider", ls.provider.Name(), "error", err)
		return geo.Place{}, fmt.Errorf("failed to search location: %w", err)
	}

	ls.store(ctx, key, place)
	return place, nil
}

// SelectByPoint names a clicked point. When the provider cannot name it the
// formatted coordinates are used instead, so a click always selects something.
func (ls *LocationService) SelectByPoint(ctx context.Context, at models.Coordinates) (geo.Place, error) {
	if !at.IsValid() {
		return geo.Place{}, ErrInvalidCoordinates
	}
	if !ls.provider.Ready() {
		return geo.Place{}, geo.ErrNotInitialized
	}

	key := geo.PointCacheKey(ls.provider.Name(), at)
	if place, ok := ls.cached(ctx, key); ok {
		return place, nil
	}

	place, err := ls.provider.ReverseGeocode(ctx, at)
	if err != nil {
		ls.logger.Warn("Reverse geocoding failed, using coordinates",
			"provider", ls.provider.Name(),
			"coordinates", at.String(),
			"error", err,
		)
		return geo.Place{Name: at.String(), Coordinates: at}, nil
	}

	ls.store(ctx, key, place)
	return place, nil
}

func (ls *LocationService) cached(ctx context.Context, key string) (geo.Place, bool) {
	place, ok, err := ls.cache.Get(ctx, key)
	if err != nil {
		ls.logger.Warn("Geocode cache read failed", "key", key, "error", err)
		return geo.Place{}, false
	}
	return place, ok
}

func (ls *LocationService) store(ctx context.Context, key string, place geo.Place) {
	if err := ls.cache.Set(ctx, key, place, ls.ttl); err != nil {
		ls.logger.Warn("Geocode cache write failed", "key", key, "error", err)
	}
}
