package container

import (
	"log/slog"
	"time"

	"github.com/joshua-takyi/nearnow/internal/geo"
	"github.com/joshua-takyi/nearnow/internal/models"
	"github.com/joshua-takyi/nearnow/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// The event list has a single owner; everything else reads it through
	// the services below.
	EventStore      *models.EventStore
	EventService    *services.EventService
	LocationService *services.LocationService
	MapService      *services.MapService
	FeedService     *services.FeedService
	ContentService  *services.ContentService
}

type Options struct {
	Logger          *slog.Logger
	Location        *time.Location
	AllowedOrigins  []string
	Seed            []models.Event
	Content         *models.Content
	Provider        geo.Provider
	GeocodeCache    geo.Cache
	GeocodeCacheTTL time.Duration
}

// NewContainer creates a new dependency injection container
func NewContainer(opts Options) *Container {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	store := models.NewEventStore(opts.Seed...)

	return &Container{
		Logger:          logger,
		AllowedOrigins:  opts.AllowedOrigins,
		EventStore:      store,
		EventService:    services.NewEventService(store, opts.Location),
		LocationService: services.NewLocationService(opts.Provider, opts.GeocodeCache, opts.GeocodeCacheTTL, logger),
		MapService:      services.NewMapService(store, opts.Provider),
		FeedService:     services.NewFeedService(store, opts.Location, logger),
		ContentService:  services.NewContentService(opts.Content),
	}
}
