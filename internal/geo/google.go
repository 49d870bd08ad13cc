package geo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"googlemaps.github.io/maps"

	"github.com/joshua-takyi/nearnow/internal/models"
)

const (
	GoogleBaseURL = "https://maps.googleapis.com"
	GoogleMapType = "roadmap"

	googleUserIcon  = "https://maps.google.com/mapfiles/ms/icons/red-dot.png"
	googleEventIcon = "https://maps.google.com/mapfiles/ms/icons/blue-dot.png"
	googleIconSize  = 32
)

// Google geocodes through the official Maps client, built lazily once a key
// is known.
type Google struct {
	BaseURL string
	client  *http.Client
	key     apiKey

	mu      sync.Mutex
	gmaps   *maps.Client
	mapsKey string
}

func NewGoogle(client *http.Client) *Google {
	if client == nil {
		client = http.DefaultClient
	}
	return &Google{
		BaseURL: GoogleBaseURL,
		client:  client,
	}
}

func (g *Google) Name() string { return "google" }

func (g *Google) Initialize(apiKey string) error { return g.key.set(apiKey) }

func (g *Google) Ready() bool { return g.key.ready() }

func (g *Google) NewView() *MapView {
	return &MapView{
		Provider: g.Name(),
		Style:    GoogleMapType,
		Markers:  []Marker{},
	}
}

func (g *Google) CenterOn(view *MapView, at models.Coordinates, zoom int) {
	view.Center = at
	view.Zoom = zoom
}

// PlaceMarker uses the red dot for the user and the blue dot for events.
func (g *Google) PlaceMarker(view *MapView, marker Marker) {
	icon := googleEventIcon
	if marker.Kind == MarkerUser {
		icon = googleUserIcon
	}
	marker.Icon = &MarkerIcon{URL: icon, Width: googleIconSize, Height: googleIconSize}
	view.Markers = append(view.Markers, marker)
}

func (g *Google) Geocode(ctx context.Context, query string) (Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Place{}, ErrEmptyQuery
	}
	return g.lookup(ctx, &maps.GeocodingRequest{Address: query})
}

func (g *Google) ReverseGeocode(ctx context.Context, at models.Coordinates) (Place, error) {
	place, err := g.lookup(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: at.Latitude, Lng: at.Longitude},
	})
	if err != nil {
		return Place{}, err
	}
	place.Coordinates = at
	return place, nil
}

// mapsClient returns the client for the current key, rebuilding it when the
// key was replaced at runtime.
func (g *Google) mapsClient() (*maps.Client, string, error) {
	key, err := g.key.get()
	if err != nil {
		return nil, "", err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gmaps != nil && g.mapsKey == key {
		return g.gmaps, key, nil
	}

	opts := []maps.ClientOption{
		maps.WithAPIKey(key),
		maps.WithHTTPClient(g.client),
	}
	if g.BaseURL != "" && g.BaseURL != GoogleBaseURL {
		opts = append(opts, maps.WithBaseURL(g.BaseURL))
	}
	c, err := maps.NewClient(opts...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create google maps client: %w", err)
	}
	g.gmaps, g.mapsKey = c, key
	return c, key, nil
}

// redactKey drops the key from errors the client formats with the request URL.
func redactKey(err error, key string) error {
	if !strings.Contains(err.Error(), key) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), key, "[redacted]"))
}

func (g *Google) lookup(ctx context.Context, req *maps.GeocodingRequest) (Place, error) {
	c, key, err := g.mapsClient()
	if err != nil {
		return Place{}, err
	}

	results, err := c.Geocode(ctx, req)
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return Place{}, ErrNotFound
		}
		return Place{}, fmt.Errorf("geocoding failed: %w", redactKey(stripURL(err), key))
	}
	if len(results) == 0 {
		return Place{}, ErrNotFound
	}

	r := results[0]
	return Place{
		Name: r.FormattedAddress,
		Coordinates: models.Coordinates{
			Latitude:  r.Geometry.Location.Lat,
			Longitude: r.Geometry.Location.Lng,
		},
	}, nil
}
