package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/joshua-takyi/nearnow/internal/models"
)

const (
	MapboxBaseURL = "https://api.mapbox.com"
	MapboxStyle   = "mapbox://styles/mapbox/streets-v12"

	mapboxUserColor  = "#ef4444"
	mapboxEventColor = "#3b82f6"
)

type Mapbox struct {
	BaseURL string
	client  *http.Client
	key     apiKey
}

func NewMapbox(client *http.Client) *Mapbox {
	return &Mapbox{
		BaseURL: MapboxBaseURL,
		client:  client,
	}
}

type mapboxResponse struct {
	Features []struct {
		PlaceName string    `json:"place_name"`
		Center    []float64 `json:"center"` // [lng, lat]
	} `json:"features"`
}

func (m *Mapbox) Name() string { return "mapbox" }

func (m *Mapbox) Initialize(apiKey string) error { return m.key.set(apiKey) }

func (m *Mapbox) Ready() bool { return m.key.ready() }

func (m *Mapbox) NewView() *MapView {
	return &MapView{
		Provider: m.Name(),
		Style:    MapboxStyle,
		Markers:  []Marker{},
	}
}

func (m *Mapbox) CenterOn(view *MapView, at models.Coordinates, zoom int) {
	view.Center = at
	view.Zoom = zoom
}

// PlaceMarker uses the default Mapbox pin, coloured by kind.
func (m *Mapbox) PlaceMarker(view *MapView, marker Marker) {
	if marker.Kind == MarkerUser {
		marker.Color = mapboxUserColor
	} else {
		marker.Color = mapboxEventColor
	}
	view.Markers = append(view.Markers, marker)
}

func (m *Mapbox) Geocode(ctx context.Context, query string) (Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Place{}, ErrEmptyQuery
	}
	return m.lookup(ctx, url.PathEscape(query), url.Values{"limit": {"1"}})
}

func (m *Mapbox) ReverseGeocode(ctx context.Context, at models.Coordinates) (Place, error) {
	// Mapbox takes longitude first.
	search := formatFloat(at.Longitude) + "," + formatFloat(at.Latitude)
	place, err := m.lookup(ctx, search, url.Values{})
	if err != nil {
		return Place{}, err
	}
	place.Coordinates = at
	return place, nil
}

func (m *Mapbox) lookup(ctx context.Context, search string, params url.Values) (Place, error) {
	key, err := m.key.get()
	if err != nil {
		return Place{}, err
	}
	params.Set("access_token", key)
	endpoint := fmt.Sprintf("%s/geocoding/v5/mapbox.places/%s.json?%s", m.BaseURL, search, params.Encode())

	var res mapboxResponse
	if err := getJSON(ctx, m.client, endpoint, &res); err != nil {
		return Place{}, err
	}
	if len(res.Features) == 0 {
		return Place{}, ErrNotFound
	}

	f := res.Features[0]
	place := Place{Name: f.PlaceName}
	if len(f.Center) == 2 {
		place.Coordinates = models.Coordinates{Latitude: f.Center[1], Longitude: f.Center[0]}
	}
	return place, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
