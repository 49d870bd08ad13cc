// Package geo abstracts the third-party map SDKs behind a capability
// interface. Each adapter knows how its provider geocodes and how its markers
// look; callers only deal with Place, Marker and MapView.
package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/joshua-takyi/nearnow/internal/models"
)

var (
	ErrNotFound        = errors.New("location not found")
	ErrNotInitialized  = errors.New("map provider has no API key")
	ErrEmptyAPIKey     = errors.New("API key cannot be empty")
	ErrUnknownProvider = errors.New("unknown map provider")
	ErrEmptyQuery      = errors.New("search query cannot be empty")
)

// Place is a resolved location: what the form shows and where the pin goes.
type Place struct {
	Name        string             `json:"name"`
	Coordinates models.Coordinates `json:"coordinates"`
}

type MarkerKind string

const (
	MarkerUser  MarkerKind = "user"
	MarkerEvent MarkerKind = "event"
)

type MarkerIcon struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type Marker struct {
	Kind     MarkerKind         `json:"kind"`
	Position models.Coordinates `json:"position"`
	Title    string             `json:"title"`
	Info     string             `json:"info,omitempty"`
	Icon     *MarkerIcon        `json:"icon,omitempty"`
	Color    string             `json:"color,omitempty"`
}

// MapView is the provider-neutral description of what the client map should
// display.
type MapView struct {
	Provider string             `json:"provider"`
	Style    string             `json:"style,omitempty"`
	Center   models.Coordinates `json:"center"`
	Zoom     int                `json:"zoom"`
	Markers  []Marker           `json:"markers"`
}

type Provider interface {
	Name() string
	Initialize(apiKey string) error
	Ready() bool
	NewView() *MapView
	CenterOn(view *MapView, at models.Coordinates, zoom int)
	PlaceMarker(view *MapView, marker Marker)
	Geocode(ctx context.Context, query string) (Place, error)
	ReverseGeocode(ctx context.Context, at models.Coordinates) (Place, error)
}

// NewProvider builds the adapter registered under name ("mapbox" or "google").
func NewProvider(name string, client *http.Client) (Provider, error) {
	if client == nil {
		client = http.DefaultClient
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "mapbox":
		return NewMapbox(client), nil
	case "google":
		return NewGoogle(client), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

// apiKey guards the key that can be pasted in at runtime.
type apiKey struct {
	mu  sync.RWMutex
	key string
}

func (k *apiKey) set(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyAPIKey
	}
	k.mu.Lock()
	k.key = key
	k.mu.Unlock()
	return nil
}

func (k *apiKey) get() (string, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.key == "" {
		return "", ErrNotInitialized
	}
	return k.key, nil
}

func (k *apiKey) ready() bool {
	_, err := k.get()
	return err == nil
}

// stripURL unwraps *url.Error so the key in the query string never reaches
// logs or responses.
func stripURL(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err
	}
	return err
}

// getJSON fetches endpoint and decodes the body into out.
func getJSON(ctx context.Context, client *http.Client, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build geocoding request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("geocoding request failed: %w", stripURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("geocoding request failed: status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	return nil
}
