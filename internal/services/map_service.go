package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/joshua-takyi/nearnow/internal/geo"
	"github.com/joshua-takyi/nearnow/internal/models"
)

const (
	DefaultMapZoom = 5
	UserMapZoom    = 12
)

// DefaultMapCenter is Mexico City, used until the user's position is known.
var DefaultMapCenter = models.Coordinates{Latitude: 19.4326, Longitude: -99.1332}

type MapService struct {
	eventsRepo models.EventRepo
	provider   geo.Provider
}

func NewMapService(eventsRepo models.EventRepo, provider geo.Provider) *MapService {
	return &MapService{
		eventsRepo: eventsRepo,
		provider:   provider,
	}
}

// BuildView places a marker for every event with coordinates and, when the
// user's position is known, centers on it with a user marker.
func (ms *MapService) BuildView(ctx context.Context, user *models.Coordinates) (*geo.MapView, error) {
	if user != nil && !user.IsValid() {
		return nil, ErrInvalidCoordinates
	}

	view := ms.provider.NewView()
	ms.provider.CenterOn(view, DefaultMapCenter, DefaultMapZoom)

	if user != nil {
		ms.provider.CenterOn(view, *user, UserMapZoom)
		ms.provider.PlaceMarker(view, geo.Marker{
			Kind:     geo.MarkerUser,
			Position: *user,
			Title:    "Tu ubicación",
		})
	}

	events, err := ms.eventsRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	for _, e := range events {
		if e.Coordinates == nil {
			continue
		}
		ms.provider.PlaceMarker(view, geo.Marker{
			Kind:     geo.MarkerEvent,
			Position: *e.Coordinates,
			Title:    e.Title,
			Info:     markerInfo(e),
		})
	}

	return view, nil
}

func markerInfo(e models.Event) string {
	var b strings.Builder
	b.WriteString(e.Title)
	b.WriteString("\n")
	b.WriteString(e.Location)
	b.WriteString("\n")
	b.WriteString(e.Date)
	b.WriteString(" ")
	b.WriteString(e.Time)
	return b.String()
}
