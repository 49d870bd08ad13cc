package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Coordinates is a WGS84 point as picked on the map.
type Coordinates struct {
	Latitude  float64 `json:"lat" yaml:"lat" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"lng" yaml:"lng" validate:"gte=-180,lte=180"`
}

// ParseCoordinates reads a "lat,lng" pair.
func ParseCoordinates(s string) (Coordinates, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinates{}, fmt.Errorf("failed to parse coordinates from: %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid latitude %q: %w", parts[0], err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("invalid longitude %q: %w", parts[1], err)
	}
	c := Coordinates{Latitude: lat, Longitude: lng}
	if !c.IsValid() {
		return Coordinates{}, fmt.Errorf("coordinates out of range: %q", s)
	}
	return c, nil
}

func (c Coordinates) IsValid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// String formats the point with four decimals, the display name used when a
// map click cannot be reverse geocoded.
func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f, %.4f", c.Latitude, c.Longitude)
}
