package helpers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/nearnow/internal/models"
)

// StringTrim removes surrounding spaces and the quotes clients sometimes leave
// around templated values.
func StringTrim(s string) string {
	s = strings.TrimSpace(s)
	return strings.Trim(s, "\"'")
}

// QueryInt reads an optional integer query parameter; a missing value yields 0.
func QueryInt(c *gin.Context, key string) (int, error) {
	raw := StringTrim(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", key)
	}
	return n, nil
}

// QueryCoordinates reads the optional lat/lng query pair. Both or neither must
// be present.
func QueryCoordinates(c *gin.Context) (*models.Coordinates, error) {
	lat := StringTrim(c.Query("lat"))
	lng := StringTrim(c.Query("lng"))
	if lat == "" && lng == "" {
		return nil, nil
	}
	if lat == "" || lng == "" {
		return nil, fmt.Errorf("lat and lng must be given together")
	}
	coords, err := models.ParseCoordinates(lat + "," + lng)
	if err != nil {
		return nil, err
	}
	return &coords, nil
}
