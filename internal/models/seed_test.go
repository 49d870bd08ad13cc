package models

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeedDefault(t *testing.T) {
	today := time.Date(2025, time.October, 16, 9, 30, 0, 0, time.UTC)

	events, err := LoadSeed("", today)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, "Festival de Danza en Oaxaca", events[0].Title)
	assert.Equal(t, "2025-10-16", events[0].Date)
	assert.Equal(t, "2025-10-17", events[1].Date)
	assert.Equal(t, "2025-10-16", events[2].Date)
	assert.Equal(t, CategoryMusica, events[1].Category)
	require.NotNil(t, events[0].Coordinates)
	assert.InDelta(t, 17.0732, events[0].Coordinates.Latitude, 1e-9)
}

func TestParseSeedExplicitDate(t *testing.T) {
	doc := []byte(`
events:
  - title: "  Tianguis  "
    date: "2025-12-01"
    time: "08:00"
    location: Puebla
    category: Mercado
`)
	events, err := ParseSeed(doc, time.Now())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Tianguis", events[0].Title)
	assert.Equal(t, "2025-12-01", events[0].Date)
	assert.Nil(t, events[0].Coordinates)
}

func TestParseSeedRejectsInvalidEvent(t *testing.T) {
	doc := []byte(`
events:
  - title: Sin fecha
    time: "08:00"
    location: Puebla
    category: Mercado
`)
	_, err := ParseSeed(doc, time.Now())
	assert.Error(t, err)

	_, err = ParseSeed([]byte("events: [unterminated"), time.Now())
	assert.Error(t, err)
}

func TestLoadSeedFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.yaml")
	doc := `
events:
  - title: Carrera 10K
    day_offset: 2
    time: "07:00"
    location: Monterrey
    category: Deportes
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	events, err := LoadSeed(path, time.Date(2025, time.December, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "2026-01-01", events[0].Date)

	_, err = LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"), time.Now())
	assert.Error(t, err)
}

func TestParseCoordinates(t *testing.T) {
	c, err := ParseCoordinates(" 19.4326 , -99.1332 ")
	require.NoError(t, err)
	assert.InDelta(t, 19.4326, c.Latitude, 1e-9)
	assert.InDelta(t, -99.1332, c.Longitude, 1e-9)
	assert.Equal(t, "19.4326, -99.1332", c.String())

	for _, bad := range []string{"", "19.4", "a,b", "91,0", "0,181", "1,2,3"} {
		_, err := ParseCoordinates(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoadContentDefault(t *testing.T) {
	content, err := LoadContent("")
	require.NoError(t, err)
	assert.NotEmpty(t, content.Achievements)
	assert.NotEmpty(t, content.Testimonials)
	assert.NotEmpty(t, content.Stats)
	assert.NotEmpty(t, content.Scan.Title)
	for _, tm := range content.Testimonials {
		assert.GreaterOrEqual(t, tm.Rating, 1)
		assert.LessOrEqual(t, tm.Rating, 5)
	}
}

func TestParseContentRejectsBadRating(t *testing.T) {
	doc := []byte(`
testimonials:
  - name: Ana
    rating: 7
`)
	_, err := ParseContent(doc)
	assert.Error(t, err)
}
