package models

import (
	"strings"
)

const (
	DateLayout = "2006-01-02" // ISO calendar date, e.g. "2025-10-01"
	TimeLayout = "15:04"      // local time of day, e.g. "19:00"
)

type Category string

const (
	CategoryCultural    Category = "Cultural"
	CategoryMusica      Category = "Música"
	CategoryArte        Category = "Arte"
	CategoryMercado     Category = "Mercado"
	CategoryDeportes    Category = "Deportes"
	CategoryGastronomia Category = "Gastronomía"
	CategoryOtro        Category = "Otro"
)

// Categories lists the categories in the order the event form offers them.
var Categories = []Category{
	CategoryCultural,
	CategoryMusica,
	CategoryArte,
	CategoryMercado,
	CategoryDeportes,
	CategoryGastronomia,
	CategoryOtro,
}

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type Event struct {
	ID          int          `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title" validate:"required"`                    // e.g., "Festival de Danza en Oaxaca"
	Date        string       `json:"date" yaml:"date" validate:"required,datetime=2006-01-02"` // e.g., "2025-10-01"
	Time        string       `json:"time" yaml:"time" validate:"required,datetime=15:04"`      // e.g., "19:00"
	Location    string       `json:"location" yaml:"location" validate:"required"`
	Category    Category     `json:"category" yaml:"category" validate:"required,category"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty" yaml:"coordinates,omitempty" validate:"omitempty"`
}

// Sanitize trims the free-text fields so that whitespace-only values fail the
// required checks.
func (e *Event) Sanitize() {
	e.Title = strings.TrimSpace(e.Title)
	e.Date = strings.TrimSpace(e.Date)
	e.Time = strings.TrimSpace(e.Time)
	e.Location = strings.TrimSpace(e.Location)
	e.Category = Category(strings.TrimSpace(string(e.Category)))
	e.Description = strings.TrimSpace(e.Description)
}
