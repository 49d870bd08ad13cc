package models

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed data/events.yaml
var defaultSeed []byte

type seedEvent struct {
	Event     `yaml:",inline"`
	DayOffset *int `yaml:"day_offset"`
}

type seedFile struct {
	Events []seedEvent `yaml:"events"`
}

// ParseSeed decodes a YAML seed document. Entries with day_offset get their
// date relative to today; the rest must carry an explicit date.
func ParseSeed(data []byte, today time.Time) ([]Event, error) {
	var doc seedFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode seed events: %w", err)
	}

	events := make([]Event, 0, len(doc.Events))
	for i, se := range doc.Events {
		e := se.Event
		if se.DayOffset != nil {
			e.Date = today.AddDate(0, 0, *se.DayOffset).Format(DateLayout)
		}
		e.Sanitize()
		if err := Validate.Struct(e); err != nil {
			return nil, fmt.Errorf("seed event %d (%q) is invalid: %w", i, e.Title, err)
		}
		events = append(events, e)
	}
	return events, nil
}

// LoadSeed reads the seed file at path, or the embedded default when path is
// empty.
func LoadSeed(path string, today time.Time) ([]Event, error) {
	data := defaultSeed
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		data = raw
	}
	return ParseSeed(data, today)
}
