package models

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed data/content.yaml
var defaultContent []byte

type Achievement struct {
	Icon        string `yaml:"icon" json:"icon"`
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Progress    string `yaml:"progress" json:"progress"` // e.g., "15/25"
	Completed   bool   `yaml:"completed" json:"completed"`
}

type Testimonial struct {
	Name     string `yaml:"name" json:"name"`
	Avatar   string `yaml:"avatar" json:"avatar"`
	Rating   int    `yaml:"rating" json:"rating" validate:"min=1,max=5"`
	Comment  string `yaml:"comment" json:"comment"`
	Location string `yaml:"location" json:"location"`
	Likes    int    `yaml:"likes" json:"likes"`
}

type CommunityStat struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

type ScanResult struct {
	Title   string `yaml:"title" json:"title"`
	Message string `yaml:"message" json:"message"`
	Story   string `yaml:"story" json:"story"`
}

// Content holds the static marketing sections of the site.
type Content struct {
	Achievements []Achievement   `yaml:"achievements" json:"achievements"`
	Testimonials []Testimonial   `yaml:"testimonials" json:"testimonials" validate:"dive"`
	Stats        []CommunityStat `yaml:"stats" json:"stats"`
	Scan         ScanResult      `yaml:"scan" json:"scan"`
}

func ParseContent(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}
	if err := Validate.Struct(c); err != nil {
		return nil, fmt.Errorf("invalid content: %w", err)
	}
	return &c, nil
}

func LoadContent(path string) (*Content, error) {
	data := defaultContent
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read content file: %w", err)
		}
		data = raw
	}
	return ParseContent(data)
}
