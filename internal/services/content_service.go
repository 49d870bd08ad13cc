package services

import (
	"github.com/joshua-takyi/nearnow/internal/models"
)

type ContentService struct {
	content *models.Content
}

func NewContentService(content *models.Content) *ContentService {
	if content == nil {
		content = &models.Content{}
	}
	return &ContentService{content: content}
}

func (cs *ContentService) Achievements() []models.Achievement {
	return cs.content.Achievements
}

func (cs *ContentService) Testimonials() []models.Testimonial {
	return cs.content.Testimonials
}

func (cs *ContentService) Stats() []models.CommunityStat {
	return cs.content.Stats
}

// Scan is the canned result of the art-scan simulator.
func (cs *ContentService) Scan() models.ScanResult {
	return cs.content.Scan
}
