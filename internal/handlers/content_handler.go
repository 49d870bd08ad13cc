package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/nearnow/internal/models"
	"github.com/joshua-takyi/nearnow/internal/services"
)

func GetAchievements(cs *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(cs.Achievements(), ""))
	}
}

func GetTestimonials(cs *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(cs.Testimonials(), ""))
	}
}

func GetCommunityStats(cs *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(cs.Stats(), ""))
	}
}

func ScanArtwork(cs *services.ContentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(cs.Scan(), ""))
	}
}
