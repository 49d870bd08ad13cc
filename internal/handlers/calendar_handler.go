package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/nearnow/internal/helpers"
	"github.com/joshua-takyi/nearnow/internal/models"
	"github.com/joshua-takyi/nearnow/internal/services"
)

// GetCalendar returns the month grid; without year/month it is the current month.
func GetCalendar(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		year, err := helpers.QueryInt(c, "year")
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid year parameter"))
			return
		}
		month, err := helpers.QueryInt(c, "month")
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid month parameter"))
			return
		}

		cal, err := es.Calendar(c.Request.Context(), year, month)
		if err != nil {
			if errors.Is(err, services.ErrInvalidMonth) || errors.Is(err, services.ErrInvalidYear) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
				return
			}
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(cal, ""))
	}
}

func EventsFeed(fs *services.FeedService) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := fs.Calendar(c.Request.Context())
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", "nearnow-eventos.ics"))
		c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
	}
}
