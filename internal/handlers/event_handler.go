package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/nearnow/internal/helpers"
	"github.com/joshua-takyi/nearnow/internal/models"
	"github.com/joshua-takyi/nearnow/internal/services"
)

const (
	EventFormNotice    = "Por favor, completa todos los campos obligatorios."
	EventCreatedNotice = "Evento publicado con éxito. Gracias por contribuir."
	DefaultEventFilter = "hoy"
)

type createEventRequest struct {
	Title       string              `json:"title"`
	Date        string              `json:"date"`
	Time        string              `json:"time"`
	Location    string              `json:"location"`
	Category    string              `json:"category"`
	Description string              `json:"description"`
	Coordinates *models.Coordinates `json:"coordinates"`
}

func (r createEventRequest) toEvent() *models.Event {
	return &models.Event{
		Title:       r.Title,
		Date:        r.Date,
		Time:        r.Time,
		Location:    r.Location,
		Category:    models.Category(r.Category),
		Description: r.Description,
		Coordinates: r.Coordinates,
	}
}

func CreateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.NoticeResponse(EventFormNotice, []string{err.Error()}))
			return
		}

		created, err := es.CreateEvent(c.Request.Context(), req.toEvent())
		if err != nil {
			var verr *services.ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, models.NoticeResponse(EventFormNotice, verr.Fields))
				return
			}
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(created, EventCreatedNotice))
	}
}

// ListEvents serves the "hoy" / "mañana" / "todos" selector. Unknown values
// fall back to the full list.
func ListEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		mode := models.ParseFilterMode(c.DefaultQuery("filter", DefaultEventFilter))

		events, err := es.ListEvents(c.Request.Context(), mode)
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusOK, models.ListResponse(events, len(events)))
	}
}

func GetEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(helpers.StringTrim(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid event ID format"))
			return
		}

		event, err := es.GetEvent(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, services.ErrEventNotFound) {
				c.JSON(http.StatusNotFound, models.ErrorResponse("event not found"))
				return
			}
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, ""))
	}
}

func ListCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(models.Categories, ""))
	}
}
