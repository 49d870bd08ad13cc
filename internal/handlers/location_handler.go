package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/nearnow/internal/geo"
	"github.com/joshua-takyi/nearnow/internal/helpers"
	"github.com/joshua-takyi/nearnow/internal/models"
	"github.com/joshua-takyi/nearnow/internal/services"
)

const MapKeyNotice = "Ingresa tu API key del proveedor de mapas para usar el mapa."

// locationError maps location lookup failures onto statuses. It reports
// whether a response was written.
func locationError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, geo.ErrNotInitialized):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(MapKeyNotice))
	case errors.Is(err, geo.ErrEmptyQuery), errors.Is(err, services.ErrInvalidCoordinates):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
	case errors.Is(err, geo.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(err.Error()))
	default:
		c.JSON(http.StatusBadGateway, models.ErrorResponse("map provider is unavailable"))
	}
	return true
}

func SearchLocation(ls *services.LocationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		place, err := ls.SelectByQuery(c.Request.Context(), c.Query("q"))
		if locationError(c, err) {
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(place, ""))
	}
}

func ReverseLocation(ls *services.LocationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		at, err := helpers.QueryCoordinates(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		if at == nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("lat and lng are required"))
			return
		}

		place, err := ls.SelectByPoint(c.Request.Context(), *at)
		if locationError(c, err) {
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(place, ""))
	}
}

func SetMapKey(ls *services.LocationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reqBody struct {
			APIKey string `json:"api_key" binding:"required"`
		}
		if err := c.ShouldBindJSON(&reqBody); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("api_key is required"))
			return
		}

		if err := ls.SetAPIKey(reqBody.APIKey); err != nil {
			if errors.Is(err, geo.ErrEmptyAPIKey) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
				return
			}
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(mapStatus(ls), "map provider ready"))
	}
}

func MapStatus(ls *services.LocationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.SuccessResponse(mapStatus(ls), ""))
	}
}

func mapStatus(ls *services.LocationService) gin.H {
	return gin.H{
		"provider": ls.ProviderName(),
		"ready":    ls.Ready(),
	}
}

func GetMapView(ms *services.MapService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := helpers.QueryCoordinates(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		view, err := ms.BuildView(c.Request.Context(), user)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCoordinates) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
				return
			}
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(view, ""))
	}
}
