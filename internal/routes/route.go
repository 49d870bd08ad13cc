package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/nearnow/internal/container"
	"github.com/joshua-takyi/nearnow/internal/handlers"
	"github.com/joshua-takyi/nearnow/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.New()

	origins := container.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
	}))

	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":  "OK",
				"service": "nearnow-api",
			})
		})
		v1.GET("/categories", handlers.ListCategories())
		v1.GET("/calendar", handlers.GetCalendar(container.EventService))
	}

	eventRoutes := v1.Group("/events")
	{
		eventRoutes.GET("", handlers.ListEvents(container.EventService))
		eventRoutes.POST("", handlers.CreateEvent(container.EventService))
		eventRoutes.GET("/:id", handlers.GetEvent(container.EventService))
	}
	v1.GET("/events.ics", handlers.EventsFeed(container.FeedService))

	locationRoutes := v1.Group("/locations")
	{
		locationRoutes.GET("/search", handlers.SearchLocation(container.LocationService))
		locationRoutes.GET("/reverse", handlers.ReverseLocation(container.LocationService))
	}

	mapRoutes := v1.Group("/map")
	{
		mapRoutes.GET("", handlers.GetMapView(container.MapService))
		mapRoutes.GET("/status", handlers.MapStatus(container.LocationService))
		mapRoutes.PUT("/key", handlers.SetMapKey(container.LocationService))
	}

	contentRoutes := v1.Group("/content")
	{
		contentRoutes.GET("/achievements", handlers.GetAchievements(container.ContentService))
		contentRoutes.GET("/testimonials", handlers.GetTestimonials(container.ContentService))
		contentRoutes.GET("/stats", handlers.GetCommunityStats(container.ContentService))
		contentRoutes.GET("/scan", handlers.ScanArtwork(container.ContentService))
	}

	return r
}
