package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-widget/internal/handlers"
	"github.com/BruksfildServices01/booking-widget/internal/middleware"
)

// RegisterRoutes mounts the widget API. metricsHandler may be nil.
func RegisterRoutes(
	r *gin.Engine,
	widgetHandler *handlers.WidgetHandler,
	jwtSecret string,
	metricsHandler http.Handler,
) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// ======================================================
	// WIDGET API
	// ======================================================
	api := r.Group("/api/widget")
	{
		api.GET("/availability", widgetHandler.Availability)
		api.POST("/sessions", widgetHandler.CreateSession)

		secured := api.Group("/session")
		secured.Use(middleware.SessionAuth(jwtSecret))
		{
			secured.GET("", widgetHandler.GetSession)
			secured.DELETE("", widgetHandler.DeleteSession)

			secured.PUT("/date", widgetHandler.SelectDate)
			secured.PUT("/slot", widgetHandler.SelectSlot)
			secured.PATCH("/form", widgetHandler.UpdateForm)

			secured.POST("/next", widgetHandler.NextStep)
			secured.POST("/previous", widgetHandler.PreviousStep)
			secured.POST("/reset", widgetHandler.Reset)

			secured.POST("/confirmation/open", widgetHandler.OpenConfirmation)
			secured.POST("/confirmation/close", widgetHandler.CloseConfirmation)
			secured.POST("/complete", widgetHandler.Complete)
		}
	}
}
