package routes

import (
	"backend/controllers"
	"backend/middleware"

	"github.com/gin-gonic/gin"
)

func InitializeRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/health", controllers.Health)

		api.POST("/track-visit", controllers.TrackVisit)
		api.POST("/track-click", controllers.TrackClick)

		api.POST("/admin/login", controllers.Login)
		// The dashboard sends the session token in the body here, so the
		// handler validates it itself instead of going through the middleware.
		api.POST("/admin/update-password", controllers.UpdatePassword)

		api.GET("/analytics", middleware.SessionMiddleware(), controllers.GetAnalytics)
	}
}
