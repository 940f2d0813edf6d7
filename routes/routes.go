package routes

import (
	"github.com/bellapacxx/bingo-engine/controllers"
	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// ----------------------
	// Session routes
	// ----------------------
	api.POST("/sessions", controllers.CreateSession)       // Open a session
	api.GET("/sessions", controllers.ListSessions)         // List joinable sessions
	api.GET("/sessions/:id", controllers.GetSession)       // Full snapshot
	api.POST("/sessions/:id/join", controllers.JoinSession)
	api.POST("/sessions/:id/draw", controllers.DrawNumber)
	api.POST("/sessions/:id/mark", controllers.MarkNumber)
	api.POST("/sessions/:id/bingo", controllers.CheckBingo)

	// ----------------------
	// User routes
	// ----------------------
	api.POST("/users", controllers.RegisterUser)
	api.GET("/users/:telegram_id", controllers.GetUser)

	// ----------------------
	// Transaction routes
	// ----------------------
	api.POST("/deposit", controllers.Deposit)
	api.POST("/withdraw", controllers.Withdraw)
}
