package router

import (
	"github.com/bhaumin/boilerplate-project-exercisetracker/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerExerciseRoutes(r *echo.Echo, h *handler.Handlers) {
	api := r.Group("/api/exercise")

	api.POST("/new-user", h.User.RegisterUser)
	api.GET("/users", h.User.ListUsers)
	api.POST("/add", h.Exercise.AddExercise)
	api.GET("/log", h.Exercise.GetExerciseLog)
}
