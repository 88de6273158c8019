package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/startovate/lms_platform/handlers"
	"github.com/startovate/lms_platform/middleware"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/signup", handlers.Signup)
	auth.Post("/login", handlers.Login)
	auth.Post("/logout", handlers.Logout)
	auth.Get("/me", middleware.Protected(), handlers.GetCurrentUser)
}
