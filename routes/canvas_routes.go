package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/startovate/lms_platform/handlers"
	"github.com/startovate/lms_platform/middleware"
)

func CanvasRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	canvas := api.Group("/canvas", middleware.Protected())
	canvas.Post("", handlers.CreateCanvas)
	canvas.Get("", handlers.GetCanvas)
	canvas.Put("/components/status", handlers.UpdateComponentStatus)

	templates := api.Group("/templates", middleware.Protected())
	templates.Post("/start", handlers.StartTemplate)
	templates.Post("/save", handlers.SaveTemplate)
	templates.Get("/canvas/:canvasId", handlers.ListCanvasTemplates)
	templates.Get("/:canvasId/:templateId", handlers.GetTemplate)
	templates.Put("/:canvasId/:templateId/complete", handlers.CompleteTemplate)

	api.Get("/export/canvas/:canvasId", middleware.Protected(), handlers.ExportCanvasAsDocx)

	chatbot := api.Group("/chatbot", middleware.Protected())
	chatbot.Post("/send-message", handlers.SendChatMessage)
	chatbot.Get("/history", handlers.GetChatHistory)
	chatbot.Delete("/history", handlers.ClearChatHistory)
	chatbot.Get("/health", handlers.CheckChatbotHealth)
}
