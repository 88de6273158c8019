package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/startovate/lms_platform/handlers"
	"github.com/startovate/lms_platform/middleware"
)

func FeedbackRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	feedback := api.Group("/feedback", middleware.Protected())
	feedback.Post("/submit", middleware.StudentRequired(), handlers.SubmitFeedback)
	feedback.Get("/mine", middleware.StudentRequired(), handlers.GetMyFeedback)
	feedback.Put("/:feedbackId", middleware.StudentRequired(), handlers.UpdateFeedback)
	feedback.Delete("/:feedbackId", middleware.StudentRequired(), handlers.DeleteFeedback)

	feedback.Get("/course/:courseId", middleware.TeacherRequired(), handlers.GetCourseFeedback)
	feedback.Get("/teacher", middleware.TeacherRequired(), handlers.GetTeacherFeedback)
}
