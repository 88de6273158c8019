package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/startovate/lms_platform/handlers"
	"github.com/startovate/lms_platform/middleware"
)

func EnrollmentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	enroll := api.Group("/enroll", middleware.Protected(), middleware.StudentRequired())
	enroll.Post("", handlers.Enroll)
	enroll.Get("/my-courses", handlers.GetMyEnrolledCourses)
	enroll.Get("/available", handlers.GetAvailableCourses)
	enroll.Get("/my-certificates", handlers.GetMyCertificates)
	enroll.Put("/:enrollmentId/progress", handlers.UpdateProgress)
}
