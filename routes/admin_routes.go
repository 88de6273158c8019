package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/startovate/lms_platform/handlers"
	"github.com/startovate/lms_platform/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	courses := admin.Group("/courses")
	courses.Get("/unapproved", handlers.ListUnapprovedCourses)
	courses.Put("/approve/:courseId", handlers.ApproveCourse)

	users := admin.Group("/users", middleware.SuperadminRequired())
	users.Get("", handlers.GetAllUsers)
	users.Post("", handlers.AdminCreateUser)
	users.Put("/:userId/status", handlers.ToggleUserStatus)
	users.Delete("/:userId", handlers.AdminDeleteUser)
}
