package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/startovate/lms_platform/handlers"
	"github.com/startovate/lms_platform/middleware"
)

func CourseRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	courses := api.Group("/courses")
	courses.Get("", handlers.ListCourses)
	courses.Post("", middleware.Protected(), middleware.TeacherRequired(), handlers.CreateCourse)
	courses.Get("/mine", middleware.Protected(), middleware.TeacherRequired(), handlers.ListMyCourses)
	courses.Put("/:courseId", middleware.Protected(), middleware.TeacherRequired(), handlers.UpdateCourse)
	courses.Delete("/:courseId", middleware.Protected(), handlers.DeleteCourse)
}
