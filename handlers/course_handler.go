package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/startovate/lms_platform/database"
	"github.com/startovate/lms_platform/models"
	"github.com/startovate/lms_platform/notifications"
)

type CourseRequest struct {
	Title       string  `json:"title" validate:"required,min=3"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
}

func CreateCourse(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	course := models.Course{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		InstructorID: id.UserID,
	}
	if err := database.DB.Create(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create course"})
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}

// ListCourses returns approved courses only; unapproved courses are invisible
// outside their owner and the admin screens.
func ListCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.DB.Preload("Instructor").Where("approved = ?", true).Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"courses": courses})
}

func ListMyCourses(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var courses []models.Course
	if err := database.DB.Where("instructor_id = ?", id.UserID).Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"courses": courses})
}

func UpdateCourse(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	if course.InstructorID != id.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only edit your own courses"})
	}

	var req CourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	course.Title = req.Title
	course.Description = req.Description
	course.Price = req.Price
	if err := database.DB.Save(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update course"})
	}
	return c.JSON(course)
}

func DeleteCourse(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	if course.InstructorID != id.UserID && id.Role != models.RoleAdmin && id.Role != models.RoleSuperadmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only delete your own courses"})
	}

	if err := database.DB.Delete(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete course"})
	}
	return c.JSON(fiber.Map{"message": "Course deleted successfully"})
}

func ListUnapprovedCourses(c *fiber.Ctx) error {
	var courses []models.Course
	if err := database.DB.Preload("Instructor").Where("approved = ?", false).Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"courses": courses})
}

func ApproveCourse(c *fiber.Ctx) error {
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	course.Approved = true
	if err := database.DB.Save(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to approve course"})
	}

	var instructor models.User
	if err := database.DB.First(&instructor, "id = ?", course.InstructorID).Error; err == nil {
		body := "<h1>Course Approved</h1><p>Your course <b>" + course.Title + "</b> is now live and open for enrollment.</p>"
		go notifications.SendEmail(instructor.Name, instructor.Email, "Your Course has been Approved!", body)
	}

	return c.JSON(fiber.Map{"message": "Course approved", "course": course})
}
