package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/startovate/lms_platform/database"
	"github.com/startovate/lms_platform/models"
	"github.com/startovate/lms_platform/services"
)

type EnrollRequest struct {
	CourseID string `json:"courseId" validate:"required,uuid4"`
}

// Enroll is the direct path: no payment precondition, only existence, approval
// and duplicate checks.
func Enroll(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req EnrollRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var course models.Course
	if err := database.DB.Where("id = ? AND approved = ?", req.CourseID, true).First(&course).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var existing models.Enrollment
	if err := database.DB.Where("student_id = ? AND course_id = ?", id.UserID, course.ID).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Already enrolled"})
	}

	enrollment := models.Enrollment{
		StudentID: id.UserID,
		CourseID:  course.ID,
		Progress:  0,
		Completed: false,
	}
	if err := database.DB.Create(&enrollment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to enroll"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Enrollment successful", "enrollment": enrollment})
}

func GetMyEnrolledCourses(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var enrollments []models.Enrollment
	if err := database.DB.
		Preload("Course").
		Preload("Course.Instructor").
		Where("student_id = ?", id.UserID).
		Find(&enrollments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"enrolledCourses": enrollments})
}

// GetAvailableCourses lists approved courses the student has not enrolled in.
func GetAvailableCourses(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var courses []models.Course
	sub := database.DB.Model(&models.Enrollment{}).
		Select("course_id").
		Where("student_id = ?", id.UserID)

	if err := database.DB.
		Preload("Instructor").
		Where("approved = ? AND id NOT IN (?)", true, sub).
		Find(&courses).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"courses": courses})
}

type ProgressRequest struct {
	Progress int `json:"progress" validate:"min=0,max=100"`
}

func UpdateProgress(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	enrollmentID := c.Params("enrollmentId")

	var req ProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var enrollment models.Enrollment
	if err := database.DB.Preload("Student").Preload("Course").First(&enrollment, "id = ?", enrollmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Enrollment not found"})
	}
	if enrollment.StudentID != id.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not your enrollment"})
	}

	enrollment.Progress = req.Progress
	justCompleted := false
	if req.Progress == 100 && !enrollment.Completed {
		enrollment.Completed = true
		justCompleted = true
	}
	if err := database.DB.Save(&enrollment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update progress"})
	}

	if justCompleted {
		go services.CheckAndGenerateCertificate(enrollment)
	}

	return c.JSON(fiber.Map{"message": "Progress updated", "enrollment": enrollment})
}

func GetMyCertificates(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var enrollments []models.Enrollment
	if err := database.DB.
		Preload("Course").
		Where("student_id = ? AND certificate_url IS NOT NULL", id.UserID).
		Find(&enrollments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"certificates": enrollments})
}
