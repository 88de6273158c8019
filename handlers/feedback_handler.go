package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/startovate/lms_platform/database"
	"github.com/startovate/lms_platform/models"
	"gorm.io/gorm"
)

type FeedbackRequest struct {
	CourseID string `json:"courseId" validate:"required,uuid4"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"required,max=1000"`
}

type FeedbackUpdateRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,max=1000"`
}

func averageRating(rows []models.Feedback) float64 {
	if len(rows) == 0 {
		return 0
	}
	sum := 0
	for _, f := range rows {
		sum += f.Rating
	}
	return float64(sum) / float64(len(rows))
}

// SubmitFeedback accepts one rating+comment per (student, course). The
// duplicate case is surfaced by the unique index, not pre-checked.
func SubmitFeedback(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ?", req.CourseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	var enrollment models.Enrollment
	if err := database.DB.Where("student_id = ? AND course_id = ?", id.UserID, course.ID).First(&enrollment).Error; err != nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You must be enrolled in this course to submit feedback"})
	}

	feedback := models.Feedback{
		StudentID:    id.UserID,
		CourseID:     course.ID,
		InstructorID: course.InstructorID,
		Rating:       req.Rating,
		Comment:      req.Comment,
	}
	if err := database.DB.Create(&feedback).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You have already submitted feedback for this course"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit feedback"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Feedback submitted successfully",
		"feedback": feedback,
	})
}

// GetCourseFeedback is a teacher view over one of their own courses; the
// average is computed over the fetched rows, nothing is stored.
func GetCourseFeedback(c *fiber.Ctx) error {
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
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only view feedback for your own courses"})
	}

	var rows []models.Feedback
	if err := database.DB.Preload("Student").Where("course_id = ?", courseID).Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{
		"feedback":      rows,
		"averageRating": averageRating(rows),
		"count":         len(rows),
	})
}

// GetTeacherFeedback aggregates feedback across all of the teacher's courses.
func GetTeacherFeedback(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var rows []models.Feedback
	if err := database.DB.
		Preload("Student").
		Preload("Course").
		Where("instructor_id = ?", id.UserID).
		Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	perCourse := make(map[string][]models.Feedback)
	for _, f := range rows {
		perCourse[f.CourseID.String()] = append(perCourse[f.CourseID.String()], f)
	}
	courseAverages := make(map[string]float64, len(perCourse))
	for courseID, courseRows := range perCourse {
		courseAverages[courseID] = averageRating(courseRows)
	}

	return c.JSON(fiber.Map{
		"feedback":       rows,
		"averageRating":  averageRating(rows),
		"courseAverages": courseAverages,
		"count":          len(rows),
	})
}

func GetMyFeedback(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var rows []models.Feedback
	if err := database.DB.Preload("Course").Where("student_id = ?", id.UserID).Find(&rows).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"feedback": rows})
}

func UpdateFeedback(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	feedbackID := c.Params("feedbackId")

	var feedback models.Feedback
	if err := database.DB.First(&feedback, "id = ?", feedbackID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Feedback not found"})
	}
	if feedback.StudentID != id.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only edit your own feedback"})
	}

	var req FeedbackUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	feedback.Rating = req.Rating
	feedback.Comment = req.Comment
	if err := database.DB.Save(&feedback).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update feedback"})
	}
	return c.JSON(feedback)
}

func DeleteFeedback(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	feedbackID := c.Params("feedbackId")

	var feedback models.Feedback
	if err := database.DB.First(&feedback, "id = ?", feedbackID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Feedback not found"})
	}
	if feedback.StudentID != id.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You can only delete your own feedback"})
	}

	if err := database.DB.Delete(&feedback).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete feedback"})
	}
	return c.JSON(fiber.Map{"message": "Feedback deleted successfully"})
}
