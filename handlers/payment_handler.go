package handlers

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/startovate/lms_platform/database"
	"github.com/startovate/lms_platform/models"
	"github.com/startovate/lms_platform/notifications"
	"github.com/startovate/lms_platform/payments"
	"github.com/startovate/lms_platform/services"
	"gorm.io/gorm"
)

// SubmitEasypaisaPayment stores a manual proof-of-payment pending admin review.
// The screenshot lands in uploads/ with a timestamp-prefixed name and is
// mirrored to Cloudinary when configured.
func SubmitEasypaisaPayment(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	courseID := c.FormValue("courseId")
	fullName := c.FormValue("fullName")
	transactionID := c.FormValue("transactionId")

	file, err := c.FormFile("screenshot")
	if transactionID == "" || courseID == "" || err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing required fields"})
	}

	courseUUID, err := uuid.Parse(courseID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid course ID format"})
	}
	var course models.Course
	if err := database.DB.Where("id = ? AND approved = ?", courseUUID, true).First(&course).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), file.Filename)
	localPath := fmt.Sprintf("uploads/%s", filename)
	if err := os.MkdirAll("uploads", 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store screenshot"})
	}
	if err := c.SaveFile(file, localPath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store screenshot"})
	}

	screenshotURL := "/" + localPath
	if remoteURL, err := services.UploadScreenshot(localPath); err == nil && remoteURL != "" {
		screenshotURL = remoteURL
	} else if err != nil {
		log.Printf("Screenshot mirror to Cloudinary failed, keeping local copy: %v", err)
	}

	payment := models.EasypaisaPayment{
		UserID:        id.UserID,
		CourseID:      courseUUID,
		FullName:      fullName,
		TransactionID: transactionID,
		ScreenshotURL: screenshotURL,
		IsVerified:    false,
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Submission failed"})
	}

	return c.JSON(fiber.Map{"message": "Submitted for verification"})
}

// ListPendingEasypaisaPayments returns unverified payments with user/course
// display fields. Ordering is newest first for the admin screen; callers must
// not rely on it.
func ListPendingEasypaisaPayments(c *fiber.Ctx) error {
	var pending []models.EasypaisaPayment
	if err := database.DB.
		Preload("User").
		Preload("Course").
		Where("is_verified = ?", false).
		Order("created_at desc").
		Find(&pending).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch pending payments"})
	}
	return c.JSON(fiber.Map{"payments": pending})
}

// ApproveEasypaisaPayment marks the payment verified and enrolls the student,
// both inside one transaction. There is no guard against approving an
// already-verified payment; doing so creates a duplicate enrollment row.
func ApproveEasypaisaPayment(c *fiber.Ctx) error {
	paymentID := c.Params("paymentId")

	var payment models.EasypaisaPayment
	if err := database.DB.Preload("User").Preload("Course").First(&payment, "id = ?", paymentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment not found"})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		payment.IsVerified = true
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		enrollment := models.Enrollment{
			StudentID: payment.UserID,
			CourseID:  payment.CourseID,
			Progress:  0,
			Completed: false,
		}
		return tx.Create(&enrollment).Error
	})
	if err != nil {
		log.Printf("🔥 Failed to approve payment %s: %v", paymentID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Approval failed"})
	}

	go notifications.SendEmail(
		payment.User.Name,
		payment.User.Email,
		"Payment Verified - You're Enrolled!",
		"<h1>Payment Verified</h1><p>Your Easypaisa payment was verified and you are now enrolled in <b>"+payment.Course.Title+"</b>.</p>",
	)

	return c.JSON(fiber.Map{"message": "Payment approved and course enrolled"})
}

type CheckoutSessionRequest struct {
	CourseID string `json:"courseId" validate:"required,uuid4"`
}

// CreateCheckoutSession opens an embedded hosted-checkout session with the
// card processor and records a pending payment row keyed to it.
func CreateCheckoutSession(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req CheckoutSessionRequest
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

	session, err := payments.CreateCheckoutSession(course.Title, course.Price)
	if err != nil {
		log.Printf("🔥 Stripe session creation failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create checkout session"})
	}

	payment := models.Payment{
		UserID:            id.UserID,
		CourseID:          course.ID,
		Provider:          "stripe",
		ProviderSessionID: &session.ID,
		Amount:            course.Price,
		Currency:          "usd",
		Status:            "pending",
	}
	if err := database.DB.Create(&payment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record payment"})
	}

	return c.JSON(fiber.Map{"clientSecret": session.ClientSecret})
}

// GetCheckoutSessionStatus polls the processor for a session and, on
// completion, marks the payment succeeded and enrolls the student.
func GetCheckoutSessionStatus(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "session_id is required"})
	}

	session, err := payments.RetrieveCheckoutSession(sessionID)
	if err != nil {
		log.Printf("🔥 Stripe session retrieval failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve session"})
	}

	var payment models.Payment
	if err := database.DB.Where("provider_session_id = ?", sessionID).First(&payment).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payment record not found for this session"})
	}

	if session.Status == "complete" && payment.Status != "succeeded" {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			payment.Status = "succeeded"
			if err := tx.Save(&payment).Error; err != nil {
				return err
			}

			var existing models.Enrollment
			if err := tx.Where("student_id = ? AND course_id = ?", payment.UserID, payment.CourseID).First(&existing).Error; err == nil {
				return nil
			}
			enrollment := models.Enrollment{
				StudentID: payment.UserID,
				CourseID:  payment.CourseID,
			}
			return tx.Create(&enrollment).Error
		})
		if err != nil {
			log.Printf("🔥 Failed to finalize checkout session %s: %v", sessionID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to finalize purchase"})
		}
	}

	return c.JSON(fiber.Map{
		"status":         session.Status,
		"customer_email": session.CustomerEmail,
	})
}
