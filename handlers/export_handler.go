package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/startovate/lms_platform/database"
	"github.com/startovate/lms_platform/models"
	"github.com/startovate/lms_platform/services"
	"gorm.io/gorm"
)

// ExportCanvasAsDocx streams the rendered Word document for a canvas.
func ExportCanvasAsDocx(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	canvasID := c.Params("canvasId")

	var canvas models.Canvas
	if err := database.DB.
		Preload("Components", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&canvas, "id = ?", canvasID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Canvas not found"})
	}
	if canvas.UserID != id.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not your canvas"})
	}

	docBytes, err := services.BuildCanvasDocument(&canvas)
	if err != nil {
		log.Printf("🔥 Canvas export failed for %s: %v", canvasID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to export canvas as Word document."})
	}

	c.Set(fiber.HeaderContentDisposition, `attachment; filename=canvas_export.docx`)
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	return c.Send(docBytes)
}
