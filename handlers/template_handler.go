package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/startovate/lms_platform/database"
	"github.com/startovate/lms_platform/models"
	"gorm.io/datatypes"
)

type StartTemplateRequest struct {
	CanvasID   string `json:"canvasId" validate:"required,uuid4"`
	TemplateID string `json:"templateId" validate:"required"`
}

// ownedCanvas loads a canvas and checks it belongs to the caller.
func ownedCanvas(c *fiber.Ctx, canvasID string) (*models.Canvas, error) {
	id, err := currentIdentity(c)
	if err != nil {
		return nil, err
	}

	var canvas models.Canvas
	if err := database.DB.First(&canvas, "id = ?", canvasID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Canvas not found")
	}
	if canvas.UserID != id.UserID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Not your canvas")
	}
	return &canvas, nil
}

// StartTemplate creates the entry shell if it does not exist yet.
func StartTemplate(c *fiber.Ctx) error {
	var req StartTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	def, ok := models.LookupTemplate(req.TemplateID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown template"})
	}

	canvas, err := ownedCanvas(c, req.CanvasID)
	if err != nil {
		return err
	}

	var entry models.TemplateEntry
	err = database.DB.Where("canvas_id = ? AND template_id = ?", canvas.ID, def.ID).First(&entry).Error
	if err != nil {
		entry = models.TemplateEntry{
			CanvasID:      canvas.ID,
			TemplateID:    def.ID,
			ComponentName: def.ComponentName,
			ChecklistStep: def.ChecklistStep,
			Content:       datatypes.JSONMap{},
			Completed:     false,
		}
		if err := database.DB.Create(&entry).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start template"})
		}
	}

	return c.JSON(fiber.Map{"success": true, "template": entry})
}

type SaveTemplateRequest struct {
	CanvasID   string            `json:"canvasId" validate:"required,uuid4"`
	TemplateID string            `json:"templateId" validate:"required"`
	Answers    map[string]string `json:"answers" validate:"required"`
}

// SaveTemplate merges answers into the entry's content bag. Keys must appear
// in the template's declared field list.
func SaveTemplate(c *fiber.Ctx) error {
	var req SaveTemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	def, ok := models.LookupTemplate(req.TemplateID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown template"})
	}

	for key, value := range req.Answers {
		if !def.AllowsField(key) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("Field %q is not part of template %s", key, def.ID)})
		}
		if len(value) > models.MaxAnswerLength {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("Answer for %q exceeds %d characters", key, models.MaxAnswerLength)})
		}
	}

	canvas, err := ownedCanvas(c, req.CanvasID)
	if err != nil {
		return err
	}

	var entry models.TemplateEntry
	if err := database.DB.Where("canvas_id = ? AND template_id = ?", canvas.ID, def.ID).First(&entry).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}

	if entry.Content == nil {
		entry.Content = datatypes.JSONMap{}
	}
	for key, value := range req.Answers {
		entry.Content[key] = value
	}
	if err := database.DB.Save(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save answers"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Answers saved successfully", "template": entry})
}

func GetTemplate(c *fiber.Ctx) error {
	canvas, err := ownedCanvas(c, c.Params("canvasId"))
	if err != nil {
		return err
	}

	var entry models.TemplateEntry
	if err := database.DB.Where("canvas_id = ? AND template_id = ?", canvas.ID, c.Params("templateId")).First(&entry).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}
	return c.JSON(fiber.Map{"success": true, "template": entry})
}

func ListCanvasTemplates(c *fiber.Ctx) error {
	canvas, err := ownedCanvas(c, c.Params("canvasId"))
	if err != nil {
		return err
	}

	var entries []models.TemplateEntry
	if err := database.DB.
		Where("canvas_id = ?", canvas.ID).
		Order("component_name, checklist_step").
		Find(&entries).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"templates": entries})
}

func CompleteTemplate(c *fiber.Ctx) error {
	canvas, err := ownedCanvas(c, c.Params("canvasId"))
	if err != nil {
		return err
	}

	var entry models.TemplateEntry
	if err := database.DB.Where("canvas_id = ? AND template_id = ?", canvas.ID, c.Params("templateId")).First(&entry).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Template not found"})
	}

	entry.Completed = true
	if err := database.DB.Save(&entry).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark template complete"})
	}
	return c.JSON(fiber.Map{"success": true, "template": entry})
}
