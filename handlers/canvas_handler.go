package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/startovate/lms_platform/database"
	"github.com/startovate/lms_platform/models"
	"gorm.io/gorm"
)

type CanvasRequest struct {
	ResearchTitle string `json:"researchTitle" validate:"required,min=3"`
	AuthorName    string `json:"authorName" validate:"required,min=2"`
}

// CreateCanvas seeds the fixed component checklist. One canvas per user.
func CreateCanvas(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req CanvasRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing models.Canvas
	if err := database.DB.Where("user_id = ?", id.UserID).First(&existing).Error; err == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "User already has a canvas"})
	}

	canvas := models.Canvas{
		UserID:        id.UserID,
		ResearchTitle: req.ResearchTitle,
		AuthorName:    req.AuthorName,
	}
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&canvas).Error; err != nil {
			return err
		}
		for i, name := range models.DefaultComponents {
			component := models.CanvasComponent{
				CanvasID: canvas.ID,
				Name:     name,
				Status:   models.ComponentNotStarted,
				Position: i,
			}
			if err := tx.Create(&component).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create canvas"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Canvas created successfully", "canvas": canvas})
}

func GetCanvas(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var canvas models.Canvas
	if err := database.DB.
		Preload("Components", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where("user_id = ?", id.UserID).
		First(&canvas).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Canvas not found"})
	}
	return c.JSON(canvas)
}

type ComponentStatusRequest struct {
	ComponentName string `json:"componentName" validate:"required"`
	Status        string `json:"status" validate:"required,oneof='not started' 'in progress' 'completed'"`
}

func UpdateComponentStatus(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req ComponentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var canvas models.Canvas
	if err := database.DB.Where("user_id = ?", id.UserID).First(&canvas).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Canvas not found"})
	}

	var component models.CanvasComponent
	if err := database.DB.Where("canvas_id = ? AND name = ?", canvas.ID, req.ComponentName).First(&component).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Component not found"})
	}

	component.Status = req.Status
	if err := database.DB.Save(&component).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update component"})
	}
	return c.JSON(component)
}
