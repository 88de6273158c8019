package handlers

import (
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/gofiber/fiber/v2"
	config "github.com/startovate/lms_platform/configs"
	"github.com/startovate/lms_platform/database"
	"github.com/startovate/lms_platform/models"
)

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}

type assistantResponse struct {
	Reply string `json:"reply"`
	Error string `json:"error"`
}

func assistantClient() *resty.Client {
	return resty.New().
		SetBaseURL(config.Config("CHATBOT_SERVICE_URL")).
		SetTimeout(30 * time.Second)
}

// SendChatMessage proxies the message to the research-assistant service with
// the user's canvas title as context, and stores both turns.
func SendChatMessage(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var researchTitle string
	var canvas models.Canvas
	if err := database.DB.Where("user_id = ?", id.UserID).First(&canvas).Error; err == nil {
		researchTitle = canvas.ResearchTitle
	}

	var out assistantResponse
	resp, err := assistantClient().R().
		SetBody(fiber.Map{
			"user_id":        id.UserID.String(),
			"message":        req.Message,
			"research_title": researchTitle,
		}).
		SetResult(&out).
		SetError(&out).
		Post("/chat")
	if err != nil {
		log.Printf("🔥 Assistant service call failed: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Assistant service unavailable"})
	}
	if resp.IsError() {
		log.Printf("🔥 Assistant service returned status %s: %s", resp.Status(), out.Error)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Assistant service unavailable"})
	}

	// History is best effort: a failed write must not eat the reply.
	if err := database.DB.Create(&models.ChatMessage{UserID: id.UserID, Sender: "user", Message: req.Message}).Error; err != nil {
		log.Printf("🔥 Failed to store chat message for user %s: %v", id.UserID, err)
	}
	if err := database.DB.Create(&models.ChatMessage{UserID: id.UserID, Sender: "assistant", Message: out.Reply}).Error; err != nil {
		log.Printf("🔥 Failed to store assistant reply for user %s: %v", id.UserID, err)
	}

	return c.JSON(fiber.Map{"reply": out.Reply})
}

func GetChatHistory(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	var history []models.ChatMessage
	if err := database.DB.Where("user_id = ?", id.UserID).Order("created_at").Find(&history).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"history": history})
}

func ClearChatHistory(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}

	if err := database.DB.Where("user_id = ?", id.UserID).Delete(&models.ChatMessage{}).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to clear history"})
	}
	return c.JSON(fiber.Map{"message": "Chat history cleared"})
}

func CheckChatbotHealth(c *fiber.Ctx) error {
	resp, err := assistantClient().R().Get("/health")
	if err != nil || resp.IsError() {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"status": "down"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
