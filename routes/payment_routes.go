package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/startovate/lms_platform/handlers"
	"github.com/startovate/lms_platform/middleware"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	payments := api.Group("/payments", middleware.Protected())
	payments.Post("/easypaisa-submit", middleware.StudentRequired(), handlers.SubmitEasypaisaPayment)
	payments.Get("/easypaisa-pending", middleware.AdminRequired(), handlers.ListPendingEasypaisaPayments)
	payments.Put("/easypaisa-approve/:paymentId", middleware.AdminRequired(), handlers.ApproveEasypaisaPayment)

	payments.Post("/create-checkout-session", middleware.StudentRequired(), handlers.CreateCheckoutSession)
	payments.Get("/session-status", middleware.StudentRequired(), handlers.GetCheckoutSessionStatus)
}
