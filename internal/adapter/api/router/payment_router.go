package router

import (
	"github.com/labstack/echo/v4"

	"rentitforward/internal/adapter/api/handler"
	"rentitforward/internal/adapter/api/middleware"
)

func SetupPaymentRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	paymentHandler := handler.GetPaymentHandler()

	payments := e.Group("/v1/payments")
	payments.Use(authMiddleware.Authenticate)
	payments.Use(middleware.PaymentRateLimit())
	payments.POST("/onboarding", paymentHandler.StartOnboarding)
	payments.GET("/onboarding/status", paymentHandler.OnboardingStatus)
	payments.GET("/dashboard-link", paymentHandler.DashboardLink)
	payments.POST("/bookings/:id/intent", paymentHandler.CreateBookingPayment)
	payments.POST("/bookings/:id/release", paymentHandler.ReleaseEscrow)
	payments.POST("/bookings/:id/refund-deposit", paymentHandler.RefundDeposit)
	payments.POST("/verification/documents", paymentHandler.UploadVerificationDocument)
	payments.GET("/verification/status", paymentHandler.VerificationStatus)

	// Signature-verified, so no auth middleware.
	e.POST("/v1/webhooks/stripe", paymentHandler.Webhook, middleware.WebhookRateLimit())
}
