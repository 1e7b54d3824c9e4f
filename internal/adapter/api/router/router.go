package router

import (
	"github.com/labstack/echo/v4"

	"rentitforward/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	SetupUserRouter(e, authMiddleware)
	SetupListingRouter(e, authMiddleware)
	SetupBookingRouter(e, authMiddleware)
	SetupPaymentRouter(e, authMiddleware)
	SetupNotificationRouter(e, authMiddleware, adminMiddleware)
	SetupMessageRouter(e, authMiddleware)
	SetupReviewRouter(e, authMiddleware)
	SetupSearchRouter(e)
	SetupFileRouter(e, authMiddleware)
}
