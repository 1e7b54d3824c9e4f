package router

import (
	"github.com/labstack/echo/v4"

	"rentitforward/internal/adapter/api/handler"
	"rentitforward/internal/adapter/api/middleware"
)

func SetupBookingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	bookingHandler := handler.GetBookingHandler()

	bookings := e.Group("/v1/bookings")
	bookings.Use(authMiddleware.Authenticate)
	bookings.POST("", bookingHandler.CreateBooking)
	bookings.GET("", bookingHandler.ListMyBookings)
	bookings.GET("/received", bookingHandler.ListReceivedBookings)
	bookings.GET("/:id", bookingHandler.GetBooking)
	bookings.POST("/:id/respond", bookingHandler.RespondToBooking)
	bookings.POST("/:id/cancel", bookingHandler.CancelBooking)
	bookings.GET("/:id/pickup", bookingHandler.PickupStatus)
	bookings.POST("/:id/pickup", bookingHandler.ConfirmPickup)
	bookings.POST("/:id/return", bookingHandler.ConfirmReturn)
}
