package handler

import (
	"rentitforward/internal/usecase"
)

var (
	userHandler         *UserHandler
	listingHandler      *ListingHandler
	bookingHandler      *BookingHandler
	paymentHandler      *PaymentHandler
	notificationHandler *NotificationHandler
	messageHandler      *MessageHandler
	reviewHandler       *ReviewHandler
	searchHandler       *SearchHandler
)

func Setup(
	userUseCase *usecase.UserUseCase,
	listingUseCase *usecase.ListingUseCase,
	bookingUseCase *usecase.BookingUseCase,
	paymentUseCase *usecase.PaymentUseCase,
	notificationUseCase *usecase.NotificationUseCase,
	messageUseCase *usecase.MessageUseCase,
	reviewUseCase *usecase.ReviewUseCase,
	searchUseCase *usecase.SearchUseCase,
) {
	userHandler = NewUserHandler(userUseCase)
	listingHandler = NewListingHandler(listingUseCase)
	bookingHandler = NewBookingHandler(bookingUseCase)
	paymentHandler = NewPaymentHandler(paymentUseCase)
	notificationHandler = NewNotificationHandler(notificationUseCase)
	messageHandler = NewMessageHandler(messageUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
	searchHandler = NewSearchHandler(searchUseCase)
}

func GetUserHandler() *UserHandler                 { return userHandler }
func GetListingHandler() *ListingHandler           { return listingHandler }
func GetBookingHandler() *BookingHandler           { return bookingHandler }
func GetPaymentHandler() *PaymentHandler           { return paymentHandler }
func GetNotificationHandler() *NotificationHandler { return notificationHandler }
func GetMessageHandler() *MessageHandler           { return messageHandler }
func GetReviewHandler() *ReviewHandler             { return reviewHandler }
func GetSearchHandler() *SearchHandler             { return searchHandler }
