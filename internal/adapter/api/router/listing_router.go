package router

import (
	"github.com/labstack/echo/v4"

	"rentitforward/internal/adapter/api/handler"
	"rentitforward/internal/adapter/api/middleware"
)

func SetupListingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	listingHandler := handler.GetListingHandler()

	listings := e.Group("/v1/listings")
	listings.GET("", listingHandler.ListListings)
	listings.GET("/search", listingHandler.SearchListings, middleware.SearchRateLimit())
	listings.GET("/nearby", listingHandler.NearbyListings)
	listings.GET("/:id", listingHandler.GetListing, authMiddleware.OptionalAuthenticate)
	listings.GET("/:id/reviews", handler.GetReviewHandler().ListListingReviews)
	listings.GET("/:id/calendar", handler.GetBookingHandler().ListingCalendar)

	myListings := e.Group("/v1/my-listings")
	myListings.Use(authMiddleware.Authenticate)
	myListings.GET("", listingHandler.ListMyListings)
	myListings.POST("", listingHandler.CreateListing)
	myListings.PUT("/:id", listingHandler.UpdateListing)
	myListings.DELETE("/:id", listingHandler.DeleteListing)

	favorites := e.Group("/v1/favorites")
	favorites.Use(authMiddleware.Authenticate)
	favorites.GET("", listingHandler.ListFavorites)
	favorites.POST("/:id", listingHandler.FavoriteListing)
	favorites.DELETE("/:id", listingHandler.UnfavoriteListing)
}
