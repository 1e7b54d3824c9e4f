package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"rentitforward/internal/usecase"
	"rentitforward/pkg/geo"
	"rentitforward/pkg/response"
	"rentitforward/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
	}
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req usecase.CreateListingInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ownerID := c.Get("uid").(string)

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), ownerID, req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, listing)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	var req usecase.UpdateListingInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ownerID := c.Get("uid").(string)

	listing, err := h.listingUseCase.UpdateListing(c.Request().Context(), ownerID, c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	viewerID, _ := c.Get("uid").(string)

	listing, err := h.listingUseCase.GetListing(c.Request().Context(), c.Param("id"), viewerID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	if err := h.listingUseCase.DeleteListing(c.Request().Context(), ownerID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "deleted"})
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.ListListings(c.Request().Context(), usecase.ListListingsInput{
		Category: c.QueryParam("category"),
		Sort:     c.QueryParam("sort"),
		Limit:    pagination.PageSize,
		Offset:   pagination.Offset,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) SearchListings(c echo.Context) error {
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.SearchListings(
		c.Request().Context(),
		c.QueryParam("q"),
		c.QueryParam("category"),
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) NearbyListings(c echo.Context) error {
	lat, latErr := strconv.ParseFloat(c.QueryParam("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if latErr != nil || lngErr != nil {
		return response.Error(c, echo.NewHTTPError(400, "lat and lng are required"))
	}
	radius, _ := strconv.ParseFloat(c.QueryParam("radius"), 64)
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	listings, err := h.listingUseCase.NearbyListings(
		c.Request().Context(),
		geo.Coordinates{Latitude: lat, Longitude: lng},
		radius,
		limit,
	)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, listings)
}

func (h *ListingHandler) ListMyListings(c echo.Context) error {
	ownerID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.ListByOwner(
		c.Request().Context(),
		ownerID,
		c.QueryParam("status"),
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) FavoriteListing(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.listingUseCase.FavoriteListing(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "saved"})
}

func (h *ListingHandler) UnfavoriteListing(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.listingUseCase.UnfavoriteListing(c.Request().Context(), userID, c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "removed"})
}

func (h *ListingHandler) ListFavorites(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	listings, total, err := h.listingUseCase.ListFavorites(c.Request().Context(), userID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, listings, total, pagination.Page, pagination.PageSize)
}
