package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"rentitforward/internal/domain/service"
	"rentitforward/internal/usecase"
	"rentitforward/pkg/errors"
	"rentitforward/pkg/response"
	"rentitforward/pkg/utils"
)

type BookingHandler struct {
	bookingUseCase *usecase.BookingUseCase
}

func NewBookingHandler(bookingUseCase *usecase.BookingUseCase) *BookingHandler {
	return &BookingHandler{
		bookingUseCase: bookingUseCase,
	}
}

type createBookingRequest struct {
	ListingID       string `json:"listing_id" validate:"required"`
	StartDate       string `json:"start_date" validate:"required"` // yyyy-mm-dd
	EndDate         string `json:"end_date" validate:"required"`   // yyyy-mm-dd
	DeliveryMethod  string `json:"delivery_method" validate:"required,oneof=pickup delivery meetup"`
	DeliveryAddress string `json:"delivery_address,omitempty"`
	SpecialRequests string `json:"special_requests,omitempty"`
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	startDate, err := time.Parse(service.DateKeyLayout, req.StartDate)
	if err != nil {
		return response.Error(c, errors.BadRequest("start_date must be yyyy-mm-dd", err))
	}
	endDate, err := time.Parse(service.DateKeyLayout, req.EndDate)
	if err != nil {
		return response.Error(c, errors.BadRequest("end_date must be yyyy-mm-dd", err))
	}

	renterID := c.Get("uid").(string)

	booking, err := h.bookingUseCase.CreateBooking(c.Request().Context(), renterID, usecase.CreateBookingInput{
		ListingID:       req.ListingID,
		StartDate:       startDate,
		EndDate:         endDate,
		DeliveryMethod:  req.DeliveryMethod,
		DeliveryAddress: req.DeliveryAddress,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, booking)
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	userID := c.Get("uid").(string)

	booking, err := h.bookingUseCase.GetBooking(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, booking)
}

type respondBookingRequest struct {
	Accept bool   `json:"accept"`
	Note   string `json:"note,omitempty" validate:"max=500"`
}

func (h *BookingHandler) RespondToBooking(c echo.Context) error {
	var req respondBookingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ownerID := c.Get("uid").(string)

	booking, err := h.bookingUseCase.RespondToBooking(c.Request().Context(), ownerID, c.Param("id"), req.Accept, req.Note)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, booking)
}

type cancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
	Note   string `json:"note,omitempty" validate:"max=500"`
}

func (h *BookingHandler) CancelBooking(c echo.Context) error {
	var req cancelBookingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	booking, err := h.bookingUseCase.CancelBooking(c.Request().Context(), userID, c.Param("id"), req.Reason, req.Note)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, booking)
}

func (h *BookingHandler) PickupStatus(c echo.Context) error {
	userID := c.Get("uid").(string)

	info, err := h.bookingUseCase.PickupStatus(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, info)
}

func (h *BookingHandler) ConfirmPickup(c echo.Context) error {
	renterID := c.Get("uid").(string)

	booking, err := h.bookingUseCase.ConfirmPickup(c.Request().Context(), renterID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, booking)
}

func (h *BookingHandler) ConfirmReturn(c echo.Context) error {
	userID := c.Get("uid").(string)

	booking, err := h.bookingUseCase.ConfirmReturn(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, booking)
}

func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	bookings, total, err := h.bookingUseCase.ListBookingsForRenter(
		c.Request().Context(),
		userID,
		c.QueryParam("status"),
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, bookings, total, pagination.Page, pagination.PageSize)
}

func (h *BookingHandler) ListReceivedBookings(c echo.Context) error {
	userID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	bookings, total, err := h.bookingUseCase.ListBookingsForOwner(
		c.Request().Context(),
		userID,
		c.QueryParam("status"),
		pagination.PageSize,
		pagination.Offset,
	)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Paginated(c, bookings, total, pagination.Page, pagination.PageSize)
}

// ListingCalendar is public: renters consult availability before
// requesting dates. Defaults to the next 90 days.
func (h *BookingHandler) ListingCalendar(c echo.Context) error {
	from := time.Now()
	to := from.AddDate(0, 3, 0)

	if v := c.QueryParam("from"); v != "" {
		parsed, err := time.Parse(service.DateKeyLayout, v)
		if err != nil {
			return response.Error(c, errors.BadRequest("from must be yyyy-mm-dd", err))
		}
		from = parsed
	}
	if v := c.QueryParam("to"); v != "" {
		parsed, err := time.Parse(service.DateKeyLayout, v)
		if err != nil {
			return response.Error(c, errors.BadRequest("to must be yyyy-mm-dd", err))
		}
		to = parsed
	}

	calendar, err := h.bookingUseCase.ListingCalendar(c.Request().Context(), c.Param("id"), from, to)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, calendar)
}
