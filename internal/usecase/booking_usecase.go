package usecase

import (
	"context"
	"strings"
	"time"

	"rentitforward/internal/domain/entity"
	"rentitforward/internal/domain/repository"
	"rentitforward/internal/domain/service"
	"rentitforward/pkg/errors"
	"rentitforward/pkg/logger"
)

// Notifier decouples booking flows from notification delivery. The
// notification use case satisfies it; delivery failures never fail the
// booking operation that triggered them.
type Notifier interface {
	Notify(ctx context.Context, userID string, notificationType entity.NotificationType, data map[string]interface{})
}

type BookingUseCase struct {
	bookingRepo repository.BookingRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	notifier    Notifier
}

func NewBookingUseCase(
	bookingRepo repository.BookingRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) *BookingUseCase {
	return &BookingUseCase{
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

type CreateBookingInput struct {
	ListingID       string    `json:"listing_id" validate:"required"`
	StartDate       time.Time `json:"start_date" validate:"required"`
	EndDate         time.Time `json:"end_date" validate:"required"`
	DeliveryMethod  string    `json:"delivery_method" validate:"required,oneof=pickup delivery meetup"`
	DeliveryAddress string    `json:"delivery_address,omitempty"`
	SpecialRequests string    `json:"special_requests,omitempty"`
}

func (uc *BookingUseCase) CreateBooking(ctx context.Context, renterID string, input CreateBookingInput) (*entity.Booking, error) {
	listing, err := uc.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.Status != entity.ListingStatusActive || listing.DeletedAt != nil {
		return nil, errors.BadRequest("Listing is not available for booking", nil)
	}
	if listing.OwnerID == renterID {
		return nil, errors.BadRequest("You cannot book your own listing", nil)
	}

	if issues := service.ValidateDateRange(input.StartDate, input.EndDate, time.Now()); len(issues) > 0 {
		return nil, errors.BadRequest(strings.Join(issues, "; "), nil)
	}

	days := service.CalculateDuration(input.StartDate, input.EndDate)
	if listing.Availability.MinimumRentalPeriod > 0 && days < listing.Availability.MinimumRentalPeriod {
		return nil, errors.BadRequest("Booking is shorter than the minimum rental period", nil)
	}
	if listing.Availability.MaximumRentalPeriod > 0 && days > listing.Availability.MaximumRentalPeriod {
		return nil, errors.BadRequest("Booking exceeds the maximum rental period", nil)
	}

	overlapping, err := uc.bookingRepo.ListOverlapping(ctx, listing.ID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}
	for _, other := range overlapping {
		switch other.Status {
		case entity.BookingStatusConfirmed, entity.BookingStatusActive, entity.BookingStatusPaymentRequired:
			return nil, errors.Conflict("Listing is already booked for those dates")
		}
	}

	// Owner-blocked dates count as conflicts too.
	requested := service.GenerateDateRange(input.StartDate, input.EndDate)
	blocked := make(map[string]bool, len(listing.Availability.UnavailableDates))
	for _, d := range listing.Availability.UnavailableDates {
		blocked[d] = true
	}
	for _, d := range requested {
		if blocked[d] {
			return nil, errors.Conflict("Listing is unavailable on " + d)
		}
	}

	deliveryFee := 0.0
	if input.DeliveryMethod == entity.DeliveryDelivery {
		deliveryFee = listing.Pricing.DeliveryFee
	}
	breakdown := service.CalculateBookingPricing(listing.Pricing, days, deliveryFee)

	booking := &entity.Booking{
		ListingID:    listing.ID,
		OwnerID:      listing.OwnerID,
		RenterID:     renterID,
		Status:       entity.BookingStatusPending,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		DurationDays: days,
		Pricing:      breakdown.ToBookingPricing(),
		Delivery: entity.BookingDelivery{
			Method:          input.DeliveryMethod,
			DeliveryAddress: input.DeliveryAddress,
			PickupAddress:   listing.Location.Address,
		},
		SpecialRequests: input.SpecialRequests,
	}

	if err := uc.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	renter, err := uc.userRepo.GetByID(ctx, renterID)
	renterName := renterID
	if err == nil {
		renterName = renter.Name()
	}
	uc.notifier.Notify(ctx, listing.OwnerID, entity.NotificationBookingRequest, map[string]interface{}{
		"renter_name": renterName,
		"item_title":  listing.Title,
		"duration":    days,
		"booking_id":  booking.ID,
	})

	logger.Info("Booking created: %s for listing %s", booking.ID, listing.ID)
	return booking, nil
}

func (uc *BookingUseCase) GetBooking(ctx context.Context, userID, bookingID string) (*entity.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != userID && booking.OwnerID != userID {
		return nil, errors.Forbidden("You are not part of this booking", nil)
	}
	return booking, nil
}

// RespondToBooking is the owner's accept/decline of a pending request.
// Accepting moves the booking to payment_required; payment confirmation
// is webhook-driven.
func (uc *BookingUseCase) RespondToBooking(ctx context.Context, ownerID, bookingID string, accept bool, note string) (*entity.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.OwnerID != ownerID {
		return nil, errors.Forbidden("Only the owner can respond to this booking", nil)
	}
	if booking.Status != entity.BookingStatusPending {
		return nil, errors.BadRequest("Booking is no longer pending", nil)
	}

	listing, listingErr := uc.listingRepo.GetByID(ctx, booking.ListingID)
	itemTitle := booking.ListingID
	if listingErr == nil {
		itemTitle = listing.Title
	}

	if accept {
		booking.Status = entity.BookingStatusPaymentRequired
		booking.OwnerNotes = note
		if err := uc.bookingRepo.Update(ctx, booking); err != nil {
			return nil, err
		}
		uc.notifier.Notify(ctx, booking.RenterID, entity.NotificationBookingConfirmed, map[string]interface{}{
			"item_title": itemTitle,
			"booking_id": booking.ID,
		})
	} else {
		booking.Status = entity.BookingStatusCancelled
		booking.CancellationReason = entity.CancelOwnerCancelled
		booking.CancellationNote = note
		now := time.Now()
		booking.CancelledAt = &now
		if err := uc.bookingRepo.Update(ctx, booking); err != nil {
			return nil, err
		}
		uc.notifier.Notify(ctx, booking.RenterID, entity.NotificationBookingCancelled, map[string]interface{}{
			"item_title": itemTitle,
			"booking_id": booking.ID,
		})
	}
	return booking, nil
}

func (uc *BookingUseCase) CancelBooking(ctx context.Context, userID, bookingID, reason, note string) (*entity.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != userID && booking.OwnerID != userID {
		return nil, errors.Forbidden("You are not part of this booking", nil)
	}
	if !entity.CanTransition(booking.Status, entity.BookingStatusCancelled) {
		return nil, errors.BadRequest("Booking can no longer be cancelled", nil)
	}

	if reason == "" {
		if userID == booking.OwnerID {
			reason = entity.CancelOwnerCancelled
		} else {
			reason = entity.CancelUserRequested
		}
	}
	booking.Status = entity.BookingStatusCancelled
	booking.CancellationReason = reason
	booking.CancellationNote = note
	now := time.Now()
	booking.CancelledAt = &now

	if err := uc.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	counterparty := booking.OwnerID
	if userID == booking.OwnerID {
		counterparty = booking.RenterID
	}
	itemTitle := booking.ListingID
	if listing, err := uc.listingRepo.GetByID(ctx, booking.ListingID); err == nil {
		itemTitle = listing.Title
	}
	uc.notifier.Notify(ctx, counterparty, entity.NotificationBookingCancelled, map[string]interface{}{
		"item_title": itemTitle,
		"booking_id": booking.ID,
	})
	return booking, nil
}

// PickupStatus returns the pickup/return window state for a booking as
// seen right now.
func (uc *BookingUseCase) PickupStatus(ctx context.Context, userID, bookingID string) (*service.PickupInfo, error) {
	booking, err := uc.GetBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	info := service.GetPickupInfo(booking, time.Now())
	return &info, nil
}

// ConfirmPickup marks the handover done. Only the renter confirms, only
// inside the pickup window, and only once payment has been taken.
func (uc *BookingUseCase) ConfirmPickup(ctx context.Context, renterID, bookingID string) (*entity.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != renterID {
		return nil, errors.Forbidden("Only the renter can confirm pickup", nil)
	}

	info := service.GetPickupInfo(booking, time.Now())
	if booking.Status == entity.BookingStatusPaymentRequired {
		return nil, errors.BadRequest("Complete payment before confirming pickup", nil)
	}
	if info.HasBeenPickedUp {
		return nil, errors.BadRequest("Pickup has already been confirmed", nil)
	}
	if !info.IsPickupAvailable {
		return nil, errors.BadRequest("Pickup window is not open", nil)
	}

	now := time.Now()
	booking.Status = entity.BookingStatusActive
	booking.PickupConfirmed = true
	booking.PickupConfirmedAt = &now
	booking.StartedAt = &now

	if err := uc.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	itemTitle := booking.ListingID
	if listing, lerr := uc.listingRepo.GetByID(ctx, booking.ListingID); lerr == nil {
		itemTitle = listing.Title
		listing.BookingCount++
		if uerr := uc.listingRepo.Update(ctx, listing); uerr != nil {
			logger.Warn("Failed to bump booking count for %s: %v", listing.ID, uerr)
		}
	}
	uc.notifier.Notify(ctx, booking.OwnerID, entity.NotificationReminder, map[string]interface{}{
		"reminder_text": renterDisplayName(ctx, uc.userRepo, booking.RenterID) + ` picked up "` + itemTitle + `"`,
		"booking_id":    booking.ID,
	})

	logger.Info("Pickup confirmed for booking %s", booking.ID)
	return booking, nil
}

// ConfirmReturn completes the rental. Either party may confirm once the
// item has been picked up; escrow release follows separately.
func (uc *BookingUseCase) ConfirmReturn(ctx context.Context, userID, bookingID string) (*entity.Booking, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != userID && booking.OwnerID != userID {
		return nil, errors.Forbidden("You are not part of this booking", nil)
	}

	// Late returns are still confirmable after the window closes.
	info := service.GetPickupInfo(booking, time.Now())
	if !info.HasBeenPickedUp {
		return nil, errors.BadRequest("Return cannot be confirmed before pickup", nil)
	}
	if booking.ReturnConfirmed {
		return nil, errors.BadRequest("Return has already been confirmed", nil)
	}

	now := time.Now()
	booking.Status = entity.BookingStatusCompleted
	booking.ReturnConfirmed = true
	booking.ReturnConfirmedAt = &now
	booking.CompletedAt = &now

	if err := uc.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	itemTitle := booking.ListingID
	if listing, lerr := uc.listingRepo.GetByID(ctx, booking.ListingID); lerr == nil {
		itemTitle = listing.Title
	}
	for _, participant := range []string{booking.RenterID, booking.OwnerID} {
		uc.notifier.Notify(ctx, participant, entity.NotificationBookingCompleted, map[string]interface{}{
			"item_title": itemTitle,
			"booking_id": booking.ID,
		})
	}

	logger.Info("Return confirmed for booking %s", booking.ID)
	return booking, nil
}

func (uc *BookingUseCase) ListBookingsForRenter(ctx context.Context, renterID, status string, limit, offset int) ([]*entity.Booking, int64, error) {
	return uc.bookingRepo.ListByRenterID(ctx, renterID, status, limit, offset)
}

func (uc *BookingUseCase) ListBookingsForOwner(ctx context.Context, ownerID, status string, limit, offset int) ([]*entity.Booking, int64, error) {
	return uc.bookingRepo.ListByOwnerID(ctx, ownerID, status, limit, offset)
}

// ListingCalendar merges confirmed bookings and owner-blocked dates
// into a per-day availability view for the requested window.
func (uc *BookingUseCase) ListingCalendar(ctx context.Context, listingID string, from, to time.Time) ([]service.DayAvailability, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	bookings, err := uc.bookingRepo.ListByListingID(ctx, listingID, []string{
		entity.BookingStatusConfirmed,
		entity.BookingStatusActive,
		entity.BookingStatusPaymentRequired,
	})
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]service.DayAvailability)
	for _, booking := range bookings {
		status := service.DateBooked
		if booking.Status == entity.BookingStatusPaymentRequired {
			status = service.DateTentative
		}
		for _, day := range service.BookingBlocks(booking.StartDate, booking.EndDate, booking.ID, status) {
			byDate[day.Date] = day
		}
	}
	for _, date := range listing.Availability.UnavailableDates {
		if _, taken := byDate[date]; !taken {
			byDate[date] = service.DayAvailability{
				Date:          date,
				Status:        service.DateBlocked,
				BlockedReason: "owner_blocked",
			}
		}
	}

	var calendar []service.DayAvailability
	for _, date := range service.GenerateDateRange(from, to) {
		if day, ok := byDate[date]; ok {
			calendar = append(calendar, day)
		} else {
			calendar = append(calendar, service.DayAvailability{
				Date:   date,
				Status: service.DateAvailable,
			})
		}
	}
	return calendar, nil
}

func renterDisplayName(ctx context.Context, users repository.UserRepository, renterID string) string {
	renter, err := users.GetByID(ctx, renterID)
	if err != nil {
		return "The renter"
	}
	return renter.Name()
}
