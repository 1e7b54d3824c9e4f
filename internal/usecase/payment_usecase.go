package usecase

import (
	"context"
	"time"

	"rentitforward/internal/domain/entity"
	"rentitforward/internal/domain/repository"
	"rentitforward/internal/domain/service"
	"rentitforward/pkg/errors"
	"rentitforward/pkg/logger"
)

type PaymentUseCase struct {
	gateway     service.EscrowGateway
	bookingRepo repository.BookingRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	notifier    Notifier
	platformFee float64 // percent withheld from owner payouts
}

func NewPaymentUseCase(
	gateway service.EscrowGateway,
	bookingRepo repository.BookingRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	platformFeePercent float64,
) *PaymentUseCase {
	if platformFeePercent <= 0 {
		platformFeePercent = service.DefaultPlatformFeePercent
	}
	return &PaymentUseCase{
		gateway:     gateway,
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		platformFee: platformFeePercent,
	}
}

type OnboardingLinkInput struct {
	RefreshURL string `json:"refresh_url" validate:"required,url"`
	ReturnURL  string `json:"return_url" validate:"required,url"`
}

// StartOnboarding creates the user's connected account on first use and
// returns a hosted onboarding link.
func (uc *PaymentUseCase) StartOnboarding(ctx context.Context, userID string, input OnboardingLinkInput) (string, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if user.StripeAccountID == "" {
		accountID, err := uc.gateway.CreateConnectedAccount(ctx, user.Email, "AU")
		if err != nil {
			return "", err
		}
		user.StripeAccountID = accountID
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return "", err
		}
		logger.Info("Connected account %s created for user %s", accountID, userID)
	}

	return uc.gateway.CreateAccountLink(ctx, user.StripeAccountID, input.RefreshURL, input.ReturnURL)
}

func (uc *PaymentUseCase) OnboardingStatus(ctx context.Context, userID string) (*service.AccountStatus, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.StripeAccountID == "" {
		return nil, errors.NotFound("Connected account", nil)
	}
	return uc.gateway.GetAccountStatus(ctx, user.StripeAccountID)
}

func (uc *PaymentUseCase) DashboardLink(ctx context.Context, userID string) (string, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if user.StripeAccountID == "" {
		return "", errors.NotFound("Connected account", nil)
	}
	return uc.gateway.CreateLoginLink(ctx, user.StripeAccountID)
}

// CreateBookingPayment opens the escrow charge for an accepted booking:
// rent plus security deposit in one intent, with the platform fee
// withheld from the owner's transfer.
func (uc *PaymentUseCase) CreateBookingPayment(ctx context.Context, renterID, bookingID string) (*service.PaymentIntentResult, error) {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RenterID != renterID {
		return nil, errors.Forbidden("Only the renter can pay for this booking", nil)
	}
	if booking.Status != entity.BookingStatusPaymentRequired {
		return nil, errors.BadRequest("Booking is not awaiting payment", nil)
	}

	owner, err := uc.userRepo.GetByID(ctx, booking.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner.StripeAccountID == "" {
		return nil, errors.BadRequest("The owner has not completed payment onboarding", nil)
	}
	status, err := uc.gateway.GetAccountStatus(ctx, owner.StripeAccountID)
	if err != nil {
		return nil, err
	}
	if !status.ChargesEnabled {
		return nil, errors.BadRequest("The owner's payment account cannot accept charges yet", nil)
	}

	renter, err := uc.userRepo.GetByID(ctx, renterID)
	if err != nil {
		return nil, err
	}
	if renter.StripeCustomerID == "" {
		customerID, err := uc.gateway.CreateCustomer(ctx, renter.Email, renter.Name(), renter.Phone, map[string]string{
			"user_id": renter.ID,
		})
		if err != nil {
			return nil, err
		}
		renter.StripeCustomerID = customerID
		if err := uc.userRepo.Update(ctx, renter); err != nil {
			return nil, err
		}
	}

	listingTitle := booking.ListingID
	if listing, lerr := uc.listingRepo.GetByID(ctx, booking.ListingID); lerr == nil {
		listingTitle = listing.Title
	}

	rentAmount := booking.Pricing.Total - booking.Pricing.SecurityDeposit
	platformFee := service.PlatformFee(rentAmount, uc.platformFee)

	result, err := uc.gateway.CreateEscrowPayment(ctx, service.EscrowPaymentParams{
		Amount:             service.DollarsToCents(rentAmount),
		DepositAmount:      service.DollarsToCents(booking.Pricing.SecurityDeposit),
		Currency:           booking.Pricing.Currency,
		ApplicationFee:     service.DollarsToCents(platformFee),
		ConnectedAccountID: owner.StripeAccountID,
		CustomerID:         renter.StripeCustomerID,
		BookingID:          booking.ID,
		ListingTitle:       listingTitle,
	})
	if err != nil {
		return nil, err
	}

	booking.PaymentIntentID = result.PaymentIntentID
	booking.PaymentStatus = "pending"
	if err := uc.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}
	return result, nil
}

// HandleWebhook verifies and applies a payment-provider event. Unhandled
// event types are acknowledged and ignored.
func (uc *PaymentUseCase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := uc.gateway.ConstructWebhookEvent(payload, signature)
	if err != nil {
		return err
	}

	switch event.Type {
	case "payment_intent.succeeded":
		return uc.applyPaymentSucceeded(ctx, event)
	case "payment_intent.payment_failed":
		return uc.applyPaymentFailed(ctx, event)
	case "charge.refunded":
		return uc.applyRefund(ctx, event)
	default:
		logger.Debug("Ignoring webhook event %s (%s)", event.ID, event.Type)
		return nil
	}
}

func (uc *PaymentUseCase) applyPaymentSucceeded(ctx context.Context, event *service.WebhookEvent) error {
	booking, err := uc.bookingRepo.GetByPaymentIntentID(ctx, event.ObjectID)
	if err != nil {
		logger.LogWebhookError(event.Type, event.ObjectID, err)
		return nil // not ours; acknowledge
	}
	if booking.Status != entity.BookingStatusPaymentRequired {
		return nil // replayed event
	}

	now := time.Now()
	booking.Status = entity.BookingStatusConfirmed
	booking.PaymentStatus = "succeeded"
	booking.EscrowStatus = "held"
	booking.ConfirmedAt = &now
	if err := uc.bookingRepo.Update(ctx, booking); err != nil {
		return err
	}

	itemTitle := booking.ListingID
	if listing, lerr := uc.listingRepo.GetByID(ctx, booking.ListingID); lerr == nil {
		itemTitle = listing.Title
	}
	uc.notifier.Notify(ctx, booking.OwnerID, entity.NotificationPaymentReceived, map[string]interface{}{
		"amount":     booking.Pricing.Total - booking.Pricing.SecurityDeposit,
		"item_title": itemTitle,
		"booking_id": booking.ID,
	})
	uc.notifier.Notify(ctx, booking.RenterID, entity.NotificationBookingConfirmed, map[string]interface{}{
		"item_title": itemTitle,
		"booking_id": booking.ID,
	})

	logger.Info("Payment succeeded for booking %s", booking.ID)
	return nil
}

func (uc *PaymentUseCase) applyPaymentFailed(ctx context.Context, event *service.WebhookEvent) error {
	booking, err := uc.bookingRepo.GetByPaymentIntentID(ctx, event.ObjectID)
	if err != nil {
		logger.LogWebhookError(event.Type, event.ObjectID, err)
		return nil
	}

	booking.PaymentStatus = "failed"
	if err := uc.bookingRepo.Update(ctx, booking); err != nil {
		return err
	}

	itemTitle := booking.ListingID
	if listing, lerr := uc.listingRepo.GetByID(ctx, booking.ListingID); lerr == nil {
		itemTitle = listing.Title
	}
	uc.notifier.Notify(ctx, booking.RenterID, entity.NotificationPaymentFailed, map[string]interface{}{
		"item_title": itemTitle,
		"booking_id": booking.ID,
	})
	return nil
}

func (uc *PaymentUseCase) applyRefund(ctx context.Context, event *service.WebhookEvent) error {
	booking, err := uc.bookingRepo.GetByPaymentIntentID(ctx, event.ObjectID)
	if err != nil {
		logger.LogWebhookError(event.Type, event.ObjectID, err)
		return nil
	}

	now := time.Now()
	booking.PaymentStatus = "refunded"
	booking.RefundedAt = &now
	if entity.CanTransition(booking.Status, entity.BookingStatusRefunded) {
		booking.Status = entity.BookingStatusRefunded
	}
	return uc.bookingRepo.Update(ctx, booking)
}

// ReleaseEscrow pays the owner out after a completed rental. The
// platform fee was already withheld at charge time; the deposit stays
// with the renter's refund.
func (uc *PaymentUseCase) ReleaseEscrow(ctx context.Context, bookingID string) error {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.Status != entity.BookingStatusCompleted {
		return errors.BadRequest("Escrow is released after the rental completes", nil)
	}
	if booking.EscrowStatus != "held" {
		return errors.BadRequest("Escrow has already been released", nil)
	}

	rentAmount := booking.Pricing.Total - booking.Pricing.SecurityDeposit
	payout := rentAmount - service.PlatformFee(rentAmount, uc.platformFee)

	transferID, err := uc.gateway.ReleaseEscrowPayment(ctx, booking.PaymentIntentID, service.DollarsToCents(payout))
	if err != nil {
		return err
	}

	booking.EscrowStatus = "released"
	if err := uc.bookingRepo.Update(ctx, booking); err != nil {
		return err
	}
	logger.Info("Escrow released for booking %s (transfer %s)", booking.ID, transferID)
	return nil
}

// RefundDeposit returns the security deposit to the renter, in full or
// partially when damage was agreed.
func (uc *PaymentUseCase) RefundDeposit(ctx context.Context, bookingID string, amount float64, reason string) error {
	booking, err := uc.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.Pricing.SecurityDeposit <= 0 {
		return errors.BadRequest("Booking has no security deposit", nil)
	}
	if amount <= 0 || amount > booking.Pricing.SecurityDeposit {
		amount = booking.Pricing.SecurityDeposit
	}

	refundID, err := uc.gateway.RefundDeposit(ctx, booking.PaymentIntentID, service.DollarsToCents(amount), reason)
	if err != nil {
		return err
	}
	logger.Info("Deposit refund %s issued for booking %s", refundID, booking.ID)
	return nil
}

type VerificationUploadInput struct {
	DocumentType string `json:"document_type" validate:"required,oneof=identity_document address_document"`
	Front        []byte `json:"-"`
	Back         []byte `json:"-"`
}

func (uc *PaymentUseCase) UploadVerificationDocument(ctx context.Context, userID string, input VerificationUploadInput) (*service.DocumentUploadResult, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.StripeAccountID == "" {
		return nil, errors.BadRequest("Complete payment onboarding before uploading documents", nil)
	}
	if len(input.Front) == 0 {
		return nil, errors.BadRequest("Document front image is required", nil)
	}

	result, err := uc.gateway.UploadVerificationDocument(ctx, user.StripeAccountID, input.DocumentType, input.Front, input.Back)
	if err != nil {
		return nil, err
	}

	user.VerificationStatus = entity.VerificationPending
	if err := uc.userRepo.Update(ctx, user); err != nil {
		logger.Warn("Failed to record verification upload for %s: %v", userID, err)
	}
	return result, nil
}

func (uc *PaymentUseCase) VerificationStatus(ctx context.Context, userID string) (*service.VerificationStatus, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.StripeAccountID == "" {
		return &service.VerificationStatus{OverallStatus: entity.VerificationUnverified}, nil
	}

	status, err := uc.gateway.GetVerificationStatus(ctx, user.StripeAccountID)
	if err != nil {
		return nil, err
	}

	// Keep the profile's verification flag in sync with the provider.
	if status.OverallStatus == "verified" && user.VerificationStatus != entity.VerificationVerified {
		user.VerificationStatus = entity.VerificationVerified
		if err := uc.userRepo.Update(ctx, user); err != nil {
			logger.Warn("Failed to sync verification status for %s: %v", userID, err)
		}
	}
	return status, nil
}
