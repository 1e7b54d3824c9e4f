package entity

import (
	"time"
)

// Booking statuses. Transitions are driven by the booking use case:
// pending -> confirmed -> active -> completed, with cancelled, disputed
// and refunded branches.
const (
	BookingStatusPending         = "pending"
	BookingStatusPaymentRequired = "payment_required"
	BookingStatusConfirmed       = "confirmed"
	BookingStatusActive          = "active"
	BookingStatusCompleted       = "completed"
	BookingStatusCancelled       = "cancelled"
	BookingStatusDisputed        = "disputed"
	BookingStatusRefunded        = "refunded"
)

// Delivery methods.
const (
	DeliveryPickup   = "pickup"
	DeliveryDelivery = "delivery"
	DeliveryMeetup   = "meetup"
)

// Cancellation reasons.
const (
	CancelUserRequested   = "user_requested"
	CancelOwnerCancelled  = "owner_cancelled"
	CancelItemUnavailable = "item_unavailable"
	CancelPaymentFailed   = "payment_failed"
	CancelPolicyViolation = "policy_violation"
	CancelDamageReported  = "damage_reported"
	CancelOther           = "other"
)

// BookingPricing is the computed price breakdown stored on a booking.
// Amounts are in dollars; conversion to gateway cents happens at the
// payment boundary.
type BookingPricing struct {
	BasePrice       float64 `json:"base_price" firestore:"basePrice"`
	TotalDays       int     `json:"total_days" firestore:"totalDays"`
	Subtotal        float64 `json:"subtotal" firestore:"subtotal"`
	Discount        float64 `json:"discount,omitempty" firestore:"discount,omitempty"`
	CleaningFee     float64 `json:"cleaning_fee,omitempty" firestore:"cleaningFee,omitempty"`
	DeliveryFee     float64 `json:"delivery_fee,omitempty" firestore:"deliveryFee,omitempty"`
	ServiceFee      float64 `json:"service_fee" firestore:"serviceFee"`
	SecurityDeposit float64 `json:"security_deposit,omitempty" firestore:"securityDeposit,omitempty"`
	Tax             float64 `json:"tax" firestore:"tax"`
	Total           float64 `json:"total" firestore:"total"`
	Currency        string  `json:"currency" firestore:"currency"`
}

type BookingDelivery struct {
	Method          string `json:"method" firestore:"method"`
	PickupAddress   string `json:"pickup_address,omitempty" firestore:"pickupAddress,omitempty"`
	DeliveryAddress string `json:"delivery_address,omitempty" firestore:"deliveryAddress,omitempty"`
	MeetupLocation  string `json:"meetup_location,omitempty" firestore:"meetupLocation,omitempty"`
	Notes           string `json:"notes,omitempty" firestore:"notes,omitempty"`
}

type Booking struct {
	ID        string `json:"id" firestore:"id"`
	ListingID string `json:"listing_id" firestore:"listingId"`
	OwnerID   string `json:"owner_id" firestore:"ownerId"`
	RenterID  string `json:"renter_id" firestore:"renterId"`
	Status    string `json:"status" firestore:"status"`

	StartDate    time.Time `json:"start_date" firestore:"startDate"`
	EndDate      time.Time `json:"end_date" firestore:"endDate"`
	DurationDays int       `json:"duration_days" firestore:"durationDays"`

	Pricing  BookingPricing  `json:"pricing" firestore:"pricing"`
	Delivery BookingDelivery `json:"delivery" firestore:"delivery"`

	// Pickup/return confirmations by the renter
	PickupConfirmed   bool       `json:"pickup_confirmed" firestore:"pickupConfirmed"`
	PickupConfirmedAt *time.Time `json:"pickup_confirmed_at,omitempty" firestore:"pickupConfirmedAt,omitempty"`
	ReturnConfirmed   bool       `json:"return_confirmed" firestore:"returnConfirmed"`
	ReturnConfirmedAt *time.Time `json:"return_confirmed_at,omitempty" firestore:"returnConfirmedAt,omitempty"`

	// Payment gateway references
	PaymentIntentID string `json:"payment_intent_id,omitempty" firestore:"paymentIntentId,omitempty"`
	PaymentStatus   string `json:"payment_status,omitempty" firestore:"paymentStatus,omitempty"`
	EscrowStatus    string `json:"escrow_status,omitempty" firestore:"escrowStatus,omitempty"` // held, released, refunded

	SpecialRequests string `json:"special_requests,omitempty" firestore:"specialRequests,omitempty"`
	RenterNotes     string `json:"renter_notes,omitempty" firestore:"renterNotes,omitempty"`
	OwnerNotes      string `json:"owner_notes,omitempty" firestore:"ownerNotes,omitempty"`

	CancellationReason string `json:"cancellation_reason,omitempty" firestore:"cancellationReason,omitempty"`
	CancellationNote   string `json:"cancellation_note,omitempty" firestore:"cancellationNote,omitempty"`

	RenterReviewID string `json:"renter_review_id,omitempty" firestore:"renterReviewId,omitempty"`
	OwnerReviewID  string `json:"owner_review_id,omitempty" firestore:"ownerReviewId,omitempty"`

	ConfirmedAt *time.Time `json:"confirmed_at,omitempty" firestore:"confirmedAt,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty" firestore:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty" firestore:"completedAt,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty" firestore:"cancelledAt,omitempty"`
	RefundedAt  *time.Time `json:"refunded_at,omitempty" firestore:"refundedAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// allowedTransitions maps a booking status to the statuses it may move
// to. Every transition is externally driven; this table only rejects
// impossible jumps.
var allowedTransitions = map[string][]string{
	BookingStatusPending:         {BookingStatusPaymentRequired, BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusPaymentRequired: {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:       {BookingStatusActive, BookingStatusCancelled, BookingStatusDisputed},
	BookingStatusActive:          {BookingStatusCompleted, BookingStatusDisputed},
	BookingStatusCompleted:       {BookingStatusDisputed},
	BookingStatusDisputed:        {BookingStatusRefunded, BookingStatusCompleted, BookingStatusCancelled},
}

// CanTransition reports whether a booking may move between two statuses.
func CanTransition(from, to string) bool {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
