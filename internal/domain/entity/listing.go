package entity

import (
	"time"

	"rentitforward/pkg/geo"
)

// Listing lifecycle: draft -> active -> inactive/suspended/deleted.
const (
	ListingStatusDraft     = "draft"
	ListingStatusActive    = "active"
	ListingStatusInactive  = "inactive"
	ListingStatusSuspended = "suspended"
	ListingStatusDeleted   = "deleted"
)

// Item condition grades.
const (
	ConditionNew       = "new"
	ConditionLikeNew   = "like_new"
	ConditionExcellent = "excellent"
	ConditionGood      = "good"
	ConditionFair      = "fair"
	ConditionPoor      = "poor"
)

// ListingCategories is the canonical category taxonomy. The legacy
// search-oriented taxonomy was folded into this one; search keywords
// live with the suggestion service.
var ListingCategories = []string{
	"tools_diy",
	"electronics",
	"cameras",
	"sports_outdoors",
	"event_party",
	"instruments",
	"automotive",
	"home_garden",
	"appliances",
	"other",
}

type ListingImage struct {
	ID         string    `json:"id" firestore:"id"`
	URL        string    `json:"url" firestore:"url"`
	Thumbnail  string    `json:"thumbnail,omitempty" firestore:"thumbnail,omitempty"`
	Alt        string    `json:"alt,omitempty" firestore:"alt,omitempty"`
	Order      int       `json:"order" firestore:"order"`
	UploadedAt time.Time `json:"uploaded_at" firestore:"uploadedAt"`
}

type Pricing struct {
	BasePrice       float64 `json:"base_price" firestore:"basePrice"`
	Currency        string  `json:"currency" firestore:"currency"`
	PricingType     string  `json:"pricing_type" firestore:"pricingType"` // daily, weekly, monthly, hourly
	WeeklyDiscount  float64 `json:"weekly_discount,omitempty" firestore:"weeklyDiscount,omitempty"`
	MonthlyDiscount float64 `json:"monthly_discount,omitempty" firestore:"monthlyDiscount,omitempty"`
	SecurityDeposit float64 `json:"security_deposit,omitempty" firestore:"securityDeposit,omitempty"`
	CleaningFee     float64 `json:"cleaning_fee,omitempty" firestore:"cleaningFee,omitempty"`
	DeliveryFee     float64 `json:"delivery_fee,omitempty" firestore:"deliveryFee,omitempty"`
	PickupFee       float64 `json:"pickup_fee,omitempty" firestore:"pickupFee,omitempty"`
}

type Availability struct {
	StartDate           time.Time   `json:"start_date" firestore:"startDate"`
	EndDate             time.Time   `json:"end_date" firestore:"endDate"`
	UnavailableDates    []string    `json:"unavailable_dates,omitempty" firestore:"unavailableDates,omitempty"` // yyyy-mm-dd
	MinimumRentalPeriod int         `json:"minimum_rental_period" firestore:"minimumRentalPeriod"`
	MaximumRentalPeriod int         `json:"maximum_rental_period,omitempty" firestore:"maximumRentalPeriod,omitempty"`
	AdvanceBookingDays  int         `json:"advance_booking_days" firestore:"advanceBookingDays"`
}

type ListingLocation struct {
	Address     string          `json:"address" firestore:"address"`
	City        string          `json:"city" firestore:"city"`
	State       string          `json:"state" firestore:"state"`
	Postcode    string          `json:"postcode" firestore:"postcode"`
	Country     string          `json:"country" firestore:"country"`
	Coordinates geo.Coordinates `json:"coordinates" firestore:"coordinates"`
}

type Listing struct {
	ID          string `json:"id" firestore:"id"`
	OwnerID     string `json:"owner_id" firestore:"ownerId"`
	Title       string `json:"title" firestore:"title"`
	Description string `json:"description" firestore:"description"`
	Category    string `json:"category" firestore:"category"`
	Subcategory string `json:"subcategory,omitempty" firestore:"subcategory,omitempty"`
	Condition   string `json:"condition" firestore:"condition"`
	Brand       string `json:"brand,omitempty" firestore:"brand,omitempty"`
	Model       string `json:"model,omitempty" firestore:"model,omitempty"`
	Year        int    `json:"year,omitempty" firestore:"year,omitempty"`

	Specifications map[string]string `json:"specifications,omitempty" firestore:"specifications,omitempty"`
	Images         []ListingImage    `json:"images" firestore:"images"`
	Pricing        Pricing           `json:"pricing" firestore:"pricing"`
	Availability   Availability      `json:"availability" firestore:"availability"`
	Location       ListingLocation   `json:"location" firestore:"location"`

	Status string `json:"status" firestore:"status"`

	Views         int     `json:"views" firestore:"views"`
	FavoriteCount int     `json:"favorite_count" firestore:"favoriteCount"`
	BookingCount  int     `json:"booking_count" firestore:"bookingCount"`
	Rating        float64 `json:"rating" firestore:"rating"`
	ReviewCount   int     `json:"review_count" firestore:"reviewCount"`

	CreatedAt time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time  `json:"updated_at" firestore:"updatedAt"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt,omitempty"`
}

// ValidCategory reports whether the category is part of the taxonomy.
func ValidCategory(category string) bool {
	for _, c := range ListingCategories {
		if c == category {
			return true
		}
	}
	return false
}
