package entity

import (
	"time"
)

// Review is left by either party after a completed booking.
type Review struct {
	ID         string    `json:"id" firestore:"id"`
	BookingID  string    `json:"booking_id" firestore:"bookingId"`
	ListingID  string    `json:"listing_id" firestore:"listingId"`
	ReviewerID string    `json:"reviewer_id" firestore:"reviewerId"`
	TargetID   string    `json:"target_id" firestore:"targetId"`
	Type       string    `json:"type" firestore:"type"`     // "owner_review" or "renter_review"
	Rating     int       `json:"rating" firestore:"rating"` // 1-5
	Content    string    `json:"content" firestore:"content"`
	Images     []string  `json:"images,omitempty" firestore:"images,omitempty"`
	Status     string    `json:"status" firestore:"status"` // "active", "hidden", "reported", "deleted"
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Favorite links a user to a listing they saved.
type Favorite struct {
	ID        string    `json:"id" firestore:"id"`
	UserID    string    `json:"user_id" firestore:"userId"`
	ListingID string    `json:"listing_id" firestore:"listingId"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
