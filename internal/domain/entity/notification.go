package entity

import (
	"time"
)

type NotificationType string

const (
	NotificationBookingRequest     NotificationType = "booking_request"
	NotificationBookingConfirmed   NotificationType = "booking_confirmed"
	NotificationBookingCancelled   NotificationType = "booking_cancelled"
	NotificationBookingCompleted   NotificationType = "booking_completed"
	NotificationPaymentReceived    NotificationType = "payment_received"
	NotificationPaymentFailed      NotificationType = "payment_failed"
	NotificationMessageReceived    NotificationType = "message_received"
	NotificationReviewReceived     NotificationType = "review_received"
	NotificationReviewRequest      NotificationType = "review_request"
	NotificationListingApproved    NotificationType = "listing_approved"
	NotificationListingRejected    NotificationType = "listing_rejected"
	NotificationSystemAnnouncement NotificationType = "system_announcement"
	NotificationReminder           NotificationType = "reminder"
)

// NotificationTypes lists every supported type, in priority order of the
// product flows they belong to.
var NotificationTypes = []NotificationType{
	NotificationBookingRequest,
	NotificationBookingConfirmed,
	NotificationBookingCancelled,
	NotificationBookingCompleted,
	NotificationPaymentReceived,
	NotificationPaymentFailed,
	NotificationMessageReceived,
	NotificationReviewReceived,
	NotificationReviewRequest,
	NotificationListingApproved,
	NotificationListingRejected,
	NotificationSystemAnnouncement,
	NotificationReminder,
}

func (t NotificationType) Valid() bool {
	for _, known := range NotificationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Notification is the stored in-app notification record. Delivery
// tracking fields are filled in by the push layer after send.
type Notification struct {
	ID        string           `json:"id" firestore:"id"`
	UserID    string           `json:"user_id" firestore:"userId"`
	Type      NotificationType `json:"type" firestore:"type"`
	Title     string           `json:"title" firestore:"title"`
	Message   string           `json:"message" firestore:"message"`
	Data      map[string]string `json:"data,omitempty" firestore:"data,omitempty"`
	ActionURL string           `json:"action_url,omitempty" firestore:"actionUrl,omitempty"`
	IsRead    bool             `json:"is_read" firestore:"isRead"`

	PushMessageID string     `json:"push_message_id,omitempty" firestore:"pushMessageId,omitempty"`
	SentAt        *time.Time `json:"sent_at,omitempty" firestore:"sentAt,omitempty"`
	DeliveredAt   *time.Time `json:"delivered_at,omitempty" firestore:"deliveredAt,omitempty"`
	OpenedAt      *time.Time `json:"opened_at,omitempty" firestore:"openedAt,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// DeviceToken is a push registration for one of a user's devices.
type DeviceToken struct {
	ID         string     `json:"id" firestore:"id"`
	UserID     string     `json:"user_id" firestore:"userId"`
	Token      string     `json:"token" firestore:"token"`
	Platform   string     `json:"platform" firestore:"platform"` // "web", "ios", "android"
	DeviceID   string     `json:"device_id,omitempty" firestore:"deviceId,omitempty"`
	AppVersion string     `json:"app_version,omitempty" firestore:"appVersion,omitempty"`
	IsActive   bool       `json:"is_active" firestore:"isActive"`
	CreatedAt  time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt  time.Time  `json:"updated_at" firestore:"updatedAt"`
	LastActive *time.Time `json:"last_active,omitempty" firestore:"lastActive,omitempty"`
}

// NotificationTemplate holds the fixed copy for a notification type.
// Title and Message may contain {{var}} placeholders interpolated from
// a per-type context map. Priority runs 1 (lowest) to 10; TTL is in
// seconds, zero meaning provider default.
type NotificationTemplate struct {
	Title     string
	Message   string
	ActionURL string
	Priority  int
	TTL       int
}

// NotificationTemplates maps every notification type to its copy.
var NotificationTemplates = map[NotificationType]NotificationTemplate{
	NotificationBookingRequest: {
		Title:     "New Booking Request",
		Message:   `{{renter_name}} wants to rent your "{{item_title}}" for {{duration}} days`,
		ActionURL: "/dashboard/bookings",
		Priority:  8,
		TTL:       86400,
	},
	NotificationBookingConfirmed: {
		Title:     "Booking Confirmed",
		Message:   `Your booking for "{{item_title}}" has been confirmed!`,
		ActionURL: "/bookings/{{booking_id}}",
		Priority:  9,
	},
	NotificationBookingCancelled: {
		Title:     "Booking Cancelled",
		Message:   `Your booking for "{{item_title}}" has been cancelled`,
		ActionURL: "/bookings/{{booking_id}}",
		Priority:  7,
	},
	NotificationBookingCompleted: {
		Title:     "Booking Completed",
		Message:   `Your rental of "{{item_title}}" is complete. Please leave a review!`,
		ActionURL: "/bookings/{{booking_id}}?action=review",
		Priority:  6,
	},
	NotificationPaymentReceived: {
		Title:     "Payment Received",
		Message:   `You received ${{amount}} for "{{item_title}}" rental`,
		ActionURL: "/dashboard",
		Priority:  8,
	},
	NotificationPaymentFailed: {
		Title:     "Payment Failed",
		Message:   `Payment for "{{item_title}}" rental could not be processed`,
		ActionURL: "/bookings/{{booking_id}}",
		Priority:  9,
	},
	NotificationMessageReceived: {
		Title:     "New Message",
		Message:   `{{sender_name}} sent you a message about "{{item_title}}"`,
		ActionURL: "/messages",
		Priority:  7,
		TTL:       172800,
	},
	NotificationReviewReceived: {
		Title:     "New Review",
		Message:   `{{reviewer_name}} left you a {{rating}}-star review`,
		ActionURL: "/dashboard/reviews",
		Priority:  6,
	},
	NotificationReviewRequest: {
		Title:     "Review Request",
		Message:   `How was your experience with "{{item_title}}"? Leave a review!`,
		ActionURL: "/bookings/{{booking_id}}?action=review",
		Priority:  5,
		TTL:       604800,
	},
	NotificationListingApproved: {
		Title:     "Listing Approved",
		Message:   `Your listing "{{item_title}}" has been approved and is now live!`,
		ActionURL: "/listings/{{listing_id}}",
		Priority:  7,
	},
	NotificationListingRejected: {
		Title:     "Listing Rejected",
		Message:   `Your listing "{{item_title}}" needs updates before it can be published`,
		ActionURL: "/listings/{{listing_id}}/edit",
		Priority:  8,
	},
	NotificationSystemAnnouncement: {
		Title:    "System Update",
		Message:  "{{announcement_text}}",
		Priority: 5,
	},
	NotificationReminder: {
		Title:    "Reminder",
		Message:  "{{reminder_text}}",
		Priority: 4,
		TTL:      86400,
	},
}
