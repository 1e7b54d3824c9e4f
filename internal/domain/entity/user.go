package entity

import (
	"strings"
	"time"

	"rentitforward/pkg/geo"
)

// User statuses. Users are never hard-deleted; moderation moves them to
// suspended or banned instead.
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
	UserStatusBanned    = "banned"
)

const (
	VerificationUnverified = "unverified"
	VerificationPending    = "pending"
	VerificationVerified   = "verified"
)

// Roles. Admins are provisioned out of band; registration always
// creates plain users.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Address struct {
	Street      string          `json:"street" firestore:"street"`
	City        string          `json:"city" firestore:"city"`
	State       string          `json:"state" firestore:"state"`
	Postcode    string          `json:"postcode" firestore:"postcode"`
	Country     string          `json:"country" firestore:"country"`
	Coordinates geo.Coordinates `json:"coordinates" firestore:"coordinates"`
}

type NotificationPreferences struct {
	EmailNotifications bool `json:"email_notifications" firestore:"emailNotifications"`
	PushNotifications  bool `json:"push_notifications" firestore:"pushNotifications"`
	SMSNotifications   bool `json:"sms_notifications" firestore:"smsNotifications"`
	MarketingEmails    bool `json:"marketing_emails" firestore:"marketingEmails"`

	BookingNotifications bool `json:"booking_notifications" firestore:"bookingNotifications"`
	MessageNotifications bool `json:"message_notifications" firestore:"messageNotifications"`
	PaymentNotifications bool `json:"payment_notifications" firestore:"paymentNotifications"`
	ReviewNotifications  bool `json:"review_notifications" firestore:"reviewNotifications"`
	SystemNotifications  bool `json:"system_notifications" firestore:"systemNotifications"`

	QuietHoursEnabled bool   `json:"quiet_hours_enabled" firestore:"quietHoursEnabled"`
	QuietHoursStart   string `json:"quiet_hours_start,omitempty" firestore:"quietHoursStart,omitempty"` // HH:MM
	QuietHoursEnd     string `json:"quiet_hours_end,omitempty" firestore:"quietHoursEnd,omitempty"`     // HH:MM
	Timezone          string `json:"timezone" firestore:"timezone"`
}

// DefaultNotificationPreferences matches the opt-in defaults applied at
// registration.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		EmailNotifications:   true,
		PushNotifications:    true,
		BookingNotifications: true,
		MessageNotifications: true,
		PaymentNotifications: true,
		ReviewNotifications:  true,
		SystemNotifications:  true,
		Timezone:             "UTC",
	}
}

type User struct {
	ID          string `json:"id" firestore:"id"`
	Email       string `json:"email" firestore:"email"`
	FirstName   string `json:"first_name" firestore:"firstName"`
	LastName    string `json:"last_name" firestore:"lastName"`
	DisplayName string `json:"display_name,omitempty" firestore:"displayName,omitempty"`
	Avatar      string `json:"avatar,omitempty" firestore:"avatar,omitempty"`
	Phone       string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Bio         string `json:"bio,omitempty" firestore:"bio,omitempty"`
	Status      string `json:"status" firestore:"status"`
	Role        string `json:"role" firestore:"role"`

	Address Address `json:"address" firestore:"address"`

	VerificationStatus    string   `json:"verification_status" firestore:"verificationStatus"`
	VerificationDocuments []string `json:"verification_documents,omitempty" firestore:"verificationDocuments,omitempty"`

	Rating      float64 `json:"rating" firestore:"rating"`
	ReviewCount int     `json:"review_count" firestore:"reviewCount"`

	Preferences NotificationPreferences `json:"preferences" firestore:"preferences"`
	PushTokens  []string                `json:"-" firestore:"pushTokens,omitempty"`

	// Payment provider references
	StripeAccountID  string `json:"stripe_account_id,omitempty" firestore:"stripeAccountId,omitempty"`
	StripeCustomerID string `json:"stripe_customer_id,omitempty" firestore:"stripeCustomerId,omitempty"`

	JoinedAt     time.Time  `json:"joined_at" firestore:"joinedAt"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty" firestore:"lastActiveAt,omitempty"`
	CreatedAt    time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt    time.Time  `json:"updated_at" firestore:"updatedAt"`
}

// Name is the user's presentation name: the chosen display name, else
// first and last name, else the email local part.
func (u *User) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	if u.FirstName != "" || u.LastName != "" {
		return strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	if at := strings.Index(u.Email, "@"); at > 0 {
		return u.Email[:at]
	}
	return u.Email
}
