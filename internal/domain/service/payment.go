package service

import (
	"context"
)

// AccountStatus summarizes a seller's connected payment account.
type AccountStatus struct {
	ID                  string   `json:"id"`
	ChargesEnabled      bool     `json:"charges_enabled"`
	PayoutsEnabled      bool     `json:"payouts_enabled"`
	DetailsSubmitted    bool     `json:"details_submitted"`
	CurrentlyDue        []string `json:"currently_due"`
	EventuallyDue       []string `json:"eventually_due"`
	PastDue             []string `json:"past_due"`
	PendingVerification []string `json:"pending_verification"`
	DisabledReason      string   `json:"disabled_reason,omitempty"`
	IdentityStatus      string   `json:"identity_status"`
	DocumentStatus      string   `json:"document_status"`
	Country             string   `json:"country"`
}

// VerificationStatus reports identity-document verification progress
// for a connected account. OverallStatus is one of "unverified",
// "pending" or "verified".
type VerificationStatus struct {
	OverallStatus  string   `json:"overall_status"`
	IdentityStatus string   `json:"identity_status"`
	FrontUploaded  bool     `json:"front_uploaded"`
	BackUploaded   bool     `json:"back_uploaded"`
	DocumentStatus string   `json:"document_status"`
	CurrentlyDue   []string `json:"currently_due"`
	ChargesEnabled bool     `json:"charges_enabled"`
	PayoutsEnabled bool     `json:"payouts_enabled"`
	DisabledReason string   `json:"disabled_reason,omitempty"`
}

// PaymentIntentParams configures a marketplace charge. Amounts are in
// cents; the platform fee is withheld from the transfer to the owner's
// connected account.
type PaymentIntentParams struct {
	Amount             int64
	Currency           string
	ApplicationFee     int64
	ConnectedAccountID string
	CustomerID         string
	Description        string
	Metadata           map[string]string
}

// EscrowPaymentParams charges rent and security deposit together; the
// deposit is refunded separately after return.
type EscrowPaymentParams struct {
	Amount             int64
	DepositAmount      int64
	Currency           string
	ApplicationFee     int64
	ConnectedAccountID string
	CustomerID         string
	BookingID          string
	ListingTitle       string
}

// PaymentIntentResult carries what a client needs to complete payment.
type PaymentIntentResult struct {
	PaymentIntentID string `json:"payment_intent_id"`
	ClientSecret    string `json:"client_secret"`
}

// DocumentUploadResult returns provider file IDs for an uploaded
// verification document.
type DocumentUploadResult struct {
	FrontFileID string `json:"front_file_id"`
	BackFileID  string `json:"back_file_id,omitempty"`
}

// WebhookEvent is a verified payment-provider event.
type WebhookEvent struct {
	ID       string
	Type     string
	ObjectID string
	RawData  []byte
}

// EscrowGateway is the payment provider surface the marketplace needs:
// seller onboarding, customer management, escrow-style charges with
// deferred release, deposit refunds, and webhook verification.
type EscrowGateway interface {
	CreateConnectedAccount(ctx context.Context, email, country string) (string, error)
	CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error)
	CreateLoginLink(ctx context.Context, accountID string) (string, error)
	GetAccountStatus(ctx context.Context, accountID string) (*AccountStatus, error)

	CreateCustomer(ctx context.Context, email, name, phone string, metadata map[string]string) (string, error)

	CreatePaymentIntent(ctx context.Context, params PaymentIntentParams) (*PaymentIntentResult, error)
	CreateEscrowPayment(ctx context.Context, params EscrowPaymentParams) (*PaymentIntentResult, error)
	ConfirmPaymentIntent(ctx context.Context, paymentIntentID string) error
	ReleaseEscrowPayment(ctx context.Context, paymentIntentID string, amount int64) (string, error)
	RefundDeposit(ctx context.Context, paymentIntentID string, amount int64, reason string) (string, error)

	UploadVerificationDocument(ctx context.Context, accountID, documentType string, front, back []byte) (*DocumentUploadResult, error)
	GetVerificationStatus(ctx context.Context, accountID string) (*VerificationStatus, error)

	ConstructWebhookEvent(payload []byte, signature string) (*WebhookEvent, error)
}
