package payment

import (
	"context"

	"rentitforward/internal/domain/service"
	"rentitforward/pkg/errors"
)

// DisabledGateway stands in when no payment credentials are configured.
// Every operation fails with PAYMENT_UNAVAILABLE so the rest of the API
// keeps working in environments without Stripe access.
type DisabledGateway struct{}

func NewDisabledGateway() *DisabledGateway {
	return &DisabledGateway{}
}

func unavailable() error {
	return errors.PaymentUnavailable("", nil)
}

func (g *DisabledGateway) CreateConnectedAccount(ctx context.Context, email, country string) (string, error) {
	return "", unavailable()
}

func (g *DisabledGateway) CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error) {
	return "", unavailable()
}

func (g *DisabledGateway) CreateLoginLink(ctx context.Context, accountID string) (string, error) {
	return "", unavailable()
}

func (g *DisabledGateway) GetAccountStatus(ctx context.Context, accountID string) (*service.AccountStatus, error) {
	return nil, unavailable()
}

func (g *DisabledGateway) CreateCustomer(ctx context.Context, email, name, phone string, metadata map[string]string) (string, error) {
	return "", unavailable()
}

func (g *DisabledGateway) CreatePaymentIntent(ctx context.Context, params service.PaymentIntentParams) (*service.PaymentIntentResult, error) {
	return nil, unavailable()
}

func (g *DisabledGateway) CreateEscrowPayment(ctx context.Context, params service.EscrowPaymentParams) (*service.PaymentIntentResult, error) {
	return nil, unavailable()
}

func (g *DisabledGateway) ConfirmPaymentIntent(ctx context.Context, paymentIntentID string) error {
	return unavailable()
}

func (g *DisabledGateway) ReleaseEscrowPayment(ctx context.Context, paymentIntentID string, amount int64) (string, error) {
	return "", unavailable()
}

func (g *DisabledGateway) RefundDeposit(ctx context.Context, paymentIntentID string, amount int64, reason string) (string, error) {
	return "", unavailable()
}

func (g *DisabledGateway) UploadVerificationDocument(ctx context.Context, accountID, documentType string, front, back []byte) (*service.DocumentUploadResult, error) {
	return nil, unavailable()
}

func (g *DisabledGateway) GetVerificationStatus(ctx context.Context, accountID string) (*service.VerificationStatus, error) {
	return nil, unavailable()
}

func (g *DisabledGateway) ConstructWebhookEvent(payload []byte, signature string) (*service.WebhookEvent, error) {
	return nil, unavailable()
}
