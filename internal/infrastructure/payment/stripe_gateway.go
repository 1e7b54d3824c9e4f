package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"rentitforward/internal/domain/service"
	"rentitforward/pkg/errors"
	"rentitforward/pkg/logger"
)

const platformName = "rent-it-forward"

// StripeGateway implements service.EscrowGateway on Stripe Connect.
// Owners onboard as Express accounts; charges transfer to the owner's
// account with the platform fee withheld.
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

func NewStripeGateway(secretKey, webhookSecret string) *StripeGateway {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeGateway{
		api:           api,
		webhookSecret: webhookSecret,
	}
}

func (g *StripeGateway) CreateConnectedAccount(ctx context.Context, email, country string) (string, error) {
	if country == "" {
		country = "AU"
	}
	params := &stripe.AccountParams{
		Type:    stripe.String(string(stripe.AccountTypeExpress)),
		Email:   stripe.String(email),
		Country: stripe.String(country),
		Capabilities: &stripe.AccountCapabilitiesParams{
			Transfers: &stripe.AccountCapabilitiesTransfersParams{
				Requested: stripe.Bool(true),
			},
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{
				Requested: stripe.Bool(true),
			},
		},
		BusinessProfile: &stripe.AccountBusinessProfileParams{
			ProductDescription: stripe.String("Peer-to-peer rental marketplace"),
		},
	}
	params.Context = ctx
	params.AddMetadata("platform", platformName)

	account, err := g.api.Accounts.New(params)
	if err != nil {
		return "", errors.GatewayError("stripe", err)
	}
	return account.ID, nil
}

func (g *StripeGateway) CreateAccountLink(ctx context.Context, accountID, refreshURL, returnURL string) (string, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		RefreshURL: stripe.String(refreshURL),
		ReturnURL:  stripe.String(returnURL),
		Type:       stripe.String("account_onboarding"),
		CollectionOptions: &stripe.AccountLinkCollectionOptionsParams{
			Fields:             stripe.String("currently_due"),
			FutureRequirements: stripe.String("include"),
		},
	}
	params.Context = ctx

	link, err := g.api.AccountLinks.New(params)
	if err != nil {
		return "", errors.GatewayError("stripe", err)
	}
	return link.URL, nil
}

func (g *StripeGateway) CreateLoginLink(ctx context.Context, accountID string) (string, error) {
	params := &stripe.LoginLinkParams{
		Account: stripe.String(accountID),
	}
	params.Context = ctx

	link, err := g.api.LoginLinks.New(params)
	if err != nil {
		return "", errors.GatewayError("stripe", err)
	}
	return link.URL, nil
}

func (g *StripeGateway) GetAccountStatus(ctx context.Context, accountID string) (*service.AccountStatus, error) {
	params := &stripe.AccountParams{}
	params.Context = ctx

	account, err := g.api.Accounts.GetByID(accountID, params)
	if err != nil {
		return nil, errors.GatewayError("stripe", err)
	}

	status := &service.AccountStatus{
		ID:               account.ID,
		ChargesEnabled:   account.ChargesEnabled,
		PayoutsEnabled:   account.PayoutsEnabled,
		DetailsSubmitted: account.DetailsSubmitted,
		Country:          account.Country,
		IdentityStatus:   "unverified",
		DocumentStatus:   "unverified",
	}
	if account.Requirements != nil {
		status.CurrentlyDue = account.Requirements.CurrentlyDue
		status.EventuallyDue = account.Requirements.EventuallyDue
		status.PastDue = account.Requirements.PastDue
		status.PendingVerification = account.Requirements.PendingVerification
		status.DisabledReason = string(account.Requirements.DisabledReason)
	}
	if account.Individual != nil && account.Individual.Verification != nil {
		status.IdentityStatus = string(account.Individual.Verification.Status)
		if doc := account.Individual.Verification.Document; doc != nil {
			switch {
			case doc.Back != nil:
				status.DocumentStatus = "verified"
			case doc.Front != nil:
				status.DocumentStatus = "pending"
			}
		}
	}
	return status, nil
}

func (g *StripeGateway) CreateCustomer(ctx context.Context, email, name, phone string, metadata map[string]string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	if name != "" {
		params.Name = stripe.String(name)
	}
	if phone != "" {
		params.Phone = stripe.String(phone)
	}
	params.Context = ctx
	params.AddMetadata("platform", platformName)
	for key, value := range metadata {
		params.AddMetadata(key, value)
	}

	customer, err := g.api.Customers.New(params)
	if err != nil {
		return "", errors.GatewayError("stripe", err)
	}
	return customer.ID, nil
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, p service.PaymentIntentParams) (*service.PaymentIntentResult, error) {
	currency := p.Currency
	if currency == "" {
		currency = "aud"
	}
	params := &stripe.PaymentIntentParams{
		Amount:               stripe.Int64(p.Amount),
		Currency:             stripe.String(currency),
		ApplicationFeeAmount: stripe.Int64(p.ApplicationFee),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(p.ConnectedAccountID),
		},
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if p.CustomerID != "" {
		params.Customer = stripe.String(p.CustomerID)
	}
	if p.Description != "" {
		params.Description = stripe.String(p.Description)
	}
	params.Context = ctx
	params.AddMetadata("platform", platformName)
	for key, value := range p.Metadata {
		params.AddMetadata(key, value)
	}

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, errors.GatewayError("stripe", err)
	}
	return &service.PaymentIntentResult{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
	}, nil
}

func (g *StripeGateway) CreateEscrowPayment(ctx context.Context, p service.EscrowPaymentParams) (*service.PaymentIntentResult, error) {
	description := fmt.Sprintf(
		`Rental payment for "%s" (including $%.2f security deposit)`,
		p.ListingTitle,
		float64(p.DepositAmount)/100,
	)

	return g.CreatePaymentIntent(ctx, service.PaymentIntentParams{
		Amount:             p.Amount + p.DepositAmount,
		Currency:           p.Currency,
		ApplicationFee:     p.ApplicationFee,
		ConnectedAccountID: p.ConnectedAccountID,
		CustomerID:         p.CustomerID,
		Description:        description,
		Metadata: map[string]string{
			"booking_id":     p.BookingID,
			"rental_amount":  fmt.Sprintf("%d", p.Amount),
			"deposit_amount": fmt.Sprintf("%d", p.DepositAmount),
			"listing_title":  p.ListingTitle,
		},
	})
}

func (g *StripeGateway) ConfirmPaymentIntent(ctx context.Context, paymentIntentID string) error {
	params := &stripe.PaymentIntentConfirmParams{}
	params.Context = ctx

	if _, err := g.api.PaymentIntents.Confirm(paymentIntentID, params); err != nil {
		return errors.GatewayError("stripe", err)
	}
	return nil
}

// ReleaseEscrowPayment transfers the rental amount to the owner after
// return is confirmed; the deposit stays behind for RefundDeposit.
func (g *StripeGateway) ReleaseEscrowPayment(ctx context.Context, paymentIntentID string, amount int64) (string, error) {
	getParams := &stripe.PaymentIntentParams{}
	getParams.Context = ctx

	intent, err := g.api.PaymentIntents.Get(paymentIntentID, getParams)
	if err != nil {
		return "", errors.GatewayError("stripe", err)
	}
	if intent.TransferData == nil || intent.TransferData.Destination == nil {
		return "", errors.BadRequest("No destination account found for escrow release", nil)
	}

	params := &stripe.TransferParams{
		Amount:      stripe.Int64(amount),
		Currency:    stripe.String(string(intent.Currency)),
		Destination: stripe.String(intent.TransferData.Destination.ID),
		Description: stripe.String(fmt.Sprintf("Rental payment release for %s", intent.Description)),
	}
	params.Context = ctx
	params.AddMetadata("original_payment_intent", paymentIntentID)
	params.AddMetadata("type", "rental_payment_release")

	transfer, err := g.api.Transfers.New(params)
	if err != nil {
		return "", errors.GatewayError("stripe", err)
	}
	return transfer.ID, nil
}

func (g *StripeGateway) RefundDeposit(ctx context.Context, paymentIntentID string, amount int64, reason string) (string, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentIntentID),
		Amount:        stripe.Int64(amount),
	}
	if reason != "" {
		params.Reason = stripe.String(reason)
	}
	params.Context = ctx
	params.AddMetadata("type", "deposit_refund")
	params.AddMetadata("platform", platformName)

	refund, err := g.api.Refunds.New(params)
	if err != nil {
		return "", errors.GatewayError("stripe", err)
	}
	return refund.ID, nil
}

func (g *StripeGateway) UploadVerificationDocument(ctx context.Context, accountID, documentType string, front, back []byte) (*service.DocumentUploadResult, error) {
	frontID, err := g.uploadFile(ctx, fmt.Sprintf("%s_front.jpg", documentType), front)
	if err != nil {
		return nil, err
	}

	result := &service.DocumentUploadResult{FrontFileID: frontID}
	if len(back) > 0 {
		backID, err := g.uploadFile(ctx, fmt.Sprintf("%s_back.jpg", documentType), back)
		if err != nil {
			return nil, err
		}
		result.BackFileID = backID
	}

	document := &stripe.PersonVerificationDocumentParams{
		Front: stripe.String(result.FrontFileID),
	}
	if result.BackFileID != "" {
		document.Back = stripe.String(result.BackFileID)
	}

	verification := &stripe.PersonVerificationParams{}
	if documentType == "address_document" {
		verification.AdditionalDocument = document
	} else {
		verification.Document = document
	}

	updateParams := &stripe.AccountParams{
		Individual: &stripe.PersonParams{
			Verification: verification,
		},
	}
	updateParams.Context = ctx

	if _, err := g.api.Accounts.Update(accountID, updateParams); err != nil {
		logger.Error("Failed to attach verification document to account %s: %v", accountID, err)
		return nil, errors.GatewayError("stripe", err)
	}
	return result, nil
}

func (g *StripeGateway) GetVerificationStatus(ctx context.Context, accountID string) (*service.VerificationStatus, error) {
	params := &stripe.AccountParams{}
	params.Context = ctx

	account, err := g.api.Accounts.GetByID(accountID, params)
	if err != nil {
		return nil, errors.GatewayError("stripe", err)
	}

	status := &service.VerificationStatus{
		OverallStatus:  "unverified",
		IdentityStatus: "unverified",
		DocumentStatus: "not_uploaded",
		ChargesEnabled: account.ChargesEnabled,
		PayoutsEnabled: account.PayoutsEnabled,
	}
	switch {
	case account.DetailsSubmitted && account.ChargesEnabled && account.PayoutsEnabled:
		status.OverallStatus = "verified"
	case account.DetailsSubmitted:
		status.OverallStatus = "pending"
	}
	if account.Individual != nil && account.Individual.Verification != nil {
		status.IdentityStatus = string(account.Individual.Verification.Status)
		if doc := account.Individual.Verification.Document; doc != nil {
			status.FrontUploaded = doc.Front != nil
			status.BackUploaded = doc.Back != nil
			if doc.DetailsCode != "" {
				status.DocumentStatus = string(doc.DetailsCode)
			}
		}
	}
	if account.Requirements != nil {
		status.CurrentlyDue = account.Requirements.CurrentlyDue
		status.DisabledReason = string(account.Requirements.DisabledReason)
	}
	return status, nil
}

func (g *StripeGateway) ConstructWebhookEvent(payload []byte, signature string) (*service.WebhookEvent, error) {
	if g.webhookSecret == "" {
		return nil, errors.PaymentUnavailable("Webhook secret not configured", nil)
	}

	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return nil, errors.BadRequest("Invalid webhook signature", err)
	}

	var object struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(event.Data.Raw, &object); err != nil {
		logger.LogWebhookError(string(event.Type), "", err)
	}

	return &service.WebhookEvent{
		ID:       event.ID,
		Type:     string(event.Type),
		ObjectID: object.ID,
		RawData:  event.Data.Raw,
	}, nil
}

func (g *StripeGateway) uploadFile(ctx context.Context, filename string, data []byte) (string, error) {
	params := &stripe.FileParams{
		Purpose:    stripe.String(string(stripe.FilePurposeIdentityDocument)),
		FileReader: bytes.NewReader(data),
		Filename:   stripe.String(filename),
	}
	params.Context = ctx

	file, err := g.api.Files.New(params)
	if err != nil {
		return "", errors.GatewayError("stripe", err)
	}
	return file.ID, nil
}
