package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"rentitforward/internal/usecase"
	"rentitforward/pkg/errors"
	"rentitforward/pkg/response"
)

type PaymentHandler struct {
	paymentUseCase *usecase.PaymentUseCase
}

func NewPaymentHandler(paymentUseCase *usecase.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
	}
}

func (h *PaymentHandler) StartOnboarding(c echo.Context) error {
	var req usecase.OnboardingLinkInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	url, err := h.paymentUseCase.StartOnboarding(c.Request().Context(), userID, req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"onboarding_url": url})
}

func (h *PaymentHandler) OnboardingStatus(c echo.Context) error {
	userID := c.Get("uid").(string)

	status, err := h.paymentUseCase.OnboardingStatus(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, status)
}

func (h *PaymentHandler) DashboardLink(c echo.Context) error {
	userID := c.Get("uid").(string)

	url, err := h.paymentUseCase.DashboardLink(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"dashboard_url": url})
}

func (h *PaymentHandler) CreateBookingPayment(c echo.Context) error {
	renterID := c.Get("uid").(string)

	result, err := h.paymentUseCase.CreateBookingPayment(c.Request().Context(), renterID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

type refundDepositRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason,omitempty"`
}

func (h *PaymentHandler) RefundDeposit(c echo.Context) error {
	var req refundDepositRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.paymentUseCase.RefundDeposit(c.Request().Context(), c.Param("id"), req.Amount, req.Reason); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "refund issued"})
}

func (h *PaymentHandler) ReleaseEscrow(c echo.Context) error {
	if err := h.paymentUseCase.ReleaseEscrow(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"status": "escrow released"})
}

// Webhook receives payment-provider events. The raw body is needed for
// signature verification, so this route must not be wrapped in body
// parsing middleware.
func (h *PaymentHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, 65536))
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read webhook payload", err))
	}

	signature := c.Request().Header.Get("Stripe-Signature")
	if err := h.paymentUseCase.HandleWebhook(c.Request().Context(), payload, signature); err != nil {
		return response.Error(c, err)
	}
	return c.NoContent(http.StatusOK)
}

func (h *PaymentHandler) UploadVerificationDocument(c echo.Context) error {
	userID := c.Get("uid").(string)

	documentType := c.FormValue("document_type")
	if documentType == "" {
		documentType = "identity_document"
	}

	front, err := readFormFile(c, "front")
	if err != nil {
		return response.Error(c, errors.BadRequest("Document front image is required", err))
	}
	back, _ := readFormFile(c, "back")

	result, err := h.paymentUseCase.UploadVerificationDocument(c.Request().Context(), userID, usecase.VerificationUploadInput{
		DocumentType: documentType,
		Front:        front,
		Back:         back,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, result)
}

func (h *PaymentHandler) VerificationStatus(c echo.Context) error {
	userID := c.Get("uid").(string)

	status, err := h.paymentUseCase.VerificationStatus(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, status)
}

func readFormFile(c echo.Context, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, err
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}
