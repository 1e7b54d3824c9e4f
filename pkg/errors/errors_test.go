package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := NotFound("Listing", nil)

	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, "Listing not found", err.Message)
	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "NOT_FOUND: Listing not found", err.Error())
}

func TestPaymentUnavailableDefaultMessage(t *testing.T) {
	err := PaymentUnavailable("", nil)

	assert.Equal(t, "PAYMENT_UNAVAILABLE", err.Code)
	assert.Equal(t, "Payment gateway is not available in this environment", err.Message)
	assert.Equal(t, http.StatusServiceUnavailable, err.Status)

	custom := PaymentUnavailable("Payments disabled", nil)
	assert.Equal(t, "Payments disabled", custom.Message)
}

func TestGatewayError(t *testing.T) {
	cause := fmt.Errorf("timeout")
	err := GatewayError("stripe", cause)

	assert.Equal(t, "GATEWAY_ERROR", err.Code)
	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.Equal(t, cause, err.Unwrap())
}

func TestIs(t *testing.T) {
	err := BadRequest("bad input", nil)

	assert.True(t, Is(err, "BAD_REQUEST"))
	assert.False(t, Is(err, "NOT_FOUND"))
	assert.False(t, Is(fmt.Errorf("plain"), "BAD_REQUEST"))

	wrapped := fmt.Errorf("context: %w", Conflict("duplicate"))
	assert.True(t, Is(wrapped, "CONFLICT"))
}
