package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"rentitforward/internal/domain/entity"
)

func TestCalculateBookingPricing(t *testing.T) {
	pricing := entity.Pricing{
		BasePrice:       50,
		Currency:        "AUD",
		CleaningFee:     10,
		SecurityDeposit: 100,
	}

	breakdown := CalculateBookingPricing(pricing, 5, 20)

	assert.Equal(t, 250.0, breakdown.Subtotal)
	assert.Equal(t, 0.0, breakdown.Discount)
	assert.Equal(t, 14.0, breakdown.ServiceFee) // 5% of 280
	assert.Equal(t, 29.4, breakdown.Tax)        // GST on fees too, deposit excluded
	assert.Equal(t, 100.0, breakdown.SecurityDeposit)
	assert.Equal(t, 423.4, breakdown.Total)
	assert.Equal(t, "AUD", breakdown.Currency)
}

func TestCalculateBookingPricingWeeklyDiscount(t *testing.T) {
	pricing := entity.Pricing{BasePrice: 20, WeeklyDiscount: 10}

	breakdown := CalculateBookingPricing(pricing, 7, 0)

	assert.Equal(t, 140.0, breakdown.Subtotal)
	assert.Equal(t, 10.0, breakdown.DiscountPercent)
	assert.Equal(t, 14.0, breakdown.Discount)
	assert.Equal(t, 6.3, breakdown.ServiceFee)
	assert.Equal(t, 13.23, breakdown.Tax)
	assert.Equal(t, 145.53, breakdown.Total)

	// Six days is one short of the weekly threshold.
	short := CalculateBookingPricing(pricing, 6, 0)
	assert.Equal(t, 0.0, short.Discount)
}

func TestCalculateBookingPricingMonthlyPrecedence(t *testing.T) {
	pricing := entity.Pricing{BasePrice: 10, WeeklyDiscount: 10, MonthlyDiscount: 20}

	breakdown := CalculateBookingPricing(pricing, 30, 0)

	assert.Equal(t, 20.0, breakdown.DiscountPercent)
	assert.Equal(t, 60.0, breakdown.Discount)
}

func TestCalculateBookingPricingDefaultCurrency(t *testing.T) {
	breakdown := CalculateBookingPricing(entity.Pricing{BasePrice: 5}, 1, 0)
	assert.Equal(t, DefaultCurrency, breakdown.Currency)
}

func TestToBookingPricing(t *testing.T) {
	breakdown := CalculateBookingPricing(entity.Pricing{BasePrice: 50, SecurityDeposit: 100}, 2, 0)

	persisted := breakdown.ToBookingPricing()

	assert.Equal(t, breakdown.Subtotal, persisted.Subtotal)
	assert.Equal(t, breakdown.Total, persisted.Total)
	assert.Equal(t, breakdown.SecurityDeposit, persisted.SecurityDeposit)
	assert.Equal(t, breakdown.TotalDays, persisted.TotalDays)
}

func TestPlatformFee(t *testing.T) {
	assert.Equal(t, 5.0, PlatformFee(100, 5))
	// Rounds to the nearest whole unit.
	assert.Equal(t, 8.0, PlatformFee(150, 5))
	assert.Equal(t, 0.0, PlatformFee(0, 5))
}

func TestTotalWithFees(t *testing.T) {
	fee, total := TotalWithFees(200, 5)
	assert.Equal(t, 10.0, fee)
	assert.Equal(t, 210.0, total)
}

func TestDollarsToCents(t *testing.T) {
	assert.Equal(t, int64(1999), DollarsToCents(19.99))
	assert.Equal(t, int64(10000), DollarsToCents(100))
	assert.Equal(t, int64(0), DollarsToCents(0))
	assert.Equal(t, 19.99, CentsToDollars(1999))
}
