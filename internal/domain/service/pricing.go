package service

import (
	"math"

	"rentitforward/internal/domain/entity"
)

// Marketplace fee and rental rules. Prices are AUD dollars unless a
// function says otherwise.
const (
	MinPrice        = 1.0
	MaxPrice        = 10000.0
	DefaultCurrency = "AUD"

	MinRentalDays         = 1
	MaxAdvanceBookingDays = 365

	ServiceFeePercentage = 0.05
	PaymentProcessingFee = 0.029
	GSTRate              = 0.1

	// WeeklyDiscountDays and MonthlyDiscountDays are the rental
	// lengths at which a listing's long-stay discounts kick in.
	WeeklyDiscountDays  = 7
	MonthlyDiscountDays = 30

	DefaultPlatformFeePercent = 5.0
)

// PricingBreakdown itemizes a quote for a rental period.
type PricingBreakdown struct {
	BasePrice       float64 `json:"base_price"`
	TotalDays       int     `json:"total_days"`
	Subtotal        float64 `json:"subtotal"`
	DiscountPercent float64 `json:"discount_percent"`
	Discount        float64 `json:"discount"`
	CleaningFee     float64 `json:"cleaning_fee"`
	DeliveryFee     float64 `json:"delivery_fee"`
	ServiceFee      float64 `json:"service_fee"`
	SecurityDeposit float64 `json:"security_deposit"`
	Tax             float64 `json:"tax"`
	Total           float64 `json:"total"`
	Currency        string  `json:"currency"`
}

// CalculateBookingPricing builds the full quote for renting a listing
// for days days. The monthly discount applies from 30 days and takes
// precedence over the weekly one, which applies from 7. The service
// fee is charged on the discounted subtotal plus per-booking fees,
// and GST on everything including the service fee. The security
// deposit is carried separately and excluded from tax.
func CalculateBookingPricing(pricing entity.Pricing, days int, deliveryFee float64) PricingBreakdown {
	subtotal := round2(pricing.BasePrice * float64(days))

	discountPercent := 0.0
	if days >= MonthlyDiscountDays && pricing.MonthlyDiscount > 0 {
		discountPercent = pricing.MonthlyDiscount
	} else if days >= WeeklyDiscountDays && pricing.WeeklyDiscount > 0 {
		discountPercent = pricing.WeeklyDiscount
	}
	discount := round2(subtotal * discountPercent / 100)

	taxable := subtotal - discount + pricing.CleaningFee + deliveryFee
	serviceFee := round2(taxable * ServiceFeePercentage)
	tax := round2((taxable + serviceFee) * GSTRate)

	total := round2(taxable + serviceFee + tax + pricing.SecurityDeposit)

	currency := pricing.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	return PricingBreakdown{
		BasePrice:       pricing.BasePrice,
		TotalDays:       days,
		Subtotal:        subtotal,
		DiscountPercent: discountPercent,
		Discount:        discount,
		CleaningFee:     pricing.CleaningFee,
		DeliveryFee:     deliveryFee,
		ServiceFee:      serviceFee,
		SecurityDeposit: pricing.SecurityDeposit,
		Tax:             tax,
		Total:           total,
		Currency:        currency,
	}
}

// ToBookingPricing copies a quote into the persisted booking shape.
func (p PricingBreakdown) ToBookingPricing() entity.BookingPricing {
	return entity.BookingPricing{
		BasePrice:       p.BasePrice,
		TotalDays:       p.TotalDays,
		Subtotal:        p.Subtotal,
		Discount:        p.Discount,
		CleaningFee:     p.CleaningFee,
		DeliveryFee:     p.DeliveryFee,
		ServiceFee:      p.ServiceFee,
		SecurityDeposit: p.SecurityDeposit,
		Tax:             p.Tax,
		Total:           p.Total,
		Currency:        p.Currency,
	}
}

// PlatformFee returns the marketplace's cut of amount, rounded to the
// nearest whole unit.
func PlatformFee(amount, feePercent float64) float64 {
	return math.Round(amount * feePercent / 100)
}

// TotalWithFees returns the platform fee and the grossed-up total the
// payer is charged.
func TotalWithFees(baseAmount, feePercent float64) (platformFee, total float64) {
	platformFee = PlatformFee(baseAmount, feePercent)
	return platformFee, baseAmount + platformFee
}

// DollarsToCents converts a dollar amount to the integer minor units
// payment providers expect.
func DollarsToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// CentsToDollars converts provider minor units back to dollars.
func CentsToDollars(cents int64) float64 {
	return float64(cents) / 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
