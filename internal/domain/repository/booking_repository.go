package repository

import (
	"context"
	"time"

	"rentitforward/internal/domain/entity"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error
	ListByRenterID(ctx context.Context, renterID string, status string, limit, offset int) ([]*entity.Booking, int64, error)
	ListByOwnerID(ctx context.Context, ownerID string, status string, limit, offset int) ([]*entity.Booking, int64, error)
	ListByListingID(ctx context.Context, listingID string, statuses []string) ([]*entity.Booking, error)
	ListOverlapping(ctx context.Context, listingID string, start, end time.Time) ([]*entity.Booking, error)
	GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Booking, error)
}
