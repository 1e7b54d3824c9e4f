package repository

import (
	"context"

	"rentitforward/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	GetByBookingAndReviewer(ctx context.Context, bookingID, reviewerID string) (*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	ListByTargetID(ctx context.Context, targetID string, limit, offset int) ([]*entity.Review, int64, error)
	ListByListingID(ctx context.Context, listingID string, limit, offset int) ([]*entity.Review, int64, error)
}
