package repository

import (
	"context"

	"rentitforward/internal/domain/entity"
)

type FavoriteRepository interface {
	Add(ctx context.Context, favorite *entity.Favorite) error
	Remove(ctx context.Context, userID, listingID string) error
	Exists(ctx context.Context, userID, listingID string) (bool, error)
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Favorite, int64, error)
	CountByListingID(ctx context.Context, listingID string) (int64, error)
}
