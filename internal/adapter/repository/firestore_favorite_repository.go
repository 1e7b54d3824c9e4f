package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"rentitforward/internal/domain/entity"
	"rentitforward/internal/domain/repository"
	"rentitforward/pkg/errors"
)

type firestoreFavoriteRepository struct {
	client *firestore.Client
}

func NewFirestoreFavoriteRepository(client *firestore.Client) repository.FavoriteRepository {
	return &firestoreFavoriteRepository{
		client: client,
	}
}

func (r *firestoreFavoriteRepository) Add(ctx context.Context, favorite *entity.Favorite) error {
	exists, err := r.Exists(ctx, favorite.UserID, favorite.ListingID)
	if err != nil {
		return err
	}
	if exists {
		return errors.Conflict("Listing already saved")
	}

	doc := r.client.Collection("favorites").NewDoc()
	favorite.ID = doc.ID
	favorite.CreatedAt = time.Now()

	if _, err := doc.Set(ctx, favorite); err != nil {
		return errors.Internal("Failed to save favorite", err)
	}

	return nil
}

func (r *firestoreFavoriteRepository) Remove(ctx context.Context, userID, listingID string) error {
	iter := r.client.Collection("favorites").
		Where("userId", "==", userID).
		Where("listingId", "==", listingID).
		Limit(1).
		Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return errors.NotFound("Favorite", nil)
	}
	if err != nil {
		return errors.Internal("Failed to query favorite", err)
	}

	if _, err := doc.Ref.Delete(ctx); err != nil {
		return errors.Internal("Failed to remove favorite", err)
	}

	return nil
}

func (r *firestoreFavoriteRepository) Exists(ctx context.Context, userID, listingID string) (bool, error) {
	iter := r.client.Collection("favorites").
		Where("userId", "==", userID).
		Where("listingId", "==", listingID).
		Limit(1).
		Documents(ctx)

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, errors.Internal("Failed to query favorite", err)
	}

	return true, nil
}

func (r *firestoreFavoriteRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Favorite, int64, error) {
	query := r.client.Collection("favorites").Query.Where("userId", "==", userID)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count favorites", err)
	}
	total := int64(len(allDocs))

	query = query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var favorites []*entity.Favorite

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate favorites", err)
		}

		var favorite entity.Favorite
		if err := doc.DataTo(&favorite); err != nil {
			return nil, 0, errors.Internal("Failed to parse favorite data", err)
		}
		favorites = append(favorites, &favorite)
	}

	return favorites, total, nil
}

func (r *firestoreFavoriteRepository) CountByListingID(ctx context.Context, listingID string) (int64, error) {
	docs, err := r.client.Collection("favorites").
		Where("listingId", "==", listingID).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count listing favorites", err)
	}

	return int64(len(docs)), nil
}
