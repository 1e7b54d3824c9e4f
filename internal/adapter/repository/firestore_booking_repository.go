package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rentitforward/internal/domain/entity"
	"rentitforward/internal/domain/repository"
	"rentitforward/pkg/errors"
)

type firestoreBookingRepository struct {
	client *firestore.Client
}

func NewFirestoreBookingRepository(client *firestore.Client) repository.BookingRepository {
	return &firestoreBookingRepository{
		client: client,
	}
}

func (r *firestoreBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if booking.ID == "" {
		doc := r.client.Collection("bookings").NewDoc()
		booking.ID = doc.ID
	}

	now := time.Now()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now

	_, err := r.client.Collection("bookings").Doc(booking.ID).Set(ctx, booking)
	if err != nil {
		return errors.Internal("Failed to create booking", err)
	}

	return nil
}

func (r *firestoreBookingRepository) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	doc, err := r.client.Collection("bookings").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Booking", err)
		}
		return nil, errors.Internal("Failed to get booking", err)
	}

	var booking entity.Booking
	if err := doc.DataTo(&booking); err != nil {
		return nil, errors.Internal("Failed to parse booking data", err)
	}

	return &booking, nil
}

func (r *firestoreBookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	booking.UpdatedAt = time.Now()

	_, err := r.client.Collection("bookings").Doc(booking.ID).Set(ctx, booking)
	if err != nil {
		return errors.Internal("Failed to update booking", err)
	}

	return nil
}

func (r *firestoreBookingRepository) ListByRenterID(ctx context.Context, renterID string, status string, limit, offset int) ([]*entity.Booking, int64, error) {
	query := r.client.Collection("bookings").Query.Where("renterId", "==", renterID)
	if status != "" {
		query = query.Where("status", "==", status)
	}
	return r.paginate(ctx, query, limit, offset)
}

func (r *firestoreBookingRepository) ListByOwnerID(ctx context.Context, ownerID string, status string, limit, offset int) ([]*entity.Booking, int64, error) {
	query := r.client.Collection("bookings").Query.Where("ownerId", "==", ownerID)
	if status != "" {
		query = query.Where("status", "==", status)
	}
	return r.paginate(ctx, query, limit, offset)
}

func (r *firestoreBookingRepository) ListByListingID(ctx context.Context, listingID string, statuses []string) ([]*entity.Booking, error) {
	query := r.client.Collection("bookings").Query.Where("listingId", "==", listingID)
	if len(statuses) > 0 {
		query = query.Where("status", "in", statuses)
	}

	iter := query.Documents(ctx)
	var bookings []*entity.Booking

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate listing bookings", err)
		}

		var booking entity.Booking
		if err := doc.DataTo(&booking); err != nil {
			return nil, errors.Internal("Failed to parse booking data", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

// ListOverlapping finds bookings on a listing whose date ranges touch
// [start, end]. Firestore limits range filters to one field, so the
// second bound is checked in memory.
func (r *firestoreBookingRepository) ListOverlapping(ctx context.Context, listingID string, start, end time.Time) ([]*entity.Booking, error) {
	query := r.client.Collection("bookings").Query.
		Where("listingId", "==", listingID).
		Where("startDate", "<=", end)

	iter := query.Documents(ctx)
	var bookings []*entity.Booking

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate overlapping bookings", err)
		}

		var booking entity.Booking
		if err := doc.DataTo(&booking); err != nil {
			return nil, errors.Internal("Failed to parse booking data", err)
		}
		if booking.EndDate.Before(start) {
			continue
		}
		bookings = append(bookings, &booking)
	}

	return bookings, nil
}

func (r *firestoreBookingRepository) GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*entity.Booking, error) {
	iter := r.client.Collection("bookings").Where("paymentIntentId", "==", paymentIntentID).Limit(1).Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, errors.NotFound("Booking", nil)
	}
	if err != nil {
		return nil, errors.Internal("Failed to query booking by payment intent", err)
	}

	var booking entity.Booking
	if err := doc.DataTo(&booking); err != nil {
		return nil, errors.Internal("Failed to parse booking data", err)
	}

	return &booking, nil
}

func (r *firestoreBookingRepository) paginate(ctx context.Context, query firestore.Query, limit, offset int) ([]*entity.Booking, int64, error) {
	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count bookings", err)
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
	var bookings []*entity.Booking

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate bookings", err)
		}

		var booking entity.Booking
		if err := doc.DataTo(&booking); err != nil {
			return nil, 0, errors.Internal("Failed to parse booking data", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, total, nil
}
