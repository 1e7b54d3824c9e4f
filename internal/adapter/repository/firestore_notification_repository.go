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

type firestoreNotificationRepository struct {
	client *firestore.Client
}

func NewFirestoreNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &firestoreNotificationRepository{
		client: client,
	}
}

func (r *firestoreNotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	if notification.ID == "" {
		doc := r.client.Collection("notifications").NewDoc()
		notification.ID = doc.ID
	}

	now := time.Now()
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = now
	}
	notification.UpdatedAt = now

	_, err := r.client.Collection("notifications").Doc(notification.ID).Set(ctx, notification)
	if err != nil {
		return errors.Internal("Failed to create notification", err)
	}

	return nil
}

func (r *firestoreNotificationRepository) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	doc, err := r.client.Collection("notifications").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Notification", err)
		}
		return nil, errors.Internal("Failed to get notification", err)
	}

	var notification entity.Notification
	if err := doc.DataTo(&notification); err != nil {
		return nil, errors.Internal("Failed to parse notification data", err)
	}

	return &notification, nil
}

func (r *firestoreNotificationRepository) Update(ctx context.Context, notification *entity.Notification) error {
	notification.UpdatedAt = time.Now()

	_, err := r.client.Collection("notifications").Doc(notification.ID).Set(ctx, notification)
	if err != nil {
		return errors.Internal("Failed to update notification", err)
	}

	return nil
}

func (r *firestoreNotificationRepository) ListByUserID(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error) {
	query := r.client.Collection("notifications").Query.Where("userId", "==", userID)
	if unreadOnly {
		query = query.Where("isRead", "==", false)
	}

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count notifications", err)
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
	var notifications []*entity.Notification

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate notifications", err)
		}

		var notification entity.Notification
		if err := doc.DataTo(&notification); err != nil {
			return nil, 0, errors.Internal("Failed to parse notification data", err)
		}
		notifications = append(notifications, &notification)
	}

	return notifications, total, nil
}

func (r *firestoreNotificationRepository) MarkRead(ctx context.Context, id string) error {
	_, err := r.client.Collection("notifications").Doc(id).Update(ctx, []firestore.Update{
		{Path: "isRead", Value: true},
		{Path: "openedAt", Value: time.Now()},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Notification", err)
		}
		return errors.Internal("Failed to mark notification read", err)
	}

	return nil
}

func (r *firestoreNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	iter := r.client.Collection("notifications").
		Where("userId", "==", userID).
		Where("isRead", "==", false).
		Documents(ctx)

	batch := r.client.Batch()
	count := 0
	now := time.Now()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Internal("Failed to iterate unread notifications", err)
		}

		batch.Update(doc.Ref, []firestore.Update{
			{Path: "isRead", Value: true},
			{Path: "updatedAt", Value: now},
		})
		count++
	}

	if count == 0 {
		return nil
	}
	if _, err := batch.Commit(ctx); err != nil {
		return errors.Internal("Failed to mark notifications read", err)
	}

	return nil
}

func (r *firestoreNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	docs, err := r.client.Collection("notifications").
		Where("userId", "==", userID).
		Where("isRead", "==", false).
		Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to count unread notifications", err)
	}

	return int64(len(docs)), nil
}

type firestoreDeviceTokenRepository struct {
	client *firestore.Client
}

func NewFirestoreDeviceTokenRepository(client *firestore.Client) repository.DeviceTokenRepository {
	return &firestoreDeviceTokenRepository{
		client: client,
	}
}

func (r *firestoreDeviceTokenRepository) Upsert(ctx context.Context, token *entity.DeviceToken) error {
	// The token string keys the document so re-registration from the
	// same device overwrites rather than duplicates.
	iter := r.client.Collection("deviceTokens").Where("token", "==", token.Token).Limit(1).Documents(ctx)

	now := time.Now()
	doc, err := iter.Next()
	if err == iterator.Done {
		ref := r.client.Collection("deviceTokens").NewDoc()
		token.ID = ref.ID
		token.CreatedAt = now
		token.UpdatedAt = now
		token.IsActive = true
		if _, err := ref.Set(ctx, token); err != nil {
			return errors.Internal("Failed to register device token", err)
		}
		return nil
	}
	if err != nil {
		return errors.Internal("Failed to query device token", err)
	}

	var existing entity.DeviceToken
	if err := doc.DataTo(&existing); err != nil {
		return errors.Internal("Failed to parse device token data", err)
	}

	token.ID = existing.ID
	token.CreatedAt = existing.CreatedAt
	token.UpdatedAt = now
	token.IsActive = true
	if _, err := doc.Ref.Set(ctx, token); err != nil {
		return errors.Internal("Failed to update device token", err)
	}

	return nil
}

func (r *firestoreDeviceTokenRepository) ListActiveByUserID(ctx context.Context, userID string) ([]*entity.DeviceToken, error) {
	iter := r.client.Collection("deviceTokens").
		Where("userId", "==", userID).
		Where("isActive", "==", true).
		Documents(ctx)

	var tokens []*entity.DeviceToken
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate device tokens", err)
		}

		var token entity.DeviceToken
		if err := doc.DataTo(&token); err != nil {
			return nil, errors.Internal("Failed to parse device token data", err)
		}
		tokens = append(tokens, &token)
	}

	return tokens, nil
}

func (r *firestoreDeviceTokenRepository) Deactivate(ctx context.Context, token string) error {
	iter := r.client.Collection("deviceTokens").Where("token", "==", token).Limit(1).Documents(ctx)

	doc, err := iter.Next()
	if err == iterator.Done {
		return errors.NotFound("Device token", nil)
	}
	if err != nil {
		return errors.Internal("Failed to query device token", err)
	}

	_, err = doc.Ref.Update(ctx, []firestore.Update{
		{Path: "isActive", Value: false},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return errors.Internal("Failed to deactivate device token", err)
	}

	return nil
}
