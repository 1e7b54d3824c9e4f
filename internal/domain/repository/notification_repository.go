package repository

import (
	"context"

	"rentitforward/internal/domain/entity"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	Update(ctx context.Context, notification *entity.Notification) error
	ListByUserID(ctx context.Context, userID string, unreadOnly bool, limit, offset int) ([]*entity.Notification, int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	CountUnread(ctx context.Context, userID string) (int64, error)
}

type DeviceTokenRepository interface {
	Upsert(ctx context.Context, token *entity.DeviceToken) error
	ListActiveByUserID(ctx context.Context, userID string) ([]*entity.DeviceToken, error)
	Deactivate(ctx context.Context, token string) error
}
