package repository

import (
	"context"

	"rentitforward/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdateRating(ctx context.Context, id string, rating float64, reviewCount int) error
	AddPushToken(ctx context.Context, id, token string) error
	RemovePushToken(ctx context.Context, id, token string) error
	List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.User, int64, error)
}
