package repository

import (
	"context"

	"rentitforward/internal/domain/entity"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	GetByParticipantsAndListing(ctx context.Context, userA, userB, listingID string) (*entity.Conversation, error)
	Update(ctx context.Context, conversation *entity.Conversation) error
	ListByParticipant(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error)
	CreateMessage(ctx context.Context, message *entity.Message) error
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error)
	MarkMessagesRead(ctx context.Context, conversationID, readerID string) error
}
