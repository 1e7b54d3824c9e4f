package usecase

import (
	"context"
	"time"

	"rentitforward/internal/domain/entity"
	"rentitforward/internal/domain/repository"
	"rentitforward/pkg/errors"
	"rentitforward/pkg/logger"
	"rentitforward/pkg/utils"
)

type MessageUseCase struct {
	conversationRepo repository.ConversationRepository
	listingRepo      repository.ListingRepository
	userRepo         repository.UserRepository
	notifier         Notifier
}

func NewMessageUseCase(
	conversationRepo repository.ConversationRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
) *MessageUseCase {
	return &MessageUseCase{
		conversationRepo: conversationRepo,
		listingRepo:      listingRepo,
		userRepo:         userRepo,
		notifier:         notifier,
	}
}

type SendMessageInput struct {
	RecipientID string   `json:"recipient_id" validate:"required"`
	ListingID   string   `json:"listing_id,omitempty"`
	BookingID   string   `json:"booking_id,omitempty"`
	Content     string   `json:"content" validate:"required,max=2000"`
	Attachments []string `json:"attachments,omitempty" validate:"max=5"`
}

// SendMessage delivers a message, creating the conversation on first
// contact between the two users about a listing.
func (uc *MessageUseCase) SendMessage(ctx context.Context, senderID string, input SendMessageInput) (*entity.Message, error) {
	if senderID == input.RecipientID {
		return nil, errors.BadRequest("You cannot message yourself", nil)
	}
	if _, err := uc.userRepo.GetByID(ctx, input.RecipientID); err != nil {
		return nil, errors.BadRequest("Recipient not found", err)
	}

	conversation, err := uc.conversationRepo.GetByParticipantsAndListing(ctx, senderID, input.RecipientID, input.ListingID)
	if err != nil {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
		conversation = &entity.Conversation{
			Participants: []string{senderID, input.RecipientID},
			ListingID:    input.ListingID,
			BookingID:    input.BookingID,
			UnreadCounts: map[string]int{},
		}
		if err := uc.conversationRepo.Create(ctx, conversation); err != nil {
			return nil, err
		}
	}

	message := &entity.Message{
		ConversationID: conversation.ID,
		SenderID:       senderID,
		Content:        input.Content,
		Attachments:    input.Attachments,
	}
	if err := uc.conversationRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	now := time.Now()
	conversation.LastMessage = utils.TruncateText(input.Content, 120)
	conversation.LastMessageAt = now
	if conversation.UnreadCounts == nil {
		conversation.UnreadCounts = map[string]int{}
	}
	conversation.UnreadCounts[input.RecipientID]++
	if err := uc.conversationRepo.Update(ctx, conversation); err != nil {
		logger.Warn("Failed to update conversation %s: %v", conversation.ID, err)
	}

	senderName := "Someone"
	if sender, serr := uc.userRepo.GetByID(ctx, senderID); serr == nil {
		senderName = sender.Name()
	}
	itemTitle := "your conversation"
	if conversation.ListingID != "" {
		if listing, lerr := uc.listingRepo.GetByID(ctx, conversation.ListingID); lerr == nil {
			itemTitle = listing.Title
		}
	}
	uc.notifier.Notify(ctx, input.RecipientID, entity.NotificationMessageReceived, map[string]interface{}{
		"sender_name":     senderName,
		"item_title":      itemTitle,
		"conversation_id": conversation.ID,
	})

	return message, nil
}

func (uc *MessageUseCase) ListConversations(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	return uc.conversationRepo.ListByParticipant(ctx, userID, limit, offset)
}

func (uc *MessageUseCase) GetConversation(ctx context.Context, userID, conversationID string) (*entity.Conversation, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not part of this conversation", nil)
	}
	return conversation, nil
}

func (uc *MessageUseCase) ListMessages(ctx context.Context, userID, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	if _, err := uc.GetConversation(ctx, userID, conversationID); err != nil {
		return nil, 0, err
	}
	return uc.conversationRepo.ListMessages(ctx, conversationID, limit, offset)
}

// MarkConversationRead clears the reader's unread counter and stamps
// the messages they received.
func (uc *MessageUseCase) MarkConversationRead(ctx context.Context, userID, conversationID string) error {
	conversation, err := uc.GetConversation(ctx, userID, conversationID)
	if err != nil {
		return err
	}
	if err := uc.conversationRepo.MarkMessagesRead(ctx, conversationID, userID); err != nil {
		return err
	}
	if conversation.UnreadCounts == nil {
		conversation.UnreadCounts = map[string]int{}
	}
	conversation.UnreadCounts[userID] = 0
	return uc.conversationRepo.Update(ctx, conversation)
}
