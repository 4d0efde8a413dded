package usecase

import (
	"context"
	"fmt"

	chat "github.com/bahaa-alden/chatapp/internal/pkg/chat/application/domain"
	repository "github.com/bahaa-alden/chatapp/internal/pkg/chat/persistence/repository/port"
)

// ListMessagesInput carries parameters to fetch messages of a chat.
type ListMessagesInput struct {
	ChatID string
	Limit  int
	Offset int
}

// ListMessagesUseCase fetches messages for a given chat.
type ListMessagesUseCase struct {
	Repo repository.ChatRepository
}

func NewListMessagesUseCase(repo repository.ChatRepository) *ListMessagesUseCase {
	return &ListMessagesUseCase{Repo: repo}
}

// Execute returns messages for the chat honoring limit/offset.
func (uc *ListMessagesUseCase) Execute(ctx context.Context, in ListMessagesInput) ([]chat.Message, error) {
	if in.ChatID == "" {
		return nil, fmt.Errorf("chatId is required")
	}
	msgs, err := uc.Repo.ListMessages(ctx, in.ChatID, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
