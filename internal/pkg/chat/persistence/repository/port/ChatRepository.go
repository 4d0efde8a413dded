package repository

import (
	"context"

	chat "github.com/bahaa-alden/chatapp/internal/pkg/chat/application/domain"
)

// ChatRepository defines persistence operations for chats and their messages.
// Implementations return the mutated chat on group operations so the REST
// layer can hand the fresh record straight to clients.
type ChatRepository interface {
	GetChat(ctx context.Context, chatID string) (*chat.Chat, error)
	CreateGroup(ctx context.Context, name string, adminID string, userIDs []string) (*chat.Chat, error)
	RenameGroup(ctx context.Context, chatID string, name string) (*chat.Chat, error)
	AddMember(ctx context.Context, chatID string, userID string) (*chat.Chat, error)
	RemoveMember(ctx context.Context, chatID string, userID string) (*chat.Chat, error)
	IsParticipant(ctx context.Context, chatID string, userID string) (bool, error)

	SaveMessage(ctx context.Context, m chat.Message) (string, error)
	ListMessages(ctx context.Context, chatID string, limit int, offset int) ([]chat.Message, error)
}
