package usecase

import (
	"context"
	"fmt"

	chat "github.com/bahaa-alden/chatapp/internal/pkg/chat/application/domain"
	repository "github.com/bahaa-alden/chatapp/internal/pkg/chat/persistence/repository/port"
)

// RenameGroupInput renames a group chat on behalf of a participant.
type RenameGroupInput struct {
	ChatID string
	UserID string
	Name   string
}

// RenameGroupUseCase renames a group after checking the caller belongs to it.
// The mutated chat is returned so the caller can hand it to clients as the
// payload basis for the socket event.
type RenameGroupUseCase struct {
	Repo repository.ChatRepository
}

func NewRenameGroupUseCase(repo repository.ChatRepository) *RenameGroupUseCase {
	return &RenameGroupUseCase{Repo: repo}
}

func (uc *RenameGroupUseCase) Execute(ctx context.Context, in RenameGroupInput) (*chat.Chat, error) {
	if in.ChatID == "" || in.UserID == "" || in.Name == "" {
		return nil, fmt.Errorf("chatId, userId and name are required")
	}

	current, err := uc.Repo.GetChat(ctx, in.ChatID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}
	if !current.IsGroup {
		return nil, chat.ErrNotGroup
	}
	if !current.HasParticipant(in.UserID) {
		return nil, chat.ErrNotParticipant
	}

	renamed, err := uc.Repo.RenameGroup(ctx, in.ChatID, in.Name)
	if err != nil {
		return nil, wrapRepoErr(err)
	}
	return renamed, nil
}
