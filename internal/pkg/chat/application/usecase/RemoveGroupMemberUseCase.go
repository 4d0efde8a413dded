package usecase

import (
	"context"
	"fmt"

	chat "github.com/bahaa-alden/chatapp/internal/pkg/chat/application/domain"
	repository "github.com/bahaa-alden/chatapp/internal/pkg/chat/persistence/repository/port"
)

// RemoveGroupMemberInput removes a user from a group. The administrator may
// remove anyone; any member may remove themselves (leave).
type RemoveGroupMemberInput struct {
	ChatID        string
	ActorID       string
	RemovedUserID string
}

// RemoveGroupMemberUseCase removes a member and returns the mutated chat.
type RemoveGroupMemberUseCase struct {
	Repo repository.ChatRepository
}

func NewRemoveGroupMemberUseCase(repo repository.ChatRepository) *RemoveGroupMemberUseCase {
	return &RemoveGroupMemberUseCase{Repo: repo}
}

func (uc *RemoveGroupMemberUseCase) Execute(ctx context.Context, in RemoveGroupMemberInput) (*chat.Chat, error) {
	if in.ChatID == "" || in.ActorID == "" || in.RemovedUserID == "" {
		return nil, fmt.Errorf("chatId, actorId and removedUserId are required")
	}

	current, err := uc.Repo.GetChat(ctx, in.ChatID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}
	if !current.IsGroup {
		return nil, chat.ErrNotGroup
	}
	if in.ActorID != in.RemovedUserID && !current.IsAdmin(in.ActorID) {
		return nil, chat.ErrNotAdmin
	}
	if !current.HasParticipant(in.RemovedUserID) {
		return nil, chat.ErrNotParticipant
	}

	updated, err := uc.Repo.RemoveMember(ctx, in.ChatID, in.RemovedUserID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}
	return updated, nil
}
