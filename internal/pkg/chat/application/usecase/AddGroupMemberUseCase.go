package usecase

import (
	"context"
	"fmt"

	chat "github.com/bahaa-alden/chatapp/internal/pkg/chat/application/domain"
	repository "github.com/bahaa-alden/chatapp/internal/pkg/chat/persistence/repository/port"
)

// AddGroupMemberInput adds a user to a group on behalf of its administrator.
type AddGroupMemberInput struct {
	ChatID  string
	AdminID string
	UserID  string
}

// AddGroupMemberUseCase adds a member; only the group administrator may.
type AddGroupMemberUseCase struct {
	Repo repository.ChatRepository
}

func NewAddGroupMemberUseCase(repo repository.ChatRepository) *AddGroupMemberUseCase {
	return &AddGroupMemberUseCase{Repo: repo}
}

func (uc *AddGroupMemberUseCase) Execute(ctx context.Context, in AddGroupMemberInput) (*chat.Chat, error) {
	if in.ChatID == "" || in.AdminID == "" || in.UserID == "" {
		return nil, fmt.Errorf("chatId, adminId and userId are required")
	}

	current, err := uc.Repo.GetChat(ctx, in.ChatID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}
	if !current.IsGroup {
		return nil, chat.ErrNotGroup
	}
	if !current.IsAdmin(in.AdminID) {
		return nil, chat.ErrNotAdmin
	}

	updated, err := uc.Repo.AddMember(ctx, in.ChatID, in.UserID)
	if err != nil {
		return nil, wrapRepoErr(err)
	}
	return updated, nil
}
