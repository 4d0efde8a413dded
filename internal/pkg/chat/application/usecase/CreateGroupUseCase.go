package usecase

import (
	"context"
	"fmt"

	chat "github.com/bahaa-alden/chatapp/internal/pkg/chat/application/domain"
	repository "github.com/bahaa-alden/chatapp/internal/pkg/chat/persistence/repository/port"
)

// CreateGroupInput carries the required data to open a new group chat. The
// admin is always added as a member.
type CreateGroupInput struct {
	Name    string
	AdminID string
	UserIDs []string
}

// CreateGroupUseCase handles creation of a new group chat and its members.
type CreateGroupUseCase struct {
	Repo repository.ChatRepository
}

func NewCreateGroupUseCase(repo repository.ChatRepository) *CreateGroupUseCase {
	return &CreateGroupUseCase{Repo: repo}
}

// Execute persists the group and registers its members.
func (uc *CreateGroupUseCase) Execute(ctx context.Context, in CreateGroupInput) (*chat.Chat, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if in.AdminID == "" {
		return nil, fmt.Errorf("adminId is required")
	}
	if len(in.UserIDs) < 2 {
		return nil, fmt.Errorf("a group must contain at least two other users")
	}

	members := in.UserIDs
	if !contains(members, in.AdminID) {
		members = append(append([]string(nil), members...), in.AdminID)
	}

	c, err := uc.Repo.CreateGroup(ctx, in.Name, in.AdminID, members)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return c, nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
