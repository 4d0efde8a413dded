package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chat "github.com/bahaa-alden/chatapp/internal/pkg/chat/application/domain"
)

func TestCreateGroupUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a group with the admin included", func(t *testing.T) {
		repo := newFakeChatRepo()
		uc := NewCreateGroupUseCase(repo)

		group, err := uc.Execute(ctx, CreateGroupInput{
			Name:    "weekend plans",
			AdminID: "u1",
			UserIDs: []string{"u2", "u3"},
		})
		require.NoError(t, err)
		assert.True(t, group.IsGroup)
		assert.Equal(t, "weekend plans", group.Name)
		require.NotNil(t, group.GroupAdminID)
		assert.Equal(t, "u1", *group.GroupAdminID)
		assert.ElementsMatch(t, []string{"u1", "u2", "u3"}, group.UserIDs)
	})

	t.Run("does not duplicate an admin already listed", func(t *testing.T) {
		repo := newFakeChatRepo()
		uc := NewCreateGroupUseCase(repo)

		group, err := uc.Execute(ctx, CreateGroupInput{
			Name:    "g",
			AdminID: "u1",
			UserIDs: []string{"u1", "u2"},
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"u1", "u2"}, group.UserIDs)
	})

	t.Run("requires at least two members", func(t *testing.T) {
		repo := newFakeChatRepo()
		uc := NewCreateGroupUseCase(repo)

		_, err := uc.Execute(ctx, CreateGroupInput{Name: "g", AdminID: "u1", UserIDs: []string{"u2"}})
		assert.Error(t, err)
	})
}

func TestRenameGroupUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("renames for a participant", func(t *testing.T) {
		repo := newFakeChatRepo(groupOf("chat1", "u1", "u1", "u2"))
		uc := NewRenameGroupUseCase(repo)

		renamed, err := uc.Execute(ctx, RenameGroupInput{ChatID: "chat1", UserID: "u2", Name: "renamed"})
		require.NoError(t, err)
		assert.Equal(t, "renamed", renamed.Name)
	})

	t.Run("rejects outsiders", func(t *testing.T) {
		repo := newFakeChatRepo(groupOf("chat1", "u1", "u1", "u2"))
		uc := NewRenameGroupUseCase(repo)

		_, err := uc.Execute(ctx, RenameGroupInput{ChatID: "chat1", UserID: "u9", Name: "x"})
		assert.ErrorIs(t, err, chat.ErrNotParticipant)
	})

	t.Run("rejects one-on-one chats", func(t *testing.T) {
		direct := &chat.Chat{ID: "dm1", UserIDs: []string{"u1", "u2"}}
		repo := newFakeChatRepo(direct)
		uc := NewRenameGroupUseCase(repo)

		_, err := uc.Execute(ctx, RenameGroupInput{ChatID: "dm1", UserID: "u1", Name: "x"})
		assert.ErrorIs(t, err, chat.ErrNotGroup)
	})

	t.Run("unknown chat", func(t *testing.T) {
		uc := NewRenameGroupUseCase(newFakeChatRepo())
		_, err := uc.Execute(ctx, RenameGroupInput{ChatID: "nope", UserID: "u1", Name: "x"})
		assert.ErrorIs(t, err, chat.ErrNotFound)
	})
}

func TestAddGroupMemberUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("admin adds a member", func(t *testing.T) {
		repo := newFakeChatRepo(groupOf("chat1", "u1", "u1", "u2"))
		uc := NewAddGroupMemberUseCase(repo)

		updated, err := uc.Execute(ctx, AddGroupMemberInput{ChatID: "chat1", AdminID: "u1", UserID: "u3"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"u1", "u2", "u3"}, updated.UserIDs)
	})

	t.Run("non-admin may not add", func(t *testing.T) {
		repo := newFakeChatRepo(groupOf("chat1", "u1", "u1", "u2"))
		uc := NewAddGroupMemberUseCase(repo)

		_, err := uc.Execute(ctx, AddGroupMemberInput{ChatID: "chat1", AdminID: "u2", UserID: "u3"})
		assert.ErrorIs(t, err, chat.ErrNotAdmin)
	})
}

func TestRemoveGroupMemberUseCase(t *testing.T) {
	ctx := context.Background()

	t.Run("admin removes a member", func(t *testing.T) {
		repo := newFakeChatRepo(groupOf("chat1", "u1", "u1", "u2", "u3"))
		uc := NewRemoveGroupMemberUseCase(repo)

		updated, err := uc.Execute(ctx, RemoveGroupMemberInput{ChatID: "chat1", ActorID: "u1", RemovedUserID: "u3"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"u1", "u2"}, updated.UserIDs)
	})

	t.Run("member leaves on their own", func(t *testing.T) {
		repo := newFakeChatRepo(groupOf("chat1", "u1", "u1", "u2", "u3"))
		uc := NewRemoveGroupMemberUseCase(repo)

		updated, err := uc.Execute(ctx, RemoveGroupMemberInput{ChatID: "chat1", ActorID: "u3", RemovedUserID: "u3"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"u1", "u2"}, updated.UserIDs)
	})

	t.Run("non-admin may not remove someone else", func(t *testing.T) {
		repo := newFakeChatRepo(groupOf("chat1", "u1", "u1", "u2", "u3"))
		uc := NewRemoveGroupMemberUseCase(repo)

		_, err := uc.Execute(ctx, RemoveGroupMemberInput{ChatID: "chat1", ActorID: "u2", RemovedUserID: "u3"})
		assert.ErrorIs(t, err, chat.ErrNotAdmin)
	})

	t.Run("target must be a participant", func(t *testing.T) {
		repo := newFakeChatRepo(groupOf("chat1", "u1", "u1", "u2"))
		uc := NewRemoveGroupMemberUseCase(repo)

		_, err := uc.Execute(ctx, RemoveGroupMemberInput{ChatID: "chat1", ActorID: "u1", RemovedUserID: "u9"})
		assert.ErrorIs(t, err, chat.ErrNotParticipant)
	})
}
