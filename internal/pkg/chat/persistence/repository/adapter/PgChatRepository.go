package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "github.com/bahaa-alden/chatapp/internal/pkg/chat/application/domain"
	repository "github.com/bahaa-alden/chatapp/internal/pkg/chat/persistence/repository/port"
)

type PgChatRepository struct {
	pool *pgxpool.Pool
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool}
}

// Ensure interface compliance at compile time
var _ repository.ChatRepository = (*PgChatRepository)(nil)

func (r *PgChatRepository) GetChat(ctx context.Context, chatID string) (*chat.Chat, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	var c chat.Chat
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, name, is_group, group_admin_id::text, created_at
		FROM chats WHERE id = $1::uuid
	`, chatID).Scan(&c.ID, &c.Name, &c.IsGroup, &c.GroupAdminID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, chat.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	userIDs, err := r.listMemberIDs(ctx, chatID)
	if err != nil {
		return nil, err
	}
	c.UserIDs = userIDs
	return &c, nil
}

func (r *PgChatRepository) CreateGroup(ctx context.Context, name string, adminID string, userIDs []string) (*chat.Chat, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id string
	err = tx.QueryRow(ctx, `
		INSERT INTO chats (name, is_group, group_admin_id, created_at)
		VALUES ($1, TRUE, $2::uuid, now())
		RETURNING id::text
	`, name, adminID).Scan(&id)
	if err != nil {
		return nil, err
	}

	for _, uid := range userIDs {
		if uid == "" {
			continue
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO chat_users (chat_id, user_id)
			VALUES ($1::uuid, $2::uuid)
			ON CONFLICT (chat_id, user_id) DO NOTHING
		`, id, uid); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetChat(ctx, id)
}

func (r *PgChatRepository) RenameGroup(ctx context.Context, chatID string, name string) (*chat.Chat, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE chats SET name = $2 WHERE id = $1::uuid AND is_group
	`, chatID, name)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		return nil, chat.ErrNotFound
	}
	return r.GetChat(ctx, chatID)
}

func (r *PgChatRepository) AddMember(ctx context.Context, chatID string, userID string) (*chat.Chat, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO chat_users (chat_id, user_id)
		VALUES ($1::uuid, $2::uuid)
		ON CONFLICT (chat_id, user_id) DO NOTHING
	`, chatID, userID)
	if err != nil {
		return nil, err
	}
	return r.GetChat(ctx, chatID)
}

func (r *PgChatRepository) RemoveMember(ctx context.Context, chatID string, userID string) (*chat.Chat, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	_, err := r.pool.Exec(ctx, `
		DELETE FROM chat_users WHERE chat_id = $1::uuid AND user_id = $2::uuid
	`, chatID, userID)
	if err != nil {
		return nil, err
	}
	return r.GetChat(ctx, chatID)
}

func (r *PgChatRepository) IsParticipant(ctx context.Context, chatID string, userID string) (bool, error) {
	if r == nil || r.pool == nil {
		return false, errors.New("PgChatRepository: nil pool")
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM chat_users WHERE chat_id = $1::uuid AND user_id = $2::uuid
		)
	`, chatID, userID).Scan(&exists)
	return exists, err
}

func (r *PgChatRepository) SaveMessage(ctx context.Context, m chat.Message) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgChatRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (chat_id, sender_id, content, created_at)
		VALUES ($1::uuid, $2::uuid, $3, $4)
		RETURNING id::text
	`, m.ChatID, m.SenderID, m.Content, m.CreatedAt).Scan(&id)
	return id, err
}

func (r *PgChatRepository) ListMessages(ctx context.Context, chatID string, limit int, offset int) ([]chat.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgChatRepository: nil pool")
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, chat_id::text, sender_id::text, content, created_at
		FROM messages
		WHERE chat_id = $1::uuid
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, chatID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []chat.Message
	for rows.Next() {
		var msg chat.Message
		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.SenderID, &msg.Content, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return msgs, nil
}

func (r *PgChatRepository) listMemberIDs(ctx context.Context, chatID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id::text FROM chat_users WHERE chat_id = $1::uuid
	`, chatID)
	if err != nil {
		return nil, fmt.Errorf("list chat members: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
