package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	chat "github.com/bahaa-alden/chatapp/internal/pkg/chat/application/domain"
	repository "github.com/bahaa-alden/chatapp/internal/pkg/chat/persistence/repository/port"
)

type PgNotificationRepository struct {
	pool *pgxpool.Pool
}

func NewPgNotificationRepository(pool *pgxpool.Pool) *PgNotificationRepository {
	return &PgNotificationRepository{pool: pool}
}

// Ensure interface compliance at compile time
var _ repository.NotificationRepository = (*PgNotificationRepository)(nil)

// populatedSelect resolves all three relations with inner joins, so a
// notification whose user, message or chat is missing drops out of the result
// set entirely instead of surfacing half-populated.
const populatedSelect = `
	SELECT n.id::text, n.user_id::text, n.message_id::text, n.chat_id::text, n.read, n.created_at,
	       u.id::text, u.name, u.email, COALESCE(u.photo, ''),
	       m.id::text, m.chat_id::text, m.sender_id::text, m.content, m.created_at,
	       c.id::text, c.name, c.is_group, c.group_admin_id::text, c.created_at
	FROM notifications n
	JOIN users u ON u.id = n.user_id
	JOIN messages m ON m.id = n.message_id
	JOIN chats c ON c.id = n.chat_id
`

func (r *PgNotificationRepository) Create(ctx context.Context, n chat.Notification) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgNotificationRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO notifications (user_id, message_id, chat_id, read, created_at)
		VALUES ($1::uuid, $2::uuid, $3::uuid, FALSE, now())
		ON CONFLICT (user_id, message_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id::text
	`, n.UserID, n.MessageID, n.ChatID).Scan(&id)
	return id, err
}

func (r *PgNotificationRepository) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]chat.PopulatedNotification, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNotificationRepository: nil pool")
	}
	query := populatedSelect + ` WHERE n.user_id = $1::uuid`
	if unreadOnly {
		query += ` AND NOT n.read`
	}
	query += ` ORDER BY n.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []chat.PopulatedNotification
	for rows.Next() {
		n, err := scanPopulated(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *n)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (r *PgNotificationRepository) GetPopulated(ctx context.Context, id string) (*chat.PopulatedNotification, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgNotificationRepository: nil pool")
	}
	rows, err := r.pool.Query(ctx, populatedSelect+` WHERE n.id = $1::uuid`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if rows.Err() != nil {
			return nil, rows.Err()
		}
		return nil, chat.ErrNotFound
	}
	return scanPopulated(rows)
}

func (r *PgNotificationRepository) MarkRead(ctx context.Context, id string) error {
	if r == nil || r.pool == nil {
		return errors.New("PgNotificationRepository: nil pool")
	}
	ct, err := r.pool.Exec(ctx, `
		UPDATE notifications SET read = TRUE WHERE id = $1::uuid
	`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return chat.ErrNotFound
	}
	return nil
}

func scanPopulated(rows pgx.Rows) (*chat.PopulatedNotification, error) {
	var n chat.PopulatedNotification
	err := rows.Scan(
		&n.ID, &n.UserID, &n.MessageID, &n.ChatID, &n.Read, &n.CreatedAt,
		&n.User.ID, &n.User.Name, &n.User.Email, &n.User.Photo,
		&n.Message.ID, &n.Message.ChatID, &n.Message.SenderID, &n.Message.Content, &n.Message.CreatedAt,
		&n.Chat.ID, &n.Chat.Name, &n.Chat.IsGroup, &n.Chat.GroupAdminID, &n.Chat.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
