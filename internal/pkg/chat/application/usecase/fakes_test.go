package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	cacheport "github.com/bahaa-alden/chatapp/internal/infrastructure/cache/port"
	chat "github.com/bahaa-alden/chatapp/internal/pkg/chat/application/domain"
)

// fakeChatRepo is an in-memory ChatRepository. Set failWith to force every
// call into the error path.
type fakeChatRepo struct {
	chats    map[string]*chat.Chat
	messages []chat.Message
	failWith error
	nextID   int
}

func newFakeChatRepo(chats ...*chat.Chat) *fakeChatRepo {
	repo := &fakeChatRepo{chats: make(map[string]*chat.Chat)}
	for _, c := range chats {
		repo.chats[c.ID] = c
	}
	return repo
}

func (r *fakeChatRepo) id(prefix string) string {
	r.nextID++
	return fmt.Sprintf("%s-%d", prefix, r.nextID)
}

func (r *fakeChatRepo) GetChat(ctx context.Context, chatID string) (*chat.Chat, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	c, ok := r.chats[chatID]
	if !ok {
		return nil, chat.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeChatRepo) CreateGroup(ctx context.Context, name string, adminID string, userIDs []string) (*chat.Chat, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	c := &chat.Chat{
		ID:           r.id("chat"),
		Name:         name,
		IsGroup:      true,
		GroupAdminID: &adminID,
		UserIDs:      append([]string(nil), userIDs...),
		CreatedAt:    time.Now().UTC(),
	}
	r.chats[c.ID] = c
	return c, nil
}

func (r *fakeChatRepo) RenameGroup(ctx context.Context, chatID string, name string) (*chat.Chat, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	c, ok := r.chats[chatID]
	if !ok {
		return nil, chat.ErrNotFound
	}
	c.Name = name
	copied := *c
	return &copied, nil
}

func (r *fakeChatRepo) AddMember(ctx context.Context, chatID string, userID string) (*chat.Chat, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	c, ok := r.chats[chatID]
	if !ok {
		return nil, chat.ErrNotFound
	}
	if !c.HasParticipant(userID) {
		c.UserIDs = append(c.UserIDs, userID)
	}
	copied := *c
	return &copied, nil
}

func (r *fakeChatRepo) RemoveMember(ctx context.Context, chatID string, userID string) (*chat.Chat, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	c, ok := r.chats[chatID]
	if !ok {
		return nil, chat.ErrNotFound
	}
	kept := c.UserIDs[:0]
	for _, uid := range c.UserIDs {
		if uid != userID {
			kept = append(kept, uid)
		}
	}
	c.UserIDs = kept
	copied := *c
	return &copied, nil
}

func (r *fakeChatRepo) IsParticipant(ctx context.Context, chatID string, userID string) (bool, error) {
	if r.failWith != nil {
		return false, r.failWith
	}
	c, ok := r.chats[chatID]
	if !ok {
		return false, nil
	}
	return c.HasParticipant(userID), nil
}

func (r *fakeChatRepo) SaveMessage(ctx context.Context, m chat.Message) (string, error) {
	if r.failWith != nil {
		return "", r.failWith
	}
	m.ID = r.id("msg")
	r.messages = append(r.messages, m)
	return m.ID, nil
}

func (r *fakeChatRepo) ListMessages(ctx context.Context, chatID string, limit int, offset int) ([]chat.Message, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []chat.Message
	for _, m := range r.messages {
		if m.ChatID == chatID {
			out = append(out, m)
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// fakeNotificationRepo keeps notifications keyed by (user, message) so
// repeated creates stay idempotent, mirroring the unique index.
type fakeNotificationRepo struct {
	byPair   map[string]*chat.Notification
	failWith error
	creates  int
	nextID   int
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{byPair: make(map[string]*chat.Notification)}
}

func pairKey(userID, messageID string) string {
	return userID + "/" + messageID
}

func newNotification(userID, messageID, chatID string) chat.Notification {
	return chat.Notification{UserID: userID, MessageID: messageID, ChatID: chatID}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n chat.Notification) (string, error) {
	if r.failWith != nil {
		return "", r.failWith
	}
	r.creates++
	key := pairKey(n.UserID, n.MessageID)
	if existing, ok := r.byPair[key]; ok {
		return existing.ID, nil
	}
	r.nextID++
	n.ID = fmt.Sprintf("notif-%d", r.nextID)
	n.CreatedAt = time.Now().UTC()
	r.byPair[key] = &n
	return n.ID, nil
}

func (r *fakeNotificationRepo) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]chat.PopulatedNotification, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]chat.PopulatedNotification, 0)
	for _, n := range r.byPair {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, r.populate(*n))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeNotificationRepo) GetPopulated(ctx context.Context, id string) (*chat.PopulatedNotification, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, n := range r.byPair {
		if n.ID == id {
			populated := r.populate(*n)
			return &populated, nil
		}
	}
	return nil, chat.ErrNotFound
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id string) error {
	if r.failWith != nil {
		return r.failWith
	}
	for _, n := range r.byPair {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return chat.ErrNotFound
}

func (r *fakeNotificationRepo) populate(n chat.Notification) chat.PopulatedNotification {
	return chat.PopulatedNotification{
		Notification: n,
		User:         chat.UserSummary{ID: n.UserID, Name: "user " + n.UserID},
		Message:      chat.Message{ID: n.MessageID, ChatID: n.ChatID},
		Chat:         chat.Chat{ID: n.ChatID},
	}
}

// fakeCache is an in-memory Cache with call counters.
type fakeCache struct {
	values map[string]string
	gets   int
	hits   int
	sets   int
	dels   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	c.gets++
	v, ok := c.values[key]
	if !ok {
		return "", cacheport.ErrMiss
	}
	c.hits++
	return v, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.sets++
	c.values[key] = value
	return nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) (int64, error) {
	c.dels++
	var removed int64
	for _, k := range keys {
		if _, ok := c.values[k]; ok {
			delete(c.values, k)
			removed++
		}
	}
	return removed, nil
}

func (c *fakeCache) Ping(ctx context.Context) error { return nil }

func (c *fakeCache) Close() error { return nil }
