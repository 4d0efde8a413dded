package realtime

import (
	"log/slog"
	"sync"
)

// Hub owns the connection registry and the room membership table. Rooms come
// in two flavours sharing one key space: identity rooms (key = user id,
// joined automatically on Identify) and chat rooms (key = chat id, joined
// explicitly). A room exists only while at least one connection is in it.
//
// All state lives behind one RWMutex; broadcasts hold the read lock for the
// whole fan-out so a concurrent disconnect can never expose a half-removed
// handle.
type Hub struct {
	mu  sync.RWMutex
	log *slog.Logger

	sessions     map[string]*Connection            // connection id -> connection
	identities   map[string]string                 // connection id -> user id
	rooms        map[string]map[string]*Connection // room id -> connection id -> connection
	sessionRooms map[string]map[string]struct{}    // connection id -> set of room ids
}

// NewHub constructs an initialized Hub. A nil logger falls back to the
// process default.
func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		log:          log,
		sessions:     make(map[string]*Connection),
		identities:   make(map[string]string),
		rooms:        make(map[string]map[string]*Connection),
		sessionRooms: make(map[string]map[string]struct{}),
	}
}

// Register tracks a new connection and starts its write loop. The connection
// stays unidentified until Identify is called for it.
func (h *Hub) Register(conn *Connection) {
	h.mu.Lock()
	h.sessions[conn.ID] = conn
	h.sessionRooms[conn.ID] = make(map[string]struct{})
	h.mu.Unlock()

	conn.Start()
}

// Identify associates a verified user id with the connection and joins it to
// the user's identity room. Calling it again with a different id is anomalous;
// the last write wins, the old identity room is left, and the event is logged.
func (h *Hub) Identify(connID, userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.sessions[connID]
	if !ok {
		return
	}

	if previous, identified := h.identities[connID]; identified && previous != userID {
		h.log.Warn("connection re-identified with a different user id",
			"connection_id", connID, "previous_user_id", previous, "user_id", userID)
		h.leaveLocked(previous, connID)
	}

	h.identities[connID] = userID
	h.joinLocked(userID, conn)
}

// IdentityOf reports the user id associated with the connection, if any.
func (h *Hub) IdentityOf(connID string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	userID, ok := h.identities[connID]
	return userID, ok
}

// Deregister removes the connection from the registry and from every room it
// joined. Safe to call for connections that were never registered.
func (h *Hub) Deregister(conn *Connection) {
	h.mu.Lock()
	h.deregisterLocked(conn.ID)
	h.mu.Unlock()
}

// Join adds the connection to the room. Joining twice has the effect of
// joining once. Unregistered connections are ignored.
func (h *Hub) Join(roomID string, conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[conn.ID]; !ok {
		return
	}
	h.joinLocked(roomID, conn)
}

// Leave removes the connection from the room.
func (h *Hub) Leave(roomID string, conn *Connection) {
	h.mu.Lock()
	h.leaveLocked(roomID, conn.ID)
	h.mu.Unlock()
}

// MembersOf returns the connection ids currently joined to the room. An
// unknown or empty room yields an empty slice, never an error.
func (h *Hub) MembersOf(roomID string) []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room := h.rooms[roomID]
	members := make([]string, 0, len(room))
	for id := range room {
		members = append(members, id)
	}
	return members
}

// Broadcast writes payload to every member of the room except the excluded
// connection. A failed send to one member never aborts delivery to the rest.
// Returns the number of successful deliveries.
func (h *Hub) Broadcast(roomID string, payload []byte, excludeConnID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room := h.rooms[roomID]
	if len(room) == 0 {
		return 0
	}

	delivered := 0
	for id, conn := range room {
		if excludeConnID != "" && id == excludeConnID {
			continue
		}
		if err := conn.Send(payload); err != nil {
			h.log.Debug("dropped delivery to connection",
				"connection_id", id, "room_id", roomID, "error", err)
			continue
		}
		delivered++
	}
	return delivered
}

// NotifyUser delivers payload to every connection in the user's identity
// room, covering all of the user's open tabs and devices.
func (h *Hub) NotifyUser(userID string, payload []byte) int {
	return h.Broadcast(userID, payload, "")
}

// Close terminates every tracked connection and clears all hub state.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := make([]*Connection, 0, len(h.sessions))
	for _, conn := range h.sessions {
		sessions = append(sessions, conn)
	}
	h.sessions = make(map[string]*Connection)
	h.identities = make(map[string]string)
	h.rooms = make(map[string]map[string]*Connection)
	h.sessionRooms = make(map[string]map[string]struct{})
	h.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(1001, "hub shutdown")
	}
}

func (h *Hub) joinLocked(roomID string, conn *Connection) {
	room := h.rooms[roomID]
	if room == nil {
		room = make(map[string]*Connection)
		h.rooms[roomID] = room
	}
	room[conn.ID] = conn

	memberships := h.sessionRooms[conn.ID]
	if memberships == nil {
		memberships = make(map[string]struct{})
		h.sessionRooms[conn.ID] = memberships
	}
	memberships[roomID] = struct{}{}
}

func (h *Hub) leaveLocked(roomID, connID string) {
	room := h.rooms[roomID]
	if room == nil {
		return
	}
	delete(room, connID)
	if len(room) == 0 {
		delete(h.rooms, roomID)
	}
	if memberships, ok := h.sessionRooms[connID]; ok {
		delete(memberships, roomID)
	}
}

func (h *Hub) deregisterLocked(connID string) {
	if _, ok := h.sessions[connID]; !ok {
		return
	}
	delete(h.sessions, connID)
	delete(h.identities, connID)

	for roomID := range h.sessionRooms[connID] {
		h.leaveLocked(roomID, connID)
	}
	delete(h.sessionRooms, connID)
}
