package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"agriconnect-backend/internal/logger"
)

const subscriberBuffer = 64

// Subscriber receives events on C. A subscriber that stops draining C has
// events dropped rather than blocking the publishing side.
type Subscriber struct {
	ID        string
	AccountID int64
	C         chan Event
}

// Hub is the in-process fan-out transport. Rooms are keyed by auction id,
// personal channels by account id. Ordering is preserved per scope because
// publishes for a scope happen under the hub lock in call order.
type Hub struct {
	mu    sync.Mutex
	rooms map[int64]map[string]*Subscriber
	users map[int64]map[string]*Subscriber
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[int64]map[string]*Subscriber),
		users: make(map[int64]map[string]*Subscriber),
	}
}

// Subscribe registers a connection for accountID's personal channel and
// returns the subscriber handle used for room membership.
func (h *Hub) Subscribe(accountID int64) *Subscriber {
	sub := &Subscriber{
		ID:        uuid.NewString(),
		AccountID: accountID,
		C:         make(chan Event, subscriberBuffer),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.users[accountID] == nil {
		h.users[accountID] = make(map[string]*Subscriber)
	}
	h.users[accountID][sub.ID] = sub
	return sub
}

// Unsubscribe removes the subscriber from its personal channel and every room.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, ok := h.users[sub.AccountID]; ok {
		delete(subs, sub.ID)
		if len(subs) == 0 {
			delete(h.users, sub.AccountID)
		}
	}
	for auctionID, subs := range h.rooms {
		delete(subs, sub.ID)
		if len(subs) == 0 {
			delete(h.rooms, auctionID)
		}
	}
	close(sub.C)
}

// JoinRoom adds the subscriber to an auction room. Joining twice is a no-op.
func (h *Hub) JoinRoom(sub *Subscriber, auctionID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.rooms[auctionID] == nil {
		h.rooms[auctionID] = make(map[string]*Subscriber)
	}
	h.rooms[auctionID][sub.ID] = sub
}

func (h *Hub) LeaveRoom(sub *Subscriber, auctionID int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.rooms[auctionID]; ok {
		delete(subs, sub.ID)
		if len(subs) == 0 {
			delete(h.rooms, auctionID)
		}
	}
}

// RoomSize reports the current number of watchers of an auction.
func (h *Hub) RoomSize(auctionID int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[auctionID])
}

func (h *Hub) PublishRoom(auctionID int64, event EventType, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deliver(h.rooms[auctionID], event, payload)
}

func (h *Hub) PublishUser(accountID int64, event EventType, payload any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deliver(h.users[accountID], event, payload)
}

func (h *Hub) deliver(subs map[string]*Subscriber, event EventType, payload any) {
	if len(subs) == 0 {
		return
	}
	ev := Event{Type: event, Payload: payload, Timestamp: time.Now()}
	for _, sub := range subs {
		select {
		case sub.C <- ev:
		default:
			logger.Warn("Dropping event for slow subscriber", "subscriber", sub.ID, "event", event)
		}
	}
}
