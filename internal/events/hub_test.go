package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(c chan Event) []Event {
	var out []Event
	for {
		select {
		case ev := <-c:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestHub_UserChannel(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(42)
	other := hub.Subscribe(43)

	hub.PublishUser(42, EventWalletUpdated, "payload")

	got := drain(sub.C)
	require.Len(t, got, 1)
	assert.Equal(t, EventWalletUpdated, got[0].Type)
	assert.Equal(t, "payload", got[0].Payload)
	assert.False(t, got[0].Timestamp.IsZero())
	assert.Empty(t, drain(other.C))
}

func TestHub_Rooms(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe(1)
	b := hub.Subscribe(2)
	c := hub.Subscribe(3)

	hub.JoinRoom(a, 100)
	hub.JoinRoom(b, 100)
	hub.JoinRoom(c, 200)
	assert.Equal(t, 2, hub.RoomSize(100))

	hub.PublishRoom(100, EventBidAccepted, nil)
	assert.Len(t, drain(a.C), 1)
	assert.Len(t, drain(b.C), 1)
	assert.Empty(t, drain(c.C))

	t.Run("JoinTwiceIsNoOp", func(t *testing.T) {
		hub.JoinRoom(a, 100)
		assert.Equal(t, 2, hub.RoomSize(100))
		hub.PublishRoom(100, EventBidAccepted, nil)
		assert.Len(t, drain(a.C), 1)
	})

	t.Run("Leave", func(t *testing.T) {
		hub.LeaveRoom(a, 100)
		assert.Equal(t, 1, hub.RoomSize(100))
		hub.PublishRoom(100, EventBidAccepted, nil)
		assert.Empty(t, drain(a.C))
		assert.Len(t, drain(b.C), 1)
	})
}

func TestHub_OrderingPerScope(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(7)
	hub.JoinRoom(sub, 300)

	hub.PublishRoom(300, EventAuctionStarted, 1)
	hub.PublishRoom(300, EventBidAccepted, 2)
	hub.PublishRoom(300, EventAuctionClosed, 3)

	got := drain(sub.C)
	require.Len(t, got, 3)
	assert.Equal(t, EventAuctionStarted, got[0].Type)
	assert.Equal(t, EventBidAccepted, got[1].Type)
	assert.Equal(t, EventAuctionClosed, got[2].Type)
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(8)

	for i := 0; i < subscriberBuffer+10; i++ {
		hub.PublishUser(8, EventNotification, i)
	}

	// The buffer is full, the overflow was dropped, and the publisher never
	// blocked to get here.
	assert.Len(t, drain(sub.C), subscriberBuffer)
}

func TestHub_Unsubscribe(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(9)
	hub.JoinRoom(sub, 400)

	hub.Unsubscribe(sub)
	assert.Equal(t, 0, hub.RoomSize(400))

	// The channel is closed so a pumping goroutine can exit.
	_, open := <-sub.C
	assert.False(t, open)

	hub.PublishUser(9, EventNotification, nil)
	hub.PublishRoom(400, EventBidAccepted, nil)
}
