package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(nil, "test", nil)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(cancel)
	return hub, cancel
}

func newClient(hub *Hub, userID string) *Client {
	return &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 4)}
}

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.Send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
		return nil
	}
}

func TestHubDeliversToEveryDeviceOfUser(t *testing.T) {
	hub, _ := startHub(t)

	phone := newClient(hub, "u1")
	laptop := newClient(hub, "u1")
	other := newClient(hub, "u2")
	for _, c := range []*Client{phone, laptop, other} {
		require.True(t, hub.join(c))
	}
	require.Eventually(t, func() bool { return hub.ConnectionCount() == 3 }, time.Second, time.Millisecond)

	hub.Send(context.Background(), "u1", []byte(`{"type":"chat_response"}`))

	assert.Equal(t, `{"type":"chat_response"}`, string(receive(t, phone)))
	assert.Equal(t, `{"type":"chat_response"}`, string(receive(t, laptop)))
	assert.Empty(t, other.Send)
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub, _ := startHub(t)

	c := newClient(hub, "u1")
	require.True(t, hub.join(c))
	hub.leave(c)

	require.Eventually(t, func() bool { return hub.ConnectionCount() == 0 }, time.Second, time.Millisecond)
	_, open := <-c.Send
	assert.False(t, open)

	// a second leave for the same client must not close twice
	hub.leave(c)
}

func TestHubDropsWhenBufferFull(t *testing.T) {
	hub, _ := startHub(t)

	c := &Client{Hub: hub, UserID: "u1", Send: make(chan []byte, 1)}
	require.True(t, hub.join(c))
	require.Eventually(t, func() bool { return hub.ConnectionCount() == 1 }, time.Second, time.Millisecond)

	hub.Send(context.Background(), "u1", []byte("first"))
	hub.Send(context.Background(), "u1", []byte("second"))

	assert.Equal(t, "first", string(receive(t, c)))
	assert.Empty(t, c.Send)
}

func TestHubStopsCleanly(t *testing.T) {
	hub, cancel := startHub(t)

	c := newClient(hub, "u1")
	require.True(t, hub.join(c))
	cancel()

	_, open := <-c.Send
	assert.False(t, open)
	assert.False(t, hub.join(newClient(hub, "u2")))
	hub.leave(c)
}
