package websocket

import (
	"context"

	"github.com/gofiber/websocket/v2"
)

// ServeWs runs one chat connection until the peer goes away or the hub stops.
func ServeWs(ctx context.Context, hub *Hub, c *websocket.Conn, userID string, respond Responder) {
	client := &Client{
		Hub:     hub,
		Conn:    c,
		UserID:  userID,
		Send:    make(chan []byte, 256),
		ctx:     ctx,
		respond: respond,
	}
	if !hub.join(client) {
		c.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
