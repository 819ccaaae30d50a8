package ws

import (
	"sync"
	"time"

	"tawzif_backend/internal/logger"
	"tawzif_backend/internal/realtime"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client - одно подключение, подписанное на одну тему. Входящие сообщения не обрабатываются.
type Client struct {
	manager *Manager
	conn    *websocket.Conn
	sub     *realtime.Subscription
	topic   string
	done    chan struct{}
	once    sync.Once
}

func newClient(m *Manager, conn *websocket.Conn, sub *realtime.Subscription, topic string) *Client {
	return &Client{manager: m, conn: conn, sub: sub, topic: topic, done: make(chan struct{})}
}

func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
		c.sub.Close()
		c.conn.Close()
	})
}

func (c *Client) writeSnapshot(snap realtime.Snapshot) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(snap)
}

func (c *Client) readPump() {
	defer func() {
		c.close()
		select {
		case c.manager.unregister <- c:
		case <-c.manager.stopped:
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("ws read error", "topic", c.topic, "error", err.Error())
			}
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return
		case snap, ok := <-c.sub.C:
			if !ok {
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.writeSnapshot(snap); err != nil {
				logger.Warn("ws write error", "topic", c.topic, "error", err.Error())
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
