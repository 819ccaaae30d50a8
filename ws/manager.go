package ws

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"tawzif_backend/internal/logger"
	"tawzif_backend/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Manager держит активные подключения и подписывает их на темы хаба
type Manager struct {
	hub        *realtime.Hub
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	stopped    chan struct{}
	mu         sync.RWMutex
	upgrader   websocket.Upgrader
}

func NewManager(hub *realtime.Hub, allowedOrigins []string) *Manager {
	m := &Manager{
		hub:        hub,
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stopped:    make(chan struct{}),
	}
	m.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return m
}

func (m *Manager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(m.stopped)
			m.mu.Lock()
			for client := range m.clients {
				client.close()
			}
			m.clients = make(map[*Client]struct{})
			m.mu.Unlock()
			return

		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = struct{}{}
			total := len(m.clients)
			m.mu.Unlock()
			logger.Debug("ws client registered", "topic", client.topic, "total", total)

		case client := <-m.unregister:
			m.mu.Lock()
			if _, ok := m.clients[client]; ok {
				delete(m.clients, client)
			}
			total := len(m.clients)
			m.mu.Unlock()
			logger.Debug("ws client unregistered", "topic", client.topic, "total", total)
		}
	}
}

func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// Serve поднимает websocket, отправляет текущий снимок и дальше все обновления темы.
// Подписка оформляется до отправки снимка, чтобы не потерять обновление между ними.
func (m *Manager) Serve(c *gin.Context, topic string, current interface{}) error {
	initial, err := realtime.NewSnapshot(topic, current)
	if err != nil {
		return err
	}

	sub := m.hub.Subscribe(topic)
	conn, err := m.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		sub.Close()
		return err
	}

	client := newClient(m, conn, sub, topic)
	if err := client.writeSnapshot(initial); err != nil {
		client.close()
		return err
	}

	select {
	case m.register <- client:
	case <-m.stopped:
		client.close()
		return nil
	}
	go client.writePump()
	go client.readPump()
	return nil
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if set[origin] {
			return true
		}
		u, err := url.Parse(origin)
		return err == nil && u.Host == r.Host
	}
}
