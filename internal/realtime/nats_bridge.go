package realtime

import (
	"encoding/json"
	"fmt"

	"tawzif_backend/internal/logger"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

const Subject = "tawzif.snapshots"

type envelope struct {
	Origin   string   `json:"origin"`
	Snapshot Snapshot `json:"snapshot"`
}

// NATSBridge связывает хабы нескольких инстансов через NATS
type NATSBridge struct {
	conn   *nats.Conn
	sub    *nats.Subscription
	origin string
	hub    *Hub
}

func ConnectNATS(url string, hub *Hub) (*NATSBridge, error) {
	conn, err := nats.Connect(url,
		nats.Name("tawzif-backend"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err.Error())
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("nats reconnected", "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}

	b := &NATSBridge{conn: conn, origin: uuid.NewString(), hub: hub}

	b.sub, err = conn.Subscribe(Subject, b.handle)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", Subject, err)
	}

	hub.SetBridge(b)
	return b, nil
}

func (b *NATSBridge) Forward(s Snapshot) error {
	payload, err := json.Marshal(envelope{Origin: b.origin, Snapshot: s})
	if err != nil {
		return err
	}
	return b.conn.Publish(Subject, payload)
}

func (b *NATSBridge) handle(msg *nats.Msg) {
	var env envelope
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		logger.Warn("invalid snapshot message", "error", err.Error())
		return
	}
	// свои публикации уже доставлены локально
	if env.Origin == b.origin {
		return
	}
	b.hub.deliver(env.Snapshot)
}

func (b *NATSBridge) Close() {
	b.hub.SetBridge(nil)
	if b.sub != nil {
		_ = b.sub.Unsubscribe()
	}
	b.conn.Close()
}
