// Package realtime рассылает снимки сущностей подписчикам (websocket-клиентам).
package realtime

import (
	"encoding/json"
	"sync"
	"time"
)

func ListingTopic(id string) string { return "listing:" + id }

func ProfileTopic(id string) string { return "profile:" + id }

// Snapshot - актуальное состояние сущности на момент At
type Snapshot struct {
	Topic string          `json:"topic"`
	Data  json.RawMessage `json:"data"`
	At    time.Time       `json:"at"`
}

// Bridge пересылает локальные публикации другим инстансам
type Bridge interface {
	Forward(s Snapshot) error
}

type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscription]struct{}
	buffer int
	bridge Bridge
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{subs: make(map[string]map[*Subscription]struct{}), buffer: buffer}
}

func (h *Hub) SetBridge(b Bridge) {
	h.mu.Lock()
	h.bridge = b
	h.mu.Unlock()
}

// Subscription - подписка на тему. C закрывается после Close.
type Subscription struct {
	C     <-chan Snapshot
	ch    chan Snapshot
	topic string
	hub   *Hub
	once  sync.Once
}

func (h *Hub) Subscribe(topic string) *Subscription {
	ch := make(chan Snapshot, h.buffer)
	sub := &Subscription{C: ch, ch: ch, topic: topic, hub: h}

	h.mu.Lock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[*Subscription]struct{})
	}
	h.subs[topic][sub] = struct{}{}
	h.mu.Unlock()

	return sub
}

// Close отписывает. Повторный вызов ничего не делает.
func (s *Subscription) Close() {
	s.once.Do(func() {
		h := s.hub
		h.mu.Lock()
		if set := h.subs[s.topic]; set != nil {
			delete(set, s)
			if len(set) == 0 {
				delete(h.subs, s.topic)
			}
		}
		close(s.ch)
		h.mu.Unlock()
	})
}

func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[topic])
}

func NewSnapshot(topic string, v interface{}) (Snapshot, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Topic: topic, Data: data, At: time.Now().UTC()}, nil
}

// Publish сериализует v и раздаёт локальным подписчикам, затем мосту
func (h *Hub) Publish(topic string, v interface{}) error {
	snap, err := NewSnapshot(topic, v)
	if err != nil {
		return err
	}

	h.deliver(snap)

	h.mu.RLock()
	bridge := h.bridge
	h.mu.RUnlock()
	if bridge != nil {
		return bridge.Forward(snap)
	}
	return nil
}

// deliver не блокирует издателя: медленный подписчик теряет самый старый снимок
func (h *Hub) deliver(snap Snapshot) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[snap.Topic] {
		select {
		case sub.ch <- snap:
		default:
			select {
			case <-sub.ch:
			default:
			}
			select {
			case sub.ch <- snap:
			default:
			}
		}
	}
}
