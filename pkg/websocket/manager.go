package websocket

import (
	"encoding/json"
	"strconv"
	"sync"

	"github.com/jerealeksanteri/rounds-api-sub000/pkg/redis"

	"github.com/gorilla/websocket"
)

// Event is the envelope pushed over a live channel.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client is one connected user's live channel.
type Client struct {
	UserID uint
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager tracks every connected user's live channel. A user's channel is
// keyed by the string form of their id.
type Manager struct {
	clients map[string]*Client
	lock    sync.RWMutex
}

var manager = &Manager{
	clients: make(map[string]*Client),
}

// GetManager returns the global live-channel manager.
func GetManager() *Manager {
	return manager
}

// AddClient registers a connection and replays any queued offline events.
func (m *Manager) AddClient(userID uint, client *Client) {
	key := channelKey(userID)
	m.lock.Lock()
	m.clients[key] = client
	m.lock.Unlock()

	go m.replayOfflineEvents(userID, client)
}

// RemoveClient drops a connection and closes its send channel.
func (m *Manager) RemoveClient(userID uint) {
	m.lock.Lock()
	defer m.lock.Unlock()
	key := channelKey(userID)
	if c, ok := m.clients[key]; ok {
		close(c.Send)
		delete(m.clients, key)
	}
}

// IsOnline reports whether the user has a live channel connected.
func (m *Manager) IsOnline(userID uint) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	_, ok := m.clients[channelKey(userID)]
	return ok
}

// PublishToUser pushes one event to the user's live channel. Delivery is
// best-effort and never retried: a full send buffer drops the event, and an
// offline recipient gets it parked in the redis queue instead.
func (m *Manager) PublishToUser(userID uint, eventName string, payload interface{}) {
	raw, err := json.Marshal(Event{Type: eventName, Payload: payload})
	if err != nil {
		return
	}

	m.lock.RLock()
	client, ok := m.clients[channelKey(userID)]
	m.lock.RUnlock()

	if ok {
		select {
		case client.Send <- raw:
		default:
			// send buffer full, connection is likely dead
		}
		return
	}

	if redis.Ready() {
		go func() {
			_ = redis.AddOfflineEvent(userID, raw)
		}()
	}
}

// replayOfflineEvents pushes queued events to a freshly connected client,
// then clears the queue.
func (m *Manager) replayOfflineEvents(userID uint, client *Client) {
	if !redis.Ready() {
		return
	}

	payloads, err := redis.GetOfflineEvents(userID, redis.MaxOfflineEvents)
	if err != nil || len(payloads) == 0 {
		return
	}

	for _, payload := range payloads {
		select {
		case client.Send <- payload:
		default:
			return
		}
	}

	_ = redis.ClearOfflineEvents(userID)
}

func channelKey(userID uint) string {
	return strconv.FormatUint(uint64(userID), 10)
}
