package realtime

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"rentitforward/internal/domain/entity"
	"rentitforward/pkg/logger"
)

// Client is one user's live notification stream.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager fans notifications out to connected clients so in-app
// badges update without polling. A user has at most one live stream;
// a reconnect replaces the previous one.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan []byte
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte),
	}
}

// Start runs the manager's main loop until ctx is cancelled.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				if existing, ok := m.clients[client.UserID]; ok {
					close(existing.Send)
				}
				m.clients[client.UserID] = client
				m.mutex.Unlock()
				logger.Debug("Notification stream opened: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if current, ok := m.clients[client.UserID]; ok && current == client {
					delete(m.clients, client.UserID)
					close(client.Send)
				}
				m.mutex.Unlock()
				logger.Debug("Notification stream closed: %s", client.UserID)

			case message := <-m.broadcast:
				m.mutex.Lock()
				for userID, client := range m.clients {
					select {
					case client.Send <- message:
					default:
						close(client.Send)
						delete(m.clients, userID)
					}
				}
				m.mutex.Unlock()

			case <-ctx.Done():
				return
			}
		}
	}()
}

// PushNotification streams a stored notification to its recipient if
// they are connected. Returns false when the user has no open stream.
func (m *Manager) PushNotification(notification *entity.Notification) bool {
	message, err := json.Marshal(map[string]interface{}{
		"event":        "notification",
		"notification": notification,
	})
	if err != nil {
		logger.Error("Failed to encode notification %s: %v", notification.ID, err)
		return false
	}
	return m.SendToUser(notification.UserID, message)
}

// BroadcastAnnouncement sends a system announcement to every open
// stream.
func (m *Manager) BroadcastAnnouncement(text string) {
	message, err := json.Marshal(map[string]interface{}{
		"event": "announcement",
		"text":  text,
	})
	if err != nil {
		logger.Error("Failed to encode announcement: %v", err)
		return
	}
	m.broadcast <- message
}

// SendToUser delivers raw bytes to one user's stream.
func (m *Manager) SendToUser(userID string, message []byte) bool {
	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if !ok {
		return false
	}
	select {
	case client.Send <- message:
		return true
	default:
		return false
	}
}

// ConnectedUsers returns how many streams are open.
func (m *Manager) ConnectedUsers() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// ReadPump drains the connection until the client goes away. Inbound
// frames are read-receipt pings only; content is ignored.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Notification stream error for %s: %v", c.UserID, err)
			}
			break
		}
	}
}

// WritePump forwards queued messages to the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}
