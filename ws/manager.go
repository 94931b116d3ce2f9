package ws

import (
	"sync"
	"time"

	"collab_backend/internal/logger"
)

// Event - сообщение, которое сервер пушит клиенту
type Event struct {
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub держит подключения пользователей. У одного пользователя может быть
// несколько вкладок, поэтому клиенты сгруппированы по userID.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			set, ok := h.clients[client.UserID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.UserID] = set
			}
			set[client] = struct{}{}
			h.mu.Unlock()
			logger.Debug("ws client registered", "user_id", client.UserID, "connections", len(set))

		case client := <-h.unregister:
			h.remove(client)

		case <-h.done:
			h.mu.Lock()
			for _, set := range h.clients {
				for client := range set {
					close(client.Send)
				}
			}
			h.clients = make(map[string]map[*Client]struct{})
			h.mu.Unlock()
			return
		}
	}
}

// Stop завершает Run и закрывает все соединения
func (h *Hub) Stop() {
	close(h.done)
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	close(client.Send)
	delete(set, client)
	if len(set) == 0 {
		delete(h.clients, client.UserID)
	}
	logger.Debug("ws client unregistered", "user_id", client.UserID)
}

// SendToUser доставляет событие во все соединения пользователя.
// Переполненный клиент отключается, отправка никогда не блокирует вызывающего.
func (h *Hub) SendToUser(userID string, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[userID] {
		select {
		case client.Send <- event:
		default:
			go h.leave(client)
			logger.Warn("ws send buffer full, dropping client", "user_id", userID)
		}
	}
}

func (h *Hub) join(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		close(client.Send)
	}
}

func (h *Hub) leave(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ConnectionCount - число открытых соединений пользователя
func (h *Hub) ConnectionCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) IsUserConnected(userID string) bool {
	return h.ConnectionCount(userID) > 0
}
