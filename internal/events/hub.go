package events

import (
	"encoding/json"

	"vocalnotes/pkg/logger"
)

const (
	NoteCreated = "NOTE_CREATED" // A note was persisted for the first time
	NoteUpdated = "NOTE_UPDATED" // An existing note was replaced
	NoteDeleted = "NOTE_DELETED" // A note was removed
)

type Event struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans note change events out to every connected websocket client so
// other open sessions can refresh their lists.
type Hub struct {
	clients    map[*Client]bool
	Broadcast  chan Event
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Broadcast:  make(chan Event, 16),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true

		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}

		case event := <-h.Broadcast:
			payload, err := json.Marshal(event)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling broadcast event: %v", err)
				continue
			}
			for client := range h.clients {
				select {
				case client.Send <- payload:
				default:
					// The client is lagging; drop it to keep the hub moving.
					logger.Sugar.Warn("Client send buffer is full. Unregistering.")
					delete(h.clients, client)
					close(client.Send)
				}
			}
		}
	}
}

// Publish queues a note event without blocking the request path. Events are
// dropped when nothing is draining the hub.
func (h *Hub) Publish(eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Sugar.Errorf("Error marshalling %s payload: %v", eventType, err)
		return
	}
	select {
	case h.Broadcast <- Event{Type: eventType, Payload: data}:
	default:
		logger.Sugar.Warnf("Event hub is saturated, dropping %s event", eventType)
	}
}
