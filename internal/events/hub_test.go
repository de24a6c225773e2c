package events

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocalnotes/internal/note/model"
)

// Helper to read one event from a WebSocket connection with a timeout.
func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	var event Event
	conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	_, p, err := conn.ReadMessage()
	require.NoError(t, err, "Failed to read message from WebSocket")
	require.NoError(t, json.Unmarshal(p, &event), "Failed to unmarshal event JSON")
	return event
}

func TestHubBroadcastsNoteEvents(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")

	conn1, _, err := websocket.DefaultDialer.Dial(wsURL+"/ws", nil)
	require.NoError(t, err, "Client 1 failed to connect")
	defer conn1.Close()

	conn2, _, err := websocket.DefaultDialer.Dial(wsURL+"/ws", nil)
	require.NoError(t, err, "Client 2 failed to connect")
	defer conn2.Close()

	// Registration races the publish; give the hub a beat to pick both up.
	time.Sleep(50 * time.Millisecond)

	n := model.Note{
		ID:       "7f9c45c1-53d4-4a36-9d1c-0a2a4f8b2a11",
		Title:    "Client meeting",
		Content:  "Meeting with client tomorrow at 3pm",
		Category: model.CategoryAppointment,
	}
	hub.Publish(NoteCreated, n)

	for _, conn := range []*websocket.Conn{conn1, conn2} {
		event := readEvent(t, conn)
		assert.Equal(t, NoteCreated, event.Type)

		var got model.Note
		require.NoError(t, json.Unmarshal(event.Payload, &got))
		assert.Equal(t, n.ID, got.ID)
		assert.Equal(t, n.Title, got.Title)
	}

	hub.Publish(NoteDeleted, map[string]string{"id": n.ID})
	event := readEvent(t, conn1)
	assert.Equal(t, NoteDeleted, event.Type)
}
