package ws

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/ws", func(c *gin.Context) {
		// в приложении userID кладет AuthMiddleware
		if id := c.Query("as"); id != "" {
			c.Set("userID", id)
		}
		c.Next()
	}, NewWebSocketHandler(hub, nil).ServeWS)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?as=" + userID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_SendToUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	srv := newTestServer(t, hub)
	alice := dial(t, srv, "alice")
	bob := dial(t, srv, "bob")

	require.Eventually(t, func() bool {
		return hub.IsUserConnected("alice") && hub.IsUserConnected("bob")
	}, time.Second, 10*time.Millisecond)

	hub.SendToUser("alice", Event{Type: "invitation.received", Data: map[string]string{"campaignId": "c1"}})

	var got Event
	require.NoError(t, alice.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, alice.ReadJSON(&got))
	assert.Equal(t, "invitation.received", got.Type)
	assert.False(t, got.Timestamp.IsZero())

	// bob ничего не получает
	require.NoError(t, bob.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	var none Event
	assert.Error(t, bob.ReadJSON(&none))
}

func TestHub_MultipleConnectionsPerUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	srv := newTestServer(t, hub)
	first := dial(t, srv, "carol")
	second := dial(t, srv, "carol")

	require.Eventually(t, func() bool {
		return hub.ConnectionCount("carol") == 2
	}, time.Second, 10*time.Millisecond)

	hub.SendToUser("carol", Event{Type: "draft.reviewed"})

	for _, conn := range []*websocket.Conn{first, second} {
		var got Event
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		require.NoError(t, conn.ReadJSON(&got))
		assert.Equal(t, "draft.reviewed", got.Type)
	}

	first.Close()
	require.Eventually(t, func() bool {
		return hub.ConnectionCount("carol") == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServeWS_RequiresSession(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	srv := newTestServer(t, hub)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 401, resp.StatusCode)
}

func TestSendToUser_NoConnections(t *testing.T) {
	hub := NewHub()
	assert.NotPanics(t, func() {
		hub.SendToUser("nobody", Event{Type: "noop"})
	})
	assert.False(t, hub.IsUserConnected("nobody"))
}
