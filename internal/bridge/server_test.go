package bridge

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
	"go.uber.org/zap"

	"skinbridge/internal/status"
)

func testServer(t *testing.T) (*Server, *Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(zap.NewNop())
	srv := NewServer(0, "1.0", hub, status.NewTracker(nil), zap.NewNop())
	ts := httptest.NewServer(http.HandlerFunc(srv.handleWS))
	t.Cleanup(func() {
		hub.Stop()
		ts.Close()
	})
	return srv, hub, ts
}

func dialClient(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// every connection starts with the handshake frame
	var handshake ConnectedMessage
	require.NoError(t, conn.ReadJSON(&handshake))
	require.Equal(t, TypeConnected, handshake.Type)
	require.Equal(t, "1.0", handshake.Version)
	return conn
}

func TestServer_HandshakeAndFanOut(t *testing.T) {
	_, hub, ts := testServer(t)

	clients := []*websocket.Conn{
		dialClient(t, ts),
		dialClient(t, ts),
		dialClient(t, ts),
	}
	require.Equal(t, 3, hub.ConnectionCount())

	hub.Broadcast(ChampSelectEndMessage{Type: TypeChampSelectEnd})

	for _, c := range clients {
		c.SetReadDeadline(time.Now().Add(2 * time.Second))
		var msg map[string]interface{}
		require.NoError(t, c.ReadJSON(&msg))
		assert.Equal(t, TypeChampSelectEnd, msg["type"])
	}
}

func TestServer_FailedWriteDropsOnlyThatClient(t *testing.T) {
	_, hub, ts := testServer(t)

	dead := dialClient(t, ts)
	alive1 := dialClient(t, ts)
	alive2 := dialClient(t, ts)
	require.Equal(t, 3, hub.ConnectionCount())

	dead.Close()

	// broadcasts continue until the dead connection's write fails and it
	// is dropped from the registry
	require.Eventually(t, func() bool {
		hub.Broadcast(ChampSelectEndMessage{Type: TypeChampSelectEnd})
		return hub.ConnectionCount() == 2
	}, 3*time.Second, 50*time.Millisecond)

	hub.Broadcast(ChampSelectUpdateMessage{Type: TypeChampSelectUpdate, ChampionID: "Ahri"})

	for _, c := range []*websocket.Conn{alive1, alive2} {
		c.SetReadDeadline(time.Now().Add(2 * time.Second))
		sawUpdate := false
		for !sawUpdate {
			var msg map[string]interface{}
			require.NoError(t, c.ReadJSON(&msg))
			if msg["type"] == TypeChampSelectUpdate {
				assert.Equal(t, "Ahri", msg["championId"])
				sawUpdate = true
			}
		}
	}
}

func TestServer_SetSkinMessage(t *testing.T) {
	srv, _, ts := testServer(t)

	received := make(chan int, 4)
	srv.OnSetSkin(func(skinID int) { received <- skinID })

	conn := dialClient(t, ts)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "setSkin", "skinId": 103008}))
	select {
	case id := <-received:
		assert.Equal(t, 103008, id)
	case <-time.After(2 * time.Second):
		t.Fatal("setSkin callback never fired")
	}

	// everything else is silently ignored: unknown types, non-positive ids,
	// malformed frames
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "reload"}))
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "setSkin", "skinId": 0}))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	select {
	case id := <-received:
		t.Fatalf("unexpected callback for skin %d", id)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestServer_StatusEndpoints(t *testing.T) {
	hub := NewHub(zap.NewNop())
	tracker := status.NewTracker(nil)
	tracker.SetSession(status.ChampSelect)
	srv := NewServer(0, "1.0", hub, tracker, zap.NewNop())

	ts := httptest.NewServer(http.HandlerFunc(srv.handleStatus))
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, status.ChampSelect, body["status"])
}

func TestHub_StopClosesEverything(t *testing.T) {
	_, hub, ts := testServer(t)

	conn := dialClient(t, ts)
	require.Equal(t, 1, hub.ConnectionCount())

	hub.Stop()
	assert.Equal(t, 0, hub.ConnectionCount())

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
}
