package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *RealtimeHub, userID string) (*websocket.Conn, *WSClient) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	registered := make(chan *WSClient, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		cl := NewWSClient(userID, conn)
		hub.Register(cl)
		registered <- cl
	}))
	t.Cleanup(srv.Close)

	url := strings.Replace(srv.URL, "http", "ws", 1)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn, <-registered
}

func TestBroadcastReachesOwnersSessionsOnly(t *testing.T) {
	hub := NewRealtimeHub()
	alice, _ := dialHub(t, hub, "user-alice")
	bob, _ := dialHub(t, hub, "user-bob")

	hub.BroadcastAnalysisSaved("user-alice", map[string]any{"ID": 7})

	require.NoError(t, alice.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := alice.ReadMessage()
	require.NoError(t, err)

	var event struct {
		Kind     string         `json:"kind"`
		Analysis map[string]any `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(msg, &event))
	assert.Equal(t, "analysis.saved", event.Kind)
	assert.Equal(t, 7.0, event.Analysis["ID"])

	require.NoError(t, bob.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err = bob.ReadMessage()
	assert.Error(t, err, "other users must not receive the event")
}

func TestConcurrentBroadcastsToOneSession(t *testing.T) {
	// Two saves for the same user may land at the same time; both broadcasts
	// must funnel through the session's single write pump.
	hub := NewRealtimeHub()
	conn, cl := dialHub(t, hub, "user-alice")
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	received := make(chan int)
	go func() {
		n := 0
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				received <- n
				return
			}
			n++
		}
	}()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				hub.BroadcastAnalysisSaved("user-alice", map[string]any{"ID": i})
			}
		}()
	}
	wg.Wait()

	hub.Unregister(cl)

	n := <-received
	assert.Greater(t, n, 0, "the session must have received events")
}

func TestUnregisterTwiceIsANoop(t *testing.T) {
	hub := NewRealtimeHub()
	_, cl := dialHub(t, hub, "user-alice")

	hub.Unregister(cl)
	hub.Unregister(cl)
	hub.BroadcastAnalysisSaved("user-alice", map[string]any{"ID": 1})
}

func TestBroadcastWithNoSessionsIsANoop(t *testing.T) {
	hub := NewRealtimeHub()
	hub.BroadcastAnalysisSaved("user-nobody", map[string]any{"ID": 1})
}
