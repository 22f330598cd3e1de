package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/arrows/internal/domain/board"
	"github.com/okian/arrows/pkg/logger"
)

func init() {
	logger.Init()
}

func dialTestHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(ServeWS(hub))
	t.Cleanup(srv.Close)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(hub *Hub, want int) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

func TestHubBroadcast(t *testing.T) {
	Convey("Given a running hub with a connected client", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		hub := NewHub(logger.Get())
		go hub.Run(ctx)
		Reset(cancel)

		conn := dialTestHub(t, hub)
		So(waitForClients(hub, 1), ShouldBeTrue)

		Convey("When the leaderboard is broadcast", func() {
			entries := []board.Entry{
				{Rank: 1, PlayerID: "777", DisplayName: "@nova", Score: 4, Coins: 140},
			}
			hub.BroadcastLeaderboard(entries)

			Convey("Then the client receives a typed update", func() {
				_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
				_, payload, err := conn.ReadMessage()
				So(err, ShouldBeNil)

				var msg Message
				So(json.Unmarshal(payload, &msg), ShouldBeNil)
				So(msg.Type, ShouldEqual, MessageTypeLeaderboardUpdate)
				So(len(msg.Entries), ShouldEqual, 1)
				So(msg.Entries[0].PlayerID, ShouldEqual, "777")
				So(msg.Entries[0].Rank, ShouldEqual, 1)
				So(msg.Timestamp, ShouldBeGreaterThan, 0)
			})
		})

		Convey("When the client sends an application ping", func() {
			So(conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`)), ShouldBeNil)

			Convey("Then a pong message comes back", func() {
				_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
				_, payload, err := conn.ReadMessage()
				So(err, ShouldBeNil)

				var msg Message
				So(json.Unmarshal(payload, &msg), ShouldBeNil)
				So(msg.Type, ShouldEqual, MessageTypePong)
			})
		})

		Convey("When the client sends an unparsable frame", func() {
			So(conn.WriteMessage(websocket.TextMessage, []byte("not json")), ShouldBeNil)

			Convey("Then an error message comes back and the connection stays up", func() {
				_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
				_, payload, err := conn.ReadMessage()
				So(err, ShouldBeNil)

				var msg Message
				So(json.Unmarshal(payload, &msg), ShouldBeNil)
				So(msg.Type, ShouldEqual, MessageTypeError)
				So(hub.ClientCount(), ShouldEqual, 1)
			})
		})

		Convey("When the client disconnects", func() {
			conn.Close()

			Convey("Then the hub drops it", func() {
				So(waitForClients(hub, 0), ShouldBeTrue)
			})
		})
	})
}

func TestHubShutdown(t *testing.T) {
	Convey("Given a running hub with a client", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		hub := NewHub(logger.Get())
		done := make(chan struct{})
		go func() {
			hub.Run(ctx)
			close(done)
		}()

		_ = dialTestHub(t, hub)
		So(waitForClients(hub, 1), ShouldBeTrue)

		Convey("When the context is cancelled", func() {
			cancel()

			Convey("Then the loop exits and clients are released", func() {
				select {
				case <-done:
				case <-time.After(2 * time.Second):
					So(false, ShouldBeTrue)
				}
				So(hub.ClientCount(), ShouldEqual, 0)
			})
		})
	})
}

func TestBroadcastWithoutClients(t *testing.T) {
	Convey("Given a hub with no clients", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		hub := NewHub(logger.Get())
		go hub.Run(ctx)
		Reset(cancel)

		Convey("When broadcasting repeatedly", func() {
			for i := 0; i < 300; i++ {
				hub.BroadcastLeaderboard([]board.Entry{{PlayerID: "x", Score: i}})
			}

			Convey("Then nothing blocks or panics", func() {
				So(hub.ClientCount(), ShouldEqual, 0)
			})
		})
	})
}
