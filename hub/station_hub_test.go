package hub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"github.com/JKLegendary/enterprise/models"
	"github.com/JKLegendary/enterprise/utils"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// dialStation stands up a websocket endpoint that registers the server
// side of the connection under role, then dials it. The returned cleanup
// unregisters and closes everything.
func dialStation(t *testing.T, role string) (client, server *websocket.Conn, cleanup func()) {
	t.Helper()
	utils.InitLogger()

	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		RegisterClient(conn, role)
		serverConns <- conn
	}))

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("failed to dial station socket: %v", err)
	}
	server = <-serverConns

	return client, server, func() {
		UnregisterClient(server)
		client.Close()
		srv.Close()
	}
}

func readEvent(t *testing.T, conn *websocket.Conn) (string, json.RawMessage) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("expected a snapshot, got read error: %v", err)
	}
	var msg struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(payload, &msg))
	return msg.Event, msg.Data
}

// assertNoEvent must be the last read on conn: a read deadline poisons
// the connection for further reads.
func assertNoEvent(t *testing.T, conn *websocket.Conn) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
	if _, payload, err := conn.ReadMessage(); err == nil {
		t.Fatalf("station received an event it does not subscribe to: %s", payload)
	}
}

func TestBroadcastFiltersByRole(t *testing.T) {
	cook, _, cleanup := dialStation(t, RoleCook)
	defer cleanup()

	// The ready snapshot goes out first; a cook station must never see
	// it. Only the cooking snapshot that follows may arrive.
	BroadcastReadyOrders([]models.Order{{Number: 3, Status: models.StatusReady}})
	BroadcastCookingOrders([]models.Order{{Number: 7, Status: models.StatusCooking}})

	event, data := readEvent(t, cook)
	assert.Equal(t, EventCookingOrders, event)

	var orders []models.Order
	assert.NoError(t, json.Unmarshal(data, &orders))
	assert.Len(t, orders, 1)
	assert.Equal(t, int64(7), orders[0].Number)

	BroadcastReadyOrders([]models.Order{{Number: 3, Status: models.StatusReady}})
	assertNoEvent(t, cook)
}

func TestSendSnapshotDeliversOneView(t *testing.T) {
	utils.InitLogger()

	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverConns <- conn
	}))
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer client.Close()
	server := <-serverConns
	defer server.Close()

	items := []models.Item{{Name: "Burger", Price: 5.00}}
	assert.NoError(t, SendSnapshot(server, EventCatalog, items))

	event, data := readEvent(t, client)
	assert.Equal(t, EventCatalog, event)

	var got []models.Item
	assert.NoError(t, json.Unmarshal(data, &got))
	assert.Len(t, got, 1)
	assert.Equal(t, "Burger", got[0].Name)
}

func TestBroadcastPrunesDeadConnections(t *testing.T) {
	live, _, cleanupLive := dialStation(t, RoleCook)
	defer cleanupLive()

	_, deadServer, cleanupDead := dialStation(t, RoleCook)
	defer cleanupDead()
	before := ClientCount()

	// Kill the second station's connection so the broadcast write fails;
	// the hub must drop it and keep serving the live one.
	deadServer.Close()

	BroadcastCookingOrders([]models.Order{{Number: 1, Status: models.StatusCooking}})

	event, _ := readEvent(t, live)
	assert.Equal(t, EventCookingOrders, event)

	assert.Equal(t, before-1, ClientCount(), "dead station must be pruned on write failure")
}

func TestRoleSubscriptions(t *testing.T) {
	assert.True(t, ValidRole(RoleCashier))
	assert.True(t, ValidRole(RoleBoard))
	assert.False(t, ValidRole("dishwasher"))

	assert.Equal(t, []string{EventCatalog, EventReadyOrders}, EventsFor(RoleCashier))
	assert.Equal(t, []string{EventCookingOrders}, EventsFor(RoleCook))
	assert.Equal(t, []string{EventReadyOrders}, EventsFor(RoleCompletion))
	assert.Equal(t, []string{EventReadyOrders}, EventsFor(RoleBoard))
	assert.Equal(t, []string{EventOrderHistory}, EventsFor(RoleHistory))
}
