package hub

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/JKLegendary/enterprise/models"
	"github.com/JKLegendary/enterprise/utils"
)

// Event types pushed to stations. Every delivery carries the full current
// matching set for its view, never a delta: a station replaces whatever it
// is showing with the payload.
const (
	EventCatalog       = "catalog"
	EventCookingOrders = "cooking_orders"
	EventReadyOrders   = "ready_orders"
	EventOrderHistory  = "order_history"
)

// Station roles. Each role subscribes to the views it renders.
const (
	RoleCashier    = "cashier"
	RoleCook       = "cook"
	RoleCompletion = "completion"
	RoleBoard      = "board"
	RoleHistory    = "history"
)

// roleEvents maps a station role to the events it receives.
var roleEvents = map[string][]string{
	RoleCashier:    {EventCatalog, EventReadyOrders},
	RoleCook:       {EventCookingOrders},
	RoleCompletion: {EventReadyOrders},
	RoleBoard:      {EventReadyOrders},
	RoleHistory:    {EventOrderHistory},
}

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// StationHub holds every connected station and fans filtered view
// snapshots out to them.
type StationHub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var stationHub = StationHub{
	clients: make(map[*websocket.Conn]string),
}

// ValidRole reports whether role names a known station role.
func ValidRole(role string) bool {
	_, ok := roleEvents[role]
	return ok
}

// EventsFor returns the events a role subscribes to.
func EventsFor(role string) []string {
	return roleEvents[role]
}

// RegisterClient adds a connection under a station role.
func RegisterClient(conn *websocket.Conn, role string) {
	stationHub.mutex.Lock()
	defer stationHub.mutex.Unlock()
	stationHub.clients[conn] = role
}

// UnregisterClient drops a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	stationHub.mutex.Lock()
	defer stationHub.mutex.Unlock()
	delete(stationHub.clients, conn)
	conn.Close()
}

// ClientCount returns the number of connected stations.
func ClientCount() int {
	stationHub.mutex.Lock()
	defer stationHub.mutex.Unlock()
	return len(stationHub.clients)
}

// SendSnapshot pushes one view snapshot to a single connection. Used for
// the initial delivery right after a station (re)connects.
func SendSnapshot(conn *websocket.Conn, event string, data interface{}) error {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		return err
	}

	stationHub.mutex.Lock()
	defer stationHub.mutex.Unlock()
	return conn.WriteMessage(websocket.TextMessage, payload)
}

// BroadcastCatalog pushes the full menu to catalog subscribers.
func BroadcastCatalog(items []models.Item) {
	broadcast(EventCatalog, items)
}

// BroadcastCookingOrders pushes the cook view (status COOKING).
func BroadcastCookingOrders(orders []models.Order) {
	broadcast(EventCookingOrders, orders)
}

// BroadcastReadyOrders pushes the ready view (status READY) to the
// cashier, completion and announcement-board stations.
func BroadcastReadyOrders(orders []models.Order) {
	broadcast(EventReadyOrders, orders)
}

// BroadcastOrderHistory pushes the bounded history view.
func BroadcastOrderHistory(orders []models.Order) {
	broadcast(EventOrderHistory, orders)
}

func subscribes(role, event string) bool {
	for _, e := range roleEvents[role] {
		if e == event {
			return true
		}
	}
	return false
}

func broadcast(event string, data interface{}) {
	payload, err := json.Marshal(Message{Event: event, Data: data})
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling %s snapshot: %v", event, err)
		return
	}

	stationHub.mutex.Lock()
	defer stationHub.mutex.Unlock()

	for conn, role := range stationHub.clients {
		if !subscribes(role, event) {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			// Dead connection; the station reconnects and gets a fresh
			// snapshot, so nothing is lost.
			utils.ErrorLogger.Printf("Error sending %s to %s station: %v", event, role, err)
			delete(stationHub.clients, conn)
			conn.Close()
		}
	}
}
