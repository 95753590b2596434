package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/JKLegendary/enterprise/hub"
	"github.com/JKLegendary/enterprise/services"
	"github.com/JKLegendary/enterprise/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // stall LAN only
	},
}

type StationController struct {
	DB *gorm.DB
}

func NewStationController(db *gorm.DB) *StationController {
	return &StationController{DB: db}
}

// StationSocket -> websocket endpoint for a role station. On connect the
// station immediately receives the full current snapshot of every view it
// subscribes to, then replacement snapshots as the ledger changes. A
// station that loses the connection simply reconnects and starts over
// from a fresh snapshot.
func (sc *StationController) StationSocket(c *gin.Context) {
	role := c.Param("role")
	if !hub.ValidRole(role) {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	hub.RegisterClient(ws, role)
	utils.InfoLogger.Printf("Station connected: role=%s (%d online)", role, hub.ClientCount())

	sc.sendInitialSnapshots(ws, role)

	// Hold the connection open; stations only listen.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	hub.UnregisterClient(ws)
	utils.InfoLogger.Printf("Station disconnected: role=%s (%d online)", role, hub.ClientCount())
}

func (sc *StationController) sendInitialSnapshots(ws *websocket.Conn, role string) {
	for _, event := range hub.EventsFor(role) {
		var (
			data interface{}
			err  error
		)
		switch event {
		case hub.EventCatalog:
			data, err = services.Catalog(sc.DB)
		case hub.EventCookingOrders:
			data, err = services.CookingOrders(sc.DB)
		case hub.EventReadyOrders:
			data, err = services.ReadyOrders(sc.DB)
		case hub.EventOrderHistory:
			data, err = services.OrderHistory(sc.DB)
		}
		if err != nil {
			utils.ErrorLogger.Printf("Error loading %s snapshot for %s station: %v", event, role, err)
			continue
		}
		if err := hub.SendSnapshot(ws, event, data); err != nil {
			utils.ErrorLogger.Printf("Error sending %s snapshot to %s station: %v", event, role, err)
			return
		}
	}
}
