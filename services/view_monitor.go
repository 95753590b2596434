package services

import (
	"bytes"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/JKLegendary/enterprise/hub"
	"github.com/JKLegendary/enterprise/utils"
)

// ViewMonitor drives the fan-out layer. Mutations kick Notify for an
// immediate refresh; a ticker does the same periodically so stations
// reconcile even after a missed kick or a dropped connection. Each refresh
// re-runs the view queries and broadcasts any view whose snapshot changed
// since the last delivery.
type ViewMonitor struct {
	DB       *gorm.DB
	Interval time.Duration

	notify   chan struct{}
	stopChan chan struct{}
	last     map[string][]byte
}

func NewViewMonitor(db *gorm.DB) *ViewMonitor {
	return &ViewMonitor{
		DB:       db,
		Interval: 1 * time.Second,
		notify:   make(chan struct{}, 1),
		stopChan: make(chan struct{}),
		last:     make(map[string][]byte),
	}
}

func (vm *ViewMonitor) Start() {
	go func() {
		ticker := time.NewTicker(vm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-vm.notify:
				vm.Refresh()
			case <-ticker.C:
				vm.Refresh()
			case <-vm.stopChan:
				return
			}
		}
	}()
}

func (vm *ViewMonitor) Stop() {
	close(vm.stopChan)
}

// Notify requests an immediate refresh. Non-blocking; a refresh already
// pending covers this one too.
func (vm *ViewMonitor) Notify() {
	select {
	case vm.notify <- struct{}{}:
	default:
	}
}

// Refresh re-queries every view and broadcasts the ones that changed.
func (vm *ViewMonitor) Refresh() {
	if cooking, err := CookingOrders(vm.DB); err != nil {
		utils.ErrorLogger.Printf("Error refreshing cooking view: %v", err)
	} else if vm.changed(hub.EventCookingOrders, cooking) {
		hub.BroadcastCookingOrders(cooking)
	}

	if ready, err := ReadyOrders(vm.DB); err != nil {
		utils.ErrorLogger.Printf("Error refreshing ready view: %v", err)
	} else if vm.changed(hub.EventReadyOrders, ready) {
		hub.BroadcastReadyOrders(ready)
	}

	if history, err := OrderHistory(vm.DB); err != nil {
		utils.ErrorLogger.Printf("Error refreshing history view: %v", err)
	} else if vm.changed(hub.EventOrderHistory, history) {
		hub.BroadcastOrderHistory(history)
	}

	if items, err := Catalog(vm.DB); err != nil {
		utils.ErrorLogger.Printf("Error refreshing catalog view: %v", err)
	} else if vm.changed(hub.EventCatalog, items) {
		hub.BroadcastCatalog(items)
	}
}

// changed records the marshaled snapshot and reports whether it differs
// from the last broadcast one, so quiet ticks stay quiet.
func (vm *ViewMonitor) changed(event string, data interface{}) bool {
	payload, err := json.Marshal(data)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling %s view: %v", event, err)
		return false
	}
	if bytes.Equal(vm.last[event], payload) {
		return false
	}
	vm.last[event] = payload
	return true
}
