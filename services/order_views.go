package services

import (
	"gorm.io/gorm"

	"github.com/JKLegendary/enterprise/models"
)

// HistoryLimit bounds the history view to the most recent orders.
const HistoryLimit = 300

// The view queries below back both the HTTP list endpoints and the
// websocket snapshots. Each returns the complete current matching set in
// its display order; consumers replace, never append.

// CookingOrders is the cook view: everything still on the grill, newest
// payment first.
func CookingOrders(db *gorm.DB) ([]models.Order, error) {
	var orders []models.Order
	err := db.Preload("Lines").
		Where("status = ?", models.StatusCooking).
		Order("paid_at desc").
		Find(&orders).Error
	return orders, err
}

// ReadyOrders backs the cashier ready list, the completion station and the
// announcement board: orders waiting to be handed over, newest first.
func ReadyOrders(db *gorm.DB) ([]models.Order, error) {
	var orders []models.Order
	err := db.Preload("Lines").
		Where("status = ?", models.StatusReady).
		Order("ready_at desc").
		Find(&orders).Error
	return orders, err
}

// OrderHistory is every order regardless of status, newest first, capped
// at HistoryLimit.
func OrderHistory(db *gorm.DB) ([]models.Order, error) {
	var orders []models.Order
	err := db.Preload("Lines").
		Order("created_at desc").
		Limit(HistoryLimit).
		Find(&orders).Error
	return orders, err
}

// Catalog lists the menu in the order items were added.
func Catalog(db *gorm.DB) ([]models.Item, error) {
	var items []models.Item
	err := db.Order("created_at asc").Find(&items).Error
	return items, err
}
