package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JKLegendary/enterprise/models"
)

func TestViewsFollowLifecycle(t *testing.T) {
	db := setupServiceDB(t)
	burger, _ := seedCatalog(t, db)
	svc := NewOrderService(db, nil)

	order, err := svc.PlaceOrder([]LineRequest{{ItemID: burger.ID, Quantity: 1}}, 5.00)
	assert.NoError(t, err)

	cooking, err := CookingOrders(db)
	assert.NoError(t, err)
	assert.Len(t, cooking, 1)
	assert.Equal(t, order.ID, cooking[0].ID)

	ready, err := ReadyOrders(db)
	assert.NoError(t, err)
	assert.Empty(t, ready)

	// READY: the order leaves the cook view and enters the ready view.
	_, err = svc.MarkReady(order.ID)
	assert.NoError(t, err)

	cooking, err = CookingOrders(db)
	assert.NoError(t, err)
	assert.Empty(t, cooking)

	ready, err = ReadyOrders(db)
	assert.NoError(t, err)
	assert.Len(t, ready, 1)
	assert.Equal(t, order.ID, ready[0].ID)

	// PICKED_UP: gone from the ready view, still in history.
	_, err = svc.MarkPickedUp(order.ID)
	assert.NoError(t, err)

	ready, err = ReadyOrders(db)
	assert.NoError(t, err)
	assert.Empty(t, ready)

	history, err := OrderHistory(db)
	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, models.StatusPickedUp, history[0].Status)
	assert.Len(t, history[0].Lines, 1)
}

func TestCookingOrdersNewestPaymentFirst(t *testing.T) {
	db := setupServiceDB(t)

	base := time.Now()
	for i := 0; i < 3; i++ {
		stamp := base.Add(time.Duration(i) * time.Minute)
		order := models.Order{
			Number:    int64(i + 1),
			Status:    models.StatusCooking,
			Total:     5, Paid: 5,
			CreatedAt: stamp,
			PaidAt:    stamp,
		}
		assert.NoError(t, db.Create(&order).Error)
	}

	cooking, err := CookingOrders(db)
	assert.NoError(t, err)
	assert.Len(t, cooking, 3)
	assert.Equal(t, int64(3), cooking[0].Number)
	assert.Equal(t, int64(1), cooking[2].Number)
}

func TestHistoryBoundedToMostRecent(t *testing.T) {
	db := setupServiceDB(t)

	base := time.Now().Add(-10 * time.Hour)
	for i := 0; i < HistoryLimit+10; i++ {
		stamp := base.Add(time.Duration(i) * time.Second)
		order := models.Order{
			Number:    int64(i + 1),
			Status:    models.StatusPickedUp,
			Total:     5, Paid: 5,
			CreatedAt: stamp,
			PaidAt:    stamp,
		}
		assert.NoError(t, db.Create(&order).Error)
	}

	history, err := OrderHistory(db)
	assert.NoError(t, err)
	assert.Len(t, history, HistoryLimit)

	// Newest first, and strictly the most recent ones: the 10 oldest
	// orders fall off the end.
	assert.Equal(t, int64(HistoryLimit+10), history[0].Number)
	assert.Equal(t, int64(11), history[len(history)-1].Number)
}

func TestCatalogInCreationOrder(t *testing.T) {
	db := setupServiceDB(t)

	base := time.Now()
	for i, name := range []string{"Burger", "Fries", "Tea"} {
		item := models.Item{Name: name, Price: float64(i) + 1, CreatedAt: base.Add(time.Duration(i) * time.Second)}
		assert.NoError(t, db.Create(&item).Error)
	}

	items, err := Catalog(db)
	assert.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, "Burger", items[0].Name)
	assert.Equal(t, "Tea", items[2].Name)
}

func TestHistorySurvivesCatalogDelete(t *testing.T) {
	db := setupServiceDB(t)
	burger, _ := seedCatalog(t, db)
	svc := NewOrderService(db, nil)

	order, err := svc.PlaceOrder([]LineRequest{{ItemID: burger.ID, Quantity: 2}}, 10.00)
	assert.NoError(t, err)

	assert.NoError(t, db.Delete(&models.Item{}, burger.ID).Error)

	history, err := OrderHistory(db)
	assert.NoError(t, err)
	assert.Len(t, history, 1)
	assert.Equal(t, order.ID, history[0].ID)
	assert.Len(t, history[0].Lines, 1)
	assert.Equal(t, "Burger", history[0].Lines[0].Name, "line snapshot outlives the catalog entry")
}
