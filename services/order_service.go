package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/JKLegendary/enterprise/models"
	"github.com/JKLegendary/enterprise/utils"
)

// LineRequest is one cart entry as sent by the cashier station.
type LineRequest struct {
	ItemID   uint `json:"item_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required"`
}

// OrderService owns the order lifecycle: number allocation, creation and
// the two forward status transitions. All stations go through it; none of
// them writes to the store directly.
type OrderService struct {
	DB      *gorm.DB
	Monitor *ViewMonitor // optional, kicked after every accepted mutation
}

func NewOrderService(db *gorm.DB, monitor *ViewMonitor) *OrderService {
	return &OrderService{DB: db, Monitor: monitor}
}

// placeOrderAttempts bounds the retry loop around the allocate+create
// transaction before the failure is handed back to the cashier.
const placeOrderAttempts = 3

// PlaceOrder validates the cart, snapshots the purchased items into order
// lines and creates the order with a freshly allocated number, all at
// status COOKING. The counter bump and the order insert share one
// transaction: either both commit or neither does, so a failed attempt
// never burns a number.
func (s *OrderService) PlaceOrder(reqs []LineRequest, paid float64) (models.Order, error) {
	lines, err := s.snapshotLines(reqs)
	if err != nil {
		return models.Order{}, err
	}

	total := OrderTotal(lines)
	change, err := ComputeChange(total, paid)
	if err != nil {
		return models.Order{}, err
	}

	for attempt := 1; attempt <= placeOrderAttempts; attempt++ {
		order, err := s.createWithNumber(lines, total, paid, change)
		if err == nil {
			s.notify()
			return order, nil
		}
		utils.ErrorLogger.Printf("place order attempt %d/%d failed: %v", attempt, placeOrderAttempts, err)
		time.Sleep(time.Duration(attempt) * 50 * time.Millisecond)
	}

	return models.Order{}, ErrOrderCreationFailed
}

// MarkReady moves an order from COOKING to READY and stamps readyAt.
// Re-applying it returns ErrAlreadyTransitioned with the order untouched.
func (s *OrderService) MarkReady(orderID uint) (models.Order, error) {
	return s.transition(orderID, models.StatusCooking, models.StatusReady, "ready_at")
}

// MarkPickedUp moves an order from READY to PICKED_UP and stamps
// pickedUpAt. PICKED_UP is terminal.
func (s *OrderService) MarkPickedUp(orderID uint) (models.Order, error) {
	return s.transition(orderID, models.StatusReady, models.StatusPickedUp, "picked_up_at")
}

// GetOrder fetches one order with its lines.
func (s *OrderService) GetOrder(orderID uint) (models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("Lines").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}
	return order, nil
}

// EnsureCounter seeds the singleton counter row. Safe to call repeatedly;
// an existing counter is left alone.
func EnsureCounter(db *gorm.DB) error {
	counter := models.SequenceCounter{ID: models.SequenceCounterID, NextOrderNumber: 1}
	return db.FirstOrCreate(&counter, models.SequenceCounter{ID: models.SequenceCounterID}).Error
}

// snapshotLines resolves cart entries against the catalog and copies the
// item data into denormalized lines, so the order keeps what was sold even
// if the item is later deleted. Read-only; called before any write.
func (s *OrderService) snapshotLines(reqs []LineRequest) ([]models.OrderLine, error) {
	if len(reqs) == 0 {
		return nil, ErrEmptyOrder
	}

	lines := make([]models.OrderLine, 0, len(reqs))
	for _, req := range reqs {
		if req.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		var item models.Item
		if err := s.DB.First(&item, req.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUnknownItem
			}
			return nil, err
		}
		lines = append(lines, models.OrderLine{
			ItemID:   item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: req.Quantity,
			Notes:    item.Notes,
		})
	}
	return lines, nil
}

// createWithNumber runs the compound allocate+create operation as a single
// transaction.
func (s *OrderService) createWithNumber(lines []models.OrderLine, total, paid, change float64) (models.Order, error) {
	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		number, err := allocateNumber(tx)
		if err != nil {
			return err
		}

		now := time.Now()
		order = models.Order{
			Number:    number,
			Status:    models.StatusCooking,
			Lines:     cloneLines(lines),
			Total:     total,
			Paid:      paid,
			Change:    change,
			CreatedAt: now,
			PaidAt:    now,
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// allocateNumber hands out the next order number inside tx. The UPDATE
// takes a row lock held until the transaction ends, so two concurrent
// callers can never read the same value.
func allocateNumber(tx *gorm.DB) (int64, error) {
	res := tx.Model(&models.SequenceCounter{}).
		Where("id = ?", models.SequenceCounterID).
		Update("next_order_number", gorm.Expr("next_order_number + ?", 1))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		// First order on a fresh store: seed the counter with number 1
		// already handed out.
		counter := models.SequenceCounter{ID: models.SequenceCounterID, NextOrderNumber: 2}
		if err := tx.Create(&counter).Error; err != nil {
			return 0, err
		}
		return 1, nil
	}

	var counter models.SequenceCounter
	if err := tx.First(&counter, models.SequenceCounterID).Error; err != nil {
		return 0, err
	}
	return counter.NextOrderNumber - 1, nil
}

// transition applies one check-and-set status move. The WHERE clause on
// the prior status is what makes double-taps safe: a second application
// matches zero rows and the original timestamp survives.
func (s *OrderService) transition(orderID uint, from, to models.OrderStatus, stampColumn string) (models.Order, error) {
	res := s.DB.Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Updates(map[string]interface{}{"status": to, stampColumn: time.Now()})
	if res.Error != nil {
		return models.Order{}, res.Error
	}

	var order models.Order
	if err := s.DB.Preload("Lines").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}

	if res.RowsAffected == 0 {
		if order.Status.Reached(to) {
			return order, ErrAlreadyTransitioned
		}
		return order, ErrInvalidTransition
	}

	s.notify()
	return order, nil
}

func (s *OrderService) notify() {
	if s.Monitor != nil {
		s.Monitor.Notify()
	}
}

// cloneLines copies the snapshot so a retried create never reuses structs
// gorm already stamped with ids from a rolled-back attempt.
func cloneLines(lines []models.OrderLine) []models.OrderLine {
	out := make([]models.OrderLine, len(lines))
	for i, line := range lines {
		out[i] = models.OrderLine{
			ItemID:   line.ItemID,
			Name:     line.Name,
			Price:    line.Price,
			Quantity: line.Quantity,
			Notes:    line.Notes,
		}
	}
	return out
}
