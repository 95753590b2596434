package models

import "time"

// OrderStatus is the lifecycle state of an Order. The progression is
// COOKING -> READY -> PICKED_UP and never goes backwards.
type OrderStatus string

const (
	StatusCooking  OrderStatus = "COOKING"
	StatusReady    OrderStatus = "READY"
	StatusPickedUp OrderStatus = "PICKED_UP"
)

// rank orders the statuses along the lifecycle so callers can tell a
// repeated transition (already at or past the target) apart from an
// out-of-order one.
func (s OrderStatus) rank() int {
	switch s {
	case StatusCooking:
		return 0
	case StatusReady:
		return 1
	case StatusPickedUp:
		return 2
	}
	return -1
}

// Reached reports whether s is at or past target in the lifecycle.
func (s OrderStatus) Reached(target OrderStatus) bool {
	return s.rank() >= 0 && target.rank() >= 0 && s.rank() >= target.rank()
}

type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	Number     int64       `gorm:"uniqueIndex;not null" json:"number"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;default:'COOKING'" json:"status"`
	Lines      []OrderLine `gorm:"foreignKey:OrderID" json:"lines"`
	Total      float64     `gorm:"type:decimal(10,2);not null" json:"total"`
	Paid       float64     `gorm:"type:decimal(10,2);not null" json:"paid"`
	Change     float64     `gorm:"type:decimal(10,2);not null" json:"change"`
	CreatedAt  time.Time   `gorm:"not null" json:"created_at"`
	PaidAt     time.Time   `gorm:"not null" json:"paid_at"`
	ReadyAt    *time.Time  `json:"ready_at"`
	PickedUpAt *time.Time  `json:"picked_up_at"`
}
