package models

// SequenceCounterID is the primary key of the single counter row.
const SequenceCounterID uint = 1

// SequenceCounter is the singleton row behind order number allocation.
// Only the order service mutates it, and only inside the same transaction
// that creates the order the number belongs to.
type SequenceCounter struct {
	ID              uint  `gorm:"primaryKey" json:"id"`
	NextOrderNumber int64 `gorm:"not null;default:1" json:"next_order_number"`
}
