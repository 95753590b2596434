package models

import "time"

// Item is a menu entry. Items are only ever added or deleted by an admin;
// orders keep their own snapshot of the item data (see OrderLine), so a
// delete never touches order history.
type Item struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Price     float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
