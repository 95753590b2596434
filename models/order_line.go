package models

// OrderLine is a snapshot of one purchased item taken at order time.
// There is deliberately no foreign key back to items: the menu can change
// or lose the item without affecting what the customer actually bought.
type OrderLine struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	OrderID  uint    `gorm:"not null;index" json:"order_id"`
	ItemID   uint    `gorm:"not null" json:"item_id"`
	Name     string  `gorm:"type:varchar(255);not null" json:"name"`
	Price    float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity int     `gorm:"not null" json:"quantity"`
	Notes    string  `gorm:"type:text" json:"notes"`
}
