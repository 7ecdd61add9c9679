package domain

import "time"

// Order is a persisted unit representing a requested item and quantity
// with a lifecycle status. IDs are assigned by the database on insert and
// are never reused or mutated.
type Order struct {
	ID        uint64      `json:"id" gorm:"primaryKey;autoIncrement"`
	ItemName  string      `json:"itemName" gorm:"not null"`
	Quantity  int         `json:"quantity" gorm:"not null"`
	Status    OrderStatus `json:"status" gorm:"type:varchar(16);not null;index"`
	CreatedAt time.Time   `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time   `json:"updatedAt" gorm:"autoUpdateTime"`
}
