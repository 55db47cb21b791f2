package model

import "time"

type PaymentOrder struct {
	OrderID     string    `gorm:"type:varchar(255);primaryKey"`
	UserID      string    `gorm:"type:varchar(255);not null;index"`
	Plan        string    `gorm:"type:varchar(50);not null"`
	GrossAmount int64     `gorm:"not null"`
	Status      string    `gorm:"type:varchar(50);not null;default:'pending'"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (PaymentOrder) TableName() string {
	return "payment_orders"
}
