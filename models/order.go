package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusNew        = "new"
	OrderStatusInProgress = "in_progress"
	OrderStatusReady      = "is_ready"
	OrderStatusCompleted  = "completed"

	BuyingTypeSelf     = "self"
	BuyingTypeDelivery = "delivery"
)

// ValidOrderStatus reports membership in the status enum. Transitions are
// administrator-driven and unrestricted, so membership is the only check.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusNew, OrderStatusInProgress, OrderStatusReady, OrderStatusCompleted:
		return true
	}
	return false
}

func ValidBuyingType(s string) bool {
	return s == BuyingTypeSelf || s == BuyingTypeDelivery
}

type Order struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	CustomerID uint            `gorm:"not null" json:"customer_id"`
	Customer   Customer        `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	FirstName  string          `gorm:"type:varchar(255);not null" json:"first_name"`
	LastName   string          `gorm:"type:varchar(255);not null" json:"last_name"`
	Phone      string          `gorm:"type:varchar(255);not null" json:"phone"`
	Email      string          `gorm:"type:varchar(255);not null" json:"email"`
	Address    *string         `gorm:"type:varchar(1024)" json:"address,omitempty"`
	CartID     *uint           `json:"cart_id,omitempty"`
	Cart       *Cart           `gorm:"foreignKey:CartID" json:"cart,omitempty"`
	Status     string          `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	BuyingType string          `gorm:"type:varchar(20);not null;default:'self'" json:"buying_type"`
	Comment    *string         `gorm:"type:text" json:"comment,omitempty"`
	Total      decimal.Decimal `gorm:"type:decimal(9,2);not null;default:0" json:"total"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
	// OrderDate is when the order should be fulfilled. It defaults to the
	// submission time but the form presents it as an editable date.
	OrderDate time.Time `gorm:"not null" json:"order_date"`
}
