package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	OwnerID *uint     `gorm:"index" json:"owner_id,omitempty"`
	Owner   *Customer `gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	// SessionKey identifies anonymous carts; a uuid handed to the client.
	SessionKey   *string         `gorm:"type:varchar(36);index" json:"session_key,omitempty"`
	Items        []CartProduct   `gorm:"foreignKey:CartID" json:"items"`
	TotalItems   int             `gorm:"not null;default:0" json:"total_items"`
	TotalPrice   decimal.Decimal `gorm:"type:decimal(9,2);not null;default:0" json:"total_price"`
	InOrder      bool            `gorm:"not null;default:false" json:"in_order"`
	ForAnonymous bool            `gorm:"not null;default:false" json:"for_anonymous"`
	CreatedAt    time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null" json:"updated_at"`
}

// CartProduct is one cart line. {ProductKind, ProductID} is a tagged
// polymorphic reference into one of the two cocktail tables; it is not a
// foreign key, so the row it points at can be deleted out from under it.
// Resolution of a dangling reference fails explicitly (see services).
type CartProduct struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CustomerID  *uint           `gorm:"index" json:"customer_id,omitempty"`
	CartID      uint            `gorm:"not null;index" json:"cart_id"`
	Cart        Cart            `gorm:"foreignKey:CartID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	ProductKind ProductKind     `gorm:"type:varchar(32);not null" json:"product_kind"`
	ProductID   uint            `gorm:"not null" json:"product_id"`
	Qty         int             `gorm:"not null;default:1;check:qty > 0" json:"qty"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(9,2);not null" json:"line_total"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}
