package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"barshop-server/models"
)

type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// OrderForm is the checkout form. Email is validated for format, the
// fulfilment date is required; the rest mirrors the storefront form fields.
type OrderForm struct {
	FirstName  string  `form:"first_name" json:"first_name" binding:"required"`
	LastName   string  `form:"last_name" json:"last_name" binding:"required"`
	Phone      string  `form:"phone" json:"phone" binding:"required"`
	Email      string  `form:"email" json:"email" binding:"required,email"`
	Address    *string `form:"address" json:"address"`
	BuyingType string  `form:"buying_type" json:"buying_type"`
	OrderDate  string  `form:"order_date" json:"order_date"`
	Comment    *string `form:"comment" json:"comment"`
}

// PlaceOrder binds the customer's open cart to a new Order in status "new",
// snapshots the cart's aggregate total and marks the cart as claimed. The
// order total is whatever the cart aggregate held; nothing re-prices at
// checkout.
func (s *OrderService) PlaceOrder(customer *models.Customer, form OrderForm) (*models.Order, error) {
	var cart models.Cart
	err := s.DB.Where("owner_id = ? AND in_order = ?", customer.ID, false).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}

	buyingType := form.BuyingType
	if buyingType == "" {
		buyingType = models.BuyingTypeSelf
	}
	if !models.ValidBuyingType(buyingType) {
		return nil, errors.New("invalid buying type: " + form.BuyingType)
	}

	orderDate := time.Now()
	if form.OrderDate != "" {
		orderDate, err = time.Parse("2006-01-02", form.OrderDate)
		if err != nil {
			return nil, errors.New("invalid order_date, expected YYYY-MM-DD")
		}
	}

	order := models.Order{
		CustomerID: customer.ID,
		FirstName:  form.FirstName,
		LastName:   form.LastName,
		Phone:      form.Phone,
		Email:      form.Email,
		Address:    form.Address,
		CartID:     &cart.ID,
		Status:     models.OrderStatusNew,
		BuyingType: buyingType,
		Comment:    form.Comment,
		Total:      cart.TotalPrice,
		OrderDate:  orderDate,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Model(&cart).Update("in_order", true).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
