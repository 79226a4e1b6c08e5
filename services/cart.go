package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"barshop-server/models"
)

var (
	// ErrDanglingProduct means a cart line's {kind, id} reference no longer
	// resolves to a product row.
	ErrDanglingProduct = errors.New("cart line references a product that no longer exists")

	ErrUnknownProductKind  = errors.New("unknown product kind")
	ErrQuantityNotPositive = errors.New("quantity must be a positive integer")
	ErrLineNotFound        = errors.New("cart line not found")
	ErrEmptyCart           = errors.New("no open cart to order")
)

// ComputeLineTotal is the one place line pricing happens: quantity times the
// unit price read at call time. Callers decide when a price change
// propagates by choosing when to call it; nothing recomputes lines behind
// their back.
func ComputeLineTotal(qty int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(qty)))
}

type CartService struct {
	DB *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{DB: db}
}

// ResolveProduct follows a tagged polymorphic reference to the row it
// points at. A missing row is ErrDanglingProduct, not a plain not-found:
// the reference is loose by design and this is its documented failure mode.
func (s *CartService) ResolveProduct(kind models.ProductKind, id uint) (models.CatalogProduct, error) {
	switch kind {
	case models.KindAlcohol:
		var p models.AlcoholCocktail
		if err := s.DB.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDanglingProduct
			}
			return nil, err
		}
		return &p, nil
	case models.KindNonAlcohol:
		var p models.NonAlcoholCocktail
		if err := s.DB.First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDanglingProduct
			}
			return nil, err
		}
		return &p, nil
	}
	return nil, ErrUnknownProductKind
}

// CurrentCartForCustomer returns the customer's open cart, creating one if
// none exists. A cart stops being "current" once an order claims it.
func (s *CartService) CurrentCartForCustomer(customerID uint) (*models.Cart, error) {
	var cart models.Cart
	err := s.DB.Preload("Items").
		Where("owner_id = ? AND in_order = ?", customerID, false).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{OwnerID: &customerID}
		if err := s.DB.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// CurrentCartForSession returns the anonymous cart for a session key,
// creating the cart (and the key, when none was supplied) as needed.
func (s *CartService) CurrentCartForSession(sessionKey string) (*models.Cart, error) {
	if sessionKey == "" {
		sessionKey = uuid.NewString()
	}
	var cart models.Cart
	err := s.DB.Preload("Items").
		Where("session_key = ? AND in_order = ?", sessionKey, false).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{SessionKey: &sessionKey, ForAnonymous: true}
		if err := s.DB.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem puts qty units of a product into the cart. Adding a product that
// is already in the cart bumps the existing line instead of creating a
// second one. The line total is recomputed from the product's live price.
func (s *CartService) AddItem(cart *models.Cart, kind models.ProductKind, productID uint, qty int) (*models.CartProduct, error) {
	if qty <= 0 {
		return nil, ErrQuantityNotPositive
	}
	product, err := s.ResolveProduct(kind, productID)
	if err != nil {
		return nil, err
	}

	var line models.CartProduct
	err = s.DB.Where("cart_id = ? AND product_kind = ? AND product_id = ?",
		cart.ID, kind, productID).First(&line).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		line = models.CartProduct{
			CustomerID:  cart.OwnerID,
			CartID:      cart.ID,
			ProductKind: kind,
			ProductID:   productID,
			Qty:         qty,
		}
	case err != nil:
		return nil, err
	default:
		line.Qty += qty
	}

	line.LineTotal = ComputeLineTotal(line.Qty, product.UnitPrice())
	if err := s.DB.Save(&line).Error; err != nil {
		return nil, err
	}
	if err := s.RecalculateTotals(cart); err != nil {
		return nil, err
	}
	return &line, nil
}

// SetQuantity changes a line's quantity and reprices it against the
// product's current price. A product price change therefore reaches a line
// the next time the line is saved, and only then.
func (s *CartService) SetQuantity(cart *models.Cart, lineID uint, qty int) (*models.CartProduct, error) {
	if qty <= 0 {
		return nil, ErrQuantityNotPositive
	}
	var line models.CartProduct
	err := s.DB.Where("cart_id = ?", cart.ID).First(&line, lineID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrLineNotFound
	}
	if err != nil {
		return nil, err
	}

	product, err := s.ResolveProduct(line.ProductKind, line.ProductID)
	if err != nil {
		return nil, err
	}

	line.Qty = qty
	line.LineTotal = ComputeLineTotal(line.Qty, product.UnitPrice())
	if err := s.DB.Save(&line).Error; err != nil {
		return nil, err
	}
	if err := s.RecalculateTotals(cart); err != nil {
		return nil, err
	}
	return &line, nil
}

// RemoveItem deletes a line from the cart.
func (s *CartService) RemoveItem(cart *models.Cart, lineID uint) error {
	res := s.DB.Where("cart_id = ?", cart.ID).Delete(&models.CartProduct{}, lineID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrLineNotFound
	}
	return s.RecalculateTotals(cart)
}

// RecalculateTotals refreshes the cart's aggregate fields from its lines.
// Called after every line mutation so total_items and total_price never go
// stale.
func (s *CartService) RecalculateTotals(cart *models.Cart) error {
	var lines []models.CartProduct
	if err := s.DB.Where("cart_id = ?", cart.ID).Order("id").Find(&lines).Error; err != nil {
		return err
	}

	totalItems := 0
	totalPrice := decimal.Zero
	for _, line := range lines {
		totalItems += line.Qty
		totalPrice = totalPrice.Add(line.LineTotal)
	}

	cart.Items = lines
	cart.TotalItems = totalItems
	cart.TotalPrice = totalPrice
	return s.DB.Model(&models.Cart{}).Where("id = ?", cart.ID).
		Updates(map[string]interface{}{
			"total_items": totalItems,
			"total_price": totalPrice,
		}).Error
}
