package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"barshop-server/models"
	"barshop-server/services"
	"barshop-server/utils"
)

// SessionKeyHeader carries the anonymous-cart key. Clients without an
// account read it back from the cart response and send it on every
// subsequent cart call.
const SessionKeyHeader = "X-Session-Key"

type CartController struct {
	DB    *gorm.DB
	Carts *services.CartService
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db, Carts: services.NewCartService(db)}
}

// currentCart resolves the caller's open cart: by Customer when the request
// is authenticated, by session key otherwise.
func (cc *CartController) currentCart(c *gin.Context) (*models.Cart, error) {
	if userID, exists := c.Get("user_id"); exists {
		customer, err := customerForUser(cc.DB, userID.(uint))
		if err != nil {
			return nil, err
		}
		return cc.Carts.CurrentCartForCustomer(customer.ID)
	}
	return cc.Carts.CurrentCartForSession(c.GetHeader(SessionKeyHeader))
}

// GetCart -> GET /api/cart/
func (cc *CartController) GetCart(c *gin.Context) {
	cart, err := cc.currentCart(c)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Current cart", cart)
}

// AddItem -> POST /api/cart/items/
func (cc *CartController) AddItem(c *gin.Context) {
	var body struct {
		ProductKind models.ProductKind `json:"product_kind" binding:"required"`
		ProductID   uint               `json:"product_id" binding:"required"`
		Qty         int                `json:"qty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Qty == 0 {
		body.Qty = 1
	}

	cart, err := cc.currentCart(c)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	line, err := cc.Carts.AddItem(cart, body.ProductKind, body.ProductID, body.Qty)
	if err != nil {
		cc.respondCartError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Item added to cart", gin.H{
		"cart": cart,
		"item": line,
	})
}

// UpdateItem -> PATCH /api/cart/items/:item_id/
func (cc *CartController) UpdateItem(c *gin.Context) {
	itemID, _ := strconv.Atoi(c.Param("item_id"))

	var body struct {
		Qty int `json:"qty" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cart, err := cc.currentCart(c)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	line, err := cc.Carts.SetQuantity(cart, uint(itemID), body.Qty)
	if err != nil {
		cc.respondCartError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart item updated", gin.H{
		"cart": cart,
		"item": line,
	})
}

// RemoveItem -> DELETE /api/cart/items/:item_id/
func (cc *CartController) RemoveItem(c *gin.Context) {
	itemID, _ := strconv.Atoi(c.Param("item_id"))

	cart, err := cc.currentCart(c)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := cc.Carts.RemoveItem(cart, uint(itemID)); err != nil {
		cc.respondCartError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart item removed", cart)
}

func (cc *CartController) respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDanglingProduct):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrQuantityNotPositive),
		errors.Is(err, services.ErrUnknownProductKind):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrLineNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// customerForUser looks up the Customer record behind an authenticated user.
func customerForUser(db *gorm.DB, userID uint) (*models.Customer, error) {
	var customer models.Customer
	if err := db.Where("user_id = ?", userID).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}
