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

type OrderController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db, Orders: services.NewOrderService(db)}
}

// CreateOrder -> POST /api/orders/
// The checkout form. Binds the customer's open cart to a new order in
// status "new".
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	var form services.OrderForm
	if err := c.ShouldBind(&form); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	customer, err := customerForUser(oc.DB, userID.(uint))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("customer record not found"))
		return
	}

	order, err := oc.Orders.PlaceOrder(customer, form)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %d placed by customer %d (total %s)",
		order.ID, customer.ID, order.Total)

	utils.RespondJSON(c, http.StatusCreated, "Order placed", order)
}

// GetMyOrders -> GET /api/orders/
func (oc *OrderController) GetMyOrders(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}

	customer, err := customerForUser(oc.DB, userID.(uint))
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("customer record not found"))
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("Cart").Preload("Cart.Items").
		Where("customer_id = ?", customer.ID).Order("id DESC").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My orders", orders)
}

// GetAllOrders -> GET /admin/orders/
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	q := oc.DB.Preload("Cart").Order("id DESC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> GET /admin/orders/:order_id
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Preload("Cart").Preload("Cart.Items").
		First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateOrderStatus -> PATCH /admin/orders/:order_id
// Status changes are administrator-driven and unrestricted inside the
// enum: any status may be set to any other.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("order_id"))

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidOrderStatus(body.Status) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown order status: "+body.Status))
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	order.Status = body.Status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}
