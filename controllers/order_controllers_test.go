package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"barshop-server/models"
)

// placeOrderFixture seeds a customer with a filled cart and submits the
// order form, asserting the defaults on the way.
func placeOrderFixture(t *testing.T, dbName string) (*gorm.DB, *gin.Engine, string, string, int) {
	t.Helper()
	db := setupTestDB(t, dbName)
	r := setupRouter(db)

	_, customerToken := seedUser(t, db, "ada@example.com", "customer")
	_, adminToken := seedUser(t, db, "admin@example.com", "admin")

	cat := seedCategory(t, db, "Non-alcoholic cocktails", "nonalco", models.KindNonAlcohol)
	product := seedNonAlcoholProduct(t, db, cat.ID, "mojito-virgin", "5.50")

	w := doJSON(t, r, "POST", "/api/cart/items/", h{
		"product_kind": "nonalcoholcocktails",
		"product_id":   product.ID,
		"qty":          2,
	}, map[string]string{"Authorization": customerToken})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "POST", "/api/orders/", h{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"phone":      "+1234567",
		"email":      "ada@example.com",
		"order_date": "2026-09-01",
		"comment":    "no ice please",
	}, map[string]string{"Authorization": customerToken})
	assert.Equal(t, http.StatusCreated, w.Code)

	order := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "new", order["status"])
	assert.Equal(t, "self", order["buying_type"])
	assert.Equal(t, "11", order["total"])

	return db, r, customerToken, adminToken, int(order["id"].(float64))
}

func TestOrderFormRoundTrip(t *testing.T) {
	db, r, customerToken, _, orderID := placeOrderFixture(t, "ctl_order_roundtrip")

	// The cart is claimed by the order.
	var order models.Order
	assert.NoError(t, db.Preload("Cart").First(&order, orderID).Error)
	assert.NotNil(t, order.Cart)
	assert.True(t, order.Cart.InOrder)

	// The order shows up in the customer's history.
	w := doJSON(t, r, "GET", "/api/orders/", nil, map[string]string{"Authorization": customerToken})
	assert.Equal(t, http.StatusOK, w.Code)
	orders := decodeBody(t, w)["data"].([]interface{})
	assert.Len(t, orders, 1)
}

// Status can be set to any enum value in any sequence; only values outside
// the enum are rejected.
func TestOrderStatusTransitionsUnrestricted(t *testing.T) {
	_, r, customerToken, adminToken, orderID := placeOrderFixture(t, "ctl_order_status")
	url := fmt.Sprintf("/admin/orders/%d", orderID)
	admin := map[string]string{"Authorization": adminToken}

	for _, status := range []string{"completed", "new", "in_progress", "is_ready"} {
		w := doJSON(t, r, "PATCH", url, h{"status": status}, admin)
		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, status, data["status"])
	}

	w := doJSON(t, r, "PATCH", url, h{"status": "teleported"}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Customers cannot drive the lifecycle.
	w = doJSON(t, r, "PATCH", url, h{"status": "completed"},
		map[string]string{"Authorization": customerToken})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOrderFormValidation(t *testing.T) {
	db := setupTestDB(t, "ctl_order_valid")
	r := setupRouter(db)
	_, token := seedUser(t, db, "ada@example.com", "customer")
	auth := map[string]string{"Authorization": token}

	// Unauthenticated submission.
	w := doJSON(t, r, "POST", "/api/orders/", h{
		"first_name": "Ada", "last_name": "L", "phone": "1", "email": "ada@example.com",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Malformed email.
	w = doJSON(t, r, "POST", "/api/orders/", h{
		"first_name": "Ada", "last_name": "L", "phone": "1", "email": "not-an-email",
	}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing required names.
	w = doJSON(t, r, "POST", "/api/orders/", h{
		"phone": "1", "email": "ada@example.com",
	}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Valid form but empty cart history: no open cart to bind.
	w = doJSON(t, r, "POST", "/api/orders/", h{
		"first_name": "Ada", "last_name": "L", "phone": "1", "email": "ada@example.com",
	}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
