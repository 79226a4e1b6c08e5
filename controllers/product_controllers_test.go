package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"barshop-server/models"
)

// End to end: create the category and product through the admin API, find
// the product through search, fetch it by id.
func TestNonAlcoholCreateSearchDetail(t *testing.T) {
	db := setupTestDB(t, "ctl_nonalco_e2e")
	r := setupRouter(db)
	_, adminToken := seedUser(t, db, "admin@example.com", "admin")
	auth := map[string]string{"Authorization": adminToken}

	w := doJSON(t, r, "POST", "/admin/categories/",
		h{"name": "Non-alcoholic cocktails", "slug": "nonalco", "kind": "nonalcoholcocktails"}, auth)
	assert.Equal(t, http.StatusCreated, w.Code)
	catID := decodeBody(t, w)["data"].(map[string]interface{})["id"].(float64)

	w = doJSON(t, r, "POST", "/admin/nonalcoholcocktails/", h{
		"category_id": catID,
		"title":       "Mojito Virgin",
		"image":       "/img/mojito-virgin.jpg",
		"price":       "5.50",
		"volume":      "300ml",
		"temperature": "cold",
		"taste":       "sweet",
	}, auth)
	assert.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)["data"].(map[string]interface{})
	productID := created["id"].(float64)
	assert.Equal(t, "mojito-virgin", created["slug"])

	// Something that should not match.
	seedNonAlcoholProduct(t, db, uint(catID), "limeade", "3.10")

	w = doJSON(t, r, "GET", "/api/nonalcoholcocktails/?search=Mojito", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	results := decodeBody(t, w)["data"].([]interface{})
	assert.Len(t, results, 1)
	found := results[0].(map[string]interface{})
	assert.Equal(t, "Mojito Virgin", found["title"])

	w = doJSON(t, r, "GET", fmt.Sprintf("/api/nonalcoholcocktails/%d/", int(productID)), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	detail := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Mojito Virgin", detail["title"])
	assert.Equal(t, "mojito-virgin", detail["slug"])
	assert.Equal(t, "300ml", detail["volume"])
	assert.Equal(t, "cold", detail["temperature"])
	assert.Equal(t, "sweet", detail["taste"])
	assert.Equal(t, "5.5", detail["price"])
}

// Unknown ids are a 404, never a server error.
func TestProductDetailNotFound(t *testing.T) {
	db := setupTestDB(t, "ctl_product_404")
	r := setupRouter(db)

	w := doJSON(t, r, "GET", "/api/alcoholcocktails/9999/", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, "GET", "/api/nonalcoholcocktails/9999/", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductSearchByPrice(t *testing.T) {
	db := setupTestDB(t, "ctl_product_price")
	r := setupRouter(db)

	cat := seedCategory(t, db, "Non-alcoholic cocktails", "nonalco", models.KindNonAlcohol)
	seedNonAlcoholProduct(t, db, cat.ID, "limeade", "3.10")
	seedNonAlcoholProduct(t, db, cat.ID, "colada", "12.40")

	// Substring of the price's string form.
	w := doJSON(t, r, "GET", "/api/nonalcoholcocktails/?price=3.1", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	results := decodeBody(t, w)["data"].([]interface{})
	assert.Len(t, results, 1)
	assert.Equal(t, "limeade", results[0].(map[string]interface{})["title"])

	w = doJSON(t, r, "GET", "/api/nonalcoholcocktails/?title=ade", nil, nil)
	results = decodeBody(t, w)["data"].([]interface{})
	assert.Len(t, results, 1)
	assert.Equal(t, "limeade", results[0].(map[string]interface{})["title"])
}

func TestProductSerializerValidation(t *testing.T) {
	db := setupTestDB(t, "ctl_product_valid")
	r := setupRouter(db)
	_, adminToken := seedUser(t, db, "admin@example.com", "admin")
	auth := map[string]string{"Authorization": adminToken}

	cat := seedCategory(t, db, "Alcoholic cocktails", "alco", models.KindAlcohol)

	base := h{
		"category_id":     cat.ID,
		"title":           "Negroni",
		"image":           "/img/negroni.jpg",
		"price":           "7.20",
		"alcohol_content": "24%",
		"volume":          "90ml",
		"temperature":     "cold",
		"in_time":         "evening",
	}

	// Missing required field.
	bad := h{}
	for k, v := range base {
		bad[k] = v
	}
	delete(bad, "price")
	w := doJSON(t, r, "POST", "/admin/alcoholcocktails/", bad, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Nonexistent category.
	bad = h{}
	for k, v := range base {
		bad[k] = v
	}
	bad["category_id"] = 9999
	w = doJSON(t, r, "POST", "/admin/alcoholcocktails/", bad, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Too many fraction digits.
	bad = h{}
	for k, v := range base {
		bad[k] = v
	}
	bad["price"] = "7.205"
	w = doJSON(t, r, "POST", "/admin/alcoholcocktails/", bad, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Over the 9,2 maximum.
	bad = h{}
	for k, v := range base {
		bad[k] = v
	}
	bad["price"] = "10000000.00"
	w = doJSON(t, r, "POST", "/admin/alcoholcocktails/", bad, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Negative.
	bad = h{}
	for k, v := range base {
		bad[k] = v
	}
	bad["price"] = "-1.00"
	w = doJSON(t, r, "POST", "/admin/alcoholcocktails/", bad, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The untouched payload is fine.
	w = doJSON(t, r, "POST", "/admin/alcoholcocktails/", base, auth)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestLatestProductsEndpoint(t *testing.T) {
	db := setupTestDB(t, "ctl_latest")
	r := setupRouter(db)

	alco := seedCategory(t, db, "Alcoholic cocktails", "alco", models.KindAlcohol)
	nonalco := seedCategory(t, db, "Non-alcoholic cocktails", "nonalco", models.KindNonAlcohol)

	for i := 0; i < 3; i++ {
		p := models.AlcoholCocktail{
			ProductFields: models.ProductFields{
				CategoryID: alco.ID,
				Title:      fmt.Sprintf("alco-%d", i),
				Slug:       fmt.Sprintf("alco-%d", i),
				ImageURL:   "/img/a.jpg",
				Price:      decimal.RequireFromString("7.00"),
			},
			AlcoholContent: "20%", Volume: "100ml", Temperature: "cold", InTime: "evening",
		}
		assert.NoError(t, db.Create(&p).Error)
	}
	seedNonAlcoholProduct(t, db, nonalco.ID, "virgin-colada", "4.80")

	w := doJSON(t, r, "GET", "/api/products/latest/?respect_to=nonalcoholcocktails", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	items := decodeBody(t, w)["data"].([]interface{})
	assert.Len(t, items, 4)

	first := items[0].(map[string]interface{})
	assert.Equal(t, "nonalcoholcocktails", first["kind"])
	// Each feed item carries enough to build a detail link.
	assert.Contains(t, first["url"], "/api/nonalcoholcocktails/")
}
