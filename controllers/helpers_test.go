package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"barshop-server/models"
	"barshop-server/router"
	"barshop-server/utils"
)

type h = map[string]interface{}

func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Category{},
		&models.AlcoholCocktail{},
		&models.NonAlcoholCocktail{},
		&models.Cart{},
		&models.CartProduct{},
		&models.Order{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	return router.SetupRouter(db)
}

func doJSON(t *testing.T, r *gin.Engine, method, url string, payload interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// seedUser creates a user+customer pair directly and returns a bearer token
// for it.
func seedUser(t *testing.T, db *gorm.DB, email, role string) (models.Customer, string) {
	t.Helper()
	user := models.User{Name: email, Email: email, Password: "hash", Role: role}
	assert.NoError(t, db.Create(&user).Error)
	customer := models.Customer{UserID: user.ID}
	assert.NoError(t, db.Create(&customer).Error)

	token, err := utils.GenerateToken(user.ID, user.Role)
	assert.NoError(t, err)
	return customer, "Bearer " + token
}

func seedCategory(t *testing.T, db *gorm.DB, name, slugVal string, kind models.ProductKind) models.Category {
	t.Helper()
	cat := models.Category{Name: name, Slug: slugVal, Kind: kind}
	assert.NoError(t, db.Create(&cat).Error)
	return cat
}

func seedNonAlcoholProduct(t *testing.T, db *gorm.DB, categoryID uint, title, price string) models.NonAlcoholCocktail {
	t.Helper()
	p := models.NonAlcoholCocktail{
		ProductFields: models.ProductFields{
			CategoryID: categoryID,
			Title:      title,
			Slug:       title,
			ImageURL:   "/img/" + title + ".jpg",
			Price:      decimal.RequireFromString(price),
		},
		Volume:      "300ml",
		Temperature: "cold",
		Taste:       "sweet",
	}
	assert.NoError(t, db.Create(&p).Error)
	return p
}
