package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"barshop-server/models"
	"barshop-server/services"
	"barshop-server/utils"
)

type ProductController struct {
	DB      *gorm.DB
	Catalog *services.CatalogService
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db, Catalog: services.NewCatalogService(db)}
}

// productPayload is the shared field set of both product serializers,
// validated once for both subtypes.
type productPayload struct {
	CategoryID  uint    `json:"category_id" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Slug        string  `json:"slug"`
	Image       string  `json:"image" binding:"required"`
	Description *string `json:"description"`
	Price       string  `json:"price" binding:"required"`
}

// validateShared checks the payload against the shared product contract:
// the category must exist, price must be a fixed-point decimal within the
// 9,2 bounds, the slug falls back to a slugified title.
func (pc *ProductController) validateShared(p productPayload) (models.ProductFields, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return models.ProductFields{}, errors.New("price must be a decimal number")
	}
	if err := utils.ValidatePrice(price); err != nil {
		return models.ProductFields{}, err
	}

	var category models.Category
	if err := pc.DB.First(&category, p.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ProductFields{}, errors.New("category_id does not reference an existing category")
		}
		return models.ProductFields{}, err
	}

	if p.Slug == "" {
		p.Slug = slug.Make(p.Title)
	}

	return models.ProductFields{
		CategoryID:  p.CategoryID,
		Title:       p.Title,
		Slug:        p.Slug,
		ImageURL:    p.Image,
		Description: p.Description,
		Price:       price,
	}, nil
}

// applySearch adds the list-endpoint filters: `search` matches a substring
// of the title or of the price's string form; `title` and `price` do the
// same per field.
func applySearch(c *gin.Context, q *gorm.DB) *gorm.DB {
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		q = q.Where("title LIKE ? OR price LIKE ?", pattern, pattern)
	}
	if title := c.Query("title"); title != "" {
		q = q.Where("title LIKE ?", "%"+title+"%")
	}
	if price := c.Query("price"); price != "" {
		q = q.Where("price LIKE ?", "%"+price+"%")
	}
	return q
}

// ---------------------------------------------------------------
//                     ALCOHOL COCKTAILS
// ---------------------------------------------------------------

// ListAlcohol -> GET /api/alcoholcocktails/
// Searchable, unpaginated.
func (pc *ProductController) ListAlcohol(c *gin.Context) {
	var products []models.AlcoholCocktail
	q := applySearch(c, pc.DB.Preload("Category").Order("id"))
	if err := q.Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of alcohol cocktails", products)
}

// GetAlcoholByID -> GET /api/alcoholcocktails/:id/
func (pc *ProductController) GetAlcoholByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var product models.AlcoholCocktail
	if err := pc.DB.Preload("Category").First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Alcohol cocktail detail", product)
}

// CreateAlcohol -> POST /admin/alcoholcocktails/
func (pc *ProductController) CreateAlcohol(c *gin.Context) {
	var body struct {
		productPayload
		AlcoholContent string `json:"alcohol_content" binding:"required"`
		Volume         string `json:"volume" binding:"required"`
		Temperature    string `json:"temperature" binding:"required"`
		InTime         string `json:"in_time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	fields, err := pc.validateShared(body.productPayload)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product := models.AlcoholCocktail{
		ProductFields:  fields,
		AlcoholContent: body.AlcoholContent,
		Volume:         body.Volume,
		Temperature:    body.Temperature,
		InTime:         body.InTime,
	}
	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Alcohol cocktail created", product)
}

// UpdateAlcohol -> PATCH /admin/alcoholcocktails/:id
func (pc *ProductController) UpdateAlcohol(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var product models.AlcoholCocktail
	if err := pc.DB.First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		productPatch
		AlcoholContent *string `json:"alcohol_content"`
		Volume         *string `json:"volume"`
		Temperature    *string `json:"temperature"`
		InTime         *string `json:"in_time"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := pc.applyPatch(&product.ProductFields, body.productPatch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.AlcoholContent != nil {
		product.AlcoholContent = *body.AlcoholContent
	}
	if body.Volume != nil {
		product.Volume = *body.Volume
	}
	if body.Temperature != nil {
		product.Temperature = *body.Temperature
	}
	if body.InTime != nil {
		product.InTime = *body.InTime
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Alcohol cocktail updated", product)
}

// DeleteAlcohol -> DELETE /admin/alcoholcocktails/:id
func (pc *ProductController) DeleteAlcohol(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	if err := pc.DB.Delete(&models.AlcoholCocktail{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Alcohol cocktail deleted", gin.H{"id": id})
}

// ---------------------------------------------------------------
//                   NON-ALCOHOL COCKTAILS
// ---------------------------------------------------------------

// ListNonAlcohol -> GET /api/nonalcoholcocktails/
func (pc *ProductController) ListNonAlcohol(c *gin.Context) {
	var products []models.NonAlcoholCocktail
	q := applySearch(c, pc.DB.Preload("Category").Order("id"))
	if err := q.Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of non-alcohol cocktails", products)
}

// GetNonAlcoholByID -> GET /api/nonalcoholcocktails/:id/
func (pc *ProductController) GetNonAlcoholByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var product models.NonAlcoholCocktail
	if err := pc.DB.Preload("Category").First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Non-alcohol cocktail detail", product)
}

// CreateNonAlcohol -> POST /admin/nonalcoholcocktails/
func (pc *ProductController) CreateNonAlcohol(c *gin.Context) {
	var body struct {
		productPayload
		Volume      string `json:"volume" binding:"required"`
		Temperature string `json:"temperature" binding:"required"`
		Taste       string `json:"taste" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	fields, err := pc.validateShared(body.productPayload)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product := models.NonAlcoholCocktail{
		ProductFields: fields,
		Volume:        body.Volume,
		Temperature:   body.Temperature,
		Taste:         body.Taste,
	}
	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Non-alcohol cocktail created", product)
}

// UpdateNonAlcohol -> PATCH /admin/nonalcoholcocktails/:id
func (pc *ProductController) UpdateNonAlcohol(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var product models.NonAlcoholCocktail
	if err := pc.DB.First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		productPatch
		Volume      *string `json:"volume"`
		Temperature *string `json:"temperature"`
		Taste       *string `json:"taste"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := pc.applyPatch(&product.ProductFields, body.productPatch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Volume != nil {
		product.Volume = *body.Volume
	}
	if body.Temperature != nil {
		product.Temperature = *body.Temperature
	}
	if body.Taste != nil {
		product.Taste = *body.Taste
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Non-alcohol cocktail updated", product)
}

// DeleteNonAlcohol -> DELETE /admin/nonalcoholcocktails/:id
func (pc *ProductController) DeleteNonAlcohol(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	if err := pc.DB.Delete(&models.NonAlcoholCocktail{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Non-alcohol cocktail deleted", gin.H{"id": id})
}

// productPatch is the partial-update form of the shared fields.
type productPatch struct {
	CategoryID  *uint   `json:"category_id"`
	Title       *string `json:"title"`
	Slug        *string `json:"slug"`
	Image       *string `json:"image"`
	Description *string `json:"description"`
	Price       *string `json:"price"`
}

func (pc *ProductController) applyPatch(fields *models.ProductFields, patch productPatch) error {
	if patch.CategoryID != nil {
		var category models.Category
		if err := pc.DB.First(&category, *patch.CategoryID).Error; err != nil {
			return errors.New("category_id does not reference an existing category")
		}
		fields.CategoryID = *patch.CategoryID
	}
	if patch.Title != nil {
		fields.Title = *patch.Title
	}
	if patch.Slug != nil {
		fields.Slug = *patch.Slug
	}
	if patch.Image != nil {
		fields.ImageURL = *patch.Image
	}
	if patch.Description != nil {
		fields.Description = patch.Description
	}
	if patch.Price != nil {
		price, err := decimal.NewFromString(*patch.Price)
		if err != nil {
			return errors.New("price must be a decimal number")
		}
		if err := utils.ValidatePrice(price); err != nil {
			return err
		}
		fields.Price = price
	}
	return nil
}

// ---------------------------------------------------------------
//                      LATEST PRODUCTS FEED
// ---------------------------------------------------------------

// GetLatestProducts -> GET /api/products/latest/?kinds=...&respect_to=...
// The main-page feed: up to 5 newest records per requested subtype, with an
// optional subtype pushed to the front.
func (pc *ProductController) GetLatestProducts(c *gin.Context) {
	kindsParam := c.DefaultQuery("kinds",
		string(models.KindAlcohol)+","+string(models.KindNonAlcohol))

	var kinds []models.ProductKind
	for _, part := range strings.Split(kindsParam, ",") {
		kinds = append(kinds, models.ProductKind(strings.TrimSpace(part)))
	}
	respectTo := models.ProductKind(c.Query("respect_to"))

	items, err := pc.Catalog.LatestProducts(kinds, respectTo)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Latest products", items)
}
