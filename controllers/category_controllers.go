package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"barshop-server/models"
	"barshop-server/services"
	"barshop-server/utils"
)

// Category list pagination: page size 10, and 10 is also the cap, so the
// size cannot be raised through the query string.
const categoryPageSize = 10

type CategoryController struct {
	DB      *gorm.DB
	Catalog *services.CatalogService
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db, Catalog: services.NewCatalogService(db)}
}

// ListCategories -> GET /api/categories/
// Paginated with the {count, next, previous, results} envelope.
func (cc *CategoryController) ListCategories(c *gin.Context) {
	page, pageSize := utils.PageParams(c, categoryPageSize, categoryPageSize)

	var count int64
	if err := cc.DB.Model(&models.Category{}).Count(&count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var categories []models.Category
	if err := cc.DB.Order("id").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewPage(c, count, page, pageSize, categories))
}

// GetSidebar -> GET /api/categories/sidebar/
// Per-category product counts for the storefront sidebar.
func (cc *CategoryController) GetSidebar(c *gin.Context) {
	entries, err := cc.Catalog.CategoriesForSidebar()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category sidebar", entries)
}

// CreateCategory -> POST /admin/categories/
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var body struct {
		Name string             `json:"name" binding:"required"`
		Slug string             `json:"slug"`
		Kind models.ProductKind `json:"kind"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Kind != "" && !body.Kind.Valid() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown category kind"))
		return
	}
	if body.Slug == "" {
		body.Slug = slug.Make(body.Name)
	}

	category := models.Category{
		Name: body.Name,
		Slug: body.Slug,
		Kind: body.Kind,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusConflict, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// UpdateCategory -> PATCH /admin/categories/:cat_id
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	idStr := c.Param("cat_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		Name string             `json:"name"`
		Slug string             `json:"slug"`
		Kind models.ProductKind `json:"kind"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.Category
	if err := cc.DB.First(&category, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != "" {
		category.Name = body.Name
	}
	if body.Slug != "" {
		category.Slug = body.Slug
	}
	if body.Kind != "" {
		if !body.Kind.Valid() {
			utils.RespondError(c, http.StatusBadRequest, errors.New("unknown category kind"))
			return
		}
		category.Kind = body.Kind
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory -> DELETE /admin/categories/:cat_id
// Cascades to every product in the category.
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	idStr := c.Param("cat_id")
	id, _ := strconv.Atoi(idStr)

	if err := cc.DB.Delete(&models.Category{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"category_id": id})
}
