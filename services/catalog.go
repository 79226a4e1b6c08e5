package services

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"barshop-server/models"
)

// ErrUnknownCategoryKind is returned by the sidebar aggregator for a
// category whose kind tag does not name one of the product tables. It is an
// internal lookup error, not a user-facing validation message.
var ErrUnknownCategoryKind = errors.New("category kind does not map to a product table")

// latestPerKind is how many records of each subtype the main-page feed pulls.
const latestPerKind = 5

type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// SidebarEntry is one row of the left-sidebar category list.
type SidebarEntry struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Count int64  `json:"count"`
}

// CategoriesForSidebar returns one entry per category with the number of
// products in that category. Which product table is counted is selected by
// the category's kind tag.
func (s *CatalogService) CategoriesForSidebar() ([]SidebarEntry, error) {
	var categories []models.Category
	if err := s.DB.Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}

	entries := make([]SidebarEntry, 0, len(categories))
	for _, cat := range categories {
		var (
			count int64
			err   error
		)
		switch cat.Kind {
		case models.KindAlcohol:
			err = s.DB.Model(&models.AlcoholCocktail{}).
				Where("category_id = ?", cat.ID).Count(&count).Error
		case models.KindNonAlcohol:
			err = s.DB.Model(&models.NonAlcoholCocktail{}).
				Where("category_id = ?", cat.ID).Count(&count).Error
		default:
			return nil, fmt.Errorf("%w: category %q has kind %q",
				ErrUnknownCategoryKind, cat.Name, cat.Kind)
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, SidebarEntry{
			Name:  cat.Name,
			URL:   cat.AbsoluteURL(),
			Count: count,
		})
	}
	return entries, nil
}

// FeedItem is one element of the heterogeneous latest-products feed. Kind
// tells the caller which table the product came from, URL is its detail page.
type FeedItem struct {
	Kind    models.ProductKind `json:"kind"`
	URL     string             `json:"url"`
	Product interface{}        `json:"product"`
}

// LatestProducts fetches the 5 most recent records of each requested
// subtype (descending by id) and concatenates them in the order the
// subtypes were requested. If respectTo names one of the requested
// subtypes, the result is stable-partitioned so that subtype's records come
// first; relative order inside each group is preserved. Unknown kinds in
// the request are skipped. The feed is recomputed in full on every call.
func (s *CatalogService) LatestProducts(kinds []models.ProductKind, respectTo models.ProductKind) ([]FeedItem, error) {
	items := make([]FeedItem, 0, latestPerKind*len(kinds))
	for _, kind := range kinds {
		switch kind {
		case models.KindAlcohol:
			var rows []models.AlcoholCocktail
			if err := s.DB.Order("id DESC").Limit(latestPerKind).Find(&rows).Error; err != nil {
				return nil, err
			}
			for i := range rows {
				items = append(items, FeedItem{Kind: kind, URL: rows[i].AbsoluteURL(), Product: rows[i]})
			}
		case models.KindNonAlcohol:
			var rows []models.NonAlcoholCocktail
			if err := s.DB.Order("id DESC").Limit(latestPerKind).Find(&rows).Error; err != nil {
				return nil, err
			}
			for i := range rows {
				items = append(items, FeedItem{Kind: kind, URL: rows[i].AbsoluteURL(), Product: rows[i]})
			}
		}
	}

	if respectTo.Valid() && containsKind(kinds, respectTo) {
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Kind == respectTo && items[j].Kind != respectTo
		})
	}
	return items, nil
}

func containsKind(kinds []models.ProductKind, k models.ProductKind) bool {
	for _, kind := range kinds {
		if kind == k {
			return true
		}
	}
	return false
}
