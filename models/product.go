package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ProductKind tags the two cocktail tables. The tag is the stable subtype
// identifier used everywhere a record has to say which table it came from:
// category sidebar counts, the latest-products feed and cart line references.
type ProductKind string

const (
	KindAlcohol    ProductKind = "alcoholcocktails"
	KindNonAlcohol ProductKind = "nonalcoholcocktails"
)

// Valid reports whether k names one of the known product tables.
func (k ProductKind) Valid() bool {
	return k == KindAlcohol || k == KindNonAlcohol
}

// ProductFields is the column set shared by both cocktail tables,
// declared once and embedded.
type ProductFields struct {
	CategoryID  uint            `gorm:"not null" json:"category_id"`
	Category    Category        `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"category"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Slug        string          `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	ImageURL    string          `gorm:"type:varchar(255);not null" json:"image"`
	Description *string         `gorm:"type:text" json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(9,2);not null" json:"price"`
}

// CatalogProduct is the read-side view a caller gets back from a
// polymorphic lookup, without knowing which table the row lives in.
type CatalogProduct interface {
	GetID() uint
	Kind() ProductKind
	UnitPrice() decimal.Decimal
	AbsoluteURL() string
}

type AlcoholCocktail struct {
	ID uint `gorm:"primaryKey" json:"id"`
	ProductFields
	AlcoholContent string    `gorm:"type:varchar(255);not null" json:"alcohol_content"`
	Volume         string    `gorm:"type:varchar(255);not null" json:"volume"`
	Temperature    string    `gorm:"type:varchar(255);not null" json:"temperature"`
	InTime         string    `gorm:"type:varchar(255);not null" json:"in_time"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (p *AlcoholCocktail) GetID() uint                { return p.ID }
func (p *AlcoholCocktail) Kind() ProductKind          { return KindAlcohol }
func (p *AlcoholCocktail) UnitPrice() decimal.Decimal { return p.Price }

func (p *AlcoholCocktail) AbsoluteURL() string {
	return productURL(KindAlcohol, p.ID)
}

type NonAlcoholCocktail struct {
	ID uint `gorm:"primaryKey" json:"id"`
	ProductFields
	Volume      string    `gorm:"type:varchar(255);not null" json:"volume"`
	Temperature string    `gorm:"type:varchar(255);not null" json:"temperature"`
	Taste       string    `gorm:"type:varchar(255);not null" json:"taste"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (p *NonAlcoholCocktail) GetID() uint                { return p.ID }
func (p *NonAlcoholCocktail) Kind() ProductKind          { return KindNonAlcohol }
func (p *NonAlcoholCocktail) UnitPrice() decimal.Decimal { return p.Price }

func (p *NonAlcoholCocktail) AbsoluteURL() string {
	return productURL(KindNonAlcohol, p.ID)
}

func productURL(kind ProductKind, id uint) string {
	return fmt.Sprintf("/api/%s/%d/", kind, id)
}
