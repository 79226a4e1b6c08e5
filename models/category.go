package models

import (
	"fmt"
	"time"
)

type Category struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	Name      string      `gorm:"type:varchar(255);unique;not null" json:"name"`
	Slug      string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Kind      ProductKind `gorm:"type:varchar(32)" json:"kind,omitempty"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null" json:"updated_at"`
}

// AbsoluteURL returns the storefront path of the category page.
func (cat *Category) AbsoluteURL() string {
	return fmt.Sprintf("/categories/%s/", cat.Slug)
}
