package models

import "time"

// User is the identity record Customers hang off. Passwords are stored
// bcrypt-hashed, never plain.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"type:varchar(255); not null" json:"name"`
	Email     string `gorm:"type:varchar(255); unique;not null" json:"email"`
	Password  string `gorm:"type:varchar(255); not null" json:"-"`
	Role      string `gorm:"type:varchar(255); not null" json:"role"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
