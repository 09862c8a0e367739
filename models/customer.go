package models

import "time"

type Customer struct {
	ID         uint              `json:"id" gorm:"primaryKey"`
	Name       string            `json:"name" gorm:"not null"`
	Phone      string            `json:"phone"`
	Email      string            `json:"email"`
	Contractor bool              `json:"contractor" gorm:"default:false"` // enables contractor pricing
	Notes      string            `json:"notes"`
	Addresses  []CustomerAddress `json:"addresses,omitempty" gorm:"foreignKey:CustomerID"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

type CustomerAddress struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CustomerID uint      `json:"customer_id" gorm:"not null"`
	Address    string    `json:"address" gorm:"not null"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
}
