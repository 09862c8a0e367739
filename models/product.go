package models

import "time"

// Unit is the quantity unit a product is sold in
type Unit string

const (
	UnitYards Unit = "yards"
	UnitTons  Unit = "tons"
	UnitBags  Unit = "bags"
	UnitBales Unit = "bales"
	UnitEach  Unit = "each"
)

// IsValid reports whether the unit is one of the closed set
func (u Unit) IsValid() bool {
	switch u {
	case UnitYards, UnitTons, UnitBags, UnitBales, UnitEach:
		return true
	default:
		return false
	}
}

type Product struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"uniqueIndex;not null"`
	Unit            Unit      `json:"unit" gorm:"not null"`
	RetailPrice     float64   `json:"retail_price" gorm:"not null"`
	ContractorPrice *float64  `json:"contractor_price"` // discounted tier, optional
	Active          bool      `json:"active" gorm:"default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
