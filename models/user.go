package models

import (
	"time"
)

// Role defines allowed staff roles in the system
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleOffice Role = "office"
	RoleDriver Role = "driver"
)

// IsValid reports whether the role is one of the closed set
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleOffice, RoleDriver:
		return true
	default:
		return false
	}
}

// Capability is a single permission a role may hold
type Capability string

const (
	CapManageJobs      Capability = "manage_jobs"      // create/edit/schedule/cancel deliveries
	CapManageCustomers Capability = "manage_customers" // customer CRUD + search
	CapManageProducts  Capability = "manage_products"  // product catalog CRUD
	CapManageUsers     Capability = "manage_users"     // user administration
	CapDeleteJobs      Capability = "delete_jobs"      // remove a delivery outright
	CapViewOwnJobs     Capability = "view_own_jobs"    // see deliveries assigned to self
	CapCompleteJobs    Capability = "complete_jobs"    // mark a delivery complete
)

// rolePermissions is the authoritative capability table.
// admin = everything; office = day-to-day job/customer/product work;
// driver = view and complete own assigned deliveries.
var rolePermissions = map[Role]map[Capability]bool{
	RoleAdmin: {
		CapManageJobs:      true,
		CapManageCustomers: true,
		CapManageProducts:  true,
		CapManageUsers:     true,
		CapDeleteJobs:      true,
		CapViewOwnJobs:     true,
		CapCompleteJobs:    true,
	},
	RoleOffice: {
		CapManageJobs:      true,
		CapManageCustomers: true,
		CapManageProducts:  true,
		CapViewOwnJobs:     true,
		CapCompleteJobs:    true,
	},
	RoleDriver: {
		CapViewOwnJobs:  true,
		CapCompleteJobs: true,
	},
}

// Can reports whether the role holds the given capability
func (r Role) Can(cap Capability) bool {
	return rolePermissions[r][cap]
}

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         Role      `json:"role" gorm:"not null;default:'office'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
