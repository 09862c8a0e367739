package handlers

import (
	"log"
	"strings"

	"landscape-supply-api/models"

	"gorm.io/gorm"
)

// resolveCustomer implements the submit-time reuse-or-create policy.
//
// A selected customer id is always reused and never triggers a create.
// Otherwise a non-blank typed name creates a fresh customer carrying the
// job's phone and address (special instructions become the address note).
// Failures here are deliberately non-fatal: the job is still created
// without a customer link, and the problem is only logged.
func resolveCustomer(db *gorm.DB, req CreateJobRequest) (customerID *uint, contractor bool) {
	if req.CustomerID != nil {
		var customer models.Customer
		if err := db.First(&customer, *req.CustomerID).Error; err != nil {
			log.Printf("⚠️  Selected customer %d could not be loaded: %v — job keeps the id without contractor pricing", *req.CustomerID, err)
			return req.CustomerID, false
		}
		return &customer.ID, customer.Contractor
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		// Validation rejects blank names before resolution runs; this is
		// only reachable when the resolver is called directly.
		return nil, false
	}

	customer := models.Customer{
		Name:       strings.TrimSpace(req.CustomerName),
		Phone:      req.CustomerPhone,
		Contractor: false,
	}
	if strings.TrimSpace(req.Address) != "" {
		customer.Addresses = []models.CustomerAddress{{
			Address: req.Address,
			Notes:   req.SpecialInstructions,
		}}
	}

	if err := db.Create(&customer).Error; err != nil {
		log.Printf("⚠️  Customer auto-create failed: %v — job will be submitted without a customer link", err)
		return nil, false
	}
	return &customer.ID, false
}
