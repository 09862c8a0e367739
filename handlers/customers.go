package handlers

import (
	"net/http"

	"landscape-supply-api/config"
	"landscape-supply-api/models"

	"github.com/gin-gonic/gin"
)

type AddressRequest struct {
	Address string `json:"address" binding:"required"`
	Notes   string `json:"notes"`
}

type CustomerRequest struct {
	Name       string           `json:"name" binding:"required"`
	Phone      string           `json:"phone"`
	Email      string           `json:"email"`
	Contractor bool             `json:"contractor"`
	Notes      string           `json:"notes"`
	Addresses  []AddressRequest `json:"addresses"`
}

// ListCustomers returns all customers with their addresses
func ListCustomers(c *gin.Context) {
	var customers []models.Customer
	config.DB.Preload("Addresses").Order("name asc").Find(&customers)
	c.JSON(http.StatusOK, gin.H{"count": len(customers), "customers": customers})
}

// SearchCustomers backs the typeahead on the job form — case-insensitive
// substring match over name or phone
func SearchCustomers(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		c.JSON(http.StatusOK, gin.H{"count": 0, "customers": []models.Customer{}})
		return
	}

	var customers []models.Customer
	config.DB.Preload("Addresses").
		Where("name LIKE ? OR phone LIKE ?", "%"+q+"%", "%"+q+"%").
		Order("name asc").
		Limit(20).
		Find(&customers)
	c.JSON(http.StatusOK, gin.H{"count": len(customers), "customers": customers})
}

// CreateCustomer creates a customer via the management screen
func CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer := models.Customer{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Contractor: req.Contractor,
		Notes:      req.Notes,
	}
	for _, a := range req.Addresses {
		customer.Addresses = append(customer.Addresses, models.CustomerAddress{
			Address: a.Address,
			Notes:   a.Notes,
		})
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Customer created successfully", "customer": customer})
}

// UpdateCustomer replaces a customer's fields and address list
func UpdateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := config.DB.First(&customer, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config.DB.Model(&customer).Updates(map[string]interface{}{
		"name":       req.Name,
		"phone":      req.Phone,
		"email":      req.Email,
		"contractor": req.Contractor,
		"notes":      req.Notes,
	})

	// Addresses are replaced wholesale; the form always submits the full list
	config.DB.Where("customer_id = ?", customer.ID).Delete(&models.CustomerAddress{})
	for _, a := range req.Addresses {
		config.DB.Create(&models.CustomerAddress{
			CustomerID: customer.ID,
			Address:    a.Address,
			Notes:      a.Notes,
		})
	}

	config.DB.Preload("Addresses").First(&customer, customer.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Customer updated successfully", "customer": customer})
}
