package handlers

import (
	"net/http"

	"landscape-supply-api/config"
	"landscape-supply-api/models"
	"landscape-supply-api/pricing"

	"github.com/gin-gonic/gin"
)

type ProductRequest struct {
	Name            string      `json:"name" binding:"required"`
	Unit            models.Unit `json:"unit" binding:"required"`
	RetailPrice     float64     `json:"retail_price"`
	ContractorPrice *float64    `json:"contractor_price"`
	Active          *bool       `json:"active"`
}

// ListProducts returns the full catalog, inactive rows included
func ListProducts(c *gin.Context) {
	var products []models.Product
	config.DB.Order("name asc").Find(&products)
	c.JSON(http.StatusOK, gin.H{"count": len(products), "products": products})
}

// ListActiveProducts returns the generic catalog used when no customer is selected
func ListActiveProducts(c *gin.Context) {
	var products []models.Product
	config.DB.Where("active = ?", true).Order("name asc").Find(&products)
	c.JSON(http.StatusOK, gin.H{"count": len(products), "products": products})
}

// PricedProduct is a catalog row with the price pre-resolved for one customer
type PricedProduct struct {
	models.Product
	CurrentPrice float64           `json:"current_price"`
	PriceType    pricing.PriceType `json:"price_type"`
}

// CustomerPricing returns the active catalog with each row priced for the
// given customer — contractor tier when the customer qualifies and the
// product carries one, retail otherwise
func CustomerPricing(c *gin.Context) {
	var customer models.Customer
	if err := config.DB.First(&customer, c.Param("customerId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var products []models.Product
	config.DB.Where("active = ?", true).Order("name asc").Find(&products)

	priced := make([]PricedProduct, 0, len(products))
	for _, p := range products {
		price, priceType := pricing.Resolve(p, customer.Contractor)
		priced = append(priced, PricedProduct{Product: p, CurrentPrice: price, PriceType: priceType})
	}

	c.JSON(http.StatusOK, gin.H{
		"customer":   customer.Name,
		"contractor": customer.Contractor,
		"count":      len(priced),
		"products":   priced,
	})
}

// CreateProduct adds a catalog entry
func CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Unit.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid unit. Must be: yards, tons, bags, bales, or each"})
		return
	}

	var existing models.Product
	if result := config.DB.Where("name = ?", req.Name).First(&existing); result.Error == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A product with this name already exists"})
		return
	}

	product := models.Product{
		Name:            req.Name,
		Unit:            req.Unit,
		RetailPrice:     req.RetailPrice,
		ContractorPrice: req.ContractorPrice,
		Active:          true,
	}
	if req.Active != nil {
		product.Active = *req.Active
	}

	if err := config.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "product": product})
}

// UpdateProduct edits a catalog entry
func UpdateProduct(c *gin.Context) {
	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Unit.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid unit. Must be: yards, tons, bags, bales, or each"})
		return
	}

	updates := map[string]interface{}{
		"name":             req.Name,
		"unit":             req.Unit,
		"retail_price":     req.RetailPrice,
		"contractor_price": req.ContractorPrice,
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	config.DB.Model(&product).Updates(updates)

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// DeleteProduct removes a catalog entry. Existing jobs keep their price
// snapshots, so deleting a product never rewrites history.
func DeleteProduct(c *gin.Context) {
	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	config.DB.Delete(&product)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully", "product_id": product.ID})
}
