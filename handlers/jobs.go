package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"landscape-supply-api/config"
	"landscape-supply-api/jobfilter"
	"landscape-supply-api/middleware"
	"landscape-supply-api/models"
	"landscape-supply-api/pricing"
	"landscape-supply-api/statemachine"

	"github.com/gin-gonic/gin"
)

// Pricing workflow variants. Computed jobs total the priced lines;
// collection jobs carry an operator-entered flat amount instead.
const (
	PricingComputed   = "computed"
	PricingCollection = "collection"
)

type JobLineRequest struct {
	ProductName string      `json:"product_name"`
	Quantity    float64     `json:"quantity"`
	Unit        models.Unit `json:"unit"`
}

type CreateJobRequest struct {
	CustomerID          *uint            `json:"customer_id"`
	CustomerName        string           `json:"customer_name"`
	CustomerPhone       string           `json:"customer_phone"`
	Address             string           `json:"address"`
	SpecialInstructions string           `json:"special_instructions"`
	DeliveryDate        string           `json:"delivery_date"`   // YYYY-MM-DD
	AssignedDriver      string           `json:"assigned_driver"` // numeric id as sent by the form, may be blank
	Truck               string           `json:"truck"`
	ToBeScheduled       bool             `json:"to_be_scheduled"`
	PricingMode         string           `json:"pricing_mode"` // computed (default) or collection
	CollectionAmount    float64          `json:"collection_amount"`
	Products            []JobLineRequest `json:"products"`
}

// validateJobRequest runs the submission checks in order and stops at the
// first failure, so the caller sees exactly one message
func validateJobRequest(req CreateJobRequest) error {
	if req.CustomerID == nil && strings.TrimSpace(req.CustomerName) == "" {
		return errors.New("Customer name is required")
	}
	if strings.TrimSpace(req.Address) == "" {
		return errors.New("Delivery address is required")
	}
	if !req.ToBeScheduled {
		if strings.TrimSpace(req.DeliveryDate) == "" {
			return errors.New("Delivery date is required")
		}
		if _, err := jobfilter.ParseDate(req.DeliveryDate); err != nil {
			return errors.New("Delivery date must be in YYYY-MM-DD format")
		}
	}
	for _, line := range req.Products {
		if strings.TrimSpace(line.ProductName) == "" || !(line.Quantity > 0) {
			return errors.New("Each product line needs a product and a positive quantity")
		}
	}
	return nil
}

// parseDriverID turns the form's driver field into an id or nil
func parseDriverID(s string) *uint {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil
	}
	uid := uint(id)
	return &uid
}

// buildJob assembles the persistable job from a validated request.
// catalog and contractor come from the resolved customer; to-be-scheduled
// jobs are forced to carry no date and no driver.
func buildJob(req CreateJobRequest, customerID *uint, contractor bool, catalog pricing.Catalog) models.Job {
	job := models.Job{
		CustomerName:        strings.TrimSpace(req.CustomerName),
		CustomerPhone:       req.CustomerPhone,
		CustomerID:          customerID,
		Address:             req.Address,
		SpecialInstructions: req.SpecialInstructions,
		Truck:               req.Truck,
		ContractorDiscount:  contractor,
	}

	if req.ToBeScheduled {
		job.Status = models.StatusToBeScheduled
		job.DeliveryDate = nil
		job.AssignedDriverID = nil
	} else {
		job.Status = models.StatusScheduled
		if date, err := jobfilter.ParseDate(req.DeliveryDate); err == nil {
			job.DeliveryDate = &date
		}
		job.AssignedDriverID = parseDriverID(req.AssignedDriver)
	}

	if req.PricingMode == PricingCollection {
		// Flat collection amount: lines are descriptive only
		for _, line := range req.Products {
			job.Items = append(job.Items, models.JobItem{
				ProductName: line.ProductName,
				Quantity:    line.Quantity,
				Unit:        line.Unit,
			})
		}
		job.TotalAmount = req.CollectionAmount
		return job
	}

	var lines []pricing.Line
	for _, line := range req.Products {
		priced := pricing.ComputeLine(line.ProductName, line.Quantity, catalog, contractor, pricing.PriceRetail)
		lines = append(lines, priced)
		job.Items = append(job.Items, models.JobItem{
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Unit:        line.Unit,
			UnitPrice:   priced.UnitPrice,
			TotalPrice:  priced.TotalPrice,
			PriceType:   string(priced.PriceType),
		})
	}
	job.TotalAmount = pricing.OrderTotal(lines)
	return job
}

// CreateJob accepts a delivery job from the scheduling form
func CreateJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateJobRequest(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customerID, contractor := resolveCustomer(config.DB, req)

	// Fill the display name from the linked customer when only an id was sent
	if strings.TrimSpace(req.CustomerName) == "" && customerID != nil {
		var customer models.Customer
		if err := config.DB.First(&customer, *customerID).Error; err == nil {
			req.CustomerName = customer.Name
			if req.CustomerPhone == "" {
				req.CustomerPhone = customer.Phone
			}
		}
	}

	var products []models.Product
	config.DB.Where("active = ?", true).Find(&products)
	catalog := pricing.CatalogFromProducts(products)

	job := buildJob(req, customerID, contractor, catalog)
	if err := config.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		return
	}

	history := models.JobStatusHistory{
		JobID:     job.ID,
		ToStatus:  job.Status,
		ChangedBy: middleware.GetUserID(c),
		Note:      "Job created",
	}
	config.DB.Create(&history)

	config.DB.Preload("Items").Preload("Driver").Preload("Customer").First(&job, job.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Job created successfully", "job": job})
}

// ListJobs returns the visible job subset for the caller.
// Query params: date=YYYY-MM-DD, status, q (search), unscheduled=true.
// Drivers only ever see their own assigned jobs.
func ListJobs(c *gin.Context) {
	query := config.DB.Preload("Items").Preload("Driver").Preload("Customer")
	if middleware.GetRole(c) == models.RoleDriver {
		query = query.Where("assigned_driver_id = ?", middleware.GetUserID(c))
	}

	var jobs []models.Job
	query.Order("delivery_date asc, created_at desc").Find(&jobs)

	opts := jobfilter.Options{
		Mode:   jobfilter.ModeNormal,
		Search: c.Query("q"),
		Status: c.Query("status"),
	}
	if c.Query("unscheduled") == "true" {
		opts.Mode = jobfilter.ModeUnscheduled
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := jobfilter.ParseDate(dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		opts.Date = date
	}

	visible := jobfilter.Filter(jobs, opts)
	c.JSON(http.StatusOK, gin.H{"count": len(visible), "jobs": visible})
}

// GetJob returns a single job with full detail and history
func GetJob(c *gin.Context) {
	var job models.Job
	if err := config.DB.
		Preload("Items").
		Preload("Driver").
		Preload("Customer").
		Preload("StatusHistory").
		First(&job, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	if middleware.GetRole(c) == models.RoleDriver {
		callerID := middleware.GetUserID(c)
		if job.AssignedDriverID == nil || *job.AssignedDriverID != callerID {
			c.JSON(http.StatusForbidden, gin.H{"error": "This job is not assigned to you"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"job":        job,
		"amount_due": job.AmountDue(),
		"fully_paid": job.IsFullyPaid(),
	})
}

type UpdateJobRequest struct {
	CustomerName        *string           `json:"customer_name"`
	CustomerPhone       *string           `json:"customer_phone"`
	Address             *string           `json:"address"`
	SpecialInstructions *string           `json:"special_instructions"`
	DeliveryDate        *string           `json:"delivery_date"`
	AssignedDriver      *string           `json:"assigned_driver"`
	Truck               *string           `json:"truck"`
	Status              *models.JobStatus `json:"status"`
	DriverNotes         *string           `json:"driver_notes"`
	Products            []JobLineRequest  `json:"products"`
	CollectionAmount    *float64          `json:"collection_amount"`
	Note                string            `json:"note"`
}

// UpdateJob edits job fields and drives status transitions (office/admin).
// Assigning a delivery date to a to-be-scheduled job implies the
// transition to scheduled even when no explicit status is sent.
func UpdateJob(c *gin.Context) {
	var job models.Job
	if err := config.DB.Preload("Items").First(&job, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	if statemachine.IsTerminal(job.Status) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Job is in a terminal state and can no longer be edited",
			"current_status": job.Status,
		})
		return
	}

	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := middleware.GetRole(c)

	// Work out the requested transition, if any, before touching the row
	targetStatus := job.Status
	if req.Status != nil && *req.Status != job.Status {
		if !req.Status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		targetStatus = *req.Status
	} else if job.Status == models.StatusToBeScheduled && req.DeliveryDate != nil && strings.TrimSpace(*req.DeliveryDate) != "" {
		targetStatus = models.StatusScheduled
	}

	var newDate *time.Time
	if req.DeliveryDate != nil && strings.TrimSpace(*req.DeliveryDate) != "" {
		date, err := jobfilter.ParseDate(*req.DeliveryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery date must be in YYYY-MM-DD format"})
			return
		}
		newDate = &date
	}

	if targetStatus != job.Status {
		if err := statemachine.CanTransition(job.Status, targetStatus, role); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":             "Invalid state transition",
				"current_status":    job.Status,
				"requested":         targetStatus,
				"reason":            err.Error(),
				"valid_next_states": statemachine.ValidTransitionsFrom(job.Status),
			})
			return
		}
		if targetStatus == models.StatusScheduled && newDate == nil && job.DeliveryDate == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Delivery date is required"})
			return
		}
	}

	updates := map[string]interface{}{}
	if req.CustomerName != nil && strings.TrimSpace(*req.CustomerName) != "" {
		updates["customer_name"] = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		updates["customer_phone"] = *req.CustomerPhone
	}
	if req.Address != nil && strings.TrimSpace(*req.Address) != "" {
		updates["address"] = *req.Address
	}
	if req.SpecialInstructions != nil {
		updates["special_instructions"] = *req.SpecialInstructions
	}
	if req.Truck != nil {
		updates["truck"] = *req.Truck
	}
	if req.DriverNotes != nil {
		updates["driver_notes"] = *req.DriverNotes
	}
	if newDate != nil {
		updates["delivery_date"] = newDate
	}
	if req.AssignedDriver != nil {
		driverID := parseDriverID(*req.AssignedDriver)
		// A job waiting to be scheduled carries no date and no driver;
		// assigning a driver only makes sense once a date moves it to scheduled
		if driverID != nil && targetStatus == models.StatusToBeScheduled {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Assign a delivery date before assigning a driver"})
			return
		}
		updates["assigned_driver_id"] = driverID
	}

	// Replacing the product lines re-prices the job against the current
	// catalog, unless a flat collection amount overrides the total
	if req.Products != nil {
		for _, line := range req.Products {
			if strings.TrimSpace(line.ProductName) == "" || !(line.Quantity > 0) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Each product line needs a product and a positive quantity"})
				return
			}
		}

		var products []models.Product
		config.DB.Where("active = ?", true).Find(&products)
		catalog := pricing.CatalogFromProducts(products)

		config.DB.Where("job_id = ?", job.ID).Delete(&models.JobItem{})
		var lines []pricing.Line
		for _, line := range req.Products {
			priced := pricing.ComputeLine(line.ProductName, line.Quantity, catalog, job.ContractorDiscount, pricing.PriceRetail)
			lines = append(lines, priced)
			config.DB.Create(&models.JobItem{
				JobID:       job.ID,
				ProductName: line.ProductName,
				Quantity:    line.Quantity,
				Unit:        line.Unit,
				UnitPrice:   priced.UnitPrice,
				TotalPrice:  priced.TotalPrice,
				PriceType:   string(priced.PriceType),
			})
		}
		updates["total_amount"] = pricing.OrderTotal(lines)
	}
	if req.CollectionAmount != nil {
		updates["total_amount"] = *req.CollectionAmount
	}

	if targetStatus != job.Status {
		updates["status"] = targetStatus
	}

	prevStatus := job.Status
	if err := config.DB.Model(&job).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update job"})
		return
	}

	if targetStatus != prevStatus {
		history := models.JobStatusHistory{
			JobID:      job.ID,
			FromStatus: prevStatus,
			ToStatus:   targetStatus,
			ChangedBy:  middleware.GetUserID(c),
			Note:       req.Note,
		}
		config.DB.Create(&history)
	}

	config.DB.Preload("Items").Preload("Driver").Preload("Customer").First(&job, job.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Job updated successfully", "job": job})
}

type CompleteJobRequest struct {
	DriverNotes   string  `json:"driver_notes"`
	PaymentAmount float64 `json:"payment_amount"` // optional, zero is a valid completion
}

// CompleteJob marks a delivery complete, recording driver notes and any
// payment collected on site. Allowed for office, admin, or the assigned
// driver. Payments are clamped so the accumulated figure never passes the
// job total.
func CompleteJob(c *gin.Context) {
	var job models.Job
	if err := config.DB.First(&job, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	role := middleware.GetRole(c)
	callerID := middleware.GetUserID(c)
	if role == models.RoleDriver {
		if job.AssignedDriverID == nil || *job.AssignedDriverID != callerID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You are not the assigned driver for this job"})
			return
		}
	}

	var req CompleteJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.PaymentAmount < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment amount cannot be negative"})
		return
	}

	if err := statemachine.CanTransition(job.Status, models.StatusCompleted, role); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    job.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(job.Status),
		})
		return
	}

	payment := req.PaymentAmount
	if due := job.AmountDue(); payment > due {
		payment = due
	}
	received := job.PaymentReceived + payment

	updates := map[string]interface{}{
		"status":           models.StatusCompleted,
		"payment_received": received,
		"paid":             received >= job.TotalAmount,
	}
	if req.DriverNotes != "" {
		updates["driver_notes"] = req.DriverNotes
	}

	prevStatus := job.Status
	if err := config.DB.Model(&job).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete job"})
		return
	}

	history := models.JobStatusHistory{
		JobID:      job.ID,
		FromStatus: prevStatus,
		ToStatus:   models.StatusCompleted,
		ChangedBy:  callerID,
		Note:       req.DriverNotes,
	}
	config.DB.Create(&history)

	due := job.TotalAmount - received
	if due < 0 {
		due = 0
	}
	c.JSON(http.StatusOK, gin.H{
		"message":          "Job completed successfully",
		"job_id":           job.ID,
		"status":           models.StatusCompleted,
		"payment_received": received,
		"amount_due":       due,
		"fully_paid":       received >= job.TotalAmount,
	})
}

// DeleteJob removes a job outright — admin only, not a lifecycle transition
func DeleteJob(c *gin.Context) {
	var job models.Job
	if err := config.DB.First(&job, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	config.DB.Where("job_id = ?", job.ID).Delete(&models.JobItem{})
	config.DB.Where("job_id = ?", job.ID).Delete(&models.JobStatusHistory{})
	config.DB.Delete(&job)

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully", "job_id": job.ID})
}

// GetLifecycleInfo returns the full state machine for informational purposes
func GetLifecycleInfo(c *gin.Context) {
	var info []gin.H
	for _, t := range statemachine.GetAllTransitions() {
		info = append(info, gin.H{"from": t.From, "to": t.To, "role": t.Role})
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   info,
		"terminal_states": []models.JobStatus{models.StatusCompleted, models.StatusCancelled},
		"description":     "Delivery Job Lifecycle State Machine",
	})
}
