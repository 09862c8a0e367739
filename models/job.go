package models

import "time"

// JobStatus represents all possible states of a delivery job
type JobStatus string

const (
	StatusToBeScheduled JobStatus = "to_be_scheduled"
	StatusScheduled     JobStatus = "scheduled"
	StatusInProgress    JobStatus = "in_progress" // legacy, still valid in stored data
	StatusCompleted     JobStatus = "completed"
	StatusCancelled     JobStatus = "cancelled"
)

// IsValid reports whether the status is one of the closed set
func (s JobStatus) IsValid() bool {
	switch s {
	case StatusToBeScheduled, StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

type Job struct {
	ID                  uint               `json:"id" gorm:"primaryKey"`
	CustomerName        string             `json:"customer_name" gorm:"not null"`
	CustomerPhone       string             `json:"customer_phone"`
	CustomerID          *uint              `json:"customer_id"` // set only when resolved or created
	Customer            *Customer          `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Address             string             `json:"address" gorm:"not null"`
	DeliveryDate        *time.Time         `json:"delivery_date"` // nil means "to be scheduled"
	SpecialInstructions string             `json:"special_instructions"`
	AssignedDriverID    *uint              `json:"assigned_driver"`
	Driver              *User              `json:"driver,omitempty" gorm:"foreignKey:AssignedDriverID"`
	Truck               string             `json:"truck"`
	Status              JobStatus          `json:"status" gorm:"not null;default:'scheduled'"`
	Items               []JobItem          `json:"products,omitempty" gorm:"foreignKey:JobID"`
	TotalAmount         float64            `json:"total_amount"`
	PaymentReceived     float64            `json:"payment_received"`
	Paid                bool               `json:"paid" gorm:"default:false"`
	DriverNotes         string             `json:"driver_notes"`
	ContractorDiscount  bool               `json:"contractor_discount" gorm:"default:false"`
	StatusHistory       []JobStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:JobID"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// JobItem is one product line on a job. Prices are snapshots taken at
// submission time so later catalog edits never change an existing job.
type JobItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	JobID       uint    `json:"job_id" gorm:"not null"`
	ProductName string  `json:"product_name" gorm:"not null"`
	Quantity    float64 `json:"quantity" gorm:"not null"`
	Unit        Unit    `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
	PriceType   string  `json:"price_type" gorm:"default:'retail'"` // retail or contractor
}

// JobStatusHistory tracks every status change for the audit trail
type JobStatusHistory struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	JobID      uint      `json:"job_id" gorm:"not null"`
	FromStatus JobStatus `json:"from_status"`
	ToStatus   JobStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint      `json:"changed_by"` // user ID who triggered the transition
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

// AmountDue is the outstanding balance, never negative
func (j *Job) AmountDue() float64 {
	due := j.TotalAmount - j.PaymentReceived
	if due < 0 {
		return 0
	}
	return due
}

// IsFullyPaid reports whether accumulated payments cover the total
func (j *Job) IsFullyPaid() bool {
	return j.PaymentReceived >= j.TotalAmount
}
