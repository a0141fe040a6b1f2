// internal/model/job.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JobType represents the kind of print job
type JobType string

const (
	JobTypeText    JobType = "text"
	JobTypeReceipt JobType = "receipt"
	JobTypeBarcode JobType = "barcode"
	JobTypeImage   JobType = "image"
	JobTypeFeed    JobType = "feed"
	JobTypeReset   JobType = "reset"
)

// JobStatus represents the lifecycle state of a print job
type JobStatus string

const (
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// PrintJob represents one unit of work sent to the printer
type PrintJob struct {
	ID          uuid.UUID `json:"id"`
	Type        JobType   `json:"type"`
	Status      JobStatus `json:"status"`
	Error       string    `json:"error,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

// NewPrintJob creates a running job of the given type
func NewPrintJob(jobType JobType) *PrintJob {
	return &PrintJob{
		ID:        uuid.New(),
		Type:      jobType,
		Status:    JobStatusRunning,
		StartedAt: time.Now(),
	}
}

// Complete marks the job finished, recording the error when there is one
func (j *PrintJob) Complete(err error) {
	j.CompletedAt = time.Now()
	if err != nil {
		j.Status = JobStatusFailed
		j.Error = err.Error()
		return
	}
	j.Status = JobStatusCompleted
}

// ReceiptItem represents one line item on a receipt
type ReceiptItem struct {
	Name     string          `json:"name" binding:"required"`
	Quantity int             `json:"quantity" binding:"required,min=1"`
	Price    decimal.Decimal `json:"price" binding:"required"`
}

// Total returns quantity times unit price
func (ri ReceiptItem) Total() decimal.Decimal {
	return ri.Price.Mul(decimal.NewFromInt(int64(ri.Quantity)))
}

// Receipt represents a structured receipt document
type Receipt struct {
	Header   string          `json:"header"`
	Items    []ReceiptItem   `json:"items" binding:"required,min=1,dive"`
	Currency string          `json:"currency"`
	Footer   string          `json:"footer"`
	Issued   time.Time       `json:"issued,omitempty"`
	Discount decimal.Decimal `json:"discount,omitempty"`
}

// Subtotal returns the sum of all line item totals
func (r Receipt) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range r.Items {
		sum = sum.Add(item.Total())
	}
	return sum
}

// Total returns the subtotal minus the discount, never below zero
func (r Receipt) Total() decimal.Decimal {
	total := r.Subtotal().Sub(r.Discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// PrinterStatus is the service's view of the device session
type PrinterStatus struct {
	Usable        bool      `json:"usable"`
	LastError     string    `json:"last_error,omitempty"`
	Column        int       `json:"column"`
	MaxColumn     int       `json:"max_column"`
	JobsCompleted int64     `json:"jobs_completed"`
	JobsFailed    int64     `json:"jobs_failed"`
	LastJobAt     time.Time `json:"last_job_at,omitempty"`
}
