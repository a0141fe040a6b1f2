// internal/model/job_test.go
package model

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintJobLifecycle(t *testing.T) {
	job := NewPrintJob(JobTypeText)
	assert.Equal(t, JobStatusRunning, job.Status)
	assert.NotEqual(t, "", job.ID.String())

	job.Complete(nil)
	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.Empty(t, job.Error)
	assert.False(t, job.CompletedAt.IsZero())

	failed := NewPrintJob(JobTypeBarcode)
	failed.Complete(errors.New("boom"))
	assert.Equal(t, JobStatusFailed, failed.Status)
	assert.Equal(t, "boom", failed.Error)
}

func TestReceiptTotals(t *testing.T) {
	receipt := Receipt{
		Items: []ReceiptItem{
			{Name: "Coffee", Quantity: 3, Price: decimal.RequireFromString("2.10")},
			{Name: "Cake", Quantity: 1, Price: decimal.RequireFromString("4.25")},
		},
		Discount: decimal.RequireFromString("0.55"),
	}

	require.True(t, receipt.Subtotal().Equal(decimal.RequireFromString("10.55")))
	assert.True(t, receipt.Total().Equal(decimal.RequireFromString("10.00")))
}

func TestReceiptTotalNeverNegative(t *testing.T) {
	receipt := Receipt{
		Items: []ReceiptItem{
			{Name: "Sticker", Quantity: 1, Price: decimal.RequireFromString("0.50")},
		},
		Discount: decimal.RequireFromString("2.00"),
	}

	assert.True(t, receipt.Total().Equal(decimal.Zero))
}
