// file: internals/features/billing/model/invoice_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUMS - invoice status & type
// =========================================================

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusDue       InvoiceStatus = "due"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

type InvoiceType string

const (
	InvoiceTypeDues       InvoiceType = "dues"
	InvoiceTypeFine       InvoiceType = "fine"
	InvoiceTypeLateFee    InvoiceType = "late_fee"
	InvoiceTypeMiscCharge InvoiceType = "misc_charge"
)

// =========================================================
// MODEL
// =========================================================

type Invoice struct {
	// PK
	InvoiceID uuid.UUID `gorm:"column:invoice_id;type:uuid;primaryKey" json:"invoice_id"`

	// FK → users(user_id)
	InvoiceOwnerUserID uuid.UUID `gorm:"column:invoice_owner_user_id;type:uuid;not null;index:ix_invoice_owner" json:"invoice_owner_user_id"`

	InvoiceDate    time.Time `gorm:"column:invoice_date;not null" json:"invoice_date"`
	InvoiceDueDate time.Time `gorm:"column:invoice_due_date;not null;index:ix_invoice_due_date" json:"invoice_due_date"`

	InvoiceDescription string `gorm:"column:invoice_description;type:varchar(255);not null" json:"invoice_description"`

	// Amounts (cents)
	InvoiceAmountDueCents  int64 `gorm:"column:invoice_amount_due_cents;not null;check:invoice_amount_due_cents>=0" json:"invoice_amount_due_cents"`
	InvoiceAmountPaidCents int64 `gorm:"column:invoice_amount_paid_cents;not null;default:0;check:invoice_amount_paid_cents>=0" json:"invoice_amount_paid_cents"`

	// Status & type. Cancelled is sticky: once set it is never recomputed away.
	InvoiceStatus InvoiceStatus `gorm:"column:invoice_status;type:varchar(20);not null;default:'due';index:ix_invoice_status" json:"invoice_status"`
	InvoiceType   InvoiceType   `gorm:"column:invoice_type;type:varchar(20);not null;default:'dues'" json:"invoice_type"`

	InvoiceCancellationReason *string    `gorm:"column:invoice_cancellation_reason" json:"invoice_cancellation_reason,omitempty"`
	InvoiceBatchID            *uuid.UUID `gorm:"column:invoice_batch_id;type:uuid;index" json:"invoice_batch_id,omitempty"`

	// FK → invoices(invoice_id). Set on late-fee invoices to the overdue
	// invoice that triggered them; replaces the old description-substring
	// duplicate check.
	InvoiceSourceInvoiceID *uuid.UUID `gorm:"column:invoice_source_invoice_id;type:uuid;index" json:"invoice_source_invoice_id,omitempty"`

	// Timestamps
	InvoiceCreatedAt time.Time      `gorm:"column:invoice_created_at;not null;index:ix_invoice_created_at" json:"invoice_created_at"`
	InvoiceUpdatedAt time.Time      `gorm:"column:invoice_updated_at;not null" json:"invoice_updated_at"`
	InvoiceDeletedAt gorm.DeletedAt `gorm:"column:invoice_deleted_at;index" json:"-"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// =========================================================
// HOOKS - ids & timestamps
// =========================================================

func (m *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if m.InvoiceID == uuid.Nil {
		m.InvoiceID = uuid.New()
	}
	now := time.Now()
	if m.InvoiceCreatedAt.IsZero() {
		m.InvoiceCreatedAt = now
	}
	m.InvoiceUpdatedAt = now
	return nil
}

func (m *Invoice) BeforeUpdate(tx *gorm.DB) (err error) {
	m.InvoiceUpdatedAt = time.Now()
	return nil
}

// IsOpen reports whether the invoice still carries an unpaid balance
// and has not been cancelled.
func (m *Invoice) IsOpen() bool {
	return m.InvoiceStatus != InvoiceStatusCancelled &&
		m.InvoiceStatus != InvoiceStatusDraft &&
		m.InvoiceAmountPaidCents < m.InvoiceAmountDueCents
}

// OutstandingCents is the remaining balance, never negative.
func (m *Invoice) OutstandingCents() int64 {
	out := m.InvoiceAmountDueCents - m.InvoiceAmountPaidCents
	if out < 0 {
		return 0
	}
	return out
}
