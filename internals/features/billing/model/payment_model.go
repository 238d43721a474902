// file: internals/features/billing/model/payment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// =========================================================
// ENUM - payment method
// =========================================================

type PaymentMethod string

const (
	PaymentMethodCheck    PaymentMethod = "check"
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodACH      PaymentMethod = "ach"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodGateway  PaymentMethod = "gateway"
	PaymentMethodOther    PaymentMethod = "other"
)

// =========================================================
// MODEL
// =========================================================

type Payment struct {
	// PK
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`

	// FK → users(user_id)
	PaymentOwnerUserID uuid.UUID `gorm:"column:payment_owner_user_id;type:uuid;not null;index:ix_payment_owner" json:"payment_owner_user_id"`

	// FK → invoices(invoice_id), optional: a payment may be recorded
	// against the account without a specific invoice.
	PaymentInvoiceID *uuid.UUID `gorm:"column:payment_invoice_id;type:uuid;index" json:"payment_invoice_id,omitempty"`

	PaymentDate        time.Time     `gorm:"column:payment_date;not null" json:"payment_date"`
	PaymentAmountCents int64         `gorm:"column:payment_amount_cents;not null;check:payment_amount_cents>0" json:"payment_amount_cents"`
	PaymentMethod      PaymentMethod `gorm:"column:payment_method;type:varchar(20);not null;default:'check'" json:"payment_method"`
	PaymentReference   *string       `gorm:"column:payment_reference;type:varchar(100)" json:"payment_reference,omitempty"`
	PaymentNotes       *string       `gorm:"column:payment_notes" json:"payment_notes,omitempty"`

	// Exact allocation recorded at creation time: how much of the payment
	// reduced the linked invoice vs how much became account credit. Voiding
	// uses these instead of guessing from current balances; rows imported
	// from the legacy system have both at zero and fall back to the old
	// min(amount_paid, amount) heuristic.
	PaymentAppliedCents int64 `gorm:"column:payment_applied_cents;not null;default:0;check:payment_applied_cents>=0" json:"payment_applied_cents"`
	PaymentCreditCents  int64 `gorm:"column:payment_credit_cents;not null;default:0;check:payment_credit_cents>=0" json:"payment_credit_cents"`

	// Void state
	PaymentIsVoided   bool       `gorm:"column:payment_is_voided;not null;default:false;index:ix_payment_is_voided" json:"payment_is_voided"`
	PaymentVoidedAt   *time.Time `gorm:"column:payment_voided_at" json:"payment_voided_at,omitempty"`
	PaymentVoidReason *string    `gorm:"column:payment_void_reason" json:"payment_void_reason,omitempty"`

	// Timestamps
	PaymentCreatedAt time.Time      `gorm:"column:payment_created_at;not null;index:ix_payment_created_at" json:"payment_created_at"`
	PaymentUpdatedAt time.Time      `gorm:"column:payment_updated_at;not null" json:"payment_updated_at"`
	PaymentDeletedAt gorm.DeletedAt `gorm:"column:payment_deleted_at;index" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}

func (m *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if m.PaymentID == uuid.Nil {
		m.PaymentID = uuid.New()
	}
	now := time.Now()
	if m.PaymentCreatedAt.IsZero() {
		m.PaymentCreatedAt = now
	}
	m.PaymentUpdatedAt = now
	return nil
}

func (m *Payment) BeforeUpdate(tx *gorm.DB) (err error) {
	m.PaymentUpdatedAt = time.Now()
	return nil
}

// HasExactSplit reports whether this payment carries the recorded
// applied/credit allocation (newer rows always do).
func (m *Payment) HasExactSplit() bool {
	return m.PaymentAppliedCents > 0 || m.PaymentCreditCents > 0
}
