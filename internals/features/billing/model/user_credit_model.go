// file: internals/features/billing/model/user_credit_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserCredit is available account credit. user_credit_amount_cents is the
// REMAINING balance; the original grant is kept separately so reversals can
// restore partial consumption without losing history.
type UserCredit struct {
	// PK
	UserCreditID uuid.UUID `gorm:"column:user_credit_id;type:uuid;primaryKey" json:"user_credit_id"`

	// FK → users(user_id)
	UserCreditOwnerUserID uuid.UUID `gorm:"column:user_credit_owner_user_id;type:uuid;not null;index:ix_user_credit_owner" json:"user_credit_owner_user_id"`

	UserCreditDate time.Time `gorm:"column:user_credit_date;not null;index:ix_user_credit_date" json:"user_credit_date"`

	// Amounts (cents)
	UserCreditAmountCents         int64 `gorm:"column:user_credit_amount_cents;not null;check:user_credit_amount_cents>=0" json:"user_credit_amount_cents"`
	UserCreditOriginalAmountCents int64 `gorm:"column:user_credit_original_amount_cents;not null;check:user_credit_original_amount_cents>=0" json:"user_credit_original_amount_cents"`

	UserCreditReason string `gorm:"column:user_credit_reason;type:varchar(255);not null" json:"user_credit_reason"`

	// Application state. is_applied means fully consumed (or voided);
	// partially consumed credits stay available with a reduced amount.
	UserCreditIsApplied        bool       `gorm:"column:user_credit_is_applied;not null;default:false;index:ix_user_credit_is_applied" json:"user_credit_is_applied"`
	UserCreditAppliedAt        *time.Time `gorm:"column:user_credit_applied_at" json:"user_credit_applied_at,omitempty"`
	UserCreditAppliedInvoiceID *uuid.UUID `gorm:"column:user_credit_applied_invoice_id;type:uuid" json:"user_credit_applied_invoice_id,omitempty"`

	// Append-only audit trail of applications/reversals. Never overwritten.
	UserCreditApplicationNotes string `gorm:"column:user_credit_application_notes;not null;default:''" json:"user_credit_application_notes"`

	UserCreditIsVoided bool `gorm:"column:user_credit_is_voided;not null;default:false" json:"user_credit_is_voided"`

	// FK → payments(payment_id). Set when the credit was minted from an
	// overpayment; voiding that payment cascades through here.
	UserCreditSourcePaymentID *uuid.UUID `gorm:"column:user_credit_source_payment_id;type:uuid;index:ix_user_credit_source_payment" json:"user_credit_source_payment_id,omitempty"`

	// Timestamps
	UserCreditCreatedAt time.Time      `gorm:"column:user_credit_created_at;not null" json:"user_credit_created_at"`
	UserCreditUpdatedAt time.Time      `gorm:"column:user_credit_updated_at;not null" json:"user_credit_updated_at"`
	UserCreditDeletedAt gorm.DeletedAt `gorm:"column:user_credit_deleted_at;index" json:"-"`
}

func (UserCredit) TableName() string {
	return "user_credits"
}

func (m *UserCredit) BeforeCreate(tx *gorm.DB) (err error) {
	if m.UserCreditID == uuid.Nil {
		m.UserCreditID = uuid.New()
	}
	if m.UserCreditOriginalAmountCents == 0 {
		m.UserCreditOriginalAmountCents = m.UserCreditAmountCents
	}
	now := time.Now()
	if m.UserCreditCreatedAt.IsZero() {
		m.UserCreditCreatedAt = now
	}
	if m.UserCreditDate.IsZero() {
		m.UserCreditDate = now
	}
	m.UserCreditUpdatedAt = now
	return nil
}

func (m *UserCredit) BeforeUpdate(tx *gorm.DB) (err error) {
	m.UserCreditUpdatedAt = time.Now()
	return nil
}

// IsAvailable reports whether the credit can still be consumed.
func (m *UserCredit) IsAvailable() bool {
	return !m.UserCreditIsVoided && !m.UserCreditIsApplied && m.UserCreditAmountCents > 0
}

// AppendApplicationNote adds one line to the append-only note trail.
func (m *UserCredit) AppendApplicationNote(note string) {
	if note == "" {
		return
	}
	if m.UserCreditApplicationNotes != "" {
		m.UserCreditApplicationNotes += "\n"
	}
	m.UserCreditApplicationNotes += note
}
