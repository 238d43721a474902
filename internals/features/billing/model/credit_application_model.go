// file: internals/features/billing/model/credit_application_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreditApplication records that a specific credit was (partially) consumed
// against a specific invoice. Rows are never deleted: undoing a consumption
// sets is_reversed and appends an audit note.
type CreditApplication struct {
	// PK
	CreditApplicationID uuid.UUID `gorm:"column:credit_application_id;type:uuid;primaryKey" json:"credit_application_id"`

	// FK → user_credits(user_credit_id)
	CreditApplicationUserCreditID uuid.UUID `gorm:"column:credit_application_user_credit_id;type:uuid;not null;index:ix_credit_application_credit" json:"credit_application_user_credit_id"`

	// FK → invoices(invoice_id)
	CreditApplicationInvoiceID uuid.UUID `gorm:"column:credit_application_invoice_id;type:uuid;not null;index:ix_credit_application_invoice" json:"credit_application_invoice_id"`

	CreditApplicationAmountCents int64     `gorm:"column:credit_application_amount_cents;not null;check:credit_application_amount_cents>0" json:"credit_application_amount_cents"`
	CreditApplicationDate        time.Time `gorm:"column:credit_application_date;not null" json:"credit_application_date"`

	// Reversal state
	CreditApplicationIsReversed bool       `gorm:"column:credit_application_is_reversed;not null;default:false;index:ix_credit_application_is_reversed" json:"credit_application_is_reversed"`
	CreditApplicationReversedAt *time.Time `gorm:"column:credit_application_reversed_at" json:"credit_application_reversed_at,omitempty"`

	// Append-only audit trail. Never overwritten.
	CreditApplicationNotes string `gorm:"column:credit_application_notes;not null;default:''" json:"credit_application_notes"`

	// Timestamps
	CreditApplicationCreatedAt time.Time `gorm:"column:credit_application_created_at;not null" json:"credit_application_created_at"`
	CreditApplicationUpdatedAt time.Time `gorm:"column:credit_application_updated_at;not null" json:"credit_application_updated_at"`
}

func (CreditApplication) TableName() string {
	return "credit_applications"
}

func (m *CreditApplication) BeforeCreate(tx *gorm.DB) (err error) {
	if m.CreditApplicationID == uuid.Nil {
		m.CreditApplicationID = uuid.New()
	}
	now := time.Now()
	if m.CreditApplicationCreatedAt.IsZero() {
		m.CreditApplicationCreatedAt = now
	}
	if m.CreditApplicationDate.IsZero() {
		m.CreditApplicationDate = now
	}
	m.CreditApplicationUpdatedAt = now
	return nil
}

func (m *CreditApplication) BeforeUpdate(tx *gorm.DB) (err error) {
	m.CreditApplicationUpdatedAt = time.Now()
	return nil
}

// AppendNote adds one line to the append-only note trail.
func (m *CreditApplication) AppendNote(note string) {
	if note == "" {
		return
	}
	if m.CreditApplicationNotes != "" {
		m.CreditApplicationNotes += "\n"
	}
	m.CreditApplicationNotes += note
}
