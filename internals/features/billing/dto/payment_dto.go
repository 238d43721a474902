// file: internals/features/billing/dto/payment_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "hoaportal_backend/internals/features/billing/model"
)

////////////////////////////////////////////////////////////////////////////////
// PAYMENTS - DTO
////////////////////////////////////////////////////////////////////////////////

type PaymentRecordDTO struct {
	PaymentOwnerUserID uuid.UUID  `json:"payment_owner_user_id" validate:"required"`
	PaymentInvoiceID   *uuid.UUID `json:"payment_invoice_id,omitempty"`
	PaymentDate        *time.Time `json:"payment_date,omitempty"`
	PaymentAmountCents int64      `json:"payment_amount_cents" validate:"required,min=1"`
	PaymentMethod      string     `json:"payment_method" validate:"omitempty,oneof=check cash ach card gateway other"`
	PaymentReference   *string    `json:"payment_reference,omitempty" validate:"omitempty,max=100"`
	PaymentNotes       *string    `json:"payment_notes,omitempty"`
}

type PaymentVoidDTO struct {
	Reason string `json:"reason" validate:"required,min=3,max=255"`
}

type PaymentResponse struct {
	PaymentID           uuid.UUID  `json:"payment_id"`
	PaymentOwnerUserID  uuid.UUID  `json:"payment_owner_user_id"`
	PaymentInvoiceID    *uuid.UUID `json:"payment_invoice_id,omitempty"`
	PaymentDate         time.Time  `json:"payment_date"`
	PaymentAmountCents  int64      `json:"payment_amount_cents"`
	PaymentMethod       string     `json:"payment_method"`
	PaymentReference    *string    `json:"payment_reference,omitempty"`
	PaymentNotes        *string    `json:"payment_notes,omitempty"`
	PaymentAppliedCents int64      `json:"payment_applied_cents"`
	PaymentCreditCents  int64      `json:"payment_credit_cents"`
	PaymentIsVoided     bool       `json:"payment_is_voided"`
	PaymentVoidedAt     *time.Time `json:"payment_voided_at,omitempty"`
	PaymentVoidReason   *string    `json:"payment_void_reason,omitempty"`
	PaymentCreatedAt    time.Time  `json:"payment_created_at"`
}

func ToPaymentResponse(m model.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:           m.PaymentID,
		PaymentOwnerUserID:  m.PaymentOwnerUserID,
		PaymentInvoiceID:    m.PaymentInvoiceID,
		PaymentDate:         m.PaymentDate,
		PaymentAmountCents:  m.PaymentAmountCents,
		PaymentMethod:       string(m.PaymentMethod),
		PaymentReference:    m.PaymentReference,
		PaymentNotes:        m.PaymentNotes,
		PaymentAppliedCents: m.PaymentAppliedCents,
		PaymentCreditCents:  m.PaymentCreditCents,
		PaymentIsVoided:     m.PaymentIsVoided,
		PaymentVoidedAt:     m.PaymentVoidedAt,
		PaymentVoidReason:   m.PaymentVoidReason,
		PaymentCreatedAt:    m.PaymentCreatedAt,
	}
}

func ToPaymentResponses(list []model.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToPaymentResponse(m))
	}
	return out
}
