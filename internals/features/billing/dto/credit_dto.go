// file: internals/features/billing/dto/credit_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "hoaportal_backend/internals/features/billing/model"
)

////////////////////////////////////////////////////////////////////////////////
// USER CREDITS - DTO
////////////////////////////////////////////////////////////////////////////////

type CreditGrantDTO struct {
	UserCreditOwnerUserID uuid.UUID `json:"user_credit_owner_user_id" validate:"required"`
	UserCreditAmountCents int64     `json:"user_credit_amount_cents" validate:"required,min=1"`
	UserCreditReason      string    `json:"user_credit_reason" validate:"required,max=255"`
}

type UserCreditResponse struct {
	UserCreditID                  uuid.UUID  `json:"user_credit_id"`
	UserCreditOwnerUserID         uuid.UUID  `json:"user_credit_owner_user_id"`
	UserCreditDate                time.Time  `json:"user_credit_date"`
	UserCreditAmountCents         int64      `json:"user_credit_amount_cents"`
	UserCreditOriginalAmountCents int64      `json:"user_credit_original_amount_cents"`
	UserCreditReason              string     `json:"user_credit_reason"`
	UserCreditIsApplied           bool       `json:"user_credit_is_applied"`
	UserCreditAppliedAt           *time.Time `json:"user_credit_applied_at,omitempty"`
	UserCreditAppliedInvoiceID    *uuid.UUID `json:"user_credit_applied_invoice_id,omitempty"`
	UserCreditApplicationNotes    string     `json:"user_credit_application_notes"`
	UserCreditIsVoided            bool       `json:"user_credit_is_voided"`
	UserCreditSourcePaymentID     *uuid.UUID `json:"user_credit_source_payment_id,omitempty"`
}

func ToUserCreditResponse(m model.UserCredit) UserCreditResponse {
	return UserCreditResponse{
		UserCreditID:                  m.UserCreditID,
		UserCreditOwnerUserID:         m.UserCreditOwnerUserID,
		UserCreditDate:                m.UserCreditDate,
		UserCreditAmountCents:         m.UserCreditAmountCents,
		UserCreditOriginalAmountCents: m.UserCreditOriginalAmountCents,
		UserCreditReason:              m.UserCreditReason,
		UserCreditIsApplied:           m.UserCreditIsApplied,
		UserCreditAppliedAt:           m.UserCreditAppliedAt,
		UserCreditAppliedInvoiceID:    m.UserCreditAppliedInvoiceID,
		UserCreditApplicationNotes:    m.UserCreditApplicationNotes,
		UserCreditIsVoided:            m.UserCreditIsVoided,
		UserCreditSourcePaymentID:     m.UserCreditSourcePaymentID,
	}
}

func ToUserCreditResponses(list []model.UserCredit) []UserCreditResponse {
	out := make([]UserCreditResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToUserCreditResponse(m))
	}
	return out
}

////////////////////////////////////////////////////////////////////////////////
// CREDIT APPLICATIONS - DTO (read-only audit view)
////////////////////////////////////////////////////////////////////////////////

type CreditApplicationResponse struct {
	CreditApplicationID           uuid.UUID  `json:"credit_application_id"`
	CreditApplicationUserCreditID uuid.UUID  `json:"credit_application_user_credit_id"`
	CreditApplicationInvoiceID    uuid.UUID  `json:"credit_application_invoice_id"`
	CreditApplicationAmountCents  int64      `json:"credit_application_amount_cents"`
	CreditApplicationDate         time.Time  `json:"credit_application_date"`
	CreditApplicationIsReversed   bool       `json:"credit_application_is_reversed"`
	CreditApplicationReversedAt   *time.Time `json:"credit_application_reversed_at,omitempty"`
	CreditApplicationNotes        string     `json:"credit_application_notes"`
}

func ToCreditApplicationResponse(m model.CreditApplication) CreditApplicationResponse {
	return CreditApplicationResponse{
		CreditApplicationID:           m.CreditApplicationID,
		CreditApplicationUserCreditID: m.CreditApplicationUserCreditID,
		CreditApplicationInvoiceID:    m.CreditApplicationInvoiceID,
		CreditApplicationAmountCents:  m.CreditApplicationAmountCents,
		CreditApplicationDate:         m.CreditApplicationDate,
		CreditApplicationIsReversed:   m.CreditApplicationIsReversed,
		CreditApplicationReversedAt:   m.CreditApplicationReversedAt,
		CreditApplicationNotes:        m.CreditApplicationNotes,
	}
}

func ToCreditApplicationResponses(list []model.CreditApplication) []CreditApplicationResponse {
	out := make([]CreditApplicationResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToCreditApplicationResponse(m))
	}
	return out
}
