// file: internals/features/billing/dto/invoice_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	model "hoaportal_backend/internals/features/billing/model"
)

////////////////////////////////////////////////////////////////////////////////
// INVOICES - DTO
////////////////////////////////////////////////////////////////////////////////

type InvoiceCreateDTO struct {
	InvoiceOwnerUserID    uuid.UUID  `json:"invoice_owner_user_id" validate:"required"`
	InvoiceDate           *time.Time `json:"invoice_date,omitempty"`
	InvoiceDueDate        time.Time  `json:"invoice_due_date" validate:"required"`
	InvoiceDescription    string     `json:"invoice_description" validate:"required,max=255"`
	InvoiceAmountDueCents int64      `json:"invoice_amount_due_cents" validate:"required,min=1"`
	InvoiceType           string     `json:"invoice_type" validate:"omitempty,oneof=dues fine late_fee misc_charge"`
	InvoiceIsDraft        bool       `json:"invoice_is_draft,omitempty"`
	InvoiceBatchID        *uuid.UUID `json:"invoice_batch_id,omitempty"`
}

type InvoiceVoidDTO struct {
	Reason string `json:"reason" validate:"required,min=3,max=255"`
}

type InvoiceResponse struct {
	InvoiceID                 uuid.UUID  `json:"invoice_id"`
	InvoiceOwnerUserID        uuid.UUID  `json:"invoice_owner_user_id"`
	InvoiceDate               time.Time  `json:"invoice_date"`
	InvoiceDueDate            time.Time  `json:"invoice_due_date"`
	InvoiceDescription        string     `json:"invoice_description"`
	InvoiceAmountDueCents     int64      `json:"invoice_amount_due_cents"`
	InvoiceAmountPaidCents    int64      `json:"invoice_amount_paid_cents"`
	InvoiceStatus             string     `json:"invoice_status"`
	InvoiceType               string     `json:"invoice_type"`
	InvoiceCancellationReason *string    `json:"invoice_cancellation_reason,omitempty"`
	InvoiceBatchID            *uuid.UUID `json:"invoice_batch_id,omitempty"`
	InvoiceSourceInvoiceID    *uuid.UUID `json:"invoice_source_invoice_id,omitempty"`
	InvoiceCreatedAt          time.Time  `json:"invoice_created_at"`
	InvoiceUpdatedAt          time.Time  `json:"invoice_updated_at"`
}

////////////////////////////////////////////////////////////////////////////////
// MAPPERS
////////////////////////////////////////////////////////////////////////////////

func InvoiceCreateDTOToModel(in InvoiceCreateDTO) model.Invoice {
	invDate := time.Now()
	if in.InvoiceDate != nil {
		invDate = *in.InvoiceDate
	}
	invType := model.InvoiceType(in.InvoiceType)
	if invType == "" {
		invType = model.InvoiceTypeDues
	}
	status := model.InvoiceStatusDue
	if in.InvoiceIsDraft {
		status = model.InvoiceStatusDraft
	}
	return model.Invoice{
		InvoiceOwnerUserID:    in.InvoiceOwnerUserID,
		InvoiceDate:           invDate,
		InvoiceDueDate:        in.InvoiceDueDate,
		InvoiceDescription:    in.InvoiceDescription,
		InvoiceAmountDueCents: in.InvoiceAmountDueCents,
		InvoiceStatus:         status,
		InvoiceType:           invType,
		InvoiceBatchID:        in.InvoiceBatchID,
	}
}

func ToInvoiceResponse(m model.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:                 m.InvoiceID,
		InvoiceOwnerUserID:        m.InvoiceOwnerUserID,
		InvoiceDate:               m.InvoiceDate,
		InvoiceDueDate:            m.InvoiceDueDate,
		InvoiceDescription:        m.InvoiceDescription,
		InvoiceAmountDueCents:     m.InvoiceAmountDueCents,
		InvoiceAmountPaidCents:    m.InvoiceAmountPaidCents,
		InvoiceStatus:             string(m.InvoiceStatus),
		InvoiceType:               string(m.InvoiceType),
		InvoiceCancellationReason: m.InvoiceCancellationReason,
		InvoiceBatchID:            m.InvoiceBatchID,
		InvoiceSourceInvoiceID:    m.InvoiceSourceInvoiceID,
		InvoiceCreatedAt:          m.InvoiceCreatedAt,
		InvoiceUpdatedAt:          m.InvoiceUpdatedAt,
	}
}

func ToInvoiceResponses(list []model.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToInvoiceResponse(m))
	}
	return out
}
