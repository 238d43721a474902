// file: internals/features/billing/service/payment_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "hoaportal_backend/internals/features/billing/model"
)

type RecordPaymentInput struct {
	OwnerUserID uuid.UUID
	InvoiceID   *uuid.UUID
	Date        time.Time
	AmountCents int64
	Method      model.PaymentMethod
	Reference   *string
	Notes       *string
}

// RecordPayment books a payment against the ledger. The applied-vs-credit
// split is computed and stored on the payment row at creation time, so a
// later void never has to guess the allocation. Overpayment is minted as a
// UserCredit back-linked to the payment.
func (s *LedgerService) RecordPayment(ctx context.Context, in RecordPaymentInput) (*model.Payment, *LedgerResult, error) {
	if in.AmountCents <= 0 {
		return nil, nil, fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	if in.Method == "" {
		in.Method = model.PaymentMethodCheck
	}

	var (
		payment model.Payment
		result  *LedgerResult
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		applied := int64(0)
		creditPart := in.AmountCents

		if in.InvoiceID != nil {
			var inv model.Invoice
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&inv, "invoice_id = ?", *in.InvoiceID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return err
			}
			if inv.InvoiceStatus == model.InvoiceStatusCancelled {
				return fmt.Errorf("%w: cannot record a payment against a cancelled invoice", ErrValidation)
			}
			if inv.InvoiceOwnerUserID != in.OwnerUserID {
				return fmt.Errorf("%w: invoice does not belong to the paying member", ErrValidation)
			}

			applied = inv.OutstandingCents()
			if applied > in.AmountCents {
				applied = in.AmountCents
			}
			creditPart = in.AmountCents - applied

			inv.InvoiceAmountPaidCents += applied
			inv.InvoiceStatus = derivedStatus(&inv, now)
			if err := tx.Save(&inv).Error; err != nil {
				return err
			}
		}

		payment = model.Payment{
			PaymentOwnerUserID:  in.OwnerUserID,
			PaymentInvoiceID:    in.InvoiceID,
			PaymentDate:         in.Date,
			PaymentAmountCents:  in.AmountCents,
			PaymentMethod:       in.Method,
			PaymentReference:    in.Reference,
			PaymentNotes:        in.Notes,
			PaymentAppliedCents: applied,
			PaymentCreditCents:  creditPart,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		if creditPart > 0 {
			reason := "Unapplied payment credited to account"
			if in.InvoiceID != nil {
				reason = fmt.Sprintf("Overpayment on invoice %s", invoiceRef(*in.InvoiceID))
			}
			credit := model.UserCredit{
				UserCreditOwnerUserID:     in.OwnerUserID,
				UserCreditDate:            now,
				UserCreditAmountCents:     creditPart,
				UserCreditReason:          reason,
				UserCreditSourcePaymentID: &payment.PaymentID,
			}
			if err := tx.Create(&credit).Error; err != nil {
				return err
			}
		}

		msg := fmt.Sprintf("Payment of %s recorded", dollars(in.AmountCents))
		if applied > 0 && in.InvoiceID != nil {
			msg += fmt.Sprintf(", %s applied to invoice %s", dollars(applied), invoiceRef(*in.InvoiceID))
		}
		if creditPart > 0 {
			msg += fmt.Sprintf(", %s held as account credit", dollars(creditPart))
		}
		result = okResult(msg)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &payment, result, nil
}

// GrantCredit books a manual account credit (goodwill adjustment etc.);
// not every credit originates from an overpayment.
func (s *LedgerService) GrantCredit(ctx context.Context, ownerUserID uuid.UUID, amountCents int64, reason string) (*model.UserCredit, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: credit amount must be positive", ErrValidation)
	}
	if reason == "" {
		return nil, fmt.Errorf("%w: credit reason is required", ErrValidation)
	}
	credit := model.UserCredit{
		UserCreditOwnerUserID: ownerUserID,
		UserCreditDate:        time.Now(),
		UserCreditAmountCents: amountCents,
		UserCreditReason:      reason,
	}
	if err := s.DB.WithContext(ctx).Create(&credit).Error; err != nil {
		return nil, err
	}
	return &credit, nil
}

// AccountStatement is the read-only balance view the member portal shows.
type AccountStatement struct {
	OwnerUserID           uuid.UUID `json:"owner_user_id"`
	OpenInvoiceCount      int64     `json:"open_invoice_count"`
	OutstandingCents      int64     `json:"outstanding_cents"`
	AvailableCreditCents  int64     `json:"available_credit_cents"`
	PaymentsYearToDate    int64     `json:"payments_year_to_date_cents"`
}

// Statement re-queries current state; there is no caching layer, so
// staleness is bounded by this request's own transaction snapshot.
func (s *LedgerService) Statement(ctx context.Context, ownerUserID uuid.UUID) (*AccountStatement, error) {
	st := &AccountStatement{OwnerUserID: ownerUserID}
	db := s.DB.WithContext(ctx)

	type sums struct {
		Count       int64
		Outstanding int64
	}
	var invSums sums
	if err := db.Model(&model.Invoice{}).
		Select("COUNT(*) AS count, COALESCE(SUM(invoice_amount_due_cents - invoice_amount_paid_cents), 0) AS outstanding").
		Where("invoice_owner_user_id = ?", ownerUserID).
		Where("invoice_status IN ?", []model.InvoiceStatus{model.InvoiceStatusDue, model.InvoiceStatusOverdue}).
		Where("invoice_amount_paid_cents < invoice_amount_due_cents").
		Scan(&invSums).Error; err != nil {
		return nil, err
	}
	st.OpenInvoiceCount = invSums.Count
	st.OutstandingCents = invSums.Outstanding

	if err := db.Model(&model.UserCredit{}).
		Select("COALESCE(SUM(user_credit_amount_cents), 0)").
		Where("user_credit_owner_user_id = ?", ownerUserID).
		Where("user_credit_is_voided = ? AND user_credit_is_applied = ?", false, false).
		Scan(&st.AvailableCreditCents).Error; err != nil {
		return nil, err
	}

	yearStart := time.Date(time.Now().Year(), 1, 1, 0, 0, 0, 0, time.Local)
	if err := db.Model(&model.Payment{}).
		Select("COALESCE(SUM(payment_amount_cents), 0)").
		Where("payment_owner_user_id = ? AND payment_is_voided = ?", ownerUserID, false).
		Where("payment_date >= ?", yearStart).
		Scan(&st.PaymentsYearToDate).Error; err != nil {
		return nil, err
	}
	return st, nil
}
