// file: internals/features/billing/service/late_fee_service.go
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
	userModel "hoaportal_backend/internals/features/users/model"
)

// Late fee sizing: 5% of the overdue balance owed, floored at $25.00.
const (
	lateFeeMinCents = 2500
	lateFeePercent  = 5
	lateFeeTermDays = 30
)

func lateFeeAmount(overdueDueCents int64) int64 {
	fee := overdueDueCents * lateFeePercent / 100
	if fee < lateFeeMinCents {
		fee = lateFeeMinCents
	}
	return fee
}

// ApplyLateFee finds the target member's most overdue unpaid invoice,
// guards against a duplicate fee, creates the late-fee invoice, then
// greedily pays it down with the member's oldest available credits.
// Role gating (admin/manager) happens at the route; this checks the
// billing-contact flag and everything ledger-side.
func (s *LedgerService) ApplyLateFee(ctx context.Context, targetUserID uuid.UUID) (*LedgerResult, error) {
	var result *LedgerResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target userModel.User
		if err := tx.First(&target, "user_id = ?", targetUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !target.UserIsBillingContact {
			return ErrNotBillingContact
		}

		now := time.Now()

		// Most overdue first: earliest due date among open, past-due,
		// non-late-fee invoices.
		var overdue model.Invoice
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("invoice_owner_user_id = ?", targetUserID).
			Where("invoice_status IN ?", []model.InvoiceStatus{model.InvoiceStatusDue, model.InvoiceStatusOverdue}).
			Where("invoice_type <> ?", model.InvoiceTypeLateFee).
			Where("invoice_amount_paid_cents < invoice_amount_due_cents").
			Where("invoice_due_date < ?", now).
			Order("invoice_due_date ASC").
			First(&overdue).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoOverdueInvoice
			}
			return err
		}

		// Normalized duplicate check via the source-invoice FK (the old
		// system matched on formatted ids inside the description).
		var dupCount int64
		if err := tx.Model(&model.Invoice{}).
			Where("invoice_type = ? AND invoice_source_invoice_id = ? AND invoice_status <> ?",
				model.InvoiceTypeLateFee, overdue.InvoiceID, model.InvoiceStatusCancelled).
			Count(&dupCount).Error; err != nil {
			return err
		}
		if dupCount > 0 {
			return ErrDuplicateLateFee
		}

		fee := model.Invoice{
			InvoiceOwnerUserID:     targetUserID,
			InvoiceDate:            now,
			InvoiceDueDate:         now.AddDate(0, 0, lateFeeTermDays),
			InvoiceDescription:     fmt.Sprintf("Late fee for overdue invoice %s", invoiceRef(overdue.InvoiceID)),
			InvoiceAmountDueCents:  lateFeeAmount(overdue.InvoiceAmountDueCents),
			InvoiceStatus:          model.InvoiceStatusDue,
			InvoiceType:            model.InvoiceTypeLateFee,
			InvoiceSourceInvoiceID: &overdue.InvoiceID,
		}
		if err := tx.Create(&fee).Error; err != nil {
			return err
		}

		applied, usedCredits, err := s.applyAvailableCredits(tx, targetUserID, &fee, now)
		if err != nil {
			return err
		}

		msg := fmt.Sprintf("Late fee %s of %s created for overdue invoice %s",
			invoiceRef(fee.InvoiceID), dollars(fee.InvoiceAmountDueCents), invoiceRef(overdue.InvoiceID))
		if applied > 0 {
			msg += fmt.Sprintf("; %s covered from %d account credit(s)", dollars(applied), usedCredits)
			if fee.InvoiceStatus == model.InvoiceStatusPaid {
				msg += " (paid in full)"
			}
		}
		result = okResult(msg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyAvailableCredits greedily consumes the owner's available credits,
// oldest credit_date first, until the invoice is covered or credits run
// out. Writes one CreditApplication per consumption plus audit notes, and
// marks the invoice paid when fully covered. Caller supplies the
// transaction; this never commits.
func (s *LedgerService) applyAvailableCredits(tx *gorm.DB, ownerUserID uuid.UUID, inv *model.Invoice, now time.Time) (int64, int, error) {
	outstanding := inv.OutstandingCents()
	if outstanding <= 0 {
		return 0, 0, nil
	}

	var credits []model.UserCredit
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_credit_owner_user_id = ?", ownerUserID).
		Where("user_credit_is_voided = ? AND user_credit_is_applied = ?", false, false).
		Where("user_credit_amount_cents > 0").
		Order("user_credit_date ASC").
		Find(&credits).Error; err != nil {
		return 0, 0, err
	}

	var totalApplied int64
	used := 0
	for i := range credits {
		if outstanding <= 0 {
			break
		}
		credit := &credits[i]

		take := credit.UserCreditAmountCents
		if take > outstanding {
			take = outstanding
		}

		app := model.CreditApplication{
			CreditApplicationUserCreditID: credit.UserCreditID,
			CreditApplicationInvoiceID:    inv.InvoiceID,
			CreditApplicationAmountCents:  take,
			CreditApplicationDate:         now,
		}
		app.AppendNote(fmt.Sprintf("Applied %s to invoice %s", dollars(take), invoiceRef(inv.InvoiceID)))
		if err := tx.Create(&app).Error; err != nil {
			return 0, 0, err
		}

		credit.UserCreditAmountCents -= take
		if credit.UserCreditAmountCents == 0 {
			credit.UserCreditIsApplied = true
			credit.UserCreditAppliedAt = &now
			credit.UserCreditAppliedInvoiceID = &inv.InvoiceID
		}
		credit.AppendApplicationNote(fmt.Sprintf("Applied %s to invoice %s", dollars(take), invoiceRef(inv.InvoiceID)))
		if err := tx.Save(credit).Error; err != nil {
			return 0, 0, err
		}

		inv.InvoiceAmountPaidCents += take
		outstanding -= take
		totalApplied += take
		used++
	}

	if totalApplied > 0 {
		if inv.InvoiceAmountPaidCents >= inv.InvoiceAmountDueCents {
			inv.InvoiceStatus = model.InvoiceStatusPaid
		}
		if err := tx.Save(inv).Error; err != nil {
			return 0, 0, err
		}
	}
	return totalApplied, used, nil
}

// ApplyCreditsToInvoice is the admin-facing wrapper around the greedy
// credit matcher for an arbitrary open invoice.
func (s *LedgerService) ApplyCreditsToInvoice(ctx context.Context, invoiceID uuid.UUID) (*LedgerResult, error) {
	var result *LedgerResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inv model.Invoice
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&inv, "invoice_id = ?", invoiceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if inv.InvoiceStatus == model.InvoiceStatusCancelled {
			return ErrAlreadyTerminal
		}
		if !inv.IsOpen() {
			result = warnResult(fmt.Sprintf("Invoice %s has no outstanding balance", invoiceRef(inv.InvoiceID)))
			return nil
		}

		applied, used, err := s.applyAvailableCredits(tx, inv.InvoiceOwnerUserID, &inv, time.Now())
		if err != nil {
			return err
		}
		if applied == 0 {
			result = warnResult("No available credits on the account")
			return nil
		}
		result = okResult(fmt.Sprintf("Applied %s from %d credit(s) to invoice %s",
			dollars(applied), used, invoiceRef(inv.InvoiceID)))
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyTerminal) {
			return warnResult("Invoice is cancelled; credits cannot be applied"), nil
		}
		return nil, err
	}
	return result, nil
}
