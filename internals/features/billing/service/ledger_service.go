// file: internals/features/billing/service/ledger_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "hoaportal_backend/internals/features/billing/model"
)

// LedgerService owns every mutation of the billing ledger (invoices,
// payments, credits, credit applications). Each operation runs as one
// transaction: all row mutations commit together or none do.
type LedgerService struct {
	DB *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db}
}

// invoiceRef is the short human-readable reference used in audit notes,
// descriptions, and emails.
func invoiceRef(id uuid.UUID) string {
	return "INV-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

func dollars(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

// =========================================================
// VOID INVOICE
// =========================================================

// VoidInvoice cancels a non-cancelled invoice and unwinds every credit
// consumption that paid it. Money that came in as direct payment is minted
// back as a fresh UserCredit so it is never stranded.
func (s *LedgerService) VoidInvoice(ctx context.Context, invoiceID uuid.UUID, reason string) (*LedgerResult, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: cancellation reason is required", ErrValidation)
	}

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

		now := time.Now()
		originalPaid := inv.InvoiceAmountPaidCents

		// Unwind every live credit application against this invoice,
		// restoring the consumed amount onto the parent credit.
		totalReversed, reversedCount, err := s.reverseApplicationsForInvoice(tx, &inv, now,
			fmt.Sprintf("Reversed: invoice %s cancelled (%s)", invoiceRef(inv.InvoiceID), reason),
			true)
		if err != nil {
			return err
		}

		inv.InvoiceStatus = model.InvoiceStatusCancelled
		inv.InvoiceCancellationReason = &reason
		inv.InvoiceAmountPaidCents -= totalReversed
		if inv.InvoiceAmountPaidCents < 0 {
			inv.InvoiceAmountPaidCents = 0
		}
		if err := tx.Save(&inv).Error; err != nil {
			return err
		}

		// Whatever was paid by real money (not credit consumption) comes
		// back to the member as account credit.
		netDirect := originalPaid - totalReversed
		creditNote := ""
		if netDirect > 0 {
			refund := model.UserCredit{
				UserCreditOwnerUserID: inv.InvoiceOwnerUserID,
				UserCreditDate:        now,
				UserCreditAmountCents: netDirect,
				UserCreditReason:      fmt.Sprintf("Refund credit from cancelled invoice %s", invoiceRef(inv.InvoiceID)),
			}
			if err := tx.Create(&refund).Error; err != nil {
				return err
			}
			creditNote = fmt.Sprintf(", %s returned as account credit", dollars(netDirect))
		}

		result = okResult(fmt.Sprintf(
			"Invoice %s cancelled: %d credit application(s) reversed%s",
			invoiceRef(inv.InvoiceID), reversedCount, creditNote))
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyTerminal) {
			return warnResult("Invoice is already cancelled; nothing to do"), nil
		}
		return nil, err
	}
	return result, nil
}

// reverseApplicationsForInvoice reverses all non-reversed credit
// applications against inv. When restoreCredit is true the consumed amount
// goes back onto the parent credit and the credit becomes available again
// (invoice cancellation). When false the parent credit is left alone
// (payment-void cascade, where the credit itself is being zeroed).
func (s *LedgerService) reverseApplicationsForInvoice(tx *gorm.DB, inv *model.Invoice, now time.Time, note string, restoreCredit bool) (int64, int, error) {
	var apps []model.CreditApplication
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("credit_application_invoice_id = ? AND credit_application_is_reversed = ?", inv.InvoiceID, false).
		Find(&apps).Error; err != nil {
		return 0, 0, err
	}

	var total int64
	for i := range apps {
		app := &apps[i]
		app.CreditApplicationIsReversed = true
		app.CreditApplicationReversedAt = &now
		app.AppendNote(note)
		if err := tx.Save(app).Error; err != nil {
			return 0, 0, err
		}

		if restoreCredit {
			var credit model.UserCredit
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&credit, "user_credit_id = ?", app.CreditApplicationUserCreditID).Error; err != nil {
				return 0, 0, err
			}
			credit.UserCreditAmountCents += app.CreditApplicationAmountCents
			credit.UserCreditIsApplied = false
			credit.UserCreditAppliedAt = nil
			credit.UserCreditAppliedInvoiceID = nil
			credit.AppendApplicationNote(fmt.Sprintf(
				"Restored %s: %s", dollars(app.CreditApplicationAmountCents), note))
			if err := tx.Save(&credit).Error; err != nil {
				return 0, 0, err
			}
		}

		total += app.CreditApplicationAmountCents
	}
	return total, len(apps), nil
}

// =========================================================
// VOID PAYMENT
// =========================================================

// VoidPayment marks a payment voided and reverses every downstream effect:
// the direct reduction of its linked invoice, and (second-order) every
// consumption of credit the payment itself generated.
func (s *LedgerService) VoidPayment(ctx context.Context, paymentID uuid.UUID, reason string) (*LedgerResult, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: void reason is required", ErrValidation)
	}

	var result *LedgerResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Payment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&p, "payment_id = ?", paymentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if p.PaymentIsVoided {
			return ErrAlreadyTerminal
		}

		now := time.Now()
		p.PaymentIsVoided = true
		p.PaymentVoidedAt = &now
		p.PaymentVoidReason = &reason
		if err := tx.Save(&p).Error; err != nil {
			return err
		}

		// 1) Undo the direct reduction of the linked invoice.
		if p.PaymentInvoiceID != nil {
			var inv model.Invoice
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&inv, "invoice_id = ?", *p.PaymentInvoiceID).Error; err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				// linked invoice hard-missing: nothing to restore
			} else {
				reduction := p.PaymentAppliedCents
				if !p.HasExactSplit() {
					// legacy rows without the recorded split: best-effort
					reduction = p.PaymentAmountCents
				}
				if reduction > inv.InvoiceAmountPaidCents {
					reduction = inv.InvoiceAmountPaidCents
				}
				inv.InvoiceAmountPaidCents -= reduction
				if inv.InvoiceStatus != model.InvoiceStatusCancelled {
					inv.InvoiceStatus = reopenedStatus(&inv, now)
				}
				if err := tx.Save(&inv).Error; err != nil {
					return err
				}
			}
		}

		// 2) Cascade: credits minted from this payment's overpayment.
		cascaded, err := s.voidSourcedCredits(tx, &p, now, reason)
		if err != nil {
			return err
		}

		msg := fmt.Sprintf("Payment of %s voided", dollars(p.PaymentAmountCents))
		if cascaded > 0 {
			msg += fmt.Sprintf("; %d overpayment credit(s) voided with their applications reversed", cascaded)
		}
		result = okResult(msg)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyTerminal) {
			return warnResult("Payment is already voided; nothing to do"), nil
		}
		return nil, err
	}
	return result, nil
}

// voidSourcedCredits voids every credit minted from the given payment and
// reverses each of that credit's live applications, restoring the invoices
// the credit had paid. payment -> sourced credit -> application -> invoice.
func (s *LedgerService) voidSourcedCredits(tx *gorm.DB, p *model.Payment, now time.Time, reason string) (int, error) {
	var credits []model.UserCredit
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_credit_source_payment_id = ? AND user_credit_is_voided = ?", p.PaymentID, false).
		Find(&credits).Error; err != nil {
		return 0, err
	}

	note := fmt.Sprintf("Reversed: source payment voided (%s)", reason)
	for i := range credits {
		credit := &credits[i]

		var apps []model.CreditApplication
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("credit_application_user_credit_id = ? AND credit_application_is_reversed = ?", credit.UserCreditID, false).
			Find(&apps).Error; err != nil {
			return 0, err
		}
		for j := range apps {
			app := &apps[j]
			app.CreditApplicationIsReversed = true
			app.CreditApplicationReversedAt = &now
			app.AppendNote(note)
			if err := tx.Save(app).Error; err != nil {
				return 0, err
			}

			var inv model.Invoice
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&inv, "invoice_id = ?", app.CreditApplicationInvoiceID).Error; err != nil {
				return 0, err
			}
			inv.InvoiceAmountPaidCents -= app.CreditApplicationAmountCents
			if inv.InvoiceAmountPaidCents < 0 {
				inv.InvoiceAmountPaidCents = 0
			}
			if inv.InvoiceStatus != model.InvoiceStatusCancelled {
				inv.InvoiceStatus = reopenedStatus(&inv, now)
			}
			if err := tx.Save(&inv).Error; err != nil {
				return 0, err
			}
		}

		// A voided credit is never available again: zeroed and flagged.
		credit.UserCreditIsVoided = true
		credit.UserCreditAmountCents = 0
		credit.UserCreditIsApplied = true
		credit.UserCreditAppliedAt = &now
		credit.AppendApplicationNote(note)
		if err := tx.Save(credit).Error; err != nil {
			return 0, err
		}
	}
	return len(credits), nil
}

// =========================================================
// STATUS DERIVATION
// =========================================================

// reopenedStatus is the status of a non-cancelled invoice whose payment was
// just unwound: overdue when the due date passed more than a day ago,
// otherwise due. Paid/draft are not reachable from a reversal.
func reopenedStatus(inv *model.Invoice, now time.Time) model.InvoiceStatus {
	if now.After(inv.InvoiceDueDate.Add(24 * time.Hour)) {
		return model.InvoiceStatusOverdue
	}
	return model.InvoiceStatusDue
}

// derivedStatus recomputes a non-cancelled invoice's status from its
// balances and due date. Cancelled is sticky and never passed through here.
func derivedStatus(inv *model.Invoice, now time.Time) model.InvoiceStatus {
	if inv.InvoiceAmountDueCents > 0 && inv.InvoiceAmountPaidCents >= inv.InvoiceAmountDueCents {
		return model.InvoiceStatusPaid
	}
	if now.After(inv.InvoiceDueDate.Add(24 * time.Hour)) {
		return model.InvoiceStatusOverdue
	}
	return model.InvoiceStatusDue
}
