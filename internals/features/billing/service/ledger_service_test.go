// file: internals/features/billing/service/ledger_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "hoaportal_backend/internals/features/billing/model"
	userModel "hoaportal_backend/internals/features/users/model"
)

// newTestDB spins up an in-memory sqlite ledger. The users table is created
// by hand because sqlite cannot migrate the text[] roles column.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.Invoice{},
		&model.Payment{},
		&model.UserCredit{},
		&model.CreditApplication{},
		&model.PaymentGatewayEvent{},
	))
	require.NoError(t, db.Exec(`CREATE TABLE users (
		user_id TEXT PRIMARY KEY,
		user_email TEXT NOT NULL,
		user_full_name TEXT NOT NULL,
		user_password_hash TEXT NOT NULL DEFAULT '',
		user_roles TEXT,
		user_lot_number TEXT,
		user_is_billing_contact NUMERIC NOT NULL DEFAULT false,
		user_is_active NUMERIC NOT NULL DEFAULT true,
		user_created_at DATETIME NOT NULL,
		user_updated_at DATETIME NOT NULL,
		user_deleted_at DATETIME
	)`).Error)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, billingContact bool) uuid.UUID {
	t.Helper()
	u := userModel.User{
		UserEmail:            uuid.New().String() + "@example.com",
		UserFullName:         "Pat Homeowner",
		UserRoles:            []string{"member"},
		UserIsBillingContact: billingContact,
		UserIsActive:         true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u.UserID
}

func seedInvoice(t *testing.T, db *gorm.DB, owner uuid.UUID, dueCents int64, dueDate time.Time, status model.InvoiceStatus) *model.Invoice {
	t.Helper()
	inv := model.Invoice{
		InvoiceOwnerUserID:    owner,
		InvoiceDate:           dueDate.AddDate(0, -1, 0),
		InvoiceDueDate:        dueDate,
		InvoiceDescription:    "Quarterly dues",
		InvoiceAmountDueCents: dueCents,
		InvoiceStatus:         status,
		InvoiceType:           model.InvoiceTypeDues,
	}
	require.NoError(t, db.Create(&inv).Error)
	return &inv
}

func reloadInvoice(t *testing.T, db *gorm.DB, id uuid.UUID) *model.Invoice {
	t.Helper()
	var inv model.Invoice
	require.NoError(t, db.First(&inv, "invoice_id = ?", id).Error)
	return &inv
}

func reloadCredit(t *testing.T, db *gorm.DB, id uuid.UUID) *model.UserCredit {
	t.Helper()
	var c model.UserCredit
	require.NoError(t, db.First(&c, "user_credit_id = ?", id).Error)
	return &c
}

// =========================================================
// VOID INVOICE
// =========================================================

func TestVoidInvoice_DirectPaymentBecomesCredit(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	ctx := context.Background()
	owner := seedUser(t, db, true)

	inv := seedInvoice(t, db, owner, 10000, time.Now().AddDate(0, 0, 14), model.InvoiceStatusDue)
	_, _, err := svc.RecordPayment(ctx, RecordPaymentInput{
		OwnerUserID: owner,
		InvoiceID:   &inv.InvoiceID,
		AmountCents: 10000,
	})
	require.NoError(t, err)
	require.Equal(t, model.InvoiceStatusPaid, reloadInvoice(t, db, inv.InvoiceID).InvoiceStatus)

	res, err := svc.VoidInvoice(ctx, inv.InvoiceID, "billed in error")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.False(t, res.Warning)

	got := reloadInvoice(t, db, inv.InvoiceID)
	assert.Equal(t, model.InvoiceStatusCancelled, got.InvoiceStatus)
	require.NotNil(t, got.InvoiceCancellationReason)
	assert.Equal(t, "billed in error", *got.InvoiceCancellationReason)

	// The $100 the member actually paid comes back as account credit.
	var credits []model.UserCredit
	require.NoError(t, db.Where("user_credit_owner_user_id = ?", owner).
		Where("user_credit_source_payment_id IS NULL").
		Find(&credits).Error)
	require.Len(t, credits, 1)
	assert.Equal(t, int64(10000), credits[0].UserCreditAmountCents)
	assert.True(t, credits[0].IsAvailable())
}

func TestVoidInvoice_CreditPaidRestoresCredit(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	ctx := context.Background()
	owner := seedUser(t, db, true)

	credit, err := svc.GrantCredit(ctx, owner, 10000, "goodwill adjustment")
	require.NoError(t, err)

	inv := seedInvoice(t, db, owner, 6000, time.Now().AddDate(0, 0, 14), model.InvoiceStatusDue)
	res, err := svc.ApplyCreditsToInvoice(ctx, inv.InvoiceID)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, model.InvoiceStatusPaid, reloadInvoice(t, db, inv.InvoiceID).InvoiceStatus)
	assert.Equal(t, int64(4000), reloadCredit(t, db, credit.UserCreditID).UserCreditAmountCents)

	_, err = svc.VoidInvoice(ctx, inv.InvoiceID, "assessment error")
	require.NoError(t, err)

	// Consumed amount is restored onto the same credit; no refund credit is
	// minted because no direct money was involved.
	restored := reloadCredit(t, db, credit.UserCreditID)
	assert.Equal(t, int64(10000), restored.UserCreditAmountCents)
	assert.True(t, restored.IsAvailable())
	assert.Contains(t, restored.UserCreditApplicationNotes, "Restored")

	var count int64
	db.Model(&model.UserCredit{}).Where("user_credit_owner_user_id = ?", owner).Count(&count)
	assert.Equal(t, int64(1), count)

	var app model.CreditApplication
	require.NoError(t, db.First(&app, "credit_application_invoice_id = ?", inv.InvoiceID).Error)
	assert.True(t, app.CreditApplicationIsReversed)
	assert.NotNil(t, app.CreditApplicationReversedAt)
}

func TestVoidInvoice_AlreadyCancelledIsBenign(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	ctx := context.Background()
	owner := seedUser(t, db, true)

	inv := seedInvoice(t, db, owner, 5000, time.Now(), model.InvoiceStatusDue)
	_, err := svc.VoidInvoice(ctx, inv.InvoiceID, "first void")
	require.NoError(t, err)

	res, err := svc.VoidInvoice(ctx, inv.InvoiceID, "second void")
	require.NoError(t, err)
	assert.True(t, res.Warning)

	// The original reason is untouched.
	got := reloadInvoice(t, db, inv.InvoiceID)
	assert.Equal(t, "first void", *got.InvoiceCancellationReason)
}

func TestVoidInvoice_RequiresReason(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	owner := seedUser(t, db, true)
	inv := seedInvoice(t, db, owner, 5000, time.Now(), model.InvoiceStatusDue)

	_, err := svc.VoidInvoice(context.Background(), inv.InvoiceID, "   ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestVoidInvoice_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)

	_, err := svc.VoidInvoice(context.Background(), uuid.New(), "whatever")
	assert.ErrorIs(t, err, ErrNotFound)
}

// =========================================================
// VOID PAYMENT
// =========================================================

func TestVoidPayment_ReopensInvoice(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	ctx := context.Background()
	owner := seedUser(t, db, true)

	inv := seedInvoice(t, db, owner, 5000, time.Now().AddDate(0, 0, 10), model.InvoiceStatusDue)
	payment, _, err := svc.RecordPayment(ctx, RecordPaymentInput{
		OwnerUserID: owner,
		InvoiceID:   &inv.InvoiceID,
		AmountCents: 5000,
	})
	require.NoError(t, err)
	require.Equal(t, model.InvoiceStatusPaid, reloadInvoice(t, db, inv.InvoiceID).InvoiceStatus)

	res, err := svc.VoidPayment(ctx, payment.PaymentID, "check bounced")
	require.NoError(t, err)
	assert.True(t, res.Success)

	got := reloadInvoice(t, db, inv.InvoiceID)
	assert.Equal(t, int64(0), got.InvoiceAmountPaidCents)
	assert.Equal(t, model.InvoiceStatusDue, got.InvoiceStatus)

	var p model.Payment
	require.NoError(t, db.First(&p, "payment_id = ?", payment.PaymentID).Error)
	assert.True(t, p.PaymentIsVoided)
	require.NotNil(t, p.PaymentVoidReason)
	assert.Equal(t, "check bounced", *p.PaymentVoidReason)
}

func TestVoidPayment_PastDueReopensAsOverdue(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	ctx := context.Background()
	owner := seedUser(t, db, true)

	inv := seedInvoice(t, db, owner, 5000, time.Now().AddDate(0, 0, -10), model.InvoiceStatusOverdue)
	payment, _, err := svc.RecordPayment(ctx, RecordPaymentInput{
		OwnerUserID: owner,
		InvoiceID:   &inv.InvoiceID,
		AmountCents: 5000,
	})
	require.NoError(t, err)

	_, err = svc.VoidPayment(ctx, payment.PaymentID, "nsf")
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceStatusOverdue, reloadInvoice(t, db, inv.InvoiceID).InvoiceStatus)
}

func TestVoidPayment_CascadesThroughOverpaymentCredit(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	ctx := context.Background()
	owner := seedUser(t, db, true)

	// $80 against a $50 invoice: $50 applied, $30 minted as credit.
	inv1 := seedInvoice(t, db, owner, 5000, time.Now().AddDate(0, 0, 14), model.InvoiceStatusDue)
	payment, _, err := svc.RecordPayment(ctx, RecordPaymentInput{
		OwnerUserID: owner,
		InvoiceID:   &inv1.InvoiceID,
		AmountCents: 8000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), payment.PaymentAppliedCents)
	assert.Equal(t, int64(3000), payment.PaymentCreditCents)

	var credit model.UserCredit
	require.NoError(t, db.First(&credit, "user_credit_source_payment_id = ?", payment.PaymentID).Error)
	assert.Equal(t, int64(3000), credit.UserCreditAmountCents)

	// The minted credit then pays a $20 invoice.
	inv2 := seedInvoice(t, db, owner, 2000, time.Now().AddDate(0, 0, 14), model.InvoiceStatusDue)
	_, err = svc.ApplyCreditsToInvoice(ctx, inv2.InvoiceID)
	require.NoError(t, err)
	require.Equal(t, model.InvoiceStatusPaid, reloadInvoice(t, db, inv2.InvoiceID).InvoiceStatus)

	// Voiding the payment unwinds everything downstream.
	res, err := svc.VoidPayment(ctx, payment.PaymentID, "card chargeback")
	require.NoError(t, err)
	assert.True(t, res.Success)

	got1 := reloadInvoice(t, db, inv1.InvoiceID)
	assert.Equal(t, int64(0), got1.InvoiceAmountPaidCents)
	assert.Equal(t, model.InvoiceStatusDue, got1.InvoiceStatus)

	got2 := reloadInvoice(t, db, inv2.InvoiceID)
	assert.Equal(t, int64(0), got2.InvoiceAmountPaidCents)
	assert.Equal(t, model.InvoiceStatusDue, got2.InvoiceStatus)

	gone := reloadCredit(t, db, credit.UserCreditID)
	assert.True(t, gone.UserCreditIsVoided)
	assert.Equal(t, int64(0), gone.UserCreditAmountCents)
	assert.False(t, gone.IsAvailable())

	var app model.CreditApplication
	require.NoError(t, db.First(&app, "credit_application_invoice_id = ?", inv2.InvoiceID).Error)
	assert.True(t, app.CreditApplicationIsReversed)
}

func TestVoidPayment_AlreadyVoidedIsBenign(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	ctx := context.Background()
	owner := seedUser(t, db, true)

	inv := seedInvoice(t, db, owner, 5000, time.Now().AddDate(0, 0, 14), model.InvoiceStatusDue)
	payment, _, err := svc.RecordPayment(ctx, RecordPaymentInput{
		OwnerUserID: owner,
		InvoiceID:   &inv.InvoiceID,
		AmountCents: 5000,
	})
	require.NoError(t, err)

	_, err = svc.VoidPayment(ctx, payment.PaymentID, "nsf")
	require.NoError(t, err)

	res, err := svc.VoidPayment(ctx, payment.PaymentID, "nsf again")
	require.NoError(t, err)
	assert.True(t, res.Warning)

	// The first void already emptied the invoice; the second changed nothing.
	assert.Equal(t, int64(0), reloadInvoice(t, db, inv.InvoiceID).InvoiceAmountPaidCents)
}

// =========================================================
// LATE FEES
// =========================================================

func TestApplyLateFee_FivePercent(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	ctx := context.Background()
	owner := seedUser(t, db, true)

	// $1000 overdue -> $50 fee.
	seedInvoice(t, db, owner, 100000, time.Now().AddDate(0, 0, -40), model.InvoiceStatusOverdue)

	res, err := svc.ApplyLateFee(ctx, owner)
	require.NoError(t, err)
	assert.True(t, res.Success)

	var fee model.Invoice
	require.NoError(t, db.First(&fee, "invoice_type = ?", model.InvoiceTypeLateFee).Error)
	assert.Equal(t, int64(5000), fee.InvoiceAmountDueCents)
	assert.Equal(t, model.InvoiceStatusDue, fee.InvoiceStatus)
	require.NotNil(t, fee.InvoiceSourceInvoiceID)
}

func TestApplyLateFee_MinimumFloor(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	owner := seedUser(t, db, true)

	// $100 overdue: 5% would be $5, the floor lifts it to $25.
	seedInvoice(t, db, owner, 10000, time.Now().AddDate(0, 0, -40), model.InvoiceStatusOverdue)

	_, err := svc.ApplyLateFee(context.Background(), owner)
	require.NoError(t, err)

	var fee model.Invoice
	require.NoError(t, db.First(&fee, "invoice_type = ?", model.InvoiceTypeLateFee).Error)
	assert.Equal(t, int64(2500), fee.InvoiceAmountDueCents)
}

func TestApplyLateFee_TargetsMostOverdueInvoice(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	owner := seedUser(t, db, true)

	newer := seedInvoice(t, db, owner, 50000, time.Now().AddDate(0, 0, -5), model.InvoiceStatusOverdue)
	oldest := seedInvoice(t, db, owner, 20000, time.Now().AddDate(0, 0, -60), model.InvoiceStatusOverdue)

	_, err := svc.ApplyLateFee(context.Background(), owner)
	require.NoError(t, err)

	var fee model.Invoice
	require.NoError(t, db.First(&fee, "invoice_type = ?", model.InvoiceTypeLateFee).Error)
	require.NotNil(t, fee.InvoiceSourceInvoiceID)
	assert.Equal(t, oldest.InvoiceID, *fee.InvoiceSourceInvoiceID)
	assert.NotEqual(t, newer.InvoiceID, *fee.InvoiceSourceInvoiceID)
}

func TestApplyLateFee_GreedyCreditConsumption(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	ctx := context.Background()
	owner := seedUser(t, db, true)

	// Two credits, $15 (older) then $40, against a $50 fee: the older one is
	// fully consumed, the newer one gives $35 and keeps $5.
	older := model.UserCredit{
		UserCreditOwnerUserID: owner,
		UserCreditDate:        time.Now().AddDate(0, -2, 0),
		UserCreditAmountCents: 1500,
		UserCreditReason:      "overpayment",
	}
	require.NoError(t, db.Create(&older).Error)
	newer := model.UserCredit{
		UserCreditOwnerUserID: owner,
		UserCreditDate:        time.Now().AddDate(0, -1, 0),
		UserCreditAmountCents: 4000,
		UserCreditReason:      "overpayment",
	}
	require.NoError(t, db.Create(&newer).Error)

	seedInvoice(t, db, owner, 100000, time.Now().AddDate(0, 0, -40), model.InvoiceStatusOverdue)

	res, err := svc.ApplyLateFee(ctx, owner)
	require.NoError(t, err)
	assert.Contains(t, res.Message, "paid in full")

	var fee model.Invoice
	require.NoError(t, db.First(&fee, "invoice_type = ?", model.InvoiceTypeLateFee).Error)
	assert.Equal(t, model.InvoiceStatusPaid, fee.InvoiceStatus)
	assert.Equal(t, int64(5000), fee.InvoiceAmountPaidCents)

	first := reloadCredit(t, db, older.UserCreditID)
	assert.Equal(t, int64(0), first.UserCreditAmountCents)
	assert.True(t, first.UserCreditIsApplied)

	second := reloadCredit(t, db, newer.UserCreditID)
	assert.Equal(t, int64(500), second.UserCreditAmountCents)
	assert.False(t, second.UserCreditIsApplied)

	var apps []model.CreditApplication
	require.NoError(t, db.Where("credit_application_invoice_id = ?", fee.InvoiceID).
		Order("credit_application_amount_cents ASC").Find(&apps).Error)
	require.Len(t, apps, 2)
	assert.Equal(t, int64(1500), apps[0].CreditApplicationAmountCents)
	assert.Equal(t, int64(3500), apps[1].CreditApplicationAmountCents)
}

func TestApplyLateFee_DuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	ctx := context.Background()
	owner := seedUser(t, db, true)

	seedInvoice(t, db, owner, 100000, time.Now().AddDate(0, 0, -40), model.InvoiceStatusOverdue)

	_, err := svc.ApplyLateFee(ctx, owner)
	require.NoError(t, err)

	_, err = svc.ApplyLateFee(ctx, owner)
	assert.ErrorIs(t, err, ErrDuplicateLateFee)
}

func TestApplyLateFee_VoidedFeeAllowsReapply(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	ctx := context.Background()
	owner := seedUser(t, db, true)

	seedInvoice(t, db, owner, 100000, time.Now().AddDate(0, 0, -40), model.InvoiceStatusOverdue)

	_, err := svc.ApplyLateFee(ctx, owner)
	require.NoError(t, err)

	var fee model.Invoice
	require.NoError(t, db.First(&fee, "invoice_type = ?", model.InvoiceTypeLateFee).Error)
	_, err = svc.VoidInvoice(ctx, fee.InvoiceID, "waived by the board")
	require.NoError(t, err)

	// A cancelled fee no longer blocks a fresh one.
	_, err = svc.ApplyLateFee(ctx, owner)
	require.NoError(t, err)
}

func TestApplyLateFee_RequiresBillingContact(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	owner := seedUser(t, db, false)
	seedInvoice(t, db, owner, 100000, time.Now().AddDate(0, 0, -40), model.InvoiceStatusOverdue)

	_, err := svc.ApplyLateFee(context.Background(), owner)
	assert.ErrorIs(t, err, ErrNotBillingContact)
}

func TestApplyLateFee_NoOverdueInvoice(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	owner := seedUser(t, db, true)
	seedInvoice(t, db, owner, 100000, time.Now().AddDate(0, 0, 30), model.InvoiceStatusDue)

	_, err := svc.ApplyLateFee(context.Background(), owner)
	assert.ErrorIs(t, err, ErrNoOverdueInvoice)
}

func TestApplyLateFee_UnknownMember(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)

	_, err := svc.ApplyLateFee(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

// =========================================================
// RECORD PAYMENT / STATEMENT
// =========================================================

func TestRecordPayment_ExactSplitStored(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	ctx := context.Background()
	owner := seedUser(t, db, true)

	inv := seedInvoice(t, db, owner, 5000, time.Now().AddDate(0, 0, 14), model.InvoiceStatusDue)

	// Partial payment: all applied, nothing to credit.
	p1, _, err := svc.RecordPayment(ctx, RecordPaymentInput{
		OwnerUserID: owner, InvoiceID: &inv.InvoiceID, AmountCents: 2000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), p1.PaymentAppliedCents)
	assert.Equal(t, int64(0), p1.PaymentCreditCents)
	assert.Equal(t, model.InvoiceStatusDue, reloadInvoice(t, db, inv.InvoiceID).InvoiceStatus)

	// Closing overpayment: $30 outstanding, $10 becomes credit.
	p2, _, err := svc.RecordPayment(ctx, RecordPaymentInput{
		OwnerUserID: owner, InvoiceID: &inv.InvoiceID, AmountCents: 4000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3000), p2.PaymentAppliedCents)
	assert.Equal(t, int64(1000), p2.PaymentCreditCents)
	assert.Equal(t, model.InvoiceStatusPaid, reloadInvoice(t, db, inv.InvoiceID).InvoiceStatus)

	var credit model.UserCredit
	require.NoError(t, db.First(&credit, "user_credit_source_payment_id = ?", p2.PaymentID).Error)
	assert.Equal(t, int64(1000), credit.UserCreditAmountCents)
}

func TestRecordPayment_RejectsCancelledInvoice(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	ctx := context.Background()
	owner := seedUser(t, db, true)

	inv := seedInvoice(t, db, owner, 5000, time.Now(), model.InvoiceStatusDue)
	_, err := svc.VoidInvoice(ctx, inv.InvoiceID, "wrong lot")
	require.NoError(t, err)

	_, _, err = svc.RecordPayment(ctx, RecordPaymentInput{
		OwnerUserID: owner, InvoiceID: &inv.InvoiceID, AmountCents: 5000,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRecordPayment_RejectsNonPositiveAmount(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	owner := seedUser(t, db, true)

	_, _, err := svc.RecordPayment(context.Background(), RecordPaymentInput{
		OwnerUserID: owner, AmountCents: 0,
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestStatement_Aggregates(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	ctx := context.Background()
	owner := seedUser(t, db, true)

	seedInvoice(t, db, owner, 10000, time.Now().AddDate(0, 0, 10), model.InvoiceStatusDue)
	seedInvoice(t, db, owner, 5000, time.Now().AddDate(0, 0, -10), model.InvoiceStatusOverdue)

	_, err := svc.GrantCredit(ctx, owner, 2500, "goodwill")
	require.NoError(t, err)

	_, _, err = svc.RecordPayment(ctx, RecordPaymentInput{OwnerUserID: owner, AmountCents: 3000})
	require.NoError(t, err)

	st, err := svc.Statement(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.OpenInvoiceCount)
	assert.Equal(t, int64(15000), st.OutstandingCents)
	// $25 manual grant plus the $30 unapplied payment held as credit.
	assert.Equal(t, int64(5500), st.AvailableCreditCents)
	assert.Equal(t, int64(3000), st.PaymentsYearToDate)
}

func TestApplyCreditsToInvoice_NoCreditsIsWarning(t *testing.T) {
	db := newTestDB(t)
	svc := NewLedgerService(db)
	owner := seedUser(t, db, true)
	inv := seedInvoice(t, db, owner, 5000, time.Now().AddDate(0, 0, 14), model.InvoiceStatusDue)

	res, err := svc.ApplyCreditsToInvoice(context.Background(), inv.InvoiceID)
	require.NoError(t, err)
	assert.True(t, res.Warning)
}

func TestLateFeeAmount(t *testing.T) {
	assert.Equal(t, int64(5000), lateFeeAmount(100000))
	assert.Equal(t, int64(2500), lateFeeAmount(10000))
	assert.Equal(t, int64(2500), lateFeeAmount(0))
	assert.Equal(t, int64(2500), lateFeeAmount(50000))
	assert.Equal(t, int64(2505), lateFeeAmount(50100))
}
