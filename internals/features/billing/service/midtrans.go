// file: internals/features/billing/service/midtrans.go
package service

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"

	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"

	model "hoaportal_backend/internals/features/billing/model"
)

/* =========================================================
   Midtrans client - online dues checkout
========================================================= */

var SnapClient snap.Client

var midtransServerKey string

// InitMidtrans must be called at app bootstrap.
// useProduction=true for Production, false for Sandbox.
func InitMidtrans(serverKey string, useProduction bool) {
	midtransServerKey = serverKey
	if useProduction {
		SnapClient.New(serverKey, midtrans.Production)
	} else {
		SnapClient.New(serverKey, midtrans.Sandbox)
	}
}

type CheckoutCustomer struct {
	FullName string
	Email    string
}

// GenerateSnapToken creates a Snap checkout session for an open invoice.
// The Midtrans order id is the invoice id, so the webhook can route the
// settlement back to the right ledger row.
func GenerateSnapToken(inv model.Invoice, cust CheckoutCustomer) (string, string, error) {
	if inv.OutstandingCents() <= 0 {
		return "", "", errors.New("invoice has no outstanding balance")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  inv.InvoiceID.String(),
			GrossAmt: inv.OutstandingCents(),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: cust.FullName,
			Email: cust.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:       inv.InvoiceID.String(),
				Price:    inv.OutstandingCents(),
				Qty:      1,
				Name:     truncate(inv.InvoiceDescription, 50),
				Category: string(inv.InvoiceType),
			},
		},
		CreditCard: &snap.CreditCardDetails{Secure: true},
	}

	resp, err := SnapClient.CreateTransaction(req)
	if err != nil {
		return "", "", err
	}
	return resp.Token, resp.RedirectURL, nil
}

// VerifyMidtransSignature checks the sha512(order_id + status_code +
// gross_amount + server_key) signature Midtrans sends on notifications.
func VerifyMidtransSignature(orderID, statusCode, grossAmount, signature string) bool {
	if midtransServerKey == "" || signature == "" {
		return false
	}
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + midtransServerKey))
	return hex.EncodeToString(sum[:]) == signature
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
