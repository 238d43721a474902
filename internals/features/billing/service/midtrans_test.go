// file: internals/features/billing/service/midtrans_test.go
package service

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyMidtransSignature(t *testing.T) {
	InitMidtrans("server-key", false)

	orderID := "7f0a9d2e-0000-0000-0000-000000000000"
	statusCode := "200"
	grossAmount := "15000.00"

	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + "server-key"))
	valid := hex.EncodeToString(sum[:])

	assert.True(t, VerifyMidtransSignature(orderID, statusCode, grossAmount, valid))
	assert.False(t, VerifyMidtransSignature(orderID, statusCode, grossAmount, "tampered"))
	assert.False(t, VerifyMidtransSignature(orderID, "201", grossAmount, valid))
	assert.False(t, VerifyMidtransSignature(orderID, statusCode, grossAmount, ""))
}
