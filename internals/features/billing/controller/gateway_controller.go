// file: internals/features/billing/controller/gateway_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	model "hoaportal_backend/internals/features/billing/model"
	service "hoaportal_backend/internals/features/billing/service"
	userModel "hoaportal_backend/internals/features/users/model"
	helper "hoaportal_backend/internals/helpers"
)

type GatewayController struct {
	DB     *gorm.DB
	Ledger *service.LedgerService
}

func NewGatewayController(db *gorm.DB) *GatewayController {
	return &GatewayController{DB: db, Ledger: service.NewLedgerService(db)}
}

// -----------------------------------------
// Checkout (POST /api/u/invoices/:id/checkout)
// Member requests a Snap token for one of their open invoices.
// -----------------------------------------
func (h *GatewayController) Checkout(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	invoiceID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var inv model.Invoice
	if err := h.DB.First(&inv, "invoice_id = ? AND invoice_owner_user_id = ?", invoiceID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "invoice not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if inv.InvoiceStatus == model.InvoiceStatusCancelled {
		return helper.JsonError(c, fiber.StatusConflict, "invoice is cancelled")
	}

	var owner userModel.User
	if err := h.DB.First(&owner, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	token, redirectURL, err := service.GenerateSnapToken(inv, service.CheckoutCustomer{
		FullName: owner.UserFullName,
		Email:    owner.UserEmail,
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, err.Error())
	}
	return helper.JsonOK(c, "checkout session created", fiber.Map{
		"snap_token":   token,
		"redirect_url": redirectURL,
	})
}

// -----------------------------------------
// Notification (POST /api/public/payments/notification)
// Midtrans webhook. Every callback is logged as a gateway event; only a
// verified settlement/capture books a payment through the ledger.
// -----------------------------------------
func (h *GatewayController) Notification(c *fiber.Ctx) error {
	body := c.Body()

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}

	orderID, _ := payload["order_id"].(string)
	statusCode, _ := payload["status_code"].(string)
	grossAmount, _ := payload["gross_amount"].(string)
	signature, _ := payload["signature_key"].(string)
	txStatus, _ := payload["transaction_status"].(string)
	txID, _ := payload["transaction_id"].(string)

	event := model.PaymentGatewayEvent{
		GatewayEventProvider:   "midtrans",
		GatewayEventType:       &txStatus,
		GatewayEventExternalID: strPtrOrNil(txID),
		GatewayEventPayload:    datatypes.JSON(body),
		GatewayEventSignature:  strPtrOrNil(signature),
	}

	if !service.VerifyMidtransSignature(orderID, statusCode, grossAmount, signature) {
		event.GatewayEventStatus = model.GatewayEventStatusFailed
		msg := "signature verification failed"
		event.GatewayEventError = &msg
		_ = h.DB.Create(&event).Error
		return helper.JsonError(c, fiber.StatusUnauthorized, msg)
	}

	// Duplicate notification for an already-processed transaction: log and ack.
	if txID != "" {
		var dup int64
		h.DB.Model(&model.PaymentGatewayEvent{}).
			Where("gateway_event_external_id = ? AND gateway_event_status = ?", txID, model.GatewayEventStatusProcessed).
			Count(&dup)
		if dup > 0 {
			event.GatewayEventStatus = model.GatewayEventStatusIgnored
			_ = h.DB.Create(&event).Error
			return helper.JsonOK(c, "duplicate notification ignored", nil)
		}
	}

	switch txStatus {
	case "settlement", "capture":
		if err := h.bookSettlement(c, &event, orderID, grossAmount, txID); err != nil {
			event.GatewayEventStatus = model.GatewayEventStatusFailed
			msg := err.Error()
			event.GatewayEventError = &msg
			_ = h.DB.Create(&event).Error
			log.Printf("[ERROR] gateway settlement for order %s failed: %v", orderID, err)
			return helper.JsonError(c, fiber.StatusInternalServerError, msg)
		}
		now := time.Now()
		event.GatewayEventStatus = model.GatewayEventStatusProcessed
		event.GatewayEventProcessedAt = &now
		_ = h.DB.Create(&event).Error
		return helper.JsonOK(c, "payment recorded", nil)
	default:
		// pending/deny/cancel/expire: log only
		event.GatewayEventStatus = model.GatewayEventStatusIgnored
		_ = h.DB.Create(&event).Error
		return helper.JsonOK(c, "notification logged", nil)
	}
}

func (h *GatewayController) bookSettlement(c *fiber.Ctx, event *model.PaymentGatewayEvent, orderID, grossAmount, txID string) error {
	invoiceID, err := uuid.Parse(orderID)
	if err != nil {
		return errors.New("order_id is not a known invoice")
	}
	var inv model.Invoice
	if err := h.DB.First(&inv, "invoice_id = ?", invoiceID).Error; err != nil {
		return errors.New("order_id is not a known invoice")
	}

	amountCents, err := parseGrossAmountCents(grossAmount)
	if err != nil {
		return err
	}

	payment, _, err := h.Ledger.RecordPayment(c.UserContext(), service.RecordPaymentInput{
		OwnerUserID: inv.InvoiceOwnerUserID,
		InvoiceID:   &inv.InvoiceID,
		AmountCents: amountCents,
		Method:      model.PaymentMethodGateway,
		Reference:   strPtrOrNil(txID),
	})
	if err != nil {
		return err
	}
	event.GatewayEventPaymentID = &payment.PaymentID
	return nil
}

// parseGrossAmountCents parses Midtrans's "12345.00"-style gross_amount
// into cents.
func parseGrossAmountCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("missing gross_amount")
	}
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid gross_amount")
	}
	return n, nil
}

// -----------------------------------------
// Events (GET /api/a/gateway-events)
// -----------------------------------------
func (h *GatewayController) Events(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "received_at", "desc", helper.AdminOpts)

	q := h.DB.Model(&model.PaymentGatewayEvent{})
	if v := c.Query("status"); v != "" {
		q = q.Where("gateway_event_status = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(map[string]string{
		"received_at": "gateway_event_received_at",
	}, "received_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var list []model.PaymentGatewayEvent
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "", list, helper.BuildMeta(total, p))
}

func strPtrOrNil(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
