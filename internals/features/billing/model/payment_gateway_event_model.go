// file: internals/features/billing/model/payment_gateway_event_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
  payment_gateway_events = webhook/callback log from the payment gateway.
  Many rows per payment are possible (one per notification); raw payload is
  kept for debugging and replay.
*/

type GatewayEventStatus string

const (
	GatewayEventStatusReceived  GatewayEventStatus = "received"
	GatewayEventStatusProcessed GatewayEventStatus = "processed"
	GatewayEventStatusFailed    GatewayEventStatus = "failed"
	GatewayEventStatusIgnored   GatewayEventStatus = "ignored"
)

type PaymentGatewayEvent struct {
	GatewayEventID uuid.UUID `gorm:"column:gateway_event_id;type:uuid;primaryKey" json:"gateway_event_id"`

	GatewayEventPaymentID *uuid.UUID `gorm:"column:gateway_event_payment_id;type:uuid;index" json:"gateway_event_payment_id,omitempty"`

	GatewayEventProvider   string  `gorm:"column:gateway_event_provider;type:varchar(30);not null;default:'midtrans'" json:"gateway_event_provider"`
	GatewayEventType       *string `gorm:"column:gateway_event_type" json:"gateway_event_type,omitempty"`
	GatewayEventExternalID *string `gorm:"column:gateway_event_external_id;index" json:"gateway_event_external_id,omitempty"`

	// Raw data (debug / replay)
	GatewayEventPayload   datatypes.JSON `gorm:"column:gateway_event_payload;type:jsonb" json:"gateway_event_payload"`
	GatewayEventSignature *string        `gorm:"column:gateway_event_signature" json:"gateway_event_signature,omitempty"`

	// Internal processing state
	GatewayEventStatus GatewayEventStatus `gorm:"column:gateway_event_status;type:varchar(20);not null;default:'received'" json:"gateway_event_status"`
	GatewayEventError  *string            `gorm:"column:gateway_event_error" json:"gateway_event_error,omitempty"`

	GatewayEventReceivedAt  time.Time  `gorm:"column:gateway_event_received_at;not null" json:"gateway_event_received_at"`
	GatewayEventProcessedAt *time.Time `gorm:"column:gateway_event_processed_at" json:"gateway_event_processed_at,omitempty"`
}

func (PaymentGatewayEvent) TableName() string {
	return "payment_gateway_events"
}

func (m *PaymentGatewayEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if m.GatewayEventID == uuid.Nil {
		m.GatewayEventID = uuid.New()
	}
	if m.GatewayEventReceivedAt.IsZero() {
		m.GatewayEventReceivedAt = time.Now()
	}
	return nil
}
