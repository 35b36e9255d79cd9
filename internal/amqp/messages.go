package amqp

import (
	"encoding/json"
	"time"
)

type InvoiceAction string

const (
	InvoiceCreated InvoiceAction = "invoice.created"
	InvoiceUpdated InvoiceAction = "invoice.updated"
	InvoiceDeleted InvoiceAction = "invoice.deleted"
)

// InvoiceEventMessage is a lightweight change notification carrying only the
// action and invoice id; consumers fetch the full row themselves.
type InvoiceEventMessage struct {
	Action    InvoiceAction `json:"action"`
	InvoiceID string        `json:"invoice_id"`
	Timestamp time.Time     `json:"timestamp"`
}

func NewInvoiceEventMessage(action InvoiceAction, invoiceID string) *InvoiceEventMessage {
	return &InvoiceEventMessage{
		Action:    action,
		InvoiceID: invoiceID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *InvoiceEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// InvoiceEventMessageFromJSON creates a message from JSON bytes
func InvoiceEventMessageFromJSON(data []byte) (*InvoiceEventMessage, error) {
	var msg InvoiceEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
