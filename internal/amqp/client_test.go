package amqp

import (
	"testing"
	"time"
)

func TestNewInvoiceEventMessage(t *testing.T) {
	msg := NewInvoiceEventMessage(InvoiceCreated, "inv-123")

	if msg.Action != InvoiceCreated {
		t.Errorf("Action = %v, want %v", msg.Action, InvoiceCreated)
	}
	if msg.InvoiceID != "inv-123" {
		t.Errorf("InvoiceID = %v, want inv-123", msg.InvoiceID)
	}
	if msg.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("Timestamp should be recent")
	}
}

func TestInvoiceEventMessage_JSON(t *testing.T) {
	timestamp := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := &InvoiceEventMessage{
		Action:    InvoiceDeleted,
		InvoiceID: "inv-42",
		Timestamp: timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := InvoiceEventMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("InvoiceEventMessageFromJSON() error = %v", err)
	}

	if parsed.Action != msg.Action {
		t.Errorf("Parsed Action = %v, want %v", parsed.Action, msg.Action)
	}
	if parsed.InvoiceID != msg.InvoiceID {
		t.Errorf("Parsed InvoiceID = %v, want %v", parsed.InvoiceID, msg.InvoiceID)
	}
	if !parsed.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsed.Timestamp, msg.Timestamp)
	}
}

func TestInvoiceEventMessage_InvalidJSON(t *testing.T) {
	invalidJSON := []byte(`{"action": 7, "invoice_id": []}`)

	if _, err := InvoiceEventMessageFromJSON(invalidJSON); err == nil {
		t.Error("InvoiceEventMessageFromJSON() should fail with invalid JSON")
	}
}
