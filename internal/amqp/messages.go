package amqp

import (
	"encoding/json"
	"time"
)

// Actions carried by receipt change events. The ingesting bot subscribes
// to these to keep its own view of the records fresh.
const (
	ActionUpdated  = "receipt.updated"
	ActionDeleted  = "receipt.deleted"
	ActionExported = "receipt.exported"
)

// ReceiptEventMessage announces that the dashboard changed (or exported)
// receipt data. It is intentionally lean: consumers re-fetch whatever
// detail they need from the backend.
type ReceiptEventMessage struct {
	Action    string    `json:"action"`
	ReceiptID int64     `json:"receipt_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewReceiptEventMessage stamps a new event with the current time.
func NewReceiptEventMessage(action string, receiptID int64) *ReceiptEventMessage {
	return &ReceiptEventMessage{
		Action:    action,
		ReceiptID: receiptID,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReceiptEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReceiptEventMessageFromJSON creates a message from JSON bytes
func ReceiptEventMessageFromJSON(data []byte) (*ReceiptEventMessage, error) {
	var msg ReceiptEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
