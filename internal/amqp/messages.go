package amqp

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/ports"
)

var ErrInvalidMessage = errors.New("invalid record message")

// RecordSubmittedMessage announces that a record was saved. It carries only
// the kind and ID; consumers load the record from the store.
type RecordSubmittedMessage struct {
	Kind      ports.RecordKind `json:"kind"`
	ID        string           `json:"id"`
	Timestamp time.Time        `json:"timestamp"`
}

func NewRecordSubmittedMessage(kind ports.RecordKind, id string) *RecordSubmittedMessage {
	return &RecordSubmittedMessage{
		Kind:      kind,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

func (m *RecordSubmittedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RecordSubmittedMessageFromJSON decodes and checks a message body.
func RecordSubmittedMessageFromJSON(data []byte) (*RecordSubmittedMessage, error) {
	var msg RecordSubmittedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Kind == "" || msg.ID == "" {
		return nil, ErrInvalidMessage
	}
	return &msg, nil
}
