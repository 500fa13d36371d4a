// Package remote serves and consumes profile progress over a websocket.
//
// Every request is a JSON Message; the server answers each one with a Message
// carrying the same Type and ID. A non-empty Error marks a failed request.
package remote

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Message types.
const (
	TypeProfilesList   = "profiles.list"
	TypeProfilesSave   = "profiles.save"
	TypeProfilesDelete = "profiles.delete"
	TypeProgressList   = "progress.list"
	TypeProgressSave   = "progress.save"
)

// Message is the JSON envelope for requests and responses.
type Message struct {
	Type    string          `json:"type"`
	ID      uint64          `json:"id"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ProfileRef names a profile for delete and progress.list requests.
type ProfileRef struct {
	ProfileID string `json:"profile_id"`
}

// ErrRemote wraps an error reported by the server.
var ErrRemote = errors.New("remote: server error")

// newMessage encodes payload into a message. A nil payload is omitted.
func newMessage(typ string, id uint64, payload any) (Message, error) {
	msg := Message{Type: typ, ID: id}
	if payload == nil {
		return msg, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("remote: encode %s payload: %w", typ, err)
	}
	msg.Payload = raw
	return msg, nil
}

// decode unmarshals the payload into v.
func (m Message) decode(v any) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("remote: %s: empty payload", m.Type)
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("remote: %s: decode payload: %w", m.Type, err)
	}
	return nil
}

// Err returns the server error carried by a response, if any.
func (m Message) Err() error {
	if m.Error == "" {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrRemote, m.Error)
}
