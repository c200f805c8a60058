package models

import (
	"encoding/json"
	"time"
)

// Conversation is one entry in the chat list as the upstream API reports it.
// The set is replaced wholesale on every list fetch; entries are never
// mutated individually.
type Conversation struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	Avatar      string `json:"avatar"`
	LastMessage string `json:"last_message"`
	LastDate    string `json:"last_date"`
}

// Message is a single chat message. Meta is carried through untouched so the
// upstream can evolve its payload without breaking us.
type Message struct {
	ID        int64     `json:"id"`
	ChatID    int64     `json:"chat_id"`
	Text      string    `json:"text"`
	Meta      Meta      `json:"meta,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
	IsSender  bool      `json:"is_sender"`
	TimeLabel string    `json:"time"`
}

// Meta is an opaque pass-through payload. Keeping the raw bytes preserves
// key order and unknown fields.
type Meta json.RawMessage

func (m Meta) MarshalJSON() ([]byte, error) {
	if len(m) == 0 {
		return []byte("null"), nil
	}
	return m, nil
}

func (m *Meta) UnmarshalJSON(data []byte) error {
	*m = append((*m)[0:0], data...)
	return nil
}

// Timestamp is a lenient wire timestamp. The upstream is not consistent
// about formats, and one bad value must not fail the whole payload, so a
// parse failure is recorded on the value instead of returned as an error.
// Callers that care (the thread assembler) check Valid and drop the message.
type Timestamp struct {
	Time  time.Time
	Valid bool
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, Valid: true}
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		ts.Valid = false
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			ts.Time = t
			ts.Valid = true
			return nil
		}
	}
	ts.Valid = false
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if !ts.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(ts.Time.Format(time.RFC3339))
}

// Before reports whether ts is strictly earlier than other.
func (ts Timestamp) Before(other Timestamp) bool {
	return ts.Time.Before(other.Time)
}
