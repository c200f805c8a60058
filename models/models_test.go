package models

import (
	"encoding/json"
	"testing"
)

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "rfc3339", input: `"2025-11-20T10:00:00Z"`, valid: true},
		{name: "rfc3339 nano", input: `"2025-11-20T10:00:00.123456Z"`, valid: true},
		{name: "space separated", input: `"2025-11-20 10:00:00"`, valid: true},
		{name: "no zone", input: `"2025-11-20T10:00:00"`, valid: true},
		{name: "garbage", input: `"not-a-date"`, valid: false},
		{name: "number", input: `1732100400`, valid: false},
		{name: "null", input: `null`, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			if err := json.Unmarshal([]byte(tt.input), &ts); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v, want lenient nil", tt.input, err)
			}
			if ts.Valid != tt.valid {
				t.Errorf("Valid = %v, want %v", ts.Valid, tt.valid)
			}
		})
	}
}

func TestTimestampBadValueDoesNotFailMessageDecode(t *testing.T) {
	payload := `{"id": 6, "chat_id": 1, "text": "corrupt", "created_at": "???"}`

	var msg Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		t.Fatalf("Unmarshal() error = %v; a bad timestamp must not fail the message", err)
	}
	if msg.CreatedAt.Valid {
		t.Error("expected invalid timestamp to be flagged")
	}
	if msg.ID != 6 || msg.Text != "corrupt" {
		t.Errorf("other fields lost: %+v", msg)
	}
}

func TestMetaRoundTripsUnchanged(t *testing.T) {
	payload := `{"id": 1, "chat_id": 1, "text": "hi", "created_at": "2025-11-20T10:00:00Z", "meta": {"z_last": 1, "a_first": {"nested": true}}}`

	var msg Message
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	// Meta is pass-through: unknown fields and key order survive. Marshal
	// compacts whitespace but must not reorder or interpret anything.
	got, err := json.Marshal(msg.Meta)
	if err != nil {
		t.Fatalf("Marshal(meta) error = %v", err)
	}
	want := `{"z_last":1,"a_first":{"nested":true}}`
	if string(got) != want {
		t.Errorf("meta = %s, want untouched %s", got, want)
	}
}
