package chat

import (
	"log"
	"sort"

	"chat-console/models"
	"chat-console/pkg/apperrors"
)

// Flatten converts the upstream's date-bucketed message map into one
// chronologically ordered slice. Bucket keys are ignored entirely; the
// ordering comes from the messages themselves, so the result is the same
// no matter how the server partitioned them or how Go iterates the map.
//
// Messages whose timestamp failed to parse are dropped (and logged) rather
// than left to corrupt the ordering. Flatten is pure apart from that log
// line: flattening an already sorted sequence wrapped in a single bucket
// returns it unchanged.
func Flatten(groups map[string][]models.Message) []models.Message {
	flat := make([]models.Message, 0, countMessages(groups))
	for _, bucket := range groups {
		for _, msg := range bucket {
			if !msg.CreatedAt.Valid {
				logMalformed(msg)
				continue
			}
			flat = append(flat, msg)
		}
	}
	SortMessages(flat)
	return flat
}

// SortMessages orders messages ascending by creation time, ties broken by
// id ascending. Deterministic order keeps rendering and tests reproducible.
func SortMessages(msgs []models.Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].CreatedAt.Time.Equal(msgs[j].CreatedAt.Time) {
			return msgs[i].ID < msgs[j].ID
		}
		return msgs[i].CreatedAt.Before(msgs[j].CreatedAt)
	})
}

// Newest returns the most recently created message of a flattened thread.
// The slice must already be sorted; ok is false for an empty thread.
func Newest(msgs []models.Message) (models.Message, bool) {
	if len(msgs) == 0 {
		return models.Message{}, false
	}
	return msgs[len(msgs)-1], true
}

func countMessages(groups map[string][]models.Message) int {
	n := 0
	for _, bucket := range groups {
		n += len(bucket)
	}
	return n
}

func logMalformed(msg models.Message) {
	err := &apperrors.MalformedMessageError{
		MessageID: msg.ID,
		Reason:    "unparseable created_at",
	}
	log.Printf("⚠️ Dropping message from thread %d: %v", msg.ChatID, err)
}
