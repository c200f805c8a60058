package chat

import (
	"sync"

	"chat-console/models"
)

// Store holds the set of known conversations and the active selection.
// Conversations keep the exact order the server returned them in; the
// upstream already sorts by recency and we never re-sort.
type Store struct {
	mu            sync.RWMutex
	conversations []models.Conversation
	selected      int64 // counterpart user_id, 0 = nothing selected
}

func NewStore() *Store {
	return &Store{}
}

// List returns the known conversations in server order.
func (s *Store) List() []models.Conversation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Conversation, len(s.conversations))
	copy(out, s.conversations)
	return out
}

// Replace swaps the stored set atomically.
func (s *Store) Replace(conversations []models.Conversation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = append(s.conversations[0:0], conversations...)
}

// Select sets the active selection and reports whether it changed.
// Re-selecting the current conversation is a no-op so callers don't issue
// redundant thread fetches.
func (s *Store) Select(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == userID {
		return false
	}
	s.selected = userID
	return true
}

// Selected returns the active counterpart user_id, 0 if none.
func (s *Store) Selected() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// EnsureSelection defaults the selection to the first conversation when
// nothing is selected yet, matching first-load behavior. Returns the active
// selection after the call.
func (s *Store) EnsureSelection() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == 0 && len(s.conversations) > 0 {
		s.selected = s.conversations[0].UserID
	}
	return s.selected
}

// Clear drops both the conversation set and the selection.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = nil
	s.selected = 0
}
