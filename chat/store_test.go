package chat

import (
	"testing"

	"chat-console/models"
)

func sampleConversations() []models.Conversation {
	return []models.Conversation{
		{ID: 1, UserID: 11, Name: "Ana", LastMessage: "see you"},
		{ID: 2, UserID: 22, Name: "Ben", LastMessage: "thanks!"},
	}
}

func TestStoreReplacePreservesServerOrder(t *testing.T) {
	store := NewStore()
	store.Replace(sampleConversations())

	got := store.List()
	if len(got) != 2 || got[0].UserID != 11 || got[1].UserID != 22 {
		t.Errorf("List() = %+v, want server order [11 22]", got)
	}

	// A second fetch replaces the set wholesale.
	store.Replace([]models.Conversation{{ID: 3, UserID: 33, Name: "Cleo"}})
	got = store.List()
	if len(got) != 1 || got[0].UserID != 33 {
		t.Errorf("List() after replace = %+v, want [33]", got)
	}
}

func TestStoreSelectNoOpWhenUnchanged(t *testing.T) {
	store := NewStore()
	store.Replace(sampleConversations())

	if !store.Select(22) {
		t.Error("first Select(22) reported no change")
	}
	if store.Select(22) {
		t.Error("repeated Select(22) reported a change; redundant fetches would follow")
	}
	if store.Selected() != 22 {
		t.Errorf("Selected() = %d, want 22", store.Selected())
	}
}

func TestStoreEnsureSelectionDefaultsToFirst(t *testing.T) {
	store := NewStore()

	if got := store.EnsureSelection(); got != 0 {
		t.Errorf("EnsureSelection() with no conversations = %d, want 0", got)
	}

	store.Replace(sampleConversations())
	if got := store.EnsureSelection(); got != 11 {
		t.Errorf("EnsureSelection() = %d, want first conversation's user_id 11", got)
	}

	// An existing selection is never overridden.
	store.Select(22)
	if got := store.EnsureSelection(); got != 22 {
		t.Errorf("EnsureSelection() overrode existing selection, got %d", got)
	}
}
