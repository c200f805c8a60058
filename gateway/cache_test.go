package gateway

import (
	"context"
	"sync"
	"testing"

	"chat-console/models"
)

type fakeListCache struct {
	mu            sync.Mutex
	conversations []models.Conversation
	stored        bool
}

func (f *fakeListCache) GetConversations(ctx context.Context) ([]models.Conversation, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.conversations, f.stored
}

func (f *fakeListCache) SetConversations(ctx context.Context, conversations []models.Conversation) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conversations = conversations
	f.stored = true
}

func (f *fakeListCache) InvalidateConversations(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conversations = nil
	f.stored = false
}

type countingGateway struct {
	mu        sync.Mutex
	listCalls int
	sendCalls int
}

func (g *countingGateway) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listCalls++
	return []models.Conversation{{ID: 1, UserID: 11, Name: "Ana"}}, nil
}

func (g *countingGateway) FetchThread(ctx context.Context, userID int64) ([]models.Message, error) {
	return nil, nil
}

func (g *countingGateway) SendMessage(ctx context.Context, userID int64, text string) (models.Message, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sendCalls++
	return models.Message{ID: 9, ChatID: userID, Text: text}, nil
}

func TestCachingClientServesListFromCache(t *testing.T) {
	inner := &countingGateway{}
	client := NewCachingClient(inner, &fakeListCache{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		conversations, err := client.ListConversations(ctx)
		if err != nil {
			t.Fatalf("ListConversations() error = %v", err)
		}
		if len(conversations) != 1 || conversations[0].UserID != 11 {
			t.Fatalf("conversations = %+v", conversations)
		}
	}

	if inner.listCalls != 1 {
		t.Errorf("upstream list calls = %d, want 1 (cache should absorb repeats)", inner.listCalls)
	}
}

func TestCachingClientInvalidatesListOnSend(t *testing.T) {
	inner := &countingGateway{}
	cache := &fakeListCache{}
	client := NewCachingClient(inner, cache)
	ctx := context.Background()

	if _, err := client.ListConversations(ctx); err != nil {
		t.Fatalf("ListConversations() error = %v", err)
	}
	if _, err := client.SendMessage(ctx, 11, "hello"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	// The send changed the conversation's preview server-side; the next
	// list fetch must go upstream again.
	if _, err := client.ListConversations(ctx); err != nil {
		t.Fatalf("ListConversations() error = %v", err)
	}
	if inner.listCalls != 2 {
		t.Errorf("upstream list calls = %d, want 2 after invalidation", inner.listCalls)
	}
}
