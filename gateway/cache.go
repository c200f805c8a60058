package gateway

import (
	"context"

	"golang.org/x/sync/singleflight"

	"chat-console/chat"
	"chat-console/models"
)

// ListCache is what the caching decorator needs from the cache layer.
type ListCache interface {
	GetConversations(ctx context.Context) ([]models.Conversation, bool)
	SetConversations(ctx context.Context, conversations []models.Conversation)
	InvalidateConversations(ctx context.Context)
}

// CachingClient wraps a Gateway with a short-lived conversation-list cache.
// Thread fetches always go to the upstream. A freshly selected conversation
// must show current messages, and the stale-fetch guard in the controller
// assumes fetch results reflect the server. Sends invalidate the list entry
// because they change the conversation's last-message preview.
type CachingClient struct {
	inner chat.Gateway
	cache ListCache
	group singleflight.Group
}

func NewCachingClient(inner chat.Gateway, cache ListCache) *CachingClient {
	return &CachingClient{inner: inner, cache: cache}
}

func (c *CachingClient) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	if conversations, ok := c.cache.GetConversations(ctx); ok {
		return conversations, nil
	}

	// Collapse concurrent misses into one upstream call.
	v, err, _ := c.group.Do("conversations", func() (interface{}, error) {
		conversations, err := c.inner.ListConversations(ctx)
		if err != nil {
			return nil, err
		}
		c.cache.SetConversations(ctx, conversations)
		return conversations, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Conversation), nil
}

func (c *CachingClient) FetchThread(ctx context.Context, userID int64) ([]models.Message, error) {
	return c.inner.FetchThread(ctx, userID)
}

func (c *CachingClient) SendMessage(ctx context.Context, userID int64, text string) (models.Message, error) {
	msg, err := c.inner.SendMessage(ctx, userID, text)
	if err != nil {
		return models.Message{}, err
	}
	c.cache.InvalidateConversations(ctx)
	return msg, nil
}
