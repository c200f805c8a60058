package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"chat-console/models"
)

const (
	conversationListTTL = 30 * time.Second
	conversationListKey = "chats:list"
)

// Cache is a thin Redis layer in front of the upstream chat API. When Redis
// is unreachable the console keeps working; every method degrades to a miss
// or a no-op.
type Cache struct {
	client  *redis.Client
	enabled bool
}

type Options struct {
	Addr     string
	Username string
	Password string
}

func New(opts Options) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Username: opts.Username,
		Password: opts.Password,
	})

	c := &Cache{client: client}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Printf("Redis connection failed, caching disabled: %v", err)
		return c
	}

	c.enabled = true
	log.Println("Redis connected successfully")
	return c
}

// GetConversations returns the cached conversation list, miss on any error.
func (c *Cache) GetConversations(ctx context.Context) ([]models.Conversation, bool) {
	if !c.enabled {
		return nil, false
	}

	data, err := c.client.Get(ctx, conversationListKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("⚠️ Cache read failed for conversation list: %v", err)
		}
		return nil, false
	}

	var conversations []models.Conversation
	if err := json.Unmarshal(data, &conversations); err != nil {
		log.Printf("⚠️ Dropping undecodable conversation list cache entry: %v", err)
		c.InvalidateConversations(ctx)
		return nil, false
	}

	log.Printf("✅ Cache HIT for conversation list (%d entries)", len(conversations))
	return conversations, true
}

// SetConversations stores the conversation list with a short TTL. The list
// is replaced wholesale on every fetch, so a stale entry only delays new
// activity by the TTL, never corrupts ordering.
func (c *Cache) SetConversations(ctx context.Context, conversations []models.Conversation) {
	if !c.enabled {
		return
	}
	data, err := json.Marshal(conversations)
	if err != nil {
		log.Printf("⚠️ Failed to encode conversation list for cache: %v", err)
		return
	}
	if err := c.client.Set(ctx, conversationListKey, data, conversationListTTL).Err(); err != nil {
		log.Printf("⚠️ Failed to cache conversation list: %v", err)
	}
}

// InvalidateConversations drops the cached list, used after a send changes
// a conversation's preview server-side.
func (c *Cache) InvalidateConversations(ctx context.Context) {
	if !c.enabled {
		return
	}
	if err := c.client.Del(ctx, conversationListKey).Err(); err != nil {
		log.Printf("⚠️ Failed to invalidate conversation list cache: %v", err)
	}
}
