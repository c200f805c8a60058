package chat

import (
	"context"
	"log"
	"strings"
	"sync"

	"chat-console/models"
	"chat-console/pkg/apperrors"
)

// Gateway is the upstream boundary the controller talks to. Implementations
// return threads already flattened into chronological order.
type Gateway interface {
	ListConversations(ctx context.Context) ([]models.Conversation, error)
	FetchThread(ctx context.Context, userID int64) ([]models.Message, error)
	SendMessage(ctx context.Context, userID int64, text string) (models.Message, error)
}

// Controller owns the inbox view state: the conversation set, the active
// selection, the materialized thread and the compose box. It is the only
// component that mutates any of them.
//
// Every thread fetch is tagged with a generation number and the selection it
// was issued for; the result is committed only if both still match when it
// resolves. A slower fetch for a conversation the user has already clicked
// away from is silently dropped instead of overwriting the visible thread.
type Controller struct {
	gateway Gateway
	store   *Store

	mu          sync.Mutex
	thread      []models.Message
	compose     string
	loadingList bool
	sending     bool
	fetchGen    uint64
	notice      string
}

// Snapshot is the view model handed to the UI layer. It is a copy; the UI
// never holds references into controller-owned state.
type Snapshot struct {
	Conversations []models.Conversation
	SelectedID    int64
	Thread        []models.Message
	IsLoadingList bool
	IsSending     bool
	ComposeText   string
	Notice        string
}

func NewController(gateway Gateway, store *Store) *Controller {
	return &Controller{
		gateway: gateway,
		store:   store,
	}
}

// Activate loads the conversation list, establishes a default selection if
// none exists, and loads that conversation's thread. On failure the prior
// state is left intact and a notice is recorded.
func (c *Controller) Activate(ctx context.Context) error {
	c.mu.Lock()
	c.loadingList = true
	c.mu.Unlock()

	conversations, err := c.gateway.ListConversations(ctx)

	c.mu.Lock()
	c.loadingList = false
	if err != nil {
		c.notice = "Could not load conversations"
		c.mu.Unlock()
		log.Printf("❌ Conversation list fetch failed: %v", err)
		return err
	}
	c.notice = ""
	c.mu.Unlock()

	c.store.Replace(conversations)
	selected := c.store.EnsureSelection()
	if selected == 0 {
		return nil
	}
	return c.loadThread(ctx, selected, 0)
}

// Refresh re-fetches the conversation list, keeping the current selection.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.loadingList = true
	c.mu.Unlock()

	conversations, err := c.gateway.ListConversations(ctx)

	c.mu.Lock()
	c.loadingList = false
	if err != nil {
		c.notice = "Could not refresh conversations"
		c.mu.Unlock()
		log.Printf("❌ Conversation list refresh failed: %v", err)
		return err
	}
	c.notice = ""
	c.mu.Unlock()

	c.store.Replace(conversations)
	return nil
}

// SelectConversation switches the active conversation and loads its thread.
// Re-selecting the current conversation does nothing; no redundant fetch is
// issued.
func (c *Controller) SelectConversation(ctx context.Context, userID int64) error {
	prev := c.store.Selected()
	if !c.store.Select(userID) {
		return nil
	}
	return c.loadThread(ctx, userID, prev)
}

// loadThread fetches and commits the thread for userID, unless the
// selection (or a newer fetch) supersedes it first. On failure the
// selection rolls back to prev so the user can retry the same click;
// the visible thread is left untouched either way.
func (c *Controller) loadThread(ctx context.Context, userID int64, prev int64) error {
	c.mu.Lock()
	c.fetchGen++
	gen := c.fetchGen
	c.mu.Unlock()

	msgs, err := c.gateway.FetchThread(ctx, userID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.fetchGen || c.store.Selected() != userID {
		// Stale result: the user moved on while this fetch was in flight.
		log.Printf("🔄 Discarding stale thread fetch for user %d", userID)
		return nil
	}
	if err != nil {
		c.notice = "Could not load messages"
		c.store.Select(prev)
		log.Printf("❌ Thread fetch failed for user %d: %v", userID, err)
		return err
	}
	c.thread = msgs
	c.notice = ""
	return nil
}

// SetComposeText updates the compose box.
func (c *Controller) SetComposeText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.compose = text
}

// Submit sends the compose text to the selected conversation. It is a no-op
// when the trimmed text is empty, nothing is selected, or a send is already
// pending. Sends are serialized per conversation so confirmed messages
// cannot land out of order. The compose box is cleared only on success.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	text := strings.TrimSpace(c.compose)
	if text == "" {
		c.mu.Unlock()
		return nil
	}
	if c.sending {
		c.mu.Unlock()
		return nil
	}
	userID := c.store.Selected()
	if userID == 0 {
		c.mu.Unlock()
		return nil
	}
	c.sending = true
	c.mu.Unlock()

	msg, err := c.gateway.SendMessage(ctx, userID, text)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.sending = false
	if err != nil {
		c.notice = "Message was not sent"
		log.Printf("❌ Send failed for user %d: %v", userID, err)
		return err
	}
	if c.store.Selected() == userID {
		c.thread = appendOrdered(c.thread, msg)
		c.compose = ""
	}
	c.notice = ""
	return nil
}

// ValidateCompose reports whether text would survive Submit's guard.
func ValidateCompose(text string) error {
	if strings.TrimSpace(text) == "" {
		return &apperrors.ValidationError{Field: "message", Reason: "must not be empty"}
	}
	return nil
}

// Snapshot returns a copy of the current view state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	thread := make([]models.Message, len(c.thread))
	copy(thread, c.thread)
	return Snapshot{
		Conversations: c.store.List(),
		SelectedID:    c.store.Selected(),
		Thread:        thread,
		IsLoadingList: c.loadingList,
		IsSending:     c.sending,
		ComposeText:   c.compose,
		Notice:        c.notice,
	}
}

// appendOrdered appends a confirmed message. The server assigns timestamps,
// so the new message is normally the latest and a plain append suffices.
// That is verified, not assumed: an out-of-order timestamp triggers a full
// re-sort under the same ordering rule as Flatten.
func appendOrdered(thread []models.Message, msg models.Message) []models.Message {
	out := append(thread, msg)
	if n := len(out); n > 1 {
		prev, last := out[n-2], out[n-1]
		inOrder := prev.CreatedAt.Before(last.CreatedAt) ||
			(prev.CreatedAt.Time.Equal(last.CreatedAt.Time) && prev.ID < last.ID)
		if !inOrder {
			SortMessages(out)
		}
	}
	return out
}
