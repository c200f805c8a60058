package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"chat-console/chat"
	"chat-console/models"
	"chat-console/pkg/apperrors"
)

const fetchRetries = 3

// Client talks to the upstream chat API over REST. Threads come back from
// the server bucketed by calendar date; the client flattens them into
// chronological order before handing them to anyone else.
type Client struct {
	baseURL    string
	apiToken   string
	httpClient *http.Client
}

// ConversationMeta is the counterpart header the thread endpoint returns
// alongside the messages.
type ConversationMeta struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

type conversationListResponse struct {
	Data []models.Conversation `json:"data"`
}

type threadResponse struct {
	Data map[string][]models.Message `json:"data"`
	Chat ConversationMeta            `json:"chat"`
}

type sendResponse struct {
	Messages map[string][]models.Message `json:"messages"`
}

type sendRequest struct {
	Text string `json:"text"`
}

func NewClient(baseURL, apiToken string) *Client {
	return &Client{
		baseURL:  baseURL,
		apiToken: apiToken,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ListConversations fetches the chat list in the server's recency order.
func (c *Client) ListConversations(ctx context.Context) ([]models.Conversation, error) {
	var resp conversationListResponse
	if err := c.getWithRetry(ctx, "/chats", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// FetchThread fetches a conversation's date-bucketed history and flattens
// it into a single ordered sequence.
func (c *Client) FetchThread(ctx context.Context, userID int64) ([]models.Message, error) {
	var resp threadResponse
	path := fmt.Sprintf("/chats/messages/%d", userID)
	if err := c.getWithRetry(ctx, path, &resp); err != nil {
		return nil, err
	}
	return chat.Flatten(resp.Data), nil
}

// SendMessage submits text to a conversation. The server responds with its
// own bucketed view of the updated thread rather than echoing one message.
// The server clock is the timestamp authority: the newest message of the
// flattened response is the confirmed message, whatever the local clock
// says. Sends are never retried; a duplicate message is worse than a
// failed one.
func (c *Client) SendMessage(ctx context.Context, userID int64, text string) (models.Message, error) {
	path := fmt.Sprintf("/chats/messages/%d", userID)
	body, err := json.Marshal(sendRequest{Text: text})
	if err != nil {
		return models.Message{}, &apperrors.TransportError{Op: "send", URL: path, Err: err}
	}

	var resp sendResponse
	if err := c.do(ctx, http.MethodPost, path, bytes.NewReader(body), &resp); err != nil {
		return models.Message{}, err
	}

	msg, ok := chat.Newest(chat.Flatten(resp.Messages))
	if !ok {
		return models.Message{}, &apperrors.TransportError{
			Op:  "send",
			URL: path,
			Err: fmt.Errorf("response contained no messages"),
		}
	}
	return msg, nil
}

// getWithRetry runs a GET with a short bounded retry, like every other
// upstream call in this codebase. Only reads are retried.
func (c *Client) getWithRetry(ctx context.Context, path string, out interface{}) error {
	var lastErr error
	for attempt := 0; attempt < fetchRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return &apperrors.TransportError{Op: "get", URL: path, Err: ctx.Err()}
			case <-time.After(time.Duration(attempt) * 500 * time.Millisecond):
			}
		}
		if err := c.do(ctx, http.MethodGet, path, nil, out); err != nil {
			lastErr = err
			log.Printf("⚠️ GET %s attempt %d failed: %v", path, attempt+1, err)
			continue
		}
		return nil
	}
	return lastErr
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return &apperrors.TransportError{Op: method, URL: url, Err: err}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &apperrors.TransportError{Op: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return &apperrors.TransportError{Op: method, URL: url, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &apperrors.TransportError{Op: method, URL: url, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
