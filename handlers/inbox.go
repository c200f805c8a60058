package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"chat-console/chat"
	"chat-console/pkg/apperrors"
	"chat-console/pkg/auth"
	"chat-console/pkg/template"
	"chat-console/pkg/views"
)

// Handler serves the inbox UI. All chat state lives in the controller; the
// handlers only translate HTTP into controller actions and render partials.
type Handler struct {
	controller *chat.Controller
	renderer   *template.Renderer
}

func New(controller *chat.Controller, renderer *template.Renderer) *Handler {
	return &Handler{
		controller: controller,
		renderer:   renderer,
	}
}

// Inbox renders the full console page: conversation list, default-selected
// thread, compose box.
func (h *Handler) Inbox(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Activate(r.Context()); err != nil {
		log.Printf("⚠️ Inbox activation incomplete: %v", err)
		// Fall through: the snapshot carries the notice and prior state.
	}

	view := views.ToInboxView(h.controller.Snapshot())
	if user := auth.UserFromContext(r.Context()); user != nil {
		view.UserEmail = user.Email
	}

	if isPartialRequest(r) {
		h.renderer.Render(w, "conversation-list", view)
		return
	}

	h.renderer.Render(w, "layout.html", view)
}

// ConversationList re-fetches and renders the list partial.
func (h *Handler) ConversationList(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Refresh(r.Context()); err != nil {
		log.Printf("⚠️ Conversation list refresh failed: %v", err)
	}

	view := views.ToInboxView(h.controller.Snapshot())
	h.renderer.Render(w, "conversation-list", view)
}

// Chat switches the active conversation and renders its thread.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid user_id", http.StatusBadRequest)
		return
	}

	if err := h.controller.SelectConversation(r.Context(), userID); err != nil {
		log.Printf("⚠️ Selecting conversation %d failed: %v", userID, err)
	}

	view := views.ToInboxView(h.controller.Snapshot())
	h.renderer.Render(w, "chat-view", view)
}

// SendMessage submits the compose form and renders the updated thread.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	text := r.FormValue("message")
	if err := chat.ValidateCompose(text); err != nil {
		log.Printf("❌ Rejected empty message")
		http.Error(w, "Empty message", http.StatusBadRequest)
		return
	}

	h.controller.SetComposeText(text)
	if err := h.controller.Submit(r.Context()); err != nil {
		log.Printf("❌ Send failed: %v", err)
	}

	view := views.ToInboxView(h.controller.Snapshot())
	h.renderer.Render(w, "chat-view", view)
}

// State exposes the view model as JSON for scripted clients.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	snap := h.controller.Snapshot()
	apperrors.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"conversations":            snap.Conversations,
		"selected_conversation_id": snap.SelectedID,
		"thread":                   snap.Thread,
		"is_loading_list":          snap.IsLoadingList,
		"is_sending":               snap.IsSending,
		"compose_text":             snap.ComposeText,
		"notice":                   snap.Notice,
	})
}

// isPartialRequest reports whether the request came from the htmx layer and
// only wants a fragment back.
func isPartialRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}
