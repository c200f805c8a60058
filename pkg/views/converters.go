package views

import (
	"chat-console/chat"
	"chat-console/models"
)

// ToInboxView shapes a controller snapshot for the templates.
func ToInboxView(snap chat.Snapshot) InboxView {
	return InboxView{
		Conversations: toConversationViews(snap.Conversations, snap.SelectedID),
		SelectedID:    snap.SelectedID,
		Thread:        ToMessageViews(snap.Thread),
		ComposeText:   snap.ComposeText,
		IsSending:     snap.IsSending,
		Notice:        snap.Notice,
	}
}

func toConversationViews(conversations []models.Conversation, selectedID int64) []ConversationView {
	out := make([]ConversationView, len(conversations))
	for i, conv := range conversations {
		out[i] = ConversationView{
			UserID:    conv.UserID,
			Name:      conv.Name,
			Avatar:    conv.Avatar,
			Preview:   conv.LastMessage,
			DateLabel: conv.LastDate,
			Active:    conv.UserID == selectedID,
		}
	}
	return out
}

func ToMessageViews(msgs []models.Message) []MessageView {
	out := make([]MessageView, len(msgs))
	for i, msg := range msgs {
		label := msg.TimeLabel
		if label == "" && msg.CreatedAt.Valid {
			label = msg.CreatedAt.Time.Format("15:04")
		}
		out[i] = MessageView{
			ID:        msg.ID,
			Text:      msg.Text,
			TimeLabel: label,
			IsSender:  msg.IsSender,
		}
	}
	return out
}
