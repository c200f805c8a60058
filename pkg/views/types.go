package views

type InboxView struct {
	Conversations []ConversationView
	SelectedID    int64
	Thread        []MessageView
	ComposeText   string
	IsSending     bool
	Notice        string
	UserEmail     string
}

type ConversationView struct {
	UserID    int64
	Name      string
	Avatar    string
	Preview   string
	DateLabel string
	Active    bool
}

type MessageView struct {
	ID        int64
	Text      string
	TimeLabel string
	IsSender  bool
}
