package messaging

import "github.com/google/uuid"

// Message is one direct message between two users. CreatedAt keeps the
// backend's ISO string form; callers format it for display.
type Message struct {
	MessageID     uuid.UUID `json:"message_id"`
	SenderID      uuid.UUID `json:"sender_id"`
	RecipientID   uuid.UUID `json:"recipient_id"`
	SenderName    string    `json:"sender_name"`
	RecipientName string    `json:"recipient_name"`
	Content       string    `json:"content"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     string    `json:"created_at"`
}

// ConversationSummary is one row in the conversation list, newest first.
type ConversationSummary struct {
	UserID          uuid.UUID `json:"user_id"`
	UserName        string    `json:"user_name"`
	UserRole        string    `json:"user_role"`
	LastMessage     string    `json:"last_message"`
	LastMessageTime string    `json:"last_message_time"`
	UnreadCount     int       `json:"unread_count"`
}

// UnreadByUser breaks the unread total down per sender.
type UnreadByUser struct {
	UserID      uuid.UUID `json:"user_id"`
	UserName    string    `json:"user_name"`
	UserRole    string    `json:"user_role"`
	UnreadCount int       `json:"unread_count"`
}

// UnreadCount is the badge payload polled by UnreadWatcher.
type UnreadCount struct {
	TotalUnread  int            `json:"total_unread"`
	UnreadByUser []UnreadByUser `json:"unread_by_user"`
}
