package models

import "time"

// ConversationPreview — превью диалога для списка чатов:
// собеседник, последнее сообщение, счётчик непрочитанного.
type ConversationPreview struct {
	ID          string    `json:"id"`
	PeerID      int64     `json:"peer_id"`
	PeerName    string    `json:"peer_name"`
	PeerAvatar  string    `json:"peer_avatar,omitempty"`
	LastMessage string    `json:"last_message"`
	LastSentAt  time.Time `json:"last_sent_at"`
	UnreadCount int       `json:"unread_count"`
}

type ConversationsPage struct {
	Conversations []ConversationPreview `json:"conversations"`
	NextCursor    string                `json:"next_cursor,omitempty"`
}
