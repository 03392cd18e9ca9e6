package models

import "time"

/************************************************
/**** MARK: MESSAGE STATUS ****/
/************************************************/
const MESSAGE_STATUS_PENDING = "pending"
const MESSAGE_STATUS_PROCESSING = "processing"
const MESSAGE_STATUS_DONE = "done"

/************************************************
/**** MARK: MESSAGE SENDERS ****/
/************************************************/
const MESSAGE_SENDER_USER = "user"
const MESSAGE_SENDER_REP = "rep"
const MESSAGE_SENDER_ASSISTANT = "assistant"

// Message is one inbound or outbound text in a conversation. Inbound
// messages enter as "pending" and are picked up by the messages worker
// after a short debounce window.
type Message struct {
	ID             int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	ConversationID int64      `gorm:"not null;index" json:"conversation_id"`
	MessageID      string     `gorm:"default:'';index" json:"message_id"` // provider id or generated uuid
	Sender         string     `gorm:"not null;default:'user'" json:"sender"`
	Text           string     `gorm:"type:text" json:"text"`
	Status         string     `gorm:"not null;default:'pending';index" json:"status"`
	ScheduledAt    *time.Time `gorm:"index" json:"scheduled_at"`
	ProcessedAt    *time.Time `json:"processed_at"`
	CreatedAt      *time.Time `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}
