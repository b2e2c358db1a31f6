package model

import (
	"time"
)

// SystemSender is the sender address of automated chat messages.
const SystemSender = "system@rantgo.com"

// ChatMessage is one message in a contract's chat. Append-only; the
// chat is writable only while the owning contract is active, except
// for system messages posted by lifecycle transitions.
type ChatMessage struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	ContractID    string    `json:"contract_id" gorm:"index;not null"`
	SenderEmail   string    `json:"sender_email"`
	ReceiverEmail string    `json:"receiver_email"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsSystem reports whether the message was posted by the platform.
func (m *ChatMessage) IsSystem() bool {
	return m.SenderEmail == SystemSender
}
