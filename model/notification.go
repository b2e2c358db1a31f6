package model

import (
	"time"
)

// Notification types
const (
	NotificationRentalRequest = "rental_request"
	NotificationApproval      = "approval"
	NotificationStatusUpdate  = "status_update"
	NotificationPayment       = "payment"
)

// Notification is an append-only signal record for one recipient.
// Recipients may mark it read or delete it; nothing else mutates it.
type Notification struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserEmail string    `json:"user_email" gorm:"index;not null"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	RelatedID string    `json:"related_id,omitempty"`
	ActionURL string    `json:"action_url,omitempty"`
	IsRead    bool      `json:"is_read" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
