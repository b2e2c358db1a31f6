package service

import (
	"github.com/Liamshmuel20/Rant.GO/model"
)

func (s *Store) CreateNotification(n *model.Notification) error {
	return s.db.Create(n).Error
}

func (s *Store) GetNotification(id string) (*model.Notification, error) {
	var n model.Notification
	return one(&n, s.db.First(&n, "id = ?", id))
}

func (s *Store) ListNotificationsForUser(email string, limit int) ([]*model.Notification, error) {
	var notifications []*model.Notification
	q := s.db.Where("user_email = ?", email).Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&notifications).Error
	return notifications, err
}

func (s *Store) MarkNotificationRead(id string) error {
	return s.db.Model(&model.Notification{}).Where("id = ?", id).Update("is_read", true).Error
}

func (s *Store) MarkAllNotificationsRead(email string) error {
	return s.db.Model(&model.Notification{}).
		Where("user_email = ? AND is_read = ?", email, false).
		Update("is_read", true).Error
}

func (s *Store) DeleteNotification(id string) error {
	return s.db.Delete(&model.Notification{}, "id = ?", id).Error
}

func (s *Store) CountUnreadNotifications(email string) (int64, error) {
	var n int64
	err := s.db.Model(&model.Notification{}).
		Where("user_email = ? AND is_read = ?", email, false).
		Count(&n).Error
	return n, err
}

func (s *Store) CreateChatMessage(m *model.ChatMessage) error {
	return s.db.Create(m).Error
}

// ListChatMessages returns a contract's messages oldest first, the
// order the chat renders them in.
func (s *Store) ListChatMessages(contractID string) ([]*model.ChatMessage, error) {
	var messages []*model.ChatMessage
	err := s.db.Where("contract_id = ?", contractID).Order("created_at asc").Find(&messages).Error
	return messages, err
}
