package models

import "time"

const (
	NotificationFriendRequestSent     = "friend_request_sent"
	NotificationFriendRequestAccepted = "friend_request_accepted"
)

// Notification - уведомление пользователю.
// По тройке (type, from_user_id, to_user_id) держим не больше одной
// "живой" записи: повторное событие обновляет created_at вместо вставки.
type Notification struct {
	ID         int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Type       string     `gorm:"size:100;index:notification_dedup_idx" json:"notification_type"`
	FromUserID int64      `gorm:"index:notification_dedup_idx" json:"from_user_id"`
	ToUserID   int64      `gorm:"index:notification_dedup_idx" json:"to_user_id"`
	ReadAt     *time.Time `json:"read_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
