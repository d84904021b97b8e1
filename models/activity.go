package models

import "time"

const (
	ActivityFriendRequestSent     = "friend_request_sent"
	ActivityFriendRequestAccepted = "friend_request_accepted"
	ActivityFriendRequestRejected = "friend_request_rejected"
)

// UserActivity - журнал действий пользователя, только добавление
type UserActivity struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       int64     `gorm:"index" json:"user_id"`
	ActivityType string    `gorm:"size:50" json:"activity_type"`
	Timestamp    time.Time `gorm:"index" json:"timestamp"`
	Details      string    `gorm:"type:text" json:"details"`
}

func (UserActivity) TableName() string {
	return "user_activities"
}
