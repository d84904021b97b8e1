package models

import "time"

// RequestStatus - статус заявки в друзья
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

// CanTransitionTo проверяет допустимость перехода статуса.
// Принять можно только ожидающую заявку, отклонить - заявку в любом статусе,
// вернуть в pending - только завершенную (повторная отправка переиспользует строку).
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	switch next {
	case StatusAccepted:
		return s == StatusPending
	case StatusRejected:
		return true
	case StatusPending:
		return s == StatusAccepted || s == StatusRejected
	}
	return false
}

// FriendRequest - заявка в друзья между двумя пользователями.
// Уникальный индекс по паре (sender_id, receiver_id): не больше одной
// записи в каждом направлении, accept/reject меняют существующую строку.
type FriendRequest struct {
	ID         int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	SenderID   int64         `gorm:"uniqueIndex:friend_request_pair_idx" json:"sender_id"`
	ReceiverID int64         `gorm:"uniqueIndex:friend_request_pair_idx" json:"receiver_id"`
	Status     RequestStatus `gorm:"size:10;default:pending" json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}

// BlockedUser - направленная блокировка одного пользователя другим.
// Записи создает внешний модуль блокировок, здесь читаем только.
type BlockedUser struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BlockedByID   int64     `gorm:"uniqueIndex:blocked_pair_idx" json:"blocked_by_id"`
	BlockedUserID int64     `gorm:"uniqueIndex:blocked_pair_idx" json:"blocked_user_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (BlockedUser) TableName() string {
	return "blocked_users"
}
