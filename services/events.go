package services

import "time"

// FriendAction - тип перехода жизненного цикла заявки.
// Строки совпадают с типами записей журнала активности.
type FriendAction string

const (
	ActionSent     FriendAction = "friend_request_sent"
	ActionAccepted FriendAction = "friend_request_accepted"
	ActionRejected FriendAction = "friend_request_rejected"
)

// FriendEvent - событие жизненного цикла заявки. Движок отдает его
// подписчикам синхронно после коммита транзакции.
type FriendEvent struct {
	Action     FriendAction `json:"action"`
	SenderID   int64        `json:"sender_id"`
	ReceiverID int64        `json:"receiver_id"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// ActorID - кто совершил действие: отправку делает sender,
// accept/reject делает receiver заявки
func (e FriendEvent) ActorID() int64 {
	if e.Action == ActionSent {
		return e.SenderID
	}
	return e.ReceiverID
}

// PushTargetID - кому адресован push: о новой заявке узнает получатель,
// об accept/reject - отправитель заявки
func (e FriendEvent) PushTargetID() int64 {
	if e.Action == ActionSent {
		return e.ReceiverID
	}
	return e.SenderID
}
