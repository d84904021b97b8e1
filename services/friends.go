package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"socialnet/config"
	"socialnet/db"
	"socialnet/models"

	"gorm.io/gorm"
)

// FriendRequestService - движок жизненного цикла заявок в друзья.
// Все мутации выполняются в транзакции: проверка и запись одним куском,
// уникальная пара (sender, receiver) страхует от гонки одинаковых заявок.
type FriendRequestService struct {
	notifier *NotificationService
	activity *ActivityService
}

func NewFriendRequestService() *FriendRequestService {
	return &FriendRequestService{
		notifier: NewNotificationService(),
		activity: NewActivityService(),
	}
}

// Send отправляет заявку от actor к target.
// Порядок проверок: существование получателя, блокировка, лимит отправок,
// кулдаун после отказа, дубликат pending. Встречная заявка target->actor
// отправку не блокирует и не превращается в дружбу автоматически.
func (fs *FriendRequestService) Send(ctx context.Context, actorID, targetID int64) error {
	if actorID == targetID {
		return fmt.Errorf("%w: cannot send friend request to yourself", ErrValidation)
	}

	var target models.User
	if err := db.GetReadOnlyDB(ctx).First(&target, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: receiver does not exist", ErrNotFound)
		}
		return err
	}

	if err := fs.checkNotBlocked(ctx, actorID, targetID); err != nil {
		return err
	}

	var event FriendEvent
	err := db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		// Скользящее окно: не больше N заявок за последнюю минуту
		var sentCount int64
		if err := tx.Model(&models.FriendRequest{}).
			Where("sender_id = ? AND created_at >= ?", actorID, now.Add(-time.Minute)).
			Count(&sentCount).Error; err != nil {
			return err
		}
		if sentCount >= int64(config.MaxRequestsPerMinute()) {
			return fmt.Errorf("%w: too many friend requests, try later", ErrRateLimited)
		}

		// Кулдаун после отказа, считается от updated_at отклоненной заявки
		var rejectedCount int64
		if err := tx.Model(&models.FriendRequest{}).
			Where("sender_id = ? AND receiver_id = ? AND status = ? AND updated_at >= ?",
				actorID, targetID, models.StatusRejected, now.Add(-config.RejectionCooldown())).
			Count(&rejectedCount).Error; err != nil {
			return err
		}
		if rejectedCount > 0 {
			return fmt.Errorf("%w: request was rejected recently, try later", ErrRateLimited)
		}

		var existing models.FriendRequest
		err := tx.Where("sender_id = ? AND receiver_id = ?", actorID, targetID).
			First(&existing).Error
		switch {
		case err == nil:
			// Переход в pending разрешен только из терминального статуса,
			// повторная отправка поверх pending - дубликат
			if !existing.Status.CanTransitionTo(models.StatusPending) {
				return fmt.Errorf("%w: friend request already sent", ErrConflict)
			}
			// Уникальная пара не допускает второй строки,
			// переиспользуем существующую
			existing.Status = models.StatusPending
			existing.CreatedAt = now
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			request := models.FriendRequest{
				SenderID:   actorID,
				ReceiverID: targetID,
				Status:     models.StatusPending,
			}
			if err := tx.Create(&request).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					// Проигравший гонку одинаковых отправок
					return fmt.Errorf("%w: friend request already sent", ErrConflict)
				}
				return err
			}
		default:
			return err
		}

		event = FriendEvent{Action: ActionSent, SenderID: actorID, ReceiverID: targetID, OccurredAt: now}
		return nil
	})
	if err != nil {
		return err
	}

	fs.consumeEvent(ctx, event)
	return nil
}

// Accept принимает ожидающую заявку от counterparty, адресованную actor
func (fs *FriendRequestService) Accept(ctx context.Context, actorID, counterpartyID int64) error {
	if err := fs.checkNotBlocked(ctx, actorID, counterpartyID); err != nil {
		return err
	}

	err := db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		var request models.FriendRequest
		err := tx.Where("sender_id = ? AND receiver_id = ? AND status = ?",
			counterpartyID, actorID, models.StatusPending).
			First(&request).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no pending request found", ErrNotFound)
			}
			return err
		}
		if !request.Status.CanTransitionTo(models.StatusAccepted) {
			return fmt.Errorf("%w: request is not pending", ErrInvalidState)
		}
		request.Status = models.StatusAccepted
		return tx.Save(&request).Error
	})
	if err != nil {
		return err
	}

	fs.consumeEvent(ctx, FriendEvent{
		Action: ActionAccepted, SenderID: counterpartyID, ReceiverID: actorID, OccurredAt: time.Now(),
	})
	return nil
}

// Reject отклоняет заявку от counterparty, адресованную actor.
// Статус заявки не проверяется: уже принятая или отклоненная заявка
// тоже переводится в rejected, в отличие от Accept.
func (fs *FriendRequestService) Reject(ctx context.Context, actorID, counterpartyID int64) error {
	if err := fs.checkNotBlocked(ctx, actorID, counterpartyID); err != nil {
		return err
	}

	err := db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		var request models.FriendRequest
		err := tx.Where("sender_id = ? AND receiver_id = ?", counterpartyID, actorID).
			First(&request).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: no pending request found", ErrNotFound)
			}
			return err
		}
		if !request.Status.CanTransitionTo(models.StatusRejected) {
			return fmt.Errorf("%w: request cannot be rejected", ErrInvalidState)
		}
		request.Status = models.StatusRejected
		return tx.Save(&request).Error
	})
	if err != nil {
		return err
	}

	fs.consumeEvent(ctx, FriendEvent{
		Action: ActionRejected, SenderID: counterpartyID, ReceiverID: actorID, OccurredAt: time.Now(),
	})
	return nil
}

// checkNotBlocked - actor не должен иметь блокировку на counterparty
func (fs *FriendRequestService) checkNotBlocked(ctx context.Context, actorID, counterpartyID int64) error {
	var blockedCount int64
	err := db.GetReadOnlyDB(ctx).Model(&models.BlockedUser{}).
		Where("blocked_by_id = ? AND blocked_user_id = ?", actorID, counterpartyID).
		Count(&blockedCount).Error
	if err != nil {
		return err
	}
	if blockedCount > 0 {
		return fmt.Errorf("%w: user has already been blocked", ErrInvalidState)
	}
	return nil
}

// consumeEvent раздает событие подписчикам: уведомления, журнал активности,
// шина событий для push. Доставка best-effort, ошибки здесь логируются
// и никогда не откатывают запись заявки.
func (fs *FriendRequestService) consumeEvent(ctx context.Context, event FriendEvent) {
	if event.Action == ActionSent {
		if err := fs.notifier.HandleFriendEvent(ctx, event); err != nil {
			log.Printf("notification dispatch failed for event %s: %v", event.Action, err)
		}
	}

	details := fmt.Sprintf("%s: sender %d, receiver %d", event.Action, event.SenderID, event.ReceiverID)
	if _, err := fs.activity.Record(ctx, event.ActorID(), string(event.Action), details); err != nil {
		log.Printf("activity record failed for event %s: %v", event.Action, err)
	}

	if err := PublishFriendEvent(ctx, event); err != nil {
		// RabbitMQ недоступен - пушим напрямую через WebSocket
		sendDirectFriendPush(event)
	}
}

// AcceptedFriendsQuery - друзья пользователя: отправители заявок,
// которые этот пользователь принял
func (fs *FriendRequestService) AcceptedFriendsQuery(ctx context.Context, userID int64) *gorm.DB {
	return db.GetReadOnlyDB(ctx).
		Table("users u").
		Joins("JOIN friend_requests fr ON fr.sender_id = u.id").
		Where("fr.receiver_id = ? AND fr.status = ?", userID, models.StatusAccepted).
		Select("u.id AS user_id, u.username, u.email")
}

// PendingIncomingQuery - входящие ожидающие заявки, свежие сверху
func (fs *FriendRequestService) PendingIncomingQuery(ctx context.Context, userID int64) *gorm.DB {
	return db.GetReadOnlyDB(ctx).
		Table("users u").
		Joins("JOIN friend_requests fr ON fr.sender_id = u.id").
		Where("fr.receiver_id = ? AND fr.status = ?", userID, models.StatusPending).
		Select("u.id AS user_id, u.username").
		Order("fr.created_at DESC")
}
