package services

import (
	"context"
	"errors"
	"time"

	"socialnet/db"
	"socialnet/models"

	"gorm.io/gorm"
)

// Последняя группа уведомлений ограничена, чтобы не отдавать всю историю
const lastWeekNotificationsLimit = 50

type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// UserBrief - краткие данные пользователя в уведомлении
type UserBrief struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NotificationView - уведомление в ответе API
type NotificationView struct {
	FromUserData UserBrief  `json:"from_user_data"`
	ToUserData   UserBrief  `json:"to_user_data"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Type         string     `json:"notification_type"`
	ReadAt       *time.Time `json:"read_at"`
}

// GroupedNotifications - уведомления, сгруппированные по давности
type GroupedNotifications struct {
	Today     []NotificationView `json:"today"`
	Yesterday []NotificationView `json:"yesterday"`
	Last7Days []NotificationView `json:"last_7_days"`
}

// HandleFriendEvent обновляет или создает уведомление по событию заявки.
// Уведомляем только об отправке; по тройке (type, from, to) держится одна
// запись - повторное событие поднимает ее наверх свежим created_at.
func (ns *NotificationService) HandleFriendEvent(ctx context.Context, event FriendEvent) error {
	if event.Action != ActionSent {
		return nil
	}
	if event.SenderID == event.ReceiverID {
		// Событие на самого себя уведомления не создает
		return nil
	}

	var notification models.Notification
	err := db.GetWriteDB(ctx).
		Where("type = ? AND from_user_id = ? AND to_user_id = ?",
			models.NotificationFriendRequestSent, event.SenderID, event.ReceiverID).
		First(&notification).Error
	switch {
	case err == nil:
		return db.GetWriteDB(ctx).Model(&notification).
			Update("created_at", time.Now()).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		notification = models.Notification{
			Type:       models.NotificationFriendRequestSent,
			FromUserID: event.SenderID,
			ToUserID:   event.ReceiverID,
		}
		return db.GetWriteDB(ctx).Create(&notification).Error
	default:
		return err
	}
}

// ListGrouped возвращает уведомления пользователя по группам:
// сегодня, вчера и последние 7 дней (до вчерашнего, не больше 50)
func (ns *NotificationService) ListGrouped(ctx context.Context, userID int64) (*GroupedNotifications, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterdayStart := todayStart.AddDate(0, 0, -1)
	weekAgoStart := todayStart.AddDate(0, 0, -7)

	today, err := ns.listBetween(ctx, userID, todayStart, now.Add(time.Second), 0)
	if err != nil {
		return nil, err
	}
	yesterday, err := ns.listBetween(ctx, userID, yesterdayStart, todayStart, 0)
	if err != nil {
		return nil, err
	}
	lastWeek, err := ns.listBetween(ctx, userID, weekAgoStart, yesterdayStart, lastWeekNotificationsLimit)
	if err != nil {
		return nil, err
	}

	return &GroupedNotifications{Today: today, Yesterday: yesterday, Last7Days: lastWeek}, nil
}

type notificationRow struct {
	Type         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ReadAt       *time.Time
	FromUserID   int64
	FromUsername string
	FromEmail    string
	ToUserID     int64
	ToUsername   string
	ToEmail      string
}

func (ns *NotificationService) listBetween(ctx context.Context, userID int64, from, to time.Time, limit int) ([]NotificationView, error) {
	query := db.GetReadOnlyDB(ctx).
		Table("notifications n").
		Joins("JOIN users fu ON fu.id = n.from_user_id").
		Joins("JOIN users tu ON tu.id = n.to_user_id").
		Where("n.to_user_id = ? AND n.from_user_id != ?", userID, userID).
		Where("n.created_at >= ? AND n.created_at < ?", from, to).
		Select(`n.type, n.created_at, n.updated_at, n.read_at,
			fu.id AS from_user_id, fu.username AS from_username, fu.email AS from_email,
			tu.id AS to_user_id, tu.username AS to_username, tu.email AS to_email`).
		Order("n.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var rows []notificationRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]NotificationView, 0, len(rows))
	for _, r := range rows {
		views = append(views, NotificationView{
			FromUserData: UserBrief{UserID: r.FromUserID, Username: r.FromUsername, Email: r.FromEmail},
			ToUserData:   UserBrief{UserID: r.ToUserID, Username: r.ToUsername, Email: r.ToEmail},
			CreatedAt:    r.CreatedAt,
			UpdatedAt:    r.UpdatedAt,
			Type:         r.Type,
			ReadAt:       r.ReadAt,
		})
	}
	return views, nil
}

// MarkAllRead помечает прочитанными все непрочитанные уведомления пользователя
func (ns *NotificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return db.GetWriteDB(ctx).Model(&models.Notification{}).
		Where("to_user_id = ? AND read_at IS NULL", userID).
		Update("read_at", time.Now()).Error
}
