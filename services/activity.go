package services

import (
	"context"
	"fmt"
	"time"

	"socialnet/db"
	"socialnet/models"
)

// ActivityService - журнал действий пользователя.
// Записи только добавляются, изменение и удаление не предусмотрены.
type ActivityService struct{}

func NewActivityService() *ActivityService {
	return &ActivityService{}
}

// Record добавляет запись в журнал
func (as *ActivityService) Record(ctx context.Context, userID int64, activityType, details string) (*models.UserActivity, error) {
	if activityType == "" {
		return nil, fmt.Errorf("%w: activity type is required", ErrValidation)
	}

	activity := models.UserActivity{
		UserID:       userID,
		ActivityType: activityType,
		Timestamp:    time.Now(),
		Details:      details,
	}
	if err := db.GetWriteDB(ctx).Create(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// ListForUser возвращает все записи пользователя, свежие сверху
func (as *ActivityService) ListForUser(ctx context.Context, userID int64) ([]models.UserActivity, error) {
	var activities []models.UserActivity
	err := db.GetReadOnlyDB(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Find(&activities).Error
	return activities, err
}
