package handlers

import (
	"net/http"

	"socialnet/services"

	"github.com/gin-gonic/gin"
)

// notificationsListResponse - конверт с группами уведомлений
type notificationsListResponse struct {
	StatusCode int                         `json:"status_code"`
	Error      bool                        `json:"error"`
	Today      []services.NotificationView `json:"today"`
	Yesterday  []services.NotificationView `json:"yesterday"`
	Last7Days  []services.NotificationView `json:"last_7_days"`
	Message    string                      `json:"message"`
}

// NotificationsList - уведомления пользователя по группам давности
func NotificationsList(c *gin.Context) {
	userID := c.GetInt64("user_id")

	grouped, err := notificationService.ListGrouped(c.Request.Context(), userID)
	if err != nil {
		respond(c, http.StatusInternalServerError, true, nil, "Internal server error.")
		return
	}

	c.JSON(http.StatusOK, notificationsListResponse{
		StatusCode: http.StatusOK,
		Error:      false,
		Today:      grouped.Today,
		Yesterday:  grouped.Yesterday,
		Last7Days:  grouped.Last7Days,
	})
}

// NotificationsRead помечает все непрочитанные уведомления прочитанными
func NotificationsRead(c *gin.Context) {
	userID := c.GetInt64("user_id")

	if err := notificationService.MarkAllRead(c.Request.Context(), userID); err != nil {
		respond(c, http.StatusInternalServerError, true, nil, "Internal server error.")
		return
	}
	respond(c, http.StatusOK, false, nil, "")
}
