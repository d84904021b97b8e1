package handlers

import (
	"net/http"
	"time"

	"socialnet/models"

	"github.com/gin-gonic/gin"
)

type logActivityInput struct {
	ActivityType string `json:"activity_type"`
	Details      string `json:"details"`
}

// activityView - запись журнала в ответе API
type activityView struct {
	User         int64     `json:"user"`
	ActivityType string    `json:"activity_type"`
	Timestamp    time.Time `json:"timestamp"`
	Details      string    `json:"details"`
}

func toActivityView(a models.UserActivity) activityView {
	return activityView{
		User:         a.UserID,
		ActivityType: a.ActivityType,
		Timestamp:    a.Timestamp,
		Details:      a.Details,
	}
}

// LogActivity записывает действие пользователя в журнал
func LogActivity(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var input logActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond(c, http.StatusBadRequest, true, nil, "Invalid request body.")
		return
	}
	if input.ActivityType == "" {
		respond(c, http.StatusBadRequest, true, nil, "Activity type is required.")
		return
	}

	activity, err := activityService.Record(c.Request.Context(), userID, input.ActivityType, input.Details)
	if err != nil {
		status, _ := errorStatus(err)
		respond(c, status, true, nil, err.Error())
		return
	}

	respond(c, http.StatusCreated, false, toActivityView(*activity), "")
}

// ListActivities возвращает журнал пользователя, свежие записи сверху
func ListActivities(c *gin.Context) {
	userID := c.GetInt64("user_id")

	activities, err := activityService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respond(c, http.StatusInternalServerError, true, nil, "Internal server error.")
		return
	}

	views := make([]activityView, 0, len(activities))
	for _, a := range activities {
		views = append(views, toActivityView(a))
	}
	respond(c, http.StatusOK, false, views, "")
}
