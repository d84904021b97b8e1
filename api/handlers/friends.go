package handlers

import (
	"encoding/json"
	"net/http"

	"socialnet/api/middleware"
	"socialnet/config"
	"socialnet/services"

	"github.com/gin-gonic/gin"
)

const (
	friendsListPageSize = 50
	serviceName         = "social-backend"
)

var (
	friendService       = services.NewFriendRequestService()
	notificationService = services.NewNotificationService()
	activityService     = services.NewActivityService()
)

// FriendUser - друг в списке принятых заявок
type FriendUser struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PendingUser - отправитель ожидающей заявки
type PendingUser struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

type friendRequestInput struct {
	Action     string `json:"action"`
	ReceiverID *int64 `json:"receiver_id"`
}

// FriendRequestAction - единая точка входа для send/accept/reject
func FriendRequestAction(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var input friendRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond(c, http.StatusBadRequest, true, nil, "Invalid request body.")
		return
	}
	if input.ReceiverID == nil {
		respond(c, http.StatusBadRequest, true, nil, "Receiver user id required.")
		return
	}

	var err error
	var message string
	switch input.Action {
	case "send":
		err = friendService.Send(c.Request.Context(), userID, *input.ReceiverID)
		message = "Friend request sent."
	case "accept":
		err = friendService.Accept(c.Request.Context(), userID, *input.ReceiverID)
		message = "Friend request accepted."
	case "reject":
		err = friendService.Reject(c.Request.Context(), userID, *input.ReceiverID)
		message = "Friend request rejected."
	default:
		respond(c, http.StatusBadRequest, true, nil, "Please pass valid parameter.")
		return
	}

	if err != nil {
		status, outcome := errorStatus(err)
		middleware.RecordFriendRequestOp(input.Action, outcome, serviceName)
		if status == http.StatusInternalServerError {
			respond(c, status, true, nil, "Internal server error.")
			return
		}
		respond(c, status, true, nil, err.Error())
		return
	}

	middleware.RecordFriendRequestOp(input.Action, "ok", serviceName)
	respond(c, http.StatusOK, false, nil, message)
}

// FriendsList - список принятых друзей с кешированием первой страницы.
// is_refresh=true сбрасывает кеш и пересчитывает ответ.
func FriendsList(c *gin.Context) {
	userID := c.GetInt64("user_id")
	ctx := c.Request.Context()

	cache := services.NewFriendsCache(services.RedisClient, config.FriendsCacheTTL())
	isRefresh := c.Query("is_refresh") == "true"
	if isRefresh {
		cache.Delete(ctx, userID)
	}

	page, _ := pageParams(c, friendsListPageSize)

	// Кешируется только готовая первая страница
	if page == 1 && !isRefresh {
		if payload, ok := cache.Get(ctx, userID); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			return
		}
	}

	query := friendService.AcceptedFriendsQuery(ctx, userID)
	rows, total, err := Paginate[FriendUser](query, page, friendsListPageSize)
	if err != nil {
		respond(c, http.StatusInternalServerError, true, nil, "Internal server error.")
		return
	}

	response := NewPaginatedResponse(c, http.StatusOK, rows, total, page, friendsListPageSize)
	if page == 1 {
		if payload, err := json.Marshal(response); err == nil {
			cache.Set(ctx, userID, payload)
		}
	}
	c.JSON(http.StatusOK, response)
}

// PendingRequests - входящие ожидающие заявки, свежие сверху
func PendingRequests(c *gin.Context) {
	userID := c.GetInt64("user_id")

	page, pageSize := pageParams(c, defaultPageSize)
	query := friendService.PendingIncomingQuery(c.Request.Context(), userID)
	rows, total, err := Paginate[PendingUser](query, page, pageSize)
	if err != nil {
		respond(c, http.StatusInternalServerError, true, nil, "Internal server error.")
		return
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(c, http.StatusOK, rows, total, page, pageSize))
}
