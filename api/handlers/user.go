package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserGet возвращает краткую карточку пользователя по id
func UserGet(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respond(c, http.StatusBadRequest, true, nil, "Invalid user id.")
		return
	}

	user, err := authService.UserByID(c.Request.Context(), userID)
	if err != nil {
		status, _ := errorStatus(err)
		if status == http.StatusNotFound {
			respond(c, status, true, nil, "User not found.")
			return
		}
		respond(c, http.StatusInternalServerError, true, nil, "Internal server error.")
		return
	}

	respond(c, http.StatusOK, false, FriendUser{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, "")
}
