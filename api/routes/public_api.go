package routes

import (
	"socialnet/api/handlers"
	"socialnet/api/middleware"

	"github.com/gin-gonic/gin"
)

func PublicApi(router *gin.Engine) *gin.RouterGroup {
	publicEndpoints := router.Group("/api/")
	{
		publicEndpoints.POST("auth/register", handlers.Register)
		publicEndpoints.POST("auth/login", handlers.Login)
		publicEndpoints.POST("auth/logout", handlers.Logout)
	}

	authorized := router.Group("/api/", middleware.AuthMiddleware())
	{
		// Заявки в друзья
		authorized.POST("friend-requests", handlers.FriendRequestAction)
		authorized.GET("friends-list", handlers.FriendsList)
		authorized.GET("pending-requests", handlers.PendingRequests)

		// Журнал активности
		authorized.POST("user-activities", handlers.LogActivity)
		authorized.GET("user-activities", handlers.ListActivities)

		// Уведомления
		authorized.GET("notifications-list", handlers.NotificationsList)
		authorized.GET("notifications-read", handlers.NotificationsRead)

		authorized.GET("users/:id", handlers.UserGet)
		authorized.GET("ws", handlers.WSNotifyHandler)
	}
	return authorized
}
