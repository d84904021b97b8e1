package handlers

import (
	"net/http"

	"socialnet/services"

	"github.com/gin-gonic/gin"
)

var authService = services.NewAuthService()

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LogoutRequest struct {
	Token string `json:"token" binding:"required"`
}

func Register(c *gin.Context) {
	var registerRequest RegisterRequest
	if err := c.ShouldBindJSON(&registerRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	user, err := authService.Register(c.Request.Context(),
		registerRequest.Username, registerRequest.Email, registerRequest.Password)
	if err != nil {
		status, _ := errorStatus(err)
		if status == http.StatusInternalServerError {
			c.JSON(status, gin.H{"error": "Internal server error"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered",
		"user": gin.H{
			"user_id":  user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

func Login(c *gin.Context) {
	var loginRequest LoginRequest
	if err := c.ShouldBindJSON(&loginRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	token, err := authService.Login(c.Request.Context(), loginRequest.Username, loginRequest.Password)
	if err != nil {
		status, _ := errorStatus(err)
		if status == http.StatusNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"token":    token,
		"username": loginRequest.Username,
	})
}

func Logout(c *gin.Context) {
	var logoutRequest LogoutRequest
	if err := c.ShouldBindJSON(&logoutRequest); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := authService.Logout(c.Request.Context(), logoutRequest.Token); err != nil {
		status, _ := errorStatus(err)
		if status == http.StatusNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token not found"})
			return
		}
		if status == http.StatusBadRequest {
			c.JSON(status, gin.H{"error": "Token is empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}
