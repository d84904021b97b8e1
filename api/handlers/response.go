package handlers

import (
	"errors"
	"net/http"

	"socialnet/services"

	"github.com/gin-gonic/gin"
)

// apiResponse - общий конверт ответа
type apiResponse struct {
	StatusCode int         `json:"status_code"`
	Error      bool        `json:"error"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
}

func respond(c *gin.Context, status int, errFlag bool, data interface{}, message string) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(status, apiResponse{
		StatusCode: status,
		Error:      errFlag,
		Data:       data,
		Message:    message,
	})
}

// errorStatus переводит ошибку бизнес-логики в HTTP статус и метку исхода
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, services.ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, services.ErrInvalidState):
		return http.StatusBadRequest, "invalid_state"
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	}
	return http.StatusInternalServerError, "error"
}
