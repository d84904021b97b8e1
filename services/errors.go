package services

import "errors"

// Ошибки уровня бизнес-логики. Обработчики переводят их в HTTP статусы
// через errors.Is, остальное считается внутренней ошибкой запроса.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrRateLimited  = errors.New("rate limited")
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation error")
)
