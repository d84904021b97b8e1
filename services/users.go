package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"socialnet/db"
	"socialnet/models"

	"golang.org/x/crypto/argon2"
	"gorm.io/gorm"
)

// AuthService - регистрация и выдача токенов.
// Аутентификация - внешний контракт для движка заявок, здесь живет
// минимальная реализация, чтобы middleware было откуда брать actor-а.
type AuthService struct{}

func NewAuthService() *AuthService {
	return &AuthService{}
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

func verifyPassword(stored, password string) bool {
	parts := strings.SplitN(stored, "$", 2)
	if len(parts) != 2 {
		return false
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(parts[1])
	if err != nil {
		return false
	}
	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return subtle.ConstantTimeCompare(hash, expected) == 1
}

func newToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// Register создает пользователя с захешированным паролем
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}

	var alreadyExists int64
	err := db.GetReadOnlyDB(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&alreadyExists).Error
	if err != nil {
		return nil, err
	}
	if alreadyExists > 0 {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: passwordHash,
		IsActive: true,
	}
	if err := db.GetWriteDB(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: user already exists", ErrConflict)
		}
		return nil, err
	}
	return &user, nil
}

// Login проверяет пароль и выдает токен
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	var user models.User
	err := db.GetReadOnlyDB(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("%w: invalid credentials", ErrNotFound)
		}
		return "", err
	}
	if !user.IsActive || !verifyPassword(user.Password, password) {
		return "", fmt.Errorf("%w: invalid credentials", ErrNotFound)
	}

	token, err := newToken()
	if err != nil {
		return "", err
	}
	record := models.UserTokens{UserID: user.ID, Token: token}
	if err := db.GetWriteDB(ctx).Create(&record).Error; err != nil {
		return "", err
	}
	return token, nil
}

// Logout отзывает токен
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: token is empty", ErrValidation)
	}
	result := db.GetWriteDB(ctx).Where("token = ?", token).Delete(&models.UserTokens{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: token not found", ErrNotFound)
	}
	return nil
}

// UserByToken возвращает активного пользователя по токену
func (s *AuthService) UserByToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	err := db.GetReadOnlyDB(ctx).
		Table("users u").
		Joins("JOIN user_tokens t ON t.user_id = u.id").
		Where("t.token = ? AND u.is_active = ?", token, true).
		Select("u.*").
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid token", ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}

// UserByID - контракт поиска пользователя для движка заявок
func (s *AuthService) UserByID(ctx context.Context, userID int64) (*models.User, error) {
	var user models.User
	err := db.GetReadOnlyDB(ctx).First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user does not exist", ErrNotFound)
		}
		return nil, err
	}
	return &user, nil
}
