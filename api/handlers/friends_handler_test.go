package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"socialnet/api/routes"
	"socialnet/db"
	"socialnet/models"
	"socialnet/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var userSeq int64

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(
		&models.User{},
		&models.UserTokens{},
		&models.FriendRequest{},
		&models.BlockedUser{},
		&models.Notification{},
		&models.UserActivity{},
	))
	db.ORM = database

	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes.PublicApi(router)
	return router
}

func createUser(t *testing.T) models.User {
	t.Helper()

	seq := atomic.AddInt64(&userSeq, 1)
	user := models.User{
		Username: fmt.Sprintf("%s_%d", gofakeit.Username(), seq),
		Email:    fmt.Sprintf("%d_%s", seq, gofakeit.Email()),
		IsActive: true,
	}
	require.NoError(t, db.ORM.Create(&user).Error)
	return user
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, userID int64, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-User-ID", fmt.Sprintf("%d", userID))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func friendAction(t *testing.T, router *gin.Engine, actorID int64, action string, targetID int64) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, router, http.MethodPost, "/api/friend-requests", actorID, gin.H{
		"action":      action,
		"receiver_id": targetID,
	})
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Error      bool            `json:"error"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
}

type pageEnvelope struct {
	StatusCode int `json:"status_code"`
	Links      struct {
		Next     *string `json:"next"`
		Previous *string `json:"previous"`
	} `json:"links"`
	Count int64             `json:"count"`
	Data  []json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) pageEnvelope {
	t.Helper()
	var resp pageEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAuthRequired(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/friends-list", 0, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFriendRequestLifecycle(t *testing.T) {
	router := setupRouter(t)

	alice := createUser(t)
	bob := createUser(t)

	// alice отправляет заявку
	w := friendAction(t, router, alice.ID, "send", bob.ID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Friend request sent.", decodeEnvelope(t, w).Message)

	// У bob заявка видна во входящих
	w = doRequest(t, router, http.MethodGet, "/api/pending-requests", bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decodePage(t, w)
	require.Equal(t, int64(1), page.Count)
	var pendingSender struct {
		UserID   int64  `json:"user_id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(page.Data[0], &pendingSender))
	assert.Equal(t, alice.ID, pendingSender.UserID)
	assert.Equal(t, alice.Username, pendingSender.Username)

	// bob принимает
	w = friendAction(t, router, bob.ID, "accept", alice.ID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Friend request accepted.", decodeEnvelope(t, w).Message)

	// Входящих больше нет
	w = doRequest(t, router, http.MethodGet, "/api/pending-requests", bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), decodePage(t, w).Count)

	// alice появляется в списке друзей bob
	w = doRequest(t, router, http.MethodGet, "/api/friends-list?is_refresh=true", bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page = decodePage(t, w)
	require.Equal(t, int64(1), page.Count)
	var friend struct {
		UserID int64  `json:"user_id"`
		Email  string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(page.Data[0], &friend))
	assert.Equal(t, alice.ID, friend.UserID)
	assert.Equal(t, alice.Email, friend.Email)

	// Список направленный: учитываются только принятые входящие заявки,
	// поэтому у alice (отправителя) список пуст
	w = doRequest(t, router, http.MethodGet, "/api/friends-list?is_refresh=true", alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), decodePage(t, w).Count)
}

func TestFriendRequestValidation(t *testing.T) {
	router := setupRouter(t)

	alice := createUser(t)
	bob := createUser(t)

	// Неизвестное действие
	w := friendAction(t, router, alice.ID, "poke", bob.ID)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Please pass valid parameter.", decodeEnvelope(t, w).Message)

	// Без receiver_id
	w = doRequest(t, router, http.MethodPost, "/api/friend-requests", alice.ID, gin.H{"action": "send"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Receiver user id required.", decodeEnvelope(t, w).Message)

	// Несуществующий получатель
	w = friendAction(t, router, alice.ID, "send", bob.ID+1000)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFriendRequestDuplicateConflict(t *testing.T) {
	router := setupRouter(t)

	alice := createUser(t)
	bob := createUser(t)

	w := friendAction(t, router, alice.ID, "send", bob.ID)
	require.Equal(t, http.StatusOK, w.Code)

	w = friendAction(t, router, alice.ID, "send", bob.ID)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestFriendRequestRateLimit(t *testing.T) {
	router := setupRouter(t)

	alice := createUser(t)
	targets := make([]models.User, 4)
	for i := range targets {
		targets[i] = createUser(t)
	}

	for i := 0; i < 3; i++ {
		w := friendAction(t, router, alice.ID, "send", targets[i].ID)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := friendAction(t, router, alice.ID, "send", targets[3].ID)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestFriendsListCache(t *testing.T) {
	router := setupRouter(t)

	mr := miniredis.RunT(t)
	services.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = services.RedisClient.Close()
		services.RedisClient = nil
	})

	bob := createUser(t)
	alice := createUser(t)
	carol := createUser(t)

	w := friendAction(t, router, alice.ID, "send", bob.ID)
	require.Equal(t, http.StatusOK, w.Code)
	w = friendAction(t, router, bob.ID, "accept", alice.ID)
	require.Equal(t, http.StatusOK, w.Code)

	// Первый запрос кладет готовую первую страницу в кеш
	w = doRequest(t, router, http.MethodGet, "/api/friends-list", bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(1), decodePage(t, w).Count)
	assert.True(t, mr.Exists(fmt.Sprintf("friends_list_%d", bob.ID)))

	// Второй друг появляется в базе, но кеш еще держит старый ответ
	w = friendAction(t, router, carol.ID, "send", bob.ID)
	require.Equal(t, http.StatusOK, w.Code)
	w = friendAction(t, router, bob.ID, "accept", carol.ID)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/friends-list", bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decodePage(t, w).Count)

	// is_refresh сбрасывает ключ и пересчитывает список
	w = doRequest(t, router, http.MethodGet, "/api/friends-list?is_refresh=true", bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), decodePage(t, w).Count)

	// Свежий ответ снова закеширован
	w = doRequest(t, router, http.MethodGet, "/api/friends-list", bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), decodePage(t, w).Count)
	assert.True(t, mr.Exists(fmt.Sprintf("friends_list_%d", bob.ID)))
}

func TestPendingRequestsPagination(t *testing.T) {
	router := setupRouter(t)

	bob := createUser(t)
	first := createUser(t)
	second := createUser(t)

	for _, sender := range []models.User{first, second} {
		w := friendAction(t, router, sender.ID, "send", bob.ID)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doRequest(t, router, http.MethodGet, "/api/pending-requests?page=1&page_size=1", bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decodePage(t, w)
	assert.Equal(t, int64(2), page.Count)
	require.Len(t, page.Data, 1)
	require.NotNil(t, page.Links.Next)
	assert.Contains(t, *page.Links.Next, "page=2")
	assert.Nil(t, page.Links.Previous)

	w = doRequest(t, router, http.MethodGet, "/api/pending-requests?page=2&page_size=1", bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	page = decodePage(t, w)
	require.Len(t, page.Data, 1)
	assert.Nil(t, page.Links.Next)
	require.NotNil(t, page.Links.Previous)
}

func TestActivityEndpoints(t *testing.T) {
	router := setupRouter(t)

	alice := createUser(t)

	// Без activity_type
	w := doRequest(t, router, http.MethodPost, "/api/user-activities", alice.ID, gin.H{"details": "no type"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Activity type is required.", decodeEnvelope(t, w).Message)

	w = doRequest(t, router, http.MethodPost, "/api/user-activities", alice.ID, gin.H{
		"activity_type": "profile_updated",
		"details":       "Changed avatar",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doRequest(t, router, http.MethodGet, "/api/user-activities", alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	var views []struct {
		User         int64  `json:"user"`
		ActivityType string `json:"activity_type"`
		Details      string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &views))
	require.Len(t, views, 1)
	assert.Equal(t, alice.ID, views[0].User)
	assert.Equal(t, "profile_updated", views[0].ActivityType)
	assert.Equal(t, "Changed avatar", views[0].Details)
}

func TestNotificationsEndpoints(t *testing.T) {
	router := setupRouter(t)

	alice := createUser(t)
	bob := createUser(t)

	w := friendAction(t, router, alice.ID, "send", bob.ID)
	require.Equal(t, http.StatusOK, w.Code)

	// Свежая заявка попадает в сегодняшнюю группу
	w = doRequest(t, router, http.MethodGet, "/api/notifications-list", bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var grouped struct {
		Today []struct {
			FromUserData struct {
				UserID int64 `json:"user_id"`
			} `json:"from_user_data"`
			ReadAt *string `json:"read_at"`
		} `json:"today"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grouped))
	require.Len(t, grouped.Today, 1)
	assert.Equal(t, alice.ID, grouped.Today[0].FromUserData.UserID)
	assert.Nil(t, grouped.Today[0].ReadAt)

	w = doRequest(t, router, http.MethodGet, "/api/notifications-read", bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, router, http.MethodGet, "/api/notifications-list", bob.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grouped))
	require.Len(t, grouped.Today, 1)
	assert.NotNil(t, grouped.Today[0].ReadAt)
}

func TestUserGet(t *testing.T) {
	router := setupRouter(t)

	alice := createUser(t)
	bob := createUser(t)

	w := doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/users/%d", bob.ID), alice.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	var view struct {
		UserID   int64  `json:"user_id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	assert.Equal(t, bob.ID, view.UserID)
	assert.Equal(t, bob.Username, view.Username)

	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/users/%d", bob.ID+1000), alice.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
