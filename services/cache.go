package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

const friendsListKeyPrefix = "friends_list_"

// FriendsCache - кеш готовой первой страницы списка друзей, по ключу
// на пользователя. Кеш вспомогательный: без Redis все методы становятся
// no-op и запросы идут напрямую в базу.
type FriendsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewFriendsCache(client *redis.Client, ttl time.Duration) *FriendsCache {
	return &FriendsCache{client: client, ttl: ttl}
}

func friendsListKey(userID int64) string {
	return fmt.Sprintf("%s%d", friendsListKeyPrefix, userID)
}

// Get возвращает закешированный ответ, если он есть
func (fc *FriendsCache) Get(ctx context.Context, userID int64) ([]byte, bool) {
	if fc == nil || fc.client == nil {
		return nil, false
	}
	payload, err := fc.client.Get(ctx, friendsListKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("friends cache get failed for user %d: %v", userID, err)
		}
		return nil, false
	}
	return payload, true
}

// Set кладет готовый ответ с TTL
func (fc *FriendsCache) Set(ctx context.Context, userID int64, payload []byte) {
	if fc == nil || fc.client == nil {
		return
	}
	if err := fc.client.Set(ctx, friendsListKey(userID), payload, fc.ttl).Err(); err != nil {
		log.Printf("friends cache set failed for user %d: %v", userID, err)
	}
}

// Delete сбрасывает кеш пользователя (явный is_refresh)
func (fc *FriendsCache) Delete(ctx context.Context, userID int64) {
	if fc == nil || fc.client == nil {
		return
	}
	if err := fc.client.Del(ctx, friendsListKey(userID)).Err(); err != nil {
		log.Printf("friends cache delete failed for user %d: %v", userID, err)
	}
}
