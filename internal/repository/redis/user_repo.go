package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
)

const (
	UserTokenPrefix   = "login:user:token"
	UserRefreshPrefix = "login:user:refresh"
)

// SessionRepository 每个账号只保留一对有效 token；access 过期时间随访问顺延，refresh 固定有效期
type SessionRepository struct {
	client     *redis.Client
	ttl        time.Duration
	refreshTTL time.Duration
}

func NewSessionRepository(client *redis.Client, ttl, refreshTTL time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl, refreshTTL: refreshTTL}
}

func tokenKey(userID string) string {
	return fmt.Sprintf("%s:%s", UserTokenPrefix, userID)
}

func refreshKey(userID string) string {
	return fmt.Sprintf("%s:%s", UserRefreshPrefix, userID)
}

// Save 覆盖旧会话，两个键在同一事务中写入
func (r *SessionRepository) Save(ctx context.Context, userID, accessToken, refreshToken string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, tokenKey(userID), accessToken, r.ttl)
		pipe.Set(ctx, refreshKey(userID), refreshToken, r.refreshTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, userID string) (string, error) {
	return r.get(ctx, tokenKey(userID))
}

func (r *SessionRepository) GetRefresh(ctx context.Context, userID string) (string, error) {
	return r.get(ctx, refreshKey(userID))
}

func (r *SessionRepository) get(ctx context.Context, key string) (string, error) {
	token, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return token, nil
}

func (r *SessionRepository) Extend(ctx context.Context, userID string) error {
	if err := r.client.Expire(ctx, tokenKey(userID), r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Delete 退出登录，access 与 refresh 一起失效
func (r *SessionRepository) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, tokenKey(userID), refreshKey(userID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
