package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultEmailCodeTTL = 5 * time.Minute
	EmailCodePrefix     = "email:code"
	ScopeRegister       = "register"

	// 两阶段键：先写 pending，邮件发出后转 confirmed
	PendingSuffix   = "pending"
	ConfirmedSuffix = "confirmed"
	AttemptsSuffix  = "attempts"
)

var (
	ErrCodeNotFound        = errors.New("email code not found")
	ErrCodeConfirmedFailed = errors.New("code confirmed failed")
)

// 取值、写入目标并设置 TTL、删除源，原子执行
var confirmScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if not val then
  return 0
end
redis.call("SET", KEYS[2], val, "PX", ARGV[1])
redis.call("DEL", KEYS[1])
return 1
`)

type CodeRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCodeRepository(client *redis.Client, ttl time.Duration) *CodeRepository {
	if ttl <= 0 {
		ttl = DefaultEmailCodeTTL
	}
	return &CodeRepository{client: client, ttl: ttl}
}

func (r *CodeRepository) TTL() time.Duration {
	return r.ttl
}

func codeKey(scope, stage, email string) string {
	return fmt.Sprintf("%s:%s:%s:%s", EmailCodePrefix, scope, stage, email)
}

// SavePending 写入 pending 键，重复发送会覆盖旧码并清零失败次数
func (r *CodeRepository) SavePending(ctx context.Context, scope, email, code string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, codeKey(scope, PendingSuffix, email), code, r.ttl)
		pipe.Del(ctx, codeKey(scope, AttemptsSuffix, email))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Confirm pending 转为 confirmed，并重置 TTL
func (r *CodeRepository) Confirm(ctx context.Context, scope, email string) error {
	keys := []string{codeKey(scope, PendingSuffix, email), codeKey(scope, ConfirmedSuffix, email)}
	ok, err := confirmScript.Run(ctx, r.client, keys, r.ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if ok != 1 {
		return ErrCodeConfirmedFailed
	}
	return nil
}

// DeletePending 幂等
func (r *CodeRepository) DeletePending(ctx context.Context, scope, email string) error {
	if err := r.client.Del(ctx, codeKey(scope, PendingSuffix, email)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Get 读取 confirmed 的验证码
func (r *CodeRepository) Get(ctx context.Context, scope, email string) (string, error) {
	val, err := r.client.Get(ctx, codeKey(scope, ConfirmedSuffix, email)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return val, nil
}

// IncrAttempts 记录一次校验失败，返回累计次数；计数与验证码同时过期
func (r *CodeRepository) IncrAttempts(ctx context.Context, scope, email string) (int64, error) {
	key := codeKey(scope, AttemptsSuffix, email)
	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, r.ttl)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return incr.Val(), nil
}

// Delete 验证码一次性使用
func (r *CodeRepository) Delete(ctx context.Context, scope, email string) error {
	err := r.client.Del(ctx,
		codeKey(scope, ConfirmedSuffix, email),
		codeKey(scope, AttemptsSuffix, email),
	).Err()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
