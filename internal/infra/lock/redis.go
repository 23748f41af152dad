package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const releaseTimeout = 2 * time.Second

// RedisSlotLocker блокировка слота через ключ в Redis (SET NX PX)
// Блокировка не ждет освобождения: занятый ключ сразу дает ErrLockNotAcquired
type RedisSlotLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSlotLocker создает блокировку с временем жизни ключа ttl
func NewRedisSlotLocker(client *redis.Client, ttl time.Duration) *RedisSlotLocker {
	return &RedisSlotLocker{
		client: client,
		ttl:    ttl,
	}
}

// WithSlotLock выполняет fn, удерживая ключ key
// Время выполнения fn ограничено ttl ключа
func (l *RedisSlotLocker) WithSlotLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: SetNX key=%s: %v", ErrAcquire, key, err)
	}
	if !ok {
		return ErrLockNotAcquired
	}

	defer func() {
		// Снимаем ключ даже если контекст запроса уже отменен
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()
		_ = l.release(releaseCtx, key, token)
	}()

	ctxWithTimeout, cancel := context.WithTimeout(ctx, l.ttl)
	defer cancel()

	return fn(ctxWithTimeout)
}

// unlockScript удаляет ключ, только если он все еще принадлежит владельцу токена
var unlockScript = redis.NewScript(`
local val = redis.call("GET", KEYS[1])
if val == ARGV[1] then
  return redis.call("DEL", KEYS[1])
else
  return 0
end
`)

func (l *RedisSlotLocker) release(ctx context.Context, key, token string) error {
	_, err := unlockScript.Run(ctx, l.client, []string{key}, token).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release slot lock: %w", err)
	}
	return nil
}
