package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "carwash:idempotency:"

var (
	// ErrDuplicate возвращается, когда ключ уже был использован
	ErrDuplicate = errors.New("idempotency: key already used")

	// ErrStore возвращается при ошибке обращения к redis
	ErrStore = errors.New("idempotency: store error")
)

// Guard защищает от повторной обработки запроса с тем же Idempotency-Key
type Guard struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewGuard создает guard поверх redis клиента
func NewGuard(client redis.Cmdable, ttl time.Duration) *Guard {
	return &Guard{client: client, ttl: ttl}
}

// Acquire резервирует ключ в пространстве scope. Повторный вызов с тем же ключом до
// истечения TTL возвращает ErrDuplicate.
func (g *Guard) Acquire(ctx context.Context, scope, key string) error {
	ok, err := g.client.SetNX(ctx, storageKey(scope, key), time.Now().Unix(), g.ttl).Result()
	if err != nil {
		return fmt.Errorf("%w: Acquire - setnx: %v", ErrStore, err)
	}
	if !ok {
		return ErrDuplicate
	}
	return nil
}

// Release освобождает ключ, чтобы запрос, завершившийся ошибкой, можно было повторить
func (g *Guard) Release(ctx context.Context, scope, key string) error {
	if err := g.client.Del(ctx, storageKey(scope, key)).Err(); err != nil {
		return fmt.Errorf("%w: Release - del: %v", ErrStore, err)
	}
	return nil
}

func storageKey(scope, key string) string {
	return keyPrefix + scope + ":" + key
}

// Noop используется, когда redis выключен: все ключи считаются новыми
type Noop struct{}

func (Noop) Acquire(context.Context, string, string) error { return nil }

func (Noop) Release(context.Context, string, string) error { return nil }
