package rdx

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// KV is the durable key-value store backing cart and wishlist state.
// Values are whole serialized snapshots, rewritten on every mutation.
type KV struct {
	Conn *redis.Client
}

func New(addr string) (*KV, error) {
	conn := redis.NewClient(&redis.Options{Addr: addr})
	if err := conn.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &KV{Conn: conn}, nil
}

// Get returns the stored value; ok is false when the key is absent.
func (k *KV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := k.Conn.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (k *KV) Set(ctx context.Context, key, value string) error {
	return k.Conn.Set(ctx, key, value, 0).Err()
}

func (k *KV) Del(ctx context.Context, key string) error {
	return k.Conn.Del(ctx, key).Err()
}

func (k *KV) Close() error {
	return k.Conn.Close()
}
