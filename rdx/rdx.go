package rdx

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var Conn *redis.Client

// Init connects to Redis using REDIS_ADDR (default localhost:6379) and
// pings it so a dead backend is caught at startup rather than on the
// first favourite toggle.
func Init() error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	Conn = redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := Conn.Ping(ctx).Err(); err != nil {
		return err
	}
	log.Printf("Connected to Redis at %s", addr)
	return nil
}

// Store adapts the Redis connection to the favourites backend contract.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		// Absent key is not a failure; the caller starts empty.
		return "", nil
	}
	return val, err
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

// Memory is an in-process backend used by tests and as the degraded mode
// when Redis is unreachable at startup. Favourites then survive only as
// long as the process, which matches the best-effort storage contract.
type Memory struct {
	mu   sync.Mutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
