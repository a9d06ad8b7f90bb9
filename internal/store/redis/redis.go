// Package redis implements store.Store on a Redis server, using the same
// layout as the original deployment: a set of active usernames, one list of
// serialized records per conversation key, and a partner set per user.
package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

const (
	activeUsersKey     = "active_users"
	conversationPrefix = "conversations:"
)

// Store is a Redis-backed implementation of store.Store.
type Store struct {
	client *goredis.Client
}

// New connects to Redis and verifies the connection with a ping.
func New(ctx context.Context, addr, password string, db int) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) AddActive(ctx context.Context, username string) error {
	return s.client.SAdd(ctx, activeUsersKey, username).Err()
}

func (s *Store) RemoveActive(ctx context.Context, username string) error {
	return s.client.SRem(ctx, activeUsersKey, username).Err()
}

func (s *Store) ListActive(ctx context.Context) ([]string, error) {
	return s.client.SMembers(ctx, activeUsersKey).Result()
}

func (s *Store) IsActive(ctx context.Context, username string) (bool, error) {
	return s.client.SIsMember(ctx, activeUsersKey, username).Result()
}

func (s *Store) AppendMessage(ctx context.Context, key string, record []byte) error {
	return s.client.LPush(ctx, key, record).Err()
}

func (s *Store) ListMessages(ctx context.Context, key string) ([][]byte, error) {
	values, err := s.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	records := make([][]byte, len(values))
	for i, v := range values {
		records[i] = []byte(v)
	}
	return records, nil
}

func (s *Store) AddPartner(ctx context.Context, user, partner string) error {
	return s.client.SAdd(ctx, conversationPrefix+user, partner).Err()
}

func (s *Store) ListPartners(ctx context.Context, user string) ([]string, error) {
	return s.client.SMembers(ctx, conversationPrefix+user).Result()
}

func (s *Store) Close() error {
	return s.client.Close()
}
