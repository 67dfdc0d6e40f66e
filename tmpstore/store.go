package tmpstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/obinexuscomputing/marktree/dom"
	"github.com/obinexuscomputing/marktree/tokenizer"
	"github.com/obinexuscomputing/marktree/util"
)

// Key prefix for stored parse results.
const ParseResultPrefix = "parse_result:"

// ErrResultNotFound is returned when a parse result is absent or its TTL
// has expired.
var ErrResultNotFound = errors.New("parse result not found or expired")

// ParseResult is a completed parse kept around for replay between
// requests: the source content plus the tree and everything reported
// alongside it.
type ParseResult struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Options   tokenizer.Options `json:"options"`
	Tree      *dom.Tree         `json:"tree"`
	CreatedAt time.Time         `json:"created_at"`
}

type Store interface {
	SaveParseResult(ctx context.Context, id string, result ParseResult, ttl time.Duration) error
	GetParseResult(ctx context.Context, id string) (*ParseResult, error)
	DeleteParseResult(ctx context.Context, id string) error
}

type RedisStore struct {
	client *redis.Client
}

func NewStore(config *util.Config) Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddress, //  default "localhost:6379"
		Password: "",                  // "" for no password, ok for now
		DB:       0,                   // 0 for default database
	})

	return &RedisStore{client: rdb}
}

// SaveParseResult keeps a parse result retrievable for ttl, keyed by the
// result id handed back to the client.
func (store *RedisStore) SaveParseResult(
	ctx context.Context,
	id string,
	result ParseResult,
	ttl time.Duration,
) error {
	jsonData, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to serialize parse result: %w", err)
	}

	key := ParseResultPrefix + id
	return store.client.Set(ctx, key, jsonData, ttl).Err()
}

// GetParseResult retrieves a stored parse result.
// Returns ErrResultNotFound if it is missing or expired.
func (store *RedisStore) GetParseResult(ctx context.Context, id string) (*ParseResult, error) {
	key := ParseResultPrefix + id

	jsonData, err := store.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get parse result: %w", err)
	}

	var result ParseResult
	if err := json.Unmarshal([]byte(jsonData), &result); err != nil {
		return nil, fmt.Errorf("failed to parse stored result json: %w", err)
	}

	return &result, nil
}

// DeleteParseResult removes a stored parse result before its TTL runs out.
func (store *RedisStore) DeleteParseResult(ctx context.Context, id string) error {
	key := ParseResultPrefix + id
	return store.client.Del(ctx, key).Err()
}
