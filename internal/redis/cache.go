package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStore handles entity caching in Redis.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// Cache TTL constants
const (
	StaffCacheTTL   = 5 * time.Minute  // Directory entries change rarely
	SummaryCacheTTL = 15 * time.Second // Dashboard clients poll every 5-10s
)

// Key prefixes
const (
	staffCachePrefix = "cache:staff:"
	summaryCacheKey  = "cache:dashboard:summary"
)

// CachedStaff represents a cached directory entry.
type CachedStaff struct {
	Code     string `json:"code"`
	FullName string `json:"full_name"`
	Position string `json:"position"`
}

// GetStaff retrieves a staff record from cache.
func (s *CacheStore) GetStaff(ctx context.Context, code string) (*CachedStaff, error) {
	key := staffCachePrefix + code
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, err
	}

	var staff CachedStaff
	if err := json.Unmarshal(data, &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}

// SetStaff stores a staff record in cache.
func (s *CacheStore) SetStaff(ctx context.Context, staff *CachedStaff) error {
	key := staffCachePrefix + staff.Code
	data, err := json.Marshal(staff)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, StaffCacheTTL).Err()
}

// GetSummary retrieves the serialized dashboard summary from cache.
// Returns nil on cache miss.
func (s *CacheStore) GetSummary(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, summaryCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// SetSummary stores the serialized dashboard summary in cache.
func (s *CacheStore) SetSummary(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, summaryCacheKey, data, SummaryCacheTTL).Err()
}
