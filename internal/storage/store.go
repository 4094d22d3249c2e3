package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ignite/ppc-intelligence/internal/report"
)

// Snapshot is the most recent raw upload for one account: the materialized
// record set plus the column resolution that produced it. Snapshots are
// replaced whole on every upload: last writer wins, no merge, no history.
type Snapshot struct {
	Account    string                     `json:"account"`
	UploadID   string                     `json:"upload_id"`
	UploadedAt time.Time                  `json:"uploaded_at"`
	Records    []report.PerformanceRecord `json:"records"`
	Resolution *report.Resolution         `json:"resolution"`
}

// Store keeps the account name -> latest snapshot mapping. The default
// backend is an in-memory map; when a Redis client is supplied snapshots
// are kept there instead so multiple server instances share one view.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot

	redis     *redis.Client
	keyPrefix string
}

const accountIndexKey = "ppc:accounts"

// NewMemoryStore creates a store backed by an in-process map.
func NewMemoryStore() *Store {
	return &Store{snapshots: make(map[string]*Snapshot)}
}

// NewRedisStore creates a store backed by Redis. Snapshots are stored as
// JSON values under <prefix>:<account> with the account names indexed in a
// set.
func NewRedisStore(client *redis.Client, keyPrefix string) *Store {
	if keyPrefix == "" {
		keyPrefix = "ppc:account"
	}
	return &Store{redis: client, keyPrefix: keyPrefix}
}

// Save stores the snapshot for its account, replacing any previous upload.
// A missing upload ID is filled in.
func (s *Store) Save(ctx context.Context, snap *Snapshot) error {
	if snap.Account == "" {
		return fmt.Errorf("snapshot account name is required")
	}
	if snap.UploadID == "" {
		snap.UploadID = uuid.NewString()
	}
	if snap.UploadedAt.IsZero() {
		snap.UploadedAt = time.Now().UTC()
	}

	if s.redis != nil {
		data, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("marshaling snapshot: %w", err)
		}
		pipe := s.redis.TxPipeline()
		pipe.Set(ctx, s.accountKey(snap.Account), data, 0)
		pipe.SAdd(ctx, accountIndexKey, snap.Account)
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("saving snapshot for %q: %w", snap.Account, err)
		}
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[snap.Account] = snap
	return nil
}

// Get returns the latest snapshot for an account, or nil when none exists.
func (s *Store) Get(ctx context.Context, account string) (*Snapshot, error) {
	if s.redis != nil {
		data, err := s.redis.Get(ctx, s.accountKey(account)).Bytes()
		if err == redis.Nil {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("loading snapshot for %q: %w", account, err)
		}
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("decoding snapshot for %q: %w", account, err)
		}
		return &snap, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshots[account], nil
}

// List returns the stored account names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if s.redis != nil {
		names, err := s.redis.SMembers(ctx, accountIndexKey).Result()
		if err != nil {
			return nil, fmt.Errorf("listing accounts: %w", err)
		}
		sort.Strings(names)
		return names, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.snapshots))
	for name := range s.snapshots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes an account's snapshot. Deleting an unknown account is not
// an error.
func (s *Store) Delete(ctx context.Context, account string) error {
	if s.redis != nil {
		pipe := s.redis.TxPipeline()
		pipe.Del(ctx, s.accountKey(account))
		pipe.SRem(ctx, accountIndexKey, account)
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("deleting snapshot for %q: %w", account, err)
		}
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, account)
	return nil
}

func (s *Store) accountKey(account string) string {
	return s.keyPrefix + ":" + account
}
