package cache

import (
	"context"
	"fmt"
	"time"

	"welfare/internal/ledger"
)

// SnapshotKey is the single slot the ledger snapshot lives in.
var SnapshotKey = GenerateKey("ledger", "snapshot")

// KV is the part of CacheService the snapshot slot needs.
type KV interface {
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

// SnapshotStore keeps the latest ledger snapshot in one key.
type SnapshotStore struct {
	kv  KV
	key string
}

func NewSnapshotStore(kv KV) *SnapshotStore {
	if kv == nil {
		panic("kv is required")
	}
	return &SnapshotStore{kv: kv, key: SnapshotKey}
}

// Save overwrites the slot. Snapshots never expire.
func (s *SnapshotStore) Save(ctx context.Context, snap ledger.Snapshot) error {
	if err := s.kv.SetWithTTL(ctx, s.key, snap, 0); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load returns the stored snapshot, or false when the slot is empty.
func (s *SnapshotStore) Load(ctx context.Context) (*ledger.Snapshot, bool, error) {
	var snap ledger.Snapshot
	found, err := s.kv.Get(ctx, s.key, &snap)
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	return &snap, true, nil
}

func (s *SnapshotStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, s.key)
}
