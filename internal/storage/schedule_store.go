package storage

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"sleeper/internal/clock"
	"sleeper/internal/core/model"

	"gopkg.in/yaml.v3"
)

// ScheduleKey is the single well-known key of the active schedule.
const ScheduleKey = "com.sleeper.currentSchedule"

// Backend is a durable key-value mechanism. Put replaces the value atomically.
type Backend interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

type recordDocument struct {
	TargetTime string `yaml:"target_time"`
	IsActive   bool   `yaml:"is_active"`
	CreatedAt  string `yaml:"created_at"`
}

// ScheduleStore persists a single ScheduleRecord. Load never hands back a
// stale or unreadable record: such records are deleted as part of the load.
type ScheduleStore struct {
	mu      sync.Mutex
	backend Backend
	clock   clock.Clock
	logger  *slog.Logger
}

// NewScheduleStore wraps a backend.
func NewScheduleStore(backend Backend, clk clock.Clock, logger *slog.Logger) *ScheduleStore {
	if clk == nil {
		clk = clock.Real{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduleStore{backend: backend, clock: clk, logger: logger}
}

// Save overwrites the stored record.
func (store *ScheduleStore) Save(record model.ScheduleRecord) error {
	data, err := encodeRecord(record)
	if err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if err := store.backend.Put(ScheduleKey, data); err != nil {
		return fmt.Errorf("save schedule: %w", err)
	}
	store.logger.Debug("schedule saved", "target", record.TargetTime)
	return nil
}

// Load returns the stored record when it is active and still in the future.
func (store *ScheduleStore) Load() (model.ScheduleRecord, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	data, found, err := store.backend.Get(ScheduleKey)
	if err != nil {
		store.logger.Warn("read schedule failed, clearing", "error", err)
		store.clearLocked()
		return model.ScheduleRecord{}, false
	}
	if !found {
		return model.ScheduleRecord{}, false
	}

	record, err := decodeRecord(data)
	if err != nil {
		store.logger.Warn("decode schedule failed, clearing", "error", err)
		store.clearLocked()
		return model.ScheduleRecord{}, false
	}

	if !record.UsableAt(store.clock.Now()) {
		store.logger.Info("discarding expired schedule", "target", record.TargetTime, "is_active", record.IsActive)
		store.clearLocked()
		return model.ScheduleRecord{}, false
	}
	return record, true
}

// Clear removes the stored record. Clearing an empty store is not an error.
func (store *ScheduleStore) Clear() error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if err := store.backend.Delete(ScheduleKey); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}
	return nil
}

// HasActive reports whether a usable record is stored.
func (store *ScheduleStore) HasActive() bool {
	_, ok := store.Load()
	return ok
}

func (store *ScheduleStore) clearLocked() {
	if err := store.backend.Delete(ScheduleKey); err != nil {
		store.logger.Warn("clear schedule failed", "error", err)
	}
}

func encodeRecord(record model.ScheduleRecord) ([]byte, error) {
	document := recordDocument{
		TargetTime: record.TargetTime.UTC().Format(time.RFC3339Nano),
		IsActive:   record.IsActive,
		CreatedAt:  record.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	data, err := yaml.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("marshal schedule: %w", err)
	}
	return data, nil
}

func decodeRecord(data []byte) (model.ScheduleRecord, error) {
	var document recordDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return model.ScheduleRecord{}, fmt.Errorf("unmarshal schedule: %w", err)
	}
	target, err := time.Parse(time.RFC3339Nano, document.TargetTime)
	if err != nil {
		return model.ScheduleRecord{}, fmt.Errorf("parse target_time: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, document.CreatedAt)
	if err != nil {
		return model.ScheduleRecord{}, fmt.Errorf("parse created_at: %w", err)
	}
	return model.ScheduleRecord{
		TargetTime: target,
		IsActive:   document.IsActive,
		CreatedAt:  createdAt,
	}, nil
}
