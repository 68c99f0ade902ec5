package module

import (
	"fmt"
	"sync"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/devicedash/devicedash/internal/infrastructure/monitoring"
	"github.com/devicedash/devicedash/internal/logging"
	"github.com/devicedash/devicedash/internal/shared/types"
	"github.com/devicedash/devicedash/internal/storage"
)

// StorageKey is the fixed preference-store key holding the serialized
// module configuration. There is no versioning field; schema evolution
// relies on unknown-key and missing-field tolerance.
const StorageKey = "modules"

// Store is the single source of truth for persisted module configuration.
// All mutations funnel through one mutex and one write path, so a reorder
// followed immediately by a toggle cannot interleave into a corrupt write.
type Store struct {
	mu          sync.Mutex
	blob        storage.Blob
	logger      *logging.Logger
	metrics     *monitoring.Metrics
	seed        []types.ModuleDescriptor
	descriptors []types.ModuleDescriptor // loaded lazily, canonical order
	dirty       bool                     // last persist failed, retry pending

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// Option configures a Store.
type Option func(*Store)

// WithSeed overrides the built-in default descriptors used when no
// persisted configuration exists.
func WithSeed(seed []types.ModuleDescriptor) Option {
	return func(s *Store) {
		if len(seed) > 0 {
			s.seed = seed
		}
	}
}

// WithMetrics attaches persistence counters.
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(s *Store) {
		s.metrics = metrics
	}
}

// NewStore creates a module store on top of a blob backend.
func NewStore(blob storage.Blob, logger *logging.Logger, opts ...Option) *Store {
	s := &Store{
		blob:   blob,
		logger: logger,
		seed:   DefaultDescriptors(),
		subs:   make(map[int]chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the persisted descriptors in canonical order. When no blob
// exists, or the blob cannot be decoded, the seeded default set is adopted
// and persisted immediately so first-run and subsequent runs agree.
// Decode failures are recovery cases, never errors.
func (s *Store) Load() []types.ModuleDescriptor {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoaded()
	return types.CloneDescriptors(s.descriptors)
}

// Toggle flips the enabled flag of the descriptor with the given id and
// persists. An absent id is a silent no-op: the descriptor may have been
// migrated away by another app version.
func (s *Store) Toggle(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoaded()
	for i := range s.descriptors {
		if s.descriptors[i].ID == id {
			s.descriptors[i].Enabled = !s.descriptors[i].Enabled
			s.persist()
			s.notify()
			return
		}
	}
}

// Reorder moves the descriptors at the given indices to the destination
// index, preserving the relative order of the moved group, then
// re-normalizes Order fields dense and zero-based before persisting.
// Out-of-range indices are ignored.
func (s *Store) Reorder(from []int, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoaded()

	moving := make(map[int]bool, len(from))
	for _, idx := range from {
		if idx >= 0 && idx < len(s.descriptors) {
			moving[idx] = true
		}
	}
	if len(moving) == 0 {
		return
	}

	var moved, rest []types.ModuleDescriptor
	insertAt := to
	for i, desc := range s.descriptors {
		if moving[i] {
			moved = append(moved, desc)
			if i < to {
				insertAt--
			}
		} else {
			rest = append(rest, desc)
		}
	}
	if insertAt < 0 {
		insertAt = 0
	}
	if insertAt > len(rest) {
		insertAt = len(rest)
	}

	result := make([]types.ModuleDescriptor, 0, len(s.descriptors))
	result = append(result, rest[:insertAt]...)
	result = append(result, moved...)
	result = append(result, rest[insertAt:]...)

	for i := range result {
		result[i].Order = i
	}
	s.descriptors = result

	s.persist()
	s.notify()
}

// Save replaces the whole descriptor list, re-sorting into canonical order
// and renumbering Order dense and zero-based. Empty input is ignored; an
// empty dashboard is never a valid configuration.
func (s *Store) Save(descriptors []types.ModuleDescriptor) {
	if len(descriptors) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := types.CloneDescriptors(descriptors)
	types.SortDescriptors(next)
	for i := range next {
		next[i].Order = i
	}
	s.descriptors = next

	s.persist()
	s.notify()
}

// Foreground retries a pending persist. Call on app-foreground events so a
// toggle whose disk write failed still lands without waiting for the next
// mutation.
func (s *Store) Foreground() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dirty && s.descriptors != nil {
		if s.metrics != nil {
			s.metrics.PersistRetries.Inc()
		}
		s.persist()
	}
}

// Subscribe returns a channel that receives a signal after every mutation,
// plus a cancel func. Signals are coalesced; receivers re-read via Load.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch

	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

// Dirty reports whether a persist is pending retry. Exposed for health
// reporting.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// ensureLoaded populates descriptors from storage or seed. Caller holds mu.
func (s *Store) ensureLoaded() {
	if s.descriptors != nil {
		return
	}

	data, err := s.blob.Read(StorageKey)
	if err == nil {
		var stored []types.ModuleDescriptor
		derr := sonic.Unmarshal(data, &stored)
		if derr == nil && len(stored) > 0 {
			types.SortDescriptors(stored)
			s.descriptors = stored
			return
		}
		s.logger.Warn("module configuration undecodable, reseeding",
			zap.Error(derr))
	} else if err != storage.ErrNotFound {
		s.logger.Warn("module configuration unreadable, reseeding",
			zap.Error(err))
	}

	s.descriptors = types.CloneDescriptors(s.seed)
	types.SortDescriptors(s.descriptors)
	s.persist()
}

// persist writes the full ordered list through the blob store. On failure
// the in-memory state stays authoritative and the store is marked dirty for
// an opportunistic retry; a user's toggle is never rolled back because a
// disk write failed. Caller holds mu.
func (s *Store) persist() {
	data, err := sonic.Marshal(s.descriptors)
	if err != nil {
		// Descriptors are plain data; this indicates a programming error
		s.logger.Error("failed to marshal module configuration", zap.Error(err))
		return
	}

	if err := s.blob.Write(StorageKey, data); err != nil {
		s.dirty = true
		if s.metrics != nil {
			s.metrics.PersistFailures.Inc()
		}
		s.logger.Warn("failed to persist module configuration, will retry",
			zap.Error(err))
		return
	}
	s.dirty = false
}

// notify signals all subscribers without blocking. Caller holds mu.
func (s *Store) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Snapshot returns the enabled descriptors in display order.
func (s *Store) Snapshot() []types.ModuleDescriptor {
	var enabled []types.ModuleDescriptor
	for _, desc := range s.Load() {
		if desc.Enabled {
			enabled = append(enabled, desc)
		}
	}
	return enabled
}

// String implements fmt.Stringer for debug logging.
func (s *Store) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("module.Store{descriptors: %d, dirty: %v}", len(s.descriptors), s.dirty)
}
