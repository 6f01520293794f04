package coll

import (
	"fmt"
	"hash/maphash"
	"iter"
	"math"
	"strings"
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// LoadFactor bounds the ratio of live entries to capacity. Put grows the
	// table before an insertion would reach it, so size/capacity < LoadFactor
	// holds after every successful Put.
	LoadFactor = 0.7

	// DefaultCapacity is the capacity used by NewDefaultElasticMap: one cache
	// line worth of word-sized slots.
	DefaultCapacity = int(CacheLineSize / unsafe.Sizeof(uintptr(0)))
)

// slotState tags a table slot. Only slotEmpty terminates a lookup;
// slotTombstone keeps the probe path of other keys intact and may be reused
// by a later insertion.
type slotState uint8

const (
	slotEmpty slotState = iota
	slotOccupied
	slotTombstone
)

type elasticSlot[K comparable, V any] struct {
	state slotState
	key   K
	value V
}

// ElasticMap is an open-addressing hash map whose probe rounds widen
// logarithmically with depth. Deletions leave tombstones that are purged by
// the next rehash.
//
// Key features:
//   - Probe round depth scans floor(ln(depth+2)^2)+1 slots from the primary
//     slot, trading a few extra comparisons for less clustering than fixed
//     linear probing
//   - Lazy deletion: removed entries become tombstones that do not break the
//     probe path of other keys
//   - Automatic doubling before the load factor (0.7) would be reached, and a
//     same-capacity rehash once tombstones crowd the table
//   - Defaults to hash/maphash, customizable on creation
//
// The zero ElasticMap is empty and ready to use with DefaultCapacity slots.
// An ElasticMap is not safe for concurrent use. Callers that share one
// between goroutines must synchronize every call themselves.
type ElasticMap[K comparable, V any] struct {
	//lint:ignore U1000 prevents false sharing
	pad [(CacheLineSize - unsafe.Sizeof(struct {
		table           []byte
		size            int
		tombstones      int
		seed            maphash.Seed
		keyHash         func()
		logger          unsafe.Pointer
		totalGrowths    uint32
		totalPurges     uint32
		tombstoneRehash bool
	}{})%CacheLineSize) % CacheLineSize]byte

	table           []elasticSlot[K, V]
	size            int
	tombstones      int
	seed            maphash.Seed
	keyHash         func(seed maphash.Seed, key K) uint64
	logger          *zap.Logger
	totalGrowths    uint32
	totalPurges     uint32
	tombstoneRehash bool // WithTombstoneRehash
}

// NewElasticMap creates an ElasticMap with room for capacity slots.
//
// Parameters:
//   - capacity: initial number of slots, must be positive
//   - WithLogger, WithSeed, WithTombstoneRehash options
func NewElasticMap[K comparable, V any](
	capacity int,
	options ...func(*MapConfig),
) (*ElasticMap[K, V], error) {
	return NewElasticMapWithHasher[K, V](capacity, nil, options...)
}

// NewElasticMapWithHasher creates an ElasticMap with a custom key hash.
//
// Parameters:
//   - capacity: initial number of slots, must be positive
//   - keyHash: nil uses maphash.Comparable. Equal keys must hash equally.
//   - WithLogger, WithSeed, WithTombstoneRehash options
func NewElasticMapWithHasher[K comparable, V any](
	capacity int,
	keyHash func(seed maphash.Seed, key K) uint64,
	options ...func(*MapConfig),
) (*ElasticMap[K, V], error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "capacity must be positive, got %d", capacity)
	}
	cfg := defaultMapConfig()
	for _, opt := range options {
		opt(&cfg)
	}
	if !cfg.seedSet {
		cfg.seed = maphash.MakeSeed()
	}
	if keyHash == nil {
		keyHash = maphash.Comparable[K]
	}
	return &ElasticMap[K, V]{
		table:           make([]elasticSlot[K, V], capacity),
		seed:            cfg.seed,
		keyHash:         keyHash,
		logger:          cfg.logger,
		tombstoneRehash: cfg.tombstoneRehash,
	}, nil
}

// NewDefaultElasticMap creates an ElasticMap with DefaultCapacity slots.
func NewDefaultElasticMap[K comparable, V any](options ...func(*MapConfig)) *ElasticMap[K, V] {
	m, _ := NewElasticMap[K, V](DefaultCapacity, options...)
	return m
}

// init prepares a zero ElasticMap with the default configuration.
func (m *ElasticMap[K, V]) init() {
	cfg := defaultMapConfig()
	m.table = make([]elasticSlot[K, V], DefaultCapacity)
	m.seed = maphash.MakeSeed()
	m.keyHash = maphash.Comparable[K]
	m.logger = cfg.logger
	m.tombstoneRehash = cfg.tombstoneRehash
}

// Put stores value under key, replacing the value of a live equal key.
// Nil keys and nil values are rejected with ErrInvalidArgument.
func (m *ElasticMap[K, V]) Put(key K, value V) error {
	if isNil(key) {
		return errors.Wrap(ErrInvalidArgument, "key must not be nil")
	}
	if isNil(value) {
		return errors.Wrap(ErrInvalidArgument, "value must not be nil")
	}
	if m.table == nil {
		m.init()
	}
	hash := m.keyHash(m.seed, key)
	if idx, ok := m.find(hash, key); ok {
		m.table[idx].value = value
		return nil
	}
	if err := m.reserve(); err != nil {
		return err
	}
	return m.insert(hash, key, value)
}

// Get returns the value stored under key. ok is false if the key is absent.
// A nil key is rejected with ErrInvalidArgument.
func (m *ElasticMap[K, V]) Get(key K) (value V, ok bool, err error) {
	if isNil(key) {
		return value, false, errors.Wrap(ErrInvalidArgument, "key must not be nil")
	}
	if m.size == 0 {
		return value, false, nil
	}
	if idx, found := m.find(m.keyHash(m.seed, key), key); found {
		return m.table[idx].value, true, nil
	}
	return value, false, nil
}

// Load is Get without the argument check; a nil key is simply absent.
func (m *ElasticMap[K, V]) Load(key K) (value V, ok bool) {
	value, ok, _ = m.Get(key)
	return value, ok
}

// Contains reports whether key is live in the map.
func (m *ElasticMap[K, V]) Contains(key K) bool {
	_, ok := m.Load(key)
	return ok
}

// Remove tombstones the entry stored under key and reports whether there
// was one. A nil key is rejected with ErrInvalidArgument.
func (m *ElasticMap[K, V]) Remove(key K) (bool, error) {
	if isNil(key) {
		return false, errors.Wrap(ErrInvalidArgument, "key must not be nil")
	}
	if m.size == 0 {
		return false, nil
	}
	idx, ok := m.find(m.keyHash(m.seed, key), key)
	if !ok {
		return false, nil
	}
	m.table[idx] = elasticSlot[K, V]{state: slotTombstone}
	m.size--
	m.tombstones++
	return true, nil
}

// find probes for a live entry equal to key. The scan stops at the first
// empty slot; tombstones are stepped over.
func (m *ElasticMap[K, V]) find(hash uint64, key K) (int, bool) {
	p := makeProbeSeq(hash, len(m.table))
	for idx, ok := p.next(); ok; idx, ok = p.next() {
		s := &m.table[idx]
		switch s.state {
		case slotEmpty:
			return 0, false
		case slotOccupied:
			if s.key == key {
				return idx, true
			}
		}
	}
	return 0, false
}

// insert writes a new entry into the first empty or tombstoned slot of the
// probe sequence. The caller guarantees key is not live.
func (m *ElasticMap[K, V]) insert(hash uint64, key K, value V) error {
	p := makeProbeSeq(hash, len(m.table))
	for idx, ok := p.next(); ok; idx, ok = p.next() {
		s := &m.table[idx]
		if s.state == slotOccupied {
			continue
		}
		if s.state == slotTombstone {
			m.tombstones--
		}
		*s = elasticSlot[K, V]{state: slotOccupied, key: key, value: value}
		m.size++
		return nil
	}
	return errors.Wrapf(ErrMapFull, "capacity: %d, size: %d", len(m.table), m.size)
}

func overLoad(n, capacity int) bool {
	return float64(n)/float64(capacity) >= LoadFactor
}

// reserve makes room for one new entry: it doubles the capacity while one
// more live entry would reach the load factor, or rehashes in place when
// tombstones alone push the table over it.
func (m *ElasticMap[K, V]) reserve() error {
	capacity := len(m.table)
	if overLoad(m.size+1, capacity) {
		newCapacity := capacity
		for overLoad(m.size+1, newCapacity) {
			newCapacity <<= 1
		}
		dropped := m.tombstones
		if err := m.rehash(newCapacity); err != nil {
			return err
		}
		m.totalGrowths++
		m.logger.Debug("elastic map grew",
			zap.Int("from", capacity),
			zap.Int("to", newCapacity),
			zap.Int("size", m.size),
			zap.Int("tombstones", dropped))
		return nil
	}
	if m.tombstoneRehash && m.tombstones > 0 && overLoad(m.size+m.tombstones+1, capacity) {
		dropped := m.tombstones
		if err := m.rehash(capacity); err != nil {
			return err
		}
		m.totalPurges++
		m.logger.Debug("elastic map purged tombstones",
			zap.Int("capacity", capacity),
			zap.Int("size", m.size),
			zap.Int("tombstones", dropped))
	}
	return nil
}

// rehash re-inserts every live entry into a fresh table of newCapacity
// slots. Tombstones are dropped.
func (m *ElasticMap[K, V]) rehash(newCapacity int) error {
	old := m.table
	m.table = make([]elasticSlot[K, V], newCapacity)
	m.size = 0
	m.tombstones = 0
	for i := range old {
		if s := &old[i]; s.state == slotOccupied {
			if err := m.insert(m.keyHash(m.seed, s.key), s.key, s.value); err != nil {
				return err
			}
		}
	}
	return nil
}

// Size returns the number of live entries. This is an O(1) operation.
func (m *ElasticMap[K, V]) Size() int {
	return m.size
}

// IsZero reports whether the map holds no live entries.
func (m *ElasticMap[K, V]) IsZero() bool {
	return m.size == 0
}

// Capacity returns the current number of slots.
func (m *ElasticMap[K, V]) Capacity() int {
	return len(m.table)
}

// Clear removes every entry, tombstones included. The capacity is kept.
func (m *ElasticMap[K, V]) Clear() {
	clear(m.table)
	m.size = 0
	m.tombstones = 0
}

// KeySet returns a snapshot of the live keys in no particular order.
func (m *ElasticMap[K, V]) KeySet() []K {
	keys := make([]K, 0, m.size)
	for k := range m.All() {
		keys = append(keys, k)
	}
	return keys
}

// Values returns a snapshot of the live values in no particular order.
func (m *ElasticMap[K, V]) Values() []V {
	values := make([]V, 0, m.size)
	for _, v := range m.All() {
		values = append(values, v)
	}
	return values
}

// Range calls yield for each live entry in ascending slot order until yield
// returns false. The map must not be modified during the call.
func (m *ElasticMap[K, V]) Range(yield func(key K, value V) bool) {
	for i := range m.table {
		if s := &m.table[i]; s.state == slotOccupied {
			if !yield(s.key, s.value) {
				return
			}
		}
	}
}

// All is the iterator version of Range.
func (m *ElasticMap[K, V]) All() iter.Seq2[K, V] {
	return m.Range
}

// ToMap collect all entries and return a map[K]V
func (m *ElasticMap[K, V]) ToMap() map[K]V {
	a := make(map[K]V, m.size)
	for k, v := range m.All() {
		a[k] = v
	}
	return a
}

// ToMapWithLimit collect up to limit entries into a map[K]V, limit < 0 is no limit
func (m *ElasticMap[K, V]) ToMapWithLimit(limit int) map[K]V {
	if limit == 0 {
		return map[K]V{}
	}
	if limit < 0 {
		limit = math.MaxInt
	}
	a := make(map[K]V, min(m.size, limit))
	m.Range(func(k K, v V) bool {
		a[k] = v
		limit--
		return limit > 0
	})
	return a
}

// String implement the formatting output interface fmt.Stringer
func (m *ElasticMap[K, V]) String() string {
	const limit = 1024
	return strings.Replace(fmt.Sprint(m.ToMapWithLimit(limit)), "map[", "ElasticMap[", 1)
}

// MarshalJSON JSON serialization
func (m *ElasticMap[K, V]) MarshalJSON() ([]byte, error) {
	return marshalJSON(m.ToMap())
}

// UnmarshalJSON JSON deserialization. Decoded entries are added to the map
// with Put, so existing keys are overwritten.
func (m *ElasticMap[K, V]) UnmarshalJSON(data []byte) error {
	var a map[K]V
	if err := unmarshalJSON(data, &a); err != nil {
		return err
	}
	if m.table == nil {
		m.init()
	}
	for k, v := range a {
		if err := m.Put(k, v); err != nil {
			return err
		}
	}
	return nil
}

// MapIterator is a lazy, single-pass cursor over the live entries of an
// ElasticMap in ascending slot order. It cannot be restarted.
type MapIterator[K comparable, V any] struct {
	table []elasticSlot[K, V]
	next  int
	key   K
	value V
}

// Iter returns a MapIterator positioned before the first entry. The map must
// not be modified while the iterator is in use.
func (m *ElasticMap[K, V]) Iter() *MapIterator[K, V] {
	return &MapIterator[K, V]{table: m.table}
}

// Next advances to the next live entry and reports whether there was one.
func (it *MapIterator[K, V]) Next() bool {
	for it.next < len(it.table) {
		s := &it.table[it.next]
		it.next++
		if s.state == slotOccupied {
			it.key, it.value = s.key, s.value
			return true
		}
	}
	var (
		k K
		v V
	)
	it.key, it.value = k, v
	return false
}

// Key returns the key at the iterator's current position. This is
// only valid after a call to Next() that returns true.
func (it *MapIterator[K, V]) Key() K {
	return it.key
}

// Value returns the value at the iterator's current position. This
// is only valid after a call to Next() that returns true.
func (it *MapIterator[K, V]) Value() V {
	return it.value
}
