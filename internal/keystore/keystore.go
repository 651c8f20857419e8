// Package keystore keeps named frequency tables ("keys") in a leveldb
// database, subject to a storage quota.
package keystore

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/chronos-tachyon/plainsight"
)

const (
	// DefaultQuota is the storage quota used when Options.Quota is zero.
	DefaultQuota = 5 << 20

	// DefaultCacheSize is the number of decoded tables kept in memory when
	// Options.CacheSize is zero.
	DefaultCacheSize = 16

	modelPrefix = "model/"
)

var (
	ErrDuplicate   = errors.New("keystore: a key with that name already exists")
	ErrNotFound    = errors.New("keystore: no key with that name")
	ErrQuota       = errors.New("keystore: storing key exceeds storage quota")
	ErrInvalidName = errors.New("keystore: key name must be non-empty")
	ErrCorrupt     = errors.New("keystore: stored key is corrupt")
)

// EventKind distinguishes the events delivered to listeners.
type EventKind int

const (
	KeyAdded EventKind = iota
	KeyDeleted
)

// String returns the name of this EventKind.
func (k EventKind) String() string {
	switch k {
	case KeyAdded:
		return "added"
	case KeyDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Event reports a change to the set of stored keys.
type Event struct {
	Kind EventKind
	Name string
}

// Options configures a Store.
type Options struct {
	// Quota is the total number of bytes (keys plus encoded values) the
	// store may hold.
	Quota int64

	// CacheSize is the number of decoded tables to keep in memory.
	CacheSize int

	Logger log15.Logger
}

// Store is a repository of named frequency tables.  It is safe for
// concurrent use.
type Store struct {
	mu        sync.Mutex
	db        *leveldb.DB
	cache     *lru.Cache
	quota     int64
	used      int64
	listeners []func(Event)
	log       log15.Logger
}

// Open opens (creating if necessary) the store at path.
func Open(path string, opts Options) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "keystore: open %q", path)
	}
	return newStore(db, opts)
}

// OpenMemory opens a store that lives only in memory.
func OpenMemory(opts Options) (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "keystore: open memory store")
	}
	return newStore(db, opts)
}

func newStore(db *leveldb.DB, opts Options) (*Store, error) {
	if opts.Quota <= 0 {
		opts.Quota = DefaultQuota
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.Logger == nil {
		opts.Logger = log15.New()
		opts.Logger.SetHandler(log15.DiscardHandler())
	}

	cache, err := lru.New(opts.CacheSize)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "keystore: create cache")
	}

	s := &Store{
		db:    db,
		cache: cache,
		quota: opts.Quota,
		log:   opts.Logger,
	}

	iter := db.NewIterator(util.BytesPrefix([]byte(modelPrefix)), nil)
	for iter.Next() {
		s.used += int64(len(iter.Key()) + len(iter.Value()))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "keystore: scan")
	}

	s.log.Debug("Opened key store", "used", s.used, "quota", s.quota)
	return s, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Purge()
	return s.db.Close()
}

// Subscribe registers fn to be called after every successful Add or Delete.
// fn runs on the goroutine that made the change, after the store's lock has
// been released.
func (s *Store) Subscribe(fn func(Event)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Add stores t under name.  It fails with ErrDuplicate if name is taken and
// with ErrQuota if the store would grow beyond its quota; in either case
// nothing is written.
func (s *Store) Add(name string, t *plainsight.Table) error {
	if name == "" {
		return ErrInvalidName
	}

	value, err := encodeTable(t)
	if err != nil {
		return err
	}

	listeners, err := s.add(name, t, value)
	if err != nil {
		return err
	}
	s.log.Info("Added key", "name", name, "order", t.N(), "ngrams", t.Len(), "bytes", len(value))
	notify(listeners, Event{Kind: KeyAdded, Name: name})
	return nil
}

func (s *Store) add(name string, t *plainsight.Table, value []byte) ([]func(Event), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := modelKey(name)
	has, err := s.db.Has(key, nil)
	if err != nil {
		return nil, errors.Wrap(err, "keystore: has")
	}
	if has {
		return nil, errors.Wrapf(ErrDuplicate, "%q", name)
	}

	size := int64(len(key) + len(value))
	if s.used+size > s.quota {
		return nil, errors.Wrapf(ErrQuota, "%q needs %d bytes, %d of %d free", name, size, s.quota-s.used, s.quota)
	}

	if err := s.db.Put(key, value, nil); err != nil {
		return nil, errors.Wrap(err, "keystore: put")
	}
	s.used += size
	s.cache.Add(name, t)
	return s.listeners, nil
}

// Delete removes the key called name.  It fails with ErrNotFound if there
// is no such key.
func (s *Store) Delete(name string) error {
	listeners, err := s.delete(name)
	if err != nil {
		return err
	}
	s.log.Info("Deleted key", "name", name)
	notify(listeners, Event{Kind: KeyDeleted, Name: name})
	return nil
}

func (s *Store) delete(name string) ([]func(Event), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := modelKey(name)
	value, err := s.db.Get(key, nil)
	if err == leveldb.ErrNotFound {
		return nil, errors.Wrapf(ErrNotFound, "%q", name)
	}
	if err != nil {
		return nil, errors.Wrap(err, "keystore: get")
	}

	if err := s.db.Delete(key, nil); err != nil {
		return nil, errors.Wrap(err, "keystore: delete")
	}
	s.used -= int64(len(key) + len(value))
	s.cache.Remove(name)
	return s.listeners, nil
}

// Get returns the table stored under name.  It fails with ErrNotFound if
// there is no such key.
func (s *Store) Get(name string) (*plainsight.Table, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cached, ok := s.cache.Get(name); ok {
		return cached.(*plainsight.Table), nil
	}

	value, err := s.db.Get(modelKey(name), nil)
	if err == leveldb.ErrNotFound {
		return nil, errors.Wrapf(ErrNotFound, "%q", name)
	}
	if err != nil {
		return nil, errors.Wrap(err, "keystore: get")
	}

	t, err := decodeTable(value)
	if err != nil {
		return nil, errors.WithMessagef(err, "key %q", name)
	}
	s.cache.Add(name, t)
	return t, nil
}

// Has reports whether a key called name exists.
func (s *Store) Has(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	has, err := s.db.Has(modelKey(name), nil)
	if err != nil {
		return false, errors.Wrap(err, "keystore: has")
	}
	return has, nil
}

// List returns the names of all stored keys in ascending order.
func (s *Store) List() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var names []string
	iter := s.db.NewIterator(util.BytesPrefix([]byte(modelPrefix)), nil)
	for iter.Next() {
		names = append(names, string(iter.Key()[len(modelPrefix):]))
	}
	iter.Release()
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "keystore: list")
	}
	return names, nil
}

// Usage returns the fraction of the quota currently occupied; 1.0 means
// the store is full.
func (s *Store) Usage() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.used) / float64(s.quota)
}

func modelKey(name string) []byte {
	return []byte(modelPrefix + name)
}

func notify(listeners []func(Event), ev Event) {
	for _, fn := range listeners {
		fn(ev)
	}
}
