package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/segmentio/ksuid"

	"github.com/arloliu/fitsio/errs"
	"github.com/arloliu/fitsio/internal/options"
)

const entryPrefix = "entry/"

// Catalog is a Pebble-backed store of entries keyed by path.
//
// A Catalog is safe for concurrent use; the iterators returned by List are not.
type Catalog struct {
	db     *pebble.DB
	cfg    *Config
	writes *pebble.WriteOptions
}

// Open opens or creates the catalog in dir.
func Open(dir string, opts ...Option) (*Catalog, error) {
	cfg := &Config{fs: vfs.Default, logger: nopLogger()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	db, err := pebble.Open(dir, &pebble.Options{FS: cfg.fs})
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", dir, err)
	}

	writes := pebble.NoSync
	if cfg.sync {
		writes = pebble.Sync
	}

	return &Catalog{db: db, cfg: cfg, writes: writes}, nil
}

// Put stores e under its path. An entry that replaces an existing one keeps the
// existing ID; a new entry without an ID gets one. A zero IndexedAt is set to now.
func (c *Catalog) Put(e Entry) (Entry, error) {
	if e.Path == "" {
		return Entry{}, fmt.Errorf("catalog entry without path: %w", errs.ErrInvalidValue)
	}

	if prev, err := c.Get(e.Path); err == nil {
		e.ID = prev.ID
	} else if !errors.Is(err, errs.ErrNotFound) {
		return Entry{}, err
	}
	if e.ID.IsNil() {
		e.ID = ksuid.New()
	}
	if e.IndexedAt.IsZero() {
		e.IndexedAt = time.Now().UTC()
	}

	value, err := json.Marshal(e)
	if err != nil {
		return Entry{}, fmt.Errorf("encode entry %s: %w", e.Path, err)
	}
	if err := c.db.Set(entryKey(e.Path), value, c.writes); err != nil {
		return Entry{}, fmt.Errorf("put %s: %w", e.Path, err)
	}

	return e, nil
}

// Get returns the entry stored for path, or ErrNotFound.
func (c *Catalog) Get(path string) (Entry, error) {
	value, closer, err := c.db.Get(entryKey(path))
	if errors.Is(err, pebble.ErrNotFound) {
		return Entry{}, fmt.Errorf("%s: %w", path, errs.ErrNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get %s: %w", path, err)
	}
	defer closer.Close()

	var e Entry
	if err := json.Unmarshal(value, &e); err != nil {
		return Entry{}, fmt.Errorf("decode entry %s: %w", path, err)
	}

	return e, nil
}

// Delete removes the entry for path. Deleting a missing path is not an error.
func (c *Catalog) Delete(path string) error {
	if err := c.db.Delete(entryKey(path), c.writes); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}

	return nil
}

// List yields the entries whose path starts with prefix, in path order. Iteration
// stops after the first error, which is yielded with a zero Entry.
func (c *Catalog) List(prefix string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		lower := entryKey(prefix)
		it, err := c.db.NewIter(&pebble.IterOptions{
			LowerBound: lower,
			UpperBound: upperBound(lower),
		})
		if err != nil {
			yield(Entry{}, err)
			return
		}
		defer it.Close()

		for valid := it.First(); valid; valid = it.Next() {
			value, err := it.ValueAndErr()
			if err != nil {
				yield(Entry{}, err)
				return
			}

			var e Entry
			if err := json.Unmarshal(value, &e); err != nil {
				yield(Entry{}, fmt.Errorf("decode entry %s: %w", it.Key(), err))
				return
			}
			if !yield(e, nil) {
				return
			}
		}

		if err := it.Error(); err != nil {
			yield(Entry{}, err)
		}
	}
}

// Close flushes and closes the store.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func entryKey(path string) []byte {
	return []byte(entryPrefix + path)
}

// upperBound returns the smallest key greater than every key starting with prefix.
func upperBound(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}

	return nil
}
