// Package storage keeps encoded replays in a pebble database, keyed by KSUID
// so that key order is creation order.
package storage

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// ErrNotFound is returned when no replay is stored under an id.
var ErrNotFound = errors.New("replay not found")

// Replay keys are "replay/" followed by the 20 id bytes. The upper bound is
// the prefix with its last byte incremented.
var (
	replayPrefix = []byte("replay/")
	replayUpper  = []byte("replay0")
)

const idLength = 20

func replayKey(id ksuid.KSUID) []byte {
	key := make([]byte, 0, len(replayPrefix)+idLength)
	return append(append(key, replayPrefix...), id.Bytes()...)
}

// Archive stores raw .osr bytes. It does not validate what it stores.
type Archive struct {
	db *pebble.DB
}

// Open opens or creates an archive at path
func Open(path string) (*Archive, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	return &Archive{db: db}, nil
}

// Put stores data under a new id
func (a *Archive) Put(data []byte) (ksuid.KSUID, error) {
	id := ksuid.New()
	if err := a.db.Set(replayKey(id), data, pebble.Sync); err != nil {
		return ksuid.Nil, fmt.Errorf("store replay: %w", err)
	}
	return id, nil
}

// Get returns a copy of the replay stored under id
func (a *Archive) Get(id ksuid.KSUID) ([]byte, error) {
	data, closer, err := a.db.Get(replayKey(id))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read replay %s: %w", id, err)
	}
	defer closer.Close()

	// data is only valid until closer is closed
	return bytes.Clone(data), nil
}

// Delete removes the replay stored under id
func (a *Archive) Delete(id ksuid.KSUID) error {
	key := replayKey(id)
	_, closer, err := a.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read replay %s: %w", id, err)
	}
	closer.Close()

	if err := a.db.Delete(key, pebble.Sync); err != nil {
		return fmt.Errorf("delete replay %s: %w", id, err)
	}
	return nil
}

// List returns up to limit ids in creation order. A limit of zero or less
// returns every id.
func (a *Archive) List(limit int) ([]ksuid.KSUID, error) {
	iter, err := a.db.NewIter(&pebble.IterOptions{
		LowerBound: replayPrefix,
		UpperBound: replayUpper,
	})
	if err != nil {
		return nil, fmt.Errorf("list replays: %w", err)
	}
	defer iter.Close()

	var ids []ksuid.KSUID
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key()[len(replayPrefix):])
		if err != nil {
			return nil, fmt.Errorf("list replays: bad key %x: %w", iter.Key(), err)
		}
		ids = append(ids, id)
		if limit > 0 && len(ids) >= limit {
			break
		}
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("list replays: %w", err)
	}
	return ids, nil
}

// Close closes the underlying database
func (a *Archive) Close() error {
	return a.db.Close()
}
