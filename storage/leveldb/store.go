// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package leveldb implements peer.HeaderRepository over a LevelDB
// database: a tabular header store fed by idempotent create_headers
// batches, external to the peer session's own scope.
package leveldb

import (
	"errors"

	"github.com/nicolafiorillo/bitcoinrules/chain"
	"github.com/nicolafiorillo/bitcoinrules/chainhash"
	"github.com/syndtr/goleveldb/leveldb"
)

// Key layout: a one-byte prefix separates the header table from the
// single tip marker, so both can live in the same flat keyspace.
const (
	headerPrefix byte = 0x01
	tipKey       byte = 0x02
)

// Store is a LevelDB-backed HeaderRepository. Headers are keyed by
// hash, so re-inserting an already-known header is a no-op overwrite
// rather than a duplicate -- CreateHeaders is idempotent for free.
type Store struct {
	db *leveldb.DB
}

// Open opens (creating if absent) a LevelDB database at path.
func Open(path string) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func headerKey(hash chainhash.Hash) []byte {
	key := make([]byte, 1+chainhash.HashSize)
	key[0] = headerPrefix
	copy(key[1:], hash[:])
	return key
}

// CreateHeaders writes each header keyed by its hash and advances the
// tip marker to the last header in the batch. A header already present
// is simply overwritten with identical bytes, so retried inserts of
// the same batch are idempotent.
func (s *Store) CreateHeaders(headers []*chain.Header) error {
	batch := new(leveldb.Batch)

	var lastHash chainhash.Hash
	haveLast := false

	for _, h := range headers {
		hash := h.Hash()
		batch.Put(headerKey(hash), h.Serialize())
		lastHash = hash
		haveLast = true
	}

	if haveLast {
		batch.Put([]byte{tipKey}, lastHash[:])
	}

	return s.db.Write(batch, nil)
}

// Tip returns the hash written by the most recent CreateHeaders call,
// or false if the store has never received a batch.
func (s *Store) Tip() (chainhash.Hash, bool, error) {
	raw, err := s.db.Get([]byte{tipKey}, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return chainhash.Hash{}, false, nil
	}
	if err != nil {
		return chainhash.Hash{}, false, err
	}

	var hash chainhash.Hash
	copy(hash[:], raw)
	return hash, true, nil
}

// Header looks up a single persisted header by hash, for callers (such
// as PreviousOutputLookup-adjacent tooling) that need random access
// rather than the tip alone.
func (s *Store) Header(hash chainhash.Hash) (*chain.Header, bool, error) {
	raw, err := s.db.Get(headerKey(hash), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	h, err := chain.DeserializeHeader(raw)
	if err != nil {
		return nil, false, err
	}
	return h, true, nil
}
