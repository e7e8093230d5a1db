// Package archive is the badger-backed implementation of the dPoS voter's
// Archive collaborator (spec.md §4.5, §6): three prefixed key families for
// vice-blocks ('b'), round-votes ('p') and tx-votes ('t'), plus a Replay
// helper that drives the voter's apply* handlers from persisted records on
// startup.
package archive

import (
	"github.com/dgraph-io/badger/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/crypticcoin/dpos/storage"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	prefixViceBlock byte = 'b'
	prefixRoundVote byte = 'p'
	prefixTxVote    byte = 't'
)

func makePrefix(prefix byte, key [32]byte) []byte {
	out := make([]byte, 1+len(key))
	out[0] = prefix
	copy(out[1:], key[:])
	return out
}

// insert encodes entity as JSON and stores it under key, following
// storage/badger/operation/common.go's insert helper. It returns
// storage.ErrAlreadyExists if key is already populated.
func insert(key []byte, entity interface{}) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		if _, err := tx.Get(key); err == nil {
			return storage.ErrAlreadyExists
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return errors.Wrap(err, "could not check key")
		}

		val, err := json.Marshal(entity)
		if err != nil {
			return errors.Wrap(err, "could not encode entity")
		}
		if err := tx.Set(key, val); err != nil {
			return errors.Wrap(err, "could not store entity")
		}
		return nil
	}
}

// retrieve decodes the value stored under key into entity, or returns
// storage.ErrNotFound.
func retrieve(key []byte, entity interface{}) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		item, err := tx.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return storage.ErrNotFound
		}
		if err != nil {
			return errors.Wrap(err, "could not retrieve entity")
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, entity)
		})
	}
}

// iteratePrefix calls fn with the raw value for every key under prefix, in
// key order, stopping early on the first error fn returns.
func iteratePrefix(prefix byte, fn func(val []byte) error) func(*badger.Txn) error {
	return func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte{prefix}
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Seek([]byte{prefix}); it.ValidForPrefix([]byte{prefix}); it.Next() {
			item := it.Item()
			if err := item.Value(fn); err != nil {
				return err
			}
		}
		return nil
	}
}
