package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

const sequenceBandwidth = 100

// nextID leases ids from a badger sequence. Ids start at 1.
func nextID(seq *badger.Sequence) (int64, error) {
	n, err := seq.Next()
	if err != nil {
		return 0, fmt.Errorf("sequence: %w", err)
	}
	return int64(n) + 1, nil
}

func putJSON(txn *badger.Txn, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return txn.Set([]byte(key), data)
}

func getJSON(txn *badger.Txn, key string, v any) error {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

// scanJSON decodes every value under prefix, in key order.
func scanJSON[T any](txn *badger.Txn, prefix string) ([]T, error) {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	var out []T
	p := []byte(prefix)
	for it.Seek(p); it.ValidForPrefix(p); it.Next() {
		var v T
		if err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &v)
		}); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
