package moderation

import (
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

const dictionaryPrefix = "blacklist:"

// LoadDictionary reads the censored words stored under the blacklist prefix.
// Words live in the keys, values are empty.
func LoadDictionary(db *badger.DB) ([]string, error) {
	var words []string
	err := db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(dictionaryPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			words = append(words, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	return words, err
}

// SeedDictionary stores the given words, skipping blanks.
func SeedDictionary(db *badger.DB, words []string) error {
	wb := db.NewWriteBatch()
	defer wb.Cancel()
	for _, word := range lo.Uniq(lo.Map(words, func(w string, _ int) string { return strings.TrimSpace(w) })) {
		if word == "" {
			continue
		}
		if err := wb.Set([]byte(dictionaryPrefix+word), nil); err != nil {
			return err
		}
	}
	return wb.Flush()
}
