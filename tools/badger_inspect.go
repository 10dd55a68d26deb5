package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"chat-sync/internal"

	"github.com/dgraph-io/badger/v4"
	"github.com/olekukonko/tablewriter"
)

func main() {
	dbPath := flag.String("db", "./data/badger", "Path to badger DB")
	prefix := flag.String("prefix", "msg:", "Prefix to scan (msg:, conv:, user:, blacklist:)")
	withValues := flag.Bool("values", false, "Print the stored JSON")
	flag.Parse()

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Timestamp", "Entity ID", "Conversation", "Size", "Value"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			row := internal.MapKey(string(item.Key()), int(item.ValueSize()))
			value := ""
			if *withValues {
				raw, err := item.ValueCopy(nil)
				if err != nil {
					return err
				}
				value = string(raw)
			}
			table.Append([]string{row.Key, row.Type, row.Timestamp, row.EntityID, row.Namespace,
				fmt.Sprintf("%d", row.Size), value})
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true)

	db, err := badger.Open(opts)
	if err != nil && strings.Contains(err.Error(), "Log truncate required") {
		// Replay the value log once in write mode, then reopen read-only.
		repaired, repairErr := badger.Open(badger.DefaultOptions(path).WithLogger(nil).WithBypassLockGuard(true))
		if repairErr != nil {
			return nil, fmt.Errorf("repair failed: %w", repairErr)
		}
		_ = repaired.Close()
		return badger.Open(opts)
	}
	return db, err
}
