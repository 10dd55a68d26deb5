package internal

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const defaultInspectPrefix = "msg:"

// InspectRow describes one stored key for the debug endpoint.
type InspectRow struct {
	Key       string `json:"key"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp,omitempty"`
	EntityID  string `json:"entityId"`
	Namespace string `json:"namespace,omitempty"`
	Size      int    `json:"size"`
}

// DebugServer exposes a read-only view of the badger keys on a separate port.
// It runs as a supervised worker.
type DebugServer struct {
	log    *slog.Logger
	db     *badger.DB
	server *http.Server
}

func NewDebugServer(log *slog.Logger, db *badger.DB, addr string) *DebugServer {
	d := &DebugServer{log: log, db: db}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /debug/inspect", d.inspect)
	d.server = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	return d
}

func (d *DebugServer) Handler() http.Handler { return d.server.Handler }

func (d *DebugServer) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		d.log.Info("Debug server listening", "addr", d.server.Addr)
		errCh <- d.server.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return d.server.Shutdown(shutdownCtx)
	}
}

func (d *DebugServer) inspect(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		prefix = defaultInspectPrefix
	}
	rows := make([]InspectRow, 0)
	err := d.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek([]byte(prefix)); it.ValidForPrefix([]byte(prefix)); it.Next() {
			item := it.Item()
			rows = append(rows, MapKey(string(item.Key()), int(item.ValueSize())))
		}
		return nil
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rows)
}

// MapKey splits a storage key into its parts:
// msg:{conversation}:{unix_nano}:{id}, user:{id}, conv:{id} or seq:{name}.
func MapKey(key string, size int) InspectRow {
	parts := strings.Split(key, ":")
	row := InspectRow{Key: key, Type: strings.ToUpper(parts[0]), Size: size}
	switch {
	case parts[0] == "msg" && len(parts) == 4:
		row.Namespace = parts[1]
		if tsNano, err := strconv.ParseInt(parts[2], 10, 64); err == nil {
			row.Timestamp = time.Unix(0, tsNano).UTC().Format(time.RFC3339)
		}
		row.EntityID = strings.TrimLeft(parts[3], "0")
	case len(parts) == 2:
		row.EntityID = strings.TrimLeft(parts[1], "0")
	default:
		row.Type = "RAW"
	}
	return row
}
