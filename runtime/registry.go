package runtime

import (
	"sync"

	"chat-sync/contract"
	"chat-sync/domain"

	"github.com/samber/lo"
)

// Registry keeps the live connections of every user. A user may hold several
// connections (tabs, devices), each one with its own sink.
type Registry struct {
	mu          sync.RWMutex
	Connections map[domain.UserID]map[string]contract.EventSink
}

func NewRegistry() *Registry {
	return &Registry{Connections: make(map[domain.UserID]map[string]contract.EventSink)}
}

// GetSinksForUsers resolves the given users into the sinks of all their connections.
// Users without a live connection are skipped.
func (r *Registry) GetSinksForUsers(userIDs []domain.UserID) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sinks []contract.EventSink
	for _, userID := range lo.Uniq(userIDs) {
		for _, sink := range r.Connections[userID] {
			sinks = append(sinks, sink)
		}
	}
	return sinks
}

func (r *Registry) Subscribe(userID domain.UserID, connectionID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.Connections[userID]; !ok {
		r.Connections[userID] = make(map[string]contract.EventSink)
	}
	r.Connections[userID][connectionID] = sink
}

// Unsubscribe drops one connection. The user entry goes away with its last connection.
func (r *Registry) Unsubscribe(userID domain.UserID, connectionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if conns, ok := r.Connections[userID]; ok {
		delete(conns, connectionID)
		if len(conns) == 0 {
			delete(r.Connections, userID)
		}
	}
}

// ConnectedUsers lists the users holding at least one connection.
func (r *Registry) ConnectedUsers() []domain.UserID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return lo.Keys(r.Connections)
}
