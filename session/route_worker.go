package session

import (
	"context"
	"log/slog"

	"chat-sync/domain"
)

// RouteWorker follows a stream of conversation ids (navigation) and keeps the
// Controller on the latest one. Repeated ids collapse into a single activation.
type RouteWorker struct {
	log        *slog.Logger
	controller *Controller
	routes     <-chan domain.ConversationID
}

func NewRouteWorker(log *slog.Logger, controller *Controller, routes <-chan domain.ConversationID) *RouteWorker {
	return &RouteWorker{log: log, controller: controller, routes: routes}
}

func (w *RouteWorker) Run(ctx context.Context) error {
	defer w.controller.Deactivate()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping route worker")
			return nil
		case id, ok := <-w.routes:
			if !ok {
				return nil
			}
			if _, err := w.controller.Activate(ctx, id); err != nil {
				w.log.Warn("Route ignored", "conversation_id", id, "error", err)
			}
		}
	}
}
