package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"chat-sync/contract"
	"chat-sync/domain"
	"chat-sync/domain/event"

	"github.com/samber/lo"
)

// EventFanout pushes every published delivery to the live connections of the
// conversation audience.
//
// Delivery is best effort: a slow sink is abandoned after sinkTimeout and an
// offline user simply misses the event. Clients recover from gaps by
// refetching history on their next activation.
type EventFanout struct {
	log         *slog.Logger
	deliveries  <-chan event.Delivery
	registry    contract.IRegistry
	audience    contract.AudienceResolver
	sinkTimeout time.Duration
}

func NewEventFanout(log *slog.Logger, deliveries <-chan event.Delivery, registry contract.IRegistry,
	audience contract.AudienceResolver, sinkTimeout time.Duration) *EventFanout {
	return &EventFanout{
		log:         log,
		deliveries:  deliveries,
		registry:    registry,
		audience:    audience,
		sinkTimeout: sinkTimeout,
	}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case delivery := <-w.deliveries:
			w.Fanout(ctx, delivery)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping event fanout")
			return nil
		}
	}
}

// Fanout resolves the recipients of one delivery and waits until every sink
// consumed it or timed out.
func (w *EventFanout) Fanout(ctx context.Context, delivery event.Delivery) {
	if delivery.Event == nil {
		return
	}
	recipients, err := w.recipients(delivery)
	if err != nil {
		w.log.Warn("Cannot resolve audience", "kind", delivery.Event.Kind(),
			"conversation_id", delivery.Event.ConversationID(), "error", err)
		return
	}

	var wg sync.WaitGroup
	for _, sink := range w.registry.GetSinksForUsers(recipients) {
		wg.Add(1)
		go func(sink contract.EventSink) {
			defer wg.Done()
			sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
			defer cancel()
			if err := sink.Consume(sinkCtx, delivery.Event); err != nil {
				w.log.Debug("Sink dropped event", "kind", delivery.Event.Kind(), "error", err)
			}
		}(sink)
	}
	wg.Wait()
}

func (w *EventFanout) recipients(delivery event.Delivery) ([]domain.UserID, error) {
	audience, err := w.audience.AudienceIDs(delivery.Event.ConversationID())
	if err != nil {
		return nil, err
	}
	all := lo.Uniq(append(audience, delivery.Include...))
	return lo.Without(all, delivery.Exclude...), nil
}
