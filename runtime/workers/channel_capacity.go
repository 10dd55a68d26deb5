package workers

import (
	"context"
	"log/slog"
	"reflect"
	"time"
)

type NamedChannel struct {
	Name    string
	Channel any
}

// ChannelUsage is one sample of a buffered channel.
type ChannelUsage struct {
	Name     string
	Capacity int
	Length   int
}

func (u ChannelUsage) Left() int { return u.Capacity - u.Length }

// ChannelCapacityWorker periodically samples the length of internal channels
// and warns when one of them is close to full. Reading len and cap never blocks
// the goroutines using the channel.
type ChannelCapacityWorker struct {
	log                  *slog.Logger
	channels             []NamedChannel
	interval             time.Duration
	lowCapacityThreshold int
}

func NewChannelCapacityWorker(log *slog.Logger, channels []NamedChannel,
	interval time.Duration, lowCapacityThreshold int) *ChannelCapacityWorker {
	return &ChannelCapacityWorker{
		log:                  log,
		channels:             channels,
		interval:             interval,
		lowCapacityThreshold: lowCapacityThreshold,
	}
}

func (w *ChannelCapacityWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping channel sampling")
			return nil
		case <-ticker.C:
			for _, usage := range w.Sample() {
				w.report(usage)
			}
		}
	}
}

// Sample reads the usage of every registered channel. Values that are not
// channels are logged and skipped.
func (w *ChannelCapacityWorker) Sample() []ChannelUsage {
	usages := make([]ChannelUsage, 0, len(w.channels))
	for _, nc := range w.channels {
		v := reflect.ValueOf(nc.Channel)
		if v.Kind() != reflect.Chan {
			w.log.Error("Provided object is not a channel", "name", nc.Name)
			continue
		}
		usages = append(usages, ChannelUsage{Name: nc.Name, Capacity: v.Cap(), Length: v.Len()})
	}
	return usages
}

// LowCapacity reports whether a buffered channel has little room left.
func (w *ChannelCapacityWorker) LowCapacity(u ChannelUsage) bool {
	// Unbuffered channels have nothing to report
	if u.Capacity <= 0 {
		return false
	}
	return u.Left() <= w.lowCapacityThreshold
}

func (w *ChannelCapacityWorker) report(u ChannelUsage) {
	w.log.Debug("Channel usage", "name", u.Name, "length", u.Length, "capacity", u.Capacity)
	if w.LowCapacity(u) {
		w.log.Warn("Channel capacity is running low", "name", u.Name, "left", u.Left())
	}
}
