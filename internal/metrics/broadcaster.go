package metrics

import (
	"context"
	"time"

	"github.com/Xyon15/Hardware-Monitor/internal/domain"
	"github.com/Xyon15/Hardware-Monitor/internal/logger"
)

// Broadcaster periodically pushes the current snapshot to a sink, feeding
// the websocket hub so connected display clients do not have to poll.
type Broadcaster struct {
	interval time.Duration
	reader   *CachedReader
	sink     func(domain.Snapshot)
	log      logger.Logger
}

func NewBroadcaster(interval time.Duration, reader *CachedReader, sink func(domain.Snapshot), log logger.Logger) *Broadcaster {
	return &Broadcaster{interval: interval, reader: reader, sink: sink, log: log}
}

func (b *Broadcaster) Start(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	b.tick(ctx)

	for {
		select {
		case <-ticker.C:
			b.tick(ctx)
		case <-ctx.Done():
			b.log.Debug("broadcaster stopped")
			return
		}
	}
}

func (b *Broadcaster) tick(ctx context.Context) {
	if b.sink == nil {
		return
	}
	b.sink(b.reader.Get(ctx))
}
