package stream

import (
	"context"
	"time"

	drepo "MarketPulse/internal/domain/repository"
	"MarketPulse/internal/service/history"
	"MarketPulse/pkg/logger"
)

// Pump drains a MarketStream into the price history so indicator
// windows fill between scan cycles. It reconnects on stream errors
// until the context is cancelled.
type Pump struct {
	stream  drepo.MarketStream
	history *history.Store
	log     *logger.Logger
}

// NewPump binds a stream to the shared history store.
func NewPump(stream drepo.MarketStream, hist *history.Store, log *logger.Logger) *Pump {
	return &Pump{stream: stream, history: hist, log: log}
}

// Run connects, subscribes and consumes ticks until ctx is cancelled.
// It only returns early if the initial connect fails.
func (p *Pump) Run(ctx context.Context) error {
	if err := p.stream.Connect(ctx); err != nil {
		return err
	}
	if err := p.stream.Subscribe(ctx); err != nil {
		return err
	}

	for {
		ticks, errs := p.stream.Read(ctx)
	consume:
		for {
			select {
			case <-ctx.Done():
				return p.stream.Close()
			case tick, ok := <-ticks:
				if !ok {
					break consume
				}
				p.history.Append(tick.Symbol, tick.Price)
			case err, ok := <-errs:
				if !ok {
					break consume
				}
				p.log.Warn("stream read failed", logger.Error(err))
				break consume
			}
		}

		select {
		case <-ctx.Done():
			return p.stream.Close()
		default:
		}
		if err := p.stream.Reconnect(ctx); err != nil {
			p.log.Warn("stream reconnect failed", logger.Error(err))
			// Reconnect sleeps internally; avoid a hot loop when the
			// endpoint stays down.
			time.Sleep(time.Second)
		}
	}
}
