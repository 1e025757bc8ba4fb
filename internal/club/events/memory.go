package events

import (
	"context"
	"sync"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/pkg/slogx"
)

const defaultMemoryBuffer = 256

// MemoryBus delivers events over a buffered channel inside the process.
// Events still buffered when the process exits are lost.
type MemoryBus struct {
	ch     chan domain.MembershipSold
	once   sync.Once
	closed chan struct{}
}

func NewMemoryBus(buffer int) *MemoryBus {
	if buffer <= 0 {
		buffer = defaultMemoryBuffer
	}
	return &MemoryBus{
		ch:     make(chan domain.MembershipSold, buffer),
		closed: make(chan struct{}),
	}
}

// PublishMembershipSold blocks while the buffer is full.
func (b *MemoryBus) PublishMembershipSold(ctx context.Context, ev domain.MembershipSold) error {
	select {
	case <-b.closed:
		return ErrClosed
	default:
	}

	select {
	case b.ch <- ev:
		return nil
	case <-b.closed:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *MemoryBus) Consume(ctx context.Context, h Handler) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-b.closed:
			return nil
		case ev := <-b.ch:
			if err := h(ctx, ev); err != nil {
				slogx.FromContext(ctx).Error("membership event failed",
					"event_id", ev.EventID, "member_id", ev.MemberID, "error", err)
			}
		}
	}
}

func (b *MemoryBus) Ping(context.Context) error { return nil }

func (b *MemoryBus) Close() error {
	b.once.Do(func() { close(b.closed) })
	return nil
}
