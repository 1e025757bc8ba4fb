package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	"github.com/aussiebroadwan/clubhouse/pkg/slogx"
	"github.com/redis/go-redis/v9"
)

const (
	fieldType    = "type"
	fieldPayload = "payload"
)

type RedisConfig struct {
	Stream   string
	Group    string
	Consumer string
	// BatchSize is the number of entries read per XREADGROUP.
	BatchSize int64
	// Block is how long a read waits for new entries. Must be positive; a
	// zero block would wait forever and never notice cancellation.
	Block time.Duration
	// RetryDelay is the pause after a failed read or a batch with failed
	// entries, and the earliest time failed entries are tried again.
	RetryDelay time.Duration
}

func (c *RedisConfig) setDefaults() {
	if c.Stream == "" {
		c.Stream = "club:memberships"
	}
	if c.Group == "" {
		c.Group = "membership-worker"
	}
	if c.Consumer == "" {
		c.Consumer = "clubhouse"
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 10
	}
	if c.Block <= 0 {
		c.Block = 5 * time.Second
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = time.Second
	}
}

// RedisBus publishes to a Redis stream and consumes it through a consumer
// group. Entries are acknowledged once the handler succeeds; failed entries
// stay pending and are retried from the pending list after RetryDelay, and
// again on the next start.
type RedisBus struct {
	client *redis.Client
	cfg    RedisConfig
}

func NewRedisBus(client *redis.Client, cfg RedisConfig) *RedisBus {
	cfg.setDefaults()
	return &RedisBus{client: client, cfg: cfg}
}

// NewRedisBusFromAddr dials addr, which is either host:port or a redis:// URL.
func NewRedisBusFromAddr(addr string, cfg RedisConfig) (*RedisBus, error) {
	opts := &redis.Options{Addr: addr}
	if strings.Contains(addr, "://") {
		var err error
		if opts, err = redis.ParseURL(addr); err != nil {
			return nil, fmt.Errorf("events: parse redis url: %w", err)
		}
	}
	return NewRedisBus(redis.NewClient(opts), cfg), nil
}

func (b *RedisBus) PublishMembershipSold(ctx context.Context, ev domain.MembershipSold) error {
	payload, err := encode(ev)
	if err != nil {
		return fmt.Errorf("events: encode: %w", err)
	}

	return b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: b.cfg.Stream,
		Values: map[string]any{
			fieldType:    domain.EventMembershipSold,
			fieldPayload: string(payload),
		},
	}).Err()
}

func (b *RedisBus) Consume(ctx context.Context, h Handler) error {
	if err := b.ensureGroup(ctx); err != nil {
		return err
	}

	log := slogx.FromContext(ctx).With("stream", b.cfg.Stream, "group", b.cfg.Group, "consumer", b.cfg.Consumer)
	log.Info("consuming membership events")

	// Walk our own pending entries first, left over from a previous run or
	// a failed handler, then switch to new ones. The cursor moves past each
	// pending entry seen so a failing one is tried once per walk.
	var (
		backlog = true
		cursor  = "0"
		retryAt time.Time
	)
	for {
		if ctx.Err() != nil {
			return nil
		}
		if !backlog && !retryAt.IsZero() && !time.Now().Before(retryAt) {
			backlog, cursor, retryAt = true, "0", time.Time{}
		}

		start := ">"
		if backlog {
			start = cursor
		}

		res, err := b.readOnce(ctx, start, h)
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			log.Error("read membership events", "error", err)
			if !b.pause(ctx) {
				return nil
			}
			continue
		}

		if backlog {
			if res.seen == 0 {
				backlog = false
			} else {
				cursor = res.lastID
			}
		}
		if res.failed > 0 {
			if retryAt.IsZero() {
				retryAt = time.Now().Add(b.cfg.RetryDelay)
			}
			if !b.pause(ctx) {
				return nil
			}
		}
	}
}

// pause waits RetryDelay and reports false when ctx ended first.
func (b *RedisBus) pause(ctx context.Context) bool {
	t := time.NewTimer(b.cfg.RetryDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

type readResult struct {
	seen   int
	failed int
	lastID string
}

// readOnce reads one batch starting at start and handles every entry in it.
func (b *RedisBus) readOnce(ctx context.Context, start string, h Handler) (readResult, error) {
	args := &redis.XReadGroupArgs{
		Group:    b.cfg.Group,
		Consumer: b.cfg.Consumer,
		Streams:  []string{b.cfg.Stream, start},
		Count:    b.cfg.BatchSize,
		Block:    b.cfg.Block,
	}
	if start != ">" {
		// Reading history never blocks.
		args.Block = -1
	}

	var res readResult
	streams, err := b.client.XReadGroup(ctx, args).Result()
	if errors.Is(err, redis.Nil) {
		return res, nil
	}
	if err != nil {
		return res, err
	}

	for _, s := range streams {
		for _, msg := range s.Messages {
			res.seen++
			res.lastID = msg.ID
			if !b.handle(ctx, msg, h) {
				res.failed++
			}
		}
	}
	return res, nil
}

// handle runs h on one entry and reports false when it stays pending.
func (b *RedisBus) handle(ctx context.Context, msg redis.XMessage, h Handler) bool {
	log := slogx.FromContext(ctx).With("message_id", msg.ID)

	payload, _ := msg.Values[fieldPayload].(string)
	ev, err := decode([]byte(payload))
	if err != nil || msg.Values[fieldType] != domain.EventMembershipSold {
		// Redelivering an unreadable entry cannot help.
		log.Error("dropping malformed membership event", "error", err)
		b.ack(ctx, msg.ID)
		return true
	}

	if err := h(ctx, ev); err != nil {
		log.Error("membership event failed, leaving pending",
			"event_id", ev.EventID, "member_id", ev.MemberID, "error", err)
		return false
	}
	b.ack(ctx, msg.ID)
	return true
}

func (b *RedisBus) ack(ctx context.Context, id string) {
	if err := b.client.XAck(ctx, b.cfg.Stream, b.cfg.Group, id).Err(); err != nil {
		slogx.FromContext(ctx).Error("ack membership event", "message_id", id, "error", err)
	}
}

func (b *RedisBus) ensureGroup(ctx context.Context) error {
	err := b.client.XGroupCreateMkStream(ctx, b.cfg.Stream, b.cfg.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("events: create consumer group: %w", err)
	}
	return nil
}

// Pending reports how many entries the group has delivered but not acknowledged.
func (b *RedisBus) Pending(ctx context.Context) (int64, error) {
	p, err := b.client.XPending(ctx, b.cfg.Stream, b.cfg.Group).Result()
	if err != nil {
		return 0, err
	}
	return p.Count, nil
}

func (b *RedisBus) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *RedisBus) Close() error {
	return b.client.Close()
}
