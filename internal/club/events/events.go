// Package events carries "membership sold" events from checkout to the
// membership worker. Two drivers exist: Redis Streams for deployments with
// more than one process, and an in-process channel for everything else.
package events

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/clubhouse/internal/club/domain"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var ErrClosed = errors.New("events: bus closed")

// Handler processes one event. Returning an error leaves the event
// unacknowledged where the driver supports redelivery.
type Handler func(ctx context.Context, ev domain.MembershipSold) error

type Publisher interface {
	PublishMembershipSold(ctx context.Context, ev domain.MembershipSold) error
}

type Consumer interface {
	// Consume delivers events to h until ctx is cancelled.
	Consume(ctx context.Context, h Handler) error
}

type Bus interface {
	Publisher
	Consumer
	Ping(ctx context.Context) error
	Close() error
}

func encode(ev domain.MembershipSold) ([]byte, error) {
	return json.Marshal(ev)
}

func decode(data []byte) (domain.MembershipSold, error) {
	var ev domain.MembershipSold
	err := json.Unmarshal(data, &ev)
	return ev, err
}
