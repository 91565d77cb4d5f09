/*
Package relay contains the in-process core of the anonymous group-chat relay.

This file defines the Broadcaster, which fans one logical message out to every
active session except an optional excluded sender. Partial failure is the
expected steady state: a recipient may have blocked the relay or left uncleanly,
so each delivery failure is logged and swallowed without affecting siblings.
*/
package relay

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"anonchat/internal/pkg/logx"
)

// NoExclude is passed as the excluded user ID when a broadcast goes to everyone.
const NoExclude int64 = 0

// Broadcaster fans messages out to all active sessions. Deliveries run
// concurrently with a shared join point; no ordering is guaranteed across
// recipients or across overlapping broadcasts.
type Broadcaster struct {
	registry  *Registry
	transport Transport

	// structured logger with Broadcaster context.
	logger zerolog.Logger
}

// NewBroadcaster constructs a Broadcaster over the given registry and transport.
func NewBroadcaster(registry *Registry, transport Transport) *Broadcaster {
	broadcasterLogger := logx.Logger().With().Str("component", "Broadcaster").Logger()

	return &Broadcaster{
		registry:  registry,
		transport: transport,
		logger:    broadcasterLogger,
	}
}

// Text delivers text to every active session except excludeUserID
// (NoExclude to deliver to everyone). Exactly one attempt is made per
// recipient; failures are logged and never retried.
func (b *Broadcaster) Text(ctx context.Context, text string, excludeUserID int64) {
	g := new(errgroup.Group)

	for _, member := range b.registry.Members() {
		if member.UserID == excludeUserID {
			continue
		}

		member := member
		g.Go(func() error {
			if _, err := b.transport.SendText(ctx, member.ChannelID, text, nil); err != nil {
				b.logger.Warn().
					Err(err).
					Str("nickname", member.Nickname).
					Msg("Failed to deliver broadcast text.")
			}
			return nil
		})
	}

	_ = g.Wait()
}

// Photo delivers a photo with a caption to every active session except
// excludeUserID, with the same one-attempt, failure-isolated semantics as Text.
func (b *Broadcaster) Photo(ctx context.Context, photo FileRef, caption string, excludeUserID int64) {
	g := new(errgroup.Group)

	for _, member := range b.registry.Members() {
		if member.UserID == excludeUserID {
			continue
		}

		member := member
		g.Go(func() error {
			if err := b.transport.SendPhoto(ctx, member.ChannelID, photo, caption); err != nil {
				b.logger.Warn().
					Err(err).
					Str("nickname", member.Nickname).
					Msg("Failed to deliver broadcast photo.")
			}
			return nil
		})
	}

	_ = g.Wait()
}
