/*
Package transport provides Transport implementations for the relay core.

The relay's production transport is the embedding program's chat-platform
client, bound at integration time. This package ships LogTransport, a
development implementation that writes every outbound delivery to the
structured log and mints message references locally. It lets the whole relay
run end to end without platform credentials.
*/
package transport

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"anonchat/internal/app/relay"
	"anonchat/internal/pkg/logx"
)

// LogTransport is a Transport that logs deliveries instead of sending them.
type LogTransport struct {
	// structured logger with LogTransport context.
	logger zerolog.Logger
}

// compile-time check to ensure LogTransport implements relay.Transport.
var _ relay.Transport = (*LogTransport)(nil)

// NewLogTransport constructs a LogTransport.
func NewLogTransport() *LogTransport {
	return &LogTransport{
		logger: logx.Logger().With().Str("component", "LogTransport").Logger(),
	}
}

// SendText logs the delivery and returns a locally minted message reference.
func (t *LogTransport) SendText(ctx context.Context, channelID, text string, kb relay.Keyboard) (relay.MessageRef, error) {
	ref := relay.MessageRef{ChannelID: channelID, MessageID: uuid.New().String()}

	t.logger.Info().
		Str("channel_id", channelID).
		Str("message_id", ref.MessageID).
		Int("keyboard_rows", len(kb)).
		Str("text", text).
		Msg("SendText")

	return ref, nil
}

// SendPhoto logs the delivery.
func (t *LogTransport) SendPhoto(ctx context.Context, channelID string, photo relay.FileRef, caption string) error {
	t.logger.Info().
		Str("channel_id", channelID).
		Str("file_ref", string(photo)).
		Str("caption", caption).
		Msg("SendPhoto")

	return nil
}

// EditText logs the edit.
func (t *LogTransport) EditText(ctx context.Context, ref relay.MessageRef, text string, kb relay.Keyboard) error {
	t.logger.Info().
		Str("channel_id", ref.ChannelID).
		Str("message_id", ref.MessageID).
		Int("keyboard_rows", len(kb)).
		Str("text", text).
		Msg("EditText")

	return nil
}

// EditKeyboard logs the edit.
func (t *LogTransport) EditKeyboard(ctx context.Context, ref relay.MessageRef, kb relay.Keyboard) error {
	t.logger.Info().
		Str("channel_id", ref.ChannelID).
		Str("message_id", ref.MessageID).
		Int("keyboard_rows", len(kb)).
		Msg("EditKeyboard")

	return nil
}

// Delete logs the deletion.
func (t *LogTransport) Delete(ctx context.Context, ref relay.MessageRef) error {
	t.logger.Info().
		Str("channel_id", ref.ChannelID).
		Str("message_id", ref.MessageID).
		Msg("Delete")

	return nil
}
