/*
Package relay contains the in-process core of the anonymous group-chat relay:
the identity and session registry, the broadcast fanout engine, the short-lived
conversation workflows, the poll engine, and the notification and inbox stores.

This file defines the Transport interface, the relay's only outbound dependency.
The embedding program supplies an implementation backed by its chat-messaging
platform client; the relay never assumes anything about the wire format beyond
these primitives. Every call returns an error scoped to that single delivery.
*/
package relay

import "context"

// FileRef is an opaque reference to a photo held by the transport platform.
// The relay passes it through unchanged when rebroadcasting.
type FileRef string

// MessageRef identifies a message previously delivered through the transport,
// sufficient to edit or delete it in place later.
type MessageRef struct {
	// ChannelID is the delivery address the message was sent to.
	ChannelID string

	// MessageID is the transport-assigned identifier of the message.
	MessageID string
}

// Button is a single inline keyboard button. Data is the structured callback
// payload the transport echoes back when the button is pressed.
type Button struct {
	Label string
	Data  string
}

// Keyboard is an inline keyboard layout: rows of buttons. A nil Keyboard means
// the message carries no buttons (or, on edit, that buttons are stripped).
type Keyboard [][]Button

// Transport is the outbound delivery surface required from the messaging platform.
// Implementations must return per-call errors and must never panic or abort the
// caller; the relay treats every failure as scoped to that one delivery.
type Transport interface {
	// SendText delivers text to a channel, optionally with an inline keyboard,
	// and returns a reference usable for later in-place edits.
	SendText(ctx context.Context, channelID, text string, kb Keyboard) (MessageRef, error)

	// SendPhoto delivers a photo with an optional caption.
	SendPhoto(ctx context.Context, channelID string, photo FileRef, caption string) error

	// EditText replaces the text and keyboard of a previously sent message.
	EditText(ctx context.Context, ref MessageRef, text string, kb Keyboard) error

	// EditKeyboard replaces only the keyboard of a previously sent message.
	// A nil keyboard strips the buttons.
	EditKeyboard(ctx context.Context, ref MessageRef, kb Keyboard) error

	// Delete removes a previously sent message.
	Delete(ctx context.Context, ref MessageRef) error
}
