/*
Package relay contains the in-process core of the anonymous group-chat relay.

This file implements the direct-message workflow and the inbox readback. The
inline form (code plus text in one event) bypasses the state machine; the menu
form selects a recipient from a button grid and waits for the message text.
A copy of every private message is appended to the recipient's inbox whether or
not live delivery succeeds.
*/
package relay

import (
	"context"
	"fmt"
	"strings"

	"anonchat/internal/pkg/errs"
	"anonchat/internal/pkg/randx"
)

// deliverPrivate appends the message to the recipient's inbox and attempts
// live delivery. The inbox copy is kept regardless of delivery outcome.
func (s *Service) deliverPrivate(ctx context.Context, from Member, recipientID int64, text string) {
	s.inbox.Append(recipientID, from.Nickname, text)

	recipient, ok := s.registry.MemberOf(recipientID)
	if !ok {
		return
	}

	if _, err := s.transport.SendText(ctx, recipient.ChannelID, fmt.Sprintf(textPrivateDelivery, from.Nickname, text), nil); err != nil {
		s.logger.Warn().
			Err(err).
			Str("recipient", recipient.Nickname).
			Msg("Failed to deliver private message live; inbox copy kept.")
	}
}

// MsgInline delivers a private message addressed by personal code in a single
// event, bypassing the selection workflow. The code shape is checked before
// the roster is consulted, so a mistyped code gets the same reply as a
// well-formed one nobody holds.
func (s *Service) MsgInline(ctx context.Context, userID int64, channelID, code, text string) {
	member, ok := s.requireMember(ctx, userID, channelID)
	if !ok {
		return
	}

	if !randx.IsValidPersonalCode(code) {
		s.replyErr(ctx, channelID, errs.NewError(errs.ErrUnknownCode))
		return
	}

	recipientID, found := s.registry.UserByCode(code)
	if !found {
		s.replyErr(ctx, channelID, errs.NewError(errs.ErrUnknownCode))
		return
	}

	s.deliverPrivate(ctx, member, recipientID, text)
	s.reply(ctx, channelID, fmt.Sprintf(textMsgSentInline, code))
	s.registry.Touch(userID)
}

// MsgMenu opens the direct-message workflow with a recipient selection grid.
func (s *Service) MsgMenu(ctx context.Context, userID int64, channelID string) {
	if _, ok := s.requireMember(ctx, userID, channelID); !ok {
		return
	}

	s.workflows.Begin(userID, StateAwaitingMsgRecipient)
	s.replyKeyboard(ctx, channelID, textMsgPickRecipient, s.participantKeyboard(userID, "msg_select", "msg_cancel"))
	s.registry.Touch(userID)
}

// MsgSelect records the chosen recipient and advances the workflow to await
// the message text, editing the selection message in place. A press on a
// selection button from an already-finished menu is ignored.
func (s *Service) MsgSelect(ctx context.Context, userID, recipientID int64, ref MessageRef) {
	if s.workflows.State(userID) != StateAwaitingMsgRecipient {
		return
	}

	recipient, ok := s.registry.MemberOf(recipientID)
	if !ok {
		s.workflows.Clear(userID)
		s.editText(ctx, ref, errs.NewError(errs.ErrRecipientLeft).Message, nil)
		return
	}

	s.workflows.SetRecipient(userID, recipientID)
	s.editText(ctx, ref, fmt.Sprintf(textMsgAwaitText, recipient.Code, recipient.Nickname), nil)
	s.registry.Touch(userID)
}

// MsgText terminates the direct-message workflow with the message text,
// delivering to the stored recipient.
func (s *Service) MsgText(ctx context.Context, userID int64, channelID, text string) {
	member, ok := s.requireMember(ctx, userID, channelID)
	if !ok {
		return
	}

	recipientID, ok := s.workflows.Recipient(userID)
	s.workflows.Clear(userID)
	if !ok {
		s.replyErr(ctx, channelID, errs.NewError(errs.ErrNoPendingRecipient))
		return
	}

	recipient, ok := s.registry.MemberOf(recipientID)
	if !ok {
		s.replyErr(ctx, channelID, errs.NewError(errs.ErrRecipientLeft))
		return
	}

	s.deliverPrivate(ctx, member, recipientID, text)
	s.reply(ctx, channelID, fmt.Sprintf(textMsgSent, recipient.Code, recipient.Nickname))
	s.registry.Touch(userID)
}

// MsgCancel terminates the direct-message workflow at the selection step.
func (s *Service) MsgCancel(ctx context.Context, userID int64, ref MessageRef) {
	s.workflows.Clear(userID)
	s.editText(ctx, ref, textMsgCancelled, nil)
}

// GetMsg sends the actor the stored copy of their private messages.
func (s *Service) GetMsg(ctx context.Context, userID int64, channelID string) {
	if _, ok := s.requireMember(ctx, userID, channelID); !ok {
		return
	}

	messages := s.inbox.Messages(userID)
	if len(messages) == 0 {
		s.reply(ctx, channelID, textInboxEmpty)
		return
	}

	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, fmt.Sprintf(textInboxLine, m.FromNickname, m.Text))
	}

	s.reply(ctx, channelID, textInboxHeader+strings.Join(lines, "\n"))
	s.registry.Touch(userID)
}
