/*
Package relay contains the in-process core of the anonymous group-chat relay.

This file implements the hug workflow. Unlike a private message, a hug is a
deliberately public gesture: the announcement goes to everyone, the actor
included.
*/
package relay

import (
	"context"
	"fmt"

	"anonchat/internal/pkg/errs"
	"anonchat/internal/pkg/randx"
)

// HugInline broadcasts a hug at the target addressed by personal code,
// bypassing the selection workflow. The code shape is checked before the
// roster is consulted.
func (s *Service) HugInline(ctx context.Context, userID int64, channelID, code string) {
	member, ok := s.requireMember(ctx, userID, channelID)
	if !ok {
		return
	}

	if !randx.IsValidPersonalCode(code) {
		s.replyErr(ctx, channelID, errs.NewError(errs.ErrUnknownCode))
		return
	}

	targetID, found := s.registry.UserByCode(code)
	if !found {
		s.replyErr(ctx, channelID, errs.NewError(errs.ErrUnknownCode))
		return
	}

	target, _ := s.registry.MemberOf(targetID)
	s.broadcast.Text(ctx, fmt.Sprintf(broadcastHug, member.Code, member.Nickname, target.Nickname), NoExclude)
	s.registry.Touch(userID)
}

// HugMenu opens the hug workflow with a target selection grid.
func (s *Service) HugMenu(ctx context.Context, userID int64, channelID string) {
	if _, ok := s.requireMember(ctx, userID, channelID); !ok {
		return
	}

	s.workflows.Begin(userID, StateAwaitingHugTarget)
	s.replyKeyboard(ctx, channelID, textHugPickTarget, s.participantKeyboard(userID, "hug_select", "hug_cancel"))
	s.registry.Touch(userID)
}

// HugSelect terminates the hug workflow with the chosen target, broadcasting
// the public announcement and confirming on the selection message. A press on
// a selection button from an already-finished menu is ignored.
func (s *Service) HugSelect(ctx context.Context, userID, targetID int64, ref MessageRef) {
	if s.workflows.State(userID) != StateAwaitingHugTarget {
		return
	}

	s.workflows.Clear(userID)

	member, ok := s.registry.MemberOf(userID)
	if !ok {
		s.editText(ctx, ref, errs.NewError(errs.ErrNotInChat).Message, nil)
		return
	}

	target, ok := s.registry.MemberOf(targetID)
	if !ok {
		s.editText(ctx, ref, errs.NewError(errs.ErrRecipientLeft).Message, nil)
		return
	}

	s.broadcast.Text(ctx, fmt.Sprintf(broadcastHug, member.Code, member.Nickname, target.Nickname), NoExclude)
	s.editText(ctx, ref, textHugSent, nil)
	s.registry.Touch(userID)
}

// HugCancel terminates the hug workflow at the selection step.
func (s *Service) HugCancel(ctx context.Context, userID int64, ref MessageRef) {
	s.workflows.Clear(userID)
	s.editText(ctx, ref, textHugCancelled, nil)
}
