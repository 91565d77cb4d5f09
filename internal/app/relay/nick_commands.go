/*
Package relay contains the in-process core of the anonymous group-chat relay.

This file implements the nickname-change workflow: a single awaiting-input
state that validates the new nickname, mutates the identity, and announces the
change to the whole chat.
*/
package relay

import (
	"context"
	"fmt"
)

// NickStart opens the nickname-change workflow and prompts for the new name.
func (s *Service) NickStart(ctx context.Context, userID int64, channelID string) {
	if _, ok := s.requireMember(ctx, userID, channelID); !ok {
		return
	}

	s.workflows.Begin(userID, StateAwaitingNickname)
	s.reply(ctx, channelID, textNickPrompt)
	s.registry.Touch(userID)
}

// NickSubmit terminates the nickname-change workflow with the submitted name.
// An over-long name is rejected once with no mutation; on success the identity
// is updated and the old-to-new change is announced to everyone, the actor
// included.
func (s *Service) NickSubmit(ctx context.Context, userID int64, channelID, newNickname string) {
	s.workflows.Clear(userID)

	member, ok := s.requireMember(ctx, userID, channelID)
	if !ok {
		return
	}

	oldNickname, cerr := s.registry.Rename(userID, newNickname)
	if cerr != nil {
		s.replyErr(ctx, channelID, cerr)
		return
	}

	s.reply(ctx, channelID, fmt.Sprintf(textNickChanged, newNickname))
	s.broadcast.Text(ctx, fmt.Sprintf(broadcastRenamed, member.Code, oldNickname, newNickname), NoExclude)
	s.registry.Touch(userID)
}

// Cancel terminates whatever workflow the actor has open without mutation.
// It is the shared /cancel fallback for the nickname and poll workflows.
func (s *Service) Cancel(ctx context.Context, userID int64, channelID string) {
	s.workflows.Clear(userID)
	s.reply(ctx, channelID, textCancelled)
}
