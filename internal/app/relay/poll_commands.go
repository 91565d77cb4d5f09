/*
Package relay contains the in-process core of the anonymous group-chat relay.

This file implements the poll commands on top of the PollRegistry: the
creation workflow (a single question block), vote callbacks, and closing.
*/
package relay

import (
	"context"
	"fmt"
	"strings"

	"anonchat/internal/pkg/errs"
)

// PollStart opens the poll-creation workflow and prompts for the question block.
func (s *Service) PollStart(ctx context.Context, userID int64, channelID string) {
	if _, ok := s.requireMember(ctx, userID, channelID); !ok {
		return
	}

	s.workflows.Begin(userID, StateAwaitingPollBlock)
	s.reply(ctx, channelID, textPollPrompt)
	s.registry.Touch(userID)
}

// PollQuestionBlock terminates the poll-creation workflow with the submitted
// block: the first line is the question, each remaining line one option. Fewer
// than two lines is a terminal error with no retry. On success the poll is
// published to every active participant with one button per option, and each
// delivery handle is recorded for later in-place edits.
func (s *Service) PollQuestionBlock(ctx context.Context, userID int64, channelID, rawText string) {
	s.workflows.Clear(userID)

	member, ok := s.requireMember(ctx, userID, channelID)
	if !ok {
		return
	}

	lines := strings.Split(strings.TrimSpace(rawText), "\n")
	if len(lines) < 2 {
		s.replyErr(ctx, channelID, errs.NewError(errs.ErrPollBlockTooShort))
		return
	}

	question := lines[0]
	options := lines[1:]

	s.polls.Create(userID, question, options)

	header := fmt.Sprintf(broadcastPollHeader, member.Code, member.Nickname, question)
	s.polls.Publish(ctx, userID, header, s.registry.Members())
	s.registry.Touch(userID)
}

// PollCancel terminates the poll-creation workflow without creating a poll.
func (s *Service) PollCancel(ctx context.Context, userID int64, channelID string) {
	s.workflows.Clear(userID)
	s.reply(ctx, channelID, textPollCancelled)
}

// PollVote records a vote callback from any participant on the creator's poll.
// A successful vote re-renders the live results for everyone; the voter gets a
// short acknowledgment, or the scoped error when the vote is rejected.
func (s *Service) PollVote(ctx context.Context, voterID int64, voterChannelID string, creatorID int64, optionIndex int) {
	if cerr := s.polls.Vote(ctx, creatorID, optionIndex, voterID); cerr != nil {
		s.replyErr(ctx, voterChannelID, cerr)
		return
	}

	s.reply(ctx, voterChannelID, textVoteAccepted)
	s.registry.Touch(voterID)
}

// PollDone closes the actor's active poll, stripping the vote buttons
// everywhere while keeping the poll and its votes.
func (s *Service) PollDone(ctx context.Context, userID int64, channelID string) {
	if cerr := s.polls.Close(ctx, userID); cerr != nil {
		s.replyErr(ctx, channelID, cerr)
		return
	}

	s.reply(ctx, channelID, textPollDone)
	s.registry.Touch(userID)
}
