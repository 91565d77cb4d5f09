/*
Package relay contains the in-process core of the anonymous group-chat relay.

This file implements the presence commands: joining, leaving, the roster
listing, nickname search, and the informational replies.
*/
package relay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"anonchat/internal/pkg/errs"
)

// Join admits the participant into the chat. A returning identity keeps its
// nickname and code; a first-time participant gets freshly minted ones. The
// arrival is announced to everyone else, with a "newcomer" variant on the very
// first join.
func (s *Service) Join(ctx context.Context, userID int64, channelID string) {
	result, err := s.registry.Join(userID, channelID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to mint identity.")
		s.replyErr(ctx, channelID, errs.NewError(errs.ErrUnknown, err))
		return
	}

	if result.AlreadyPresent {
		s.reply(ctx, channelID, fmt.Sprintf(textAlreadyInChat, result.Nickname))
		s.registry.Touch(userID)
		return
	}

	s.reply(ctx, channelID, fmt.Sprintf(textWelcome, result.Nickname, result.Code))

	announcement := fmt.Sprintf(broadcastJoined, result.Code, result.Nickname)
	if result.JoinCount == 1 {
		announcement = fmt.Sprintf(broadcastJoinedFirst, result.Code, result.Nickname)
	}
	s.broadcast.Text(ctx, announcement, userID)
}

// Leave removes the participant's session, records the departure, and
// announces it to the remaining participants.
func (s *Service) Leave(ctx context.Context, userID int64, channelID string) {
	departure, ok := s.registry.Leave(userID)
	if !ok {
		s.replyErr(ctx, channelID, errs.NewError(errs.ErrNotInChat))
		return
	}

	s.workflows.Clear(userID)

	s.reply(ctx, channelID, textLeftChat)
	s.broadcast.Text(ctx, fmt.Sprintf(broadcastLeft, departure.Code, departure.Nickname), userID)
}

// List sends the actor the current roster: one line per active participant
// with a freshness glyph, role, code, and nickname.
func (s *Service) List(ctx context.Context, userID int64, channelID string) {
	members := s.registry.Members()
	if len(members) == 0 {
		s.reply(ctx, channelID, textChatEmpty)
		return
	}

	now := time.Now()
	lines := make([]string, 0, len(members))
	for _, member := range members {
		lines = append(lines, fmt.Sprintf("%s %s %s %s",
			FreshnessSymbol(now.Sub(member.LastActivity)),
			s.registry.RoleOf(member.UserID),
			member.Code,
			member.Nickname,
		))
	}

	s.reply(ctx, channelID, fmt.Sprintf(textRosterHeader, len(members), s.capacity)+strings.Join(lines, "\n"))
	s.registry.Touch(userID)
}

// Search sends the actor the active participants whose nickname contains the
// query, case-insensitively.
func (s *Service) Search(ctx context.Context, userID int64, channelID, query string) {
	if _, ok := s.requireMember(ctx, userID, channelID); !ok {
		return
	}

	if strings.TrimSpace(query) == "" {
		s.replyErr(ctx, channelID, errs.NewError(errs.ErrEmptySearchQuery))
		return
	}

	matches := s.registry.Search(strings.TrimSpace(query))
	if len(matches) == 0 {
		s.reply(ctx, channelID, textSearchNotFound)
	} else {
		lines := make([]string, 0, len(matches))
		for _, member := range matches {
			lines = append(lines, fmt.Sprintf("%s %s", member.Code, member.Nickname))
		}
		s.reply(ctx, channelID, textSearchFound+strings.Join(lines, "\n"))
	}

	s.registry.Touch(userID)
}

// Help sends the command overview.
func (s *Service) Help(ctx context.Context, userID int64, channelID string) {
	s.reply(ctx, channelID, textHelp)
	s.registry.Touch(userID)
}

// Rules sends the chat rules.
func (s *Service) Rules(ctx context.Context, userID int64, channelID string) {
	s.reply(ctx, channelID, textRules)
	s.registry.Touch(userID)
}

// About sends the relay description.
func (s *Service) About(ctx context.Context, userID int64, channelID string) {
	s.reply(ctx, channelID, textAbout)
	s.registry.Touch(userID)
}

// Ping confirms the relay is alive.
func (s *Service) Ping(ctx context.Context, userID int64, channelID string) {
	s.reply(ctx, channelID, textPong)
	s.registry.Touch(userID)
}
