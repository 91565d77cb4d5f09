/*
Package relay contains the in-process core of the anonymous group-chat relay.

This file defines the Service struct, the single entry surface for every
inbound event. The dispatch collaborator routes each event (a join, a command,
a button press, plain text) to exactly one Service method; methods validate the
actor's session, mutate the owning stores, and fan outbound deliveries through
the transport. This file also implements the plain-message relay itself.
*/
package relay

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"anonchat/internal/configs"
	"anonchat/internal/pkg/errs"
	"anonchat/internal/pkg/logx"
)

// narrationMarker prefixes a text payload that is relayed as third-person
// narration: the marker is stripped and the nickname is prefixed without a colon.
const narrationMarker = "%"

// replyNickPattern extracts the leading "Nickname:" segment of a previously
// relayed message, used to annotate replies.
var replyNickPattern = regexp.MustCompile(`^(.+?):\s`)

// Service wires the registry, broadcast engine, workflows, poll engine, and
// the notification and inbox stores behind the inbound event surface.
type Service struct {
	registry  *Registry
	broadcast *Broadcaster
	workflows *WorkflowStore
	polls     *PollRegistry
	notify    *NotifyStore
	inbox     *Inbox
	transport Transport

	// capacity is the advertised roster capacity.
	capacity int

	// structured logger with Service context.
	logger zerolog.Logger
}

// NewService constructs the relay core over the given transport.
func NewService(cfg *configs.AppConfig, transport Transport) *Service {
	serviceLogger := logx.Logger().With().Str("component", "Service").Logger()

	registry := NewRegistry(cfg.AdminIDs, cfg.ModeratorIDs, cfg.DepartureLogSize)

	return &Service{
		registry:  registry,
		broadcast: NewBroadcaster(registry, transport),
		workflows: NewWorkflowStore(),
		polls:     NewPollRegistry(transport),
		notify:    NewNotifyStore(),
		inbox:     NewInbox(),
		transport: transport,
		capacity:  cfg.ChatCapacity,
		logger:    serviceLogger,
	}
}

// Registry exposes the identity and session registry to the embedding program.
func (s *Service) Registry() *Registry {
	return s.registry
}

// reply sends text to the actor's channel. A failed reply is logged and
// swallowed; nothing the transport does is fatal to the interaction.
func (s *Service) reply(ctx context.Context, channelID, text string) {
	if _, err := s.transport.SendText(ctx, channelID, text, nil); err != nil {
		s.logger.Warn().
			Err(err).
			Str("channel_id", channelID).
			Msg("Failed to deliver reply.")
	}
}

// replyKeyboard sends text with an inline keyboard to the actor's channel.
func (s *Service) replyKeyboard(ctx context.Context, channelID, text string, kb Keyboard) {
	if _, err := s.transport.SendText(ctx, channelID, text, kb); err != nil {
		s.logger.Warn().
			Err(err).
			Str("channel_id", channelID).
			Msg("Failed to deliver keyboard reply.")
	}
}

// replyErr reports a scoped failure to the actor.
func (s *Service) replyErr(ctx context.Context, channelID string, cerr *errs.CustomError) {
	s.reply(ctx, channelID, cerr.Message)
}

// editText replaces a previously sent message; failures are logged and swallowed.
func (s *Service) editText(ctx context.Context, ref MessageRef, text string, kb Keyboard) {
	if err := s.transport.EditText(ctx, ref, text, kb); err != nil {
		s.logger.Warn().
			Err(err).
			Str("channel_id", ref.ChannelID).
			Msg("Failed to edit message.")
	}
}

// requireMember checks the precondition shared by every chat-participation
// action: the actor must hold an active session. On failure the actor is
// notified once and the interaction ends.
func (s *Service) requireMember(ctx context.Context, userID int64, channelID string) (Member, bool) {
	member, ok := s.registry.MemberOf(userID)
	if !ok {
		s.replyErr(ctx, channelID, errs.NewError(errs.ErrNotInChat))
		return Member{}, false
	}
	return member, true
}

// parseRepliedNickname extracts the nickname from the leading "Nickname: " of
// a previously relayed message, or returns "" when no such segment exists.
func parseRepliedNickname(relayedText string) string {
	m := replyNickPattern.FindStringSubmatch(relayedText)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// Text relays a plain text payload from an active participant to everyone else.
// A leading narration marker turns the message into third-person narration
// (marker stripped, no colon after the nickname). repliedToText carries the
// text of the relayed message the payload replies to, or "" when it is not a
// reply; its leading "Nickname:" segment becomes a "(reply to Nickname)"
// annotation.
func (s *Service) Text(ctx context.Context, userID int64, channelID, text, repliedToText string) {
	member, ok := s.requireMember(ctx, userID, channelID)
	if !ok {
		return
	}

	text = strings.TrimSpace(text)
	repliedNick := parseRepliedNickname(repliedToText)

	var out string
	if strings.HasPrefix(text, narrationMarker) {
		body := strings.TrimLeftFunc(strings.TrimPrefix(text, narrationMarker), unicode.IsSpace)
		if repliedNick != "" {
			out = fmt.Sprintf("%s (reply to %s) %s", member.Nickname, repliedNick, body)
		} else {
			out = fmt.Sprintf("%s %s", member.Nickname, body)
		}
	} else {
		if repliedNick != "" {
			out = fmt.Sprintf("%s (reply to %s): %s", member.Nickname, repliedNick, text)
		} else {
			out = fmt.Sprintf("%s: %s", member.Nickname, text)
		}
	}

	s.broadcast.Text(ctx, out, userID)
	s.registry.Touch(userID)
}

// Photo relays a photo payload from an active participant to everyone else,
// prefixing the caption with the sender's identity.
func (s *Service) Photo(ctx context.Context, userID int64, channelID string, photo FileRef, caption string) {
	member, ok := s.requireMember(ctx, userID, channelID)
	if !ok {
		return
	}

	fullCaption := fmt.Sprintf(captionPhoto, member.Code, member.Nickname)
	if caption != "" {
		fullCaption += "\n" + caption
	}

	s.broadcast.Photo(ctx, photo, fullCaption, userID)
	s.registry.Touch(userID)
}

// participantKeyboard builds the selection grid shown by the direct-message
// and hug workflows: one button per other active participant, three per row,
// plus a trailing cancel row.
func (s *Service) participantKeyboard(excludeUserID int64, selectPrefix, cancelData string) Keyboard {
	var kb Keyboard
	var row []Button

	for _, member := range s.registry.Members() {
		if member.UserID == excludeUserID {
			continue
		}

		row = append(row, Button{
			Label: fmt.Sprintf("%s %s", member.Code, member.Nickname),
			Data:  fmt.Sprintf("%s|%d", selectPrefix, member.UserID),
		})
		if len(row) == 3 {
			kb = append(kb, row)
			row = nil
		}
	}
	if len(row) > 0 {
		kb = append(kb, row)
	}

	kb = append(kb, []Button{{Label: "❌ Отмена", Data: cancelData}})
	return kb
}
