/*
Package relay contains the in-process core of the anonymous group-chat relay.

This file maps the transport's raw follow-up events onto Service methods.
HandleCallback parses the structured payloads the relay itself planted on
inline buttons; HandleText routes free text by the actor's open workflow
state. A payload that fails to parse is a programmer/data error: the actor
gets a generic failure notice and nothing is mutated.
*/
package relay

import (
	"context"
	"strconv"
	"strings"

	"anonchat/internal/pkg/errs"
)

// Callback payload prefixes planted on inline buttons.
const (
	callbackMsgSelect = "msg_select"
	callbackMsgCancel = "msg_cancel"
	callbackHugSelect = "hug_select"
	callbackHugCancel = "hug_cancel"
	callbackPollVote  = "pollvote"
	callbackNotify    = "notify"
)

// HandleCallback routes a button-press payload to the matching Service method.
// ref identifies the message carrying the pressed button so it can be edited
// in place.
func (s *Service) HandleCallback(ctx context.Context, userID int64, channelID, data string, ref MessageRef) {
	parts := strings.Split(data, "|")

	switch parts[0] {
	case callbackMsgCancel:
		s.MsgCancel(ctx, userID, ref)

	case callbackHugCancel:
		s.HugCancel(ctx, userID, ref)

	case callbackMsgSelect:
		recipientID, ok := parseIDPayload(parts)
		if !ok {
			s.replyErr(ctx, channelID, errs.NewError(errs.ErrBadCallbackPayload))
			return
		}
		s.MsgSelect(ctx, userID, recipientID, ref)

	case callbackHugSelect:
		targetID, ok := parseIDPayload(parts)
		if !ok {
			s.replyErr(ctx, channelID, errs.NewError(errs.ErrBadCallbackPayload))
			return
		}
		s.HugSelect(ctx, userID, targetID, ref)

	case callbackPollVote:
		if len(parts) != 3 {
			s.replyErr(ctx, channelID, errs.NewError(errs.ErrBadCallbackPayload))
			return
		}
		creatorID, err1 := strconv.ParseInt(parts[1], 10, 64)
		ordinal, err2 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil {
			s.replyErr(ctx, channelID, errs.NewError(errs.ErrBadCallbackPayload))
			return
		}
		s.PollVote(ctx, userID, channelID, creatorID, ordinal-1)

	case callbackNotify:
		s.handleNotifyCallback(ctx, userID, channelID, parts, ref)

	default:
		s.replyErr(ctx, channelID, errs.NewError(errs.ErrBadCallbackPayload))
	}
}

// handleNotifyCallback routes the "notify|..." payload family.
func (s *Service) handleNotifyCallback(ctx context.Context, userID int64, channelID string, parts []string, ref MessageRef) {
	switch {
	case len(parts) == 2 && parts[1] == "cancel":
		s.NotifyCancel(ctx, userID, ref)

	case len(parts) == 2:
		s.NotifyToggle(ctx, userID, parts[1], ref)

	case len(parts) == 3 && parts[1] == "interval":
		minutes, err := strconv.Atoi(parts[2])
		if err != nil {
			s.replyErr(ctx, channelID, errs.NewError(errs.ErrBadCallbackPayload))
			return
		}
		s.NotifySetInterval(ctx, userID, minutes, ref)

	default:
		s.replyErr(ctx, channelID, errs.NewError(errs.ErrBadCallbackPayload))
	}
}

// parseIDPayload extracts the int64 argument of a two-part payload.
func parseIDPayload(parts []string) (int64, bool) {
	if len(parts) != 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// HandleText routes a free-text payload by the actor's open workflow state:
// an awaited workflow input is consumed by that workflow, anything else is
// relayed as a plain chat message.
func (s *Service) HandleText(ctx context.Context, userID int64, channelID, text, repliedToText string) {
	switch s.workflows.State(userID) {
	case StateAwaitingNickname:
		s.NickSubmit(ctx, userID, channelID, text)

	case StateAwaitingPollBlock:
		s.PollQuestionBlock(ctx, userID, channelID, text)

	case StateAwaitingMsgText:
		s.MsgText(ctx, userID, channelID, text)

	default:
		s.Text(ctx, userID, channelID, text, repliedToText)
	}
}
