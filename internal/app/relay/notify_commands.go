/*
Package relay contains the in-process core of the anonymous group-chat relay.

This file implements the notification-settings commands. The settings message
keyboard is re-rendered from current state after every mutation; the store
itself lives in notify.go.
*/
package relay

import "context"

// NotifyOpen sends the actor their notification settings keyboard.
func (s *Service) NotifyOpen(ctx context.Context, userID int64, channelID string) {
	if _, ok := s.requireMember(ctx, userID, channelID); !ok {
		return
	}

	s.replyKeyboard(ctx, channelID, textNotifySettings, s.notify.Keyboard(userID))
	s.registry.Touch(userID)
}

// NotifyToggle flips one boolean preference and re-renders the settings
// keyboard in place.
func (s *Service) NotifyToggle(ctx context.Context, userID int64, field string, ref MessageRef) {
	if cerr := s.notify.Toggle(userID, field); cerr != nil {
		s.reply(ctx, ref.ChannelID, cerr.Message)
		return
	}

	if err := s.transport.EditKeyboard(ctx, ref, s.notify.Keyboard(userID)); err != nil {
		s.logger.Warn().
			Err(err).
			Str("channel_id", ref.ChannelID).
			Msg("Failed to refresh settings keyboard.")
	}

	s.reply(ctx, ref.ChannelID, textNotifySaved)
	s.registry.Touch(userID)
}

// NotifySetInterval sets the reminder interval and re-renders the settings
// keyboard in place.
func (s *Service) NotifySetInterval(ctx context.Context, userID int64, minutes int, ref MessageRef) {
	if cerr := s.notify.SetInterval(userID, minutes); cerr != nil {
		s.reply(ctx, ref.ChannelID, cerr.Message)
		return
	}

	if err := s.transport.EditKeyboard(ctx, ref, s.notify.Keyboard(userID)); err != nil {
		s.logger.Warn().
			Err(err).
			Str("channel_id", ref.ChannelID).
			Msg("Failed to refresh settings keyboard.")
	}

	s.reply(ctx, ref.ChannelID, textNotifySaved)
	s.registry.Touch(userID)
}

// NotifyCancel removes the settings message.
func (s *Service) NotifyCancel(ctx context.Context, userID int64, ref MessageRef) {
	if err := s.transport.Delete(ctx, ref); err != nil {
		s.logger.Warn().
			Err(err).
			Str("channel_id", ref.ChannelID).
			Msg("Failed to delete settings message.")
	}

	s.registry.Touch(userID)
}
