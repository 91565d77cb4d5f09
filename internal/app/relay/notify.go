/*
Package relay contains the in-process core of the anonymous group-chat relay.

This file defines the NotifyStore for per-user notification preferences.
Settings are created lazily with defaults on first touch and mutated through a
stateless callback surface. Within this core they are collected but not yet
consulted by the broadcast engine; consumption is a future external hook point.
*/
package relay

import (
	"fmt"
	"sync"

	"anonchat/internal/pkg/errs"
)

// Notification toggle field names, matching the callback payloads.
const (
	NotifyFieldPrivates = "privates"
	NotifyFieldReplies  = "replies"
	NotifyFieldHug      = "hug"
)

// NotifyIntervals lists the allowed reminder intervals, in minutes.
var NotifyIntervals = []int{0, 1, 5, 10, 20, 30}

// defaultNotifyInterval is the interval assigned on first touch.
const defaultNotifyInterval = 5

// NotifySettings is one participant's notification preference record.
type NotifySettings struct {
	Privates bool
	Replies  bool
	Hug      bool

	// Interval is the reminder interval in minutes, one of NotifyIntervals.
	Interval int
}

// NotifyStore owns the per-user notification settings map.
type NotifyStore struct {
	// mu protects settings.
	mu sync.RWMutex

	settings map[int64]*NotifySettings
}

// NewNotifyStore constructs an empty NotifyStore.
func NewNotifyStore() *NotifyStore {
	return &NotifyStore{
		settings: make(map[int64]*NotifySettings),
	}
}

// settingsLocked returns the participant's record, creating the default one
// lazily. Caller must hold mu for writing.
func (n *NotifyStore) settingsLocked(userID int64) *NotifySettings {
	s, ok := n.settings[userID]
	if !ok {
		s = &NotifySettings{Interval: defaultNotifyInterval}
		n.settings[userID] = s
	}
	return s
}

// Settings returns a copy of the participant's current settings, creating the
// default record if none exists yet.
func (n *NotifyStore) Settings(userID int64) NotifySettings {
	n.mu.Lock()
	defer n.mu.Unlock()

	return *n.settingsLocked(userID)
}

// Toggle flips one boolean preference field.
func (n *NotifyStore) Toggle(userID int64, field string) *errs.CustomError {
	n.mu.Lock()
	defer n.mu.Unlock()

	s := n.settingsLocked(userID)

	switch field {
	case NotifyFieldPrivates:
		s.Privates = !s.Privates
	case NotifyFieldReplies:
		s.Replies = !s.Replies
	case NotifyFieldHug:
		s.Hug = !s.Hug
	default:
		return errs.NewError(errs.ErrUnknownNotifyField)
	}

	return nil
}

// SetInterval sets the reminder interval to one of the allowed values.
func (n *NotifyStore) SetInterval(userID int64, minutes int) *errs.CustomError {
	allowed := false
	for _, v := range NotifyIntervals {
		if v == minutes {
			allowed = true
			break
		}
	}
	if !allowed {
		return errs.NewError(errs.ErrInvalidNotifyInterval)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.settingsLocked(userID).Interval = minutes
	return nil
}

// Keyboard renders the settings keyboard from the participant's current state.
// The rendering is recomputed on every call; there is no cached view.
func (n *NotifyStore) Keyboard(userID int64) Keyboard {
	s := n.Settings(userID)

	onOff := func(flag bool) string {
		if flag {
			return "✅"
		}
		return "❌"
	}

	toggles := []Button{
		{Label: onOff(s.Privates) + " ЛС", Data: "notify|privates"},
		{Label: onOff(s.Replies) + " Ответы", Data: "notify|replies"},
		{Label: onOff(s.Hug) + " Обнимашки", Data: "notify|hug"},
	}

	intervals := make([]Button, 0, len(NotifyIntervals))
	for _, v := range NotifyIntervals {
		mark := "❌"
		if s.Interval == v {
			mark = "✅"
		}
		intervals = append(intervals, Button{
			Label: fmt.Sprintf("%s %d", mark, v),
			Data:  fmt.Sprintf("notify|interval|%d", v),
		})
	}

	return Keyboard{
		toggles,
		intervals,
		{{Label: "❌ Отмена", Data: "notify|cancel"}},
	}
}
