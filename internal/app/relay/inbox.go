/*
Package relay contains the in-process core of the anonymous group-chat relay.

This file defines the Inbox, the append-only per-recipient store of private
messages. A copy is appended regardless of whether live delivery to the
recipient succeeded, and the inbox is never pruned.
*/
package relay

import "sync"

// PrivateMessage is one stored private message. The sender is recorded by
// nickname as it was at send time.
type PrivateMessage struct {
	FromNickname string
	Text         string
}

// Inbox owns the per-recipient private message lists.
type Inbox struct {
	// mu protects messages.
	mu sync.RWMutex

	messages map[int64][]PrivateMessage
}

// NewInbox constructs an empty Inbox.
func NewInbox() *Inbox {
	return &Inbox{
		messages: make(map[int64][]PrivateMessage),
	}
}

// Append stores a private message for the recipient.
func (i *Inbox) Append(recipientID int64, fromNickname, text string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.messages[recipientID] = append(i.messages[recipientID], PrivateMessage{
		FromNickname: fromNickname,
		Text:         text,
	})
}

// Messages returns a snapshot of the recipient's inbox, oldest first.
func (i *Inbox) Messages(recipientID int64) []PrivateMessage {
	i.mu.RLock()
	defer i.mu.RUnlock()

	snapshot := make([]PrivateMessage, len(i.messages[recipientID]))
	copy(snapshot, i.messages[recipientID])
	return snapshot
}
