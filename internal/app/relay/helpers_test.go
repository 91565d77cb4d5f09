package relay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"anonchat/internal/configs"
)

// sentText records one SendText call observed by the fake transport.
type sentText struct {
	ChannelID string
	Text      string
	Keyboard  Keyboard
	Ref       MessageRef
}

// sentPhoto records one SendPhoto call.
type sentPhoto struct {
	ChannelID string
	Photo     FileRef
	Caption   string
}

// editedText records one EditText call.
type editedText struct {
	Ref      MessageRef
	Text     string
	Keyboard Keyboard
}

// editedKeyboard records one EditKeyboard call.
type editedKeyboard struct {
	Ref      MessageRef
	Keyboard Keyboard
}

// fakeTransport implements Transport and records every outbound call. Channels
// listed in failing produce a delivery error instead.
type fakeTransport struct {
	mu sync.Mutex

	texts         []sentText
	photos        []sentPhoto
	textEdits     []editedText
	keyboardEdits []editedKeyboard
	deleted       []MessageRef

	failing map[string]bool
	nextID  int
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{failing: make(map[string]bool)}
}

func (f *fakeTransport) failChannel(channelID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing[channelID] = true
}

func (f *fakeTransport) SendText(ctx context.Context, channelID, text string, kb Keyboard) (MessageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing[channelID] {
		return MessageRef{}, errors.New("delivery refused")
	}

	f.nextID++
	ref := MessageRef{ChannelID: channelID, MessageID: fmt.Sprintf("m%d", f.nextID)}
	f.texts = append(f.texts, sentText{ChannelID: channelID, Text: text, Keyboard: kb, Ref: ref})
	return ref, nil
}

func (f *fakeTransport) SendPhoto(ctx context.Context, channelID string, photo FileRef, caption string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing[channelID] {
		return errors.New("delivery refused")
	}

	f.photos = append(f.photos, sentPhoto{ChannelID: channelID, Photo: photo, Caption: caption})
	return nil
}

func (f *fakeTransport) EditText(ctx context.Context, ref MessageRef, text string, kb Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing[ref.ChannelID] {
		return errors.New("edit refused")
	}

	f.textEdits = append(f.textEdits, editedText{Ref: ref, Text: text, Keyboard: kb})
	return nil
}

func (f *fakeTransport) EditKeyboard(ctx context.Context, ref MessageRef, kb Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing[ref.ChannelID] {
		return errors.New("edit refused")
	}

	f.keyboardEdits = append(f.keyboardEdits, editedKeyboard{Ref: ref, Keyboard: kb})
	return nil
}

func (f *fakeTransport) Delete(ctx context.Context, ref MessageRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = append(f.deleted, ref)
	return nil
}

// textsTo returns the texts delivered to one channel, in delivery order.
func (f *fakeTransport) textsTo(channelID string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []string
	for _, s := range f.texts {
		if s.ChannelID == channelID {
			out = append(out, s.Text)
		}
	}
	return out
}

// lastTextTo returns the most recent text delivered to one channel.
func (f *fakeTransport) lastTextTo(channelID string) (string, bool) {
	texts := f.textsTo(channelID)
	if len(texts) == 0 {
		return "", false
	}
	return texts[len(texts)-1], true
}

// containsText reports whether any text delivered to the channel contains substring.
func (f *fakeTransport) containsText(channelID, substring string) bool {
	for _, text := range f.textsTo(channelID) {
		if strings.Contains(text, substring) {
			return true
		}
	}
	return false
}

// reset forgets all recorded calls.
func (f *fakeTransport) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.texts = nil
	f.photos = nil
	f.textEdits = nil
	f.keyboardEdits = nil
	f.deleted = nil
}

func testConfig() *configs.AppConfig {
	return &configs.AppConfig{
		Environment:      "development",
		Port:             8080,
		DepartureLogSize: 20,
		ChatCapacity:     100,
	}
}

// newTestService constructs a Service over a fresh fake transport.
func newTestService() (*Service, *fakeTransport) {
	ft := newFakeTransport()
	return NewService(testConfig(), ft), ft
}

// joinMember joins a participant and returns their Member snapshot.
func joinMember(s *Service, userID int64, channelID string) Member {
	s.Join(context.Background(), userID, channelID)
	member, _ := s.registry.MemberOf(userID)
	return member
}
