package relay

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestMsgInlineDeliversAndStoresCopy(t *testing.T) {
	s, ft := newTestService()
	ctx := context.Background()

	sender := joinMember(s, 1, "chan-1")
	recipient := joinMember(s, 2, "chan-2")
	joinMember(s, 3, "chan-3")
	ft.reset()

	s.MsgInline(ctx, 1, "chan-1", recipient.Code, "привет тайно")

	want := fmt.Sprintf("[ЛС от %s]: привет тайно", sender.Nickname)
	if got, _ := ft.lastTextTo("chan-2"); got != want {
		t.Fatalf("private delivery %q, want %q", got, want)
	}
	if ft.containsText("chan-3", "привет тайно") {
		t.Fatal("private message leaked to a third participant")
	}
	if !ft.containsText("chan-1", "Личное сообщение отправлено") {
		t.Fatal("sender not confirmed")
	}

	messages := s.inbox.Messages(2)
	if len(messages) != 1 || messages[0].Text != "привет тайно" || messages[0].FromNickname != sender.Nickname {
		t.Fatalf("inbox copy wrong: %+v", messages)
	}
}

func TestMsgInlineUnknownCode(t *testing.T) {
	s, ft := newTestService()
	ctx := context.Background()

	joinMember(s, 1, "chan-1")
	ft.reset()

	s.MsgInline(ctx, 1, "chan-1", "#ZZZZ", "привет")

	if !ft.containsText("chan-1", "Не нашли пользователя") {
		t.Fatal("unknown code not reported")
	}

	// a mistyped code fails the shape check but gets the same reply
	for _, code := range []string{"#AB1", "#ABCDE", "что-то"} {
		ft.reset()
		s.MsgInline(ctx, 1, "chan-1", code, "привет")
		if !ft.containsText("chan-1", "Не нашли пользователя") {
			t.Fatalf("malformed code %q not reported", code)
		}
	}
}

func TestMsgMenuFlow(t *testing.T) {
	s, ft := newTestService()
	ctx := context.Background()

	sender := joinMember(s, 1, "chan-1")
	recipient := joinMember(s, 2, "chan-2")
	ft.reset()

	s.MsgMenu(ctx, 1, "chan-1")

	if s.workflows.State(1) != StateAwaitingMsgRecipient {
		t.Fatal("menu did not open the recipient-selection workflow")
	}
	if len(ft.texts) != 1 {
		t.Fatalf("expected one selection grid, got %d messages", len(ft.texts))
	}
	grid := ft.texts[0]
	if !strings.Contains(grid.Text, "Выбери пользователя") {
		t.Fatalf("unexpected prompt %q", grid.Text)
	}
	var selectData string
	for _, row := range grid.Keyboard {
		for _, b := range row {
			if b.Data == fmt.Sprintf("msg_select|%d", recipient.UserID) {
				selectData = b.Data
			}
			if b.Data == "msg_select|1" {
				t.Fatal("selection grid offers the sender themselves")
			}
		}
	}
	if selectData == "" {
		t.Fatal("selection grid missing the recipient button")
	}

	s.HandleCallback(ctx, 1, "chan-1", selectData, grid.Ref)

	if s.workflows.State(1) != StateAwaitingMsgText {
		t.Fatal("selection did not advance to awaiting text")
	}
	if len(ft.textEdits) != 1 || !strings.Contains(ft.textEdits[0].Text, recipient.Nickname) {
		t.Fatalf("selection message not edited in place: %+v", ft.textEdits)
	}

	ft.reset()
	s.HandleText(ctx, 1, "chan-1", "как ты?", "")

	if s.workflows.State(1) != StateIdle {
		t.Fatal("workflow still open after delivery")
	}
	want := fmt.Sprintf("[ЛС от %s]: как ты?", sender.Nickname)
	if got, _ := ft.lastTextTo("chan-2"); got != want {
		t.Fatalf("private delivery %q, want %q", got, want)
	}
	if !ft.containsText("chan-1", "отправлено") {
		t.Fatal("sender not confirmed")
	}
}

func TestMsgCancelViaCallback(t *testing.T) {
	s, ft := newTestService()
	ctx := context.Background()

	joinMember(s, 1, "chan-1")
	joinMember(s, 2, "chan-2")
	ft.reset()

	s.MsgMenu(ctx, 1, "chan-1")
	grid := ft.texts[0]

	s.HandleCallback(ctx, 1, "chan-1", "msg_cancel", grid.Ref)

	if s.workflows.State(1) != StateIdle {
		t.Fatal("cancel left the workflow open")
	}
	if len(ft.textEdits) != 1 || ft.textEdits[0].Text != "Отправка ЛС отменена." {
		t.Fatalf("cancel did not replace the grid: %+v", ft.textEdits)
	}
}

func TestMsgSelectRecipientLeft(t *testing.T) {
	s, ft := newTestService()
	ctx := context.Background()

	joinMember(s, 1, "chan-1")
	joinMember(s, 2, "chan-2")
	ft.reset()

	s.MsgMenu(ctx, 1, "chan-1")
	grid := ft.texts[0]

	s.Leave(ctx, 2, "chan-2")
	ft.reset()

	s.HandleCallback(ctx, 1, "chan-1", "msg_select|2", grid.Ref)

	if s.workflows.State(1) != StateIdle {
		t.Fatal("workflow kept open after the recipient left")
	}
	if len(ft.textEdits) != 1 || !strings.Contains(ft.textEdits[0].Text, "пользователь вышел") {
		t.Fatalf("departure not reported in place: %+v", ft.textEdits)
	}
}

func TestMsgSelectIgnoredOutsideOpenMenu(t *testing.T) {
	s, ft := newTestService()
	ctx := context.Background()

	joinMember(s, 1, "chan-1")
	joinMember(s, 2, "chan-2")
	ft.reset()

	// a selection press with no menu open
	s.HandleCallback(ctx, 1, "chan-1", "msg_select|2", MessageRef{ChannelID: "chan-1", MessageID: "stale"})

	if s.workflows.State(1) != StateIdle {
		t.Fatal("stale selection opened a workflow")
	}
	if len(ft.texts) != 0 || len(ft.textEdits) != 0 {
		t.Fatalf("stale selection produced output: %d texts, %d edits", len(ft.texts), len(ft.textEdits))
	}

	// a second press after the menu finished
	s.MsgMenu(ctx, 1, "chan-1")
	grid := ft.texts[len(ft.texts)-1]
	s.HandleCallback(ctx, 1, "chan-1", "msg_select|2", grid.Ref)
	s.HandleText(ctx, 1, "chan-1", "привет", "")
	ft.reset()

	s.HandleCallback(ctx, 1, "chan-1", "msg_select|2", grid.Ref)

	if s.workflows.State(1) != StateIdle {
		t.Fatal("repeated selection reopened the finished workflow")
	}
	if len(ft.textEdits) != 0 {
		t.Fatalf("repeated selection edited the old menu: %+v", ft.textEdits)
	}
}

func TestMsgTextWithoutStoredRecipient(t *testing.T) {
	s, ft := newTestService()
	ctx := context.Background()

	joinMember(s, 1, "chan-1")
	ft.reset()

	s.MsgText(ctx, 1, "chan-1", "привет")

	if !ft.containsText("chan-1", "нет получателя") {
		t.Fatal("missing-recipient error not reported")
	}
}

func TestGetMsgReadsInboxCopy(t *testing.T) {
	s, ft := newTestService()
	ctx := context.Background()

	joinMember(s, 1, "chan-1")
	recipient := joinMember(s, 2, "chan-2")
	ft.reset()

	s.GetMsg(ctx, 2, "chan-2")
	if !ft.containsText("chan-2", "нет личных сообщений") {
		t.Fatal("empty inbox reply missing")
	}

	s.MsgInline(ctx, 1, "chan-1", recipient.Code, "первое")
	s.MsgInline(ctx, 1, "chan-1", recipient.Code, "второе")
	ft.reset()

	s.GetMsg(ctx, 2, "chan-2")

	readback, ok := ft.lastTextTo("chan-2")
	if !ok {
		t.Fatal("inbox readback not delivered")
	}
	if !strings.Contains(readback, "первое") || !strings.Contains(readback, "второе") {
		t.Fatalf("readback missing stored messages: %q", readback)
	}
	if strings.Index(readback, "первое") > strings.Index(readback, "второе") {
		t.Fatal("readback not in oldest-first order")
	}
}

func TestInboxCopyKeptWhenLiveDeliveryFails(t *testing.T) {
	s, ft := newTestService()
	ctx := context.Background()

	joinMember(s, 1, "chan-1")
	recipient := joinMember(s, 2, "chan-2")
	ft.reset()
	ft.failChannel("chan-2")

	s.MsgInline(ctx, 1, "chan-1", recipient.Code, "не дошло")

	messages := s.inbox.Messages(2)
	if len(messages) != 1 || messages[0].Text != "не дошло" {
		t.Fatalf("inbox copy lost on delivery failure: %+v", messages)
	}
}
