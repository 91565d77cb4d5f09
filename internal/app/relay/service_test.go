package relay

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func TestJoinSendsWelcomeAndAnnouncesArrival(t *testing.T) {
	s, ft := newTestService()
	ctx := context.Background()

	s.Join(ctx, 1, "chan-1")

	welcome, ok := ft.lastTextTo("chan-1")
	if !ok || !strings.Contains(welcome, "Добро пожаловать") {
		t.Fatalf("welcome not delivered, got %q", welcome)
	}

	ft.reset()
	s.Join(ctx, 2, "chan-2")

	if !ft.containsText("chan-1", "входит в чат. Он новенький!") {
		t.Fatal("first-join announcement missing newcomer variant")
	}
	if ft.containsText("chan-2", "входит в чат") {
		t.Fatal("arrival announced to the joiner themselves")
	}
}

func TestRejoinAnnouncementDropsNewcomerVariant(t *testing.T) {
	s, ft := newTestService()
	ctx := context.Background()

	s.Join(ctx, 1, "chan-1")
	s.Join(ctx, 2, "chan-2")
	s.Leave(ctx, 2, "chan-2")
	ft.reset()

	s.Join(ctx, 2, "chan-2")

	if !ft.containsText("chan-1", "входит в чат") {
		t.Fatal("rejoin not announced")
	}
	if ft.containsText("chan-1", "Он новенький!") {
		t.Fatal("rejoin announced with the newcomer variant")
	}
}

func TestJoinWhileAlreadyPresent(t *testing.T) {
	s, ft := newTestService()
	ctx := context.Background()

	s.Join(ctx, 1, "chan-1")
	s.Join(ctx, 2, "chan-2")
	ft.reset()

	s.Join(ctx, 1, "chan-1")

	if !ft.containsText("chan-1", "Ты уже в чате") {
		t.Fatal("repeated join did not get the already-present reply")
	}
	if ft.containsText("chan-2", "входит в чат") {
		t.Fatal("repeated join was announced")
	}
}

func TestLeaveAnnouncesDeparture(t *testing.T) {
	s, ft := newTestService()
	ctx := context.Background()

	member := joinMember(s, 1, "chan-1")
	joinMember(s, 2, "chan-2")
	ft.reset()

	s.Leave(ctx, 1, "chan-1")

	if !ft.containsText("chan-1", "Ты вышел из чата") {
		t.Fatal("departing participant not confirmed")
	}
	if !ft.containsText("chan-2", fmt.Sprintf("%s вышел из чата", member.Nickname)) {
		t.Fatal("departure not announced to remaining participants")
	}

	ft.reset()
	s.Leave(ctx, 1, "chan-1")
	if !ft.containsText("chan-1", "Тебя нет в чате") {
		t.Fatal("leave while absent did not get the not-in-chat reply")
	}
}

func TestTextRelayFormats(t *testing.T) {
	s, ft := newTestService()
	ctx := context.Background()

	sender := joinMember(s, 1, "chan-1")
	joinMember(s, 2, "chan-2")

	tests := []struct {
		name          string
		text          string
		repliedToText string
		want          string
	}{
		{
			name: "plain",
			text: "привет всем",
			want: sender.Nickname + ": привет всем",
		},
		{
			name: "narration drops the colon",
			text: "% машет рукой",
			want: sender.Nickname + " машет рукой",
		},
		{
			name:          "reply annotation",
			text:          "согласен",
			repliedToText: "Луна: как дела?",
			want:          sender.Nickname + " (reply to Луна): согласен",
		},
		{
			name:          "narration reply",
			text:          "%обнимает в ответ",
			repliedToText: "Луна: грустно",
			want:          sender.Nickname + " (reply to Луна) обнимает в ответ",
		},
		{
			name:          "reply to text without nickname segment",
			text:          "ок",
			repliedToText: "просто текст без двоеточия",
			want:          sender.Nickname + ": ок",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ft.reset()
			s.Text(ctx, 1, "chan-1", tt.text, tt.repliedToText)

			got, ok := ft.lastTextTo("chan-2")
			if !ok {
				t.Fatal("nothing relayed")
			}
			if got != tt.want {
				t.Fatalf("relayed %q, want %q", got, tt.want)
			}
			if texts := ft.textsTo("chan-1"); len(texts) != 0 {
				t.Fatalf("sender received their own relay: %v", texts)
			}
		})
	}
}

func TestTextFromNonParticipantRejected(t *testing.T) {
	s, ft := newTestService()
	ctx := context.Background()

	joinMember(s, 2, "chan-2")
	ft.reset()

	s.Text(ctx, 1, "chan-1", "привет", "")

	if !ft.containsText("chan-1", "Тебя нет в чате") {
		t.Fatal("non-participant not told they are outside the chat")
	}
	if texts := ft.textsTo("chan-2"); len(texts) != 0 {
		t.Fatalf("message from non-participant relayed: %v", texts)
	}
}

func TestPhotoRelayCaption(t *testing.T) {
	s, ft := newTestService()
	ctx := context.Background()

	sender := joinMember(s, 1, "chan-1")
	joinMember(s, 2, "chan-2")
	ft.reset()

	s.Photo(ctx, 1, "chan-1", FileRef("file-1"), "закат")

	if len(ft.photos) != 1 {
		t.Fatalf("expected one photo relay, got %d", len(ft.photos))
	}
	got := ft.photos[0]
	want := fmt.Sprintf("%s %s прислал(а) фото\nзакат", sender.Code, sender.Nickname)
	if got.ChannelID != "chan-2" || got.Caption != want {
		t.Fatalf("photo relayed as %+v, want caption %q on chan-2", got, want)
	}
}

func TestListRoster(t *testing.T) {
	s, ft := newTestService()
	ctx := context.Background()

	s.List(ctx, 1, "chan-1")
	if !ft.containsText("chan-1", "В чате никого нет") {
		t.Fatal("empty roster reply missing")
	}

	first := joinMember(s, 1, "chan-1")
	second := joinMember(s, 2, "chan-2")
	ft.reset()

	s.List(ctx, 1, "chan-1")

	roster, ok := ft.lastTextTo("chan-1")
	if !ok {
		t.Fatal("roster not delivered")
	}
	if !strings.HasPrefix(roster, "[BOT] В чате 2 (из 100):") {
		t.Fatalf("roster header wrong: %q", roster)
	}
	for _, member := range []Member{first, second} {
		if !strings.Contains(roster, member.Code+" "+member.Nickname) {
			t.Fatalf("roster missing %s %s:\n%s", member.Code, member.Nickname, roster)
		}
	}
	if !strings.Contains(roster, "🌕") {
		t.Fatal("roster missing freshness glyph for just-active participants")
	}
}

func TestSearchCommand(t *testing.T) {
	s, ft := newTestService()
	ctx := context.Background()

	joinMember(s, 1, "chan-1")
	joinMember(s, 2, "chan-2")
	s.NickSubmit(ctx, 2, "chan-2", "Солнышко")
	ft.reset()

	s.Search(ctx, 1, "chan-1", "солны")
	if !ft.containsText("chan-1", "Найдены:") || !ft.containsText("chan-1", "Солнышко") {
		t.Fatal("search did not report the match")
	}

	ft.reset()
	s.Search(ctx, 1, "chan-1", "никто")
	if !ft.containsText("chan-1", "Никого не нашли") {
		t.Fatal("empty result reply missing")
	}

	ft.reset()
	s.Search(ctx, 1, "chan-1", "   ")
	if !ft.containsText("chan-1", "/search <текст>") {
		t.Fatal("blank query not rejected")
	}
}

func TestInfoCommands(t *testing.T) {
	s, ft := newTestService()
	ctx := context.Background()

	s.Ping(ctx, 1, "chan-1")
	if !ft.containsText("chan-1", "Pong!") {
		t.Fatal("ping reply missing")
	}

	ft.reset()
	s.Help(ctx, 1, "chan-1")
	if !ft.containsText("chan-1", "Доступные команды") {
		t.Fatal("help reply missing")
	}

	ft.reset()
	s.Rules(ctx, 1, "chan-1")
	if !ft.containsText("chan-1", "Правила чата") {
		t.Fatal("rules reply missing")
	}

	ft.reset()
	s.About(ctx, 1, "chan-1")
	if !ft.containsText("chan-1", "анонимный чат-бот") {
		t.Fatal("about reply missing")
	}
}
