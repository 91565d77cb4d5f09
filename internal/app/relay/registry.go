/*
Package relay contains the in-process core of the anonymous group-chat relay.

This file defines the Registry struct, the single owner of identity and session
state. An Identity is durable for the life of the process and is never deleted;
a Session exists only while the participant is in chat and is the sole gate for
every chat-participation action.
*/
package relay

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"anonchat/internal/pkg/errs"
	"anonchat/internal/pkg/logx"
	"anonchat/internal/pkg/randx"
)

// MaxNicknameLength is the maximum number of display characters in a nickname.
const MaxNicknameLength = 15

// Role is the history-derived standing of a participant.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleNew       Role = "new"
	RoleResident  Role = "resident"
)

// Identity is a participant's durable record. Created on first join, updated on
// re-join and nickname change, never destroyed.
type Identity struct {
	// Nickname is the mutable display name, at most MaxNicknameLength characters.
	Nickname string

	// Code is the immutable personal code of the form "#XXXX".
	Code string

	// JoinCount is incremented each time the participant (re)joins.
	JoinCount int
}

// session is a participant's currently-present chat record.
type session struct {
	channelID    string
	lastActivity time.Time
}

// Departure is an immutable snapshot taken when a participant leaves.
type Departure struct {
	Nickname string
	Code     string
	LeftAt   time.Time
}

// Member is a read-only snapshot of one active participant, used for rosters,
// keyboards, and broadcast fanout.
type Member struct {
	UserID       int64
	Nickname     string
	Code         string
	ChannelID    string
	LastActivity time.Time
}

// JoinResult reports the outcome of a join attempt.
type JoinResult struct {
	Nickname string
	Code     string

	// JoinCount is the identity's join count after this attempt.
	JoinCount int

	// FirstJoin is true when a fresh identity was minted for the participant.
	FirstJoin bool

	// AlreadyPresent is true when a session already existed; nothing was mutated.
	AlreadyPresent bool
}

// Registry owns all identity and session state. Every access goes through its
// methods; the maps are never exposed to callers.
type Registry struct {
	// mu protects identities, sessions, and departures.
	mu sync.RWMutex

	// identities stores the durable records, keyed by user ID. Never pruned.
	identities map[int64]*Identity

	// sessions stores the currently-present participants, keyed by user ID.
	sessions map[int64]*session

	// departures is a bounded ring of recent departures, newest first.
	departures []Departure

	// departureCap bounds the departures ring.
	departureCap int

	// admins and moderators are the privileged sets from configuration.
	admins     map[int64]struct{}
	moderators map[int64]struct{}

	// now supplies the current time; injectable for tests.
	now func() time.Time

	// structured logger with Registry context.
	logger zerolog.Logger
}

// NewRegistry constructs a Registry with the given privileged sets and
// departure-ring capacity.
func NewRegistry(adminIDs, moderatorIDs []int64, departureCap int) *Registry {
	registryLogger := logx.Logger().With().Str("component", "Registry").Logger()

	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	moderators := make(map[int64]struct{}, len(moderatorIDs))
	for _, id := range moderatorIDs {
		moderators[id] = struct{}{}
	}

	return &Registry{
		identities:   make(map[int64]*Identity),
		sessions:     make(map[int64]*session),
		departureCap: departureCap,
		admins:       admins,
		moderators:   moderators,
		now:          time.Now,
		logger:       registryLogger,
	}
}

// Join creates a session for the participant. An existing identity is reused
// with its join count incremented; otherwise a fresh identity is minted with a
// random nickname and personal code. If a session already exists, the result
// reports AlreadyPresent and nothing is mutated.
func (r *Registry) Join(userID int64, channelID string) (JoinResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[userID]; ok {
		ident := r.identities[userID]
		return JoinResult{
			Nickname:       ident.Nickname,
			Code:           ident.Code,
			JoinCount:      ident.JoinCount,
			AlreadyPresent: true,
		}, nil
	}

	ident, ok := r.identities[userID]
	firstJoin := false
	if ok {
		ident.JoinCount++
	} else {
		nickname, err := randx.Nickname()
		if err != nil {
			return JoinResult{}, err
		}

		code, err := randx.PersonalCode()
		if err != nil {
			return JoinResult{}, err
		}

		ident = &Identity{
			Nickname:  nickname,
			Code:      code,
			JoinCount: 1,
		}
		r.identities[userID] = ident
		firstJoin = true
	}

	r.sessions[userID] = &session{
		channelID:    channelID,
		lastActivity: r.now(),
	}

	r.logger.Info().
		Int64("user_id", userID).
		Str("nickname", ident.Nickname).
		Int("join_count", ident.JoinCount).
		Msg("Participant joined chat.")

	return JoinResult{
		Nickname:  ident.Nickname,
		Code:      ident.Code,
		JoinCount: ident.JoinCount,
		FirstJoin: firstJoin,
	}, nil
}

// Leave removes the participant's session and prepends a Departure snapshot to
// the bounded ring. It reports false if no session existed.
func (r *Registry) Leave(userID int64) (Departure, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[userID]; !ok {
		return Departure{}, false
	}

	ident := r.identities[userID]
	delete(r.sessions, userID)

	dep := Departure{
		Nickname: ident.Nickname,
		Code:     ident.Code,
		LeftAt:   r.now(),
	}

	r.departures = append([]Departure{dep}, r.departures...)
	if len(r.departures) > r.departureCap {
		r.departures = r.departures[:r.departureCap]
	}

	r.logger.Info().
		Int64("user_id", userID).
		Str("nickname", ident.Nickname).
		Msg("Participant left chat.")

	return dep, true
}

// Rename updates the participant's nickname. Nicknames longer than
// MaxNicknameLength display characters are rejected without mutation.
// It returns the previous nickname on success.
func (r *Registry) Rename(userID int64, newNickname string) (string, *errs.CustomError) {
	if utf8.RuneCountInString(newNickname) > MaxNicknameLength {
		return "", errs.NewError(errs.ErrNicknameTooLong)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ident, ok := r.identities[userID]
	if !ok {
		return "", errs.NewError(errs.ErrNotInChat)
	}

	oldNickname := ident.Nickname
	ident.Nickname = newNickname

	r.logger.Info().
		Int64("user_id", userID).
		Str("old_nickname", oldNickname).
		Str("new_nickname", newNickname).
		Msg("Participant renamed.")

	return oldNickname, nil
}

// RoleOf derives the participant's role: privileged sets first, then "new" for
// at most one join, otherwise "resident".
func (r *Registry) RoleOf(userID int64) Role {
	if _, ok := r.admins[userID]; ok {
		return RoleAdmin
	}
	if _, ok := r.moderators[userID]; ok {
		return RoleModerator
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if ident, ok := r.identities[userID]; ok && ident.JoinCount > 1 {
		return RoleResident
	}
	return RoleNew
}

// UserByCode resolves a personal code to a user ID, case-insensitively, across
// active sessions only. Codes address only people currently in chat.
func (r *Registry) UserByCode(code string) (int64, bool) {
	if !strings.HasPrefix(code, randx.CodePrefix) {
		code = randx.CodePrefix + code
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for userID := range r.sessions {
		if strings.EqualFold(r.identities[userID].Code, code) {
			return userID, true
		}
	}
	return 0, false
}

// Touch refreshes the participant's last-activity timestamp. It is a no-op for
// participants without a session.
func (r *Registry) Touch(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sess, ok := r.sessions[userID]; ok {
		sess.lastActivity = r.now()
	}
}

// InChat reports whether the participant currently holds a session.
func (r *Registry) InChat(userID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.sessions[userID]
	return ok
}

// MemberOf returns the active-participant snapshot for one user ID.
func (r *Registry) MemberOf(userID int64) (Member, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.memberLocked(userID)
}

func (r *Registry) memberLocked(userID int64) (Member, bool) {
	sess, ok := r.sessions[userID]
	if !ok {
		return Member{}, false
	}

	ident := r.identities[userID]
	return Member{
		UserID:       userID,
		Nickname:     ident.Nickname,
		Code:         ident.Code,
		ChannelID:    sess.channelID,
		LastActivity: sess.lastActivity,
	}, true
}

// Members returns a snapshot of every active participant. Iteration order is
// unspecified; no caller may rely on it.
func (r *Registry) Members() []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]Member, 0, len(r.sessions))
	for userID := range r.sessions {
		member, _ := r.memberLocked(userID)
		members = append(members, member)
	}
	return members
}

// Search returns the active participants whose nickname contains the given
// substring, case-insensitively.
func (r *Registry) Search(substring string) []Member {
	needle := strings.ToLower(substring)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []Member
	for userID := range r.sessions {
		if strings.Contains(strings.ToLower(r.identities[userID].Nickname), needle) {
			member, _ := r.memberLocked(userID)
			matches = append(matches, member)
		}
	}
	return matches
}

// Departures returns a snapshot of the departure ring, newest first.
func (r *Registry) Departures() []Departure {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshot := make([]Departure, len(r.departures))
	copy(snapshot, r.departures)
	return snapshot
}

// Len returns the number of active sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// FreshnessSymbol maps the time since a participant's last activity to one of
// five presence glyphs, from a full moon (active within a minute) to a new
// moon (idle half an hour or more). Used purely for the roster listing.
func FreshnessSymbol(age time.Duration) string {
	switch {
	case age < time.Minute:
		return "🌕"
	case age < 5*time.Minute:
		return "🌖"
	case age < 15*time.Minute:
		return "🌗"
	case age < 30*time.Minute:
		return "🌘"
	default:
		return "🌑"
	}
}
