/*
Package relay contains the in-process core of the anonymous group-chat relay.

This file defines the PollRegistry and the Poll entity. A poll is owned by
exactly one creator, collects votes with idempotent vote switching (a voter is
in at most one option's set at any time), and re-renders its live results in
place on every recorded delivery handle. Closing a poll strips the buttons but
retains the poll object and its votes.
*/
package relay

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"anonchat/internal/pkg/errs"
	"anonchat/internal/pkg/logx"
	"anonchat/internal/pkg/randx"
)

// poll is the state of one creator's poll.
type poll struct {
	// id is the internal identifier, used only for logging.
	id string

	creatorID int64
	question  string
	options   []string

	// votes holds one voter set per option index.
	votes []map[int64]struct{}

	// active transitions only true to false, never back.
	active bool

	// handles records, per recipient, the delivered poll message so it can be
	// edited in place later.
	handles map[int64]MessageRef
}

// PollSnapshot is a read-only view of a poll's current state.
type PollSnapshot struct {
	Question string
	Options  []string
	Counts   []int
	Active   bool
}

// PollRegistry owns poll lifecycle and vote state, keyed by creator ID.
type PollRegistry struct {
	// mu protects polls and every poll's vote sets and handles.
	mu sync.RWMutex

	polls map[int64]*poll

	transport Transport

	// structured logger with PollRegistry context.
	logger zerolog.Logger
}

// NewPollRegistry constructs a PollRegistry delivering through the given transport.
func NewPollRegistry(transport Transport) *PollRegistry {
	pollLogger := logx.Logger().With().Str("component", "PollRegistry").Logger()

	return &PollRegistry{
		polls:     make(map[int64]*poll),
		transport: transport,
		logger:    pollLogger,
	}
}

// Create opens a new active poll for the creator. A still-active prior poll is
// silently replaced and its delivery handles are orphaned; this preserves the
// relay's long-standing behavior and is logged so it stays observable.
func (p *PollRegistry) Create(creatorID int64, question string, options []string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if prior, ok := p.polls[creatorID]; ok && prior.active {
		p.logger.Warn().
			Int64("creator_id", creatorID).
			Str("poll_id", prior.id).
			Msg("Active poll replaced by a new one; prior delivery handles orphaned.")
	}

	votes := make([]map[int64]struct{}, len(options))
	for i := range votes {
		votes[i] = make(map[int64]struct{})
	}

	newPoll := &poll{
		id:        randx.PollID(),
		creatorID: creatorID,
		question:  question,
		options:   options,
		votes:     votes,
		active:    true,
		handles:   make(map[int64]MessageRef),
	}
	p.polls[creatorID] = newPoll

	p.logger.Info().
		Int64("creator_id", creatorID).
		Str("poll_id", newPoll.id).
		Int("options", len(options)).
		Msg("Poll created.")
}

// Publish sends the poll header with its option keyboard to every given member
// and records each delivery handle for later in-place edits. Per-recipient
// failures are logged and swallowed.
func (p *PollRegistry) Publish(ctx context.Context, creatorID int64, headerText string, members []Member) {
	p.mu.RLock()
	activePoll, ok := p.polls[creatorID]
	if !ok {
		p.mu.RUnlock()
		return
	}
	kb := p.keyboardLocked(activePoll)
	p.mu.RUnlock()

	type delivered struct {
		userID int64
		ref    MessageRef
	}

	results := make(chan delivered, len(members))
	g := new(errgroup.Group)

	for _, member := range members {
		member := member
		g.Go(func() error {
			ref, err := p.transport.SendText(ctx, member.ChannelID, headerText, kb)
			if err != nil {
				p.logger.Warn().
					Err(err).
					Str("nickname", member.Nickname).
					Msg("Failed to deliver poll.")
				return nil
			}
			results <- delivered{userID: member.UserID, ref: ref}
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	p.mu.Lock()
	for d := range results {
		activePoll.handles[d.userID] = d.ref
	}
	p.mu.Unlock()
}

// Vote records the voter's choice on the creator's poll. The voter is removed
// from every option's set before being added to the chosen one, atomically, so
// a repeat vote is a harmless no-op and a switch never leaves the voter in two
// sets or none. After a successful vote the live results are re-rendered on
// every recorded handle.
func (p *PollRegistry) Vote(ctx context.Context, creatorID int64, optionIndex int, voterID int64) *errs.CustomError {
	p.mu.Lock()

	votedPoll, ok := p.polls[creatorID]
	if !ok {
		p.mu.Unlock()
		return errs.NewError(errs.ErrPollNotFound)
	}
	if !votedPoll.active {
		p.mu.Unlock()
		return errs.NewError(errs.ErrPollClosed)
	}
	if optionIndex < 0 || optionIndex >= len(votedPoll.options) {
		p.mu.Unlock()
		return errs.NewError(errs.ErrInvalidPollOption)
	}

	for _, voters := range votedPoll.votes {
		delete(voters, voterID)
	}
	votedPoll.votes[optionIndex][voterID] = struct{}{}

	resultText := p.resultsLocked(votedPoll)
	kb := p.keyboardLocked(votedPoll)
	handles := p.handlesLocked(votedPoll)

	p.mu.Unlock()

	g := new(errgroup.Group)
	for _, ref := range handles {
		ref := ref
		g.Go(func() error {
			if err := p.transport.EditText(ctx, ref, resultText, kb); err != nil {
				p.logger.Warn().
					Err(err).
					Str("channel_id", ref.ChannelID).
					Msg("Failed to update poll results.")
			}
			return nil
		})
	}
	_ = g.Wait()

	return nil
}

// Close flips the creator's poll inactive and strips the button layout from
// every recorded handle. The poll object and its votes are retained.
func (p *PollRegistry) Close(ctx context.Context, creatorID int64) *errs.CustomError {
	p.mu.Lock()

	closedPoll, ok := p.polls[creatorID]
	if !ok || !closedPoll.active {
		p.mu.Unlock()
		return errs.NewError(errs.ErrNoActivePoll)
	}

	closedPoll.active = false
	handles := p.handlesLocked(closedPoll)

	p.mu.Unlock()

	p.logger.Info().
		Int64("creator_id", creatorID).
		Str("poll_id", closedPoll.id).
		Msg("Poll closed.")

	g := new(errgroup.Group)
	for _, ref := range handles {
		ref := ref
		g.Go(func() error {
			if err := p.transport.EditKeyboard(ctx, ref, nil); err != nil {
				p.logger.Warn().
					Err(err).
					Str("channel_id", ref.ChannelID).
					Msg("Failed to strip poll keyboard.")
			}
			return nil
		})
	}
	_ = g.Wait()

	return nil
}

// Snapshot returns a read-only view of the creator's poll.
func (p *PollRegistry) Snapshot(creatorID int64) (PollSnapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	viewedPoll, ok := p.polls[creatorID]
	if !ok {
		return PollSnapshot{}, false
	}

	counts := make([]int, len(viewedPoll.options))
	for i, voters := range viewedPoll.votes {
		counts[i] = len(voters)
	}

	return PollSnapshot{
		Question: viewedPoll.question,
		Options:  append([]string(nil), viewedPoll.options...),
		Counts:   counts,
		Active:   viewedPoll.active,
	}, true
}

// votedOption returns the option index the voter currently occupies on the
// creator's poll, if any.
func (p *PollRegistry) votedOption(creatorID, voterID int64) (int, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	viewedPoll, ok := p.polls[creatorID]
	if !ok {
		return 0, false
	}

	for i, voters := range viewedPoll.votes {
		if _, voted := voters[voterID]; voted {
			return i, true
		}
	}
	return 0, false
}

// resultsLocked renders the live results: the question followed by one line per
// option, marked with a filled indicator once the option has any votes and with
// its ordinal otherwise. Caller must hold mu.
func (p *PollRegistry) resultsLocked(renderedPoll *poll) string {
	lines := make([]string, 0, len(renderedPoll.options)+1)
	lines = append(lines, renderedPoll.question)

	for i, option := range renderedPoll.options {
		count := len(renderedPoll.votes[i])
		mark := strconv.Itoa(i + 1)
		if count > 0 {
			mark = "✔️"
		}
		lines = append(lines, fmt.Sprintf("%s - %s (%d)", mark, option, count))
	}

	return strings.Join(lines, "\n")
}

// keyboardLocked builds the one-button-per-option keyboard. Caller must hold mu.
func (p *PollRegistry) keyboardLocked(renderedPoll *poll) Keyboard {
	kb := make(Keyboard, 0, len(renderedPoll.options))
	for i, option := range renderedPoll.options {
		kb = append(kb, []Button{{
			Label: fmt.Sprintf("%d - %s", i+1, option),
			Data:  fmt.Sprintf("pollvote|%d|%d", renderedPoll.creatorID, i+1),
		}})
	}
	return kb
}

// handlesLocked snapshots the recorded delivery handles. Caller must hold mu.
func (p *PollRegistry) handlesLocked(snappedPoll *poll) []MessageRef {
	handles := make([]MessageRef, 0, len(snappedPoll.handles))
	for _, ref := range snappedPoll.handles {
		handles = append(handles, ref)
	}
	return handles
}
