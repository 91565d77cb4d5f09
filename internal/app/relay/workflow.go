/*
Package relay contains the in-process core of the anonymous group-chat relay.

This file defines the per-actor workflow state store. Each short-lived
interaction (nickname change, direct message composition, hug-target selection,
poll creation) is a tagged state advanced by its expected follow-up event.
An abandoned workflow is never expired here; the entry stays until the actor
finishes or cancels. Cleanup is left to an external sweeper via Clear.
*/
package relay

import "sync"

// WorkflowState tags the step a participant's open workflow is waiting on.
type WorkflowState int

const (
	// StateIdle means no workflow is open for the actor.
	StateIdle WorkflowState = iota

	// StateAwaitingNickname waits for the new nickname text.
	StateAwaitingNickname

	// StateAwaitingPollBlock waits for the newline-separated question block.
	StateAwaitingPollBlock

	// StateAwaitingMsgRecipient waits for a recipient selection button press.
	StateAwaitingMsgRecipient

	// StateAwaitingMsgText waits for the private message text.
	StateAwaitingMsgText

	// StateAwaitingHugTarget waits for a hug-target selection button press.
	StateAwaitingHugTarget
)

// workflow holds the state of one actor's open interaction.
type workflow struct {
	state WorkflowState

	// recipient is the stored direct-message recipient, valid in StateAwaitingMsgText.
	recipient int64
}

// WorkflowStore maps actors to their open workflow state. A workflow is scoped
// to exactly one actor and auto-terminates after its single expected follow-up.
type WorkflowStore struct {
	// mu protects flows.
	mu sync.RWMutex

	flows map[int64]*workflow
}

// NewWorkflowStore constructs an empty WorkflowStore.
func NewWorkflowStore() *WorkflowStore {
	return &WorkflowStore{
		flows: make(map[int64]*workflow),
	}
}

// State returns the actor's current workflow state.
func (w *WorkflowStore) State(userID int64) WorkflowState {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if flow, ok := w.flows[userID]; ok {
		return flow.state
	}
	return StateIdle
}

// Begin opens (or replaces) the actor's workflow in the given state.
func (w *WorkflowStore) Begin(userID int64, state WorkflowState) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.flows[userID] = &workflow{state: state}
}

// SetRecipient stores the selected direct-message recipient and advances the
// actor's workflow to StateAwaitingMsgText.
func (w *WorkflowStore) SetRecipient(userID, recipientID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.flows[userID] = &workflow{state: StateAwaitingMsgText, recipient: recipientID}
}

// Recipient returns the stored direct-message recipient, if any.
func (w *WorkflowStore) Recipient(userID int64) (int64, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	flow, ok := w.flows[userID]
	if !ok || flow.state != StateAwaitingMsgText {
		return 0, false
	}
	return flow.recipient, true
}

// Clear terminates the actor's workflow, open or not.
func (w *WorkflowStore) Clear(userID int64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.flows, userID)
}
