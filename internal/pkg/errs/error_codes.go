/*
Package errs provides custom error types and application-level error code constants.

These error codes identify the relay's business errors: user-input validation failures,
missing preconditions (no active session), and malformed callback payloads. Transport
delivery failures are deliberately not represented here, they are logged and swallowed
at the call site and never surfaced to the actor.
*/
package errs

// 1xxx: Input Validation Errors
const (
	// ErrNicknameTooLong indicates that a requested nickname exceeds the display-length limit.
	ErrNicknameTooLong = 1101

	// ErrUnknownCode indicates that no active participant carries the given personal code.
	ErrUnknownCode = 1102

	// ErrPollBlockTooShort indicates that a submitted poll block has fewer than two lines
	// (a question plus at least one option).
	ErrPollBlockTooShort = 1103

	// ErrInvalidPollOption indicates that a vote referenced an option index outside the poll's range.
	ErrInvalidPollOption = 1104

	// ErrInvalidNotifyInterval indicates that a requested notification interval is not one
	// of the allowed values.
	ErrInvalidNotifyInterval = 1105

	// ErrEmptySearchQuery indicates that a nickname search was requested without a query.
	ErrEmptySearchQuery = 1106
)

// 2xxx: Precondition Errors
const (
	// ErrNotInChat indicates that the actor has no active session and the action requires one.
	ErrNotInChat = 2101

	// ErrRecipientLeft indicates that the selected private-message recipient left the chat
	// before the message text arrived.
	ErrRecipientLeft = 2102

	// ErrPollNotFound indicates that no poll exists for the referenced creator.
	ErrPollNotFound = 2201

	// ErrPollClosed indicates that the referenced poll is no longer collecting votes.
	ErrPollClosed = 2202

	// ErrNoActivePoll indicates that the actor tried to close a poll without having an active one.
	ErrNoActivePoll = 2203
)

// 3xxx: Programmer and Data Errors
const (
	// ErrBadCallbackPayload indicates that a structured callback payload could not be parsed.
	ErrBadCallbackPayload = 3101

	// ErrNoPendingRecipient indicates that private-message text arrived with no recorded recipient.
	ErrNoPendingRecipient = 3102

	// ErrUnknownNotifyField indicates that a notification toggle referenced a field that does not exist.
	ErrUnknownNotifyField = 3103
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general internal error.
	ErrUnknown = 5000
)
