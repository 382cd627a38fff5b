package push

import "fmt"

// Error is the structured failure returned from the push workflow: an HTTP
// style code classifying fault, a stable name, and an optional underlying
// cause. Collaborator errors are propagated as-is, never wrapped into one
// of these, so the workflow adds no ambiguity of its own.
type Error struct {
	Code int
	Name string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d %s: %v", e.Code, e.Name, e.Err)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Name)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.Err }

// Is matches on code and name so that a context-carrying instance still
// matches its named sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Name == t.Name
}

// Validation failures, reported before any network call.
var (
	ErrExpectedAmount          = &Error{Code: 400, Name: "ExpectedAmountToSendInPushPayment"}
	ErrExpectedDestination     = &Error{Code: 400, Name: "ExpectedDestinationToPushPaymentTo"}
	ErrMultipleInboundPeers    = &Error{Code: 400, Name: "MultipleInboundPeersNotSupported"}
	ErrMultipleOutboundPeers   = &Error{Code: 400, Name: "MultipleOutboundPeersNotSupported"}
	ErrExpectedMaxFee          = &Error{Code: 400, Name: "ExpectedMaxFeeAmountToPushPayment"}
	ErrExpectedQuizMessage     = &Error{Code: 400, Name: "ExpectedQuizQuestionMessageToSendQuiz"}
	ErrExpectedMultipleAnswers = &Error{Code: 400, Name: "ExpectedMultipleQuizAnswersToSend"}
	ErrTooManyAnswers          = &Error{Code: 400, Name: "TooManyAnswersForQuiz"}
)

// Execution failures.
var (
	ErrFailedToParseAmount = &Error{Code: 400, Name: "FailedToParsePushAmount"}
	ErrExpectedNonZero     = &Error{Code: 400, Name: "ExpectedNonZeroAmountToPushPayment"}
	ErrDryRun              = &Error{Code: 400, Name: "PushPaymentDryRun"}
	ErrNoSettlement        = &Error{Code: 503, Name: "UnexpectedSendPaymentFailure"}
)
