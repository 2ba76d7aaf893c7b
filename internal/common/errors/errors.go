// Package errors provides the standardized error taxonomy for the
// assessment flow and the report pipeline.
package errors

import (
	goerrors "errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Local validation errors. Recoverable in place: the controller stays
	// where it is and re-prompts.
	ErrCodeInvalidQuestion      ErrorCode = "INVALID_QUESTION"
	ErrCodeIncompleteAnswer     ErrorCode = "INCOMPLETE_ANSWER"
	ErrCodeIncompleteAssessment ErrorCode = "INCOMPLETE_ASSESSMENT"
	ErrCodeInvalidTransition    ErrorCode = "INVALID_TRANSITION"
	ErrCodeInvalidInput         ErrorCode = "INVALID_INPUT"

	// Upstream errors. Surfaced to the user; the session returns to the
	// state that triggered the call.
	ErrCodeNetwork        ErrorCode = "NETWORK_ERROR"
	ErrCodeScoringService ErrorCode = "SCORING_SERVICE_ERROR"

	// Report pipeline errors.
	ErrCodeRasterization ErrorCode = "RASTERIZATION_ERROR"
	ErrCodeDelivery      ErrorCode = "DELIVERY_ERROR"
)

// DiagnosticError is a structured application error. Retryable means the
// user may retry the triggering action manually; nothing in the flow is
// retried automatically.
type DiagnosticError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("DiagnosticError[%s]: %s", e.Code, e.Message)
}

// NewInvalidQuestionError reports an answer for a question id that is not
// part of the loaded catalog.
func NewInvalidQuestionError(questionID string) *DiagnosticError {
	return &DiagnosticError{
		Code:      ErrCodeInvalidQuestion,
		Message:   "Question is not part of the current catalog",
		Details:   fmt.Sprintf("questionId: %s", questionID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewIncompleteAnswerError reports an advance attempt with no recorded
// response for the current question.
func NewIncompleteAnswerError(questionID string) *DiagnosticError {
	return &DiagnosticError{
		Code:      ErrCodeIncompleteAnswer,
		Message:   "Current question has no recorded answer",
		Details:   fmt.Sprintf("questionId: %s", questionID),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIncompleteAssessmentError reports a scoring attempt before every
// catalog question has a response.
func NewIncompleteAssessmentError(answered, total int) *DiagnosticError {
	return &DiagnosticError{
		Code:      ErrCodeIncompleteAssessment,
		Message:   "Assessment has unanswered questions",
		Details:   fmt.Sprintf("answered %d of %d", answered, total),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidTransitionError reports an operation invoked in a state that
// does not permit it.
func NewInvalidTransitionError(op, state string) *DiagnosticError {
	return &DiagnosticError{
		Code:      ErrCodeInvalidTransition,
		Message:   fmt.Sprintf("Operation %q is not valid in state %q", op, state),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidInputError reports malformed caller input (empty industry,
// non-positive revenue, bad email address).
func NewInvalidInputError(details string) *DiagnosticError {
	return &DiagnosticError{
		Code:      ErrCodeInvalidInput,
		Message:   "Invalid input",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNetworkError wraps a transport-level failure talking to an external
// collaborator.
func NewNetworkError(service string, err error) *DiagnosticError {
	return &DiagnosticError{
		Code:      ErrCodeNetwork,
		Message:   fmt.Sprintf("Network error calling %s", service),
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewScoringServiceError carries the scoring service's own message. The
// remote computation is expensive, so this is never retried automatically.
func NewScoringServiceError(message string) *DiagnosticError {
	return &DiagnosticError{
		Code:      ErrCodeScoringService,
		Message:   "Scoring service rejected the assessment",
		Details:   message,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRasterizationError aborts report generation entirely; partial
// artifacts are never delivered.
func NewRasterizationError(page int, err error) *DiagnosticError {
	return &DiagnosticError{
		Code:      ErrCodeRasterization,
		Message:   "Report page failed to rasterize",
		Details:   fmt.Sprintf("page %d: %s", page, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDeliveryError returns the session to email capture for a manual retry.
func NewDeliveryError(provider string, err error) *DiagnosticError {
	return &DiagnosticError{
		Code:      ErrCodeDelivery,
		Message:   "Report delivery failed",
		Details:   fmt.Sprintf("provider: %s, error: %s", provider, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// CodeOf extracts the taxonomy code from err, or empty when err is not a
// DiagnosticError.
func CodeOf(err error) ErrorCode {
	var de *DiagnosticError
	if goerrors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsRetryable reports whether the user may usefully retry the action that
// produced err.
func IsRetryable(err error) bool {
	var de *DiagnosticError
	if goerrors.As(err, &de) {
		return de.Retryable
	}
	return false
}

// UserMessage renders err for display. Upstream errors keep the remote
// message; everything else uses the taxonomy message.
func UserMessage(err error) string {
	var de *DiagnosticError
	if !goerrors.As(err, &de) {
		return err.Error()
	}
	if de.Code == ErrCodeScoringService && de.Details != "" {
		return de.Details
	}
	return de.Message
}
