package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormat(t *testing.T) {
	err := NewIncompleteAnswerError("q4")
	assert.Equal(t, "DiagnosticError[INCOMPLETE_ANSWER]: Current question has no recorded answer", err.Error())
	assert.Equal(t, "questionId: q4", err.Details)
}

func TestRetryability(t *testing.T) {
	assert.True(t, IsRetryable(NewNetworkError("scoring service", fmt.Errorf("timeout"))))
	assert.True(t, IsRetryable(NewDeliveryError("remote", fmt.Errorf("down"))))
	assert.True(t, IsRetryable(NewIncompleteAnswerError("q1")))
	assert.False(t, IsRetryable(NewInvalidQuestionError("q1")))
	assert.False(t, IsRetryable(NewInvalidTransitionError("advance", "Init")))
	assert.False(t, IsRetryable(fmt.Errorf("plain error")))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeScoringService, CodeOf(NewScoringServiceError("nope")))
	assert.Equal(t, ErrorCode(""), CodeOf(fmt.Errorf("plain")))

	wrapped := fmt.Errorf("context: %w", NewRasterizationError(3, fmt.Errorf("font")))
	assert.Equal(t, ErrCodeRasterization, CodeOf(wrapped))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "industry not supported", UserMessage(NewScoringServiceError("industry not supported")))
	assert.Equal(t, "Report delivery failed", UserMessage(NewDeliveryError("smtp", fmt.Errorf("down"))))
	assert.Equal(t, "plain", UserMessage(fmt.Errorf("plain")))
}
