package summarizer

import (
	"context"

	"vidbrief/internal/utils/text"
)

// NoOp is a summarizer that echoes the prompt content without calling any
// external API. This is useful for development and tests when real
// summarization is not needed.
type NoOp struct{}

// NewNoOp creates a new NoOp summarizer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Summarize returns the beginning of the user message, truncated to a
// summary-like length. The system message is ignored.
func (n *NoOp) Summarize(_ context.Context, _, user string) (string, error) {
	const maxLength = 500
	if text.CountRunes(user) <= maxLength {
		return user, nil
	}
	return text.TruncateRunes(user, maxLength) + "...", nil
}
