// Package summary provides the video summarization use case.
// It sequences identifier extraction, metadata retrieval, and the language
// model call, and maps every failure to a typed error the HTTP layer can
// translate into a response.
package summary

import "errors"

// ErrEmptyCompletion indicates that the language model call succeeded at the
// transport level but the response carried no usable text. Summarizer
// adapters wrap this sentinel so the orchestrator can distinguish a malformed
// response from a failed call.
var ErrEmptyCompletion = errors.New("summarizer returned no content")

// InputError indicates the request carried a URL from which no video
// identifier could be extracted. The received URL is echoed back to the
// caller for diagnostics.
type InputError struct {
	ReceivedURL string
	Message     string
}

func (e *InputError) Error() string { return e.Message }

// NoContentError indicates the video has no usable description to summarize,
// either because the metadata call failed or because the description field
// was empty.
type NoContentError struct {
	Message string
}

func (e *NoContentError) Error() string { return e.Message }

// UpstreamError indicates the language model call itself failed.
// Message is the locale-specific user-facing text with the upstream
// description embedded; Err is the underlying failure.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string { return e.Message }

func (e *UpstreamError) Unwrap() error { return e.Err }

// GenerationError indicates the language model responded but produced no
// summary text.
type GenerationError struct {
	Message string
}

func (e *GenerationError) Error() string { return e.Message }
