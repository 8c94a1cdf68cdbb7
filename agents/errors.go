package agents

import "errors"

var (
	// ErrModelInvoke indicates the language model could not be reached or
	// returned a transport-level failure.
	ErrModelInvoke = errors.New("model invocation failed")

	// ErrEmptyQuery indicates the user turn contained no text.
	ErrEmptyQuery = errors.New("empty query")
)
