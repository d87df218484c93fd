// Package ai selects and constructs text-generation providers.
package ai

import "errors"

// Sentinel errors for text-generation failures. Handlers dispatch on
// these with errors.Is to pick the right response code.
var (
	ErrProviderUnavailable = errors.New("text provider unavailable")
	ErrInferenceTimeout    = errors.New("text inference timeout")
	ErrInvalidResponse     = errors.New("text provider returned invalid response")
)
