package llm

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

// ConfigurationError reports a missing or invalid provider setting. It is
// always raised before any request is sent.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error (%s): %s", e.Field, e.Reason)
}

// TransportError reports a failed API call: network, HTTP status, quota, or an
// empty completion. It is returned as-is to the caller; nothing is retried.
type TransportError struct {
	Provider   string
	StatusCode int // 0 when no HTTP response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API error (HTTP %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s API error: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Quota reports whether the failure was a rate-limit or quota rejection.
func (e *TransportError) Quota() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// errNoChoices is wrapped when the API answers without any completion.
var errNoChoices = errors.New("no choices in response")

func newTransportError(provider string, err error) *TransportError {
	te := &TransportError{Provider: provider, Err: err}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		te.StatusCode = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		te.StatusCode = reqErr.HTTPStatusCode
	}
	return te
}
