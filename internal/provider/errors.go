package provider

import "fmt"

// ParseError represents a malformed payload (bad JSON, unparseable HTML).
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ProviderError represents an explicit error carried inside an otherwise
// well-formed payload, surfaced with the provider's own message.
type ProviderError struct {
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// ConfigError represents a catalog entry missing a provider parameter
// required to build its feed URL. It is specific to one restaurant.
type ConfigError struct {
	Code  string
	Param string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("restaurant %s is missing required parameter %q", e.Code, e.Param)
}
