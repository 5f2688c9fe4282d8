package parsing

import "fmt"

// ConfigError represents a parser configuration that cannot be used, such as
// a locale fragment that is not a valid regular expression
type ConfigError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parser config error in %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("parser config error in %s: %s", e.Field, e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}
