package locale

import "fmt"

// LoadError represents a failure to read, decode or validate a locale definition
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("locale %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("locale %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
