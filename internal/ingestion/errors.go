package ingestion

import "fmt"

// ReadError represents a failure to read or convert an input
type ReadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *ReadError) Error() string {
	source := e.Source
	if source == "" {
		source = "input"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", source, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", source, e.Message)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
