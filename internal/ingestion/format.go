package ingestion

import (
	"fmt"
	"strings"
)

// Format identifies how input text is encoded
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// ParseFormat parses a format name. The empty string means FormatText.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown format %q (expected text or html)", s)
	}
}
