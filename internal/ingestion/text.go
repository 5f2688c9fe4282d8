// Package ingestion reads resume text from files, readers and pasted HTML, and
// cleans it into the plain line-oriented text the parser consumes.
package ingestion

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// MaxInputBytes caps how much text a single input may carry
const MaxInputBytes = 5 << 20

var excessiveBlankLines = regexp.MustCompile(`\n{3,}`)

// CleanText normalizes line endings and blank lines while preserving the text
// inside each line. Runs of spaces are kept because they separate skill tokens.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF → LF) and drop a leading BOM
	content = strings.TrimPrefix(content, "\ufeff")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	// 2. Non-breaking spaces from rich paste become plain spaces
	content = strings.ReplaceAll(content, "\u00a0", " ")

	// 3. Trim trailing whitespace per line
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	result := strings.Join(lines, "\n")

	// 4. Remove excessive blank lines (max 1 consecutive)
	result = excessiveBlankLines.ReplaceAllString(result, "\n\n")

	return strings.TrimSpace(result)
}

// IngestFromFile reads a text or HTML file, cleans it, and returns the text with metadata.
// The format is detected from the file extension and content.
func IngestFromFile(path string) (string, *Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, &ReadError{Source: path, Message: "file not found", Cause: err}
		}
		return "", nil, &ReadError{Source: path, Message: "failed to open file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	return IngestFromReader(f, path, "")
}

// IngestFromReader reads at most MaxInputBytes from r. An empty format is detected
// from the source name and content.
func IngestFromReader(r io.Reader, source string, format Format) (string, *Metadata, error) {
	content, err := io.ReadAll(io.LimitReader(r, MaxInputBytes+1))
	if err != nil {
		return "", nil, &ReadError{Source: source, Message: "failed to read input", Cause: err}
	}
	if len(content) > MaxInputBytes {
		return "", nil, &ReadError{Source: source, Message: fmt.Sprintf("input exceeds %d bytes", MaxInputBytes)}
	}

	if format == "" {
		format = DetectFormat(source, content)
	}
	return IngestText(string(content), source, format)
}

// IngestText converts content of the given format to clean text.
func IngestText(content string, source string, format Format) (string, *Metadata, error) {
	text := content
	if format == FormatHTML {
		converted, err := HTMLToText(content)
		if err != nil {
			return "", nil, &ReadError{Source: source, Message: "failed to convert HTML", Cause: err}
		}
		text = converted
	}

	cleaned := CleanText(text)
	metadata := NewMetadata(cleaned, source, format)
	metadata.Bytes = len(content)

	return cleaned, metadata, nil
}

// DetectFormat picks HTML for .html/.htm files and for content that opens with
// an HTML tag; everything else is plain text.
func DetectFormat(source string, content []byte) Format {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".html", ".htm":
		return FormatHTML
	}

	head := bytes.TrimPrefix(content[:min(len(content), 512)], []byte("\ufeff"))
	head = bytes.TrimSpace(head)
	lower := strings.ToLower(string(head))
	if strings.HasPrefix(lower, "<!doctype html") || strings.HasPrefix(lower, "<html") {
		return FormatHTML
	}
	return FormatText
}
