package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var htmlWhitespace = regexp.MustCompile(`[ \t\r\n\f]+`)

// skippedElements never contribute text
var skippedElements = map[string]bool{
	"head": true, "script": true, "style": true, "noscript": true, "template": true, "svg": true,
}

// blockElements start and end on their own line
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "dd": true, "div": true,
	"dl": true, "dt": true, "fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "tr": true, "ul": true,
}

// HTMLToText converts pasted rich text to plain lines. Block elements and <br>
// end lines, list items become bullets, and table cells are tab separated.
func HTMLToText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	var sb strings.Builder
	writeText(&sb, root)

	lines := strings.Split(sb.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n"), nil
}

func writeText(sb *strings.Builder, s *goquery.Selection) {
	s.Contents().Each(func(_ int, node *goquery.Selection) {
		name := goquery.NodeName(node)
		switch {
		case name == "#text":
			sb.WriteString(htmlWhitespace.ReplaceAllString(node.Text(), " "))
		case name == "br":
			sb.WriteByte('\n')
		case name == "td" || name == "th":
			writeText(sb, node)
			sb.WriteByte('\t')
		case skippedElements[name], strings.HasPrefix(name, "#"):
			// comments, doctype
		case blockElements[name]:
			sb.WriteByte('\n')
			if name == "li" {
				sb.WriteString("• ")
			}
			writeText(sb, node)
			sb.WriteByte('\n')
		default:
			writeText(sb, node)
		}
	})
}
