// Package report renders a markdown summary of processed tenders and its
// HTML form for sharing outside the CLI.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"tenderscan/internal/errors"
	"tenderscan/internal/tender"
)

// renderer renders GFM markdown; the extension is needed for tables.
var renderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Markdown renders the tender summary as a markdown document.
func Markdown(tenders []*tender.Tender, generatedAt time.Time) string {
	var b strings.Builder

	b.WriteString("# Tender Extraction Summary\n\n")
	fmt.Fprintf(&b, "Generated %s (%d tenders)\n\n", formatTime(generatedAt.Unix()), len(tenders))

	if len(tenders) == 0 {
		b.WriteString("No tenders processed yet.\n")
		return b.String()
	}

	b.WriteString("| Tender ID | Project | Ministry | Delivery | Specs |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, t := range tenders {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %d |\n",
			cell(t.TenderID), cell(t.ProjectName), cell(t.Ministry),
			cell(t.DeliveryDeadline), t.SpecCount)
	}
	b.WriteString("\n")

	for _, t := range tenders {
		if t.TechnicalSpecs == "" {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", t.TenderID)
		if t.SourceFile != "" {
			fmt.Fprintf(&b, "Source: `%s`\n\n", t.SourceFile)
		}
		if t.Voltage != "" {
			fmt.Fprintf(&b, "Voltage: %s\n\n", t.Voltage)
		}
		if t.Warranty != "" {
			fmt.Fprintf(&b, "Warranty: %s\n\n", t.Warranty)
		}
		if len(t.Standards) > 0 {
			fmt.Fprintf(&b, "Standards: %s\n\n", strings.Join(t.Standards, ", "))
		}
		for _, line := range strings.Split(t.TechnicalSpecs, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			fmt.Fprintf(&b, "- %s\n", strings.TrimPrefix(strings.TrimSpace(line), "• "))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML converts the markdown report to HTML using goldmark.
func HTML(md string) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(md), &buf); err != nil {
		return "", errors.NewInternal(err)
	}
	return buf.String(), nil
}

// cell escapes table-breaking characters in a markdown table cell.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", "\\|")
}

// formatTime formats a Unix timestamp as "2006-01-02 15:04" UTC.
func formatTime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("2006-01-02 15:04")
}
