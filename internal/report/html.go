package report

import (
	"fmt"
	"html"
	"strings"
)

// FromMarkdown renders a narrative markdown report as a basic inline-styled
// HTML document suitable for email bodies. Only the subset of markdown the
// report generator emits is handled: h1/h2 headings and bold spans.
func FromMarkdown(markdown string) string {
	var out []string
	out = append(out,
		"<html><body style='font-family:Arial,sans-serif;line-height:1.45;color:#111;'>",
		"<div style='max-width:900px;margin:0 auto;'>",
	)

	for _, line := range strings.Split(markdown, "\n") {
		escaped := html.EscapeString(line)
		switch {
		case strings.HasPrefix(line, "# "):
			out = append(out, fmt.Sprintf("<h1>%s</h1>", escaped[2:]))
		case strings.HasPrefix(line, "## "):
			out = append(out, fmt.Sprintf("<h2 style='margin-top:18px;'>%s</h2>", escaped[3:]))
		case strings.TrimSpace(line) == "":
			out = append(out, "<br/>")
		default:
			out = append(out, fmt.Sprintf("<p>%s</p>", boldSpans(escaped)))
		}
	}

	out = append(out, "</div></body></html>")
	return strings.Join(out, "\n")
}

// boldSpans converts **text** markers into strong tags, alternating open
// and close. An unmatched trailing marker is left as-is.
func boldSpans(text string) string {
	pairs := strings.Count(text, "**") / 2
	var sb strings.Builder
	for i := 0; i < pairs; i++ {
		from := strings.Index(text, "**")
		rest := text[from+2:]
		to := strings.Index(rest, "**")
		sb.WriteString(text[:from])
		sb.WriteString("<strong>")
		sb.WriteString(rest[:to])
		sb.WriteString("</strong>")
		text = rest[to+2:]
	}
	sb.WriteString(text)
	return sb.String()
}
