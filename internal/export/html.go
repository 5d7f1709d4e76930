// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/jeranaias/agentchat/internal/model"
	"github.com/jeranaias/agentchat/internal/render"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports entries to a standalone HTML document.
type HTMLExporter struct {
	options  *Options
	renderer *render.HTML
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{
		options:  opts,
		renderer: render.NewHTML(opts.CodeStyle),
	}
}

// Export converts the entries to HTML.
func (e *HTMLExporter) Export(entries []*model.Entry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	var css strings.Builder
	if err := e.renderer.WriteCSS(&css); err != nil {
		return nil, fmt.Errorf("failed to write code styles: %w", err)
	}

	title := html.EscapeString(e.options.Title)

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", title)
	sb.WriteString("    <meta name=\"generator\" content=\"agentchat\">\n")
	sb.WriteString("    <style>\n")
	sb.WriteString(pageCSS)
	sb.WriteString(css.String())
	sb.WriteString("    </style>\n")
	sb.WriteString("</head>\n")
	sb.WriteString("<body>\n")
	sb.WriteString("    <div class=\"container\">\n")
	fmt.Fprintf(&sb, "        <header class=\"header\"><h1>%s</h1><p class=\"meta\">Exported %s</p></header>\n",
		title, formatTimestamp(e.options.now()))
	sb.WriteString("        <main id=\"chat-box\">\n")

	for _, entry := range entries {
		sb.WriteString(e.renderEntry(entry))
	}

	sb.WriteString("        </main>\n")
	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// renderEntry renders one entry. Only markdown-format bot replies go
// through the markdown renderer; everything else is escaped.
func (e *HTMLExporter) renderEntry(entry *model.Entry) string {
	class := "bot-message"
	if entry.Role == model.RoleUser {
		class = "user-message"
	}
	if entry.IsError {
		class += " error-message"
	}

	var body string
	if entry.Format == model.FormatMarkdown {
		body, _ = render.MarkdownOrLiteral(e.renderer, entry.Text)
	} else {
		body = "<p class=\"literal\">" + e.renderer.Literal(entry.Text) + "</p>"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "            <div class=\"message %s\">\n", class)
	sb.WriteString("                <div class=\"message-header\">")
	fmt.Fprintf(&sb, "<span class=\"role-label\">%s</span>", roleLabel(entry))
	if e.options.IncludeTimestamps && !entry.Timestamp.IsZero() {
		fmt.Fprintf(&sb, " <span class=\"timestamp\">%s</span>", formatShortTimestamp(entry.Timestamp))
	}
	sb.WriteString("</div>\n")
	sb.WriteString("                <div class=\"message-content\">")
	sb.WriteString(body)
	sb.WriteString("</div>\n")

	if entry.HasPanel() {
		fmt.Fprintf(&sb, "                <details><summary>%s</summary><pre>%s</pre></details>\n",
			html.EscapeString(entry.Extracted.Title), e.renderer.Literal(entry.Extracted.Text))
	}
	sb.WriteString("            </div>\n")
	return sb.String()
}

const pageCSS = `        * { box-sizing: border-box; }
        body {
            margin: 0;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            background: #1a1b26;
            color: #c0caf5;
            line-height: 1.6;
        }
        .container { max-width: 860px; margin: 0 auto; padding: 24px; }
        .header h1 { margin: 0; color: #bb9af7; }
        .meta, .timestamp { color: #565f89; font-size: 0.85em; }
        .message { margin: 16px 0; padding: 12px 16px; border-radius: 8px; border: 1px solid #414868; }
        .user-message { background: #1f2335; margin-left: 48px; }
        .bot-message { background: #24283b; margin-right: 48px; }
        .error-message { border-color: #f7768e; }
        .role-label { font-weight: bold; color: #7aa2f7; }
        .error-message .role-label { color: #f7768e; }
        .literal { white-space: pre-wrap; margin: 0; }
        pre { overflow-x: auto; padding: 8px; background: #1a1b26; border-radius: 4px; }
        details { margin-top: 8px; }
        summary { cursor: pointer; color: #a9b1d6; }
`
