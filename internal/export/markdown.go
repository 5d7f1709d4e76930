// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"

	"github.com/jeranaias/agentchat/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports entries to Markdown.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts the entries to Markdown.
func (e *MarkdownExporter) Export(entries []*model.Entry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(e.options.Title))
	fmt.Fprintf(&sb, "_Exported %s_\n\n", formatTimestamp(e.options.now()))

	for i, entry := range entries {
		if i > 0 {
			sb.WriteString("---\n\n")
		}

		label := roleLabel(entry)
		if e.options.IncludeTimestamps && !entry.Timestamp.IsZero() {
			fmt.Fprintf(&sb, "### %s <sub>%s</sub>\n\n", label, formatShortTimestamp(entry.Timestamp))
		} else {
			fmt.Fprintf(&sb, "### %s\n\n", label)
		}

		if entry.Format == model.FormatMarkdown {
			sb.WriteString(strings.TrimRight(entry.Text, "\n"))
			sb.WriteString("\n\n")
		} else {
			sb.WriteString(fence(entry.Text))
		}

		if entry.HasPanel() {
			fmt.Fprintf(&sb, "<details>\n<summary>%s</summary>\n\n", entry.Extracted.Title)
			sb.WriteString(fence(entry.Extracted.Text))
			sb.WriteString("</details>\n\n")
		}
	}
	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// fence wraps literal text in a code fence longer than any backtick run
// it contains, so the text cannot close the fence early.
func fence(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	ticks := strings.Repeat("`", max(3, longest+1))
	return ticks + "text\n" + strings.TrimRight(s, "\n") + "\n" + ticks + "\n\n"
}

// escapeMarkdown escapes characters that would break a heading.
func escapeMarkdown(s string) string {
	r := strings.NewReplacer(
		"\\", "\\\\",
		"#", "\\#",
		"*", "\\*",
		"_", "\\_",
		"[", "\\[",
		"]", "\\]",
		"\n", " ",
	)
	return r.Replace(s)
}
