// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/agentchat/internal/model"
	"github.com/jeranaias/agentchat/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter converts transcript entries to one file format.
type Exporter interface {
	// Export converts the entries to the target format.
	Export(entries []*model.Entry) ([]byte, error)

	// FileExtension returns the canonical extension (e.g. ".md").
	FileExtension() string

	// MimeType returns the MIME type of the format.
	MimeType() string
}

// ErrEmpty is returned when there is nothing to export.
var ErrEmpty = errors.New("transcript has no entries")

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// Title heads the document.
	Title string

	// IncludeTimestamps adds the entry time to each role label.
	IncludeTimestamps bool

	// CodeStyle is the chroma style for highlighted code in HTML.
	CodeStyle string

	// Now stamps the document; zero means time.Now.
	Now time.Time
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		Title:             "agentchat transcript",
		IncludeTimestamps: true,
		CodeStyle:         "monokai",
	}
}

func (o *Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ForPath returns the exporter for the extension of path.
func ForPath(path string, opts *Options) Exporter {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return NewHTMLExporter(opts)
	case ".json":
		return NewJSONExporter(opts)
	default:
		return NewMarkdownExporter(opts)
	}
}

// ToFile writes the settled entries to path in the format its extension
// selects. It returns the absolute path written.
func ToFile(entries []*model.Entry, path string, opts *Options) (string, error) {
	if path == "" {
		return "", errors.New("no output path")
	}
	data, err := ForPath(path, opts).Export(settled(entries))
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}
	if err := util.AtomicWriteFile(abs, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return abs, nil
}

// settled drops placeholder entries.
func settled(entries []*model.Entry) []*model.Entry {
	out := make([]*model.Entry, 0, len(entries))
	for _, e := range entries {
		if e != nil && !e.Placeholder {
			out = append(out, e)
		}
	}
	return out
}

// roleLabel names an entry's author in exported documents.
func roleLabel(e *model.Entry) string {
	if e.IsError {
		return "Error"
	}
	switch e.Role {
	case model.RoleUser:
		return "You"
	case model.RoleBot:
		return "Assistant"
	default:
		return string(e.Role)
	}
}

// formatTimestamp formats a timestamp for display.
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}

// formatShortTimestamp formats a timestamp for inline display.
func formatShortTimestamp(t time.Time) string {
	return t.Format("15:04:05")
}
