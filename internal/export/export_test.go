// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/agentchat/internal/model"
)

var stamp = time.Date(2025, 3, 4, 10, 20, 30, 0, time.UTC)

func sampleEntries() []*model.Entry {
	return []*model.Entry{
		{ID: "1", Role: model.RoleUser, Text: "<b>Summarize</b> **this**\n[Attached: notes.txt]", Format: model.FormatLiteral, Timestamp: stamp},
		{ID: "loading-2", Role: model.RoleBot, Text: model.PlaceholderText, Placeholder: true},
		{
			ID: "3", Role: model.RoleBot, Text: "**Done**\n\n```go\nfmt.Println(1)\n```", Format: model.FormatMarkdown, Timestamp: stamp,
			Extracted: &model.Panel{Title: "View Extracted Content", Text: "raw <i>text</i> ``` end"},
		},
		{ID: "4", Role: model.RoleBot, Text: "Error: chat: server returned 500", Format: model.FormatLiteral, IsError: true},
	}
}

func testOptions() *Options {
	opts := DefaultOptions()
	opts.Now = stamp
	return opts
}

func TestForPath(t *testing.T) {
	tests := map[string]string{
		"chat.html":  ".html",
		"chat.HTM":   ".html",
		"chat.json":  ".json",
		"chat.md":    ".md",
		"chat.txt":   ".md",
		"transcript": ".md",
	}
	for path, want := range tests {
		assert.Equal(t, want, ForPath(path, nil).FileExtension(), path)
	}
}

func TestHTMLExporter(t *testing.T) {
	out, err := NewHTMLExporter(testOptions()).Export(settled(sampleEntries()))
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, "<!DOCTYPE html>")
	assert.Contains(t, doc, "&lt;b&gt;Summarize&lt;/b&gt; **this**", "user text stays literal")
	assert.NotContains(t, doc, "<b>Summarize</b>")
	assert.Contains(t, doc, "<strong>Done</strong>", "bot reply is markdown")
	assert.Contains(t, doc, `class="chroma"`, "code is highlighted")
	assert.Contains(t, doc, ".chroma", "chroma CSS is embedded")
	assert.Contains(t, doc, "<details><summary>View Extracted Content</summary><pre>raw &lt;i&gt;text&lt;/i&gt; ``` end</pre></details>")
	assert.Contains(t, doc, "error-message")
	assert.NotContains(t, doc, model.PlaceholderText)
}

func TestMarkdownExporter(t *testing.T) {
	out, err := NewMarkdownExporter(testOptions()).Export(settled(sampleEntries()))
	require.NoError(t, err)
	doc := string(out)

	assert.True(t, strings.HasPrefix(doc, "# agentchat transcript\n"))
	assert.Contains(t, doc, "### You <sub>10:20:30</sub>")
	assert.Contains(t, doc, "```text\n<b>Summarize</b> **this**\n[Attached: notes.txt]\n```", "user text is fenced")
	assert.Contains(t, doc, "**Done**\n\n```go")
	assert.Contains(t, doc, "<summary>View Extracted Content</summary>")
	assert.Contains(t, doc, "````text\nraw <i>text</i> ``` end\n````", "fence outgrows inner backticks")
	assert.Contains(t, doc, "### Error")
}

func TestJSONExporter(t *testing.T) {
	out, err := NewJSONExporter(nil).Export(settled(sampleEntries()))
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "user", decoded[0]["role"])
	assert.Equal(t, true, decoded[2]["is_error"])
}

func TestExport_Empty(t *testing.T) {
	for _, exp := range []Exporter{NewHTMLExporter(nil), NewMarkdownExporter(nil), NewJSONExporter(nil)} {
		_, err := exp.Export(nil)
		assert.True(t, errors.Is(err, ErrEmpty), exp.FileExtension())
	}
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "chat.html")

	written, err := ToFile(sampleEntries(), path, testOptions())
	require.NoError(t, err)
	assert.Equal(t, path, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<strong>Done</strong>")
}

func TestToFile_OnlyPlaceholder(t *testing.T) {
	entries := []*model.Entry{{ID: "loading-1", Role: model.RoleBot, Text: model.PlaceholderText, Placeholder: true}}
	_, err := ToFile(entries, filepath.Join(t.TempDir(), "x.md"), nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestFence(t *testing.T) {
	assert.Equal(t, "```text\nplain\n```\n\n", fence("plain\n"))
	assert.Equal(t, "`````text\na ```` b\n`````\n\n", fence("a ```` b"))
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `\# a \*b\* \[c\]`, escapeMarkdown("# a *b* [c]"))
	assert.Equal(t, "one two", escapeMarkdown("one\ntwo"))
}
