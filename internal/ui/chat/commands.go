// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/agentchat/internal/export"
	"github.com/jeranaias/agentchat/internal/model"
	"github.com/jeranaias/agentchat/internal/ui/components"
)

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// Commands lists the slash commands shared by the TUI and the line REPL.
var Commands = []components.HelpItem{
	{Key: "/attach <path>", Description: "Attach a file to the next message (replaces any pending file)"},
	{Key: "/detach", Description: "Drop the pending attachment"},
	{Key: "/export <path>", Description: "Write the transcript; .html and .json select the format, anything else is Markdown"},
	{Key: "/help", Description: "Show this help"},
	{Key: "/quit", Description: "Exit"},
	{Key: "//text", Description: "Send a message that starts with /"},
}

// runCommand executes a slash command line such as "/attach notes.txt".
func (m Model) runCommand(line string) (tea.Model, tea.Cmd) {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "attach", "a":
		if arg == "" {
			m.notice = "usage: /attach <path>"
			return m, nil
		}
		return m, loadAttachment(arg)

	case "detach":
		m.ctrl.ClearAttachment()
		m.notice = ""
		m.refresh()
		return m, nil

	case "export":
		if arg == "" {
			m.notice = "usage: /export <path>"
			return m, nil
		}
		return m, exportTranscript(m.surf.transcript.Settled(), arg, m.cfg.UI.CodeStyle)

	case "help", "h", "?":
		m.showHelp = true
		return m, nil

	case "quit", "exit", "q":
		return m.quit()
	}

	m.notice = fmt.Sprintf("unknown command: /%s (try /help)", name)
	return m, nil
}

// loadAttachment reads path off the UI goroutine.
func loadAttachment(path string) tea.Cmd {
	return func() tea.Msg {
		full := ExpandPath(path)
		att, err := ReadAttachment(full)
		return AttachmentLoadedMsg{Path: full, Attachment: att, Err: err}
	}
}

// ReadAttachment loads a regular file as an attachment.
func ReadAttachment(path string) (*model.Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return model.NewAttachment(path, content), nil
}

// exportTranscript copies entries so the write does not race later updates.
func exportTranscript(entries []*model.Entry, path, codeStyle string) tea.Cmd {
	snapshot := make([]*model.Entry, len(entries))
	for i, e := range entries {
		c := *e
		if e.Extracted != nil {
			p := *e.Extracted
			c.Extracted = &p
		}
		snapshot[i] = &c
	}
	return func() tea.Msg {
		opts := export.DefaultOptions()
		if codeStyle != "" {
			opts.CodeStyle = codeStyle
		}
		abs, err := export.ToFile(snapshot, ExpandPath(path), opts)
		return ExportDoneMsg{Path: abs, Err: err}
	}
}

// ExpandPath replaces a leading "~" with the home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
