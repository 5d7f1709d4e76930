// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/agentchat/internal/config"
	"github.com/jeranaias/agentchat/internal/model"
	"github.com/jeranaias/agentchat/internal/render"
	"github.com/jeranaias/agentchat/internal/ui/styles"
)

// eraseLine returns the cursor to column 0 and clears the line.
const eraseLine = "\r\x1b[2K"

// =============================================================================
// LINE SURFACE
// =============================================================================

// lineSurface prints transcript entries as they arrive. It keeps its own
// transcript so /export sees the same entries as the TUI would.
type lineSurface struct {
	out        io.Writer
	tty        bool
	echoUser   bool
	quiet      bool
	transcript *model.Transcript

	attachment  string
	placeholder string
}

func newLineSurface(out io.Writer, tty bool) *lineSurface {
	return &lineSurface{
		out:        out,
		tty:        tty,
		transcript: model.NewTranscript(),
	}
}

func (s *lineSurface) Append(e model.Entry) {
	s.transcript.Append(e)

	switch {
	case e.Placeholder:
		s.placeholder = e.ID
		if s.quiet {
			return
		}
		if s.tty {
			fmt.Fprint(s.out, MutedStyle.Render(e.Body))
		} else {
			fmt.Fprintln(s.out, e.Body)
		}

	case e.Role == model.RoleUser:
		if s.echoUser && !s.quiet {
			fmt.Fprintf(s.out, "%s %s\n", UserLabelStyle.Render(e.Role.DisplayName()+":"), e.Body)
		}

	default:
		s.printBot(e)
	}
}

func (s *lineSurface) printBot(e model.Entry) {
	body := strings.Trim(e.Body, "\n")
	if e.IsError {
		fmt.Fprintln(s.out, ErrorStyle.Render(body))
		return
	}
	if s.quiet {
		fmt.Fprintln(s.out, body)
		return
	}

	fmt.Fprintln(s.out, BotLabelStyle.Render(e.Role.DisplayName()+":"))
	fmt.Fprintln(s.out, body)
	if e.Extracted != nil {
		fmt.Fprintln(s.out, PanelTitleStyle.Render(e.Extracted.Title))
		for _, line := range strings.Split(e.Extracted.Body, "\n") {
			fmt.Fprintf(s.out, "  %s\n", line)
		}
	}
	fmt.Fprintln(s.out)
}

func (s *lineSurface) Remove(id string) bool {
	if id != "" && id == s.placeholder {
		if s.tty && !s.quiet {
			fmt.Fprint(s.out, eraseLine)
		}
		s.placeholder = ""
	}
	return s.transcript.Remove(id)
}

func (s *lineSurface) SetAttachment(name string) {
	s.attachment = name
	if name != "" && !s.quiet {
		fmt.Fprintln(s.out, MutedStyle.Render(fmt.Sprintf("Attached: %s (sent with your next message)", name)))
	}
}

func (s *lineSurface) ClearInput()  {}
func (s *lineSurface) ScrollToEnd() {}

// =============================================================================
// RENDERERS
// =============================================================================

// plainRenderer passes reply text through unrendered for pipes and files.
type plainRenderer struct{}

func (plainRenderer) Markdown(src string) (string, error) { return render.Sanitize(src), nil }
func (plainRenderer) Literal(src string) string           { return render.Sanitize(src) }

// lineRenderer picks glamour for a terminal and plain text otherwise.
func lineRenderer(cfg *config.Config, tty bool) render.Renderer {
	if !tty {
		return plainRenderer{}
	}
	wrap := cfg.UI.WordWrap
	if wrap <= 0 {
		wrap = GetTerminalWidth() - 4
	}
	theme := styles.NewTheme()
	r, err := render.NewTerminal(
		render.WithStyle(theme.GlamourStyle(cfg.UI.Theme)),
		render.WithWordWrap(wrap),
	)
	if err != nil {
		return plainRenderer{}
	}
	return r
}
