// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/agentchat/internal/config"
	"github.com/jeranaias/agentchat/internal/model"
	"github.com/jeranaias/agentchat/internal/render"
	"github.com/jeranaias/agentchat/internal/session"
	"github.com/jeranaias/agentchat/internal/ui/components"
	"github.com/jeranaias/agentchat/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Options configures a chat Model.
type Options struct {
	// Service performs uploads and chat calls. Required for sending.
	Service session.ChatService

	// Renderer renders replies. Created from the config theme when nil.
	Renderer *render.Terminal

	// Config supplies UI settings. Defaults are used when nil.
	Config *config.Config

	// Target is the service URL shown in the header and status bar.
	Target string

	// Logger receives session lifecycle events. Silent when nil.
	Logger *log.Logger
}

// Model is the Bubble Tea model for one chat session.
type Model struct {
	theme *styles.Theme
	cfg   *config.Config

	width  int
	height int

	ctrl     *session.Controller
	surf     *surface
	renderer *render.Terminal
	target   string
	logger   *log.Logger

	viewport viewport.Model
	input    textinput.Model
	spinner  components.Spinner
	keyMap   KeyMap

	expanded bool
	showHelp bool
	status   components.Status
	notice   string
	quitting bool

	// initErr is set when the renderer could not be built.
	initErr error
}

// New creates a chat model.
func New(theme *styles.Theme, opts Options) Model {
	if theme == nil {
		theme = styles.NewTheme()
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a message, /attach <file>, or /help"
	ti.CharLimit = 16384
	ti.Focus()

	vp := viewport.New(80, 20)
	vp.SetContent("")

	m := Model{
		theme:    theme,
		cfg:      cfg,
		width:    80,
		height:   24,
		surf:     newSurface(),
		renderer: opts.Renderer,
		target:   opts.Target,
		logger:   opts.Logger,
		viewport: vp,
		input:    ti,
		spinner:  components.NewSpinner(styles.PlaceholderSpinner),
		keyMap:   DefaultKeyMap(),
		expanded: cfg.UI.ExpandPanels,
		status:   components.StatusReady,
	}

	if m.renderer == nil {
		r, err := render.NewTerminal(
			render.WithStyle(theme.GlamourStyle(cfg.UI.Theme)),
			render.WithWordWrap(m.wrapWidth()),
		)
		if err != nil {
			m.initErr = err
			r, _ = render.NewTerminal(render.WithStyle("notty"))
		}
		m.renderer = r
	}

	var ctrlOpts []session.Option
	if m.logger != nil {
		ctrlOpts = append(ctrlOpts, session.WithLogger(m.logger))
	}
	m.ctrl = session.New(opts.Service, m.surf, m.renderer, ctrlOpts...)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Controller returns the session controller.
func (m Model) Controller() *session.Controller {
	return m.ctrl
}

// InputValue returns the current contents of the message input.
func (m Model) InputValue() string {
	return m.input.Value()
}

// Notice returns the status bar notice.
func (m Model) Notice() string {
	return m.notice
}

// Status returns the session status shown in the status bar.
func (m Model) Status() components.Status {
	return m.status
}

// Expanded reports whether extracted-content panels are expanded.
func (m Model) Expanded() bool {
	return m.expanded
}

// AttachmentName returns the name shown by the attachment indicator.
func (m Model) AttachmentName() string {
	return m.surf.attachment
}

// Entries returns the transcript entries in display order.
func (m Model) Entries() []*model.Entry {
	return m.surf.transcript.Entries()
}

// wrapWidth is the markdown wrap width for the current window.
func (m Model) wrapWidth() int {
	if m.cfg.UI.WordWrap > 0 {
		return m.cfg.UI.WordWrap
	}
	return components.BodyWidth(m.width)
}
