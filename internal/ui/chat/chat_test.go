// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/agentchat/internal/api"
	"github.com/jeranaias/agentchat/internal/config"
	"github.com/jeranaias/agentchat/internal/model"
	"github.com/jeranaias/agentchat/internal/render"
	"github.com/jeranaias/agentchat/internal/session"
	"github.com/jeranaias/agentchat/internal/ui/components"
	"github.com/jeranaias/agentchat/internal/ui/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type fakeService struct {
	uploads []*model.Attachment
	chats   []api.ChatRequest
	resp    *api.ChatResponse
	chatErr error
}

func (f *fakeService) Upload(_ context.Context, att *model.Attachment) (*api.UploadResult, error) {
	f.uploads = append(f.uploads, att)
	return &api.UploadResult{FilePath: "/srv/uploads/" + att.Name}, nil
}

func (f *fakeService) Chat(_ context.Context, req api.ChatRequest) (*api.ChatResponse, error) {
	f.chats = append(f.chats, req)
	if f.chatErr != nil {
		return nil, f.chatErr
	}
	return f.resp, nil
}

func strPtr(s string) *string { return &s }

func newTestModel(t *testing.T, svc session.ChatService) Model {
	t.Helper()
	r, err := render.NewTerminal(render.WithStyle("notty"))
	require.NoError(t, err)
	m := New(styles.NewThemeWithProfile(termenv.Ascii, true), Options{
		Service:  svc,
		Renderer: r,
		Config:   config.Default(),
		Target:   "http://127.0.0.1:8000",
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

// collect runs cmd and any batched commands, returning the messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func findMsg[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v
		}
	}
	var zero T
	t.Fatalf("no %T in %v", zero, msgs)
	return zero
}

func enter(m Model) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func typeAndEnter(m Model, text string) (Model, tea.Cmd) {
	m.input.SetValue(text)
	return enter(m)
}

func deliver(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	reply := findMsg[ReplyMsg](t, collect(cmd))
	next, _ := m.Update(reply)
	return next.(Model)
}

// =============================================================================
// SUBMISSION
// =============================================================================

func TestSubmitShowsPlaceholderThenReply(t *testing.T) {
	svc := &fakeService{resp: &api.ChatResponse{Response: strPtr("**Hi**")}}
	m := newTestModel(t, svc)

	m, cmd := typeAndEnter(m, "hello")
	require.NotNil(t, cmd)
	assert.Empty(t, m.InputValue())
	assert.True(t, m.Controller().Busy())
	assert.Equal(t, components.StatusWaiting, m.Status())

	entries := m.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "hello", entries[0].Text)
	assert.True(t, entries[1].Placeholder)
	assert.Contains(t, m.View(), model.PlaceholderText)

	m = deliver(t, m, cmd)
	entries = m.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, model.RoleBot, entries[1].Role)
	assert.Equal(t, "**Hi**", entries[1].Text)
	assert.False(t, entries[1].Placeholder)
	assert.Equal(t, components.StatusReady, m.Status())
	assert.NotContains(t, m.View(), model.PlaceholderText)

	require.Len(t, svc.chats, 1)
	assert.Equal(t, "hello", svc.chats[0].Message)
	assert.Nil(t, svc.chats[0].FilePath)
}

func TestEnterWhileWaitingKeepsInput(t *testing.T) {
	svc := &fakeService{resp: &api.ChatResponse{Response: strPtr("ok")}}
	m := newTestModel(t, svc)

	m, first := typeAndEnter(m, "one")
	m, cmd := typeAndEnter(m, "two")
	assert.Nil(t, cmd)
	assert.Equal(t, "two", m.InputValue())
	assert.Contains(t, m.Notice(), "waiting for reply")
	assert.Len(t, m.Entries(), 2)
	assert.Contains(t, m.View(), "waiting for reply")

	m = deliver(t, m, first)
	m, cmd = enter(m)
	require.NotNil(t, cmd)
	assert.Empty(t, m.InputValue())
	assert.Equal(t, "two", m.Entries()[2].Text)
}

func TestEmptyEnterIsIgnored(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	m, cmd := typeAndEnter(m, "   ")
	assert.Nil(t, cmd)
	assert.Empty(t, m.Entries())
}

func TestFailedReplyShowsError(t *testing.T) {
	svc := &fakeService{chatErr: errors.New("connection refused")}
	m := newTestModel(t, svc)

	m, cmd := typeAndEnter(m, "hello")
	m = deliver(t, m, cmd)

	entries := m.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "Error: connection refused", entries[1].Text)
	assert.True(t, entries[1].IsError)
	assert.Equal(t, components.StatusFailed, m.Status())
	assert.False(t, m.Controller().Busy())
}

func TestDoubleSlashSendsLiteralSlash(t *testing.T) {
	svc := &fakeService{resp: &api.ChatResponse{Response: strPtr("ok")}}
	m := newTestModel(t, svc)

	m, cmd := typeAndEnter(m, "//help me")
	require.NotNil(t, cmd)
	assert.Equal(t, "/help me", m.Entries()[0].Text)
	assert.False(t, m.showHelp)
}

// =============================================================================
// COMMANDS
// =============================================================================

func TestAttachThenSend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("some notes"), 0644))

	svc := &fakeService{resp: &api.ChatResponse{
		Response:         strPtr("summary"),
		ExtractedContent: strPtr("some notes"),
	}}
	m := newTestModel(t, svc)

	m, cmd := typeAndEnter(m, "/attach "+path)
	require.NotNil(t, cmd)
	assert.Empty(t, m.InputValue())

	loaded := findMsg[AttachmentLoadedMsg](t, collect(cmd))
	require.NoError(t, loaded.Err)
	next, _ := m.Update(loaded)
	m = next.(Model)
	assert.Equal(t, "notes.txt", m.AttachmentName())
	assert.Contains(t, m.View(), "Attached: notes.txt")

	m, cmd = typeAndEnter(m, "Summarize")
	assert.Empty(t, m.AttachmentName())
	assert.Equal(t, "Summarize\n[Attached: notes.txt]", m.Entries()[0].Text)

	m = deliver(t, m, cmd)
	require.Len(t, svc.uploads, 1)
	assert.Equal(t, []byte("some notes"), svc.uploads[0].Content)
	require.Len(t, svc.chats, 1)
	require.NotNil(t, svc.chats[0].FilePath)
	assert.Equal(t, "/srv/uploads/notes.txt", *svc.chats[0].FilePath)

	reply := m.Entries()[1]
	require.NotNil(t, reply.Extracted)
	assert.Equal(t, "some notes", reply.Extracted.Text)
	assert.Contains(t, m.View(), session.ExtractedPanelTitle)
}

func TestAttachMissingFile(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	m, cmd := typeAndEnter(m, "/attach "+filepath.Join(t.TempDir(), "nope.txt"))

	loaded := findMsg[AttachmentLoadedMsg](t, collect(cmd))
	require.Error(t, loaded.Err)
	next, _ := m.Update(loaded)
	m = next.(Model)
	assert.Contains(t, m.Notice(), "attach failed")
	assert.Empty(t, m.AttachmentName())
}

func TestAttachWithoutPath(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	m, cmd := typeAndEnter(m, "/attach")
	assert.Nil(t, cmd)
	assert.Equal(t, "usage: /attach <path>", m.Notice())
}

func TestDetach(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	next, _ := m.Update(AttachmentLoadedMsg{Attachment: model.NewAttachment("/tmp/a.pdf", []byte("x"))})
	m = next.(Model)
	require.Equal(t, "a.pdf", m.AttachmentName())

	m, _ = typeAndEnter(m, "/detach")
	assert.Empty(t, m.AttachmentName())
	assert.Nil(t, m.Controller().Pending())
}

func TestExportCommand(t *testing.T) {
	svc := &fakeService{resp: &api.ChatResponse{Response: strPtr("hello back")}}
	m := newTestModel(t, svc)
	m, cmd := typeAndEnter(m, "hello")
	m = deliver(t, m, cmd)

	out := filepath.Join(t.TempDir(), "chat.html")
	m, cmd = typeAndEnter(m, "/export "+out)
	done := findMsg[ExportDoneMsg](t, collect(cmd))
	require.NoError(t, done.Err)

	next, _ := m.Update(done)
	m = next.(Model)
	assert.Contains(t, m.Notice(), "exported to")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `id="chat-box"`)
	assert.Contains(t, string(data), "hello back")
}

func TestUnknownCommand(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	m, cmd := typeAndEnter(m, "/frobnicate")
	assert.Nil(t, cmd)
	assert.Equal(t, "unknown command: /frobnicate (try /help)", m.Notice())
	assert.Empty(t, m.Entries())
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	m, _ = typeAndEnter(m, "/help")
	assert.True(t, m.showHelp)
	assert.Contains(t, m.View(), "/attach <path>")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	assert.False(t, m.showHelp)
}

// =============================================================================
// KEYS AND LAYOUT
// =============================================================================

func TestQuitKeysCloseSession(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyCtrlD} {
		m := newTestModel(t, &fakeService{})
		next, cmd := m.Update(tea.KeyMsg{Type: k})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Equal(t, session.StateClosed, next.(Model).Controller().State())
	}
}

func TestQuitCommand(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	_, cmd := typeAndEnter(m, "/quit")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestExtractedPanelEscapesNeverReachView(t *testing.T) {
	svc := &fakeService{resp: &api.ChatResponse{
		Response:         strPtr("ok"),
		ExtractedContent: strPtr("\x1b]52;c;cHduZWQ=\x07"),
	}}
	m := newTestModel(t, svc)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	m = next.(Model)
	require.True(t, m.Expanded())

	m, cmd := typeAndEnter(m, "read this")
	m = deliver(t, m, cmd)

	entries := m.Entries()
	require.True(t, entries[len(entries)-1].HasPanel())
	view := m.View()
	assert.NotContains(t, view, "\x1b]52")
	assert.NotContains(t, view, "\x07")
	assert.Contains(t, view, "View Extracted Content")
}

func TestTogglePanels(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	require.False(t, m.Expanded())
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	m = next.(Model)
	assert.True(t, m.Expanded())
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	assert.False(t, next.(Model).Expanded())
}

func TestResizeLayout(t *testing.T) {
	m := newTestModel(t, &fakeService{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(Model)
	assert.Equal(t, 60, m.viewport.Width)
	assert.Equal(t, 15, m.viewport.Height)

	next, _ = m.Update(AttachmentLoadedMsg{Attachment: model.NewAttachment("a.txt", nil)})
	m = next.(Model)
	assert.Equal(t, 14, m.viewport.Height)
}

func TestConfigReload(t *testing.T) {
	m := newTestModel(t, &fakeService{})

	next, _ := m.Update(ConfigReloadedMsg{Err: errors.New("bad toml")})
	m = next.(Model)
	assert.Equal(t, "config reload failed: bad toml", m.Notice())

	cfg := config.Default()
	cfg.UI.ExpandPanels = true
	next, _ = m.Update(ConfigReloadedMsg{Config: cfg})
	m = next.(Model)
	assert.True(t, m.Expanded())
	assert.Equal(t, "config reloaded", m.Notice())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes.txt"), ExpandPath("~/notes.txt"))
	assert.Equal(t, "/abs/x", ExpandPath("/abs/x"))
	assert.Equal(t, "rel", ExpandPath("rel"))
}

func TestViewBeforeResize(t *testing.T) {
	m := New(styles.NewThemeWithProfile(termenv.Ascii, true), Options{})
	m.width = 0
	assert.Equal(t, "Loading...", m.View())
	assert.True(t, strings.HasPrefix(m.input.Prompt, ">"))
}
