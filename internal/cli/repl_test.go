// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/agentchat/internal/api"
	"github.com/jeranaias/agentchat/internal/config"
	"github.com/jeranaias/agentchat/internal/model"
	"github.com/jeranaias/agentchat/internal/session"
)

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

func newTestREPL(svc session.ChatService) (*repl, *bytes.Buffer) {
	var out bytes.Buffer
	surf := newLineSurface(&out, false)
	ctrl := session.New(svc, surf, plainRenderer{})
	return &repl{ctrl: ctrl, surf: surf, out: &out, cfg: config.Default()}, &out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// =============================================================================
// REPL
// =============================================================================

func TestREPL_SendPrintsPlaceholderThenReply(t *testing.T) {
	svc := &fakeService{resp: &api.ChatResponse{Response: strPtr("Hi **there**")}}
	r, out := newTestREPL(svc)

	quit := r.handleLine(context.Background(), "  hello  ")

	assert.False(t, quit)
	require.Len(t, svc.chats, 1)
	assert.Equal(t, "hello", svc.chats[0].Message)
	assert.Nil(t, svc.chats[0].FilePath)

	text := out.String()
	thinking := strings.Index(text, model.PlaceholderText)
	reply := strings.Index(text, "Hi **there**")
	require.GreaterOrEqual(t, thinking, 0)
	assert.Greater(t, reply, thinking)
	assert.Equal(t, 0, r.surf.transcript.Placeholders())
}

func TestREPL_FailureShowsError(t *testing.T) {
	svc := &fakeService{chatErr: errors.New("connection refused")}
	r, out := newTestREPL(svc)

	r.handleLine(context.Background(), "hello")

	assert.Contains(t, out.String(), "Error: connection refused")
	last := r.surf.transcript.Last()
	require.NotNil(t, last)
	assert.True(t, last.IsError)
	assert.Equal(t, 0, r.surf.transcript.Placeholders())
}

func TestREPL_AttachThenSend(t *testing.T) {
	path := writeFile(t, "notes.txt", "alpha beta")
	svc := &fakeService{resp: &api.ChatResponse{
		Response:         strPtr("A summary."),
		ExtractedContent: strPtr("alpha beta"),
	}}
	r, out := newTestREPL(svc)

	r.handleLine(context.Background(), "/attach "+path)
	assert.Contains(t, out.String(), "Attached: notes.txt")
	require.NotNil(t, r.ctrl.Pending())

	r.handleLine(context.Background(), "summarize")

	require.Len(t, svc.uploads, 1)
	assert.Equal(t, "notes.txt", svc.uploads[0].Name)
	require.NotNil(t, svc.chats[0].FilePath)
	assert.Equal(t, "/srv/uploads/notes.txt", *svc.chats[0].FilePath)
	assert.Nil(t, r.ctrl.Pending())
	assert.Contains(t, out.String(), session.ExtractedPanelTitle)
	assert.Contains(t, out.String(), "  alpha beta")
}

func TestREPL_Commands(t *testing.T) {
	svc := &fakeService{resp: &api.ChatResponse{Response: strPtr("ok")}}

	t.Run("attach missing file", func(t *testing.T) {
		r, out := newTestREPL(svc)
		r.handleLine(context.Background(), "/attach /definitely/not/here.txt")
		assert.Contains(t, out.String(), "attach failed")
		assert.Nil(t, r.ctrl.Pending())
	})

	t.Run("attach without path", func(t *testing.T) {
		r, out := newTestREPL(svc)
		r.handleLine(context.Background(), "/attach")
		assert.Contains(t, out.String(), "usage: /attach <path>")
	})

	t.Run("detach", func(t *testing.T) {
		r, out := newTestREPL(svc)
		r.handleLine(context.Background(), "/detach")
		assert.Contains(t, out.String(), "no attachment pending")

		r.handleLine(context.Background(), "/attach "+writeFile(t, "a.txt", "x"))
		r.handleLine(context.Background(), "/detach")
		assert.Contains(t, out.String(), "attachment cleared")
		assert.Nil(t, r.ctrl.Pending())
	})

	t.Run("export", func(t *testing.T) {
		r, out := newTestREPL(svc)
		r.handleLine(context.Background(), "hello")
		dest := filepath.Join(t.TempDir(), "chat.md")
		r.handleLine(context.Background(), "/export "+dest)

		assert.Contains(t, out.String(), "exported to")
		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello")
		assert.NotContains(t, string(data), model.PlaceholderText)
	})

	t.Run("help lists commands", func(t *testing.T) {
		r, out := newTestREPL(svc)
		r.handleLine(context.Background(), "/help")
		assert.Contains(t, out.String(), "/attach <path>")
		assert.Contains(t, out.String(), "/export <path>")
	})

	t.Run("unknown", func(t *testing.T) {
		r, out := newTestREPL(svc)
		r.handleLine(context.Background(), "/frob")
		assert.Contains(t, out.String(), "unknown command: /frob")
	})

	t.Run("quit", func(t *testing.T) {
		r, _ := newTestREPL(svc)
		assert.True(t, r.handleLine(context.Background(), "/quit"))
		assert.True(t, r.handleLine(context.Background(), "/exit"))
	})

	t.Run("double slash sends text", func(t *testing.T) {
		s := &fakeService{resp: &api.ChatResponse{Response: strPtr("ok")}}
		r, _ := newTestREPL(s)
		r.handleLine(context.Background(), "//etc/hosts is a file")
		require.Len(t, s.chats, 1)
		assert.Equal(t, "/etc/hosts is a file", s.chats[0].Message)
	})

	t.Run("empty line is ignored", func(t *testing.T) {
		s := &fakeService{}
		r, out := newTestREPL(s)
		r.handleLine(context.Background(), "   ")
		assert.Empty(t, s.chats)
		assert.Empty(t, out.String())
	})
}

// =============================================================================
// LINE SURFACE
// =============================================================================

func TestLineSurface_TTYErasesPlaceholder(t *testing.T) {
	var out bytes.Buffer
	surf := newLineSurface(&out, true)

	surf.Append(model.Entry{ID: "loading-1", Role: model.RoleBot, Body: model.PlaceholderText, Placeholder: true})
	assert.NotContains(t, out.String(), "\n")

	assert.True(t, surf.Remove("loading-1"))
	assert.True(t, strings.HasSuffix(out.String(), eraseLine))
	assert.False(t, surf.Remove("loading-1"))
}

func TestLineSurface_LiteralUserEcho(t *testing.T) {
	var out bytes.Buffer
	surf := newLineSurface(&out, false)
	surf.echoUser = true

	surf.Append(model.Entry{ID: "u1", Role: model.RoleUser, Body: "<b>not bold</b> **nor this**"})

	assert.Contains(t, out.String(), "<b>not bold</b> **nor this**")
}

// =============================================================================
// ASK
// =============================================================================

func TestRunAsk_Text(t *testing.T) {
	svc := &fakeService{resp: &api.ChatResponse{Response: strPtr("Paris.")}}
	var out bytes.Buffer

	err := runAsk(context.Background(), svc, Args{Query: "capital of France?"}, &out, false, plainRenderer{})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "capital of France?")
	assert.Contains(t, out.String(), "Paris.")
}

func TestRunAsk_QuietPrintsOnlyReply(t *testing.T) {
	svc := &fakeService{resp: &api.ChatResponse{Response: strPtr("Paris.")}}
	var out bytes.Buffer

	err := runAsk(context.Background(), svc, Args{Query: "capital?", Quiet: true}, &out, false, plainRenderer{})

	require.NoError(t, err)
	assert.Equal(t, "Paris.\n", out.String())
}

func TestRunAsk_JSON(t *testing.T) {
	svc := &fakeService{resp: &api.ChatResponse{Response: strPtr("Paris."), Action: "chat"}}
	var out bytes.Buffer

	err := runAsk(context.Background(), svc, Args{Query: "capital?", JSON: true}, &out, false, plainRenderer{})
	require.NoError(t, err)

	var got api.ChatResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.NotNil(t, got.Response)
	assert.Equal(t, "Paris.", *got.Response)
	assert.Equal(t, "chat", got.Action)
}

func TestRunAsk_FailureIsReported(t *testing.T) {
	svc := &fakeService{chatErr: errors.New("connection refused")}
	var out bytes.Buffer

	err := runAsk(context.Background(), svc, Args{Query: "hi", JSON: true}, &out, false, plainRenderer{})

	require.Error(t, err)
	assert.True(t, Reported(err))
	assert.Equal(t, ExitGeneralError, ExitCode(err))
	assert.Contains(t, out.String(), `"error": "connection refused"`)
}

func TestRunAsk_FileOnly(t *testing.T) {
	path := writeFile(t, "report.md", "# Report")
	svc := &fakeService{resp: &api.ChatResponse{Response: strPtr("A report.")}}
	var out bytes.Buffer

	err := runAsk(context.Background(), svc, Args{File: path}, &out, false, plainRenderer{})

	require.NoError(t, err)
	require.Len(t, svc.uploads, 1)
	assert.Equal(t, "report.md", svc.uploads[0].Name)
	assert.Equal(t, "", svc.chats[0].Message)
}

func TestRunAsk_MissingFile(t *testing.T) {
	err := runAsk(context.Background(), &fakeService{}, Args{File: "/no/such/file.txt"}, &bytes.Buffer{}, false, plainRenderer{})
	assert.Equal(t, ExitUsageError, ExitCode(err))
}
