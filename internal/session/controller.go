// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/agentchat/internal/api"
	"github.com/jeranaias/agentchat/internal/model"
	"github.com/jeranaias/agentchat/internal/render"
)

// =============================================================================
// ERRORS AND STATE
// =============================================================================

var (
	// ErrEmpty is returned when there is neither text nor an attachment.
	ErrEmpty = errors.New("nothing to send")
	// ErrBusy is returned while a previous submission is outstanding.
	ErrBusy = errors.New("a reply is still pending")
	// ErrClosed is returned after Close.
	ErrClosed = errors.New("session closed")
)

// ExtractedPanelTitle is the summary line of the extracted-content panel.
const ExtractedPanelTitle = "View Extracted Content"

// State is the controller's position in the submission lifecycle.
type State int

const (
	StateIdle State = iota
	StateSending
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSending:
		return "sending"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// =============================================================================
// SUBMISSION TYPES
// =============================================================================

// Submission is a send that has been echoed and is waiting on the network.
type Submission struct {
	ID            string
	PlaceholderID string
	Text          string
	Attachment    *model.Attachment
	StartedAt     time.Time
}

// Outcome is the result of Exchange.
type Outcome struct {
	Submission *Submission
	FilePath   *string
	Response   *api.ChatResponse
	Err        error
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the pending attachment and drives one submission at a time.
//
// Controller is not safe for concurrent use. Begin, Finish, SelectAttachment
// and ClearAttachment must be called from the surface's goroutine; Exchange
// may run anywhere.
type Controller struct {
	service  ChatService
	surface  Surface
	renderer render.Renderer
	logger   *log.Logger
	newID    func() string

	pending  *model.Attachment
	state    State
	inflight *Submission
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithIDGenerator replaces the uuid-based id generator (tests).
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// New creates a controller for one session.
func New(service ChatService, surface Surface, renderer render.Renderer, opts ...Option) *Controller {
	c := &Controller{
		service:  service,
		surface:  surface,
		renderer: renderer,
		newID:    uuid.NewString,
		state:    StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Busy reports whether a submission is outstanding.
func (c *Controller) Busy() bool {
	return c.state == StateSending
}

// Pending returns the attachment that will go with the next submission.
func (c *Controller) Pending() *model.Attachment {
	return c.pending
}

// SelectAttachment queues att for the next submission, replacing any
// previous one. Allowed while a submission is in flight.
func (c *Controller) SelectAttachment(att *model.Attachment) {
	if c.state == StateClosed || att == nil {
		return
	}
	c.pending = att
	c.surface.SetAttachment(att.Name)
	c.logf("ATTACHMENT_SELECTED | name=%s bytes=%d", att.Name, att.Size())
}

// ClearAttachment drops the pending attachment and hides the indicator.
func (c *Controller) ClearAttachment() {
	if c.pending == nil {
		return
	}
	c.pending = nil
	c.surface.SetAttachment("")
}

// Close ends the session. Later calls to Begin return ErrClosed.
func (c *Controller) Close() {
	c.pending = nil
	c.inflight = nil
	c.state = StateClosed
}

// ComposeDisplay builds the user entry text for a submission.
func ComposeDisplay(text string, att *model.Attachment) string {
	if att == nil {
		return text
	}
	marker := "[Attached: " + att.Name + "]"
	if text == "" {
		return marker
	}
	return text + "\n" + marker
}

// Begin validates and echoes a submission: it appends the user entry,
// clears the input and the pending attachment, and shows the placeholder.
func (c *Controller) Begin(text string) (*Submission, error) {
	switch c.state {
	case StateClosed:
		return nil, ErrClosed
	case StateSending:
		return nil, ErrBusy
	}

	text = strings.TrimSpace(text)
	if text == "" && c.pending == nil {
		return nil, ErrEmpty
	}

	att := c.pending
	sub := &Submission{
		ID:            c.newID(),
		PlaceholderID: "loading-" + c.newID(),
		Text:          text,
		Attachment:    att,
		StartedAt:     time.Now(),
	}

	display := ComposeDisplay(text, att)
	c.append(model.Entry{
		ID:     sub.ID,
		Role:   model.RoleUser,
		Text:   display,
		Body:   c.renderer.Literal(display),
		Format: model.FormatLiteral,
	})

	c.surface.ClearInput()
	if att != nil {
		c.pending = nil
		c.surface.SetAttachment("")
	}

	c.append(model.Entry{
		ID:          sub.PlaceholderID,
		Role:        model.RoleBot,
		Text:        model.PlaceholderText,
		Body:        c.renderer.Literal(model.PlaceholderText),
		Format:      model.FormatLiteral,
		Placeholder: true,
	})

	c.state = StateSending
	c.inflight = sub
	c.logf("SUBMIT_BEGIN | id=%s chars=%d attachment=%t", sub.ID, len(text), att != nil)
	return sub, nil
}

// Exchange performs the upload (when the submission has an attachment) and
// then the chat call. It never touches the surface.
func (c *Controller) Exchange(ctx context.Context, sub *Submission) Outcome {
	out := Outcome{Submission: sub}
	if sub == nil {
		out.Err = errors.New("no submission")
		return out
	}
	if c.service == nil {
		out.Err = errors.New("no chat service configured")
		return out
	}

	if sub.Attachment != nil {
		up, err := c.service.Upload(ctx, sub.Attachment)
		if err != nil {
			out.Err = err
			return out
		}
		path := up.FilePath
		out.FilePath = &path
	}

	resp, err := c.service.Chat(ctx, api.ChatRequest{
		Message:  sub.Text,
		FilePath: out.FilePath,
	})
	if err != nil {
		out.Err = err
		return out
	}
	out.Response = resp
	return out
}

// Finish removes the placeholder and appends the reply or the error.
func (c *Controller) Finish(out Outcome) {
	sub := out.Submission
	if sub == nil || c.state == StateClosed {
		return
	}
	if c.inflight != nil && c.inflight.ID == sub.ID {
		c.inflight = nil
		c.state = StateIdle
	}

	c.surface.Remove(sub.PlaceholderID)

	if out.Err != nil {
		msg := "Error: " + out.Err.Error()
		c.append(model.Entry{
			ID:      c.newID(),
			Role:    model.RoleBot,
			Text:    msg,
			Body:    c.renderer.Literal(msg),
			Format:  model.FormatLiteral,
			IsError: true,
		})
		c.logf("SUBMIT_FAILED | id=%s duration=%.3fs error=%v", sub.ID, time.Since(sub.StartedAt).Seconds(), out.Err)
		return
	}

	reply, ok := out.Response.Reply()
	if !ok {
		c.logf("SUBMIT_DONE | id=%s duration=%.3fs reply=none", sub.ID, time.Since(sub.StartedAt).Seconds())
		return
	}

	entry := model.Entry{
		ID:     c.newID(),
		Role:   model.RoleBot,
		Text:   reply,
		Format: model.FormatMarkdown,
	}
	body, rendered := render.MarkdownOrLiteral(c.renderer, reply)
	entry.Body = body
	if !rendered {
		entry.Format = model.FormatLiteral
	}
	if extracted, ok := out.Response.Extracted(); ok {
		entry.Extracted = &model.Panel{
			Title: ExtractedPanelTitle,
			Text:  extracted,
			Body:  c.renderer.Literal(extracted),
		}
	}
	c.append(entry)
	c.logf("SUBMIT_DONE | id=%s duration=%.3fs reply_chars=%d extracted=%t",
		sub.ID, time.Since(sub.StartedAt).Seconds(), len(reply), entry.Extracted != nil)
}

// Submit runs Begin, Exchange and Finish in order. It returns ErrEmpty,
// ErrBusy or ErrClosed without side effects, and the failure reason when the
// submission ended in an error entry.
func (c *Controller) Submit(ctx context.Context, text string) error {
	sub, err := c.Begin(text)
	if err != nil {
		return err
	}
	out := c.Exchange(ctx, sub)
	c.Finish(out)
	return out.Err
}

func (c *Controller) append(e model.Entry) {
	c.surface.Append(e)
	c.surface.ScrollToEnd()
}

func (c *Controller) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}
