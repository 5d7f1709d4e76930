// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the chat session controller.
//
// A Controller mediates between input events (send, file selection), the
// two-call HTTP exchange (optional upload, then chat) and a rendering Surface.
// One Controller is built per session and torn down with Close.
//
// # Lifecycle
//
// A submission moves idle -> sending -> idle. It is split into three phases so
// an event loop can keep its UI goroutine free while the network runs:
//
//	sub, err := ctrl.Begin(text)            // UI goroutine: echo, placeholder
//	out := ctrl.Exchange(ctx, sub)          // any goroutine: upload, chat
//	ctrl.Finish(out)                        // UI goroutine: reply or error
//
// Submit runs all three in order for synchronous callers.
//
// While a submission is outstanding Begin returns ErrBusy and leaves the
// input untouched, so at most one placeholder is ever on the surface.
package session
