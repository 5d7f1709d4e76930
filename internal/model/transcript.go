// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is the append-only list of entries shown in a session.
// Only placeholder entries may be removed.
//
// Transcript is not safe for concurrent use; it belongs to the UI goroutine.
type Transcript struct {
	entries []*Entry
}

// NewTranscript creates an empty transcript.
func NewTranscript() *Transcript {
	return &Transcript{entries: make([]*Entry, 0)}
}

// Append adds an entry to the end of the transcript.
func (t *Transcript) Append(e Entry) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	t.entries = append(t.entries, &e)
}

// Remove deletes the placeholder entry with the given id.
// Non-placeholder entries are never removed.
func (t *Transcript) Remove(id string) bool {
	for i, e := range t.entries {
		if e.ID != id {
			continue
		}
		if !e.Placeholder {
			return false
		}
		t.entries = append(t.entries[:i], t.entries[i+1:]...)
		return true
	}
	return false
}

// Entries returns the current entries in order.
// Callers may replace an entry's Body when re-rendering; other fields
// must not be modified.
func (t *Transcript) Entries() []*Entry {
	return t.entries
}

// Settled returns the entries that are not placeholders.
func (t *Transcript) Settled() []*Entry {
	out := make([]*Entry, 0, len(t.entries))
	for _, e := range t.entries {
		if !e.Placeholder {
			out = append(out, e)
		}
	}
	return out
}

// Last returns the most recent entry, or nil if empty.
func (t *Transcript) Last() *Entry {
	if len(t.entries) == 0 {
		return nil
	}
	return t.entries[len(t.entries)-1]
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// Placeholders returns how many placeholder entries are outstanding.
func (t *Transcript) Placeholders() int {
	n := 0
	for _, e := range t.entries {
		if e.Placeholder {
			n++
		}
	}
	return n
}
