// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ErrorKind categorizes client errors.
type ErrorKind int

const (
	// ErrKindTransport covers unreachable servers and broken connections.
	ErrKindTransport ErrorKind = iota
	// ErrKindStatus covers non-2xx responses.
	ErrKindStatus
	// ErrKindDecode covers bodies that are not the expected JSON.
	ErrKindDecode
	// ErrKindInvalid covers well-formed JSON missing required fields.
	ErrKindInvalid
)

// String returns a short name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrKindTransport:
		return "transport"
	case ErrKindStatus:
		return "status"
	case ErrKindDecode:
		return "decode"
	case ErrKindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Error is returned by every Client method.
type Error struct {
	Kind       ErrorKind
	Op         string // "upload" or "chat"
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// statusError builds an ErrKindStatus error, pulling a detail message out of
// the body when the server sent one.
func statusError(op string, code int, status string, body []byte) *Error {
	msg := "server returned " + status
	if detail := extractDetail(body); detail != "" {
		msg += ": " + detail
	}
	return &Error{Kind: ErrKindStatus, Op: op, StatusCode: code, Message: msg}
}

// extractDetail returns the "detail" or "error" field of a JSON error body.
func extractDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	for _, v := range []any{eb.Detail, eb.Error} {
		switch val := v.(type) {
		case string:
			if s := strings.TrimSpace(val); s != "" {
				return s
			}
		case map[string]any:
			if m, ok := val["message"].(string); ok && m != "" {
				return m
			}
		case nil:
		default:
			return fmt.Sprint(val)
		}
	}
	return ""
}
