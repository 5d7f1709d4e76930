// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

// Renderer turns raw text into a fragment that is safe to place on a surface.
type Renderer interface {
	// Markdown renders trusted-format reply text. Implementations must still
	// neutralize any markup the source smuggles in.
	Markdown(src string) (string, error)

	// Literal renders text verbatim. The result is never interpreted.
	Literal(src string) string
}

// MarkdownOrLiteral renders src as markdown, falling back to the literal path
// when the markdown renderer fails.
func MarkdownOrLiteral(r Renderer, src string) (string, bool) {
	out, err := r.Markdown(src)
	if err != nil {
		return r.Literal(src), false
	}
	return out, true
}
