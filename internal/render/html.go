// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"bytes"
	"html"
	"io"
	"regexp"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// =============================================================================
// HTML RENDERER
// =============================================================================

// DefaultCodeStyle is the chroma style used for highlighted code.
const DefaultCodeStyle = "monokai"

// chromaClass matches the class names chroma emits with WithClasses.
var chromaClass = regexp.MustCompile(`^[a-zA-Z0-9 _-]+$`)

// HTML renders markdown to sanitized HTML fragments.
// Raw HTML in markdown source is dropped by goldmark and anything left is
// passed through a bluemonday UGC policy.
type HTML struct {
	md        goldmark.Markdown
	policy    *bluemonday.Policy
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewHTML creates an HTML renderer using the named chroma style for code.
func NewHTML(codeStyle string) *HTML {
	style := chromaStyles.Get(codeStyle)
	if style == nil {
		style = chromaStyles.Fallback
	}
	formatter := chromahtml.New(chromahtml.WithClasses(true))

	h := &HTML{
		style:     style,
		formatter: formatter,
	}

	h.md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(&codeRenderer{html: h}, 200)),
		),
	)

	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(chromaClass).OnElements("span", "pre", "code", "div")
	h.policy = p

	return h
}

// Markdown renders src as sanitized HTML.
func (h *HTML) Markdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := h.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return h.policy.Sanitize(buf.String()), nil
}

// Literal escapes src for inclusion as HTML text.
func (h *HTML) Literal(src string) string {
	return html.EscapeString(src)
}

// WriteCSS writes the stylesheet for highlighted code blocks.
func (h *HTML) WriteCSS(w io.Writer) error {
	return h.formatter.WriteCSS(w, h.style)
}

// =============================================================================
// CODE BLOCK RENDERER
// =============================================================================

// codeRenderer replaces goldmark's fenced code output with chroma markup.
type codeRenderer struct {
	html *HTML
}

func (r *codeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCode)
}

func (r *codeRenderer) renderFencedCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		code.Write(seg.Value(source))
	}

	lexer := lexers.Get(string(n.Language(source)))
	if lexer == nil {
		lexer = lexers.Analyse(code.String())
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code.String())
	if err != nil {
		_, _ = w.WriteString("<pre><code>")
		_, _ = w.WriteString(html.EscapeString(code.String()))
		_, _ = w.WriteString("</code></pre>\n")
		return ast.WalkSkipChildren, nil
	}
	if err := r.html.formatter.Format(w, r.html.style, iterator); err != nil {
		return ast.WalkStop, err
	}
	return ast.WalkSkipChildren, nil
}
