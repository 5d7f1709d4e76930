// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package agent

import (
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jeranaias/agentchat/internal/util"
)

// =============================================================================
// CONTENT EXTRACTION
// =============================================================================

// DefaultMaxChars caps extracted text when no limit is configured.
const DefaultMaxChars = 20000

// truncatedMarker is appended to text cut at the limit.
const truncatedMarker = "\n[... truncated]"

// ErrOutsideRoot is returned for file paths outside the upload directory.
var ErrOutsideRoot = errors.New("file is outside the upload directory")

var textExtensions = map[string]bool{
	".txt": true, ".md": true, ".markdown": true, ".rst": true, ".log": true,
	".csv": true, ".tsv": true, ".json": true, ".xml": true, ".yaml": true,
	".yml": true, ".toml": true, ".ini": true, ".cfg": true, ".conf": true,
	".go": true, ".py": true, ".js": true, ".ts": true, ".jsx": true,
	".tsx": true, ".java": true, ".c": true, ".h": true, ".cpp": true,
	".hpp": true, ".cs": true, ".rb": true, ".rs": true, ".php": true,
	".sh": true, ".bash": true, ".sql": true, ".swift": true, ".kt": true,
	".css": true, ".scss": true,
}

var htmlExtensions = map[string]bool{".html": true, ".htm": true}

// binaryKinds names formats that need OCR or transcription.
var binaryKinds = map[string]string{
	".jpg": "image", ".jpeg": "image", ".png": "image", ".gif": "image", ".webp": "image",
	".mp3": "audio", ".wav": "audio", ".m4a": "audio", ".ogg": "audio",
	".mp4": "video", ".mov": "video",
	".docx": "Word document", ".xlsx": "spreadsheet", ".pptx": "presentation",
}

var youtubeLink = regexp.MustCompile(`https?://(?:www\.|m\.)?(?:youtube\.com/\S+|youtu\.be/\S+)`)

// Extractor turns an uploaded file or a message link into text for the model.
type Extractor struct {
	// MaxChars truncates extracted text. Zero uses DefaultMaxChars.
	MaxChars int

	// Root, when set, is the only directory files may be read from.
	Root string
}

// Extract returns the text for a turn. A file path takes precedence over a
// link in the message; neither yields "".
func (x *Extractor) Extract(path, message string) (string, error) {
	if path != "" {
		return x.extractFile(path)
	}
	if link := youtubeLink.FindString(message); link != "" {
		return fmt.Sprintf("[YouTube link: %s. Transcripts are not fetched; answer from the message alone.]", link), nil
	}
	if strings.Contains(message, "youtube.com") || strings.Contains(message, "youtu.be") {
		return "[YouTube link detected. Transcripts are not fetched; answer from the message alone.]", nil
	}
	return "", nil
}

func (x *Extractor) maxChars() int {
	if x.MaxChars > 0 {
		return x.MaxChars
	}
	return DefaultMaxChars
}

func (x *Extractor) extractFile(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve file path: %w", err)
	}
	if err := x.checkRoot(abs); err != nil {
		return "", err
	}

	f, err := os.Open(abs)
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	name := filepath.Base(abs)
	ext := strings.ToLower(filepath.Ext(name))
	if kind, ok := binaryKinds[ext]; ok {
		return unsupported(kind, name), nil
	}
	if ext == ".pdf" {
		return x.extractPDF(f), nil
	}

	// Four bytes per rune is the UTF-8 worst case.
	limit := int64(x.maxChars())*4 + 4
	raw, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	switch {
	case htmlExtensions[ext]:
		text := html.UnescapeString(bluemonday.StrictPolicy().Sanitize(decodeText(raw)))
		return x.finish(collapseBlankLines(text)), nil
	case textExtensions[ext], isTextContent(raw):
		return x.finish(decodeText(raw)), nil
	}
	return unsupported("binary file", name), nil
}

// extractPDF returns the document's plain text. Failures become a notice in
// the extracted text so the turn still reaches the model.
func (x *Extractor) extractPDF(f *os.File) (text string) {
	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = fmt.Sprintf("[Error extracting PDF: %v]", r)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return fmt.Sprintf("[Error extracting PDF: %v]", err)
	}
	rdr, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return fmt.Sprintf("[Error extracting PDF: %v]", err)
	}
	plain, err := rdr.GetPlainText()
	if err != nil {
		return fmt.Sprintf("[Error extracting PDF: %v]", err)
	}
	limit := int64(x.maxChars())*4 + 4
	raw, err := io.ReadAll(io.LimitReader(plain, limit))
	if err != nil {
		return fmt.Sprintf("[Error extracting PDF: %v]", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return "[PDF yielded no text]"
	}
	return x.finish(strings.ToValidUTF8(string(raw), "�"))
}

func (x *Extractor) checkRoot(abs string) error {
	if x.Root == "" {
		return nil
	}
	root, err := filepath.Abs(x.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve upload directory: %w", err)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ErrOutsideRoot
	}
	return nil
}

func (x *Extractor) finish(text string) string {
	text = strings.TrimSpace(text)
	return util.TruncateRunes(text, x.maxChars(), truncatedMarker)
}

func unsupported(kind, name string) string {
	return fmt.Sprintf("[unsupported %s: %s. Text extraction for this format is not available.]", kind, name)
}

func isTextContent(raw []byte) bool {
	ct := http.DetectContentType(raw)
	return strings.HasPrefix(ct, "text/") || strings.HasPrefix(ct, "application/json")
}

// decodeText honors a UTF-16 or UTF-8 byte order mark and replaces invalid
// sequences.
func decodeText(raw []byte) string {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, raw)
	if err != nil {
		out = raw
	}
	return strings.ToValidUTF8(string(out), "�")
}

var blankRun = regexp.MustCompile(`\n[ \t]*(?:\n[ \t]*){2,}`)

func collapseBlankLines(s string) string {
	return blankRun.ReplaceAllString(s, "\n\n")
}
