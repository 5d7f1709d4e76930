// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/jeranaias/agentchat/internal/util"
)

// maxFilenameRunes bounds stored file names.
const maxFilenameRunes = 200

// storedFile is an upload written to disk.
type storedFile struct {
	Name string
	Path string
}

// storeUpload writes fh to <dir>/<uuid>/<sanitized name> and returns the
// absolute path. Each upload gets its own directory so names never collide.
func storeUpload(dir string, fh *multipart.FileHeader) (*storedFile, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upload directory: %w", err)
	}
	name := SanitizeFilename(fh.Filename)
	target := filepath.Join(root, uuid.NewString())
	if err := os.MkdirAll(target, 0700); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	path := filepath.Join(target, name)

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}
	return &storedFile{Name: name, Path: path}, nil
}

// SanitizeFilename reduces a client-supplied name to a safe base name.
// It normalizes to NFC, drops any directory part, and replaces control and
// reserved characters with "_".
func SanitizeFilename(name string) string {
	name = norm.NFC.String(name)
	name = strings.ReplaceAll(name, `\`, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(`<>:"|?*`, r) {
			return '_'
		}
		return r
	}, name)
	name = strings.Trim(name, " .")

	if name == "" {
		return "upload"
	}
	return util.TruncateRunes(name, maxFilenameRunes, "")
}
