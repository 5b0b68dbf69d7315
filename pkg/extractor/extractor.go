// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

// Package extractor converts uploaded document bytes into plain text for
// chunking. Empty extraction output is not an error; it simply produces
// zero chunks downstream.
package extractor

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for file extensions the extractor does
// not handle. Callers report it per file and continue with the rest of the
// batch.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ExtractText extracts plain text from file content based on the file
// extension. A readable file with no text content returns an empty string
// and no error.
func ExtractText(content []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return extractPDF(content)
	case ".pptx":
		return extractPPTX(content)
	case ".html", ".htm":
		return extractHTML(content)
	case ".txt", ".md", ".text":
		return extractText(content)
	default:
		return "", ErrUnsupportedFormat
	}
}
