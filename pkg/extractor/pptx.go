// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// slidePathPrefix matches the per-slide XML parts inside a .pptx archive
// (Office Open XML: ppt/slides/slide1.xml, slide2.xml, ...).
const slidePathPrefix = "ppt/slides/slide"

// extractPPTX extracts the text runs of every slide in a PPTX file, in slide
// order, each slide prefixed with its number.
func extractPPTX(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("parse PPTX: %w", err)
	}

	type slide struct {
		number int
		file   *zip.File
	}
	var slides []slide
	for _, f := range zr.File {
		n, ok := slideNumber(f.Name)
		if !ok {
			continue
		}
		slides = append(slides, slide{number: n, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].number < slides[j].number })

	var parts []string
	for _, s := range slides {
		text, err := slideText(s.file)
		if err != nil {
			continue
		}
		if text == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("[Slide %d] %s", s.number, text))
	}

	return strings.Join(parts, "\n"), nil
}

// slideNumber parses the slide index out of a part name like
// "ppt/slides/slide12.xml".
func slideNumber(name string) (int, bool) {
	if !strings.HasPrefix(name, slidePathPrefix) || !strings.HasSuffix(name, ".xml") {
		return 0, false
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(name, slidePathPrefix), ".xml")
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// slideText collects the DrawingML text runs (<a:t> elements) of one slide.
func slideText(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	dec := xml.NewDecoder(rc)
	var sb strings.Builder
	inTextRun := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inTextRun = true
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inTextRun = false
			}
		case xml.CharData:
			if inTextRun {
				if sb.Len() > 0 {
					sb.WriteString(" ")
				}
				sb.Write(t)
			}
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
