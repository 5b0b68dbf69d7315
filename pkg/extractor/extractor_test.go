// Copyright Jarvis Authors
// SPDX-License-Identifier: Apache-2.0

package extractor

import (
	"archive/zip"
	"bytes"
	"errors"
	"sort"
	"strconv"
	"strings"
	"testing"
)

func TestExtractText_UnsupportedFormat(t *testing.T) {
	for _, name := range []string{"image.png", "archive.tar.gz", "noext"} {
		_, err := ExtractText([]byte("data"), name)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("ExtractText(%q): expected ErrUnsupportedFormat, got %v", name, err)
		}
	}
}

func TestExtractText_PlainText(t *testing.T) {
	for _, name := range []string{"notes.txt", "readme.md", "NOTES.TXT"} {
		got, err := ExtractText([]byte("hello world"), name)
		if err != nil {
			t.Fatalf("ExtractText(%q): %v", name, err)
		}
		if got != "hello world" {
			t.Errorf("ExtractText(%q) = %q", name, got)
		}
	}
}

func TestExtractText_HTML(t *testing.T) {
	page := `<html><head><style>p{color:red}</style><script>alert(1)</script></head>
<body><h1>Title</h1><p>Body text.</p></body></html>`
	got, err := ExtractText([]byte(page), "page.html")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if !strings.Contains(got, "Title") || !strings.Contains(got, "Body text.") {
		t.Errorf("missing visible text: %q", got)
	}
	if strings.Contains(got, "alert") || strings.Contains(got, "color:red") {
		t.Errorf("script/style leaked into text: %q", got)
	}
}

func TestExtractText_CorruptPDF(t *testing.T) {
	if _, err := ExtractText([]byte("not a pdf at all"), "broken.pdf"); err == nil {
		t.Error("expected parse error for corrupt PDF")
	}
}

// buildPPTX assembles a minimal Office Open XML presentation archive with
// the given slide texts, deliberately written out of order to check sorting.
func buildPPTX(t *testing.T, slides map[int]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	// descending numeric order to make sure extraction sorts by slide number
	var names []int
	for n := range slides {
		names = append(names, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(names)))
	for _, n := range names {
		w, err := zw.Create("ppt/slides/slide" + strconv.Itoa(n) + ".xml")
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		xml := `<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">` +
			`<a:t>` + slides[n] + `</a:t></p:sld>`
		if _, err := w.Write([]byte(xml)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func TestExtractText_PPTX(t *testing.T) {
	content := buildPPTX(t, map[int]string{
		1: "Intro slide",
		2: "Second slide",
		3: "Closing slide",
	})

	got, err := ExtractText(content, "deck.pptx")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}

	want := "[Slide 1] Intro slide\n[Slide 2] Second slide\n[Slide 3] Closing slide"
	if got != want {
		t.Errorf("PPTX extraction:\n got %q\nwant %q", got, want)
	}
}

func TestExtractText_CorruptPPTX(t *testing.T) {
	if _, err := ExtractText([]byte("not a zip"), "deck.pptx"); err == nil {
		t.Error("expected parse error for corrupt PPTX")
	}
}

func TestExtractText_EmptyPPTX(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}

	got, err := ExtractText(buf.Bytes(), "empty.pptx")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty extraction, got %q", got)
	}
}
