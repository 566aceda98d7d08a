package io

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// PageSource is a finished render: a pipeline result or a stored render.
type PageSource interface {
	PageCount() int
	Artifact(n int, format string) ([]byte, error)
}

// Slug keeps letters, digits and '-' from title and collapses every other
// run into a single '_'. An empty result becomes "chart".
func Slug(title string) string {
	var b strings.Builder
	pending := false
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	if b.Len() == 0 {
		return "chart"
	}
	return b.String()
}

// PageFileName returns movers_{slug}_p{page}.{ext} for a 1-based page.
func PageFileName(titleMain string, page int, ext string) string {
	return fmt.Sprintf("movers_%s_p%d.%s", Slug(titleMain), page, ext)
}

// ArchiveName returns the file name for a zip of every page.
func ArchiveName(titleMain string) string {
	return fmt.Sprintf("movers_%s_all.zip", Slug(titleMain))
}

// WriteArchive writes a zip holding one folder per format with one file
// per page. Formats src did not render are skipped.
func WriteArchive(w io.Writer, titleMain string, formats []string, src PageSource) error {
	zw := zip.NewWriter(w)
	for _, format := range formats {
		for n := 1; n <= src.PageCount(); n++ {
			data, err := src.Artifact(n, format)
			if err != nil {
				continue
			}
			fw, err := zw.Create(format + "/" + PageFileName(titleMain, n, format))
			if err != nil {
				return fmt.Errorf("add page %d %s: %w", n, format, err)
			}
			if _, err := fw.Write(data); err != nil {
				return fmt.Errorf("write page %d %s: %w", n, format, err)
			}
		}
	}
	return zw.Close()
}

// ExportPages writes every page and format into dir and returns the paths.
func ExportPages(dir, titleMain string, formats []string, src PageSource) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	var paths []string
	for n := 1; n <= src.PageCount(); n++ {
		for _, format := range formats {
			data, err := src.Artifact(n, format)
			if err != nil {
				continue
			}
			path := filepath.Join(dir, PageFileName(titleMain, n, format))
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return paths, fmt.Errorf("write %s: %w", path, err)
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// ExportArchive writes the zip to path.
func ExportArchive(path, titleMain string, formats []string, src PageSource) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteArchive(f, titleMain, formats, src); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
