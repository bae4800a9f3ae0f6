package parser

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var (
	sldIDListRe    = regexp.MustCompile(`(?s)<(\w+:)?sldIdLst\b[^>]*/>|<(\w+:)?sldIdLst\b[^>]*>.*?</(\w+:)?sldIdLst>`)
	relationshipRe = regexp.MustCompile(`(?s)<Relationship\b[^>]*?/>`)
	overrideRe     = regexp.MustCompile(`(?s)<Override\b[^>]*?/>`)
	slideRelTypeRe = regexp.MustCompile(`Type="[^"]*/(slide|notesSlide)"`)
	slidePartRe    = regexp.MustCompile(`PartName="/ppt/(slides|notesSlides)/`)
)

// isSlidePart reports whether an archive entry belongs to a slide or its
// notes page.
func isSlidePart(name string) bool {
	return strings.HasPrefix(name, "ppt/slides/") || strings.HasPrefix(name, "ppt/notesSlides/")
}

// StripSlides copies the pptx at src to dst without its slides. Masters,
// layouts, themes and media stay, so new slides still pick up the
// template's look.
func StripSlides(src, dst string) (removed int, err error) {
	r, err := zip.OpenReader(src)
	if err != nil {
		return 0, fmt.Errorf("open template: %w", err)
	}
	defer r.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	zw := zip.NewWriter(out)
	for _, f := range r.File {
		if isSlidePart(f.Name) {
			if strings.HasSuffix(f.Name, ".xml") && strings.HasPrefix(f.Name, "ppt/slides/slide") {
				removed++
			}
			continue
		}

		data, err := readEntry(f)
		if err != nil {
			return 0, fmt.Errorf("read %s: %w", f.Name, err)
		}

		switch f.Name {
		case "ppt/presentation.xml":
			data = sldIDListRe.ReplaceAll(data, nil)
		case "ppt/_rels/presentation.xml.rels":
			data = dropElements(data, relationshipRe, slideRelTypeRe)
		case "[Content_Types].xml":
			data = dropElements(data, overrideRe, slidePartRe)
		}

		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: f.Method, Modified: f.Modified})
		if err != nil {
			return 0, err
		}
		if _, err := w.Write(data); err != nil {
			return 0, err
		}
	}
	if err := zw.Close(); err != nil {
		return 0, err
	}
	return removed, nil
}

// dropElements removes every element matched by elem whose text matches sel.
func dropElements(data []byte, elem, sel *regexp.Regexp) []byte {
	return elem.ReplaceAllFunc(data, func(m []byte) []byte {
		if sel.Match(m) {
			return nil
		}
		return m
	})
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
