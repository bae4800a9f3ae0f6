package parser

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/ukaji3/deckgen-go/pkg/deckgen/layout"
)

// ErrTemplateNotFound indicates the template file does not exist.
var ErrTemplateNotFound = errors.New("template not found")

// ErrNotPresentation indicates the template is a zip archive without
// ppt/presentation.xml.
var ErrNotPresentation = errors.New("template is not a pptx presentation")

// Default slide geometry (16:9) used for blank decks.
const (
	DefaultSlideWidth  = 10.0
	DefaultSlideHeight = 5.625
	DefaultMargin      = 0.4
)

// TemplateInfo describes a presentation template.
type TemplateInfo struct {
	// Path is the template path as given.
	Path string
	// SlideWidth and SlideHeight are the slide size in inches.
	SlideWidth  float64
	SlideHeight float64
	// SlideCount is the number of slides already in the template.
	SlideCount int
	// LayoutCount is the number of slide layouts the template offers.
	LayoutCount int
	// ThemeName is the name of the first theme, if any.
	ThemeName string
}

// Frame returns the slide geometry for layout decisions.
func (t TemplateInfo) Frame() layout.Frame {
	return layout.Frame{Width: t.SlideWidth, Height: t.SlideHeight, Margin: DefaultMargin}
}

// DefaultFrame is the frame of a blank deck.
func DefaultFrame() layout.Frame {
	return layout.Frame{Width: DefaultSlideWidth, Height: DefaultSlideHeight, Margin: DefaultMargin}
}

// InspectTemplate reads the slide size and contents summary of a pptx file.
func InspectTemplate(path string) (TemplateInfo, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return TemplateInfo{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return TemplateInfo{}, fmt.Errorf("open template: %w", err)
	}
	defer r.Close()

	presXML, err := readZipFile(&r.Reader, "ppt/presentation.xml")
	if err != nil {
		return TemplateInfo{}, fmt.Errorf("read presentation.xml: %w", err)
	}
	if presXML == nil {
		return TemplateInfo{}, ErrNotPresentation
	}

	info := TemplateInfo{
		Path:        path,
		SlideWidth:  DefaultSlideWidth,
		SlideHeight: DefaultSlideHeight,
	}
	cx, cy, slides := parsePresentation(presXML)
	if cx > 0 && cy > 0 {
		info.SlideWidth = EMUToInches(cx)
		info.SlideHeight = EMUToInches(cy)
	}
	info.SlideCount = slides

	for _, f := range r.File {
		if strings.HasPrefix(f.Name, "ppt/slideLayouts/slideLayout") && strings.HasSuffix(f.Name, ".xml") {
			info.LayoutCount++
		}
	}

	if themeXML, err := readZipFile(&r.Reader, "ppt/theme/theme1.xml"); err == nil && themeXML != nil {
		info.ThemeName = parseThemeName(themeXML)
	}

	return info, nil
}

// parsePresentation returns the sldSz extent and the number of sldId entries.
func parsePresentation(data []byte) (cx, cy int64, slides int) {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "sldSz":
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "cx":
					cx, _ = strconv.ParseInt(attr.Value, 10, 64)
				case "cy":
					cy, _ = strconv.ParseInt(attr.Value, 10, 64)
				}
			}
		case "sldId":
			slides++
		}
	}

	return cx, cy, slides
}

// parseThemeName returns the name attribute of the a:theme root.
func parseThemeName(data []byte) string {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			return ""
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "theme" {
			for _, attr := range se.Attr {
				if attr.Name.Local == "name" {
					return attr.Value
				}
			}
			return ""
		}
	}
}

// readZipFile returns the named entry, or nil if the archive lacks it.
func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}
