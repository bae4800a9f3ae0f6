package render

import (
	"bytes"
	"fmt"
	"io"
	"os"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/ukaji3/deckgen-go/internal/logx"
	"github.com/ukaji3/deckgen-go/pkg/deckgen/layout"
	"github.com/ukaji3/deckgen-go/pkg/deckgen/parser"
)

// Deck is a presentation being assembled. Slides are appended in call
// order. A Deck is not safe for concurrent use.
type Deck struct {
	pres  *ppt.Presentation
	frame layout.Frame
	theme Theme

	// reuse is set while the presentation's initial slide is still unused.
	reuse  bool
	slides int
}

// NewDeck returns a blank deck.
func NewDeck(frame layout.Frame, theme Theme) *Deck {
	return &Deck{
		pres:  ppt.New(),
		frame: frame,
		theme: theme.Merge(DefaultTheme()),
		reuse: true,
	}
}

// OpenDeck returns a deck based on the template at path with the
// template's own slides removed.
func OpenDeck(path string, frame layout.Frame, theme Theme) (*Deck, error) {
	tmp, err := os.CreateTemp("", "deckgen-template-*.pptx")
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	removed, err := parser.StripSlides(path, tmpPath)
	if err != nil {
		return nil, err
	}

	reader := &ppt.PPTXReader{}
	pres, err := reader.Read(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	logx.Logger().Debug("template opened", "path", path, "cleared_slides", removed)

	return &Deck{
		pres:  pres,
		frame: frame,
		theme: theme.Merge(DefaultTheme()),
		// a reader may hand back one placeholder slide for an empty deck
		reuse: len(pres.GetAllSlides()) == 1,
	}, nil
}

// SetProperties sets the document title and author.
func (d *Deck) SetProperties(title, creator string) {
	props := d.pres.GetDocumentProperties()
	props.Title = title
	props.Creator = creator
}

// Frame returns the slide geometry.
func (d *Deck) Frame() layout.Frame { return d.frame }

// SlideCount returns the number of slides added so far.
func (d *Deck) SlideCount() int { return d.slides }

func (d *Deck) newSlide() *ppt.Slide {
	d.slides++
	if d.reuse {
		d.reuse = false
		return d.pres.GetActiveSlide()
	}
	return d.pres.CreateSlide()
}

// WriteTo writes the deck as pptx.
func (d *Deck) WriteTo(w io.Writer) error {
	pw, err := ppt.NewWriter(d.pres, ppt.WriterPowerPoint2007)
	if err != nil {
		return fmt.Errorf("create pptx writer: %w", err)
	}
	if err := pw.(*ppt.PPTXWriter).WriteTo(w); err != nil {
		return fmt.Errorf("write pptx: %w", err)
	}
	return nil
}

// Save writes the deck to path.
func (d *Deck) Save(path string) error {
	var buf bytes.Buffer
	if err := d.WriteTo(&buf); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
