package render

import (
	"errors"
	"fmt"

	ppt "github.com/VantageDataChat/GoPPT"

	"github.com/ukaji3/deckgen-go/internal/logx"
	"github.com/ukaji3/deckgen-go/pkg/deckgen/layout"
	"github.com/ukaji3/deckgen-go/pkg/deckgen/models"
	"github.com/ukaji3/deckgen-go/pkg/deckgen/parser"
)

// ErrUnknownLayout indicates a slide whose layout tag has no painter.
var ErrUnknownLayout = errors.New("unknown slide layout")

// Font sizes in points.
const (
	coverTitleFont    = 36
	coverSubtitleFont = 20
	titleFont         = 26
	bodyFont          = 16
	citationFont      = 11
	dateFont          = 13
	cellTitleFont     = 15
	cellTextFont      = 12
	axisNoteFont      = 11
	spacerFont        = 6
)

// Slide geometry in inches.
const (
	titleTop     = 0.3
	titleHeight  = 0.7
	ruleTop      = 1.05
	ruleHeight   = 0.03
	contentTop   = 1.25
	iconSize     = 0.5
	iconGap      = 0.15
	coverBar     = 0.12
	quadrantGap  = 0.15
	axisNoteSize = 0.3

	commentaryGap       = 0.2
	minCommentaryWidth  = 2.0
	minCommentaryHeight = 0.6
)

// IconSet maps icon ids to PNG bytes. Missing ids are simply not drawn.
type IconSet map[string][]byte

// ContentArea is the part of a content slide below the title rule.
func ContentArea(f layout.Frame) layout.Rect {
	return layout.Rect{
		X: f.Margin,
		Y: contentTop,
		W: f.Width - 2*f.Margin,
		H: f.Height - contentTop - f.Margin,
	}
}

// Add paints one slide of the description. charts holds the rasterised
// placements of a chart slide, in placement order.
func (d *Deck) Add(s models.Slide, charts []ChartImage, icons IconSet) error {
	switch s.Kind() {
	case models.LayoutCover:
		d.AddCover(s.Title, s.Subtitle, icons[s.Icon])
	case models.LayoutBullets:
		d.AddBullets(s.Title, s.Bullets, icons[s.Icon])
	case models.LayoutChart:
		d.AddChart(s.Title, charts, s.Bullets, icons[s.Icon])
	case models.LayoutTimeline:
		d.AddTimeline(s.Title, s.Events, icons, icons[s.Icon])
	case models.LayoutQuadrant:
		d.AddQuadrant(s.Title, s.Quadrants, s.XAxis, s.YAxis, icons, icons[s.Icon])
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLayout, s.Kind())
	}
	return nil
}

// AddCover adds a title slide.
func (d *Deck) AddCover(title, subtitle string, icon []byte) {
	slide := d.newSlide()
	f := d.frame

	fillRect(slide, layout.Rect{W: f.Width, H: f.Height}, d.theme.Background)
	fillRect(slide, layout.Rect{W: f.Width, H: coverBar}, d.theme.Accent)

	y := f.Height * 0.32
	if icon != nil {
		picture(slide, layout.Rect{X: f.Width/2 - 0.4, Y: y - 1.0, W: 0.8, H: 0.8}, icon)
	}

	s := textBox(slide, layout.Rect{X: f.Margin, Y: y, W: f.Width - 2*f.Margin, H: 1.0})
	tr := s.CreateTextRun(title)
	tr.GetFont().SetSize(coverTitleFont).SetBold(true).SetColor(ppt.NewColor(argb(d.theme.Title)))
	alignCenter(s.GetActiveParagraph())

	fillRect(slide, layout.Rect{X: f.Width/2 - 1, Y: y + 1.05, W: 2, H: ruleHeight}, d.theme.Accent)

	if subtitle != "" {
		sub := textBox(slide, layout.Rect{X: f.Margin, Y: y + 1.15, W: f.Width - 2*f.Margin, H: 0.6})
		tr := sub.CreateTextRun(subtitle)
		tr.GetFont().SetSize(coverSubtitleFont).SetColor(ppt.NewColor(argb(d.theme.Accent)))
		alignCenter(sub.GetActiveParagraph())
	}
}

// AddBullets adds a titled slide of styled bullet lines.
func (d *Deck) AddBullets(title string, bullets []string, icon []byte) {
	slide := d.newSlide()
	d.header(slide, title, icon)
	d.bulletBox(slide, ContentArea(d.frame), bullets)
}

// AddChart adds a slide with the given chart images. Bullets are drawn as
// commentary when the charts leave room beside or below them.
func (d *Deck) AddChart(title string, charts []ChartImage, bullets []string, icon []byte) {
	slide := d.newSlide()
	d.header(slide, title, icon)

	for _, ci := range charts {
		picture(slide, ci.Area, ci.PNG)
	}

	if len(bullets) == 0 {
		return
	}
	if r, ok := commentaryArea(ContentArea(d.frame), charts); ok {
		d.bulletBox(slide, r, bullets)
		return
	}
	logx.Logger().Debug("no room for chart commentary", "title", title, "bullets", len(bullets))
}

// commentaryArea finds room for text right of or below the charts.
func commentaryArea(content layout.Rect, charts []ChartImage) (layout.Rect, bool) {
	right, bottom := content.X, content.Y
	for _, ci := range charts {
		right = max(right, ci.Area.Right())
		bottom = max(bottom, ci.Area.Bottom())
	}

	if w := content.Right() - right - commentaryGap; w >= minCommentaryWidth {
		return layout.Rect{X: right + commentaryGap, Y: content.Y, W: w, H: content.H}, true
	}
	if h := content.Bottom() - bottom - commentaryGap; h >= minCommentaryHeight {
		return layout.Rect{X: content.X, Y: bottom + commentaryGap, W: content.W, H: h}, true
	}
	return layout.Rect{}, false
}

// AddTimeline adds a horizontal timeline with evenly spaced milestones.
func (d *Deck) AddTimeline(title string, events []models.Event, icons IconSet, icon []byte) {
	slide := d.newSlide()
	d.header(slide, title, icon)
	if len(events) == 0 {
		return
	}

	content := ContentArea(d.frame)
	axisY := content.Y + content.H*0.45
	fillRect(slide, layout.Rect{X: content.X, Y: axisY - 0.02, W: content.W, H: 0.04}, d.theme.Accent)

	colW := content.W / float64(len(events))
	for i, e := range events {
		cx := content.X + colW*(float64(i)+0.5)
		fillRect(slide, layout.Rect{X: cx - 0.09, Y: axisY - 0.09, W: 0.18, H: 0.18}, d.theme.Title)

		if ic := icons[e.Icon]; ic != nil {
			picture(slide, layout.Rect{X: cx - iconSize/2, Y: axisY - 1.1, W: iconSize, H: iconSize}, ic)
		}

		date := textBox(slide, layout.Rect{X: cx - colW/2 + 0.05, Y: axisY - 0.55, W: colW - 0.1, H: 0.4})
		tr := date.CreateTextRun(e.Date)
		tr.GetFont().SetSize(dateFont).SetBold(true).SetColor(ppt.NewColor(argb(d.theme.Accent)))
		alignCenter(date.GetActiveParagraph())

		body := textBox(slide, layout.Rect{X: cx - colW/2 + 0.05, Y: axisY + 0.2, W: colW - 0.1, H: content.Bottom() - axisY - 0.2})
		tr = body.CreateTextRun(e.Title)
		tr.GetFont().SetSize(cellTitleFont).SetBold(true).SetColor(ppt.NewColor(argb(d.theme.Title)))
		alignCenter(body.GetActiveParagraph())
		if e.Text != "" {
			body.CreateParagraph()
			tr = body.CreateTextRun(e.Text)
			tr.GetFont().SetSize(cellTextFont).SetColor(ppt.NewColor(argb(d.theme.Text)))
			alignCenter(body.GetActiveParagraph())
		}
	}
}

// AddQuadrant adds a two-by-two matrix. Cells are filled in reading order;
// only the first four are drawn.
func (d *Deck) AddQuadrant(title string, cells []models.Quadrant, xAxis, yAxis string, icons IconSet, icon []byte) {
	slide := d.newSlide()
	d.header(slide, title, icon)

	grid := ContentArea(d.frame)
	if yAxis != "" {
		note := textBox(slide, layout.Rect{X: grid.X, Y: grid.Y, W: grid.W, H: axisNoteSize})
		tr := note.CreateTextRun("↑ " + yAxis)
		tr.GetFont().SetSize(axisNoteFont).SetColor(ppt.NewColor(argb(d.theme.Citation)))
		grid.Y += axisNoteSize
		grid.H -= axisNoteSize
	}
	if xAxis != "" {
		grid.H -= axisNoteSize
		note := textBox(slide, layout.Rect{X: grid.X, Y: grid.Bottom(), W: grid.W, H: axisNoteSize})
		tr := note.CreateTextRun(xAxis + " →")
		tr.GetFont().SetSize(axisNoteFont).SetColor(ppt.NewColor(argb(d.theme.Citation)))
		alignRight(note.GetActiveParagraph())
	}

	cellW := (grid.W - quadrantGap) / 2
	cellH := (grid.H - quadrantGap) / 2
	for i, q := range cells {
		if i == 4 {
			break
		}
		col, row := float64(i%2), float64(i/2)
		r := layout.Rect{
			X: grid.X + col*(cellW+quadrantGap),
			Y: grid.Y + row*(cellH+quadrantGap),
			W: cellW,
			H: cellH,
		}

		s := textBox(slide, r)
		s.SetFill(solidFill(d.theme.Panel))
		tr := s.CreateTextRun(q.Title)
		tr.GetFont().SetSize(cellTitleFont).SetBold(true).SetColor(ppt.NewColor(argb(d.theme.Title)))
		if q.Text != "" {
			s.CreateParagraph()
			tr = s.CreateTextRun(q.Text)
			tr.GetFont().SetSize(cellTextFont).SetColor(ppt.NewColor(argb(d.theme.Text)))
		}

		if ic := icons[q.Icon]; ic != nil {
			picture(slide, layout.Rect{X: r.Right() - 0.5, Y: r.Y + 0.1, W: 0.4, H: 0.4}, ic)
		}
	}
}

// header paints the background, title and accent rule of a content slide.
func (d *Deck) header(slide *ppt.Slide, title string, icon []byte) {
	f := d.frame
	fillRect(slide, layout.Rect{W: f.Width, H: f.Height}, d.theme.Background)

	x := f.Margin
	if icon != nil {
		picture(slide, layout.Rect{X: x, Y: titleTop + (titleHeight-iconSize)/2, W: iconSize, H: iconSize}, icon)
		x += iconSize + iconGap
	}

	s := textBox(slide, layout.Rect{X: x, Y: titleTop, W: f.Width - f.Margin - x, H: titleHeight})
	tr := s.CreateTextRun(title)
	tr.GetFont().SetSize(titleFont).SetBold(true).SetColor(ppt.NewColor(argb(d.theme.Title)))

	fillRect(slide, layout.Rect{X: f.Margin, Y: ruleTop, W: f.Width - 2*f.Margin, H: ruleHeight}, d.theme.Accent)
}

// bulletBox writes one paragraph per bullet, styled by SplitRuns.
func (d *Deck) bulletBox(slide *ppt.Slide, r layout.Rect, bullets []string) {
	if len(bullets) == 0 {
		return
	}

	s := textBox(slide, r)
	for i, b := range bullets {
		if i > 0 {
			s.CreateParagraph()
			spacer := s.CreateTextRun(" ")
			spacer.GetFont().SetSize(spacerFont)
			s.CreateParagraph()
		}

		marker := s.CreateTextRun("• ")
		marker.GetFont().SetSize(bodyFont).SetBold(true).SetColor(ppt.NewColor(argb(d.theme.Accent)))

		for _, run := range SplitRuns(b) {
			tr := s.CreateTextRun(run.Text)
			switch run.Kind {
			case RunLead:
				tr.GetFont().SetSize(bodyFont).SetBold(true).SetColor(ppt.NewColor(argb(d.theme.Text)))
			case RunCitation:
				font := tr.GetFont()
				font.SetSize(citationFont).SetColor(ppt.NewColor(argb(d.theme.Citation)))
				font.Italic = true
			default:
				tr.GetFont().SetSize(bodyFont).SetColor(ppt.NewColor(argb(d.theme.Text)))
			}
		}
	}
}

func emu(in float64) int64 {
	return parser.InchesToEMU(in)
}

// textBox adds an unfilled text shape covering r.
func textBox(slide *ppt.Slide, r layout.Rect) *ppt.RichTextShape {
	s := slide.CreateRichTextShape()
	s.SetOffsetX(emu(r.X)).SetOffsetY(emu(r.Y))
	s.SetWidth(emu(r.W)).SetHeight(emu(r.H))
	return s
}

// fillRect adds a solid rectangle. Bars, rules and backgrounds are all
// filled text shapes without text.
func fillRect(slide *ppt.Slide, r layout.Rect, col layout.Color) {
	s := textBox(slide, r)
	s.SetFill(solidFill(col))
}

// picture adds a PNG image covering r.
func picture(slide *ppt.Slide, r layout.Rect, png []byte) {
	img := slide.CreateDrawingShape()
	img.SetImageData(png, "image/png")
	img.SetOffsetX(emu(r.X)).SetOffsetY(emu(r.Y))
	img.SetWidth(emu(r.W)).SetHeight(emu(r.H))
}

func alignCenter(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

func alignRight(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalRight))
}
