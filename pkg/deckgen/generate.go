package deckgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/deckgen-go/pkg/deckgen/layout"
	"github.com/ukaji3/deckgen-go/pkg/deckgen/models"
	"github.com/ukaji3/deckgen-go/pkg/deckgen/parser"
	"github.com/ukaji3/deckgen-go/pkg/deckgen/render"
)

// creator is written to the document properties.
const creator = "deckgen"

// quadrantCells is the number of cells a quadrant slide must have.
const quadrantCells = 4

// slideJob is one input slide on its way to the deck.
type slideJob struct {
	slide  models.Slide
	plan   models.SlidePlan
	chart  *layout.Result
	images []render.ChartImage
}

// Generate reads the slide description at inputPath and writes the deck to
// outputPath. It returns the layout decisions that were applied.
//
// Slides are validated and charts planned before anything is drawn, so a
// malformed slide fails the run without writing output.
func Generate(ctx context.Context, inputPath, outputPath string, opts Options) (*models.DeckPlan, error) {
	log := opts.logger()

	slides, err := parser.LoadSlides(inputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, inputPath)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if len(slides) == 0 {
		return nil, fmt.Errorf("%w: no slides in %s", ErrInvalidInput, inputPath)
	}

	cfg := opts.Config
	theme := cfg.Theme.Merge(render.DefaultTheme())

	deck, tmpl, err := openDeck(opts.TemplatePath, theme, log)
	if err != nil {
		return nil, err
	}
	frame := deck.Frame()

	plan := &models.DeckPlan{
		Input:    filepath.Base(inputPath),
		Template: tmpl,
		Frame:    frame,
	}

	baseDir := filepath.Dir(inputPath)
	jobs := make([]*slideJob, len(slides))
	for i, s := range slides {
		job, err := prepare(i+1, s, baseDir, frame)
		if err != nil {
			return nil, err
		}
		if job.chart != nil {
			log.Debug("chart planned",
				"slide", job.plan.Index,
				"requested", job.chart.RequestedType,
				"strategy", job.chart.Strategy,
				"parts", len(job.chart.Placements))
		}
		jobs[i] = job
	}

	iconSet, err := prefetchIcons(ctx, opts, jobs)
	if err != nil {
		return nil, err
	}
	if err := rasterize(ctx, cfg, theme, jobs); err != nil {
		return nil, err
	}

	deck.SetProperties(slides[0].Title, creator)
	for _, job := range jobs {
		if err := deck.Add(job.slide, job.images, iconSet); err != nil {
			return nil, NewSlideError(job.plan.Index, job.plan.Layout, err)
		}
		job.plan.MissingIcons = missingIcons(job.slide, iconSet)
		plan.Slides = append(plan.Slides, job.plan)
	}

	if err := deck.Save(outputPath); err != nil {
		return nil, fmt.Errorf("save deck: %w", err)
	}

	if opts.PlanPath != "" {
		if err := writePlan(opts.PlanPath, plan); err != nil {
			return nil, err
		}
	}

	log.Info("deck generated",
		"output", outputPath,
		"slides", deck.SlideCount(),
		"template", tmpl != "")
	return plan, nil
}

// openDeck starts from the template when it exists, otherwise from a blank
// deck. It returns the template path actually used.
func openDeck(path string, theme render.Theme, log *slog.Logger) (*render.Deck, string, error) {
	if path == "" {
		return render.NewDeck(parser.DefaultFrame(), theme), "", nil
	}

	info, err := parser.InspectTemplate(path)
	if errors.Is(err, parser.ErrTemplateNotFound) {
		log.Warn("template not found, using a blank deck", "template", path)
		return render.NewDeck(parser.DefaultFrame(), theme), "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("inspect template: %w", err)
	}

	deck, err := render.OpenDeck(path, info.Frame(), theme)
	if err != nil {
		return nil, "", fmt.Errorf("open template: %w", err)
	}
	log.Debug("template loaded",
		"template", path,
		"width", info.SlideWidth,
		"height", info.SlideHeight,
		"layouts", info.LayoutCount,
		"theme", info.ThemeName)
	return deck, path, nil
}

// prepare validates one slide and plans its chart.
func prepare(index int, s models.Slide, baseDir string, frame layout.Frame) (*slideJob, error) {
	kind := s.Kind()
	job := &slideJob{
		slide: s,
		plan:  models.SlidePlan{Index: index, Layout: kind, Title: s.Title},
	}

	switch kind {
	case models.LayoutCover, models.LayoutBullets, models.LayoutTimeline:
	case models.LayoutQuadrant:
		if len(s.Quadrants) != quadrantCells {
			return nil, NewSlideError(index, kind,
				fmt.Errorf("%w: quadrant slide needs %d cells, got %d", ErrInvalidInput, quadrantCells, len(s.Quadrants)))
		}
	case models.LayoutChart:
		res, err := planChart(&job.slide, baseDir, frame)
		if err != nil {
			return nil, NewSlideError(index, kind, err)
		}
		job.chart = res
		job.plan.Chart = res
		job.images = make([]render.ChartImage, len(res.Placements))
	default:
		return nil, NewSlideError(index, kind, fmt.Errorf("%w: %w %q", ErrInvalidInput, render.ErrUnknownLayout, kind))
	}
	return job, nil
}

// planChart fills workbook-backed data into s and runs the layout pipeline.
func planChart(s *models.Slide, baseDir string, frame layout.Frame) (*layout.Result, error) {
	if s.Source != nil {
		cats, series, err := parser.LoadWorkbookSource(baseDir, *s.Source)
		if err != nil {
			return nil, fmt.Errorf("chart source: %w", err)
		}
		s.Categories, s.Series = cats, series
	}

	req, err := parser.ChartRequest(s.Chart, render.ContentArea(frame))
	if err != nil {
		return nil, err
	}
	res, err := layout.Plan(req, frame)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// iconIDs returns the icon ids a slide refers to.
func iconIDs(s models.Slide) []string {
	var ids []string
	add := func(id string) {
		if id != "" {
			ids = append(ids, id)
		}
	}
	add(s.Icon)
	for _, e := range s.Events {
		add(e.Icon)
	}
	for _, q := range s.Quadrants {
		add(q.Icon)
	}
	return ids
}

// prefetchIcons resolves every distinct icon id of the deck concurrently.
// Unresolved icons are simply left out of the set.
func prefetchIcons(ctx context.Context, opts Options, jobs []*slideJob) (render.IconSet, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, job := range jobs {
		for _, id := range iconIDs(job.slide) {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	set := make(render.IconSet)
	if len(ids) == 0 {
		return set, ctx.Err()
	}

	resolver := opts.resolver()
	limit := opts.Config.Icons.Parallelism
	if limit <= 0 {
		limit = DefaultParallelism
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, id := range ids {
		g.Go(func() error {
			data, ok := resolver.Resolve(gctx, id)
			if !ok {
				return nil
			}
			mu.Lock()
			set[id] = data
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	opts.logger().Debug("icons resolved", "requested", len(ids), "resolved", len(set))
	return set, nil
}

// rasterize paints every chart placement concurrently. Images land in
// their job by placement index, so the outcome does not depend on
// scheduling.
func rasterize(ctx context.Context, cfg Config, theme render.Theme, jobs []*slideJob) error {
	painter := render.ChartPainter{DPI: cfg.Charts.DPI, Theme: theme}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, job := range jobs {
		if job.chart == nil {
			continue
		}
		for j, p := range job.chart.Placements {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				img, err := painter.Paint(p)
				if err != nil {
					return NewSlideError(job.plan.Index, job.plan.Layout, err)
				}
				job.images[j] = img
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// missingIcons lists the ids of s that did not resolve.
func missingIcons(s models.Slide, set render.IconSet) []string {
	var missing []string
	for _, id := range iconIDs(s) {
		if _, ok := set[id]; !ok {
			missing = append(missing, id)
		}
	}
	slices.Sort(missing)
	return slices.Compact(missing)
}

func writePlan(path string, plan *models.DeckPlan) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}
