// Package icons resolves icon ids such as "mdi:chart-bar" to PNG images.
package icons

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/sync/singleflight"

	"github.com/ukaji3/deckgen-go/internal/logx"
)

// Defaults for HTTPResolver.
const (
	DefaultBaseURL = "https://api.iconify.design"
	DefaultPrefix  = "mdi"
	DefaultColor   = "0066CC"
	DefaultTimeout = 10 * time.Second
	DefaultSizePx  = 128

	// maxSVGBytes bounds a single icon download.
	maxSVGBytes = 1 << 20
)

// Resolver turns an icon id into PNG bytes. A false result means the icon
// is unavailable; resolvers never fail a deck.
type Resolver interface {
	Resolve(ctx context.Context, id string) ([]byte, bool)
}

// Disabled resolves nothing.
type Disabled struct{}

// Resolve always reports absence.
func (Disabled) Resolve(context.Context, string) ([]byte, bool) { return nil, false }

// Config configures an HTTPResolver. Zero fields take the package defaults.
type Config struct {
	BaseURL       string
	DefaultPrefix string
	// Color is the RRGGBB fill requested from the icon service.
	Color   string
	Timeout time.Duration
	SizePx  int
}

type cacheEntry struct {
	png []byte
	ok  bool
}

// HTTPResolver fetches SVG icons from an Iconify-style service and
// rasterises them. Results, including failures, are cached for the life of
// the resolver. It is safe for concurrent use.
type HTTPResolver struct {
	cfg    Config
	client *http.Client

	mu    sync.Mutex
	cache map[string]cacheEntry
	group singleflight.Group
}

// NewHTTPResolver returns a resolver for cfg.
func NewHTTPResolver(cfg Config) *HTTPResolver {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.DefaultPrefix == "" {
		cfg.DefaultPrefix = DefaultPrefix
	}
	if cfg.Color == "" {
		cfg.Color = DefaultColor
	}
	cfg.Color = strings.TrimPrefix(cfg.Color, "#")
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.SizePx <= 0 {
		cfg.SizePx = DefaultSizePx
	}
	return &HTTPResolver{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		cache:  make(map[string]cacheEntry),
	}
}

// Resolve returns the icon as a square PNG of Config.SizePx pixels.
func (r *HTTPResolver) Resolve(ctx context.Context, id string) ([]byte, bool) {
	prefix, name, ok := r.splitID(id)
	if !ok {
		return nil, false
	}
	key := prefix + ":" + name

	if e, hit := r.lookup(key); hit {
		return e.png, e.ok
	}

	v, _, _ := r.group.Do(key, func() (interface{}, error) {
		if e, hit := r.lookup(key); hit {
			return e, nil
		}
		data, err := r.fetch(ctx, prefix, name)
		if err != nil {
			logx.Logger().Debug("icon unavailable", "id", key, "error", err)
			if ctx.Err() != nil {
				// a cancelled run says nothing about the icon itself
				return cacheEntry{}, nil
			}
			r.store(key, cacheEntry{})
			return cacheEntry{}, nil
		}
		e := cacheEntry{png: data, ok: true}
		r.store(key, e)
		return e, nil
	})
	e := v.(cacheEntry)
	return e.png, e.ok
}

func (r *HTTPResolver) lookup(key string) (cacheEntry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.cache[key]
	return e, ok
}

func (r *HTTPResolver) store(key string, e cacheEntry) {
	r.mu.Lock()
	r.cache[key] = e
	r.mu.Unlock()
}

// splitID parses "prefix:name" or a bare name.
func (r *HTTPResolver) splitID(id string) (prefix, name string, ok bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "", false
	}
	prefix, name, found := strings.Cut(id, ":")
	if !found {
		prefix, name = r.cfg.DefaultPrefix, id
	}
	prefix, name = strings.TrimSpace(prefix), strings.TrimSpace(name)
	if prefix == "" || name == "" {
		return "", "", false
	}
	return prefix, name, true
}

// URL returns the SVG location of an icon.
func (r *HTTPResolver) URL(prefix, name string) string {
	return fmt.Sprintf("%s/%s/%s.svg?color=%s",
		r.cfg.BaseURL, url.PathEscape(prefix), url.PathEscape(name), url.QueryEscape("#"+r.cfg.Color))
}

func (r *HTTPResolver) fetch(ctx context.Context, prefix, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL(prefix, name), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "image/svg+xml")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("icon service returned %d", resp.StatusCode)
	}

	svg, err := io.ReadAll(io.LimitReader(resp.Body, maxSVGBytes))
	if err != nil {
		return nil, fmt.Errorf("read icon: %w", err)
	}
	return Rasterize(svg, r.cfg.SizePx)
}

// Rasterize draws an SVG document into a size x size PNG.
func Rasterize(svg []byte, size int) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, fmt.Errorf("parse svg: empty view box")
	}

	icon.SetTarget(0, 0, float64(size), float64(size))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode icon: %w", err)
	}
	return buf.Bytes(), nil
}
