// Package render composes an ordered stack of tracks into a single figure
// over one genomic locus, writing either vector (SVG) or raster (PNG) output.
package render

import (
	"fmt"
	"image/color"
	"image/png"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	svgr "github.com/tdewolff/canvas/renderers/svg"

	"github.com/bioplotkit/locusplot"
	"github.com/bioplotkit/locusplot/locus"
	"github.com/bioplotkit/locusplot/track"
)

const (
	// DefaultWidthMM is a full-page figure width (Nature Genetics permits
	// 180mm, for example).
	DefaultWidthMM  = 178.0
	DefaultHeightMM = 120.0

	leftMarginMM  = 14.0
	rightMarginMM = 4.0
	panelPadMM    = 1.0
)

// ConfigError marks a render-time configuration problem: mismatched
// track/weight lengths, an unresolvable signal file, or a degenerate locus.
// The render call aborts before any drawing; previously loaded data remains
// usable for a corrected retry.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("render config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Config assembles one render call: the ordered tracks, their relative height
// weights, the visible locus, and global style overrides. It is a pure
// description; rendering the same Config twice produces identical bytes.
type Config struct {
	Tracks  []*track.Track
	Weights []float64
	Locus   locus.Locus

	WidthMM  float64
	HeightMM float64

	// Global style overrides. Empty values use the built-in defaults.
	Background string
	AxisColor  string
	FontPath   string
	FontSizePt float64
}

func (cfg Config) widthMM() float64 {
	if cfg.WidthMM > 0 {
		return cfg.WidthMM
	}
	return DefaultWidthMM
}

func (cfg Config) heightMM() float64 {
	if cfg.HeightMM > 0 {
		return cfg.HeightMM
	}
	return DefaultHeightMM
}

func (cfg Config) fontSize() float64 {
	if cfg.FontSizePt > 0 {
		return cfg.FontSizePt
	}
	return 7.0
}

// Validate checks the configuration without drawing anything.
func (cfg Config) Validate() error {
	if len(cfg.Tracks) == 0 {
		return &ConfigError{Err: fmt.Errorf("no tracks to render")}
	}

	if x, y := len(cfg.Tracks), len(cfg.Weights); x != y {
		return &ConfigError{Err: fmt.Errorf("%d tracks but %d weights", x, y)}
	}

	if _, err := PanelHeights(cfg.Weights, cfg.heightMM()); err != nil {
		return &ConfigError{Err: err}
	}

	if cfg.Locus.Chrom() == "" || cfg.Locus.Len() < 2 {
		return &ConfigError{Err: fmt.Errorf("degenerate locus %v", cfg.Locus)}
	}

	for i, tr := range cfg.Tracks {
		if tr == nil {
			return &ConfigError{Err: fmt.Errorf("track %d is nil", i)}
		}
		if tr.Kind == track.Signal {
			if tr.Signal == nil {
				return &ConfigError{Err: fmt.Errorf("signal track %d has no reference", i)}
			}
			if err := tr.Signal.Resolve(); err != nil {
				return &ConfigError{Err: fmt.Errorf("signal track %d: %w", i, err)}
			}
		}
	}

	return nil
}

// RenderSVG validates, draws, and writes the figure as SVG.
func (cfg Config) RenderSVG(w io.Writer) error {
	c, err := cfg.draw()
	if err != nil {
		return err
	}

	r := svgr.New(w, cfg.widthMM(), cfg.heightMM(), nil)
	c.Render(r)

	return r.Close()
}

// RenderPNG validates, draws, rasterizes, and writes the figure as PNG.
func (cfg Config) RenderPNG(w io.Writer) error {
	c, err := cfg.draw()
	if err != nil {
		return err
	}

	img := rasterizer.Draw(c, canvas.Resolution(3.78), canvas.DefaultColorSpace)

	return png.Encode(w, img)
}

// RenderFile writes SVG or PNG depending on the output extension.
func (cfg Config) RenderFile(path string) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if hasSuffixFold(path, ".png") {
		return cfg.RenderPNG(f)
	}

	return cfg.RenderSVG(f)
}

func (cfg Config) draw() (*canvas.Canvas, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	width, height := cfg.widthMM(), cfg.heightMM()

	c := canvas.New(width, height)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	bg := parseColor(cfg.Background, color.RGBA{255, 255, 255, 255})
	ctx.SetFillColor(bg)
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.DrawPath(0, 0, canvas.Rectangle(width, height))

	heights, err := PanelHeights(cfg.Weights, height)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	fam := cfg.fontFamily()
	axisColor := parseColor(cfg.AxisColor, color.RGBA{0, 0, 0, 255})

	y := 0.0
	for i, tr := range cfg.Tracks {
		p := panel{
			X:     leftMarginMM,
			Y:     y + panelPadMM,
			W:     width - leftMarginMM - rightMarginMM,
			H:     heights[i] - 2*panelPadMM,
			Locus: cfg.Locus,
		}
		y += heights[i]

		var derr error
		switch tr.Kind {
		case track.Ideogram:
			derr = drawIdeogram(ctx, p, tr, fam, cfg.fontSize())
		case track.Axis:
			drawAxis(ctx, p, axisColor, fam, cfg.fontSize())
		case track.GeneModel:
			derr = drawGeneModel(ctx, p, tr, fam, cfg.fontSize())
		case track.Annotation:
			drawAnnotation(ctx, p, tr, fam, cfg.fontSize())
		case track.Signal:
			derr = drawSignal(ctx, p, tr, fam, cfg.fontSize())
		case track.Interaction:
			drawInteractions(ctx, p, tr, fam, cfg.fontSize())
		default:
			derr = fmt.Errorf("track %d has unknown kind %d", i, tr.Kind)
		}

		if derr != nil {
			return nil, derr
		}
	}

	return c, nil
}

// fontFamily loads the configured font file, or falls back to a common local
// sans font. A nil return means labels are skipped, not that rendering fails.
func (cfg Config) fontFamily() *canvas.FontFamily {
	fam := canvas.NewFontFamily("sans")

	if cfg.FontPath != "" {
		if err := fam.LoadFontFile(locusplot.ExpandHome(cfg.FontPath), canvas.FontRegular); err == nil {
			return fam
		}
		return nil
	}

	return localFontFamily(fam)
}

// localFontFamily tries common sans fonts by name. The system font lookup
// panics on machines with no fonts installed at all, so that case is folded
// into the nil (labels skipped) path here.
func localFontFamily(fam *canvas.FontFamily) (out *canvas.FontFamily) {
	defer func() {
		if recover() != nil {
			out = nil
		}
	}()

	for _, name := range []string{"Arial", "Helvetica", "DejaVu Sans", "Liberation Sans"} {
		if err := fam.LoadLocalFont(name, canvas.FontRegular); err == nil {
			return fam
		}
	}

	return nil
}
