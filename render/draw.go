package render

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"

	"github.com/tdewolff/canvas"
	"gonum.org/v1/gonum/floats"

	"github.com/bioplotkit/locusplot/cytoband"
	"github.com/bioplotkit/locusplot/track"
)

func createFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
}

func hasSuffixFold(path, suffix string) bool {
	return strings.HasSuffix(strings.ToLower(path), suffix)
}

func drawLabel(ctx *canvas.Context, fam *canvas.FontFamily, sizePt float64, col color.RGBA, x, y float64, text string) {
	if fam == nil || text == "" {
		return
	}

	face := fam.Face(sizePt, col, canvas.FontRegular, canvas.FontNormal)
	ctx.DrawText(x, y, canvas.NewTextLine(face, text, canvas.Left))
}

// formatCoord renders a genomic coordinate with thousands separators.
func formatCoord(v int) string {
	s := fmt.Sprintf("%d", v)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return sign + b.String()
}

// niceTicks returns up to n round-number tick positions within [start, end].
func niceTicks(start, end, n int) []int {
	span := end - start
	if span <= 0 || n < 1 {
		return nil
	}

	raw := float64(span) / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))

	step := mag
	for _, mult := range []float64{1, 2, 5, 10} {
		if mag*mult >= raw {
			step = mag * mult
			break
		}
	}

	istep := int(step)
	if istep < 1 {
		istep = 1
	}

	out := make([]int, 0, n+1)
	for tick := ((start + istep - 1) / istep) * istep; tick <= end; tick += istep {
		out = append(out, tick)
	}

	return out
}

func drawIdeogram(ctx *canvas.Context, p panel, tr *track.Track, fam *canvas.FontFamily, fontPt float64) error {
	chromLen := 0
	if tr.Assembly != "" {
		if n, err := cytoband.ChromLength(tr.Assembly, p.Locus.Chrom()); err == nil {
			chromLen = n
		}
	}

	bands := cytoband.ForChrom(tr.Bands, p.Locus.Chrom())
	for _, band := range bands {
		if band.End > chromLen {
			chromLen = band.End
		}
	}
	if chromLen == 0 {
		return fmt.Errorf("ideogram: no assembly lookup and no bands for %s", p.Locus.Chrom())
	}

	barH := p.H * 0.45
	if barH > 4 {
		barH = 4
	}
	barY := p.Y + (p.H-barH)/2

	// Whole-chromosome scale, unlike the other tracks.
	xAt := func(pos int) float64 {
		return p.X + float64(pos)/float64(chromLen)*p.W
	}

	for _, band := range bands {
		x0, x1 := xAt(band.Start), xAt(band.End)

		ctx.SetFillColor(stainColor(band.Stain))
		ctx.SetStrokeColor(canvas.Transparent)
		ctx.DrawPath(x0, barY, canvas.Rectangle(x1-x0, barH))
	}

	// Chromosome outline on top of the band fills.
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 255})
	ctx.SetStrokeWidth(0.25)
	ctx.DrawPath(p.X, barY, canvas.Rectangle(p.W, barH))

	// Red marker over the visible locus.
	marker := parseColor(tr.Display.EdgeColor, color.RGBA{228, 26, 28, 255})
	mx0, mx1 := xAt(p.Locus.Start()), xAt(p.Locus.End())
	if mx1-mx0 < 0.5 {
		mx1 = mx0 + 0.5
	}
	ctx.SetStrokeColor(marker)
	ctx.SetStrokeWidth(0.5)
	ctx.DrawPath(mx0, barY-0.6, canvas.Rectangle(mx1-mx0, barH+1.2))

	label := tr.Display.Label
	if label == "" {
		label = p.Locus.Chrom()
	}
	drawLabel(ctx, fam, fontPt, color.RGBA{0, 0, 0, 255}, 1, barY+barH, label)

	return nil
}

func drawAxis(ctx *canvas.Context, p panel, axisColor color.RGBA, fam *canvas.FontFamily, fontPt float64) {
	baseY := p.Y + p.H*0.4

	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(axisColor)
	ctx.SetStrokeWidth(0.3)

	line := &canvas.Path{}
	line.MoveTo(p.X, baseY)
	line.LineTo(p.X+p.W, baseY)
	ctx.DrawPath(0, 0, line)

	for _, tick := range niceTicks(p.Locus.Start(), p.Locus.End(), 6) {
		x := p.xAt(tick)

		t := &canvas.Path{}
		t.MoveTo(x, baseY)
		t.LineTo(x, baseY+1.2)
		ctx.DrawPath(0, 0, t)

		drawLabel(ctx, fam, fontPt*0.85, axisColor, x+0.4, baseY+p.H*0.45, formatCoord(tick))
	}
}

func drawAnnotation(ctx *canvas.Context, p panel, tr *track.Track, fam *canvas.FontFamily, fontPt float64) {
	fill := parseColor(tr.Display.FillColor, color.RGBA{55, 126, 184, 255})

	boxH := p.H * 0.35
	boxY := p.Y + (p.H-boxH)/2

	ctx.SetFillColor(fill)
	ctx.SetStrokeColor(canvas.Transparent)

	for _, peak := range tr.Peaks {
		if !p.Locus.Overlaps(peak.Chrom, peak.Start, peak.End) {
			continue
		}

		x0 := p.xClamped(peak.Start)
		x1 := p.xClamped(peak.End)
		if x1-x0 < 0.2 {
			x1 = x0 + 0.2
		}

		ctx.DrawPath(x0, boxY, canvas.Rectangle(x1-x0, boxH))
	}

	drawLabel(ctx, fam, fontPt, color.RGBA{0, 0, 0, 255}, 1, boxY+boxH, tr.Display.Label)
}

func drawSignal(ctx *canvas.Context, p panel, tr *track.Track, fam *canvas.FontFamily, fontPt float64) error {
	values, binSize, err := tr.Signal.Binned(p.Locus)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}

	yMax := tr.Display.MaxValue
	if yMax <= 0 {
		yMax = floats.Max(values)
	}
	if yMax <= 0 {
		yMax = 1
	}

	baseY := p.Y + p.H*0.92
	plotH := p.H * 0.84

	yFor := func(v float64) float64 {
		if v > yMax {
			v = yMax
		}
		if v < 0 {
			v = 0
		}
		return baseY - v/yMax*plotH
	}

	poly := &canvas.Path{}
	poly.MoveTo(p.xClamped(p.Locus.Start()), baseY)
	for i, v := range values {
		mid := p.Locus.Start() + i*binSize + binSize/2
		poly.LineTo(p.xClamped(mid), yFor(v))
	}
	poly.LineTo(p.xClamped(p.Locus.End()), baseY)
	poly.Close()

	fill := parseColor(tr.Display.FillColor, color.RGBA{77, 175, 74, 255})
	ctx.SetFillColor(fill)
	ctx.SetStrokeColor(canvas.Transparent)
	ctx.DrawPath(0, 0, poly)

	drawLabel(ctx, fam, fontPt, color.RGBA{0, 0, 0, 255}, 1, p.Y+fontPt*0.5, tr.Display.Label)

	return nil
}

func drawInteractions(ctx *canvas.Context, p panel, tr *track.Track, fam *canvas.FontFamily, fontPt float64) {
	maxAbs := tr.Display.MaxValue
	if maxAbs <= 0 {
		for _, ia := range tr.Interactions {
			if a := math.Abs(ia.Score); a > maxAbs {
				maxAbs = a
			}
		}
	}
	if maxAbs <= 0 {
		maxAbs = 1
	}

	baseY := p.Y + p.H/2
	arcMax := p.H/2 - panelPadMM

	stroke := parseColor(tr.Display.EdgeColor, color.RGBA{152, 78, 163, 255})
	ctx.SetFillColor(canvas.Transparent)
	ctx.SetStrokeColor(stroke)
	ctx.SetStrokeWidth(0.3)

	for _, ia := range tr.Interactions {
		// Both anchors must sit on the locus chromosome to be visible.
		if ia.Chrom1 != p.Locus.Chrom() || ia.Chrom2 != p.Locus.Chrom() {
			continue
		}
		if !p.Locus.Overlaps(ia.Chrom1, ia.Start1, ia.End1) &&
			!p.Locus.Overlaps(ia.Chrom2, ia.Start2, ia.End2) {
			continue
		}

		x1 := p.xClamped(ia.Midpoint1())
		x2 := p.xClamped(ia.Midpoint2())

		h := math.Abs(ia.Score) / maxAbs * arcMax

		// Quadratic control point at twice the peak height; negative scores
		// arc below the baseline.
		ctrlY := baseY - 2*h
		if ia.Score < 0 {
			ctrlY = baseY + 2*h
		}

		arc := &canvas.Path{}
		arc.MoveTo(x1, baseY)
		arc.QuadTo((x1+x2)/2, ctrlY, x2, baseY)
		ctx.DrawPath(0, 0, arc)
	}

	drawLabel(ctx, fam, fontPt, color.RGBA{0, 0, 0, 255}, 1, p.Y+fontPt*0.5, tr.Display.Label)
}
