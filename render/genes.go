package render

import (
	"image/color"
	"sort"

	"github.com/tdewolff/canvas"

	"github.com/bioplotkit/locusplot/gtf"
	"github.com/bioplotkit/locusplot/track"
)

type interval struct {
	Start int
	End   int
}

// geneModel is one drawable row: a transcript, or a whole gene when
// transcripts are collapsed into a representative shape.
type geneModel struct {
	Name   string
	Chrom  string
	Strand string
	Start  int
	End    int
	Exons  []interval
}

// buildModels groups exon records into drawable models. With collapse, all
// transcripts of a gene merge into one row whose exons are the union of the
// transcript exons.
func buildModels(records []gtf.Record, collapse bool) []geneModel {
	grouped := make(map[string]*geneModel)

	for _, rec := range records {
		key := rec.TranscriptID
		name := rec.GeneName
		if collapse {
			key = rec.GeneID
		}
		if key == "" {
			key = rec.GeneName
		}
		if name == "" {
			name = key
		}

		m, exists := grouped[key]
		if !exists {
			m = &geneModel{Name: name, Chrom: rec.Seqname, Strand: rec.Strand, Start: rec.Start, End: rec.End}
			grouped[key] = m
		}

		if rec.Start < m.Start {
			m.Start = rec.Start
		}
		if rec.End > m.End {
			m.End = rec.End
		}
		m.Exons = append(m.Exons, interval{Start: rec.Start, End: rec.End})
	}

	out := make([]geneModel, 0, len(grouped))
	for _, m := range grouped {
		m.Exons = mergeIntervals(m.Exons)
		out = append(out, *m)
	}

	// Deterministic draw order regardless of map iteration.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Name < out[j].Name
	})

	return out
}

// mergeIntervals unions overlapping or adjacent intervals.
func mergeIntervals(in []interval) []interval {
	if len(in) < 2 {
		return in
	}

	sort.Slice(in, func(i, j int) bool {
		if in[i].Start != in[j].Start {
			return in[i].Start < in[j].Start
		}
		return in[i].End < in[j].End
	})

	out := make([]interval, 0, len(in))
	current := in[0]

	for _, iv := range in[1:] {
		if iv.Start <= current.End+1 {
			if iv.End > current.End {
				current.End = iv.End
			}
			continue
		}
		out = append(out, current)
		current = iv
	}

	return append(out, current)
}

// packLanes assigns each model to the first lane whose prior occupant ends
// before it starts, returning per-model lane indices and the lane count.
// Models must already be sorted by start.
func packLanes(models []geneModel, gap int) ([]int, int) {
	laneEnds := make([]int, 0)
	assignments := make([]int, len(models))

	for i, m := range models {
		placed := false
		for lane, end := range laneEnds {
			if m.Start > end+gap {
				laneEnds[lane] = m.End
				assignments[i] = lane
				placed = true
				break
			}
		}

		if !placed {
			laneEnds = append(laneEnds, m.End)
			assignments[i] = len(laneEnds) - 1
		}
	}

	return assignments, len(laneEnds)
}

func drawGeneModel(ctx *canvas.Context, p panel, tr *track.Track, fam *canvas.FontFamily, fontPt float64) error {
	models := buildModels(tr.Genes, tr.Display.Collapse)

	visible := make([]geneModel, 0, len(models))
	for _, m := range models {
		if p.Locus.Overlaps(m.Chrom, m.Start, m.End) {
			visible = append(visible, m)
		}
	}
	if len(visible) == 0 {
		return nil
	}

	// The gap reserves horizontal room for the gene label next to each model.
	lanes, laneCount := packLanes(visible, p.Locus.Len()/20)
	laneH := p.H / float64(laneCount)

	exonH := laneH * 0.45
	if exonH > 2.5 {
		exonH = 2.5
	}

	fill := parseColor(tr.Display.FillColor, color.RGBA{31, 120, 180, 255})
	edge := parseColor(tr.Display.EdgeColor, color.RGBA{31, 120, 180, 255})

	for i, m := range visible {
		midY := p.Y + (float64(lanes[i])+0.5)*laneH

		x0 := p.xClamped(m.Start)
		x1 := p.xClamped(m.End)

		// Intron backbone.
		ctx.SetFillColor(canvas.Transparent)
		ctx.SetStrokeColor(edge)
		ctx.SetStrokeWidth(0.2)
		backbone := &canvas.Path{}
		backbone.MoveTo(x0, midY)
		backbone.LineTo(x1, midY)
		ctx.DrawPath(0, 0, backbone)

		ctx.SetFillColor(fill)
		ctx.SetStrokeColor(canvas.Transparent)
		for _, exon := range m.Exons {
			if !p.Locus.Overlaps(m.Chrom, exon.Start, exon.End) {
				continue
			}

			ex0 := p.xClamped(exon.Start)
			ex1 := p.xClamped(exon.End)
			if ex1-ex0 < 0.2 {
				ex1 = ex0 + 0.2
			}

			ctx.DrawPath(ex0, midY-exonH/2, canvas.Rectangle(ex1-ex0, exonH))
		}

		name := m.Name
		if m.Strand == "+" {
			name += " >"
		} else if m.Strand == "-" {
			name = "< " + name
		}
		drawLabel(ctx, fam, fontPt*0.85, color.RGBA{0, 0, 0, 255}, x1+0.8, midY+exonH/2, name)
	}

	return nil
}
