// Package track wraps loaded datasets into renderable layers. A Track is a
// tagged variant: each kind carries only the data relevant to its own
// rendering, plus a mutable Display parameter bag consumed by the renderer.
package track

import (
	"github.com/bioplotkit/locusplot/cytoband"
	"github.com/bioplotkit/locusplot/gtf"
	"github.com/bioplotkit/locusplot/interactions"
	"github.com/bioplotkit/locusplot/peaks"
	"github.com/bioplotkit/locusplot/signal"
)

type Kind int

const (
	Ideogram Kind = iota
	Axis
	GeneModel
	Annotation
	Signal
	Interaction
)

func (k Kind) String() string {
	switch k {
	case Ideogram:
		return "ideogram"
	case Axis:
		return "axis"
	case GeneModel:
		return "genes"
	case Annotation:
		return "annotation"
	case Signal:
		return "signal"
	case Interaction:
		return "interaction"
	}

	return "unknown"
}

// ParseKind maps a manifest type string to a Kind.
func ParseKind(name string) (Kind, bool) {
	for _, k := range []Kind{Ideogram, Axis, GeneModel, Annotation, Signal, Interaction} {
		if k.String() == name {
			return k, true
		}
	}

	return 0, false
}

// Display is the per-track parameter bag. Colors are hex strings like
// "#377eb8"; empty fields fall back to the renderer defaults for the track's
// kind via Merged.
type Display struct {
	Label     string
	FillColor string
	EdgeColor string

	// Collapse merges all transcript models of a gene into one shape.
	Collapse bool

	// MaxValue pins the y-extent of signal and interaction tracks. Zero
	// means autoscale to the data.
	MaxValue float64
}

// Merged fills any unset field of d from defaults, key by key, and returns
// the result. d itself is not modified.
func (d Display) Merged(defaults Display) Display {
	out := d

	if out.Label == "" {
		out.Label = defaults.Label
	}
	if out.FillColor == "" {
		out.FillColor = defaults.FillColor
	}
	if out.EdgeColor == "" {
		out.EdgeColor = defaults.EdgeColor
	}
	if out.MaxValue == 0 {
		out.MaxValue = defaults.MaxValue
	}
	if !out.Collapse {
		out.Collapse = defaults.Collapse
	}

	return out
}

// Track is consumed only by the renderer. Display may be mutated between
// successive renders; the wrapped data is treated as immutable.
type Track struct {
	Kind    Kind
	Display Display

	// Assembly names the genome build for ideogram outlines (grch37/grch38).
	Assembly string

	Bands        []cytoband.Band
	Genes        []gtf.Record
	Peaks        []peaks.Peak
	Interactions []interactions.Interaction
	Signal       *signal.Ref
}

func NewIdeogram(assembly string, bands []cytoband.Band, d Display) *Track {
	return &Track{Kind: Ideogram, Display: d, Assembly: assembly, Bands: bands}
}

func NewAxis(d Display) *Track {
	return &Track{Kind: Axis, Display: d}
}

func NewGeneModel(records []gtf.Record, d Display) *Track {
	return &Track{Kind: GeneModel, Display: d, Genes: records}
}

func NewAnnotation(list []peaks.Peak, d Display) *Track {
	return &Track{Kind: Annotation, Display: d, Peaks: list}
}

func NewSignal(ref *signal.Ref, d Display) *Track {
	return &Track{Kind: Signal, Display: d, Signal: ref}
}

func NewInteractions(list []interactions.Interaction, d Display) *Track {
	return &Track{Kind: Interaction, Display: d, Interactions: list}
}
