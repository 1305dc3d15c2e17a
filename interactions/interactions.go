// Package interactions loads pairwise genomic links (BEDPE-like rows joining
// two anchor intervals with a name and a score) and derives per-row gene
// labels from the compound name field.
package interactions

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bioplotkit/locusplot"
)

// Interaction is one pairwise link. Gene is derived from Name at parse time.
type Interaction struct {
	Chrom1 string
	Start1 int
	End1   int
	Chrom2 string
	Start2 int
	End2   int
	Name   string
	Score  float64
	Gene   string
}

// Midpoint1 is the center of the first anchor.
func (ia Interaction) Midpoint1() int {
	return (ia.Start1 + ia.End1) / 2
}

// Midpoint2 is the center of the second anchor.
func (ia Interaction) Midpoint2() int {
	return (ia.Start2 + ia.End2) / 2
}

// Layout describes the column positions and conventions of a named source
// format. ScoreSign is a display convention of the source (validated links
// are conventionally drawn below the baseline, so their layout carries -1);
// it multiplies the parsed score and is not hidden inside parsing logic.
type Layout struct {
	Delimiter     rune
	Comment       rune
	ColChrom1     int
	ColStart1     int
	ColEnd1       int
	ColChrom2     int
	ColStart2     int
	ColEnd2       int
	ColName       int
	ColScore      int
	GeneSeparator string
	ScoreSign     float64
}

var Layouts = map[string]Layout{
	// Predicted regulatory links, e.g. ABC-model output rendered as BEDPE
	// with gene$element compound names.
	"PREDICTED": {
		Delimiter:     '\t',
		Comment:       '#',
		ColChrom1:     0,
		ColStart1:     1,
		ColEnd1:       2,
		ColChrom2:     3,
		ColStart2:     4,
		ColEnd2:       5,
		ColName:       6,
		ColScore:      7,
		GeneSeparator: "$",
		ScoreSign:     1,
	},

	// Experimentally validated links. Same column shape, but scores are
	// sign-inverted so the renderer arcs them below the baseline.
	"VALIDATED": {
		Delimiter:     '\t',
		Comment:       '#',
		ColChrom1:     0,
		ColStart1:     1,
		ColEnd1:       2,
		ColChrom2:     3,
		ColStart2:     4,
		ColEnd2:       5,
		ColName:       6,
		ColScore:      7,
		GeneSeparator: "$",
		ScoreSign:     -1,
	},
}

func LayoutNames() string {
	names := make([]string, 0, len(Layouts))
	for m := range Layouts {
		names = append(names, m)
	}

	return strings.Join(names, ", ")
}

type Parser struct {
	Layout Layout
}

// New returns a parser for the named layout.
func New(layoutName string) (Parser, error) {
	layout, exists := Layouts[layoutName]
	if !exists {
		return Parser{}, fmt.Errorf("layout %q is not recognized. Valid layouts include: %s", layoutName, LayoutNames())
	}

	return Parser{Layout: layout}, nil
}

func (p Parser) maxCol() int {
	max := 0
	for _, col := range []int{
		p.Layout.ColChrom1, p.Layout.ColStart1, p.Layout.ColEnd1,
		p.Layout.ColChrom2, p.Layout.ColStart2, p.Layout.ColEnd2,
		p.Layout.ColName, p.Layout.ColScore,
	} {
		if col > max {
			max = col
		}
	}

	return max
}

// ParseRow converts one delimited row into an Interaction, deriving the gene
// label as the prefix of the name field before the layout's separator.
func (p Parser) ParseRow(row []string) (Interaction, error) {
	if x, need := len(row), p.maxCol()+1; x < need {
		return Interaction{}, fmt.Errorf("had %d fields, expected at least %d", x, need)
	}

	start1, err := strconv.Atoi(row[p.Layout.ColStart1])
	if err != nil {
		return Interaction{}, err
	}
	end1, err := strconv.Atoi(row[p.Layout.ColEnd1])
	if err != nil {
		return Interaction{}, err
	}
	start2, err := strconv.Atoi(row[p.Layout.ColStart2])
	if err != nil {
		return Interaction{}, err
	}
	end2, err := strconv.Atoi(row[p.Layout.ColEnd2])
	if err != nil {
		return Interaction{}, err
	}

	score, err := strconv.ParseFloat(row[p.Layout.ColScore], 64)
	if err != nil {
		return Interaction{}, err
	}

	name := row[p.Layout.ColName]
	gene := name
	if p.Layout.GeneSeparator != "" {
		gene = strings.SplitN(name, p.Layout.GeneSeparator, 2)[0]
	}
	if gene == "" {
		return Interaction{}, fmt.Errorf("name %q yields an empty gene label", name)
	}

	return Interaction{
		Chrom1: row[p.Layout.ColChrom1],
		Start1: start1,
		End1:   end1,
		Chrom2: row[p.Layout.ColChrom2],
		Start2: start2,
		End2:   end2,
		Name:   name,
		Score:  p.Layout.ScoreSign * score,
		Gene:   gene,
	}, nil
}

// Read parses every row in r using the parser's layout.
func (p Parser) Read(r io.Reader) ([]Interaction, error) {
	cr := csv.NewReader(r)
	cr.Comma = p.Layout.Delimiter
	cr.Comment = p.Layout.Comment
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	out := make([]Interaction, 0)

	for i := 0; ; i++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, &locusplot.FormatError{Line: i, Err: err}
		}

		ia, err := p.ParseRow(row)
		if err != nil {
			return nil, &locusplot.FormatError{Line: i, Err: err}
		}

		out = append(out, ia)
	}

	return out, nil
}

// Load reads an interaction file from a URL or local path using the named
// layout.
func Load(pathOrURL, layoutName string) ([]Interaction, error) {
	return LoadTimeout(pathOrURL, layoutName, locusplot.DefaultFetchTimeout)
}

// LoadTimeout is Load with an explicit fetch timeout.
func LoadTimeout(pathOrURL, layoutName string, timeout time.Duration) ([]Interaction, error) {
	p, err := New(layoutName)
	if err != nil {
		return nil, err
	}

	fileBytes, err := locusplot.OpenFileOrURL(pathOrURL, timeout)
	if err != nil {
		return nil, err
	}

	out, err := p.Read(bytes.NewReader(fileBytes))
	if err != nil {
		if fe, ok := err.(*locusplot.FormatError); ok {
			fe.File = pathOrURL
		}
		return nil, err
	}

	return out, nil
}

// FilterByGene retains only interactions whose derived gene label equals
// gene. The result is always a subset of the input.
func FilterByGene(list []Interaction, gene string) []Interaction {
	out := make([]Interaction, 0, len(list))

	for _, ia := range list {
		if ia.Gene == gene {
			out = append(out, ia)
		}
	}

	return out
}
