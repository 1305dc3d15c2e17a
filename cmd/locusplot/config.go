package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/carbocation/pfx"

	"github.com/bioplotkit/locusplot"
)

// RunConfig is the JSON run description: the locus, page geometry, output
// target, and the path to the TSV track manifest.
type RunConfig struct {
	ConfigPath string `json:"-"`

	Locus    string `json:"locus"`
	Assembly string `json:"assembly"`
	Manifest string `json:"manifest"`
	Output   string `json:"output"`
	Title    string `json:"title"`

	WidthMM    float64 `json:"width_mm"`
	HeightMM   float64 `json:"height_mm"`
	Background string  `json:"background"`
	AxisColor  string  `json:"axis_color"`
	FontPath   string  `json:"font_path"`
	FontSizePt float64 `json:"font_size_pt"`

	// Gene restricts interaction tracks to links labeled with this gene.
	Gene string `json:"gene"`

	// FeatureTypes and GeneTypes restrict annotation loading; the defaults
	// keep protein-coding and lincRNA exons.
	FeatureTypes []string `json:"feature_types"`
	GeneTypes    []string `json:"gene_types"`

	CacheDir string `json:"cache_dir"`
}

func ParseRunConfigFromPath(path string) (RunConfig, error) {
	out := RunConfig{ConfigPath: path}

	f, err := os.Open(locusplot.ExpandHome(path))
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&out); err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
		}

		return out, pfx.Err(err)
	}

	if out.Assembly == "" {
		out.Assembly = "grch37"
	}
	if len(out.FeatureTypes) == 0 {
		out.FeatureTypes = []string{"exon"}
	}
	if len(out.GeneTypes) == 0 {
		out.GeneTypes = []string{"protein_coding", "lincRNA"}
	}

	// Interpret ~ if present
	out.Manifest = locusplot.ExpandHome(out.Manifest)
	out.Output = locusplot.ExpandHome(out.Output)
	out.FontPath = locusplot.ExpandHome(out.FontPath)
	out.CacheDir = locusplot.ExpandHome(out.CacheDir)

	return out, nil
}
