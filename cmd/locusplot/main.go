// locusplot composes a stacked genome figure for one locus from a JSON run
// config and a TSV track manifest, writing SVG or PNG.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bioplotkit/locusplot"
	"github.com/bioplotkit/locusplot/cytoband"
	"github.com/bioplotkit/locusplot/gtf"
	"github.com/bioplotkit/locusplot/interactions"
	"github.com/bioplotkit/locusplot/locus"
	"github.com/bioplotkit/locusplot/peaks"
	"github.com/bioplotkit/locusplot/render"
	"github.com/bioplotkit/locusplot/signal"
	"github.com/bioplotkit/locusplot/track"
)

func main() {
	var configPath, locusOverride, outputOverride string

	flag.StringVar(&configPath, "config", "", "Path to the JSON run config.")
	flag.StringVar(&locusOverride, "locus", "", "Override the config locus (e.g. chr7:106692877-107374371), useful for zooming without editing the config.")
	flag.StringVar(&outputOverride, "out", "", "Override the config output path (.svg or .png).")
	flag.Parse()

	if configPath == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(configPath, locusOverride, outputOverride); err != nil {
		log.Fatalln(err)
	}
}

func run(configPath, locusOverride, outputOverride string) error {
	cfg, err := ParseRunConfigFromPath(configPath)
	if err != nil {
		return err
	}

	if locusOverride != "" {
		cfg.Locus = locusOverride
	}
	if outputOverride != "" {
		cfg.Output = outputOverride
	}
	if cfg.Output == "" {
		return fmt.Errorf("no output path given")
	}

	l, err := locus.Parse(cfg.Locus)
	if err != nil {
		return err
	}

	rows, err := ReadManifest(cfg.Manifest)
	if err != nil {
		return err
	}

	tracks := make([]*track.Track, 0, len(rows))
	weights := make([]float64, 0, len(rows))

	for i, row := range rows {
		tr, err := buildTrack(cfg, row, l)
		if err != nil {
			return fmt.Errorf("manifest row %d (%s): %w", i, row.Type, err)
		}

		weight := row.Weight
		if weight == 0 {
			weight = 1
		}

		tracks = append(tracks, tr)
		weights = append(weights, weight)
	}

	rc := render.Config{
		Tracks:     tracks,
		Weights:    weights,
		Locus:      l,
		WidthMM:    cfg.WidthMM,
		HeightMM:   cfg.HeightMM,
		Background: cfg.Background,
		AxisColor:  cfg.AxisColor,
		FontPath:   cfg.FontPath,
		FontSizePt: cfg.FontSizePt,
	}

	log.Println("Rendering", len(tracks), "tracks over", l.String(), "to", cfg.Output)

	if err := rc.RenderFile(cfg.Output); err != nil {
		return err
	}

	if cfg.Title != "" {
		if err := stampTitle(cfg.Output, cfg.Title, cfg.FontPath); err != nil {
			return err
		}
	}

	return nil
}

func buildTrack(cfg RunConfig, row *ManifestRow, l locus.Locus) (*track.Track, error) {
	d := track.Display{
		Label:     row.Label,
		FillColor: row.Color,
		EdgeColor: row.Edge,
		Collapse:  row.Collapse,
		MaxValue:  row.Max,
	}

	kind, ok := track.ParseKind(row.Type)
	if !ok {
		return nil, fmt.Errorf("unknown track type %q", row.Type)
	}

	switch kind {
	case track.Ideogram:
		var bands []cytoband.Band
		if row.Path != "" {
			local, err := locusplot.CacheFetch(row.Path, cfg.CacheDir, locusplot.DefaultFetchTimeout)
			if err != nil {
				return nil, err
			}
			if bands, err = cytoband.Load(local); err != nil {
				return nil, err
			}
		}
		return track.NewIdeogram(cfg.Assembly, bands, d), nil

	case track.Axis:
		return track.NewAxis(d), nil

	case track.GeneModel:
		local, err := locusplot.CacheFetch(row.Path, cfg.CacheDir, locusplot.DefaultFetchTimeout)
		if err != nil {
			return nil, err
		}
		filter := gtf.Filter{
			Features:  gtf.Types(cfg.FeatureTypes...),
			GeneTypes: gtf.Types(cfg.GeneTypes...),
		}
		records, err := gtf.Load(local, filter)
		if err != nil {
			return nil, err
		}
		log.Println("Loaded", len(records), "annotation records from", row.Path)
		return track.NewGeneModel(records, d), nil

	case track.Annotation:
		local, err := locusplot.CacheFetch(row.Path, cfg.CacheDir, locusplot.DefaultFetchTimeout)
		if err != nil {
			return nil, err
		}
		list, err := peaks.Load(local)
		if err != nil {
			return nil, err
		}
		kept := peaks.Overlapping(list, l)
		log.Println("Kept", len(kept), "of", len(list), "peaks overlapping", l.String())
		return track.NewAnnotation(kept, d), nil

	case track.Signal:
		local, err := locusplot.CacheFetch(row.Path, cfg.CacheDir, locusplot.DefaultFetchTimeout)
		if err != nil {
			return nil, err
		}
		return track.NewSignal(&signal.Ref{Path: local, BinSize: row.BinSize}, d), nil

	case track.Interaction:
		local, err := locusplot.CacheFetch(row.Path, cfg.CacheDir, locusplot.DefaultFetchTimeout)
		if err != nil {
			return nil, err
		}
		layout := row.Layout
		if layout == "" {
			layout = "PREDICTED"
		}
		list, err := interactions.Load(local, layout)
		if err != nil {
			return nil, err
		}
		gene := row.Gene
		if gene == "" {
			gene = cfg.Gene
		}
		if gene != "" {
			list = interactions.FilterByGene(list, gene)
			log.Println("Kept", len(list), "interactions for gene", gene)
		}
		return track.NewInteractions(list, d), nil
	}

	return nil, fmt.Errorf("unhandled track type %q", row.Type)
}
