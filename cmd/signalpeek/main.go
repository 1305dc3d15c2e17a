// signalpeek charts binned bigWig coverage over a locus to a PNG, for
// eyeballing a signal file before composing a full figure.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/bioplotkit/locusplot/locus"
	"github.com/bioplotkit/locusplot/signal"
)

func main() {
	var bigwig, locusStr, output string
	var binSize int
	var yMin, yMax, clamp float64

	flag.StringVar(&bigwig, "bigwig", "", "Path to the bigWig coverage file.")
	flag.StringVar(&locusStr, "locus", "", "Locus to chart (e.g. chr7:106692877-107374371).")
	flag.StringVar(&output, "out", "", "Output PNG path.")
	flag.IntVar(&binSize, "bin", 0, "Bin size in bases. 0 chooses automatically.")
	flag.Float64Var(&yMin, "ymin", 0, "Fixed y-axis minimum. Leave ymin==ymax for autoscale.")
	flag.Float64Var(&yMax, "ymax", 0, "Fixed y-axis maximum. Leave ymin==ymax for autoscale.")
	flag.Float64Var(&clamp, "clamp", 0, "Clamp values at this percentile (0 disables).")
	flag.Parse()

	if bigwig == "" || locusStr == "" || output == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	l, err := locus.Parse(locusStr)
	if err != nil {
		log.Fatalln(err)
	}

	ref := signal.Ref{Path: bigwig, BinSize: binSize, ClampPercentile: clamp}
	if err := ref.Resolve(); err != nil {
		log.Fatalln(err)
	}

	f, err := os.Create(output)
	if err != nil {
		log.Fatalln(err)
	}
	defer f.Close()

	if err := signal.QuickLook(ref, l, yMin, yMax, f); err != nil {
		log.Fatalln(err)
	}

	log.Println("Wrote", output)
}
