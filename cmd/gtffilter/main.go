// gtffilter fetches a GTF and flattens the rows matching the requested
// feature and gene types to a tsv of exon-level records.
package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/bioplotkit/locusplot/gtf"
)

var STDOUT = bufio.NewWriterSize(os.Stdout, 4096)

func main() {
	defer STDOUT.Flush()

	var filename, features, geneTypes string
	flag.StringVar(&filename, "file", "", "Path or URL of the gtf file to filter and flatten.")
	flag.StringVar(&features, "features", "exon", "Comma-delimited feature types to keep.")
	flag.StringVar(&geneTypes, "genetypes", "protein_coding,lincRNA", "Comma-delimited gene types to keep. Empty keeps all.")
	flag.Parse()

	if filename == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	filter := gtf.Filter{}
	if features != "" {
		filter.Features = gtf.Types(strings.Split(features, ",")...)
	}
	if geneTypes != "" {
		filter.GeneTypes = gtf.Types(strings.Split(geneTypes, ",")...)
	}

	log.Println("Loading", filename)
	records, err := gtf.Load(filename, filter)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Kept", len(records), "records")

	if err := printRecords(records); err != nil {
		log.Fatalln(err)
	}
}

func printRecords(records []gtf.Record) error {
	w := csv.NewWriter(STDOUT)
	w.Comma = '\t'
	defer w.Flush()

	if err := w.Write([]string{"seqname", "start", "end", "strand", "feature", "gene_id", "gene_name", "gene_type", "transcript_id", "transcript_type"}); err != nil {
		return err
	}

	for _, rec := range records {
		if err := w.Write([]string{
			rec.Seqname,
			strconv.Itoa(rec.Start),
			strconv.Itoa(rec.End),
			rec.Strand,
			rec.Feature,
			rec.GeneID,
			rec.GeneName,
			rec.GeneType,
			rec.TranscriptID,
			rec.TranscriptType,
		}); err != nil {
			return err
		}
	}

	return nil
}
