package render

import (
	"testing"

	"github.com/bioplotkit/locusplot/gtf"
	"github.com/bioplotkit/locusplot/signal"
	"github.com/bioplotkit/locusplot/track"
)

func testGeneRecords() []gtf.Record {
	return []gtf.Record{
		{Seqname: "chr7", Feature: "exon", Start: 106685094, End: 106685550, Strand: "+", GeneID: "ENSG1", GeneName: "CDK6", TranscriptID: "ENST1"},
		{Seqname: "chr7", Feature: "exon", Start: 106903844, End: 106906499, Strand: "+", GeneID: "ENSG1", GeneName: "CDK6", TranscriptID: "ENST1"},
		{Seqname: "chr7", Feature: "exon", Start: 106685200, End: 106685700, Strand: "+", GeneID: "ENSG1", GeneName: "CDK6", TranscriptID: "ENST2"},
		{Seqname: "chr7", Feature: "exon", Start: 106750500, End: 106751200, Strand: "-", GeneID: "ENSG2", GeneName: "PRKAR2B", TranscriptID: "ENST3"},
	}
}

func trackWithMissingSignal() *track.Track {
	return track.NewSignal(&signal.Ref{Path: "/nonexistent/coverage.bw"}, track.Display{})
}

func TestBuildModelsByTranscript(t *testing.T) {
	models := buildModels(testGeneRecords(), false)

	if len(models) != 3 {
		t.Fatal("Expected 3 transcript models, got", len(models))
	}

	// Sorted by start: ENST1 and ENST2 share a start region; ENST3 follows.
	if models[2].Name != "PRKAR2B" {
		t.Error("Mismatch:", models[2].Name)
	}
}

func TestBuildModelsCollapsed(t *testing.T) {
	models := buildModels(testGeneRecords(), true)

	if len(models) != 2 {
		t.Fatal("Expected 2 collapsed gene models, got", len(models))
	}

	var cdk6 geneModel
	for _, m := range models {
		if m.Name == "CDK6" {
			cdk6 = m
		}
	}

	// The two overlapping first exons of ENST1/ENST2 merge into one.
	if len(cdk6.Exons) != 2 {
		t.Fatalf("Expected 2 merged exons, got %+v", cdk6.Exons)
	}
	if cdk6.Exons[0].Start != 106685094 || cdk6.Exons[0].End != 106685700 {
		t.Errorf("Mismatch: %+v", cdk6.Exons[0])
	}
	if cdk6.Start != 106685094 || cdk6.End != 106906499 {
		t.Errorf("Bad model span: %+v", cdk6)
	}
}

func TestMergeIntervals(t *testing.T) {
	merged := mergeIntervals([]interval{
		{10, 20},
		{15, 30},
		{31, 40}, // adjacent, merges
		{100, 110},
	})

	if len(merged) != 2 {
		t.Fatalf("Expected 2 intervals, got %+v", merged)
	}
	if merged[0].Start != 10 || merged[0].End != 40 {
		t.Errorf("Mismatch: %+v", merged[0])
	}
	if merged[1].Start != 100 || merged[1].End != 110 {
		t.Errorf("Mismatch: %+v", merged[1])
	}
}

func TestPackLanes(t *testing.T) {
	models := []geneModel{
		{Name: "a", Start: 0, End: 100},
		{Name: "b", Start: 50, End: 200},
		{Name: "c", Start: 500, End: 600},
	}

	lanes, count := packLanes(models, 10)

	if count != 2 {
		t.Fatal("Expected 2 lanes, got", count)
	}
	if lanes[0] != 0 || lanes[1] != 1 {
		t.Errorf("Overlapping models share a lane: %+v", lanes)
	}
	if lanes[2] != 0 {
		t.Error("Distant model should reuse lane 0, got", lanes[2])
	}
}
