package peaks

import (
	"strings"
	"testing"

	"github.com/bioplotkit/locusplot/locus"
)

const samplePeaks = `chr7	106700000	106701500	peak_1	220
chr7	107000000	107000800	peak_2	180
chr7	108000000	108000500	peak_3	77
chr8	106700000	106701500	peak_4	150
chr7	106692000	106692877	peak_5	91
`

func TestRead(t *testing.T) {
	list, err := Read(strings.NewReader(samplePeaks))
	if err != nil {
		t.Fatal(err)
	}

	if len(list) != 5 {
		t.Fatal("Expected 5 peaks, got", len(list))
	}

	if list[0].Chrom != "chr7" || list[0].Start != 106700000 || list[0].End != 106701500 {
		t.Errorf("Mismatch: %+v", list[0])
	}
	if len(list[0].Extra) != 2 || list[0].Extra[0] != "peak_1" {
		t.Errorf("Extra columns not preserved: %+v", list[0].Extra)
	}
}

func TestReadSkipsTrackLines(t *testing.T) {
	input := "track name=peaks description=\"test\"\n# a comment\n" + samplePeaks
	list, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 5 {
		t.Error("Expected 5 peaks, got", len(list))
	}
}

func TestReadMalformed(t *testing.T) {
	if _, err := Read(strings.NewReader("chr7\tnotanumber\t100\n")); err == nil {
		t.Error("Expected an error for a non-numeric start")
	}
	if _, err := Read(strings.NewReader("chr7\t100\n")); err == nil {
		t.Error("Expected an error for a 2-field row")
	}
}

func TestOverlapping(t *testing.T) {
	list, err := Read(strings.NewReader(samplePeaks))
	if err != nil {
		t.Fatal(err)
	}

	l := locus.MakeLocus("chr7", 106692877, 107374371)
	kept := Overlapping(list, l)

	if len(kept) >= len(list) {
		t.Error("Expected a strict subset, got", len(kept), "of", len(list))
	}

	// Every retained peak overlaps the locus by at least one base, and no
	// peak outside the locus is retained.
	for _, peak := range kept {
		if !l.Overlaps(peak.Chrom, peak.Start, peak.End) {
			t.Errorf("Retained non-overlapping peak: %+v", peak)
		}
	}

	names := make(map[string]bool)
	for _, peak := range kept {
		names[peak.Extra[0]] = true
	}
	for _, want := range []string{"peak_1", "peak_2", "peak_5"} {
		if !names[want] {
			t.Error("Missing expected peak", want)
		}
	}
	for _, reject := range []string{"peak_3", "peak_4"} {
		if names[reject] {
			t.Error("Retained out-of-locus peak", reject)
		}
	}
}
