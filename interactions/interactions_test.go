package interactions

import (
	"strings"
	"testing"
)

const sampleBEDPE = `chr7	106505000	106506000	chr7	106685094	106686000	PRKAR2B$enh_1	4.5
chr7	106510000	106511000	chr7	106685094	106686000	PRKAR2B$enh_2	2.25
chr7	106400000	106401000	chr7	107000000	107001000	CDK6$enh_9	1.5
`

func TestParseRow(t *testing.T) {
	parser, err := New("PREDICTED")
	if err != nil {
		t.Fatal(err)
	}

	row := []string{"chr7", "106505000", "106506000", "chr7", "106685094", "106686000", "PRKAR2B$enh_1", "4.5"}
	ia, err := parser.ParseRow(row)
	if err != nil {
		t.Fatal(err)
	}

	if ia.Chrom1 != "chr7" ||
		ia.Start1 != 106505000 ||
		ia.End1 != 106506000 ||
		ia.Chrom2 != "chr7" ||
		ia.Start2 != 106685094 ||
		ia.End2 != 106686000 ||
		ia.Gene != "PRKAR2B" ||
		ia.Score != 4.5 {
		t.Errorf("Mismatch: %+v", ia)
	}

	if ia.Midpoint1() != 106505500 {
		t.Error("Bad anchor midpoint:", ia.Midpoint1())
	}
}

func TestValidatedLayoutInvertsScore(t *testing.T) {
	parser, err := New("VALIDATED")
	if err != nil {
		t.Fatal(err)
	}

	row := []string{"chr7", "106505000", "106506000", "chr7", "106685094", "106686000", "PRKAR2B$capture_hic", "3.0"}
	ia, err := parser.ParseRow(row)
	if err != nil {
		t.Fatal(err)
	}

	if ia.Score != -3.0 {
		t.Error("Expected sign-inverted score, got", ia.Score)
	}
	if ia.Gene != "PRKAR2B" {
		t.Error("Mismatch:", ia.Gene)
	}
}

func TestUnknownLayout(t *testing.T) {
	if _, err := New("NOPE"); err == nil {
		t.Error("Expected an error for an unknown layout")
	}
}

func TestEmptyGeneLabel(t *testing.T) {
	parser, _ := New("PREDICTED")
	row := []string{"chr7", "1", "2", "chr7", "3", "4", "$orphan", "1.0"}
	if _, err := parser.ParseRow(row); err == nil {
		t.Error("Expected an error for an empty gene label")
	}
}

func TestGeneLabelWithoutSeparator(t *testing.T) {
	parser, _ := New("PREDICTED")
	row := []string{"chr7", "1", "2", "chr7", "3", "4", "PRKAR2B", "1.0"}
	ia, err := parser.ParseRow(row)
	if err != nil {
		t.Fatal(err)
	}
	if ia.Gene != "PRKAR2B" {
		t.Error("Mismatch:", ia.Gene)
	}
}

func TestRead(t *testing.T) {
	parser, err := New("PREDICTED")
	if err != nil {
		t.Fatal(err)
	}

	list, err := parser.Read(strings.NewReader(sampleBEDPE))
	if err != nil {
		t.Fatal(err)
	}

	if len(list) != 3 {
		t.Fatal("Expected 3 interactions, got", len(list))
	}

	// Every well-formed row yields a non-empty gene label.
	for _, ia := range list {
		if ia.Gene == "" {
			t.Errorf("Empty gene label for %+v", ia)
		}
	}
}

func TestFilterByGene(t *testing.T) {
	parser, _ := New("PREDICTED")
	list, err := parser.Read(strings.NewReader(sampleBEDPE))
	if err != nil {
		t.Fatal(err)
	}

	kept := FilterByGene(list, "PRKAR2B")

	if len(kept) > len(list) {
		t.Error("Filter grew the list")
	}
	if len(kept) != 2 {
		t.Error("Expected 2 PRKAR2B interactions, got", len(kept))
	}
	for _, ia := range kept {
		if ia.Gene != "PRKAR2B" {
			t.Errorf("Retained wrong gene: %+v", ia)
		}
	}
}
