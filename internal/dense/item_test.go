package dense

import (
	"reflect"
	"testing"

	"introsim-core/feature"
	"introsim-core/tract"
	"introsim-core/window"
)

func matrixFixture() feature.Genotypes {
	return feature.Genotypes{
		Positions: []int{100, 200, 300},
		Alleles: [][]uint8{
			{0, 1},
			{1, 1},
			{0, 0},
		},
	}
}

func TestBuildPadsShortWindows(t *testing.T) {
	g := matrixFixture()
	tracts := []tract.Tract{{Chrom: "1", Start: 150, End: 250, Sample: "ind_1_1"}}
	labels := []window.Label{{Start: 0, End: 250, Sample: "ind_1_1", Label: 1}}

	items := Build(7, g, tracts, labels, 4)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	it := items[0]
	if it.Replicate != 7 || it.Sample != "ind_1_1" || it.Label != 1 {
		t.Fatalf("item identity: %+v", it)
	}
	if want := []int{100, 200, -1, -1}; !reflect.DeepEqual(it.Positions, want) {
		t.Fatalf("positions = %v, want %v", it.Positions, want)
	}
	// Site-major alleles for the two real sites, zero padding after.
	if want := []uint8{0, 1, 1, 1, 0, 0, 0, 0}; !reflect.DeepEqual(it.Genotypes, want) {
		t.Fatalf("genotypes = %v, want %v", it.Genotypes, want)
	}
	// Only site 200 lies inside the tract [150, 250).
	if want := []uint8{0, 1, 0, 0}; !reflect.DeepEqual(it.Mask, want) {
		t.Fatalf("mask = %v, want %v", it.Mask, want)
	}
}

func TestBuildTrimsWideWindows(t *testing.T) {
	g := matrixFixture()
	labels := []window.Label{{Start: 0, End: 400, Sample: "ind_1_1", Label: 0}}

	items := Build(0, g, nil, labels, 2)
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	it := items[0]
	if want := []int{100, 200}; !reflect.DeepEqual(it.Positions, want) {
		t.Fatalf("positions = %v, want %v", it.Positions, want)
	}
	if want := []uint8{0, 0}; !reflect.DeepEqual(it.Mask, want) {
		t.Fatalf("mask = %v, want %v", it.Mask, want)
	}
}

func TestBuildEmitsNothingWithoutLabels(t *testing.T) {
	if items := Build(0, matrixFixture(), nil, nil, 4); len(items) != 0 {
		t.Fatalf("got %d items for zero labels", len(items))
	}
}

func TestBuildOneItemPerLabeledSample(t *testing.T) {
	g := matrixFixture()
	labels := []window.Label{
		{Start: 0, End: 400, Sample: "ind_1_1", Label: 1},
		{Start: 0, End: 400, Sample: "ind_1_2", Label: 0},
	}
	items := Build(0, g, nil, labels, 3)
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Sample == items[1].Sample {
		t.Fatal("items collapsed onto one sample")
	}
}
