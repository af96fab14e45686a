// internal/replicate/record.go
package replicate

import "sort"

// Record is one labeled (sample, window) training example. Values follow
// the configured feature column order.
type Record struct {
	Replicate  int
	Chromosome string
	Start, End int
	Sample     string
	Label      int
	Values     []float64
}

// Less defines the stable output order: (Replicate, Chromosome, Start, End,
// Sample).
func Less(a, b Record) bool {
	if a.Replicate != b.Replicate {
		return a.Replicate < b.Replicate
	}
	if a.Chromosome != b.Chromosome {
		return a.Chromosome < b.Chromosome
	}
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	if a.End != b.End {
		return a.End < b.End
	}
	return a.Sample < b.Sample
}

// Sort orders records by Less.
func Sort(recs []Record) {
	sort.Slice(recs, func(i, j int) bool { return Less(recs[i], recs[j]) })
}
