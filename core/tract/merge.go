// core/tract/merge.go
package tract

import "sort"

// Merge coalesces raw tract fragments into a minimal disjoint set per
// sample: fragments that touch or overlap become one interval. The result
// is sorted by (Sample, Start, End).
func Merge(tracts []Tract) []Tract {
	if len(tracts) == 0 {
		return nil
	}
	sorted := make([]Tract, len(tracts))
	copy(sorted, tracts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Sample != sorted[j].Sample {
			return sorted[i].Sample < sorted[j].Sample
		}
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	out := make([]Tract, 0, len(sorted))
	cur := sorted[0]
	for _, t := range sorted[1:] {
		if t.Sample == cur.Sample && t.Start <= cur.End {
			if t.End > cur.End {
				cur.End = t.End
			}
			continue
		}
		out = append(out, cur)
		cur = t
	}
	return append(out, cur)
}

// Coverage sums the overlap between [start, end) and the given tracts.
// Tracts are assumed merged (disjoint per sample).
func Coverage(tracts []Tract, start, end int) int {
	covered := 0
	for _, t := range tracts {
		lo, hi := t.Start, t.End
		if lo < start {
			lo = start
		}
		if hi > end {
			hi = end
		}
		if hi > lo {
			covered += hi - lo
		}
	}
	return covered
}

// BySample groups merged tracts by sample identifier.
func BySample(tracts []Tract) map[string][]Tract {
	m := make(map[string][]Tract)
	for _, t := range tracts {
		m[t.Sample] = append(m[t.Sample], t)
	}
	return m
}
