// core/tract/bed.go
package tract

import (
	"fmt"
	"io"
)

// WriteBED writes merged tracts as a tab-separated table with a
// Chromosome/Start/End/Sample header. An empty tract set writes nothing at
// all — zero bytes, no header — because downstream interval-file consumers
// treat an empty file as "no tracts".
func WriteBED(w io.Writer, tracts []Tract) error {
	if len(tracts) == 0 {
		return nil
	}
	if _, err := fmt.Fprint(w, "Chromosome\tStart\tEnd\tSample\n"); err != nil {
		return err
	}
	for _, t := range tracts {
		if _, err := fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", t.Chrom, t.Start, t.End, t.Sample); err != nil {
			return err
		}
	}
	return nil
}
