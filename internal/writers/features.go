// internal/writers/features.go
package writers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"introsim/internal/replicate"
)

// FeatureHeader builds the feature-table header row: the fixed identity
// columns followed by the configured feature names in order.
func FeatureHeader(features []string) string {
	cols := append([]string{"Replicate", "Chromosome", "Start", "End", "Sample", "Label"}, features...)
	return strings.Join(cols, "\t")
}

// WriteFeatures writes the final labeled feature table as TSV. Records are
// written in the order given; ordering policy belongs to the scheduler.
func WriteFeatures(w io.Writer, features []string, recs []replicate.Record) error {
	if _, err := fmt.Fprintln(w, FeatureHeader(features)); err != nil {
		return err
	}
	for _, r := range recs {
		if err := writeFeatureRow(w, features, r); err != nil {
			return err
		}
	}
	return nil
}

// StartFeatureWriter spins up a writer goroutine for labeled records. The
// error channel yields exactly one value after the input channel closes.
func StartFeatureWriter(out io.Writer, features []string, bufSize int) (chan<- replicate.Record, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan replicate.Record, bufSize)
	errCh := make(chan error, 1)

	go func() {
		var err error
		if _, err = fmt.Fprintln(out, FeatureHeader(features)); err == nil {
			for r := range in {
				if err = writeFeatureRow(out, features, r); err != nil {
					break
				}
			}
		}
		for range in {
		}
		errCh <- err
	}()

	return in, errCh
}

func writeFeatureRow(w io.Writer, features []string, r replicate.Record) error {
	if len(r.Values) != len(features) {
		return fmt.Errorf("record %d/%s has %d values for %d feature columns",
			r.Replicate, r.Sample, len(r.Values), len(features))
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d\t%s\t%d\t%d\t%s\t%d", r.Replicate, r.Chromosome, r.Start, r.End, r.Sample, r.Label)
	for _, v := range r.Values {
		sb.WriteByte('\t')
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}
