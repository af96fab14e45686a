// internal/clibase/usage.go
package clibase

import (
	"flag"
	"fmt"
	"io"

	"introsim/internal/version"
)

// UsageCommon installs a shared Usage() handler on fs.
// extra prints tool-specific sections (usage examples, dense-only flags).
func UsageCommon(fs *flag.FlagSet, name string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s - labeled introgression training data\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		if extra != nil {
			extra(out, def)
		}

		fmt.Fprintln(out, "\nPopulations:")
		fmt.Fprintf(out, "      --nref int              Reference individuals [%s]\n", def("nref"))
		fmt.Fprintf(out, "      --ntgt int              Target individuals [%s]\n", def("ntgt"))
		fmt.Fprintf(out, "      --ref-id string         Reference population name [%s]\n", def("ref-id"))
		fmt.Fprintf(out, "      --tgt-id string         Target population name [%s]\n", def("tgt-id"))
		fmt.Fprintf(out, "      --src-id string         Source (donor) population name [%s]\n", def("src-id"))
		fmt.Fprintf(out, "      --ploidy int            Haplotypes per individual [%s]\n", def("ploidy"))
		fmt.Fprintf(out, "      --phased                Per-haplotype rather than per-individual records [%s]\n", def("phased"))

		fmt.Fprintln(out, "\nSimulation:")
		fmt.Fprintf(out, "      --seq-len int           Sequence length in bp [%s]\n", def("seq-len"))
		fmt.Fprintf(out, "      --mut-rate float        Per-bp mutation rate [%s]\n", def("mut-rate"))
		fmt.Fprintf(out, "      --rec-rate float        Per-bp recombination rate [%s]\n", def("rec-rate"))
		fmt.Fprintf(out, "      --intro-pulses float    Expected introgression pulses per replicate [%s]\n", def("intro-pulses"))
		fmt.Fprintf(out, "      --intro-mean-len int    Mean introgressed tract length in bp [%s]\n", def("intro-mean-len"))

		fmt.Fprintln(out, "\nLabeling:")
		fmt.Fprintf(out, "      --win-len int           Label window length in bp (0 = whole sequence) [%s]\n", def("win-len"))
		fmt.Fprintf(out, "      --intro-prop float      Min coverage fraction for label 1 [%s]\n", def("intro-prop"))
		fmt.Fprintf(out, "      --non-intro-prop float  Max coverage fraction for label 0 [%s]\n", def("non-intro-prop"))
		fmt.Fprintf(out, "      --feature-config string YAML feature list (empty = default set) [%s]\n", def("feature-config"))

		fmt.Fprintln(out, "\nScheduling:")
		fmt.Fprintf(out, "      --nfeature int          Total records to collect [%s]\n", def("nfeature"))
		fmt.Fprintf(out, "      --nrep int              Replicates per batch [%s]\n", def("nrep"))
		fmt.Fprintf(out, "      --workers int           Parallel workers (0 = all CPUs) [%s]\n", def("workers"))
		fmt.Fprintf(out, "      --seed int              Base random seed [%s]\n", def("seed"))
		fmt.Fprintf(out, "      --force-balanced        Enforce exact class balance [%s]\n", def("force-balanced"))
		fmt.Fprintf(out, "      --keep-sim-data         Retain per-replicate artifacts [%s]\n", def("keep-sim-data"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "      --output-prefix string  Output file prefix [%s]\n", def("output-prefix"))
		fmt.Fprintf(out, "      --output-dir string     Output directory [%s]\n", def("output-dir"))

		fmt.Fprintln(out, "\nMisc:")
		fmt.Fprintf(out, "  -q, --quiet                 Suppress progress messages [%s]\n", def("quiet"))
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help message")
	}
}
