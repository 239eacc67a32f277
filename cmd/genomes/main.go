// Command genomes decodes the sample code shown in the HUD and prints the
// genome set it describes. With -snapshot it prints every blob of a saved
// population instead.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/pthm-cable/blobs/neural"
	"github.com/pthm-cable/blobs/telemetry"
)

func main() {
	snapshotPath := flag.String("snapshot", "", "Population snapshot JSON to print instead of sample codes")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: genomes <sample-code>...\n       genomes -snapshot population_<gen>_<phase>.json\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	if *snapshotPath != "" {
		if err := printSnapshotFile(os.Stdout, *snapshotPath); err != nil {
			slog.Error("failed to print snapshot", "path", *snapshotPath, "error", err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	failed := false
	for _, code := range flag.Args() {
		set, err := neural.ParseSampleCode(code)
		if err != nil {
			slog.Error("invalid sample code", "code", code, "error", err)
			failed = true
			continue
		}
		if err := printGenomes(os.Stdout, code, &set); err != nil {
			slog.Error("failed to print genomes", "error", err)
			os.Exit(1)
		}
	}
	if failed {
		os.Exit(1)
	}
}

// printGenomes writes a table of the genome set, one row per connection.
func printGenomes(w io.Writer, code string, set *neural.Genomes) error {
	fmt.Fprintf(w, "%s\n", code)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSOURCE\tSINK\tWEIGHT\tEFFECT")
	for i, g := range set {
		effect := ""
		if d, ok := g.Sink.Describe(); ok {
			effect = d.Description
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%+d\t%s\n", i, g.Source, g.Sink, g.Weight, effect)
	}
	return tw.Flush()
}

// printSnapshotFile loads a population snapshot and prints every blob's
// state followed by its genome table.
func printSnapshotFile(w io.Writer, path string) error {
	snapshot, err := telemetry.LoadSnapshot(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "generation %d (%s), seed %d, survived %d, %d blobs\n",
		snapshot.Generation, snapshot.Phase, snapshot.RNGSeed, snapshot.Survived, len(snapshot.Blobs))

	for i, state := range snapshot.Blobs {
		b, err := state.Blob()
		if err != nil {
			return fmt.Errorf("blob %d: %w", i, err)
		}
		fmt.Fprintf(w, "\nblob %d: (x, y) = (%+.3f, %+.3f)  I = %+.3f %+.3f %+.3f %+.3f\n",
			i, b.Position.X, b.Position.Y,
			b.Internal.I[0], b.Internal.I[1], b.Internal.I[2], b.Internal.I[3])
		if err := printGenomes(w, state.Genomes, &b.Genes.Set); err != nil {
			return err
		}
	}
	return nil
}
