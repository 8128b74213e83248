package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	infinity "github.com/Triton1605/Infinity"
	"github.com/Triton1605/Infinity/config"
	"github.com/Triton1605/Infinity/store"
	"github.com/google/subcommands"
)

type exportCmd struct {
	format string
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export an asset's stored history to a file" }
func (*exportCmd) Usage() string {
	return `infinity export [-format csv|json] [-o <file>] <SYMBOL.class>

  Export the stored daily history of one tracked asset. Without -o the file
  lands in the exports directory, named after the asset.

Usage Examples:
$ infinity export AAPL.equity
$ infinity export -format json -o /tmp/btc.json BTC.crypto
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "csv", "export format, csv or json")
	f.StringVar(&c.output, "o", "", "output file (default under the exports directory)")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "exactly one asset expected, like AAPL.equity")
		return subcommands.ExitUsageError
	}
	format := strings.ToLower(c.format)
	if format != "csv" && format != "json" {
		fmt.Fprintf(os.Stderr, "unknown format %q, want csv or json\n", c.format)
		return subcommands.ExitUsageError
	}
	id, err := infinity.ParseAssetID(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	st, paths, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	assets, err := st.List()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	var asset *store.Asset
	for _, a := range assets {
		if a.ID == id {
			asset = a
			break
		}
	}
	if asset == nil {
		fmt.Fprintf(os.Stderr, "asset %s is not tracked\n", id)
		return subcommands.ExitFailure
	}

	file := c.output
	if file == "" {
		dir, err := paths.Path(config.ExportsDir)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		file = filepath.Join(dir, fmt.Sprintf("%s.%s", id, format))
	}

	w, err := os.Create(file)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	switch format {
	case "csv":
		err = store.ExportCSV(w, asset)
	case "json":
		err = store.ExportJSON(w, asset)
	}
	if err != nil {
		w.Close()
		fmt.Fprintf(os.Stderr, "Error exporting %s: %v\n", id, err)
		return subcommands.ExitFailure
	}
	if err := w.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("exported %s to %s\n", id, file)
	return subcommands.ExitSuccess
}
