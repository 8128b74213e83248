package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	infinity "github.com/Triton1605/Infinity"
	"github.com/Triton1605/Infinity/renderer"
	"github.com/google/subcommands"
)

type addCmd struct{}

func (*addCmd) Name() string { return "add" }
func (*addCmd) Synopsis() string {
	return "track new assets and fetch their full history"
}
func (*addCmd) Usage() string {
	return `infinity add <SYMBOL.class> [<SYMBOL.class>...]

  Track one or more assets. The full daily history is fetched from the
  configured provider and stored locally.

Usage Examples:
$ infinity add AAPL.equity
$ infinity add BTC.crypto GC=F.commodity
`
}
func (*addCmd) SetFlags(f *flag.FlagSet) {}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "at least one asset expected, like AAPL.equity")
		return subcommands.ExitUsageError
	}

	st, _, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	status := subcommands.ExitSuccess
	for _, arg := range f.Args() {
		id, err := infinity.ParseAssetID(arg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			status = subcommands.ExitFailure
			continue
		}
		a, err := st.Track(ctx, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error tracking %s: %v\n", id, err)
			status = subcommands.ExitFailure
			continue
		}
		printMarkdown(renderer.AssetSummary(a))
	}
	return status
}
