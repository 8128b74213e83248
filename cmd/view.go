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

type viewCmd struct{}

func (*viewCmd) Name() string     { return "view" }
func (*viewCmd) Synopsis() string { return "show one tracked asset in detail" }
func (*viewCmd) Usage() string {
	return `infinity view <SYMBOL.class>

  Show one tracked asset: name, currency, exchange, the stored date range
  and the latest price.
`
}
func (*viewCmd) SetFlags(f *flag.FlagSet) {}

func (c *viewCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "exactly one asset expected, like AAPL.equity")
		return subcommands.ExitUsageError
	}
	id, err := infinity.ParseAssetID(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	st, _, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	assets, err := st.List()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	for _, a := range assets {
		if a.ID == id {
			printMarkdown(renderer.AssetSummary(a))
			return subcommands.ExitSuccess
		}
	}
	fmt.Fprintf(os.Stderr, "asset %s is not tracked, use 'infinity add %s' first\n", id, id)
	return subcommands.ExitFailure
}
