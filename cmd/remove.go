package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	infinity "github.com/Triton1605/Infinity"
	"github.com/google/subcommands"
)

type removeCmd struct{}

func (*removeCmd) Name() string { return "remove" }
func (*removeCmd) Synopsis() string {
	return "stop tracking assets and delete their stored history"
}
func (*removeCmd) Usage() string {
	return `infinity remove <SYMBOL.class> [<SYMBOL.class>...]

  Remove assets from the tracked set. Their stored history is deleted;
  projects referencing them keep their specs and will report the asset as
  unavailable until it is added again.
`
}
func (*removeCmd) SetFlags(f *flag.FlagSet) {}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
		if err := st.Untrack(id); err != nil {
			fmt.Fprintf(os.Stderr, "Error removing %s: %v\n", id, err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("removed %s\n", id)
	}
	return status
}
