package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"

	infinity "github.com/Triton1605/Infinity"
	"github.com/google/subcommands"
	"golang.org/x/sync/errgroup"
)

type updateCmd struct {
	workers int
}

func (*updateCmd) Name() string { return "update" }
func (*updateCmd) Synopsis() string {
	return "refresh the stored history of tracked assets"
}
func (*updateCmd) Usage() string {
	return `infinity update [-j <n>] [<SYMBOL.class>...]

  Refetch the daily history of the given assets, or of every tracked asset
  when none is named. Fetches run concurrently; one failing asset does not
  stop the others.

Usage Examples:
$ infinity update
$ infinity update -j 2 AAPL.equity BTC.crypto
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.workers, "j", 4, "maximum concurrent fetches")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, _, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	var ids []infinity.AssetID
	if f.NArg() > 0 {
		for _, arg := range f.Args() {
			id, err := infinity.ParseAssetID(arg)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Error:", err)
				return subcommands.ExitUsageError
			}
			ids = append(ids, id)
		}
	} else {
		assets, err := st.List()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		for _, a := range assets {
			ids = append(ids, a.ID)
		}
	}
	if len(ids) == 0 {
		fmt.Println("no tracked assets, use 'infinity add' first")
		return subcommands.ExitSuccess
	}

	if c.workers < 1 {
		c.workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	var mu sync.Mutex
	failed := 0
	for _, id := range ids {
		g.Go(func() error {
			s, err := st.Refresh(gctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "Error updating %s: %v\n", id, err)
				return nil
			}
			fmt.Printf("updated %s (%d days)\n", id, s.Len())
			return nil
		})
	}
	// Workers report their own failures and always return nil.
	_ = g.Wait()

	if failed == len(ids) {
		return subcommands.ExitFailure
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d assets failed to update\n", failed, len(ids))
	}
	return subcommands.ExitSuccess
}
