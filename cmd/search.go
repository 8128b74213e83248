package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	infinity "github.com/Triton1605/Infinity"
	"github.com/Triton1605/Infinity/renderer"
	"github.com/Triton1605/Infinity/store"
	"github.com/google/subcommands"
)

type searchCmd struct {
	class string
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search a provider for symbols" }
func (*searchCmd) Usage() string {
	return `infinity search [-class <class>] <query>

  Search the configured provider for symbols matching the query. The class
  selects which provider to ask (default equity).

Usage Examples:
$ infinity search apple
$ infinity search -class crypto bitcoin
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.class, "class", "equity", "asset class whose provider to search")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "a search query is expected")
		return subcommands.ExitUsageError
	}
	class, err := infinity.ParseAssetClass(c.class)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}

	st, _, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	p, ok := st.Provider(class)
	if !ok {
		fmt.Fprintf(os.Stderr, "no provider configured for class %q\n", class)
		return subcommands.ExitFailure
	}
	searcher, ok := p.(store.Searcher)
	if !ok {
		fmt.Fprintf(os.Stderr, "provider %q does not support search\n", p.Name())
		return subcommands.ExitFailure
	}

	results, err := searcher.Search(ctx, strings.Join(f.Args(), " "))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SearchResults(results))
	return subcommands.ExitSuccess
}
