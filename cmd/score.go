package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockfolio"
	"github.com/etnz/stockfolio/advisor"
	"github.com/etnz/stockfolio/renderer"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// scoreCmd holds the flags for the 'score' subcommand.
type scoreCmd struct {
	update bool
}

func (*scoreCmd) Name() string     { return "score" }
func (*scoreCmd) Synopsis() string { return "grade one position with an AI advisor" }
func (*scoreCmd) Usage() string {
	return `sfo score [-u] <ticker>

  Condenses the position's reconstructed history into its key metrics and
  asks a Gemini model to grade the investment on a 0-100 scale with a
  short explanation. Requires the GEMINI_API_KEY environment variable.

  Scores are model opinions, not investment advice.

`
}

func (c *scoreCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.update, "u", false, "refresh the price cache before scoring")
}

func (c *scoreCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	instrument := f.Arg(0)

	cfg, err := AppConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	snapshots, status := buildSnapshots(ctx, cfg, instrument, c.update)
	if status != subcommands.ExitSuccess {
		return status
	}

	summary, err := stockfolio.NewSummary(instrument, snapshots)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error summarizing %s: %v\n", instrument, err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating Gemini client: %v\n", err)
		return subcommands.ExitFailure
	}

	score, err := advisor.New(client).Score(ctx, summary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scoring %s: %v\n", instrument, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ScoreMarkdown(summary, score))
	return subcommands.ExitSuccess
}
