package cli

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"emoji-life/internal/bench"
)

// BenchOptions holds flags for the bench command.
type BenchOptions struct {
	bench.Options
	JSON bool
}

type benchReport struct {
	Ops                  int     `json:"ops"`
	ChurnMillis          int64   `json:"churn_ms"`
	OpsPerSecond         float64 `json:"ops_per_sec"`
	Generations          int     `json:"generations"`
	LifeMillis           int64   `json:"life_ms"`
	GenerationsPerSecond float64 `json:"generations_per_sec"`
	Population           int     `json:"population"`
	Leaked               int     `json:"leaked"`
}

// NewBenchCommand creates the bench command.
func NewBenchCommand(root *RootOptions) *cobra.Command {
	opts := &BenchOptions{Options: bench.DefaultOptions()}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure entity churn and life stepping",
		Long: `Spawn, query and despawn entities in rounds, then step a random board,
reporting throughput. --profile writes a pprof file to --profile-dir.

Example:
  life bench --entities 10000 --rounds 100
  life bench --profile cpu --profile-dir /tmp
  go tool pprof -http=":8000" cpu.pprof`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := bench.Run(opts.Options, root.Logger)
			if err != nil {
				return err
			}
			return writeBench(cmd, opts, res)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.Entities, "entities", opts.Entities, "entities spawned per round")
	f.IntVar(&opts.Rounds, "rounds", opts.Rounds, "churn rounds")
	f.IntVar(&opts.Generations, "generations", opts.Generations, "life generations to step (0 skips)")
	f.IntVar(&opts.Width, "width", opts.Width, "life board width")
	f.IntVar(&opts.Height, "height", opts.Height, "life board height")
	f.Int64Var(&opts.Seed, "seed", opts.Seed, "soup seed")
	f.StringVar(&opts.Profile, "profile", "", "profile mode (cpu|mem|allocs)")
	f.StringVar(&opts.ProfileDir, "profile-dir", opts.ProfileDir, "directory for profile output")
	f.BoolVar(&opts.JSON, "json", false, "print the result as JSON")

	return cmd
}

func writeBench(cmd *cobra.Command, opts *BenchOptions, res bench.Result) error {
	out := cmd.OutOrStdout()
	if opts.JSON {
		data, err := json.Marshal(benchReport{
			Ops:                  res.Ops,
			ChurnMillis:          res.ChurnElapsed.Milliseconds(),
			OpsPerSecond:         res.OpsPerSecond(),
			Generations:          res.Generations,
			LifeMillis:           res.LifeElapsed.Milliseconds(),
			GenerationsPerSecond: res.GenerationsPerSecond(),
			Population:           res.Population,
			Leaked:               res.Leaked,
		})
		if err != nil {
			return eris.Wrap(err, "encode bench result")
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	fmt.Fprintf(out, "churn  %d ops in %s (%.0f ops/s), %d leaked\n",
		res.Ops, res.ChurnElapsed.Round(time.Microsecond), res.OpsPerSecond(), res.Leaked)
	if res.Generations > 0 {
		fmt.Fprintf(out, "life   %d generations in %s (%.0f gen/s), population %d\n",
			res.Generations, res.LifeElapsed.Round(time.Microsecond), res.GenerationsPerSecond(), res.Population)
	}
	return nil
}
