package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"PairSignal/internal/di"
	"PairSignal/internal/domain/models"
	domrepo "PairSignal/internal/domain/repository"
	"PairSignal/internal/usecase"
	"PairSignal/pkg/config"
	"PairSignal/pkg/util"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one analysis over a pair and print the summary",
	Long: `Fetch bars for both legs, run the signal pipeline once and print the
summary. Unset flags fall back to the pair and pipeline sections of the config.
Configured sinks (ClickHouse events, Kafka, Redis) receive the report as in serve mode.

Examples:
  pairsignal analyze
  pairsignal analyze --a EURUSD --b GBPUSD --tf 1h --n 1000
  pairsignal analyze --from 2024-01-01T00:00:00Z --to 2024-03-01T00:00:00Z --format json`,
	RunE: runAnalyze,
}

// Analyze command flags
var (
	analyzeSymbolA string
	analyzeSymbolB string
	analyzeTF      string
	analyzeN       int
	analyzeFrom    string
	analyzeTo      string
	analyzeWindow  int
	analyzeRegThr  float64
	analyzeDistThr float64
	analyzeHorizon int
	analyzeFormat  string
	analyzeEvents  bool
	analyzeNoCache bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	f := analyzeCmd.Flags()
	f.StringVar(&analyzeSymbolA, "a", "", "first leg symbol (regressor)")
	f.StringVar(&analyzeSymbolB, "b", "", "second leg symbol (regressand)")
	f.StringVar(&analyzeTF, "tf", "", "timeframe: 1s, 1m, 5m or 1h")
	f.IntVar(&analyzeN, "n", 0, "number of log returns per leg")
	f.StringVar(&analyzeFrom, "from", "", "range start, RFC3339 or unix seconds (overrides --n)")
	f.StringVar(&analyzeTo, "to", "", "range end, RFC3339 or unix seconds")
	f.IntVar(&analyzeWindow, "window", 0, "regression window length")
	f.Float64Var(&analyzeRegThr, "regression-threshold", 0, "minimum |distance| from the regression line that opens a trigger")
	f.Float64Var(&analyzeDistThr, "distance-threshold", 0, "fractional move of the distance, in (0,1), that resolves a trigger: shrink by it for a win, grow by it for a loss")
	f.IntVar(&analyzeHorizon, "horizon", 0, "lookahead bars")
	f.StringVar(&analyzeFormat, "format", "table", "output format (table|json)")
	f.BoolVar(&analyzeEvents, "events", false, "list every event in table output")
	f.BoolVar(&analyzeNoCache, "no-cache", false, "bypass the report cache")
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	if analyzeFormat != "table" && analyzeFormat != "json" {
		return fmt.Errorf("invalid format %q: expected table or json", analyzeFormat)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	params, err := analyzeParams(cmd, cfg)
	if err != nil {
		return err
	}

	analyzer, cleanup, err := di.InitializeAnalyzer(cfg)
	if err != nil {
		return fmt.Errorf("analyzer initialization failed: %w", err)
	}
	defer cleanup()

	report, err := analyzer.Analyze(cmd.Context(), params)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if analyzeFormat == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(models.NewPairSignalsResponse(report, false))
	}
	return printReport(out, report, analyzeEvents)
}

// analyzeParams layers explicitly set flags over the config defaults.
func analyzeParams(cmd *cobra.Command, cfg *config.Config) (usecase.AnalyzeParams, error) {
	p := usecase.AnalyzeParams{
		SymbolA:   cfg.Pair.SymbolA,
		SymbolB:   cfg.Pair.SymbolB,
		Timeframe: domrepo.Timeframe(cfg.Pipeline.Timeframe),
		N:         cfg.Pipeline.Bars,
		Config:    cfg.PipelineConfig(),
		NoCache:   analyzeNoCache,
	}
	f := cmd.Flags()
	if f.Changed("a") {
		p.SymbolA = analyzeSymbolA
	}
	if f.Changed("b") {
		p.SymbolB = analyzeSymbolB
	}
	if f.Changed("tf") {
		p.Timeframe = domrepo.Timeframe(analyzeTF)
	}
	if f.Changed("n") {
		p.N = analyzeN
	}
	if f.Changed("window") {
		p.Config.Window = analyzeWindow
	}
	if f.Changed("regression-threshold") {
		p.Config.RegressionThreshold = analyzeRegThr
	}
	if f.Changed("distance-threshold") {
		p.Config.DistanceThreshold = analyzeDistThr
	}
	if f.Changed("horizon") {
		p.Config.Horizon = analyzeHorizon
	}
	if analyzeFrom != "" || analyzeTo != "" {
		from, ok := util.ParseTime(analyzeFrom)
		if !ok {
			return p, fmt.Errorf("invalid --from %q", analyzeFrom)
		}
		to, ok := util.ParseTime(analyzeTo)
		if !ok {
			return p, fmt.Errorf("invalid --to %q", analyzeTo)
		}
		p.From, p.To = from, to
	}
	return p, nil
}

func printReport(w io.Writer, r *models.Report, withEvents bool) error {
	s := r.Summary
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "PAIR\t%s\n", r.Pair())
	fmt.Fprintf(tw, "TIMEFRAME\t%s\n", r.Timeframe)
	fmt.Fprintf(tw, "AS OF\t%s\n", r.AsOf.Format("2006-01-02 15:04:05Z07:00"))
	fmt.Fprintf(tw, "POINTS\t%d\n", s.Points)
	fmt.Fprintf(tw, "WINDOWS\t%d valid, %d invalid\n", s.ValidWindows, s.InvalidWindows)
	fmt.Fprintf(tw, "MEAN SLOPE\t%.6f\n", s.MeanSlope)
	fmt.Fprintf(tw, "MEAN INTERCEPT\t%.8f\n", s.MeanIntercept)
	fmt.Fprintf(tw, "MEAN R2\t%.4f\n", s.MeanR2)
	fmt.Fprintf(tw, "EVENTS\t%d win, %d loss (hit rate %.2f%%)\n", s.Wins, s.Losses, s.HitRate*100)
	fmt.Fprintf(tw, "LEG A\t%d win, %d loss\n", r.Outcomes.LegA.Wins, r.Outcomes.LegA.Losses)
	fmt.Fprintf(tw, "LEG B\t%d win, %d loss\n", r.Outcomes.LegB.Wins, r.Outcomes.LegB.Losses)
	fmt.Fprintf(tw, "ZERO CROSSING RATE\t%.4f\n", s.ZeroCrossingRate)
	if withEvents && len(r.Events) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "TIME\tKIND\tENTRY\tEXIT\tOFFSET")
		for _, e := range r.Events {
			fmt.Fprintf(tw, "%s\t%s\t%.6f\t%.6f\t%d\n",
				e.Time.Format("2006-01-02 15:04"), e.Kind, e.EntryDistance, e.ExitDistance, e.ResolutionOffset)
		}
	}
	return tw.Flush()
}
