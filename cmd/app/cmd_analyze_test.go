package main

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"

	"PairSignal/internal/domain/models"
	"PairSignal/pkg/config"
)

func TestAnalyzeParamsLayersFlagsOverConfig(t *testing.T) {
	cfg, err := config.Parse([]byte("environment: test\n"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	p, err := analyzeParams(analyzeCmd, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.SymbolA != "EURUSD" || p.N != 50 || p.Timeframe != "1h" || p.Config.Horizon != 5 {
		t.Fatalf("config defaults not used: %+v", p)
	}

	flags := analyzeCmd.Flags()
	for name, v := range map[string]string{"b": "USDCHF", "horizon": "8", "from": "2024-01-01T00:00:00Z", "to": "1706745600"} {
		if err := flags.Set(name, v); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
	t.Cleanup(func() {
		analyzeSymbolB, analyzeHorizon, analyzeFrom, analyzeTo = "", 0, "", ""
		for _, name := range []string{"b", "horizon", "from", "to"} {
			flags.Lookup(name).Changed = false
		}
	})

	p, err = analyzeParams(analyzeCmd, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.SymbolB != "USDCHF" || p.Config.Horizon != 8 || p.Config.Window != 5 {
		t.Fatalf("flags not applied: %+v", p)
	}
	if !p.From.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) || !p.To.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected range %v..%v", p.From, p.To)
	}
}

func TestPrintReport(t *testing.T) {
	r := &models.Report{
		SymbolA:   "EURUSD",
		SymbolB:   "GBPUSD",
		Timeframe: "1h",
		AsOf:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Events: []models.Event{
			{Kind: models.EventWin, Time: time.Date(2024, 2, 28, 13, 0, 0, 0, time.UTC), EntryDistance: 0.0012, ExitDistance: 0.0003, ResolutionOffset: 2},
		},
		Outcomes: models.OutcomeReport{LegA: models.OutcomeTally{Wins: 1}, LegB: models.OutcomeTally{Losses: 1}},
		Summary:  models.Summary{Points: 50, Wins: 1, HitRate: 1},
	}

	var buf bytes.Buffer
	if err := printReport(&buf, r, true); err != nil {
		t.Fatalf("print: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"EURUSD/GBPUSD", "1 win, 0 loss (hit rate 100.00%)", "2024-02-28 13:00", "win"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	for _, re := range []string{`LEG A\s+1 win, 0 loss\n`, `LEG B\s+0 win, 1 loss\n`} {
		if !regexp.MustCompile(re).MatchString(out) {
			t.Fatalf("output does not match %s:\n%s", re, out)
		}
	}
	if strings.Contains(out, " up,") || strings.Contains(out, " down") {
		t.Fatalf("leg tallies are directional wins and losses, not price moves:\n%s", out)
	}
}

func TestAnalyzeThresholdFlagHelp(t *testing.T) {
	trigger := analyzeCmd.Flags().Lookup("regression-threshold").Usage
	if !strings.Contains(trigger, "opens a trigger") || strings.Contains(trigger, "take-profit") {
		t.Fatalf("unexpected regression-threshold help %q", trigger)
	}
	move := analyzeCmd.Flags().Lookup("distance-threshold").Usage
	if !strings.Contains(move, "win") || !strings.Contains(move, "loss") {
		t.Fatalf("distance-threshold help must cover both outcomes: %q", move)
	}
}
