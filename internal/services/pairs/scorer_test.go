package pairs

import (
	"errors"
	"testing"

	"PairSignal/internal/domain/models"
)

func closes(pairs ...[2]float64) []models.PairedPoint {
	out := make([]models.PairedPoint, len(pairs))
	for i, c := range pairs {
		out[i] = models.PairedPoint{Time: hour(i), CloseA: c[0], CloseB: c[1]}
	}
	return out
}

func TestScoreOutcomesPositiveEntry(t *testing.T) {
	points := closes([2]float64{1.10, 1.30}, [2]float64{1.11, 1.29}, [2]float64{1.12, 1.28})
	events := []models.Event{{Kind: models.EventWin, PointIndex: 0, EntryDistance: 0.003}}

	rep, err := ScoreOutcomes(events, points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// long A rose, short B fell
	if rep.LegA != (models.OutcomeTally{Wins: 1}) || rep.LegB != (models.OutcomeTally{Wins: 1}) {
		t.Fatalf("unexpected tallies %+v", rep)
	}
	if rep.Combined != (models.OutcomeTally{Wins: 2}) {
		t.Fatalf("unexpected combined %+v", rep.Combined)
	}
}

func TestScoreOutcomesNegativeEntryMirrors(t *testing.T) {
	points := closes([2]float64{1.10, 1.30}, [2]float64{1.11, 1.29})
	events := []models.Event{{Kind: models.EventWin, PointIndex: 0, EntryDistance: -0.003}}

	rep, err := ScoreOutcomes(events, points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// short A rose, long B fell
	if rep.LegA != (models.OutcomeTally{Losses: 1}) || rep.LegB != (models.OutcomeTally{Losses: 1}) {
		t.Fatalf("unexpected tallies %+v", rep)
	}
}

func TestScoreOutcomesFlatIsLossAndLossEventsIgnored(t *testing.T) {
	points := closes([2]float64{1, 2}, [2]float64{1, 2}, [2]float64{1, 2})
	events := []models.Event{
		{Kind: models.EventWin, PointIndex: 0, EntryDistance: 0.01},
		{Kind: models.EventLoss, PointIndex: 1, EntryDistance: 0.01},
	}
	rep, err := ScoreOutcomes(events, points)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Combined != (models.OutcomeTally{Losses: 2}) {
		t.Fatalf("unexpected tallies %+v", rep)
	}
}

func TestScoreOutcomesOutOfRange(t *testing.T) {
	points := closes([2]float64{1, 2})
	events := []models.Event{{Kind: models.EventWin, PointIndex: 0, EntryDistance: 0.01}}
	var verr *ValidationError
	if _, err := ScoreOutcomes(events, points); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
