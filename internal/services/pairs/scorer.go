package pairs

import (
	"PairSignal/internal/domain/models"
)

// ScoreOutcomes checks every win event against the realized close move from the trigger bar
// to the next one. A positive entry means long A / short B; a negative entry the reverse.
// Loss events are not scored.
func ScoreOutcomes(events []models.Event, points []models.PairedPoint) (models.OutcomeReport, error) {
	var rep models.OutcomeReport
	for _, e := range events {
		if e.Kind != models.EventWin {
			continue
		}
		i := e.PointIndex
		if i < 0 || i+1 >= len(points) {
			return models.OutcomeReport{}, invalid("events", "win at point %d has no following bar", i)
		}
		cur, next := points[i], points[i+1]
		longA := e.EntryDistance > 0

		tally(&rep.LegA, legWins(cur.CloseA, next.CloseA, longA))
		tally(&rep.LegB, legWins(cur.CloseB, next.CloseB, !longA))
	}
	rep.Combined = models.OutcomeTally{
		Wins:   rep.LegA.Wins + rep.LegB.Wins,
		Losses: rep.LegA.Losses + rep.LegB.Losses,
	}
	return rep, nil
}

// legWins reports whether a long (or short) position gained. Flat moves count as losses.
func legWins(from, to float64, long bool) bool {
	if long {
		return to > from
	}
	return to < from
}

func tally(t *models.OutcomeTally, win bool) {
	if win {
		t.Wins++
		return
	}
	t.Losses++
}
