package pairs

import (
	"fmt"
	"math"

	"PairSignal/internal/domain/models"
)

// occupancy marks distance indices already claimed by a trigger or a resolved event.
// It only ever grows forward during a scan.
type occupancy []bool

func (o occupancy) claim(from, to int) {
	for i := from; i <= to && i < len(o); i++ {
		o[i] = true
	}
}

// LabelEvents scans distances for threshold breaches and races take-profit against stop-loss
// over the next Horizon-1 points. Triggers need the full lookahead, so the final Horizon-1
// points are never triggers.
func LabelEvents(distances []models.DistancePoint, cfg LabelConfig) ([]models.Event, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	occupied := make(occupancy, len(distances))
	var events []models.Event
	for i := 0; i+cfg.Horizon-1 < len(distances); i++ {
		if occupied[i] {
			continue
		}
		entry := distances[i].Distance
		if math.Abs(entry) <= cfg.RegressionThreshold {
			continue
		}
		occupied[i] = true

		kind, offset, err := resolve(distances, i, entry, cfg)
		if err != nil {
			return nil, err
		}
		if offset == 0 {
			// unresolved within the horizon: only i stays occupied
			continue
		}

		events = append(events, models.Event{
			Kind:             kind,
			TriggerIndex:     i,
			PointIndex:       distances[i].Index,
			Time:             distances[i].Time,
			EntryDistance:    entry,
			ExitDistance:     distances[i+offset].Distance,
			ResolutionOffset: offset,
		})
		occupied.claim(i, i+offset)
	}
	return events, nil
}

// resolve returns the first offset at which either condition holds, or 0 when neither does.
func resolve(distances []models.DistancePoint, i int, entry float64, cfg LabelConfig) (models.EventKind, int, error) {
	for j := 1; j < cfg.Horizon; j++ {
		next := distances[i+j].Distance
		tp := takeProfit(entry, next, cfg.DistanceThreshold)
		sl := stopLoss(entry, next, cfg.DistanceThreshold)
		switch {
		case tp && sl:
			return "", 0, fmt.Errorf("trigger %d offset %d: %w", i, j, ErrResolutionTie)
		case tp:
			return models.EventWin, j, nil
		case sl:
			return models.EventLoss, j, nil
		}
	}
	return "", 0, nil
}

// takeProfit holds when the deviation has shrunk toward zero by the given fraction.
func takeProfit(entry, next, factor float64) bool {
	level := entry * (1 - factor)
	if entry > 0 {
		return next < level
	}
	return next > level
}

// stopLoss holds when the deviation has grown away from zero by the given fraction.
func stopLoss(entry, next, factor float64) bool {
	level := entry * (1 + factor)
	if entry > 0 {
		return next > level
	}
	return next < level
}
