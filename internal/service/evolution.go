package service

import (
	"sort"

	"fitcoach/coaching-api/internal/domain"
)

// ComputeEvolution folds a user's records into summary statistics. The
// records are re-sorted by date on a copy, so storage order never matters
// and the input is left untouched.
func ComputeEvolution(records []domain.Progress) domain.Evolution {
	sorted := make([]domain.Progress, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	evo := domain.Evolution{TotalCount: len(sorted)}
	if len(sorted) == 0 {
		return evo
	}
	first, last := sorted[0].Date, sorted[len(sorted)-1].Date
	evo.FirstDate, evo.LastDate = &first, &last

	for i := range sorted {
		p := &sorted[i]
		if p.Weight != nil {
			if evo.WeightEvolution == nil {
				evo.WeightEvolution = &domain.WeightEvolution{Initial: *p.Weight}
			}
			evo.WeightEvolution.Current = *p.Weight
		}
		if p.HasMeasurements() {
			if evo.MeasurementEvolution == nil {
				evo.MeasurementEvolution = &domain.MeasurementEvolution{}
			}
			evo.MeasurementEvolution.Count++
			evo.MeasurementEvolution.LastDate = p.Date
		}
	}
	if w := evo.WeightEvolution; w != nil {
		w.Delta = w.Current - w.Initial
	}
	return evo
}
