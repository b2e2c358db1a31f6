package lifecycle

import (
	"time"

	"github.com/Liamshmuel20/Rant.GO/model"
)

// OccupiedDates expands every active contract into its inclusive set
// of calendar days. Contracts in other statuses do not block dates.
func OccupiedDates(contracts []*model.Contract) []time.Time {
	var occupied []time.Time
	for _, c := range contracts {
		if c.Status != model.ContractActive {
			continue
		}
		start := dateOnly(c.StartDate)
		end := dateOnly(c.EndDate)
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			occupied = append(occupied, d)
		}
	}
	return occupied
}

// HasConflict reports whether any day of [start, end] inclusive falls
// on an occupied day of an active contract for the same product.
func HasConflict(start, end time.Time, contracts []*model.Contract) bool {
	occupied := make(map[time.Time]struct{})
	for _, d := range OccupiedDates(contracts) {
		occupied[d] = struct{}{}
	}
	if len(occupied) == 0 {
		return false
	}

	s := dateOnly(start)
	e := dateOnly(end)
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		if _, ok := occupied[d]; ok {
			return true
		}
	}
	return false
}
