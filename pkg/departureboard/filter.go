package departureboard

import (
	"time"

	"github.com/travigo/togtider/pkg/ctdf"
	"github.com/travigo/togtider/pkg/util"
	"golang.org/x/exp/slices"
)

// FilterAndSort drops departures whose effective time is before now and orders the rest
// by effective time. The sort is stable so equal times keep document order.
// The set is modified in place and returned.
func FilterAndSort(set *ctdf.DepartureSet, now time.Time, correctionOffset time.Duration) *ctdf.DepartureSet {
	for direction := range set.Departures {
		records := set.Departures[direction]

		for _, record := range records {
			if record.AimedTime.IsZero() {
				panic("departureboard: departure record without aimed time reached the filter")
			}
		}

		util.InPlaceFilter(&records, func(record ctdf.DepartureRecord) bool {
			return !record.EffectiveTime(correctionOffset).Before(now)
		})

		slices.SortStableFunc(records, func(a, b ctdf.DepartureRecord) int {
			return a.EffectiveTime(correctionOffset).Compare(b.EffectiveTime(correctionOffset))
		})

		set.Departures[direction] = records
	}

	return set
}
