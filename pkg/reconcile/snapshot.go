package reconcile

import (
	"sort"

	"github.com/tendermap/tendermap/pkg/tender"
)

// DeriveSnapshot reduces each country's timeline to its currently
// active currency. A country with no active period has no snapshot
// entry; the builder has already recorded why. When more than one
// period is active the most recent start wins as primary, since the
// newest legally adopted currency is treated as the primary tender, and
// the rest are retained as secondary entries.
func DeriveSnapshot(timelines []tender.Timeline) tender.Snapshot {
	snapshot := tender.Snapshot{Entries: make(map[string]tender.SnapshotEntry)}

	for _, timeline := range timelines {
		actives := timeline.Actives()
		if len(actives) == 0 {
			continue
		}

		// Most recent start first; unknown starts last. Currency code
		// breaks exact ties so repeated runs agree.
		sort.Slice(actives, func(i, j int) bool {
			if cmp := actives[i].Start.Compare(actives[j].Start); cmp != 0 {
				return cmp > 0
			}
			return actives[i].CurrencyCode < actives[j].CurrencyCode
		})

		entry := tender.SnapshotEntry{
			CountryCode: timeline.CountryCode,
			Primary:     actives[0],
		}
		if len(actives) > 1 {
			entry.Secondary = actives[1:]
		}
		snapshot.Entries[timeline.CountryCode] = entry
	}

	return snapshot
}
