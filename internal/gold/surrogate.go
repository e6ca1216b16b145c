package gold

import (
	"math"
	"sort"
	"time"
)

// assignOrdinals stable-sorts rows ascending by natural key and stamps each
// with its 1-based position. Running it twice over the same input produces
// the same keys, which keeps rebuilt tables byte-identical.
func assignOrdinals[T any](rows []T, key func(T) string, set func(*T, int32)) {
	sort.SliceStable(rows, func(i, j int) bool { return key(rows[i]) < key(rows[j]) })
	for i := range rows {
		set(&rows[i], int32(i+1))
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// daysBetween counts whole calendar days from b to a, ignoring time-of-day.
func daysBetween(a, b time.Time) int32 {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int32(da.Sub(db).Hours() / 24)
}
