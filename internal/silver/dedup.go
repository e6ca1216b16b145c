package silver

import (
	"sort"

	"lakehouse/internal/schema"
)

// dedupLatest collapses rows sharing a natural key down to one winner: the
// row with the greatest ingestion timestamp. Equal timestamps break on the
// lexicographically greatest source file, then on the latest input position,
// so the outcome is deterministic regardless of input ordering. Output is
// sorted ascending by natural key.
func dedupLatest[T any](rows []T, key func(T) string, lin func(T) schema.Lineage) []T {
	type slot struct {
		row   T
		index int
	}
	winners := make(map[string]slot, len(rows))
	for i, r := range rows {
		k := key(r)
		prev, ok := winners[k]
		if !ok || laterLineage(lin(r), i, lin(prev.row), prev.index) {
			winners[k] = slot{row: r, index: i}
		}
	}

	keys := make([]string, 0, len(winners))
	for k := range winners {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]T, 0, len(winners))
	for _, k := range keys {
		out = append(out, winners[k].row)
	}
	return out
}

// laterLineage reports whether candidate (a, ai) wins over incumbent (b, bi).
func laterLineage(a schema.Lineage, ai int, b schema.Lineage, bi int) bool {
	if !a.IngestedAt.Equal(b.IngestedAt) {
		return a.IngestedAt.After(b.IngestedAt)
	}
	if a.SourceFile != b.SourceFile {
		return a.SourceFile > b.SourceFile
	}
	return ai > bi
}
