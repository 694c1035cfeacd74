package impl

import (
	"cmp"
	"slices"
	"strings"

	"agrimap/internal/usecase"
)

// sortFarms orders farms in place, stable and ascending by the named key:
// case-sensitive lexicographic for name, chronological for createdAt,
// numeric for drivingDistance. Unknown keys never reach this function; the
// delivery layer validates them before the pipeline runs.
func sortFarms(farms []*extendedFarm, key usecase.SortKey) {
	switch key {
	case usecase.SortKeyName:
		slices.SortStableFunc(farms, func(a, b *extendedFarm) int {
			return strings.Compare(a.Name, b.Name)
		})
	case usecase.SortKeyCreatedAt:
		slices.SortStableFunc(farms, func(a, b *extendedFarm) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
	case usecase.SortKeyDrivingDistance:
		slices.SortStableFunc(farms, func(a, b *extendedFarm) int {
			return cmp.Compare(a.drivingDistance, b.drivingDistance)
		})
	}
}
