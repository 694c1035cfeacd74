package impl

import (
	"testing"
	"time"

	"agrimap/internal/domain/entity"
	"agrimap/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestSortFarms_ByName(t *testing.T) {
	farms := []*extendedFarm{
		{Farm: &entity.Farm{Name: "Cherry Hill"}},
		{Farm: &entity.Farm{Name: "Apple Grove"}},
		{Farm: &entity.Farm{Name: "Barley Field"}},
	}

	sortFarms(farms, usecase.SortKeyName)

	assert.Equal(t, "Apple Grove", farms[0].Name)
	assert.Equal(t, "Barley Field", farms[1].Name)
	assert.Equal(t, "Cherry Hill", farms[2].Name)
}

func TestSortFarms_ByNameIsStable(t *testing.T) {
	// Equal names keep their incoming relative order.
	farms := []*extendedFarm{
		{Farm: &entity.Farm{Name: "Same"}, drivingDistance: 1},
		{Farm: &entity.Farm{Name: "Same"}, drivingDistance: 2},
		{Farm: &entity.Farm{Name: "Aaa"}, drivingDistance: 3},
		{Farm: &entity.Farm{Name: "Same"}, drivingDistance: 4},
	}

	sortFarms(farms, usecase.SortKeyName)

	assert.Equal(t, "Aaa", farms[0].Name)
	assert.Equal(t, []float64{1, 2, 4}, []float64{
		farms[1].drivingDistance,
		farms[2].drivingDistance,
		farms[3].drivingDistance,
	})
}

func TestSortFarms_ByCreatedAtAscending(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	farms := []*extendedFarm{
		{Farm: &entity.Farm{Name: "B", CreatedAt: base.Add(time.Hour)}},
		{Farm: &entity.Farm{Name: "A", CreatedAt: base}},
		{Farm: &entity.Farm{Name: "C", CreatedAt: base.Add(2 * time.Hour)}},
	}

	sortFarms(farms, usecase.SortKeyCreatedAt)

	assert.Equal(t, "A", farms[0].Name)
	assert.Equal(t, "B", farms[1].Name)
	assert.Equal(t, "C", farms[2].Name)
}

func TestSortFarms_ByDrivingDistance(t *testing.T) {
	farms := []*extendedFarm{
		{Farm: &entity.Farm{Name: "Far"}, drivingDistance: 9000},
		{Farm: &entity.Farm{Name: "Near"}, drivingDistance: 150},
		{Farm: &entity.Farm{Name: "Mid"}, drivingDistance: 4200},
	}

	sortFarms(farms, usecase.SortKeyDrivingDistance)

	assert.Equal(t, "Near", farms[0].Name)
	assert.Equal(t, "Mid", farms[1].Name)
	assert.Equal(t, "Far", farms[2].Name)
}

func TestSortFarms_NoneLeavesOrder(t *testing.T) {
	farms := []*extendedFarm{
		{Farm: &entity.Farm{Name: "Z"}},
		{Farm: &entity.Farm{Name: "A"}},
	}

	sortFarms(farms, usecase.SortKeyNone)

	assert.Equal(t, "Z", farms[0].Name)
	assert.Equal(t, "A", farms[1].Name)
}
