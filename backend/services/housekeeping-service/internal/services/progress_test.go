package services

import (
	"testing"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/stretchr/testify/require"
)

func garbageTopology() (models.BuildingTopology, models.TaskCatalog) {
	topo := models.BuildingTopology{
		Blocks: []models.Block{{ID: 1, Label: "Block 1", FlatsPerFloor: func(int) []string { return []string{"A", "B"} }}},
		Floors: []int{1},
	}
	catalog := models.TaskCatalog{Definitions: []models.TaskDefinition{
		{TypeID: "Garbage", Label: "Garbage", Scope: models.TaskScopePerFlat, Category: models.TaskCategoryRoutine},
	}}
	return topo, catalog
}

// bruteForceExpected enumerates every (block, floor, flat-or-none, task)
// combination and counts the ones that are expected.
func bruteForceExpected(topo models.BuildingTopology, catalog models.TaskCatalog, active models.ActiveFlatMap) int {
	n := 0
	for _, d := range catalog.Definitions {
		if d.Scope == models.TaskScopeCommon {
			n++
		}
	}
	for _, b := range topo.Blocks {
		for _, d := range catalog.Definitions {
			if d.Scope == models.TaskScopePerBlock {
				n++
			}
		}
		for _, floor := range topo.Floors {
			for _, d := range catalog.Definitions {
				switch d.Scope {
				case models.TaskScopePerFloor:
					n++
				case models.TaskScopePerFlat:
					for _, flat := range b.Flats(floor) {
						if active[models.FlatKey(b.ID, flat, floor)] {
							n++
						}
					}
				}
			}
		}
	}
	return n
}

func TestExpectedTotalMatchesBruteForce(t *testing.T) {
	topo := models.DefaultTopology()
	catalog := models.DefaultCatalog()

	everyOther := models.ActiveFlatMap{}
	all := models.ActiveFlatMap{}
	i := 0
	for _, b := range topo.Blocks {
		for _, floor := range topo.Floors {
			for _, flat := range b.Flats(floor) {
				key := models.FlatKey(b.ID, flat, floor)
				all[key] = true
				everyOther[key] = i%2 == 0
				i++
			}
		}
	}
	withUnknownKeys := models.ActiveFlatMap{"9Z99": true, "1A1": true, "1B1": false}

	for name, active := range map[string]models.ActiveFlatMap{
		"empty":        {},
		"all":          all,
		"every other":  everyOther,
		"unknown keys": withUnknownKeys,
	} {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, bruteForceExpected(topo, catalog, active), ExpectedTotal(topo, catalog, active))
			p := ComputeDailyProgress(topo, catalog, active, nil)
			require.Equal(t, bruteForceExpected(topo, catalog, active), p.TotalExpected)

			sum := 0
			for _, c := range p.Categories {
				sum += c.Total
			}
			require.Equal(t, p.TotalExpected, sum, "category totals partition the expected slots")
		})
	}

	// 6 blocks x 12 floors x 3 floor tasks + 6 block tasks + 1 common task
	require.Equal(t, 6*12*3+6+1, ExpectedTotal(topo, catalog, models.ActiveFlatMap{}))
}

func TestInactiveFlatDoesNotCount(t *testing.T) {
	topo, catalog := garbageTopology()
	active := models.ActiveFlatMap{"1A1": true}

	p := ComputeDailyProgress(topo, catalog, active, []models.TaskLog{completed("Garbage", 1, 1, "B")})
	require.Equal(t, 1, p.TotalExpected)
	require.Equal(t, 0, p.TotalCompleted)
	require.Equal(t, 0, p.Percent)

	p = ComputeDailyProgress(topo, catalog, active, []models.TaskLog{
		completed("Garbage", 1, 1, "B"),
		completed("Garbage", 1, 1, "A"),
	})
	require.Equal(t, 1, p.TotalCompleted)
	require.Equal(t, 100, p.Percent)
	require.Equal(t, 1, p.Categories[models.TaskCategoryRoutine].Done)
}

func TestLenientWhenBillingMissing(t *testing.T) {
	topo, catalog := garbageTopology()

	logs := []models.TaskLog{
		completed("Garbage", 1, 1, "A"),
		completed("Garbage", 1, 1, "B"),
		completed("Garbage", 2, 5, "Q"),
	}
	p := ComputeDailyProgress(topo, catalog, models.ActiveFlatMap{}, logs)
	require.False(t, p.ActiveFlatsLoaded)
	require.Equal(t, 0, p.TotalExpected)
	require.Equal(t, 3, p.TotalCompleted, "every completed log counts while billing data is missing")
	require.Equal(t, 0, p.Percent, "percent is 0 when nothing is expected")
}

func TestLenientCountsRepeatCompletions(t *testing.T) {
	topo, catalog := garbageTopology()
	logs := []models.TaskLog{
		completed("Garbage", 1, 1, "A"),
		completed("Garbage", 1, 1, "A"),
	}

	p := ComputeDailyProgress(topo, catalog, models.ActiveFlatMap{}, logs)
	require.Equal(t, 2, p.TotalCompleted)
	require.Equal(t, 2, p.Categories[models.TaskCategoryRoutine].Done)

	p = ComputeDailyProgress(topo, catalog, models.ActiveFlatMap{"1A1": true}, logs)
	require.Equal(t, 1, p.TotalCompleted, "one slot counts once once billing data is loaded")
}

func TestCompletedNeverExceedsExpectedOnceLoaded(t *testing.T) {
	topo := models.DefaultTopology()
	catalog := models.DefaultCatalog()
	active := models.ActiveFlatMap{"1A1": true, "2C7": true}

	logs := []models.TaskLog{
		completed(models.TaskTypeRoutineHousekeeping, 1, 1, "A"),
		completed(models.TaskTypeRoutineHousekeeping, 1, 1, "A"),
		completed(models.TaskTypeRoutineHousekeeping, 1, 1, "B"),
		completed(models.TaskTypeRoutineHousekeeping, 2, 7, "C"),
		completed(models.TaskTypeBrooming, 1, 1, ""),
		completed(models.TaskTypeBrooming, 1, 1, ""),
		completed(models.TaskTypeBrooming, 9, 1, ""),
		completed(models.TaskTypeGlassEntrance, 3, 0, ""),
		completed(models.TaskTypeDrivewayBroom, 0, 0, ""),
		completed(models.TaskTypeDrivewayBroom, 0, 0, ""),
		completed("Window Polishing", 0, 0, ""),
	}
	pending := completed(models.TaskTypeMopping, 1, 1, "")
	pending.Status = models.TaskLogStatusPending
	logs = append(logs, pending)

	p := ComputeDailyProgress(topo, catalog, active, logs)
	require.True(t, p.ActiveFlatsLoaded)
	require.Equal(t, 5, p.TotalCompleted)
	require.LessOrEqual(t, p.TotalCompleted, p.TotalExpected)

	require.Equal(t, 2, p.Categories[models.TaskCategoryRoutine].Done)
	require.Equal(t, 2, p.Categories[models.TaskCategoryRoutine].Total)
	require.Equal(t, 1, p.Categories[models.TaskCategoryBrooming].Done)
	require.Equal(t, 0, p.Categories[models.TaskCategoryMopping].Done)
	require.Equal(t, 1, p.Categories[models.TaskCategoryGlassCleaning].Done)
	require.Equal(t, 1, p.Categories[models.TaskCategoryDriveway].Done)
	require.Equal(t, 1, p.Categories[models.TaskCategoryDriveway].Total)
}

func TestComputeDailyProgressIsIdempotent(t *testing.T) {
	topo := models.DefaultTopology()
	catalog := models.DefaultCatalog()
	active := models.ActiveFlatMap{"1A1": true, "1B1": true}
	logs := []models.TaskLog{
		completed(models.TaskTypeRoutineHousekeeping, 1, 1, "A"),
		completed(models.TaskTypeBrooming, 1, 1, ""),
	}
	before := append([]models.TaskLog(nil), logs...)

	first := ComputeDailyProgress(topo, catalog, active, logs)
	second := ComputeDailyProgress(topo, catalog, active, logs)
	require.Equal(t, first, second)
	require.Equal(t, before, logs)
}

func TestFloorCompletionIgnoresBillingAndStatus(t *testing.T) {
	topo, catalog := garbageTopology()
	catalog.Definitions = append(catalog.Definitions, models.TaskDefinition{
		TypeID: "Brooming", Scope: models.TaskScopePerFloor, Category: models.TaskCategoryBrooming,
	})

	pending := completed("Garbage", 1, 1, "B")
	pending.Status = models.TaskLogStatusPending
	logs := []models.TaskLog{pending, completed("Brooming", 1, 1, "")}

	c := FloorCompletion(topo, catalog, 1, 1, logs)
	require.Equal(t, 3, c.Total, "both flats plus the floor task")
	require.Equal(t, 2, c.Done)
	require.Equal(t, 67, c.Percent())

	require.Equal(t, c, BlockCompletion(topo, catalog, 1, logs))
	require.Equal(t, 0, BlockCompletion(topo, catalog, 7, logs).Total)

	require.True(t, isTaskDone(logs, 1, 1, "Garbage", "B"))
	require.False(t, isTaskDone(logs, 1, 1, "Garbage", "A"))
	require.False(t, isTaskDone(logs, 1, 1, "Garbage", ""), "a flat log does not fill the floor slot")
	require.True(t, isTaskDone(logs, 1, 1, "Brooming", ""))
	require.False(t, isTaskDone(logs, 1, 1, "Brooming", "A"))
}

func TestCommonAndBlockTaskDone(t *testing.T) {
	logs := []models.TaskLog{
		completed(models.TaskTypeDrivewayBroom, 0, 0, ""),
		completed(models.TaskTypeGlassEntrance, 4, 0, ""),
	}
	require.True(t, CommonTaskDone(models.TaskTypeDrivewayBroom, logs))
	require.False(t, CommonTaskDone(models.TaskTypeGlassEntrance+"-x", logs))
	require.True(t, BlockTaskDone(4, models.TaskTypeGlassEntrance, logs))
	require.False(t, BlockTaskDone(3, models.TaskTypeGlassEntrance, logs))
}
