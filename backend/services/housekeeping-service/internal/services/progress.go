package services

import (
	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/dtos"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
)

// ExpectedTotal counts the task slots expected today: one per common task,
// one per block task per block, and per floor one per floor task plus one
// per flat task per active flat.
func ExpectedTotal(topology models.BuildingTopology, catalog models.TaskCatalog, active models.ActiveFlatMap) int {
	perFlat := catalog.CountByScope(models.TaskScopePerFlat)
	perFloor := catalog.CountByScope(models.TaskScopePerFloor)
	perBlock := catalog.CountByScope(models.TaskScopePerBlock)

	total := catalog.CountByScope(models.TaskScopeCommon)
	for _, b := range topology.Blocks {
		total += perBlock
		for _, floor := range topology.Floors {
			total += perFlat * active.ActiveCount(b.ID, floor, b.Flats(floor))
			total += perFloor
		}
	}
	return total
}

// ComputeDailyProgress aggregates today's logs against the expected slots.
//
// Once billing data is loaded a COMPLETED log counts only when it fills an
// expected slot, and each slot counts once: flat tasks need an active flat,
// floor and block tasks need a location inside the topology, common tasks
// always match. A location-less log of a non-common or unknown type fills no
// slot and is not counted. While billing data is missing every COMPLETED log
// counts, repeats included.
func ComputeDailyProgress(
	topology models.BuildingTopology,
	catalog models.TaskCatalog,
	active models.ActiveFlatMap,
	todaysLogs []models.TaskLog,
) dtos.DailyProgress {
	lenient := !active.Loaded()

	categories := categoryTotals(topology, catalog, active)
	seen := make(map[string]bool, len(todaysLogs))
	completed := 0

	for i := range todaysLogs {
		l := &todaysLogs[i]
		if l.Status != models.TaskLogStatusCompleted {
			continue
		}

		if !lenient {
			slot, ok := expectedSlot(topology, catalog, active, l)
			if !ok || seen[slot] {
				continue
			}
			seen[slot] = true
		}
		completed++

		cat := catalog.CategoryOf(l.TaskID)
		c := categories[cat]
		c.Done++
		categories[cat] = c
	}

	expected := ExpectedTotal(topology, catalog, active)
	return dtos.DailyProgress{
		TotalExpected:     expected,
		TotalCompleted:    completed,
		Percent:           dtos.PercentOf(completed, expected),
		Categories:        categories,
		ActiveFlatsLoaded: !lenient,
	}
}

// categoryTotals seeds every catalog category with its expected slot count.
func categoryTotals(topology models.BuildingTopology, catalog models.TaskCatalog, active models.ActiveFlatMap) map[models.TaskCategory]dtos.CompletionCount {
	activeFlats := 0
	for _, b := range topology.Blocks {
		for _, floor := range topology.Floors {
			activeFlats += active.ActiveCount(b.ID, floor, b.Flats(floor))
		}
	}
	floors := len(topology.Blocks) * len(topology.Floors)

	out := make(map[models.TaskCategory]dtos.CompletionCount)
	for _, d := range catalog.Definitions {
		c := out[d.Category]
		switch d.Scope {
		case models.TaskScopePerFlat:
			c.Total += activeFlats
		case models.TaskScopePerFloor:
			c.Total += floors
		case models.TaskScopePerBlock:
			c.Total += len(topology.Blocks)
		case models.TaskScopeCommon:
			c.Total++
		}
		out[d.Category] = c
	}
	return out
}

// expectedSlot maps a log to the canonical key of the expected slot it
// fills, or false when it fills none.
func expectedSlot(
	topology models.BuildingTopology,
	catalog models.TaskCatalog,
	active models.ActiveFlatMap,
	l *models.TaskLog,
) (string, bool) {
	def, ok := catalog.Lookup(l.TaskID)
	if !ok {
		return "", false
	}

	switch def.Scope {
	case models.TaskScopeCommon:
		return models.TaskSlotKey(def.TypeID, nil, nil, nil), true

	case models.TaskScopePerBlock:
		if l.Block == nil {
			return "", false
		}
		if _, ok := topology.Block(*l.Block); !ok {
			return "", false
		}
		return models.TaskSlotKey(def.TypeID, l.Block, nil, nil), true

	case models.TaskScopePerFloor:
		if l.Block == nil || l.Floor == nil {
			return "", false
		}
		if _, ok := topology.Block(*l.Block); !ok || !topology.HasFloor(*l.Floor) {
			return "", false
		}
		return models.TaskSlotKey(def.TypeID, l.Block, l.Floor, nil), true

	case models.TaskScopePerFlat:
		key, ok := l.FlatKey()
		if !ok || !topology.HasFlat(*l.Block, *l.Floor, *l.Flat) || !topology.HasFloor(*l.Floor) {
			return "", false
		}
		if !active.IsActive(key) {
			return "", false
		}
		return models.TaskSlotKey(def.TypeID, l.Block, l.Floor, l.Flat), true
	}
	return "", false
}

// isTaskDone matches today's logs exactly on block, floor, task type and
// flat (or its absence). Status is not checked and no billing gating applies.
func isTaskDone(todaysLogs []models.TaskLog, block, floor int, taskID string, flat string) bool {
	for i := range todaysLogs {
		l := &todaysLogs[i]
		if l.TaskID != taskID || l.Block == nil || *l.Block != block || l.Floor == nil || *l.Floor != floor {
			continue
		}
		hasFlat := l.Flat != nil && *l.Flat != ""
		if flat != "" {
			if hasFlat && *l.Flat == flat {
				return true
			}
		} else if !hasFlat {
			return true
		}
	}
	return false
}

// FloorCompletion counts every flat on the floor, active or not.
func FloorCompletion(
	topology models.BuildingTopology,
	catalog models.TaskCatalog,
	block, floor int,
	todaysLogs []models.TaskLog,
) dtos.CompletionCount {
	b, ok := topology.Block(block)
	if !ok {
		return dtos.CompletionCount{}
	}
	flats := b.Flats(floor)

	var c dtos.CompletionCount
	for _, d := range catalog.ByScope(models.TaskScopePerFlat) {
		c.Total += len(flats)
		for _, f := range flats {
			if isTaskDone(todaysLogs, block, floor, d.TypeID, f) {
				c.Done++
			}
		}
	}
	for _, d := range catalog.ByScope(models.TaskScopePerFloor) {
		c.Total++
		if isTaskDone(todaysLogs, block, floor, d.TypeID, "") {
			c.Done++
		}
	}
	return c
}

// BlockCompletion sums FloorCompletion over every floor of the block.
func BlockCompletion(
	topology models.BuildingTopology,
	catalog models.TaskCatalog,
	block int,
	todaysLogs []models.TaskLog,
) dtos.CompletionCount {
	if _, ok := topology.Block(block); !ok {
		return dtos.CompletionCount{}
	}
	var c dtos.CompletionCount
	for _, floor := range topology.Floors {
		fc := FloorCompletion(topology, catalog, block, floor, todaysLogs)
		c.Done += fc.Done
		c.Total += fc.Total
	}
	return c
}

// CommonTaskDone reports whether any of today's logs is for taskID.
func CommonTaskDone(taskID string, todaysLogs []models.TaskLog) bool {
	for i := range todaysLogs {
		if todaysLogs[i].TaskID == taskID {
			return true
		}
	}
	return false
}

// BlockTaskDone reports whether a block-level task was logged for block.
func BlockTaskDone(block int, taskID string, todaysLogs []models.TaskLog) bool {
	for i := range todaysLogs {
		l := &todaysLogs[i]
		if l.TaskID == taskID && l.Block != nil && *l.Block == block {
			return true
		}
	}
	return false
}
