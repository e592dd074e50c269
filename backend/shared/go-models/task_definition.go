package models

import "time"

// TaskScope is the granularity at which a task is expected once per day.
type TaskScope string

const (
	TaskScopePerFlat  TaskScope = "PER_FLAT"
	TaskScopePerFloor TaskScope = "PER_FLOOR"
	TaskScopePerBlock TaskScope = "PER_BLOCK"
	TaskScopeCommon   TaskScope = "COMMON"
)

// TaskCategory groups task types for progress breakdowns.
type TaskCategory string

const (
	TaskCategoryRoutine       TaskCategory = "ROUTINE"
	TaskCategoryBrooming      TaskCategory = "BROOMING"
	TaskCategoryMopping       TaskCategory = "MOPPING"
	TaskCategoryStaircase     TaskCategory = "STAIRCASE"
	TaskCategoryGlassCleaning TaskCategory = "GLASS_CLEANING"
	TaskCategoryDriveway      TaskCategory = "DRIVEWAY"
	TaskCategoryOther         TaskCategory = "OTHER"
)

type TaskFrequency string

const (
	TaskFrequencyDaily  TaskFrequency = "DAILY"
	TaskFrequencyWeekly TaskFrequency = "WEEKLY"
)

// TaskDefinition describes one kind of housekeeping task. TypeID is the
// identifier stored on task logs.
type TaskDefinition struct {
	TypeID       string        `json:"type_id"`
	Label        string        `json:"label"`
	Icon         string        `json:"icon"`
	Area         string        `json:"area,omitempty"`
	Scope        TaskScope     `json:"scope"`
	Category     TaskCategory  `json:"category"`
	Frequency    TaskFrequency `json:"frequency"`
	Weekday      *time.Weekday `json:"weekday,omitempty"`
	SkipHolidays bool          `json:"skip_holidays"`
}

// DueOn reports whether the task is expected on the given day.
func (d TaskDefinition) DueOn(day time.Time, isHoliday func(time.Time) bool) bool {
	if d.SkipHolidays && isHoliday != nil && isHoliday(day) {
		return false
	}
	if d.Frequency == TaskFrequencyWeekly {
		return d.Weekday != nil && day.Weekday() == *d.Weekday
	}
	return true
}

// TaskCatalog is the ordered set of task definitions. Type ids are unique.
type TaskCatalog struct {
	Definitions []TaskDefinition
}

func (c TaskCatalog) ByScope(scope TaskScope) []TaskDefinition {
	var out []TaskDefinition
	for _, d := range c.Definitions {
		if d.Scope == scope {
			out = append(out, d)
		}
	}
	return out
}

func (c TaskCatalog) CountByScope(scope TaskScope) int {
	n := 0
	for _, d := range c.Definitions {
		if d.Scope == scope {
			n++
		}
	}
	return n
}

func (c TaskCatalog) Lookup(typeID string) (TaskDefinition, bool) {
	for _, d := range c.Definitions {
		if d.TypeID == typeID {
			return d, true
		}
	}
	return TaskDefinition{}, false
}

// CategoryOf returns the category of a task type id, or TaskCategoryOther
// for ids the catalog does not know.
func (c TaskCatalog) CategoryOf(typeID string) TaskCategory {
	if d, ok := c.Lookup(typeID); ok {
		return d.Category
	}
	return TaskCategoryOther
}

// Categories lists the distinct categories in catalog order.
func (c TaskCatalog) Categories() []TaskCategory {
	seen := map[TaskCategory]bool{}
	var out []TaskCategory
	for _, d := range c.Definitions {
		if !seen[d.Category] {
			seen[d.Category] = true
			out = append(out, d.Category)
		}
	}
	return out
}

// DueOn returns the sub-catalog of tasks expected on day.
func (c TaskCatalog) DueOn(day time.Time, isHoliday func(time.Time) bool) TaskCatalog {
	out := TaskCatalog{Definitions: make([]TaskDefinition, 0, len(c.Definitions))}
	for _, d := range c.Definitions {
		if d.DueOn(day, isHoliday) {
			out.Definitions = append(out.Definitions, d)
		}
	}
	return out
}

// Task type ids used by stored logs.
const (
	TaskTypeRoutineHousekeeping = "Routine Housekeeping"
	TaskTypeBrooming            = "Brooming"
	TaskTypeMopping             = "Mopping"
	TaskTypeStaircaseCleaning   = "Staircase Cleaning"
	TaskTypeGlassEntrance       = "glass-entrance"
	TaskTypeDrivewayBroom       = "driveway-broom"
)

func DefaultCatalog() TaskCatalog {
	return TaskCatalog{Definitions: []TaskDefinition{
		{
			TypeID:    TaskTypeRoutineHousekeeping,
			Label:     "Routine Housekeeping",
			Icon:      "🗑️",
			Scope:     TaskScopePerFlat,
			Category:  TaskCategoryRoutine,
			Frequency: TaskFrequencyDaily,
		},
		{
			TypeID:    TaskTypeBrooming,
			Label:     "Lobby Brooming",
			Icon:      "🧹",
			Scope:     TaskScopePerFloor,
			Category:  TaskCategoryBrooming,
			Frequency: TaskFrequencyDaily,
		},
		{
			TypeID:    TaskTypeMopping,
			Label:     "Floor Mopping",
			Icon:      "🧼",
			Scope:     TaskScopePerFloor,
			Category:  TaskCategoryMopping,
			Frequency: TaskFrequencyDaily,
		},
		{
			TypeID:    TaskTypeStaircaseCleaning,
			Label:     "Staircase Cleaning",
			Icon:      "🪜",
			Scope:     TaskScopePerFloor,
			Category:  TaskCategoryStaircase,
			Frequency: TaskFrequencyDaily,
		},
		{
			TypeID:    TaskTypeGlassEntrance,
			Label:     "Entrance Glass Cleaning",
			Icon:      "🪟",
			Scope:     TaskScopePerBlock,
			Category:  TaskCategoryGlassCleaning,
			Frequency: TaskFrequencyDaily,
		},
		{
			TypeID:    TaskTypeDrivewayBroom,
			Label:     "Driveway Cleaning",
			Icon:      "🚗",
			Area:      "Society Driveway",
			Scope:     TaskScopeCommon,
			Category:  TaskCategoryDriveway,
			Frequency: TaskFrequencyDaily,
		},
	}}
}
