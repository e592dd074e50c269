package dtos

import (
	"math"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
)

// CompletionCount is a done/total pair for one progress ring.
type CompletionCount struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

func (c CompletionCount) Percent() int {
	return PercentOf(c.Done, c.Total)
}

// PercentOf rounds half up and is 0 when total is 0.
func PercentOf(done, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Floor(100*float64(done)/float64(total) + 0.5))
}

// DailyProgress is the dashboard-level aggregate for one day.
type DailyProgress struct {
	Date              string                                  `json:"date"`
	TotalExpected     int                                     `json:"total_expected"`
	TotalCompleted    int                                     `json:"total_completed"`
	Percent           int                                     `json:"percent"`
	Categories        map[models.TaskCategory]CompletionCount `json:"categories"`
	ActiveFlatsLoaded bool                                    `json:"active_flats_loaded"`
	Holiday           bool                                    `json:"holiday"`
}

type TaskStatus struct {
	TypeID string `json:"type_id"`
	Label  string `json:"label"`
	Icon   string `json:"icon"`
	Area   string `json:"area,omitempty"`
	Done   bool   `json:"done"`
}

type BlockProgress struct {
	Block      int             `json:"block"`
	Label      string          `json:"label"`
	Completion CompletionCount `json:"completion"`
	Percent    int             `json:"percent"`
	BlockTasks []TaskStatus    `json:"block_tasks"`
}

// NavigationResponse backs the staff block picker.
type NavigationResponse struct {
	Blocks      []BlockProgress `json:"blocks"`
	CommonTasks []TaskStatus    `json:"common_tasks"`
}

type FloorProgress struct {
	Floor      int             `json:"floor"`
	Flats      []string        `json:"flats"`
	Completion CompletionCount `json:"completion"`
	Percent    int             `json:"percent"`
}

type FloorsResponse struct {
	Block  int             `json:"block"`
	Floors []FloorProgress `json:"floors"`
}

type FlatTasks struct {
	Flat   string       `json:"flat"`
	Active bool         `json:"active"`
	Tasks  []TaskStatus `json:"tasks"`
}

// FloorTasksResponse lists every task slot on one floor.
type FloorTasksResponse struct {
	Block      int             `json:"block"`
	Floor      int             `json:"floor"`
	Completion CompletionCount `json:"completion"`
	Flats      []FlatTasks     `json:"flats"`
	FloorTasks []TaskStatus    `json:"floor_tasks"`
}

type BlockView struct {
	ID     int              `json:"id"`
	Label  string           `json:"label"`
	Floors map[int][]string `json:"floors"`
}

type TopologyResponse struct {
	Blocks  []BlockView             `json:"blocks"`
	Floors  []int                   `json:"floors"`
	Catalog []models.TaskDefinition `json:"catalog"`
}
