package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/constants"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/dtos"
	internal_utils "github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/utils"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
)

// ActiveFlatSource supplies the billing collaborator's active-flat map.
type ActiveFlatSource interface {
	FetchActiveFlats(ctx context.Context) (models.ActiveFlatMap, error)
}

type ProgressService struct {
	store     *ActivityStore
	topology  models.BuildingTopology
	catalog   models.TaskCatalog
	billing   ActiveFlatSource
	isHoliday func(time.Time) bool
}

// NewProgressService wires the progress views. billing may be nil, in which
// case the dashboard stays in lenient mode.
func NewProgressService(
	store *ActivityStore,
	topology models.BuildingTopology,
	catalog models.TaskCatalog,
	billing ActiveFlatSource,
) *ProgressService {
	return &ProgressService{
		store:     store,
		topology:  topology,
		catalog:   catalog,
		billing:   billing,
		isHoliday: internal_utils.IsSocietyHoliday,
	}
}

func (s *ProgressService) Topology() dtos.TopologyResponse {
	resp := dtos.TopologyResponse{
		Blocks:  make([]dtos.BlockView, 0, len(s.topology.Blocks)),
		Floors:  append([]int(nil), s.topology.Floors...),
		Catalog: append([]models.TaskDefinition(nil), s.catalog.Definitions...),
	}
	for _, b := range s.topology.Blocks {
		view := dtos.BlockView{ID: b.ID, Label: b.Label, Floors: make(map[int][]string, len(s.topology.Floors))}
		for _, f := range s.topology.Floors {
			view.Floors[f] = b.Flats(f)
		}
		resp.Blocks = append(resp.Blocks, view)
	}
	return resp
}

// ActiveFlats fetches the billing map. A failed fetch is treated as no data.
func (s *ProgressService) ActiveFlats(ctx context.Context) models.ActiveFlatMap {
	if s.billing == nil {
		return models.ActiveFlatMap{}
	}
	fctx, cancel := context.WithTimeout(ctx, constants.RemoteFetchTimeout)
	defer cancel()

	m, err := s.billing.FetchActiveFlats(fctx)
	if err != nil {
		utils.Logger.WithError(err).Warn("Failed to fetch active flats; counting leniently")
		return models.ActiveFlatMap{}
	}
	if m == nil {
		return models.ActiveFlatMap{}
	}
	return m
}

// DueCatalog is the catalog filtered to the tasks expected on day.
func (s *ProgressService) DueCatalog(day time.Time) models.TaskCatalog {
	return s.catalog.DueOn(day.In(s.store.Location()), s.isHoliday)
}

// Daily computes the dashboard aggregate for the current day.
func (s *ProgressService) Daily(ctx context.Context) dtos.DailyProgress {
	return s.DailyOn(ctx, s.store.Now())
}

// DailyOn computes the dashboard aggregate for the local day containing day.
// Only days inside the store window have logs.
func (s *ProgressService) DailyOn(ctx context.Context, day time.Time) dtos.DailyProgress {
	start, end := DayBounds(day, s.store.Location())
	logs := s.store.TaskLogsBetween(start, end)
	active := s.ActiveFlats(ctx)

	p := ComputeDailyProgress(s.topology, s.DueCatalog(start), active, logs)
	p.Date = start.Format(staffLogDateLayout)
	p.Holiday = s.isHoliday(start)
	return p
}

// Navigation is the staff block picker: raw per-block completion plus the
// block-level and common tasks.
func (s *ProgressService) Navigation() dtos.NavigationResponse {
	start, end := s.store.Today()
	logs := s.store.TaskLogsBetween(start, end)
	catalog := s.DueCatalog(start)

	resp := dtos.NavigationResponse{
		Blocks:      make([]dtos.BlockProgress, 0, len(s.topology.Blocks)),
		CommonTasks: []dtos.TaskStatus{},
	}
	for _, b := range s.topology.Blocks {
		c := BlockCompletion(s.topology, catalog, b.ID, logs)
		bp := dtos.BlockProgress{
			Block:      b.ID,
			Label:      b.Label,
			Completion: c,
			Percent:    c.Percent(),
			BlockTasks: []dtos.TaskStatus{},
		}
		for _, d := range catalog.ByScope(models.TaskScopePerBlock) {
			bp.BlockTasks = append(bp.BlockTasks, taskStatus(d, BlockTaskDone(b.ID, d.TypeID, logs)))
		}
		resp.Blocks = append(resp.Blocks, bp)
	}
	for _, d := range catalog.ByScope(models.TaskScopeCommon) {
		resp.CommonTasks = append(resp.CommonTasks, taskStatus(d, CommonTaskDone(d.TypeID, logs)))
	}
	return resp
}

// Floors lists raw completion for every floor of block.
func (s *ProgressService) Floors(block int) (dtos.FloorsResponse, error) {
	b, ok := s.topology.Block(block)
	if !ok {
		return dtos.FloorsResponse{}, unknownBlockError(block)
	}
	start, end := s.store.Today()
	logs := s.store.TaskLogsBetween(start, end)
	catalog := s.DueCatalog(start)

	resp := dtos.FloorsResponse{Block: b.ID, Floors: make([]dtos.FloorProgress, 0, len(s.topology.Floors))}
	for _, f := range s.topology.Floors {
		c := FloorCompletion(s.topology, catalog, b.ID, f, logs)
		resp.Floors = append(resp.Floors, dtos.FloorProgress{
			Floor:      f,
			Flats:      b.Flats(f),
			Completion: c,
			Percent:    c.Percent(),
		})
	}
	return resp, nil
}

// FloorTasks lists every task slot of one floor with its done flag. Active
// is informational only; navigation does not gate on billing.
func (s *ProgressService) FloorTasks(ctx context.Context, block, floor int) (dtos.FloorTasksResponse, error) {
	b, ok := s.topology.Block(block)
	if !ok {
		return dtos.FloorTasksResponse{}, unknownBlockError(block)
	}
	if !s.topology.HasFloor(floor) {
		return dtos.FloorTasksResponse{}, utils.NewAppError(
			http.StatusNotFound, utils.ErrCodeNotFound,
			fmt.Sprintf("Floor %d does not exist", floor), internal_utils.ErrInvalidLocation,
		)
	}

	start, end := s.store.Today()
	logs := s.store.TaskLogsBetween(start, end)
	catalog := s.DueCatalog(start)
	active := s.ActiveFlats(ctx)

	resp := dtos.FloorTasksResponse{
		Block:      b.ID,
		Floor:      floor,
		Completion: FloorCompletion(s.topology, catalog, b.ID, floor, logs),
		Flats:      []dtos.FlatTasks{},
		FloorTasks: []dtos.TaskStatus{},
	}
	for _, flat := range b.Flats(floor) {
		ft := dtos.FlatTasks{
			Flat:   flat,
			Active: active.IsActive(models.FlatKey(b.ID, flat, floor)),
			Tasks:  []dtos.TaskStatus{},
		}
		for _, d := range catalog.ByScope(models.TaskScopePerFlat) {
			ft.Tasks = append(ft.Tasks, taskStatus(d, isTaskDone(logs, b.ID, floor, d.TypeID, flat)))
		}
		resp.Flats = append(resp.Flats, ft)
	}
	for _, d := range catalog.ByScope(models.TaskScopePerFloor) {
		resp.FloorTasks = append(resp.FloorTasks, taskStatus(d, isTaskDone(logs, b.ID, floor, d.TypeID, "")))
	}
	return resp, nil
}

func taskStatus(d models.TaskDefinition, done bool) dtos.TaskStatus {
	return dtos.TaskStatus{TypeID: d.TypeID, Label: d.Label, Icon: d.Icon, Area: d.Area, Done: done}
}

func unknownBlockError(block int) error {
	return utils.NewAppError(
		http.StatusNotFound, utils.ErrCodeNotFound,
		fmt.Sprintf("Block %d does not exist", block), internal_utils.ErrInvalidLocation,
	)
}
