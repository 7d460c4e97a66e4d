package seating

import (
	"fmt"

	"github.com/arnavshah/seatplan-api/pkg/models"
	"github.com/google/uuid"
)

// Reasons reported for unseated students
const (
	ReasonCapacity  = "capacity exhausted"
	ReasonNoProgram = "program not in exam"
)

// Option configures an Allocator
type Option func(*Allocator)

// WithStrictAdjacency leaves a seat empty rather than placing a student next to
// someone of the same program
func WithStrictAdjacency() Option {
	return func(a *Allocator) {
		a.Strict = true
	}
}

// Allocator lays students into room grids so that horizontally adjacent seats
// hold different programs whenever another program still has students.
// An Allocator owns its queues and serves a single run.
type Allocator struct {
	Queues    *Queues
	Strict    bool
	Conflicts []models.AdjacencyConflict

	total int
}

// NewAllocator creates an allocator for one run over the given exam snapshot
func NewAllocator(programs []models.Program, students []models.Student, opts ...Option) *Allocator {
	a := &Allocator{
		Queues: NewQueues(programs, students),
		total:  len(students),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Allocate is a convenience wrapper running a fresh allocator over the rooms
func Allocate(programs []models.Program, students []models.Student, rooms []models.Room, opts ...Option) models.AllocationResult {
	return NewAllocator(programs, students, opts...).Allocate(rooms)
}

// Allocate fills the rooms in the order given. All rooms draw from the same queues,
// so a student seated in one room is unavailable to the next.
func (a *Allocator) Allocate(rooms []models.Room) models.AllocationResult {
	result := models.AllocationResult{
		RunID:         uuid.NewString(),
		Rooms:         make([]models.RoomArrangement, 0, len(rooms)),
		Unseated:      []models.UnseatedStudent{},
		TotalStudents: a.total,
	}

	for _, room := range rooms {
		arrangement := a.FillRoom(room)
		result.Rooms = append(result.Rooms, arrangement)
		result.TotalSeats += room.Capacity()
		result.SeatedStudents += arrangement.Occupied()
	}

	for _, st := range a.Queues.Drain() {
		result.Unseated = append(result.Unseated, models.UnseatedStudent{Student: st, Reason: ReasonCapacity})
	}
	for _, st := range a.Queues.Orphans() {
		result.Unseated = append(result.Unseated, models.UnseatedStudent{Student: st, Reason: ReasonNoProgram})
	}
	result.Conflicts = a.Conflicts

	return result
}

// FillRoom builds the grid of one room column by column: every row of a column
// is filled before moving to the next column.
func (a *Allocator) FillRoom(room models.Room) models.RoomArrangement {
	rows, cols := room.Rows(), room.Columns()

	grid := make([][]*models.Placement, rows)
	for r := range grid {
		grid[r] = make([]*models.Placement, cols)
	}

	for col := 0; col < cols; col++ {
		for row := 0; row < rows; row++ {
			var left *models.Placement
			if col > 0 {
				left = grid[row][col-1]
			}
			grid[row][col] = a.pick(room.RoomNo, row, col, left)
		}
	}

	return models.RoomArrangement{Room: room, Grid: grid}
}

// pick dequeues the student for one seat. Programs are scanned in code order and
// the first one with students left that differs from the left neighbour wins.
func (a *Allocator) pick(roomNo, row, col int, left *models.Placement) *models.Placement {
	fallback, found := 0, false

	for _, code := range a.Queues.Order() {
		if a.Queues.Len(code) == 0 {
			continue
		}
		if left == nil || left.Student.ProgramCode != code {
			st, _ := a.Queues.Pop(code)
			return &models.Placement{Student: st, Label: st.Label()}
		}
		if !found {
			fallback, found = code, true
		}
	}

	// Only the neighbour's program has students left
	if !found || a.Strict {
		return nil
	}

	st, _ := a.Queues.Pop(fallback)
	a.Conflicts = append(a.Conflicts, models.AdjacencyConflict{
		RoomNo:      roomNo,
		Row:         row,
		Column:      col,
		ProgramCode: fallback,
		Reason:      fmt.Sprintf("only program %d had students left", fallback),
	})
	return &models.Placement{Student: st, Label: st.Label(), Forced: true}
}
