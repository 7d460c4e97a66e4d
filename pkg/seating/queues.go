package seating

import (
	"sort"

	"github.com/arnavshah/seatplan-api/pkg/models"
)

// SortPrograms returns the programs deduplicated by code and sorted by code ascending
func SortPrograms(programs []models.Program) []models.Program {
	seen := make(map[int]bool, len(programs))
	out := make([]models.Program, 0, len(programs))
	for _, p := range programs {
		if seen[p.ProgramCode] {
			continue
		}
		seen[p.ProgramCode] = true
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ProgramCode < out[j].ProgramCode
	})
	return out
}

// Queues holds the not-yet-seated students of one allocation run, one queue per program.
// Queues are drained front to back and never refilled.
type Queues struct {
	order   []int
	queues  map[int][]models.Student
	orphans []models.Student
}

// NewQueues partitions students into per-program queues. Students keep their input
// order within a queue. Students of programs that are not listed are kept apart as orphans.
func NewQueues(programs []models.Program, students []models.Student) *Queues {
	sorted := SortPrograms(programs)
	q := &Queues{
		order:  make([]int, 0, len(sorted)),
		queues: make(map[int][]models.Student, len(sorted)),
	}
	for _, p := range sorted {
		q.order = append(q.order, p.ProgramCode)
		q.queues[p.ProgramCode] = nil
	}
	for _, st := range students {
		if _, ok := q.queues[st.ProgramCode]; !ok {
			q.orphans = append(q.orphans, st)
			continue
		}
		q.queues[st.ProgramCode] = append(q.queues[st.ProgramCode], st)
	}
	return q
}

// Order returns the program codes in the order they are scanned
func (q *Queues) Order() []int {
	return q.order
}

// Len returns how many students of a program are still queued
func (q *Queues) Len(programCode int) int {
	return len(q.queues[programCode])
}

// Pop removes and returns the front student of a program's queue
func (q *Queues) Pop(programCode int) (models.Student, bool) {
	queue := q.queues[programCode]
	if len(queue) == 0 {
		return models.Student{}, false
	}
	st := queue[0]
	q.queues[programCode] = queue[1:]
	return st, true
}

// Remaining counts every queued student across all programs
func (q *Queues) Remaining() int {
	n := 0
	for _, code := range q.order {
		n += len(q.queues[code])
	}
	return n
}

// Drain empties every queue and returns the students in program order
func (q *Queues) Drain() []models.Student {
	var out []models.Student
	for _, code := range q.order {
		out = append(out, q.queues[code]...)
		q.queues[code] = nil
	}
	return out
}

// Orphans returns the students whose program is not part of the run
func (q *Queues) Orphans() []models.Student {
	return q.orphans
}
