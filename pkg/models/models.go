package models

import "fmt"

// Program is an academic program sitting an exam
type Program struct {
	ProgramCode int    `json:"programCode"`
	ProgramName string `json:"programName"`
}

// Student is identified by program, semester and roll
type Student struct {
	ProgramCode int    `json:"programCode"`
	Semester    int    `json:"semester"`
	Roll        int    `json:"roll"`
	StudentID   string `json:"studentId,omitempty"`
}

// Label is the text printed in a seat: programCode-semester-roll.
// It doubles as the student's identity within an exam.
func (s Student) Label() string {
	return fmt.Sprintf("%d-%d-%d", s.ProgramCode, s.Semester, s.Roll)
}

// Upper bounds on room geometry. The validate tags on Room repeat these values.
const (
	MaxRows          = 200
	MaxBenches       = 100
	MaxSeatsPerBench = 10
)

// Room describes an exam hall. Benches hold SeatsPerBench adjacent seats.
type Room struct {
	RoomNo        int `json:"roomNo"`
	NumRow        int `json:"numRow" validate:"min=1,max=200"`
	RoomColumn    int `json:"roomColumn" validate:"min=1,max=100"`
	SeatsPerBench int `json:"seatsPerBench" validate:"min=1,max=10"`
}

// grid returns the seat rows and columns. A room with a dimension below 1 or
// above its bound has no usable seats and yields 0, 0.
func (r Room) grid() (rows, cols int) {
	if r.NumRow < 1 || r.RoomColumn < 1 || r.SeatsPerBench < 1 {
		return 0, 0
	}
	if r.NumRow > MaxRows || r.RoomColumn > MaxBenches || r.SeatsPerBench > MaxSeatsPerBench {
		return 0, 0
	}
	return r.NumRow, r.RoomColumn * r.SeatsPerBench
}

// Rows returns the number of seat rows
func (r Room) Rows() int {
	rows, _ := r.grid()
	return rows
}

// Columns returns the number of seat columns (benches * seats per bench)
func (r Room) Columns() int {
	_, cols := r.grid()
	return cols
}

// Capacity is the total seat count of the room
func (r Room) Capacity() int {
	rows, cols := r.grid()
	return rows * cols
}

// ExamData is the snapshot of an exam the allocator runs against
type ExamData struct {
	ExamID   int       `json:"examId"`
	ExamDate string    `json:"examDate,omitempty"`
	Programs []Program `json:"programs"`
	Rooms    []Room    `json:"rooms"`
	Students []Student `json:"students"`
}

// Placement is an occupied seat
type Placement struct {
	Student Student `json:"student"`
	Label   string  `json:"label"`
	// Forced is set when the seat's left neighbour shares the program because
	// no other program had students left
	Forced bool `json:"forced,omitempty"`
}

// RoomArrangement is the seating grid of one room. Grid[row][col] is nil for an empty seat.
type RoomArrangement struct {
	Room Room           `json:"room"`
	Grid [][]*Placement `json:"grid"`
}

// Occupied counts the filled seats in the room
func (ra RoomArrangement) Occupied() int {
	n := 0
	for _, row := range ra.Grid {
		for _, p := range row {
			if p != nil {
				n++
			}
		}
	}
	return n
}

// AdjacencyConflict records a seat where the adjacency rule was overridden
type AdjacencyConflict struct {
	RoomNo      int    `json:"roomNo"`
	Row         int    `json:"row"`
	Column      int    `json:"column"`
	ProgramCode int    `json:"programCode"`
	Reason      string `json:"reason"`
}

// UnseatedStudent is a student that did not receive a seat
type UnseatedStudent struct {
	Student Student `json:"student"`
	Reason  string  `json:"reason"`
}

// AllocationResult is the outcome of one allocation run
type AllocationResult struct {
	RunID          string              `json:"runId"`
	Rooms          []RoomArrangement   `json:"rooms"`
	Unseated       []UnseatedStudent   `json:"unseated"`
	Conflicts      []AdjacencyConflict `json:"conflicts,omitempty"`
	TotalStudents  int                 `json:"totalStudents"`
	SeatedStudents int                 `json:"seatedStudents"`
	TotalSeats     int                 `json:"totalSeats"`
}
