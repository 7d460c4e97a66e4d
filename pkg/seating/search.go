package seating

import "github.com/arnavshah/seatplan-api/pkg/models"

// Seat is the location of one student in an allocation run
type Seat struct {
	RoomNo   int            `json:"roomNo"`
	Row      int            `json:"row"`
	Column   int            `json:"column"`
	Bench    int            `json:"bench"`
	Position int            `json:"position"`
	Label    string         `json:"label"`
	Forced   bool           `json:"forced"`
	Student  models.Student `json:"student"`
}

// benchOf splits a seat column into its bench and the position on that bench
func benchOf(room models.Room, col int) (bench, pos int) {
	if room.SeatsPerBench <= 0 {
		return 0, col
	}
	return col / room.SeatsPerBench, col % room.SeatsPerBench
}

// FindSeat looks up the student identified by program, semester and roll
func FindSeat(result models.AllocationResult, programCode, semester, roll int) (Seat, bool) {
	for _, ra := range result.Rooms {
		for row, seats := range ra.Grid {
			for col, p := range seats {
				if p == nil {
					continue
				}
				st := p.Student
				if st.ProgramCode != programCode || st.Semester != semester || st.Roll != roll {
					continue
				}
				bench, pos := benchOf(ra.Room, col)
				return Seat{
					RoomNo:   ra.Room.RoomNo,
					Row:      row,
					Column:   col,
					Bench:    bench,
					Position: pos,
					Label:    p.Label,
					Forced:   p.Forced,
					Student:  st,
				}, true
			}
		}
	}
	return Seat{}, false
}

// FindUnseated returns the unseated entry of a student, if any
func FindUnseated(result models.AllocationResult, programCode, semester, roll int) (models.UnseatedStudent, bool) {
	for _, u := range result.Unseated {
		st := u.Student
		if st.ProgramCode == programCode && st.Semester == semester && st.Roll == roll {
			return u, true
		}
	}
	return models.UnseatedStudent{}, false
}
