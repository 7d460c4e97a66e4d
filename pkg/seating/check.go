package seating

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/arnavshah/seatplan-api/pkg/models"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report JSON field names instead of Go struct names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// GeometryError lists rooms whose layout would produce a degenerate grid
type GeometryError struct {
	Problems []string
}

func (e *GeometryError) Error() string {
	return "invalid room geometry: " + strings.Join(e.Problems, "; ")
}

// CheckRooms validates room geometry before allocation. Every dimension must be at least 1
// and within the bounds declared on models.Room.
func CheckRooms(rooms []models.Room) error {
	var problems []string
	for _, room := range rooms {
		err := validate.Struct(room)
		if err == nil {
			continue
		}
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return errors.Wrapf(err, "validate room %d", room.RoomNo)
		}
		for _, fe := range verrs {
			bound := "at least"
			if fe.Tag() == "max" {
				bound = "at most"
			}
			problems = append(problems, fmt.Sprintf("room %d: %s must be %s %s", room.RoomNo, fe.Field(), bound, fe.Param()))
		}
	}
	if len(problems) > 0 {
		return &GeometryError{Problems: problems}
	}
	return nil
}

// Violation is a pair of neighbouring seats holding the same program
type Violation struct {
	RoomNo      int    `json:"roomNo"`
	Row         int    `json:"row"`
	Column      int    `json:"column"`
	ProgramCode int    `json:"programCode"`
	Message     string `json:"message"`
}

// Violations re-checks a finished arrangement for same-program neighbours.
// Column is the right-hand seat of each offending pair.
func Violations(result models.AllocationResult) []Violation {
	var out []Violation
	for _, ra := range result.Rooms {
		for row, seats := range ra.Grid {
			for col := 1; col < len(seats); col++ {
				left, cur := seats[col-1], seats[col]
				if left == nil || cur == nil {
					continue
				}
				if left.Student.ProgramCode != cur.Student.ProgramCode {
					continue
				}
				out = append(out, Violation{
					RoomNo:      ra.Room.RoomNo,
					Row:         row,
					Column:      col,
					ProgramCode: cur.Student.ProgramCode,
					Message: fmt.Sprintf("Room %d: adjacent students from program %d at row %d, seats %d-%d",
						ra.Room.RoomNo, cur.Student.ProgramCode, row, col-1, col),
				})
			}
		}
	}
	return out
}

// Statistics summarises an allocation run
type Statistics struct {
	TotalRooms          int         `json:"totalRooms"`
	TotalSeats          int         `json:"totalSeats"`
	OccupiedSeats       int         `json:"occupiedSeats"`
	AvailableSeats      int         `json:"availableSeats"`
	OccupancyRate       float64     `json:"occupancyRate"`
	ProgramDistribution map[int]int `json:"programDistribution"`
	ViolationCount      int         `json:"violationCount"`
	ForcedCount         int         `json:"forcedCount"`
	UnseatedCount       int         `json:"unseatedCount"`
	IsValidAllocation   bool        `json:"isValidAllocation"`
}

// Stats computes occupancy and program distribution for a run
func Stats(result models.AllocationResult) Statistics {
	st := Statistics{
		TotalRooms:          len(result.Rooms),
		ProgramDistribution: make(map[int]int),
		ForcedCount:         len(result.Conflicts),
		UnseatedCount:       len(result.Unseated),
	}
	for _, ra := range result.Rooms {
		st.TotalSeats += ra.Room.Capacity()
		for _, row := range ra.Grid {
			for _, p := range row {
				if p == nil {
					continue
				}
				st.OccupiedSeats++
				st.ProgramDistribution[p.Student.ProgramCode]++
			}
		}
	}
	st.AvailableSeats = st.TotalSeats - st.OccupiedSeats
	if st.TotalSeats > 0 {
		st.OccupancyRate = float64(st.OccupiedSeats) / float64(st.TotalSeats) * 100
	}
	st.ViolationCount = len(Violations(result))
	st.IsValidAllocation = st.ViolationCount == 0
	return st
}
