package seating

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arnavshah/seatplan-api/pkg/models"
)

const emptySeat = "--"

// RenderText writes a room grid as text. Forced seats carry a trailing '*' and
// benches are separated by a wider gap.
func RenderText(w io.Writer, ra models.RoomArrangement) error {
	width := len(emptySeat)
	for _, row := range ra.Grid {
		for _, p := range row {
			if p != nil && len(cellText(p)) > width {
				width = len(cellText(p))
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Room %d (%d rows x %d benches x %d seats)\n",
		ra.Room.RoomNo, ra.Room.NumRow, ra.Room.RoomColumn, ra.Room.SeatsPerBench)

	perBench := ra.Room.SeatsPerBench
	for _, row := range ra.Grid {
		for idx, p := range row {
			text := emptySeat
			if p != nil {
				text = cellText(p)
			}
			fmt.Fprintf(&b, "%-*s", width, text)
			if idx == len(row)-1 {
				break
			}
			b.WriteString(" ")
			if perBench > 0 && (idx+1)%perBench == 0 {
				b.WriteString("   ")
			}
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func cellText(p *models.Placement) string {
	if p.Forced {
		return p.Label + "*"
	}
	return p.Label
}

// WriteCSV exports every occupied seat of a run, one row per seat
func WriteCSV(w io.Writer, result models.AllocationResult) error {
	writer := csv.NewWriter(w)
	writer.Write([]string{"room_no", "row", "column", "bench", "position", "program_code", "semester", "roll", "student_id", "forced"})

	for _, ra := range result.Rooms {
		for row, seats := range ra.Grid {
			for col, p := range seats {
				if p == nil {
					continue
				}
				bench, pos := benchOf(ra.Room, col)
				writer.Write([]string{
					strconv.Itoa(ra.Room.RoomNo),
					strconv.Itoa(row),
					strconv.Itoa(col),
					strconv.Itoa(bench),
					strconv.Itoa(pos),
					strconv.Itoa(p.Student.ProgramCode),
					strconv.Itoa(p.Student.Semester),
					strconv.Itoa(p.Student.Roll),
					p.Student.StudentID,
					strconv.FormatBool(p.Forced),
				})
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
