package handlers

import (
	"encoding/csv"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/arnavshah/seatplan-api/pkg/models"
	"github.com/pkg/errors"
)

// csvTable is a parsed CSV file addressed by header name
type csvTable struct {
	name string
	cols map[string]int
	rows [][]string
}

func readTable(fh *multipart.FileHeader, required ...string) (*csvTable, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", fh.Filename)
	}
	defer f.Close()
	return parseTable(fh.Filename, f, required...)
}

func parseTable(name string, r io.Reader, required ...string) (*csvTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Wrapf(err, "read %s header", name)
	}
	t := &csvTable{name: name, cols: make(map[string]int)}
	for i, h := range header {
		t.cols[strings.TrimSpace(h)] = i
	}
	for _, col := range required {
		if _, ok := t.cols[col]; !ok {
			return nil, errors.Errorf("%s: missing column %q", name, col)
		}
	}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", name)
		}
		t.rows = append(t.rows, record)
	}
	return t, nil
}

func (t *csvTable) str(row int, col string) string {
	i, ok := t.cols[col]
	if !ok || i >= len(t.rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.rows[row][i])
}

func (t *csvTable) num(row int, col string) (int, error) {
	v, err := strconv.Atoi(t.str(row, col))
	if err != nil {
		// +2: one for the header, one for 1-based line numbers
		return 0, errors.Errorf("%s line %d: %s is not a number", t.name, row+2, col)
	}
	return v, nil
}

func parsePrograms(t *csvTable) ([]models.Program, error) {
	out := make([]models.Program, 0, len(t.rows))
	for i := range t.rows {
		code, err := t.num(i, "programCode")
		if err != nil {
			return nil, err
		}
		out = append(out, models.Program{ProgramCode: code, ProgramName: t.str(i, "programName")})
	}
	return out, nil
}

func parseStudents(t *csvTable) ([]models.Student, error) {
	out := make([]models.Student, 0, len(t.rows))
	for i := range t.rows {
		var s models.Student
		var err error
		if s.ProgramCode, err = t.num(i, "programCode"); err != nil {
			return nil, err
		}
		if s.Semester, err = t.num(i, "semester"); err != nil {
			return nil, err
		}
		if s.Roll, err = t.num(i, "roll"); err != nil {
			return nil, err
		}
		s.StudentID = t.str(i, "studentId")
		out = append(out, s)
	}
	return out, nil
}

func parseRooms(t *csvTable) ([]models.Room, error) {
	out := make([]models.Room, 0, len(t.rows))
	for i := range t.rows {
		var r models.Room
		var err error
		if r.RoomNo, err = t.num(i, "roomNo"); err != nil {
			return nil, err
		}
		if r.NumRow, err = t.num(i, "numRow"); err != nil {
			return nil, err
		}
		if r.RoomColumn, err = t.num(i, "roomColumn"); err != nil {
			return nil, err
		}
		if r.SeatsPerBench, err = t.num(i, "seatsPerBench"); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}
