package handlers

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/arnavshah/seatplan-api/pkg/examapi"
	"github.com/arnavshah/seatplan-api/pkg/models"
	"github.com/arnavshah/seatplan-api/pkg/seating"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

func strict(c *gin.Context) bool {
	v, _ := strconv.ParseBool(c.DefaultQuery("strict", "false"))
	return v
}

// arrange runs one allocation and records metrics and usage for it
func (h *Handler) arrange(c *gin.Context, data *models.ExamData) models.AllocationResult {
	var opts []seating.Option
	if strict(c) {
		opts = append(opts, seating.WithStrictAdjacency())
	}

	start := time.Now()
	result := seating.Allocate(data.Programs, data.Students, data.Rooms, opts...)
	h.Metrics.Observe(result, time.Since(start))

	if len(result.Conflicts) > 0 || len(result.Unseated) > 0 {
		log.Printf("allocation %s (exam %d): %d/%d seated, %d forced, %d unseated",
			result.RunID, data.ExamID, result.SeatedStudents, result.TotalStudents,
			len(result.Conflicts), len(result.Unseated))
	}

	h.RecordUsage(c, len(data.Rooms), len(data.Students))
	return result
}

// checkGeometry answers 422 and returns false when a room cannot hold a grid
func checkGeometry(c *gin.Context, rooms []models.Room) bool {
	err := seating.CheckRooms(rooms)
	if err == nil {
		return true
	}
	var gerr *seating.GeometryError
	if errors.As(err, &gerr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": gerr.Error(), "problems": gerr.Problems})
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	return false
}

// ArrangeJSON allocates seats for an exam posted as JSON
func (h *Handler) ArrangeJSON(c *gin.Context) {
	var input models.ExamData
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !checkGeometry(c, input.Rooms) {
		return
	}

	c.JSON(http.StatusOK, h.arrange(c, &input))
}

// ArrangeCSV allocates seats for an exam uploaded as three CSV files
func (h *Handler) ArrangeCSV(c *gin.Context) {
	programsFile, _ := c.FormFile("programs_file")
	studentsFile, _ := c.FormFile("students_file")
	roomsFile, _ := c.FormFile("rooms_file")

	if programsFile == nil || studentsFile == nil || roomsFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "programs_file, students_file and rooms_file are required"})
		return
	}

	var input models.ExamData
	pt, err := readTable(programsFile, "programCode")
	if err == nil {
		input.Programs, err = parsePrograms(pt)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st, err := readTable(studentsFile, "programCode", "semester", "roll")
	if err == nil {
		input.Students, err = parseStudents(st)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rt, err := readTable(roomsFile, "roomNo", "numRow", "roomColumn", "seatsPerBench")
	if err == nil {
		input.Rooms, err = parseRooms(rt)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !checkGeometry(c, input.Rooms) {
		return
	}

	result := h.arrange(c, &input)

	var out bytes.Buffer
	if err := seating.WriteCSV(&out, result); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not export CSV"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result, "csv": out.String()})
}

// examSnapshot loads the exam named in the path, answering the error itself on failure
func (h *Handler) examSnapshot(c *gin.Context) (*models.ExamData, bool) {
	examID, err := strconv.Atoi(c.Param("examId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "examId must be a number"})
		return nil, false
	}
	if h.Exams == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Exam API not configured"})
		return nil, false
	}

	data, err := h.Exams.ExamSnapshot(c.Request.Context(), examID)
	switch {
	case err == nil:
	case errors.Is(err, examapi.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Exam %d not found", examID)})
		return nil, false
	default:
		log.Printf("exam api: exam %d: %v", examID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Exam API request failed"})
		return nil, false
	}

	if !checkGeometry(c, data.Rooms) {
		return nil, false
	}
	return data, true
}

// cacheInvalidator is implemented by exam sources that keep snapshots
type cacheInvalidator interface {
	Invalidate(ctx context.Context, examID int) error
}

// ClearExamCache drops the cached snapshot of an exam so the next request refetches it
func (h *Handler) ClearExamCache(c *gin.Context) {
	examID, err := strconv.Atoi(c.Param("examId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "examId must be a number"})
		return
	}
	inv, ok := h.Exams.(cacheInvalidator)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"message": "No exam cache configured"})
		return
	}
	if err := inv.Invalidate(c.Request.Context(), examID); err != nil {
		log.Printf("cache: invalidate exam %d: %v", examID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not clear exam cache"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Cache cleared for exam %d", examID)})
}

// ExamArrangement allocates seats for an exam fetched from the exam API
func (h *Handler) ExamArrangement(c *gin.Context) {
	data, ok := h.examSnapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.arrange(c, data))
}

// ExamArrangementCSV returns the arrangement of an exam as a CSV attachment
func (h *Handler) ExamArrangementCSV(c *gin.Context) {
	data, ok := h.examSnapshot(c)
	if !ok {
		return
	}
	result := h.arrange(c, data)

	var out bytes.Buffer
	if err := seating.WriteCSV(&out, result); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not export CSV"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=exam-%d-seating.csv", data.ExamID))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", out.Bytes())
}

// ExamStatistics returns occupancy figures and adjacency violations for an exam
func (h *Handler) ExamStatistics(c *gin.Context) {
	data, ok := h.examSnapshot(c)
	if !ok {
		return
	}
	result := h.arrange(c, data)

	violations := seating.Violations(result)
	if violations == nil {
		violations = []seating.Violation{}
	}
	c.JSON(http.StatusOK, gin.H{
		"runId":      result.RunID,
		"statistics": seating.Stats(result),
		"violations": violations,
		"unseated":   result.Unseated,
	})
}

// RoomVisualization renders the grid of one room as text
func (h *Handler) RoomVisualization(c *gin.Context) {
	roomNo, err := strconv.Atoi(c.Param("roomNo"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "roomNo must be a number"})
		return
	}
	data, ok := h.examSnapshot(c)
	if !ok {
		return
	}

	found := false
	for _, r := range data.Rooms {
		if r.RoomNo == roomNo {
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Room %d is not part of exam %d", roomNo, data.ExamID)})
		return
	}

	// Rooms share program queues, so the whole exam is allocated to get this room's grid
	result := h.arrange(c, data)
	for _, ra := range result.Rooms {
		if ra.Room.RoomNo != roomNo {
			continue
		}
		var out strings.Builder
		if err := seating.RenderText(&out, ra); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not render room"})
			return
		}
		c.String(http.StatusOK, "%s", out.String())
		return
	}
}

// FindSeat locates one student of an exam by program, semester and roll
func (h *Handler) FindSeat(c *gin.Context) {
	var q struct {
		ProgramCode *int `form:"programCode" binding:"required"`
		Semester    *int `form:"semester" binding:"required"`
		Roll        *int `form:"roll" binding:"required"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "programCode, semester and roll are required numbers"})
		return
	}
	data, ok := h.examSnapshot(c)
	if !ok {
		return
	}

	result := h.arrange(c, data)
	program, semester, roll := *q.ProgramCode, *q.Semester, *q.Roll
	if seat, found := seating.FindSeat(result, program, semester, roll); found {
		c.JSON(http.StatusOK, seat)
		return
	}

	label := models.Student{ProgramCode: program, Semester: semester, Roll: roll}.Label()
	if u, found := seating.FindUnseated(result, program, semester, roll); found {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Student %s has no seat: %s", label, u.Reason)})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Student %s is not part of exam %d", label, data.ExamID)})
}
