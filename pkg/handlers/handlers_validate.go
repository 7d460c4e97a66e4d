package handlers

import (
	"fmt"
	"net/http"

	"github.com/arnavshah/seatplan-api/pkg/models"
	"github.com/arnavshah/seatplan-api/pkg/seating"
	"github.com/gin-gonic/gin"
)

// ValidateInput checks an exam payload without allocating it
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.ExamData
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(input.Rooms) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"valid": false,
			"error": "At least one room is required",
		})
		return
	}

	if err := seating.CheckRooms(input.Rooms); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	seats := 0
	roomNos := make(map[int]bool)
	for _, r := range input.Rooms {
		if roomNos[r.RoomNo] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": fmt.Sprintf("Duplicate room number: %d", r.RoomNo)})
			return
		}
		roomNos[r.RoomNo] = true
		seats += r.Capacity()
	}

	programs := make(map[int]bool)
	for _, p := range input.Programs {
		programs[p.ProgramCode] = true
	}

	labels := make(map[string]bool)
	for _, s := range input.Students {
		label := s.Label()
		if labels[label] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate student: " + label})
			return
		}
		labels[label] = true
		if !programs[s.ProgramCode] {
			c.JSON(http.StatusOK, gin.H{
				"valid": false,
				"error": fmt.Sprintf("Student %s belongs to program %d which is not in the exam", label, s.ProgramCode),
			})
			return
		}
	}

	warnings := []string{}
	if len(input.Students) > seats {
		warnings = append(warnings, fmt.Sprintf("%d students but only %d seats: %d will be unseated",
			len(input.Students), seats, len(input.Students)-seats))
	}
	if len(programs) == 1 && len(input.Students) > 1 {
		warnings = append(warnings, "Only one program: neighbouring seats will share a program")
	}

	c.JSON(http.StatusOK, gin.H{
		"valid":    true,
		"warnings": warnings,
		"stats": gin.H{
			"program_count": len(programs),
			"room_count":    len(input.Rooms),
			"student_count": len(input.Students),
			"seat_count":    seats,
		},
	})
}
