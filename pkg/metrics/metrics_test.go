package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/arnavshah/seatplan-api/pkg/models"
)

func TestRecorder_Observe(t *testing.T) {
	r := NewRecorder()
	r.Observe(models.AllocationResult{
		SeatedStudents: 3,
		Unseated:       []models.UnseatedStudent{{}},
		Conflicts:      []models.AdjacencyConflict{{}, {}},
	}, time.Millisecond)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	out := string(body)

	for _, want := range []string{
		"seatplan_allocations_total 1",
		"seatplan_students_seated_total 3",
		"seatplan_students_unseated_total 1",
		"seatplan_forced_placements_total 2",
		"seatplan_allocation_seconds_count 1",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected metrics output to contain %q", want)
		}
	}
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	r.Observe(models.AllocationResult{}, time.Second)
}
