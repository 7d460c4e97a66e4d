package examapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arnavshah/seatplan-api/pkg/models"
)

func fakeAPI(t *testing.T, routes map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if status, isStatus := body.(int); isStatus {
			w.WriteHeader(status)
			w.Write([]byte("boom"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ExamData(t *testing.T) {
	srv := fakeAPI(t, map[string]any{
		"/api/exam-data/5/data": models.ExamData{
			ExamID:   5,
			ExamDate: "2025-06-01",
			Programs: []models.Program{{ProgramCode: 1, ProgramName: "BCA"}},
			Rooms:    []models.Room{{RoomNo: 101, NumRow: 5, RoomColumn: 3, SeatsPerBench: 2}},
			Students: []models.Student{{ProgramCode: 1, Semester: 2, Roll: 7}},
		},
	})

	c := NewClient(srv.URL + "/api/")
	data, err := c.ExamData(context.Background(), 5)
	if err != nil {
		t.Fatalf("ExamData() error = %v", err)
	}
	if data.ExamID != 5 || len(data.Programs) != 1 || len(data.Rooms) != 1 || len(data.Students) != 1 {
		t.Errorf("Unexpected exam data %+v", data)
	}
	if data.Rooms[0].Capacity() != 30 {
		t.Errorf("Expected room capacity 30, got %d", data.Rooms[0].Capacity())
	}
}

func TestClient_Errors(t *testing.T) {
	srv := fakeAPI(t, map[string]any{
		"/api/exam-data/9/data": http.StatusInternalServerError,
	})
	c := NewClient(srv.URL + "/api")

	_, err := c.ExamData(context.Background(), 1)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	_, err = c.ExamData(context.Background(), 9)
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("Expected ErrUpstream, got %v", err)
	}
	var herr *HTTPError
	if !errors.As(err, &herr) || herr.StatusCode != http.StatusInternalServerError || herr.Body != "boom" {
		t.Errorf("Expected an HTTPError with status 500, got %v", err)
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithTimeout(20*time.Millisecond))
	if _, err := c.Room(context.Background(), 1); err == nil {
		t.Errorf("Expected a timeout error")
	}
}

func TestClient_ExamSnapshotCompletesRooms(t *testing.T) {
	srv := fakeAPI(t, map[string]any{
		"/api/exam-data/3/data": models.ExamData{
			ExamID:   3,
			Rooms:    []models.Room{{RoomNo: 201, NumRow: 4}, {RoomNo: 202, NumRow: 2, RoomColumn: 1, SeatsPerBench: 2}},
			Students: []models.Student{{ProgramCode: 2, Semester: 1, Roll: 1}},
		},
		"/api/exams/programNames/3": []models.Program{{ProgramCode: 2, ProgramName: "BBA"}},
		"/api/rooms/201":            models.Room{RoomNo: 201, NumRow: 4, RoomColumn: 3, SeatsPerBench: 2},
	})

	c := NewClient(srv.URL + "/api")
	data, err := c.ExamSnapshot(context.Background(), 3)
	if err != nil {
		t.Fatalf("ExamSnapshot() error = %v", err)
	}
	if len(data.Programs) != 1 || data.Programs[0].ProgramName != "BBA" {
		t.Errorf("Expected programs from programNames endpoint, got %+v", data.Programs)
	}
	if data.Rooms[0].RoomColumn != 3 || data.Rooms[0].SeatsPerBench != 2 {
		t.Errorf("Expected room 201 geometry to be completed, got %+v", data.Rooms[0])
	}
	if data.Rooms[1].Capacity() != 4 {
		t.Errorf("Expected room 202 to be left untouched, got %+v", data.Rooms[1])
	}
}

func TestClient_ExamSnapshotMissingRoom(t *testing.T) {
	srv := fakeAPI(t, map[string]any{
		"/api/exam-data/4/data": models.ExamData{
			ExamID:   4,
			Programs: []models.Program{{ProgramCode: 1}},
			Rooms:    []models.Room{{RoomNo: 999}},
		},
	})

	c := NewClient(srv.URL + "/api")
	_, err := c.ExamSnapshot(context.Background(), 4)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for a room missing upstream, got %v", err)
	}
}
