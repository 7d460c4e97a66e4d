package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arnavshah/seatplan-api/pkg/config"
	"github.com/arnavshah/seatplan-api/pkg/models"
)

type countingSource struct {
	calls int
	err   error
}

func (c *countingSource) ExamSnapshot(ctx context.Context, examID int) (*models.ExamData, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &models.ExamData{ExamID: examID}, nil
}

func TestSnapshotSource_NilClientPassesThrough(t *testing.T) {
	src := &countingSource{}
	s := NewSnapshotSource(src, nil, time.Minute)

	for i := 0; i < 2; i++ {
		data, err := s.ExamSnapshot(context.Background(), 4)
		if err != nil || data.ExamID != 4 {
			t.Fatalf("ExamSnapshot() = %+v, %v", data, err)
		}
	}
	if src.calls != 2 {
		t.Errorf("Expected every call to reach the source, got %d calls", src.calls)
	}
	if err := s.Invalidate(context.Background(), 4); err != nil {
		t.Errorf("Invalidate() on a disabled cache returned %v", err)
	}
}

func TestSnapshotSource_PropagatesErrors(t *testing.T) {
	want := errors.New("upstream down")
	s := NewSnapshotSource(&countingSource{err: want}, nil, time.Minute)

	if _, err := s.ExamSnapshot(context.Background(), 1); !errors.Is(err, want) {
		t.Errorf("Expected upstream error, got %v", err)
	}
}

func TestNewRedisClient_Disabled(t *testing.T) {
	if c := NewRedisClient(config.Config{}); c != nil {
		t.Errorf("Expected nil client without an address")
	}
}

func TestKey(t *testing.T) {
	if got := key(42); got != "seatplan:exam:42" {
		t.Errorf("Unexpected cache key %q", got)
	}
}
