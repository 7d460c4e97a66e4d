package config

import (
	"testing"
	"time"
)

func TestFromViper_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATA_PATH", "EXAM_API_BASE_URL", "EXAM_API_TIMEOUT", "CACHE_TTL", "REDIS_DB"} {
		t.Setenv(k, "")
	}

	cfg := FromViper(New())

	if cfg.Port != "8000" {
		t.Errorf("Expected default port 8000, got %q", cfg.Port)
	}
	if cfg.DataPath != "seatplan.db" {
		t.Errorf("Expected default data path, got %q", cfg.DataPath)
	}
	if cfg.ExamAPIBaseURL != "http://localhost:8081/api" {
		t.Errorf("Expected default exam API URL, got %q", cfg.ExamAPIBaseURL)
	}
	if cfg.ExamAPITimeout != 10*time.Second {
		t.Errorf("Expected 10s timeout, got %s", cfg.ExamAPITimeout)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("Expected 5m cache TTL, got %s", cfg.CacheTTL)
	}
}

func TestFromViper_Env(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EXAM_API_BASE_URL", "http://exams.internal/api")
	t.Setenv("EXAM_API_TIMEOUT", "3s")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")

	cfg := FromViper(New())

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %q", cfg.Port)
	}
	if cfg.ExamAPIBaseURL != "http://exams.internal/api" {
		t.Errorf("Unexpected exam API URL %q", cfg.ExamAPIBaseURL)
	}
	if cfg.ExamAPITimeout != 3*time.Second {
		t.Errorf("Expected 3s timeout, got %s", cfg.ExamAPITimeout)
	}
	if cfg.RedisAddr != "localhost:6379" || cfg.RedisDB != 2 {
		t.Errorf("Unexpected redis settings %q db %d", cfg.RedisAddr, cfg.RedisDB)
	}
}
