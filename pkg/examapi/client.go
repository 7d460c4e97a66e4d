// Package examapi consumes the external exam-management REST API that owns
// programs, students, rooms and exams.
package examapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/arnavshah/seatplan-api/pkg/models"
	"github.com/pkg/errors"
)

// DefaultBaseURL is where the exam API listens in a local setup
const DefaultBaseURL = "http://localhost:8081/api"

var (
	// ErrNotFound is returned when the API answers 404
	ErrNotFound = errors.New("not found")
	// ErrUpstream is wrapped by every other non-2xx answer
	ErrUpstream = errors.New("exam api error")
)

// HTTPError carries the status of a failed call
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Unwrap lets errors.Is match ErrUpstream
func (e *HTTPError) Unwrap() error {
	return ErrUpstream
}

// Client talks to the exam API. Calls are not retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client calls
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return errors.Wrapf(err, "build request %s", path)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "GET %s", path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return errors.Wrapf(ErrNotFound, "GET %s", path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &HTTPError{
			Method:     http.MethodGet,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s", path)
	}
	return nil
}

// ExamData fetches the programs, rooms and students of an exam
func (c *Client) ExamData(ctx context.Context, examID int) (*models.ExamData, error) {
	var data models.ExamData
	if err := c.get(ctx, fmt.Sprintf("/exam-data/%d/data", examID), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// ExamPrograms lists the programs sitting an exam
func (c *Client) ExamPrograms(ctx context.Context, examID int) ([]models.Program, error) {
	var programs []models.Program
	if err := c.get(ctx, fmt.Sprintf("/exams/programNames/%d", examID), &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

// Room fetches a single room with its geometry
func (c *Client) Room(ctx context.Context, roomNo int) (*models.Room, error) {
	var room models.Room
	if err := c.get(ctx, fmt.Sprintf("/rooms/%d", roomNo), &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// ExamSnapshot fetches an exam and completes the geometry of rooms the exam payload
// ships without bench layout. Programs fall back to the programNames endpoint when
// the payload carries none.
func (c *Client) ExamSnapshot(ctx context.Context, examID int) (*models.ExamData, error) {
	data, err := c.ExamData(ctx, examID)
	if err != nil {
		return nil, err
	}

	if len(data.Programs) == 0 {
		programs, err := c.ExamPrograms(ctx, examID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		data.Programs = programs
	}

	for i, room := range data.Rooms {
		if room.RoomColumn > 0 && room.SeatsPerBench > 0 && room.NumRow > 0 {
			continue
		}
		full, err := c.Room(ctx, room.RoomNo)
		if err != nil {
			return nil, errors.Wrapf(err, "complete geometry of room %d", room.RoomNo)
		}
		data.Rooms[i] = *full
	}

	return data, nil
}
