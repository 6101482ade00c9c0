package responses

import (
	"encoding/json"
	"fmt"
	"time"

	"os-scheduler/internal/core"
)

// SimulationResponse is returned by the all-algorithms endpoint. Results is
// an insertion-ordered json object keyed by algorithm display name.
type SimulationResponse struct {
	Success       bool               `json:"success"`
	RunID         string             `json:"run_id"`
	ProcessCount  int                `json:"process_count"`
	Configuration core.Configuration `json:"configuration"`
	Results       json.Marshaler     `json:"results"`
}

type ScheduleResponse struct {
	Success       bool                  `json:"success"`
	Algorithm     string                `json:"algorithm"`
	ProcessCount  int                   `json:"process_count"`
	Configuration core.Configuration    `json:"configuration"`
	Result        *core.SchedulerResult `json:"result"`
}

type ConfigResponse struct {
	Success  bool   `json:"success"`
	Quantum  int    `json:"quantum"`
	Aging    int    `json:"aging"`
	TieBreak string `json:"tie_break"`
}

type AlgorithmResponse struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// RunSummary is one row of the stored simulation history.
type RunSummary struct {
	ID           string    `json:"id"`
	ProcessCount int       `json:"process_count"`
	Quantum      int       `json:"quantum"`
	Aging        int       `json:"aging"`
	CreatedAt    time.Time `json:"created_at"`
}

type RunResponse struct {
	RunSummary
	ProcessInput string          `json:"process_input"`
	Results      json.RawMessage `json:"results"`
}

// ErrorCode represents a structured API error code.
type ErrorCode string

const (
	ErrValidation ErrorCode = "VALIDATION_ERROR"
	ErrNotFound   ErrorCode = "NOT_FOUND"
	ErrInternal   ErrorCode = "INTERNAL_ERROR"
)

// APIError is the body of every failed request.
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) *APIError {
	return &APIError{Code: ErrValidation, Message: msg}
}

func NewNotFoundError(resource, id string) *APIError {
	return &APIError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s '%s' not found", resource, id),
	}
}

func NewInternalError(msg string) *APIError {
	return &APIError{Code: ErrInternal, Message: msg}
}
