package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
)

// JSON writes data as indented JSON to the given writer.
func JSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorResponse is the JSON envelope for structured error output.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// NewErrorResponse builds the envelope for err. Errors without a code
// are reported as INTERNAL_ERROR.
func NewErrorResponse(err error) ErrorResponse {
	var ce *clierr.Error
	if errors.As(err, &ce) {
		return ErrorResponse{Error: ce.Message, Code: ce.Code, Details: ce.Details}
	}
	return ErrorResponse{Error: err.Error(), Code: clierr.InternalError}
}

// JSONError writes err to w as a JSON envelope and returns the process
// exit code it maps to.
func JSONError(w io.Writer, err error) int {
	resp := NewErrorResponse(err)
	_ = JSON(w, resp) // the exit code still reports the failure
	return clierr.New(resp.Code, resp.Error).ExitCode()
}

// BatchResult represents the outcome for one task id within a batch.
type BatchResult struct {
	ID    int    `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	Code  string `json:"code,omitempty"`
}

// NewBatchResult records the outcome of the operation on id.
func NewBatchResult(id int, err error) BatchResult {
	if err == nil {
		return BatchResult{ID: id, OK: true}
	}
	r := BatchResult{ID: id, Error: err.Error()}
	var ce *clierr.Error
	if errors.As(err, &ce) {
		r.Error, r.Code = ce.Message, ce.Code
	}
	return r
}

// BatchSummary writes one error line per failed id to errw and a
// "Completed n/m operations" line to w. It returns the number of failures.
func BatchSummary(w, errw io.Writer, results []BatchResult) int {
	failed := 0
	for _, r := range results {
		if !r.OK {
			failed++
			fmt.Fprintf(errw, "Error: task #%d: %s\n", r.ID, r.Error)
		}
	}
	Messagef(w, "Completed %d/%d operations", len(results)-failed, len(results))
	return failed
}
