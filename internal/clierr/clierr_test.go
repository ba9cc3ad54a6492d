package clierr

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := map[string]int{
		TaskNotFound:   1,
		InvalidInput:   1,
		StorageFailure: 2,
		InternalError:  2,
	}
	for code, want := range tests {
		if got := New(code, "x").ExitCode(); got != want {
			t.Errorf("%s exit = %d, want %d", code, got, want)
		}
	}
}

func TestStorageKeepsCause(t *testing.T) {
	sentinel := errors.New("disk full")
	err := fmt.Errorf("saving: %w", Storage("writing tasks", sentinel))

	if !errors.Is(err, sentinel) {
		t.Error("cause not reachable through errors.Is")
	}
	if !HasCode(err, StorageFailure) {
		t.Errorf("code = %q", CodeOf(err))
	}
	var ce *Error
	if !errors.As(err, &ce) || ce.Message != "writing tasks: disk full" {
		t.Errorf("message = %v", err)
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(errors.New("plain")); got != "" {
		t.Errorf("CodeOf(plain) = %q", got)
	}
	err := Newf(TaskNotFound, "task #%d not found", 3).WithDetails(map[string]any{"id": 3})
	if CodeOf(err) != TaskNotFound || err.Details["id"] != 3 {
		t.Errorf("err = %+v", err)
	}
}
