package task

import (
	"unicode/utf8"

	"github.com/twiced-technology-gmbh/tasktrack/internal/clierr"
)

// ValidateStatus returns a CLIError for an unknown status.
func ValidateStatus(status string) *clierr.Error {
	allowed := make([]string, len(Statuses))
	for i, s := range Statuses {
		allowed[i] = string(s)
	}
	return clierr.Newf(clierr.InvalidStatus, "invalid status %q", status).
		WithDetails(map[string]any{
			"status":  status,
			"allowed": allowed,
		})
}

// ValidateText checks already-normalized task text against the length
// limit, counted in characters. limit <= 0 disables the length check.
func ValidateText(text string, limit int) error {
	if text == "" {
		return clierr.New(clierr.EmptyText, "task text must not be empty")
	}
	if n := utf8.RuneCountInString(text); limit > 0 && n > limit {
		return clierr.Newf(clierr.TextTooLong,
			"task text is %d characters; the limit is %d", n, limit).
			WithDetails(map[string]any{
				"length": n,
				"limit":  limit,
			})
	}
	return nil
}

// ValidateDuplicate returns a CLIError for text that collides with an
// existing task. parentID is nil for top-level collisions.
func ValidateDuplicate(text string, existingID int, parentID *int) *clierr.Error {
	details := map[string]any{
		"text":        text,
		"existing_id": existingID,
	}
	if parentID != nil {
		details["parent_id"] = *parentID
		return clierr.Newf(clierr.DuplicateText,
			"task #%d already has a subtask %q (#%d)", *parentID, text, existingID).
			WithDetails(details)
	}
	return clierr.Newf(clierr.DuplicateText, "task %q already exists (#%d)", text, existingID).
		WithDetails(details)
}

// ValidateTaskID returns a CLIError for invalid task ID input.
func ValidateTaskID(input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidTaskID, "invalid task ID %q", input).
		WithDetails(map[string]any{"input": input})
}

// ValidateTaskNotFound returns a CLIError for an id with no task.
func ValidateTaskNotFound(id int) *clierr.Error {
	return clierr.Newf(clierr.TaskNotFound, "task #%d not found", id).
		WithDetails(map[string]any{"id": id})
}

// ValidateParentNotFound returns a CLIError when a subtask's parent is not
// a top-level task.
func ValidateParentNotFound(id int) *clierr.Error {
	return clierr.Newf(clierr.ParentNotFound, "parent task #%d not found", id).
		WithDetails(map[string]any{"parent_id": id})
}

// ValidateBoundaryError returns a CLIError for --next/--prev past the last
// or first status.
func ValidateBoundaryError(id int, status Status, direction string) *clierr.Error {
	return clierr.Newf(clierr.BoundaryError,
		"task #%d is already at the %s status (%s)", id, direction, status).
		WithDetails(map[string]any{
			"id":        id,
			"status":    status,
			"direction": direction,
		})
}
