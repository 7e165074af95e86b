package operations

import "time"

// Type identifies what kind of work an operation performs.
type Type string

const (
	TypeSearch Type = "search"
	TypeCopy   Type = "copy"
	TypeMove   Type = "move"
)

// Status is the operation state machine:
// pending → in_progress → {completed | failed}, terminal states absorbing.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// ConflictPolicy selects how the paste worker resolves an existing target.
type ConflictPolicy string

const (
	ConflictSkip      ConflictPolicy = "skip"
	ConflictOverwrite ConflictPolicy = "overwrite"
	ConflictRename    ConflictPolicy = "rename"
)

// Operation is a persisted unit of long-running work. The tracker owns
// writes; the single worker owning an id mutates through Update only.
type Operation struct {
	ID              string         `json:"id"`
	Type            Type           `json:"operation_type"`
	Status          Status         `json:"status"`
	Progress        int            `json:"progress"`
	TotalItems      int            `json:"total_items"`
	ProcessedItems  int            `json:"processed_items"`
	SourcePaths     []string       `json:"source_paths,omitempty"`
	DestinationPath string         `json:"destination_path,omitempty"`
	ErrorMessage    string         `json:"error_message,omitempty"`
	Result          map[string]any `json:"result,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`
}

// Terminal reports whether the status is absorbing.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Clone returns an independent copy. Workers mutate their own clone so a
// snapshot handed to a caller is never written concurrently.
func (op *Operation) Clone() *Operation {
	dup := *op
	dup.SourcePaths = append([]string(nil), op.SourcePaths...)
	if op.CompletedAt != nil {
		t := *op.CompletedAt
		dup.CompletedAt = &t
	}
	if op.Result != nil {
		dup.Result = make(map[string]any, len(op.Result))
		for k, v := range op.Result {
			dup.Result[k] = v
		}
	}
	return &dup
}
