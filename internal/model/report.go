package model

import "time"

// SortState is a state of the sort loop.
type SortState string

const (
	// StateSelect picks the next file from the source folder.
	StateSelect SortState = "select"
	// StateClassify asks the classifier for a destination.
	StateClassify SortState = "classify"
	// StateMove renames the file into the destination.
	StateMove SortState = "move"
	// StateDone means no selectable file is left in the source folder.
	StateDone SortState = "done"
	// StateCapReached means the iteration cap ran out first.
	StateCapReached SortState = "cap_reached"
)

// Terminal reports whether the loop stops in this state.
func (s SortState) Terminal() bool {
	return s == StateDone || s == StateCapReached
}

// SortTask is the per-iteration state of the sort loop.
type SortTask struct {
	File        Path `yaml:"file"`
	Destination Path `yaml:"destination"`
	Target      Path `yaml:"target"`
}

// MoveStatus describes what happened to a sort task.
type MoveStatus string

const (
	// MoveMoved means the file was renamed into place.
	MoveMoved MoveStatus = "moved"
	// MoveFailed means the rename was attempted and failed.
	MoveFailed MoveStatus = "failed"
	// MovePlanned means the move was only reported (dry run).
	MovePlanned MoveStatus = "planned"
)

// Move is the outcome of one loop iteration.
type Move struct {
	Iteration int        `yaml:"iteration"`
	Task      SortTask   `yaml:"task"`
	Status    MoveStatus `yaml:"status"`
	Error     string     `yaml:"error,omitempty"`
}

// RunReport summarizes a sort run. It is persisted by the report store.
type RunReport struct {
	ID          string    `yaml:"id"`
	Source      Path      `yaml:"source"`
	Root        Path      `yaml:"root"`
	MaxDepth    int       `yaml:"max_depth"`
	Limit       int       `yaml:"limit"`
	DryRun      bool      `yaml:"dry_run"`
	StartedAt   time.Time `yaml:"started_at"`
	FinishedAt  time.Time `yaml:"finished_at"`
	CatalogSize int       `yaml:"catalog_size"`
	Outcome     SortState `yaml:"outcome"`
	Error       string    `yaml:"error,omitempty"`
	Moves       []Move    `yaml:"moves"`
}

// Count returns the number of moves with the given status.
func (r RunReport) Count(status MoveStatus) int {
	count := 0

	for _, move := range r.Moves {
		if move.Status == status {
			count++
		}
	}

	return count
}
