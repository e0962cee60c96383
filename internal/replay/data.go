// Package replay records the commands given to a stage and plays them back
// headlessly. The simulation is deterministic, so a replay stores only the
// tick at which each command was given.
package replay

import "github.com/vovakirdan/orbhop/internal/stage"

// Version is written into every replay file.
const Version = "1.0"

// Op is a recorded command.
type Op string

const (
	OpMove  Op = "move"
	OpUndo  Op = "undo"
	OpReset Op = "reset"
)

// Entry records one command and the tick it was given on.
// Undo and reset are applied before that tick's update; a move is the
// direction held during it.
type Entry struct {
	T   int    `json:"t"`
	Op  Op     `json:"op"`
	Dir string `json:"dir,omitempty"`
}

// Data contains all data needed to replay a stage attempt.
type Data struct {
	Version   string       `json:"version"`
	Pack      string       `json:"pack"`
	Stage     int          `json:"stage"`
	StageID   string       `json:"stageId"`
	StartTime string       `json:"startTime"`
	Timing    stage.Timing `json:"timing"`
	Ticks     int          `json:"ticks"`
	Hash      string       `json:"hash,omitempty"`
	Entries   []Entry      `json:"entries"`
}
