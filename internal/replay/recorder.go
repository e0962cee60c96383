package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vovakirdan/orbhop/internal/stage"
)

// Recorder collects the commands of one stage attempt.
type Recorder struct {
	data      Data
	recording bool
}

// NewRecorder creates a recorder for the stage at index of pack.
func NewRecorder(pack string, index int, stageID string, timing stage.Timing) *Recorder {
	return &Recorder{
		data: Data{
			Version:   Version,
			Pack:      pack,
			Stage:     index,
			StageID:   stageID,
			StartTime: time.Now().Format(time.RFC3339),
			Timing:    timing,
			Entries:   make([]Entry, 0, 64),
		},
		recording: true,
	}
}

func (r *Recorder) add(e Entry) {
	if !r.recording {
		return
	}
	r.data.Entries = append(r.data.Entries, e)
}

// Move records a direction held during tick t.
func (r *Recorder) Move(t int, d stage.Direction) {
	if d == stage.DirNone {
		return
	}
	r.add(Entry{T: t, Op: OpMove, Dir: d.String()})
}

// Undo records an undo given before tick t.
func (r *Recorder) Undo(t int) { r.add(Entry{T: t, Op: OpUndo}) }

// Reset records a reset given before tick t.
func (r *Recorder) Reset(t int) { r.add(Entry{T: t, Op: OpReset}) }

// Finish stops recording and stores the final tick count and state hash.
func (r *Recorder) Finish(ticks int, hash uint64) {
	r.recording = false
	r.data.Ticks = ticks
	r.data.Hash = FormatHash(hash)
}

// Recording reports whether Finish has not been called yet.
func (r *Recorder) Recording() bool { return r.recording }

// Data returns a copy of the recorded data.
func (r *Recorder) Data() Data {
	d := r.data
	d.Entries = append([]Entry(nil), r.data.Entries...)
	return d
}

// Save writes the replay data to a file.
func (r *Recorder) Save(filename string) error {
	if r.recording {
		return fmt.Errorf("replay: recording not finished")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("replay: failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Encode(file, r.data)
}

// Encode writes d as indented JSON.
func Encode(w io.Writer, d Data) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(d); err != nil {
		return fmt.Errorf("replay: failed to encode: %w", err)
	}
	return nil
}

// Decode reads replay data written by Encode.
func Decode(rd io.Reader) (Data, error) {
	var d Data
	if err := json.NewDecoder(rd).Decode(&d); err != nil {
		return Data{}, fmt.Errorf("replay: failed to decode: %w", err)
	}
	return d, nil
}

// Load loads replay data from a file.
func Load(filename string) (Data, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Data{}, fmt.Errorf("replay: failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return Decode(file)
}

// FormatHash renders a state hash the way replay files store it.
func FormatHash(h uint64) string { return fmt.Sprintf("%016x", h) }
