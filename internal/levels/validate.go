package levels

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/orbhop/internal/stage"
)

// ValidationError contains details about a malformed stage.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks a stage for data the engine would silently tolerate:
//   - a non-empty rectangular layout
//   - exactly one player, standing on solid ground
//   - at least one orb
//   - every teleport code used exactly twice
//   - ghosts and moving platforms inside the layout
func Validate(st Stage) []ValidationError {
	var errs []ValidationError
	add := func(code, format string, args ...any) {
		errs = append(errs, ValidationError{Code: code, Message: fmt.Sprintf(format, args...)})
	}

	if st.Width <= 0 || st.Height <= 0 {
		add("SIZE", "stage %s has no cells", st.ID)
		return errs
	}
	if st.Ragged {
		add("RAGGED", "layout rows have different lengths")
	}
	for _, s := range st.Stray {
		add("STRAY", "%s lies outside the layout", s)
	}

	g := st.Grid()
	players := g.Find(stage.Overlay, stage.MarkPlayer)
	switch {
	case len(players) == 0:
		add("PLAYER", "no player start")
	case len(players) > 1:
		add("PLAYER", "%d player starts", len(players))
	default:
		if !g.At(stage.Static, players[0]).Solid() {
			add("PLAYER", "player starts on an impassable tile at %v", players[0])
		}
	}

	if g.Count(stage.Overlay, stage.MarkOrb) == 0 {
		add("ORBS", "no orbs; the stage can never be cleared")
	}

	counts := make(map[stage.Code]int)
	for _, c := range g.Static {
		if c.IsTeleport() {
			counts[c]++
		}
	}
	codes := make([]stage.Code, 0, len(counts))
	for c := range counts {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	for _, c := range codes {
		if counts[c] != 2 {
			add("TELEPORT", "teleport %d appears %d times, want 2", c-stage.CodeTeleportFirst, counts[c])
		}
	}

	return errs
}
