// Package formats provides stage file format parsers.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/orbhop/internal/stage"
)

// YAMLStage represents the YAML structure for a stage file.
//
// The layout is a list of rows drawn with the Legend runes. Ghosts and
// moving platforms carry a heading, so they are listed separately.
type YAMLStage struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Layout   []string          `yaml:"layout"`
	Ghosts   []YAMLActor       `yaml:"ghosts,omitempty"`
	Movers   []YAMLActor       `yaml:"movers,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLActor places a directional actor.
type YAMLActor struct {
	X   int    `yaml:"x"`
	Y   int    `yaml:"y"`
	Dir string `yaml:"dir"`
}

// Stage is a parsed stage file.
type Stage struct {
	Layout   stage.Layout
	Metadata map[string]string
	// Ragged is set when layout rows had different lengths and were padded.
	Ragged bool
	// Stray lists actors placed outside the layout.
	Stray []string
}

// Legend maps layout runes to (static, overlay) codes.
var Legend = map[rune][2]stage.Code{
	' ': {stage.CodeEmpty, stage.MarkNone},
	'.': {stage.CodeFloor, stage.MarkNone},
	'@': {stage.CodeFloor, stage.MarkPlayer},
	'o': {stage.CodeFloor, stage.MarkOrb},
	'~': {stage.CodeShrinking, stage.MarkNone},
	'%': {stage.CodeShrinking, stage.MarkOrb},
	'X': {stage.CodeEnd, stage.MarkNone},
	'J': {stage.CodeJump, stage.MarkNone},
	'>': {stage.ArrowCode(stage.DirRight), stage.MarkNone},
	'^': {stage.ArrowCode(stage.DirUp), stage.MarkNone},
	'<': {stage.ArrowCode(stage.DirLeft), stage.MarkNone},
	'v': {stage.ArrowCode(stage.DirDown), stage.MarkNone},
	'b': {stage.CodeToggleButton, stage.MarkNone},
	'B': {stage.CodeToggleButtonPressed, stage.MarkNone},
	'r': {stage.CodeRotateButton, stage.MarkNone},
	'R': {stage.CodeRotateButtonPressed, stage.MarkNone},
	'T': {stage.CodeToggleOn, stage.MarkNone},
	't': {stage.CodeToggleOff, stage.MarkNone},
	'S': {stage.CodeSwitchOn, stage.MarkNone},
	's': {stage.CodeSwitchOff, stage.MarkNone},
}

// decodeRune returns the codes of a layout rune. Digits are teleports.
func decodeRune(r rune) ([2]stage.Code, bool) {
	if r >= '0' && r <= '9' {
		return [2]stage.Code{stage.TeleportCode(int(r - '0')), stage.MarkNone}, true
	}
	codes, ok := Legend[r]
	return codes, ok
}

// ParseYAML parses a YAML stage file.
func ParseYAML(data []byte) (Stage, error) {
	var ys YAMLStage
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return Stage{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if len(ys.Layout) == 0 {
		return Stage{}, fmt.Errorf("stage %q has no layout", ys.ID)
	}

	width := 0
	for _, row := range ys.Layout {
		width = max(width, len([]rune(row)))
	}
	height := len(ys.Layout)

	out := Stage{
		Layout: stage.Layout{
			ID:      ys.ID,
			Name:    ys.Name,
			Width:   width,
			Height:  height,
			Static:  make([]stage.Code, width*height),
			Overlay: make([]stage.Code, width*height),
		},
		Metadata: ys.Metadata,
	}

	for y, row := range ys.Layout {
		runes := []rune(row)
		if len(runes) != width {
			out.Ragged = true
		}
		for x, r := range runes {
			codes, ok := decodeRune(r)
			if !ok {
				return Stage{}, fmt.Errorf("stage %q: unknown tile %q at (%d,%d)", ys.ID, r, x, y)
			}
			out.Layout.Static[y*width+x] = codes[0]
			out.Layout.Overlay[y*width+x] = codes[1]
		}
	}

	place := func(kind string, a YAMLActor, fn func(i int, d stage.Direction)) error {
		d, err := stage.ParseDirection(strings.ToLower(a.Dir))
		if err != nil {
			return fmt.Errorf("stage %q: %s at (%d,%d): %w", ys.ID, kind, a.X, a.Y, err)
		}
		if a.X < 0 || a.X >= width || a.Y < 0 || a.Y >= height {
			out.Stray = append(out.Stray, fmt.Sprintf("%s at (%d,%d)", kind, a.X, a.Y))
			return nil
		}
		fn(a.Y*width+a.X, d)
		return nil
	}
	for _, g := range ys.Ghosts {
		err := place("ghost", g, func(i int, d stage.Direction) {
			out.Layout.Overlay[i] = stage.GhostCode(d)
		})
		if err != nil {
			return Stage{}, err
		}
	}
	for _, m := range ys.Movers {
		err := place("mover", m, func(i int, d stage.Direction) {
			out.Layout.Static[i] = stage.MoverCode(d)
		})
		if err != nil {
			return Stage{}, err
		}
	}

	return out, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
