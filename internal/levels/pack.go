package levels

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/vovakirdan/orbhop/internal/registry"
	"github.com/vovakirdan/orbhop/internal/stage"
)

// Pack is an ordered stage collection. It implements stage.TileSource.
type Pack struct {
	title  string
	stages []Stage
}

// NewPack creates a pack from already loaded stages.
func NewPack(title string, stages []Stage) *Pack {
	return &Pack{title: title, stages: stages}
}

// LoadPack loads every stage file below dir.
func LoadPack(dir string) (*Pack, error) {
	stages, err := NewLoader(dir).LoadAll()
	if err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, fmt.Errorf("levels: no stage files in %s", dir)
	}
	return NewPack(dir, stages), nil
}

// Title returns the pack's display name.
func (p *Pack) Title() string { return p.title }

// StageCount returns the number of stages.
func (p *Pack) StageCount() int { return len(p.stages) }

// Stage returns a copy of the layout at index i.
func (p *Pack) Stage(i int) (stage.Layout, error) {
	if i < 0 || i >= len(p.stages) {
		return stage.Layout{}, fmt.Errorf("levels: stage index %d out of range [0,%d)", i, len(p.stages))
	}
	l := p.stages[i].Layout
	l.Static = append([]stage.Code(nil), l.Static...)
	l.Overlay = append([]stage.Code(nil), l.Overlay...)
	return l, nil
}

// Info returns the stage definition at index i.
func (p *Pack) Info(i int) (Stage, bool) {
	if i < 0 || i >= len(p.stages) {
		return Stage{}, false
	}
	return p.stages[i], true
}

// IndexOf returns the index of the stage with the given id, or -1.
func (p *Pack) IndexOf(id string) int {
	for i, st := range p.stages {
		if st.ID == id {
			return i
		}
	}
	return -1
}

//go:embed stages/*.yaml
var classicFS embed.FS

//go:embed tutorial/*.yaml
var tutorialFS embed.FS

// embeddedPack loads the stages of dir inside fsys.
func embeddedPack(title string, fsys embed.FS, dir string) (*Pack, error) {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	stages, err := NewFSLoader(sub).LoadAll()
	if err != nil {
		return nil, err
	}
	return NewPack(title, stages), nil
}

// Classic loads the built-in main pack.
func Classic() (*Pack, error) { return embeddedPack("Classic", classicFS, "stages") }

// Tutorial loads the built-in introductory pack.
func Tutorial() (*Pack, error) { return embeddedPack("Tutorial", tutorialFS, "tutorial") }

func init() {
	registry.Register("classic", "Classic", func() (registry.Pack, error) { return Classic() })
	registry.Register("tutorial", "Tutorial", func() (registry.Pack, error) { return Tutorial() })
}
