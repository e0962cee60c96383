// Package levels loads stage packs and provides them to the engine as a
// tile source. This package depends on stage but stage does not depend on
// levels.
package levels

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/orbhop/internal/levels/formats"
	"github.com/vovakirdan/orbhop/internal/stage"
)

// Stage is a stage definition with its file metadata.
type Stage struct {
	stage.Layout
	Metadata map[string]string
	FilePath string
	Ragged   bool
	Stray    []string
}

// Loader loads stage files from a file system.
type Loader struct {
	fsys fs.FS
	Root string
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), Root: root}
}

// NewFSLoader creates a loader over an arbitrary file system, such as an
// embedded one.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys, Root: "."}
}

// LoadAll recursively scans and loads all stage files.
// Returns stages sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Stage, error) {
	var stages []Stage

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}
		st, err := l.LoadFile(p)
		if err != nil {
			return err
		}
		stages = append(stages, st)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.Root, err)
	}

	sort.SliceStable(stages, func(i, j int) bool {
		return stages[i].ID < stages[j].ID
	})
	return stages, nil
}

// LoadFile loads a single stage file, relative to the loader root.
// A stage without an id takes its file name.
func (l *Loader) LoadFile(p string) (Stage, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Stage{}, fmt.Errorf("levels: reading file %s: %w", p, err)
	}
	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Stage{}, fmt.Errorf("levels: parsing file %s: %w", p, err)
	}

	st := Stage{
		Layout:   parsed.Layout,
		Metadata: parsed.Metadata,
		FilePath: p,
		Ragged:   parsed.Ragged,
		Stray:    parsed.Stray,
	}
	if st.ID == "" {
		st.ID = strings.TrimSuffix(path.Base(p), path.Ext(p))
	}
	if st.Name == "" {
		st.Name = st.ID
	}
	return st, nil
}

// LoadByID loads a specific stage by ID.
func (l *Loader) LoadByID(id string) (Stage, error) {
	stages, err := l.LoadAll()
	if err != nil {
		return Stage{}, err
	}
	for _, st := range stages {
		if st.ID == id {
			return st, nil
		}
	}
	return Stage{}, fmt.Errorf("levels: stage not found: %s", id)
}

func isSupportedExtension(ext string) bool {
	for _, e := range formats.FormatExtensions() {
		if e == ext {
			return true
		}
	}
	return false
}
