package levels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/orbhop/internal/registry"
	"github.com/vovakirdan/orbhop/internal/stage"
)

func writeStage(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(dir, name)), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoaderSortsByID(t *testing.T) {
	dir := t.TempDir()
	writeStage(t, dir, "b.yaml", "id: b\nlayout: [\"@o\"]\n")
	writeStage(t, dir, "nested/a.yml", "id: a\nlayout: [\"@.o\"]\n")
	writeStage(t, dir, "notes.txt", "ignored")

	stages, err := NewLoader(dir).LoadAll()
	require.NoError(t, err)
	require.Len(t, stages, 2)
	assert.Equal(t, "a", stages[0].ID)
	assert.Equal(t, "b", stages[1].ID)
	assert.Equal(t, "nested/a.yml", stages[0].FilePath)
}

func TestLoaderDefaultsIDFromFileName(t *testing.T) {
	dir := t.TempDir()
	writeStage(t, dir, "intro.yaml", "layout: [\"@o\"]\n")

	st, err := NewLoader(dir).LoadByID("intro")
	require.NoError(t, err)
	assert.Equal(t, "intro", st.Name)

	_, err = NewLoader(dir).LoadByID("missing")
	assert.ErrorContains(t, err, "stage not found")
}

func TestLoaderReportsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	writeStage(t, dir, "bad.yaml", "layout: [\"@?\"]\n")

	_, err := NewLoader(dir).LoadAll()
	assert.ErrorContains(t, err, "bad.yaml")
}

func TestPackIsTileSource(t *testing.T) {
	dir := t.TempDir()
	writeStage(t, dir, "01.yaml", "id: \"01\"\nlayout: [\"@.o\"]\n")
	writeStage(t, dir, "02.yaml", "id: \"02\"\nlayout: [\"o.@\"]\n")

	p, err := LoadPack(dir)
	require.NoError(t, err)
	var src stage.TileSource = p
	assert.Equal(t, 2, src.StageCount())
	assert.Equal(t, 1, p.IndexOf("02"))
	assert.Equal(t, -1, p.IndexOf("03"))

	l, err := src.Stage(0)
	require.NoError(t, err)
	l.Static[0] = stage.CodeEnd
	again, _ := src.Stage(0)
	assert.Equal(t, stage.CodeFloor, again.Static[0], "layouts are copied out")

	_, err = src.Stage(5)
	assert.Error(t, err)

	_, err = LoadPack(t.TempDir())
	assert.ErrorContains(t, err, "no stage files")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		codes []string
	}{
		{"valid", "layout: [\"@.o\"]", nil},
		{"no player", "layout: [\"..o\"]", []string{"PLAYER"}},
		{"two players", "layout: [\"@@o\"]", []string{"PLAYER"}},
		{"no orbs", "layout: [\"@..\"]", []string{"ORBS"}},
		{"lonely teleport", "layout: [\"@1o\"]", []string{"TELEPORT"}},
		{"triple teleport", "layout: [\"@1o\", \"111\"]", []string{"TELEPORT"}},
		{"ragged", "layout: [\"@.o\", \".\"]", []string{"RAGGED"}},
		{"stray ghost", "layout: [\"@.o\"]\nghosts: [{x: 5, y: 0, dir: up}]", []string{"STRAY"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeStage(t, dir, "s.yaml", tt.body)
			st, err := NewLoader(dir).LoadFile("s.yaml")
			require.NoError(t, err)

			var codes []string
			for _, e := range Validate(st) {
				codes = append(codes, e.Code)
			}
			assert.Equal(t, tt.codes, codes)
		})
	}
}

func TestParseSolution(t *testing.T) {
	dirs, err := ParseSolution("RU ld")
	require.NoError(t, err)
	assert.Equal(t, []stage.Direction{stage.DirRight, stage.DirUp, stage.DirLeft, stage.DirDown}, dirs)

	_, err = ParseSolution("RX")
	assert.ErrorContains(t, err, "move 2")
}

func TestPlaySolution(t *testing.T) {
	dir := t.TempDir()
	writeStage(t, dir, "a.yaml", "id: a\nlayout: [\"@.o\"]\nmetadata: {solution: RR}\n")
	writeStage(t, dir, "b.yaml", "id: b\nlayout: [\"@.o\"]\nmetadata: {solution: R}\n")
	writeStage(t, dir, "c.yaml", "id: c\nlayout: [\"@.o\"]\n")

	p, err := LoadPack(dir)
	require.NoError(t, err)

	ok, err := p.PlaySolution(0)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.PlaySolution(1)
	require.NoError(t, err)
	assert.False(t, ok, "one move short")

	_, err = p.PlaySolution(2)
	assert.ErrorIs(t, err, ErrNoSolution)

	_, err = p.PlaySolution(9)
	assert.ErrorIs(t, err, stage.ErrNoStage)
}

func TestBuiltinPacks(t *testing.T) {
	for _, id := range []string{"classic", "tutorial"} {
		t.Run(id, func(t *testing.T) {
			require.True(t, registry.Exists(id))
			rp, err := registry.Create(id)
			require.NoError(t, err)
			p, ok := rp.(*Pack)
			require.True(t, ok)
			require.Positive(t, p.StageCount())

			for i := 0; i < p.StageCount(); i++ {
				info, _ := p.Info(i)
				assert.Empty(t, Validate(info), "stage %s", info.ID)
				ok, err := p.PlaySolution(i)
				require.NoError(t, err, "stage %s", info.ID)
				assert.True(t, ok, "solution of stage %s does not clear it", info.ID)
			}
		})
	}
}
