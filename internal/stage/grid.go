package stage

// Grid is the two-layer tile map of a stage.
// Both layers are stored in row-major order: index = y*W + x.
type Grid struct {
	W       int
	H       int
	Static  []Code
	Overlay []Code
}

// NewGrid creates an empty grid of the given size.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{
		W:       w,
		H:       h,
		Static:  make([]Code, w*h),
		Overlay: make([]Code, w*h),
	}
}

// InBounds returns true if (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

func (g *Grid) layer(l Layer) []Code {
	if l == Overlay {
		return g.Overlay
	}
	return g.Static
}

// Get returns the code at (layer, x, y), or def when out of bounds.
func (g *Grid) Get(l Layer, x, y int, def Code) Code {
	if !g.InBounds(x, y) {
		return def
	}
	return g.layer(l)[y*g.W+x]
}

// At is Get with a Coord and CodeEmpty as the default.
func (g *Grid) At(l Layer, c Coord) Code {
	return g.Get(l, c.X, c.Y, CodeEmpty)
}

// Set writes a code at (layer, x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(l Layer, x, y int, code Code) {
	if !g.InBounds(x, y) {
		return
	}
	g.layer(l)[y*g.W+x] = code
}

// Put is Set with a Coord.
func (g *Grid) Put(l Layer, c Coord, code Code) {
	g.Set(l, c.X, c.Y, code)
}

// Clone returns a deep copy with fresh layer arrays.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		W:       g.W,
		H:       g.H,
		Static:  make([]Code, len(g.Static)),
		Overlay: make([]Code, len(g.Overlay)),
	}
	copy(c.Static, g.Static)
	copy(c.Overlay, g.Overlay)
	return c
}

// CopyFrom overwrites g with the contents of src, reusing g's arrays when
// the dimensions match.
func (g *Grid) CopyFrom(src *Grid) {
	if g.W != src.W || g.H != src.H {
		*g = *src.Clone()
		return
	}
	copy(g.Static, src.Static)
	copy(g.Overlay, src.Overlay)
}

// Equal returns true if both grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.W != other.W || g.H != other.H {
		return false
	}
	for i := range g.Static {
		if g.Static[i] != other.Static[i] || g.Overlay[i] != other.Overlay[i] {
			return false
		}
	}
	return true
}

// Find returns every cell of layer l holding code, in row-major order.
func (g *Grid) Find(l Layer, code Code) []Coord {
	var out []Coord
	cells := g.layer(l)
	for i, c := range cells {
		if c == code {
			out = append(out, C(i%g.W, i/g.W))
		}
	}
	return out
}

// Count returns the number of cells of layer l holding code.
func (g *Grid) Count(l Layer, code Code) int {
	n := 0
	for _, c := range g.layer(l) {
		if c == code {
			n++
		}
	}
	return n
}

// Replace swaps every occurrence of a with b and vice versa on layer l.
func (g *Grid) Replace(l Layer, a, b Code) {
	cells := g.layer(l)
	for i, c := range cells {
		switch c {
		case a:
			cells[i] = b
		case b:
			cells[i] = a
		}
	}
}
