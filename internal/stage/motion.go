package stage

import "math"

// Motion is the movable part shared by the player and every actor.
// While idle Target == Pos.
type Motion struct {
	Pos      Coord
	Target   Coord
	Moving   bool
	timer    float64
	duration float64
}

func (m *Motion) place(c Coord) {
	m.Pos = c
	m.Target = c
	m.Moving = false
	m.timer = 0
	m.duration = 0
}

func (m *Motion) start(to Coord, duration float64) {
	if duration <= 0 {
		duration = 1
	}
	m.Target = to
	m.Moving = true
	m.timer = duration
	m.duration = duration
}

// advance counts the move timer down and reports whether it ran out.
func (m *Motion) advance(step float64) bool {
	if !m.Moving {
		return false
	}
	m.timer -= step
	return m.timer <= 0
}

func (m *Motion) finish() {
	m.place(m.Target)
}

// Progress returns how far the current move has gone, 0..1.
func (m *Motion) Progress() float64 {
	if !m.Moving || m.duration <= 0 {
		return 0
	}
	return clamp01(1 - m.timer/m.duration)
}

// RenderPos returns the interpolated cell position.
func (m *Motion) RenderPos() (x, y float64) {
	t := m.Progress()
	x = float64(m.Pos.X) + float64(m.Target.X-m.Pos.X)*t
	y = float64(m.Pos.Y) + float64(m.Target.Y-m.Pos.Y)*t
	return x, y
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
