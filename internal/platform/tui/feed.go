package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/orbhop/internal/core"
	"github.com/vovakirdan/orbhop/internal/stage"
)

// sprite is the visual handle the stage creates for every actor.
type sprite struct {
	look glyph
}

var kindGlyphs = map[stage.ActorKind]glyph{
	stage.KindMover:  {"==", core.ColorPlatform},
	stage.KindGhost:  {"&&", core.ColorGhost},
	stage.KindOrb:    {"oo", core.ColorOrb},
	stage.KindPlayer: {"@@", core.ColorPlayer},
}

// spriteFactory implements stage.VisualFactory.
type spriteFactory struct {
	created int
}

func (f *spriteFactory) NewVisual(kind stage.ActorKind) stage.Handle {
	f.created++
	return &sprite{look: kindGlyphs[kind]}
}

// actorGlyph returns the look of an actor, preferring its sprite.
func actorGlyph(a stage.ActorView) glyph {
	if s, ok := a.Visual.(*sprite); ok && s.look.text != "" {
		return s.look
	}
	if g, ok := kindGlyphs[a.Kind]; ok {
		return g
	}
	return glyph{"??", core.ColorDefault}
}

// flashTicks is how long an event message stays in the status line.
const flashTicks = 90

var eventMessages = map[stage.Event]string{
	stage.EventJump:     "Hop!",
	stage.EventButton:   "Click.",
	stage.EventTeleport: "Whoosh.",
	stage.EventOrb:      "Orb collected",
	stage.EventDeath:    "You fell. z to undo",
	stage.EventCleared:  "Stage clear! n for next",
}

// eventFeed implements stage.EventSink and turns events into a short
// status message.
type eventFeed struct {
	log    *log.Logger
	last   stage.Event
	ttl    int
	counts map[stage.Event]int
}

func newEventFeed(l *log.Logger) *eventFeed {
	return &eventFeed{log: l, counts: make(map[stage.Event]int)}
}

func (f *eventFeed) Notify(ev stage.Event, at stage.Coord) {
	f.counts[ev]++
	f.last = ev
	f.ttl = flashTicks
	if f.log != nil {
		f.log.Debug("stage event", "event", ev, "x", at.X, "y", at.Y)
	}
}

// tick ages the current message.
func (f *eventFeed) tick() {
	if f.ttl > 0 {
		f.ttl--
	}
}

// message returns the status text, or "" once it has expired.
func (f *eventFeed) message() string {
	if f.ttl <= 0 {
		return ""
	}
	return eventMessages[f.last]
}

// clear drops the current message.
func (f *eventFeed) clear() { f.ttl = 0 }
