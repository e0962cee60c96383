// Package stage implements the simulation of a single puzzle stage: a
// two-layer tile grid, a bounded undo history, the tile effects fired when
// the player settles, the pooled dynamic actors and the player's movement
// state machine. A Controller owns all of it and advances it one tick per
// Update call. Nothing here draws or plays sound; a caller supplies a
// VisualFactory and an EventSink when it wants handles or notifications.
package stage
