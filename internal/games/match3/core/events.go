package core

// EventType identifies a grid mutation reported to the rendering layer.
type EventType uint8

const (
	EventSpawned     EventType = iota // piece created at At, visually dropping from SpawnRow
	EventMoved                        // piece moved From -> At
	EventSwapped                      // player swap committed between From and At
	EventDestroyed                    // piece removed from At
	EventPromoted                     // piece at At became a bomb
	EventTileDamaged                  // tile at At lost a hit point, HitPoints remain
	EventTileRemoved                  // tile at At was depleted
	EventShuffled                     // board was reshuffled or regenerated
	EventPhase                        // engine entered Phase
)

// String returns the string representation of an event type.
func (t EventType) String() string {
	switch t {
	case EventSpawned:
		return "spawned"
	case EventMoved:
		return "moved"
	case EventSwapped:
		return "swapped"
	case EventDestroyed:
		return "destroyed"
	case EventPromoted:
		return "promoted"
	case EventTileDamaged:
		return "tile_damaged"
	case EventTileRemoved:
		return "tile_removed"
	case EventShuffled:
		return "shuffled"
	case EventPhase:
		return "phase"
	default:
		return "unknown"
	}
}

// Event describes one engine mutation. Fields not relevant to Type are zero.
type Event struct {
	Type      EventType
	PieceID   int
	Kind      Kind
	At        Coord
	From      Coord
	SpawnRow  int
	Bomb      Bomb
	HitPoints int
	Phase     Phase
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}

// Events returns and clears the events emitted since the last call.
func (e *Engine) Events() []Event {
	evs := e.events
	e.events = nil
	return evs
}
