package timer

import "time"

// State represents the current run state of a Timer.
type State string

const (
	StateStopped State = "stopped"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// EventType defines the type of Timer event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventStart       EventType = "start"
	EventStop        EventType = "stop"
	EventPause       EventType = "pause"
	EventResume      EventType = "resume"
	EventReset       EventType = "reset"
	EventTick        EventType = "tick"
	EventDone        EventType = "done"
	EventOverflow    EventType = "overflow"
)

// EventTypes lists every event a Timer emits.
var EventTypes = []EventType{
	EventStateChange,
	EventStart,
	EventStop,
	EventPause,
	EventResume,
	EventReset,
	EventTick,
	EventDone,
	EventOverflow,
}

// Event represents a Timer update for observers.
//
// Elapsed carries the payload of tick and reset events. Done and Overflowed
// carry the new flag value on done and overflow events and a snapshot of the
// flags on every other event.
type Event struct {
	Type       EventType
	State      State
	Elapsed    time.Duration
	Done       bool
	Overflowed bool
	At         time.Time
}

// Handler receives events synchronously on the goroutine that owns the timer.
type Handler func(Event)
