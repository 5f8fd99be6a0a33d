package observe

import (
	"sync"
	"time"

	"ticktock/internal/core/timeparts"
	"ticktock/internal/core/timer"

	"github.com/prometheus/client_golang/prometheus"
)

// Source is anything that re-emits timer events.
type Source interface {
	On(eventType timer.EventType, handler timer.Handler) timer.Subscription
}

// Status is the last observed timer state.
type Status struct {
	State      timer.State `json:"state"`
	ElapsedMS  int64       `json:"elapsed_ms"`
	Display    string      `json:"display"`
	Done       bool        `json:"done"`
	Overflowed bool        `json:"overflowed"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Collector turns timer events into Prometheus metrics and a status
// snapshot. Observe runs on the timer goroutine; everything else is safe
// to call from any goroutine.
type Collector struct {
	registry   *prometheus.Registry
	events     *prometheus.CounterVec
	state      *prometheus.GaugeVec
	elapsed    prometheus.Gauge
	done       prometheus.Gauge
	overflowed prometheus.Gauge

	mu     sync.RWMutex
	status Status
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	collector := &Collector{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ticktock_timer_events_total",
				Help: "Timer events emitted, by event type",
			},
			[]string{"event"},
		),
		state: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ticktock_timer_state",
				Help: "1 for the current run state, 0 otherwise",
			},
			[]string{"state"},
		),
		elapsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ticktock_timer_elapsed_seconds",
			Help: "Elapsed value of the last tick or reset; negative past the end of a countdown",
		}),
		done: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ticktock_timer_done",
			Help: "1 once the current run reached its length",
		}),
		overflowed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ticktock_timer_overflowed",
			Help: "1 while the current run counts past its length",
		}),
		status: Status{State: timer.StateStopped},
	}

	collector.registry.MustRegister(
		collector.events,
		collector.state,
		collector.elapsed,
		collector.done,
		collector.overflowed,
	)
	collector.setState(timer.StateStopped)
	return collector
}

// Registry returns the registry the metrics live in.
func (collector *Collector) Registry() *prometheus.Registry {
	return collector.registry
}

// Attach subscribes the collector to every event of source.
func (collector *Collector) Attach(source Source) {
	for _, eventType := range timer.EventTypes {
		source.On(eventType, collector.Observe)
	}
}

// Observe records a single event.
func (collector *Collector) Observe(event timer.Event) {
	collector.events.WithLabelValues(string(event.Type)).Inc()
	collector.setState(event.State)
	collector.done.Set(boolValue(event.Done))
	collector.overflowed.Set(boolValue(event.Overflowed))

	collector.mu.Lock()
	defer collector.mu.Unlock()
	collector.status.State = event.State
	collector.status.Done = event.Done
	collector.status.Overflowed = event.Overflowed
	collector.status.UpdatedAt = event.At
	if event.Type == timer.EventTick || event.Type == timer.EventReset {
		collector.elapsed.Set(event.Elapsed.Seconds())
		collector.status.ElapsedMS = event.Elapsed.Milliseconds()
		collector.status.Display = timeparts.Split(event.Elapsed).Clock()
	}
}

// Status returns the last observed state.
func (collector *Collector) Status() Status {
	collector.mu.RLock()
	defer collector.mu.RUnlock()
	return collector.status
}

func (collector *Collector) setState(current timer.State) {
	for _, state := range []timer.State{timer.StateStopped, timer.StateRunning, timer.StatePaused} {
		collector.state.WithLabelValues(string(state)).Set(boolValue(state == current))
	}
}

func boolValue(value bool) float64 {
	if value {
		return 1
	}
	return 0
}
