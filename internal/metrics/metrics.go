// Package metrics holds in-process atomic counters for client
// operations. Counting is allocation-free on the hot path; Snapshot is a
// point-in-time deep copy for reporting.
package metrics

import "sync/atomic"

// ID identifies one counter.
type ID int

const (
	LoginSuccess ID = iota
	LoginFailure
	LoginRejectedInFlight
	RegisterSuccess
	RegisterFailure
	Logout
	UnauthorizedClear
	UserRefresh
	ProfileUpdate

	IDCount
)

// Config controls whether counting is active. When disabled, all
// operations are no-ops.
type Config struct {
	Enabled bool
}

// Metrics is a fixed-size set of atomic counters.
type Metrics struct {
	enabled  bool
	counters [IDCount]atomic.Uint64
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	Counters map[ID]uint64
}

func New(cfg Config) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

func (m *Metrics) Inc(id ID) {
	if m == nil || !m.enabled || id < 0 || id >= IDCount {
		return
	}
	m.counters[id].Add(1)
}

func (m *Metrics) Snapshot() Snapshot {
	out := Snapshot{Counters: make(map[ID]uint64, IDCount)}
	if m == nil || !m.enabled {
		return out
	}
	for id := ID(0); id < IDCount; id++ {
		out.Counters[id] = m.counters[id].Load()
	}
	return out
}
