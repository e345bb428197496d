package dispatcher

import (
	"sort"
	"sync"
	"time"
)

// Metrics counts dispatched commands per kind. It is safe for concurrent use.
type Metrics struct {
	mu    sync.Mutex
	kinds map[string]*KindStats
	now   func() time.Time
}

// KindStats is the tally for one command kind ("set", "map", "custom", ...).
type KindStats struct {
	Kind      string
	Count     uint64
	Failures  uint64
	LastError string
	Last      time.Time
}

// Stats is a point-in-time copy of the collected metrics.
type Stats struct {
	Dispatches uint64
	Failures   uint64

	// Kinds is ordered by descending Count, then by name.
	Kinds []KindStats
}

// NewMetrics creates an empty collector.
func NewMetrics() *Metrics {
	return &Metrics{kinds: make(map[string]*KindStats), now: time.Now}
}

// Record counts one dispatch of kind. A non-nil err counts as a failure.
func (m *Metrics) Record(kind string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ks, ok := m.kinds[kind]
	if !ok {
		ks = &KindStats{Kind: kind}
		m.kinds[kind] = ks
	}
	ks.Count++
	ks.Last = m.now()
	if err != nil {
		ks.Failures++
		ks.LastError = err.Error()
	}
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	var s Stats
	s.Kinds = make([]KindStats, 0, len(m.kinds))
	for _, ks := range m.kinds {
		s.Dispatches += ks.Count
		s.Failures += ks.Failures
		s.Kinds = append(s.Kinds, *ks)
	}
	sort.Slice(s.Kinds, func(i, j int) bool {
		a, b := s.Kinds[i], s.Kinds[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Kind < b.Kind
	})
	return s
}

// Reset drops every counter.
func (m *Metrics) Reset() {
	m.mu.Lock()
	clear(m.kinds)
	m.mu.Unlock()
}

// Kind returns the tally for kind.
func (s Stats) Kind(kind string) (KindStats, bool) {
	for _, ks := range s.Kinds {
		if ks.Kind == kind {
			return ks, true
		}
	}
	return KindStats{}, false
}

// FailureRate is the fraction of failed dispatches in [0, 1].
func (ks KindStats) FailureRate() float64 {
	if ks.Count == 0 {
		return 0
	}
	return float64(ks.Failures) / float64(ks.Count)
}
