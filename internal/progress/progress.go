// Package progress defines the cooperative progress sink shared by the
// ingestion, enrichment, and sync engines.
package progress

// Sink receives progress updates as (label, completed, total). It is
// invoked synchronously at defined points inside an operation; callers make
// no assumption about thread affinity.
type Sink func(label string, done, total int)

// Nop discards progress updates.
func Nop(string, int, int) {}

// OrNop returns sink, or Nop when sink is nil, so engines can call it
// unconditionally.
func OrNop(sink Sink) Sink {
	if sink == nil {
		return Nop
	}
	return sink
}
