// Package records holds the parsed estimator output: one TargetRecord per
// target, the immutable RecordSet built from a single run, and the values
// derived from it (display bounds and error summaries).
package records

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// TargetRecord is one row of estimator output.
type TargetRecord struct {
	ID        string
	True      r3.Vec
	Estimated r3.Vec
	// AvgError is the estimator's own error metric for this target,
	// treated opaquely (metres in the reference estimator).
	AvgError float64
}

// Offset returns Estimated - True.
func (r TargetRecord) Offset() r3.Vec {
	return r3.Sub(r.Estimated, r.True)
}

// Displacement is the straight-line distance between the true and
// estimated positions.
func (r TargetRecord) Displacement() float64 {
	return r3.Norm(r.Offset())
}

// RecordSet is the ordered, read-only collection of records produced by
// Parse. The zero value is an empty set.
type RecordSet struct {
	records []TargetRecord
}

// NewRecordSet copies recs into a RecordSet. It does not validate; use
// Parse for estimator output.
func NewRecordSet(recs ...TargetRecord) RecordSet {
	cp := make([]TargetRecord, len(recs))
	copy(cp, recs)
	return RecordSet{records: cp}
}

// Len returns the number of records.
func (s RecordSet) Len() int { return len(s.records) }

// Empty reports whether the set has no records.
func (s RecordSet) Empty() bool { return len(s.records) == 0 }

// At returns the i-th record in source order.
func (s RecordSet) At(i int) TargetRecord { return s.records[i] }

// All returns a copy of the records in source order.
func (s RecordSet) All() []TargetRecord {
	out := make([]TargetRecord, len(s.records))
	copy(out, s.records)
	return out
}

// IDs returns the target IDs in source order.
func (s RecordSet) IDs() []string {
	out := make([]string, len(s.records))
	for i, r := range s.records {
		out[i] = r.ID
	}
	return out
}

// Errors returns the AvgError column in source order.
func (s RecordSet) Errors() []float64 {
	out := make([]float64, len(s.records))
	for i, r := range s.records {
		out[i] = r.AvgError
	}
	return out
}
