package records

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// Summary aggregates AvgError across a record set.
type Summary struct {
	Count  int
	Mean   float64
	Median float64
	P95    float64
	Max    float64
	// Worst is the ID of the first target with the largest AvgError.
	Worst string
}

// Summarize computes error statistics. An empty set returns
// *InsufficientDataError.
func Summarize(s RecordSet) (Summary, error) {
	if s.Empty() {
		return Summary{}, &InsufficientDataError{Op: "summarize"}
	}

	data := stats.Float64Data(s.Errors())
	mean, err := stats.Mean(data)
	if err != nil {
		return Summary{}, fmt.Errorf("mean: %w", err)
	}
	median, err := stats.Median(data)
	if err != nil {
		return Summary{}, fmt.Errorf("median: %w", err)
	}
	p95, err := stats.Percentile(data, 95)
	if err != nil {
		return Summary{}, fmt.Errorf("p95: %w", err)
	}

	sum := Summary{Count: s.Len(), Mean: mean, Median: median, P95: p95}
	for i, r := range s.records {
		if i == 0 || r.AvgError > sum.Max {
			sum.Max = r.AvgError
			sum.Worst = r.ID
		}
	}
	return sum, nil
}
