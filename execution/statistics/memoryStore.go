package statistics

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sensorkit/synthexpr/internal/decmath"
)

// MemoryStore is an in-memory HistoryQuerier for tests and examples. It keeps
// samples per device and variable, sorted by timestamp.
type MemoryStore struct {
	mu      sync.RWMutex
	samples map[string]map[string][]Sample // deviceID -> variable -> samples
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		samples: make(map[string]map[string][]Sample),
	}
}

// Record appends a sample for a device variable.
func (s *MemoryStore) Record(deviceID, variable string, timestamp time.Time, value decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byVariable, ok := s.samples[deviceID]
	if !ok {
		byVariable = make(map[string][]Sample)
		s.samples[deviceID] = byVariable
	}

	series := append(byVariable[variable], Sample{Timestamp: timestamp, Value: value})
	sort.Slice(series, func(i, j int) bool {
		return series[i].Timestamp.Before(series[j].Timestamp)
	})
	byVariable[variable] = series
}

// QueryValues implements HistoryQuerier.
func (s *MemoryStore) QueryValues(
	_ context.Context,
	deviceID, variable string,
	start, end time.Time,
) ([]Sample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Sample
	for _, sample := range s.samples[deviceID][variable] {
		if sample.Timestamp.Before(start) || sample.Timestamp.After(end) {
			continue
		}
		result = append(result, sample)
	}
	return result, nil
}

// QueryAggregate implements HistoryQuerier.
func (s *MemoryStore) QueryAggregate(
	ctx context.Context,
	deviceID, variable string,
	start, end time.Time,
) (Aggregate, error) {
	values, err := s.QueryValues(ctx, deviceID, variable, start, end)
	if err != nil {
		return Aggregate{}, err
	}
	return AggregateSamples(values), nil
}

// AggregateSamples computes the Aggregate of a sample slice. An empty slice
// yields a zero-valued Aggregate with Count 0.
func AggregateSamples(samples []Sample) Aggregate {
	if len(samples) == 0 {
		return Aggregate{}
	}

	agg := Aggregate{
		Min:   samples[0].Value,
		Max:   samples[0].Value,
		Count: int64(len(samples)),
	}
	for _, sample := range samples {
		agg.Sum = agg.Sum.Add(sample.Value)
		if sample.Value.LessThan(agg.Min) {
			agg.Min = sample.Value
		}
		if sample.Value.GreaterThan(agg.Max) {
			agg.Max = sample.Value
		}
	}
	avg, err := decmath.Div(agg.Sum, decimal.NewFromInt(agg.Count))
	if err == nil {
		agg.Avg = avg
	}
	return agg
}
