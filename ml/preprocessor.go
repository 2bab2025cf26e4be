package ml

import (
	"errors"
	"fmt"
)

// StandardScaler applies z = (x - mean) / scale per column.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

func (s *StandardScaler) validate() error {
	if len(s.Mean) == 0 {
		return errors.New("standard scaler has no columns")
	}
	if len(s.Mean) != len(s.Scale) {
		return fmt.Errorf("mean/scale length mismatch: %d vs %d", len(s.Mean), len(s.Scale))
	}
	return nil
}

func (s *StandardScaler) NumFeatures() int {
	return len(s.Mean)
}

func (s *StandardScaler) Transform(row []float64) ([]float64, error) {
	if len(row) != len(s.Mean) {
		return nil, shapeError(len(s.Mean), len(row))
	}
	result := make([]float64, len(row))
	for i, value := range row {
		scale := s.Scale[i]
		// zero-variance columns are fitted with scale 1
		if scale == 0 {
			scale = 1
		}
		result[i] = (value - s.Mean[i]) / scale
	}
	return result, nil
}

// MinMaxScaler maps each column onto [0, 1] using the fitted bounds.
type MinMaxScaler struct {
	Min []float64 `json:"min"`
	Max []float64 `json:"max"`
}

func (s *MinMaxScaler) validate() error {
	if len(s.Min) == 0 {
		return errors.New("minmax scaler has no columns")
	}
	if len(s.Min) != len(s.Max) {
		return fmt.Errorf("min/max length mismatch: %d vs %d", len(s.Min), len(s.Max))
	}
	return nil
}

func (s *MinMaxScaler) NumFeatures() int {
	return len(s.Min)
}

func (s *MinMaxScaler) Transform(row []float64) ([]float64, error) {
	if len(row) != len(s.Min) {
		return nil, shapeError(len(s.Min), len(row))
	}
	return NormalizeVector(row, s.Min, s.Max)
}

func NormalizeFeature(value, min, max float64) float64 {
	if max == min {
		return 0
	}
	return (value - min) / (max - min)
}

func NormalizeVector(values []float64, mins []float64, maxs []float64) ([]float64, error) {
	if len(values) != len(mins) || len(values) != len(maxs) {
		return nil, errors.New("values/mins/maxs length mismatch")
	}
	result := make([]float64, len(values))
	for i := range values {
		result[i] = NormalizeFeature(values[i], mins[i], maxs[i])
	}
	return result, nil
}
