package ml

import (
	"errors"
	"math"
)

const defaultThreshold = 0.5

// LogisticRegression is a fitted linear model; label 1 when
// sigmoid(intercept + coef·x) >= Threshold.
type LogisticRegression struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
	Threshold float64   `json:"threshold,omitempty"`
}

func (m *LogisticRegression) validate() error {
	if len(m.Coef) == 0 {
		return ErrModelNotTrained
	}
	if m.Threshold < 0 || m.Threshold > 1 {
		return errors.New("threshold must be within [0, 1]")
	}
	if m.Threshold == 0 {
		m.Threshold = defaultThreshold
	}
	return nil
}

func (m *LogisticRegression) NumFeatures() int {
	return len(m.Coef)
}

func (m *LogisticRegression) Predict(features []float64) (int, float64, error) {
	if len(m.Coef) == 0 {
		return 0, 0, ErrModelNotTrained
	}
	if len(features) != len(m.Coef) {
		return 0, 0, shapeError(len(m.Coef), len(features))
	}
	score := m.Intercept
	for i, value := range features {
		score += m.Coef[i] * value
	}
	probability := sigmoid(score)
	threshold := m.Threshold
	if threshold == 0 {
		threshold = defaultThreshold
	}
	if probability >= threshold {
		return 1, probability, nil
	}
	return 0, 1 - probability, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
