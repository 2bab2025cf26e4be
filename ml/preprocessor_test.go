package ml

import (
	"errors"
	"math"
	"testing"
)

func TestStandardScalerTransform(t *testing.T) {
	scaler := &StandardScaler{
		Mean:  []float64{10, 0, 5},
		Scale: []float64{2, 1, 0},
	}
	if err := scaler.validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := []float64{14, -3, 7}
	scaled, err := scaler.Transform(row)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{2, -3, 2}
	for i := range want {
		if math.Abs(scaled[i]-want[i]) > 1e-9 {
			t.Fatalf("column %d: expected %f, got %f", i, want[i], scaled[i])
		}
	}
	if row[0] != 14 {
		t.Fatal("transform must not modify its input")
	}
}

func TestStandardScalerShapeMismatch(t *testing.T) {
	scaler := &StandardScaler{Mean: []float64{1, 2}, Scale: []float64{1, 1}}
	_, err := scaler.Transform([]float64{1, 2, 3})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestStandardScalerValidate(t *testing.T) {
	if err := (&StandardScaler{}).validate(); err == nil {
		t.Fatal("expected error for empty scaler")
	}
	if err := (&StandardScaler{Mean: []float64{1}, Scale: []float64{1, 2}}).validate(); err == nil {
		t.Fatal("expected error for mismatched lengths")
	}
}

func TestMinMaxScalerTransform(t *testing.T) {
	scaler := &MinMaxScaler{
		Min: []float64{0, 10, 3},
		Max: []float64{10, 20, 3},
	}
	scaled, err := scaler.Transform([]float64{5, 20, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{0.5, 1, 0}
	for i := range want {
		if scaled[i] != want[i] {
			t.Fatalf("column %d: expected %f, got %f", i, want[i], scaled[i])
		}
	}
}

func TestNormalizeVectorLengthMismatch(t *testing.T) {
	if _, err := NormalizeVector([]float64{1}, []float64{0, 0}, []float64{1, 1}); err == nil {
		t.Fatal("expected error")
	}
}
