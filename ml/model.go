package ml

// Scaler is a fitted feature transform. Transform must return a new row of the
// same width and never modify its input.
type Scaler interface {
	Transform(row []float64) ([]float64, error)
	NumFeatures() int
}

// Classifier is a fitted binary model. Predict returns the class label and the
// model's confidence in that label.
type Classifier interface {
	Predict(row []float64) (int, float64, error)
	NumFeatures() int
}

// Artifacts is the immutable pair loaded from disk at startup.
type Artifacts struct {
	Scaler     Scaler
	Classifier Classifier

	// FeatureNames is the column order recorded by the training job, if the
	// artifacts carried one.
	FeatureNames []string

	ScalerType     string
	ClassifierType string
}

// NumFeatures is the row width both artifacts agree on.
func (a *Artifacts) NumFeatures() int {
	if a == nil || a.Scaler == nil {
		return 0
	}
	return a.Scaler.NumFeatures()
}
