package fraud

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"fraudcheck/ml"
)

// Result is the outcome of one analysis.
type Result struct {
	Verdict    Verdict
	Label      int
	Confidence float64
	Features   FeatureVector
	Timestamp  int64
}

// Pipeline scores transactions against a loaded scaler and classifier. It
// holds no mutable state and is safe for concurrent use.
type Pipeline struct {
	scaler     ml.Scaler
	classifier ml.Classifier
	location   *time.Location
	logger     *zap.Logger
}

type Option func(*Pipeline)

// WithLocation sets the zone used to turn the transaction date into a Unix
// timestamp. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(p *Pipeline) {
		if loc != nil {
			p.location = loc
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPipeline checks that the artifacts expect this package's feature layout.
func NewPipeline(artifacts *ml.Artifacts, opts ...Option) (*Pipeline, error) {
	if artifacts == nil || artifacts.Scaler == nil || artifacts.Classifier == nil {
		return nil, &InferenceError{Stage: "setup", Err: errors.New("artifacts not loaded")}
	}
	if n := artifacts.Scaler.NumFeatures(); n != NumFeatures {
		return nil, &InferenceError{
			Stage: "setup",
			Err:   fmt.Errorf("%w: scaler expects %d features, pipeline builds %d", ml.ErrShapeMismatch, n, NumFeatures),
		}
	}
	if n := artifacts.Classifier.NumFeatures(); n != NumFeatures {
		return nil, &InferenceError{
			Stage: "setup",
			Err:   fmt.Errorf("%w: classifier expects %d features, pipeline builds %d", ml.ErrShapeMismatch, n, NumFeatures),
		}
	}
	if len(artifacts.FeatureNames) > 0 && !slices.Equal(artifacts.FeatureNames, FeatureNames()) {
		return nil, &InferenceError{
			Stage: "setup",
			Err:   fmt.Errorf("artifact feature order %v does not match %v", artifacts.FeatureNames, FeatureNames()),
		}
	}

	p := &Pipeline{
		scaler:     artifacts.Scaler,
		classifier: artifacts.Classifier,
		location:   time.UTC,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Analyze builds the feature row for tx, scales it and classifies it.
func (p *Pipeline) Analyze(ctx context.Context, tx Transaction) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	features := BuildFeatureVector(tx, p.location)

	scaled, err := p.scaler.Transform(features.Row())
	if err != nil {
		return nil, &InferenceError{Stage: "transform", Err: err}
	}
	if len(scaled) != NumFeatures {
		return nil, &InferenceError{
			Stage: "transform",
			Err:   fmt.Errorf("%w: scaler returned %d columns", ml.ErrShapeMismatch, len(scaled)),
		}
	}

	label, confidence, err := p.classifier.Predict(scaled)
	if err != nil {
		return nil, &InferenceError{Stage: "predict", Err: err}
	}

	result := &Result{
		Verdict:    VerdictFromLabel(label),
		Label:      label,
		Confidence: confidence,
		Features:   features,
		Timestamp:  UnixTimestamp(tx.Date, tx.Hour, p.location),
	}
	p.logger.Debug("transaction analyzed",
		zap.Stringer("verdict", result.Verdict),
		zap.Int("label", label),
		zap.Float64("confidence", confidence),
	)
	return result, nil
}
