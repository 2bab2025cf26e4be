package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	DefaultScalerFile     = "scaler.json"
	DefaultClassifierFile = "model.json"

	// DefaultCacheSize holds 32 artifact dirs.
	DefaultCacheSize = 64
)

// artifactHeader is the part of every artifact document read before the
// type-specific payload.
type artifactHeader struct {
	Type         string   `json:"type"`
	FeatureNames []string `json:"feature_names,omitempty"`
}

type loadedScaler struct {
	header artifactHeader
	scaler Scaler
}

type loadedClassifier struct {
	header     artifactHeader
	classifier Classifier
}

// Loader decodes artifact files and keeps the decoded artifacts for the life
// of the process. Each artifact dir holds two entries, so a Loader of cache
// size n serves n/2 dirs from memory; past that the least recently used dir
// is evicted and read from disk again on its next Load.
type Loader struct {
	cache *lru.Cache[string, any]
}

// LoaderOption configures a Loader.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	cacheSize int
}

// WithCacheSize sets how many artifacts the Loader holds. Non-positive
// values keep the default.
func WithCacheSize(n int) LoaderOption {
	return func(o *loaderOptions) {
		if n > 0 {
			o.cacheSize = n
		}
	}
}

func NewLoader(opts ...LoaderOption) (*Loader, error) {
	o := loaderOptions{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(&o)
	}
	cache, err := lru.New[string, any](o.cacheSize)
	if err != nil {
		return nil, err
	}
	return &Loader{cache: cache}, nil
}

// Load reads the scaler and classifier from dir and checks they agree on the
// row width and column order.
func (l *Loader) Load(dir, scalerFile, classifierFile string) (*Artifacts, error) {
	if scalerFile == "" {
		scalerFile = DefaultScalerFile
	}
	if classifierFile == "" {
		classifierFile = DefaultClassifierFile
	}
	scalerPath := filepath.Join(dir, scalerFile)
	classifierPath := filepath.Join(dir, classifierFile)

	s, err := l.scaler(scalerPath)
	if err != nil {
		return nil, err
	}
	c, err := l.classifier(classifierPath)
	if err != nil {
		return nil, err
	}

	if s.scaler.NumFeatures() != c.classifier.NumFeatures() {
		return nil, &ArtifactLoadError{
			Path: classifierPath,
			Err:  fmt.Errorf("%w: scaler has %d features, classifier has %d", ErrShapeMismatch, s.scaler.NumFeatures(), c.classifier.NumFeatures()),
		}
	}

	names := s.header.FeatureNames
	if len(c.header.FeatureNames) > 0 {
		if len(names) > 0 && !slices.Equal(names, c.header.FeatureNames) {
			return nil, &ArtifactLoadError{
				Path: classifierPath,
				Err:  errors.New("scaler and classifier disagree on feature order"),
			}
		}
		names = c.header.FeatureNames
	}

	return &Artifacts{
		Scaler:         s.scaler,
		Classifier:     c.classifier,
		FeatureNames:   names,
		ScalerType:     s.header.Type,
		ClassifierType: c.header.Type,
	}, nil
}

// LoadArtifacts is a one-shot Load with a fresh Loader.
func LoadArtifacts(dir, scalerFile, classifierFile string) (*Artifacts, error) {
	loader, err := NewLoader()
	if err != nil {
		return nil, err
	}
	return loader.Load(dir, scalerFile, classifierFile)
}

func (l *Loader) scaler(path string) (*loadedScaler, error) {
	key, err := cacheKey("scaler", path)
	if err != nil {
		return nil, &ArtifactLoadError{Path: path, Err: err}
	}
	if cached, ok := l.cache.Get(key); ok {
		return cached.(*loadedScaler), nil
	}

	header, payload, err := readArtifact(path)
	if err != nil {
		return nil, &ArtifactLoadError{Path: path, Err: err}
	}
	s, err := decodeScaler(header.Type, payload)
	if err != nil {
		return nil, &ArtifactLoadError{Path: path, Err: err}
	}
	if err := checkFeatureNames(header, s.NumFeatures()); err != nil {
		return nil, &ArtifactLoadError{Path: path, Err: err}
	}

	loaded := &loadedScaler{header: header, scaler: s}
	l.cache.Add(key, loaded)
	return loaded, nil
}

func (l *Loader) classifier(path string) (*loadedClassifier, error) {
	key, err := cacheKey("classifier", path)
	if err != nil {
		return nil, &ArtifactLoadError{Path: path, Err: err}
	}
	if cached, ok := l.cache.Get(key); ok {
		return cached.(*loadedClassifier), nil
	}

	header, payload, err := readArtifact(path)
	if err != nil {
		return nil, &ArtifactLoadError{Path: path, Err: err}
	}
	c, err := decodeClassifier(header.Type, payload)
	if err != nil {
		return nil, &ArtifactLoadError{Path: path, Err: err}
	}
	if err := checkFeatureNames(header, c.NumFeatures()); err != nil {
		return nil, &ArtifactLoadError{Path: path, Err: err}
	}

	loaded := &loadedClassifier{header: header, classifier: c}
	l.cache.Add(key, loaded)
	return loaded, nil
}

func cacheKey(kind, path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return kind + ":" + abs, nil
}

func readArtifact(path string) (artifactHeader, []byte, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return artifactHeader{}, nil, err
	}
	var header artifactHeader
	if err := json.Unmarshal(payload, &header); err != nil {
		return artifactHeader{}, nil, err
	}
	if header.Type == "" {
		return artifactHeader{}, nil, errors.New("artifact has no type")
	}
	return header, payload, nil
}

func decodeScaler(kind string, payload []byte) (Scaler, error) {
	switch kind {
	case "standard":
		s := &StandardScaler{}
		if err := json.Unmarshal(payload, s); err != nil {
			return nil, err
		}
		return s, s.validate()
	case "minmax":
		s := &MinMaxScaler{}
		if err := json.Unmarshal(payload, s); err != nil {
			return nil, err
		}
		return s, s.validate()
	default:
		return nil, fmt.Errorf("%w: scaler %q", ErrUnsupportedType, kind)
	}
}

func decodeClassifier(kind string, payload []byte) (Classifier, error) {
	switch kind {
	case "logistic_regression":
		m := &LogisticRegression{}
		if err := json.Unmarshal(payload, m); err != nil {
			return nil, err
		}
		return m, m.validate()
	case "decision_tree":
		m := &DecisionTree{}
		if err := json.Unmarshal(payload, m); err != nil {
			return nil, err
		}
		return m, m.validate()
	default:
		return nil, fmt.Errorf("%w: classifier %q", ErrUnsupportedType, kind)
	}
}

func checkFeatureNames(header artifactHeader, width int) error {
	if len(header.FeatureNames) == 0 || len(header.FeatureNames) == width {
		return nil
	}
	return fmt.Errorf("%w: %d feature names for %d columns", ErrShapeMismatch, len(header.FeatureNames), width)
}
