package ml

import (
	"errors"
	"fmt"
)

// DecisionTree is a fitted tree flattened into a node slice; node 0 is the root.
type DecisionTree struct {
	Features int        `json:"n_features"`
	Nodes    []TreeNode `json:"nodes"`
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	IsLeaf     bool    `json:"is_leaf"`
	Confidence float64 `json:"confidence,omitempty"`
}

func (dt *DecisionTree) validate() error {
	if len(dt.Nodes) == 0 {
		return ErrModelNotTrained
	}
	if dt.Features <= 0 {
		return errors.New("n_features must be positive")
	}
	for i, node := range dt.Nodes {
		if node.IsLeaf {
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= dt.Features {
			return fmt.Errorf("node %d: feature index %d out of range", i, node.FeatureIdx)
		}
		if !dt.validChild(node.LeftChild) || !dt.validChild(node.RightChild) {
			return fmt.Errorf("node %d: child index out of range", i)
		}
		if node.LeftChild <= i || node.RightChild <= i {
			return fmt.Errorf("node %d: children must follow their parent", i)
		}
	}
	return nil
}

func (dt *DecisionTree) validChild(idx int) bool {
	return idx >= 0 && idx < len(dt.Nodes)
}

func (dt *DecisionTree) NumFeatures() int {
	return dt.Features
}

func (dt *DecisionTree) Predict(features []float64) (int, float64, error) {
	if len(dt.Nodes) == 0 {
		return 0, 0, ErrModelNotTrained
	}
	if len(features) != dt.Features {
		return 0, 0, shapeError(dt.Features, len(features))
	}
	idx := 0
	for {
		node := dt.Nodes[idx]
		if node.IsLeaf {
			return node.ClassLabel, leafConfidence(node), nil
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= len(features) {
			return 0, 0, errors.New("feature index out of range")
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
		if !dt.validChild(idx) {
			return 0, 0, errors.New("invalid tree state")
		}
	}
}

func leafConfidence(node TreeNode) float64 {
	if node.Confidence <= 0 {
		return 1
	}
	return node.Confidence
}
