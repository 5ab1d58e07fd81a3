// Package model loads the trained risk classifier artifact.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/couchcryptid/parksafe-la/internal/domain"
)

// ErrFeatureMismatch is returned when a vector does not fit the trained weights.
var ErrFeatureMismatch = errors.New("feature count mismatch")

// artifact is the on-disk JSON form of a binary logistic regression.
type artifact struct {
	Version      string    `json:"version"`
	FeatureNames []string  `json:"feature_names,omitempty"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Classes      []int     `json:"classes"`
}

// LogisticClassifier is a binary logistic regression over a fixed feature row.
// It is immutable after loading and safe for concurrent use.
type LogisticClassifier struct {
	version   string
	schema    domain.FeatureSchema
	coef      []float64
	intercept float64
	classes   [2]int
}

// Load reads a classifier artifact from a JSON file.
func Load(path string) (*LogisticClassifier, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model artifact: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes and validates a classifier artifact.
func Parse(r io.Reader) (*LogisticClassifier, error) {
	var a artifact
	if err := json.NewDecoder(r).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}

	if len(a.Coefficients) == 0 {
		return nil, errors.New("model artifact has no coefficients")
	}
	if len(a.Classes) != 2 {
		return nil, fmt.Errorf("model artifact must have 2 classes, got %d", len(a.Classes))
	}

	c := &LogisticClassifier{
		version:   a.Version,
		coef:      a.Coefficients,
		intercept: a.Intercept,
		classes:   [2]int{a.Classes[0], a.Classes[1]},
	}

	if a.FeatureNames != nil {
		if len(a.FeatureNames) != len(a.Coefficients) {
			return nil, fmt.Errorf("model artifact has %d feature names but %d coefficients",
				len(a.FeatureNames), len(a.Coefficients))
		}
		schema, err := domain.NewFeatureSchema(a.FeatureNames)
		if err != nil {
			return nil, fmt.Errorf("model artifact: %w", err)
		}
		c.schema = schema
	}

	return c, nil
}

// Version returns the artifact's version tag, if any.
func (c *LogisticClassifier) Version() string { return c.version }

// Classes returns the two class labels in probability order.
func (c *LogisticClassifier) Classes() [2]int { return c.classes }

// FeatureSchema returns the trained column order, or nil when the artifact
// carries no feature names.
func (c *LogisticClassifier) FeatureSchema() domain.FeatureSchema {
	return c.schema
}

// PredictProba returns the class probabilities for a single row, ordered like Classes.
func (c *LogisticClassifier) PredictProba(vec domain.DenseFeatureVector) ([]float64, error) {
	if err := c.check(vec); err != nil {
		return nil, err
	}

	z := c.intercept
	for i, v := range vec.Values {
		z += c.coef[i] * v.Float64()
	}
	p1 := sigmoid(z)
	return []float64{1 - p1, p1}, nil
}

// Predict returns the label of the more probable class. Ties go to the second class.
func (c *LogisticClassifier) Predict(vec domain.DenseFeatureVector) (int, error) {
	proba, err := c.PredictProba(vec)
	if err != nil {
		return 0, err
	}
	if proba[1] >= 0.5 {
		return c.classes[1], nil
	}
	return c.classes[0], nil
}

// check rejects rows that cannot be scored: wrong width always, and wrong
// column names when the artifact knows its schema.
func (c *LogisticClassifier) check(vec domain.DenseFeatureVector) error {
	if len(vec.Values) != len(c.coef) {
		return fmt.Errorf("%w: got %d features, model expects %d", ErrFeatureMismatch, len(vec.Values), len(c.coef))
	}
	if c.schema == nil {
		return nil
	}
	for i, col := range vec.Columns {
		if col != c.schema[i] {
			return fmt.Errorf("%w: column %d is %q, model expects %q", ErrFeatureMismatch, i, col, c.schema[i])
		}
	}
	return nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
