// Package predict answers risk queries: encode the form input, align it to
// the trained schema, classify it, and attach what is known about the ZIP.
package predict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/parksafe-la/internal/domain"
	"github.com/couchcryptid/parksafe-la/internal/observability"
	"github.com/google/uuid"
)

// Classifier is the trained risk model.
type Classifier interface {
	// FeatureSchema returns the trained column order, or nil if the artifact has none.
	FeatureSchema() domain.FeatureSchema
	Predict(vec domain.DenseFeatureVector) (int, error)
	PredictProba(vec domain.DenseFeatureVector) ([]float64, error)
}

// CentroidLookup resolves a ZIP to its prepared centroid.
type CentroidLookup interface {
	Lookup(zipcode string) (domain.ZipCentroid, bool)
}

// ErrClassifierNotLoaded is returned when no trained model is attached.
var ErrClassifierNotLoaded = errors.New("classifier not loaded")

// Option configures optional Service collaborators.
type Option func(*Service)

// WithCentroids attaches the prepared LA centroid table.
func WithCentroids(c CentroidLookup) Option {
	return func(s *Service) { s.centroids = c }
}

// WithGeocoder attaches a geocoder for place names.
func WithGeocoder(g domain.Geocoder) Option {
	return func(s *Service) { s.geocoder = g }
}

// WithModelVersion records the artifact version on every prediction.
func WithModelVersion(v string) Option {
	return func(s *Service) { s.modelVersion = v }
}

// Service is safe for concurrent use. The schema is captured once at
// construction and never changes.
type Service struct {
	classifier   Classifier
	schema       domain.FeatureSchema
	centroids    CentroidLookup
	geocoder     domain.Geocoder
	modelVersion string
	metrics      *observability.Metrics
	logger       *slog.Logger
}

// NewService builds a Service around a loaded classifier.
func NewService(classifier Classifier, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Service {
	s := &Service{
		classifier: classifier,
		metrics:    metrics,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	if classifier != nil {
		s.schema = classifier.FeatureSchema()
		metrics.ModelLoaded.Set(1)
	}
	if s.schema.Available() {
		metrics.DegradedMode.Set(0)
		logger.Info("feature schema loaded", "columns", len(s.schema), "zip_columns", len(s.schema.ZipColumns()))
	} else {
		metrics.DegradedMode.Set(1)
		logger.Warn("running in degraded mode", "error", domain.ErrSchemaUnavailable)
	}
	if s.geocoder != nil {
		metrics.GeocodeEnabled.Set(1)
	} else {
		metrics.GeocodeEnabled.Set(0)
	}
	return s
}

// Degraded reports whether the classifier came without a feature schema.
func (s *Service) Degraded() bool { return !s.schema.Available() }

// Predict classifies one query. Encoder rejections wrap domain.ErrInvalidInput;
// classifier failures are returned wrapped with context.
func (s *Service) Predict(ctx context.Context, in domain.RawInput) (domain.Prediction, error) {
	if s.classifier == nil {
		return domain.Prediction{}, fmt.Errorf("classify: %w", ErrClassifierNotLoaded)
	}
	start := time.Now()

	rec, err := domain.Encode(in, s.schema)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			s.metrics.InvalidInputs.Inc()
		}
		return domain.Prediction{}, fmt.Errorf("encode input: %w", err)
	}
	vec := domain.Align(rec, s.schema)

	label, err := s.classifier.Predict(vec)
	if err != nil {
		s.metrics.ClassifierErrors.Inc()
		return domain.Prediction{}, fmt.Errorf("classify: %w", err)
	}
	proba, err := s.classifier.PredictProba(vec)
	if err != nil {
		s.metrics.ClassifierErrors.Inc()
		return domain.Prediction{}, fmt.Errorf("classify probabilities: %w", err)
	}

	risk := domain.RiskLevelForLabel(label)
	p := domain.Prediction{
		ID:            uuid.NewString(),
		RiskLevel:     risk,
		Label:         label,
		Probabilities: proba,
		Message:       risk.Message(),
		Degraded:      !s.schema.Available(),
		Input:         in,
		Location:      s.locate(ctx, in.Zipcode),
		Analysis:      domain.Analyze(in.Zipcode, rec),
		ModelVersion:  s.modelVersion,
		Timestamp:     domain.Now(),
		Features:      vec,
	}

	p.Location.Time = p.DisplayTime()
	p.Location.Day = in.DayOfWeek

	s.metrics.Predictions.WithLabelValues(string(risk)).Inc()
	s.metrics.PredictionDuration.Observe(time.Since(start).Seconds())
	s.logger.Debug("prediction served",
		"id", p.ID,
		"zipcode", in.Zipcode,
		"risk_level", risk,
		"label", label,
		"heuristic_band", p.Analysis.Band,
		"features", vec.Floats(),
	)
	return p, nil
}

func (s *Service) locate(ctx context.Context, zipcode string) domain.Location {
	loc := domain.Location{Zipcode: zipcode}
	if s.centroids != nil {
		if c, ok := s.centroids.Lookup(zipcode); ok {
			loc.Latitude = c.Latitude
			loc.Longitude = c.Longitude
			loc.Known = true
		}
	}
	return domain.EnrichLocation(ctx, loc, s.geocoder, s.logger)
}

// CheckReadiness reports whether the service can answer queries.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.classifier == nil {
		return ErrClassifierNotLoaded
	}
	return nil
}
