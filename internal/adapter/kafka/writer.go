package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/parksafe-la/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Dataset is the value of the "dataset" header on every centroid message.
const Dataset = "la_zip_centroids"

// Writer publishes ZIP centroids to a Kafka topic, keyed by ZIP.
// It implements pipeline.BatchLoader.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the centroid topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadBatch publishes a batch of centroids in a single WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, rows []domain.ZipCentroid) error {
	if len(rows) == 0 {
		return nil
	}
	preparedAt := domain.Now()
	msgs := make([]kafkago.Message, len(rows))
	for i := range rows {
		msg, err := serializeToMessage(rows[i], preparedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish centroids: %w", err)
	}
	w.logger.Debug("centroids published", "topic", w.writer.Topic, "count", len(rows))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a centroid into a Kafka message.
func serializeToMessage(row domain.ZipCentroid, preparedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize centroid: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(row.Zipcode),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "dataset", Value: []byte(Dataset)},
			{Key: "prepared_at", Value: []byte(preparedAt.Format(time.RFC3339))},
		},
	}, nil
}
