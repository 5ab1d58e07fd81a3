// Command zipprep prepares the offline datasets the risk service reads.
// It filters the GeoNames US postal file down to City of Los Angeles ZIPs,
// writes their centroids, optionally publishes them to Kafka, and optionally
// filters a citations export to the same ZIPs.
//
// Usage:
//
//	go run ./cmd/zipprep \
//	  -postal data/raw/US.txt \
//	  -out data/raw/la_zip_centroids.csv \
//	  -citations data/raw/parking_citations.csv \
//	  -citations-out data/processed/la_city_citations.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/couchcryptid/parksafe-la/internal/adapter/kafka"
	"github.com/couchcryptid/parksafe-la/internal/config"
	"github.com/couchcryptid/parksafe-la/internal/geonames"
	"github.com/couchcryptid/parksafe-la/internal/observability"
	"github.com/couchcryptid/parksafe-la/internal/pipeline"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

type options struct {
	postal       string
	out          string
	citations    string
	citationsOut string
	citationsZip string
	kafkaBrokers string
	kafkaTopic   string
	batchSize    int
	logLevel     string
}

func main() {
	var opts options
	flag.StringVar(&opts.postal, "postal", "", "path to the GeoNames US.txt postal file")
	flag.StringVar(&opts.out, "out", "data/raw/la_zip_centroids.csv", "output path for the LA ZIP centroid CSV")
	flag.StringVar(&opts.citations, "citations", "", "optional citations CSV to filter to LA city ZIPs")
	flag.StringVar(&opts.citationsOut, "citations-out", "", "output path for the filtered citations CSV")
	flag.StringVar(&opts.citationsZip, "citations-zip-column", "Zip Code", "ZIP column header in the citations CSV")
	flag.StringVar(&opts.kafkaBrokers, "kafka-brokers", "", "comma-separated Kafka brokers; empty disables publishing")
	flag.StringVar(&opts.kafkaTopic, "kafka-topic", "la-zip-centroids", "Kafka topic for centroid records")
	flag.IntVar(&opts.batchSize, "batch-size", 500, "records per pipeline batch")
	flag.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	logger := observability.NewLogger(&config.Config{LogLevel: opts.logLevel, LogFormat: "text"})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		if opts.postal == "" {
			flag.Usage()
		}
		logger.Error("zipprep failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, logger *slog.Logger) error {
	if opts.postal == "" || opts.out == "" {
		return fmt.Errorf("missing required flags: -postal, -out")
	}
	if opts.citations != "" && opts.citationsOut == "" {
		return fmt.Errorf("-citations requires -citations-out")
	}

	if err := prepareCentroids(ctx, opts, logger); err != nil {
		return err
	}
	if opts.citations == "" {
		return nil
	}
	return filterCitations(opts, logger)
}

func prepareCentroids(ctx context.Context, opts options, logger *slog.Logger) error {
	in, err := os.Open(opts.postal)
	if err != nil {
		return fmt.Errorf("open postal file: %w", err)
	}
	defer in.Close()

	var stats pipeline.Stats
	err = writeAtomic(opts.out, func(out io.Writer) error {
		csvSink := geonames.NewCentroidWriter(out)
		loaders := []pipeline.BatchLoader{csvSink}

		if brokers := sharedcfg.ParseBrokers(opts.kafkaBrokers); len(brokers) > 0 {
			writer := kafka.NewWriter(brokers, opts.kafkaTopic, logger)
			defer func() {
				if err := writer.Close(); err != nil {
					logger.Error("kafka writer close error", "error", err)
				}
			}()
			loaders = append(loaders, writer)
			logger.Info("publishing centroids", "brokers", brokers, "topic", opts.kafkaTopic)
		}

		p := pipeline.New(geonames.NewPostalReader(in), geonames.LACityFilter{}, loaders, logger, opts.batchSize)
		var err error
		if stats, err = p.Run(ctx); err != nil {
			return fmt.Errorf("prepare centroids: %w", err)
		}
		if err := csvSink.Close(); err != nil {
			return fmt.Errorf("flush centroid file: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("centroids written", "path", opts.out, "postal_records", stats.Read, "la_city_zips", stats.Kept)
	return nil
}

func filterCitations(opts options, logger *slog.Logger) error {
	idx, err := geonames.LoadCentroidIndex(opts.out)
	if err != nil {
		return err
	}

	in, err := os.Open(opts.citations)
	if err != nil {
		return fmt.Errorf("open citations: %w", err)
	}
	defer in.Close()

	var stats geonames.CitationStats
	err = writeAtomic(opts.citationsOut, func(out io.Writer) error {
		var err error
		if stats, err = geonames.FilterCitations(in, out, idx.Zips(), opts.citationsZip); err != nil {
			return fmt.Errorf("filter citations: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("citations filtered", "path", opts.citationsOut, "read", stats.Read, "kept", stats.Kept)
	return nil
}

// writeAtomic streams fill into a temp file next to path and renames it over
// path only when fill and the close both succeed. A failed run leaves any
// existing file at path untouched.
func writeAtomic(path string, fill func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err = fill(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
