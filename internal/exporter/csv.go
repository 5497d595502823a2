package exporter

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "bsplan/internal/errors"
	"bsplan/pkg/contracts/domain"
)

// CSVWriter writes the repaired planning as a clean CSV, for callers that
// feed the data into other tooling instead of opening the workbook.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior.
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // UTF-8 BOM so Excel detects the encoding
}

// WritePlanning writes the kept interventions in Planning column order,
// sorted the same way as the workbook sheet.
func (w *CSVWriter) WritePlanning(ctx context.Context, path string, records []domain.Intervention) error {
	sorted := sortByStart(records)

	rows := make([][]string, 0, len(sorted))
	for _, iv := range sorted {
		rows = append(rows, planningRow(iv))
	}

	if err := w.write(path, WriteOptions{
		Headers:   PlanningColumns,
		Records:   rows,
		BOMPrefix: true,
	}); err != nil {
		return err
	}

	w.logger.InfoContext(ctx, "planning csv written",
		"path", path,
		"records", len(rows),
	)
	return nil
}

// write writes a CSV file with the given options.
func (w *CSVWriter) write(path string, options WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("creating output directory", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewStorageError("creating csv file "+path, err)
	}
	defer file.Close()

	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.NewStorageError("writing byte order mark", err)
		}
	}

	writer := csv.NewWriter(file)
	writer.Comma = ';'
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return apperrors.NewStorageError("writing csv header", err)
		}
	}
	for _, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return apperrors.NewStorageError("writing csv record", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewStorageError("flushing csv file", err)
	}
	return nil
}
