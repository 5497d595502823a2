package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"bsplan/internal/config"
	"bsplan/internal/console"
	"bsplan/internal/exporter"
	"bsplan/internal/files"
	"bsplan/internal/infrastructure"
	"bsplan/internal/ingest"
	"bsplan/internal/repair"
	"bsplan/internal/validation"
	"bsplan/pkg/contracts/domain"
)

// AppName is the user-facing tool name.
const AppName = "precompte"

// Application wires the run collaborators together.
type Application struct {
	Config    *config.Config
	Logger    *slog.Logger
	Validator *validation.FileValidator
	Reader    *ingest.Reader
	Discovery *files.Discovery

	// Out receives the console summary; nil means os.Stdout.
	Out io.Writer
}

// RunOptions carries the per-invocation parameters of one repair run.
// Behavior tuning (delimiter, correction policy) lives in the Config.
type RunOptions struct {
	// InputPath is the export file, or a directory holding exports, in
	// which case the most recently modified .csv is used.
	InputPath string

	// Year is the target reporting year.
	Year int

	// OutputPath overrides the workbook destination. Empty means the
	// default name next to the input file.
	OutputPath string

	// CSVPath, when set, also writes the cleaned planning as CSV there.
	CSVPath string

	// Quiet suppresses the console summary.
	Quiet bool
}

// NewApplication creates an application instance. A nil config or logger
// falls back to the defaults.
func NewApplication(cfg *config.Config, logger *slog.Logger) *Application {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Application{
		Config:    cfg,
		Logger:    logger,
		Validator: validation.NewFileValidator(logger),
		Reader:    ingest.NewReader(logger),
		Discovery: files.NewDiscovery(""),
	}
}

// Run executes one repair run: validate, read, repair, export, report.
// The returned summary carries the quality-control counters the console
// reporter printed, so callers can log or assert against the same numbers.
func (a *Application) Run(ctx context.Context, opts RunOptions) (*domain.RunSummary, error) {
	ctx = infrastructure.EnsureRunID(ctx)
	logger := infrastructure.WithComponent(a.Logger, "app")

	if err := a.Validator.ValidateYear(opts.Year); err != nil {
		return nil, err
	}

	inputPath, err := a.resolveInput(ctx, logger, opts.InputPath)
	if err != nil {
		return nil, err
	}
	if err := a.Validator.ValidateExportFile(inputPath); err != nil {
		return nil, err
	}

	outputPath := files.ResolveOutputPath(inputPath, opts.OutputPath, exporter.DefaultOutputName)
	if err := a.Validator.ValidateOutputPath(outputPath); err != nil {
		return nil, err
	}

	csvPath := opts.CSVPath
	if csvPath == "" && a.Config.Output.CSVExport {
		csvPath = strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".csv"
	}
	if csvPath != "" {
		if err := a.Validator.ValidateCSVPath(csvPath); err != nil {
			return nil, err
		}
	}

	logger.InfoContext(ctx, "starting run",
		slog.String("input", inputPath),
		slog.String("output", outputPath),
		slog.Int("year", opts.Year),
	)

	source, err := a.Reader.ReadFile(ctx, inputPath)
	if err != nil {
		return nil, err
	}

	pipeline := repair.NewPipeline(a.pipelineConfig(opts.Year), a.Logger)
	result, err := pipeline.Run(ctx, source.Lines)
	if err != nil {
		return nil, err
	}

	summary := result.Summary
	summary.EncodingUsed = source.Encoding

	reporter := console.NewReporter(a.Out, opts.Quiet)
	reporter.ReadOK(summary)

	workbook := exporter.NewPlanningWorkbook(a.Logger)
	if err := workbook.Write(ctx, outputPath, result.Records, result.Anomalies); err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "workbook write failed",
			slog.String("path", outputPath))
		return nil, err
	}

	if csvPath != "" {
		csvWriter := exporter.NewCSVWriter(a.Logger)
		if err := csvWriter.WritePlanning(ctx, csvPath, result.Records); err != nil {
			return nil, err
		}
	}

	reporter.Generated(outputPath)
	reporter.Stats(opts.Year, summary)

	logger.InfoContext(ctx, "run complete",
		slog.String("output", outputPath),
		slog.Int("kept", summary.KeptCount),
		slog.Int("skipped_other_year", summary.SkippedCount),
		slog.Int("anomalies", summary.AnomalyCount),
	)
	return &summary, nil
}

// resolveInput turns a directory argument into the newest export inside it.
// Anything else passes through untouched; the validator reports missing
// files with a better message than a stat error here would.
func (a *Application) resolveInput(ctx context.Context, logger *slog.Logger, path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return path, nil
	}

	export, err := a.Discovery.LatestExport(path)
	if err != nil {
		return "", err
	}

	logger.InfoContext(ctx, "using latest export in directory",
		slog.String("directory", path),
		slog.String("file", export.Path),
		slog.Time("modified", export.ModTime),
	)
	return export.Path, nil
}

// pipelineConfig maps the application configuration onto one pipeline run.
func (a *Application) pipelineConfig(year int) repair.Config {
	return repair.Config{
		Delimiter: a.Config.Input.Delimiter,
		Year:      year,
		Offsets: repair.AnchorOffsets{
			AgentsAfterDue:     a.Config.Repair.AgentsAfterDue,
			AddressBeforeDue:   a.Config.Repair.AddressBeforeDue,
			BuildingBeforeDue:  a.Config.Repair.BuildingBeforeDue,
			BuildingScanWindow: a.Config.Repair.BuildingScanWindow,
		},
		Policy: repair.CorrectionPolicy{
			ShiftAmbiguousEnd: a.Config.Repair.ShiftAmbiguousEnd,
			Shift:             a.Config.Repair.Shift,
		},
	}
}
