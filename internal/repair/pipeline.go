package repair

import (
	"context"
	"errors"
	"log/slog"
	"time"

	apperrors "bsplan/internal/errors"
	"bsplan/pkg/contracts/domain"
)

// ErrEmptyInput marks an input that yields no logical records at all.
// There is nothing to report on, so the run fails.
var ErrEmptyInput = errors.New("no logical records reconstructed from input")

// Config carries the settings of one pipeline run.
type Config struct {
	// Delimiter separates fields in the export. Single character.
	Delimiter string `json:"delimiter"`

	// Year is the target reporting year.
	Year int `json:"year"`

	// Offsets configures the heuristic extractor's anchor distances.
	Offsets AnchorOffsets `json:"offsets"`

	// Policy configures the 12-hour ambiguity correction.
	Policy CorrectionPolicy `json:"policy"`
}

// DefaultConfig returns the production settings for the target year.
func DefaultConfig(year int) Config {
	return Config{
		Delimiter: ";",
		Year:      year,
		Offsets:   DefaultAnchorOffsets(),
		Policy:    DefaultCorrectionPolicy(),
	}
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Header carries the column names found in the export.
	Header []string

	// Records are the kept interventions in input order. Sorting is the
	// report writer's concern, not the pipeline's.
	Records []domain.Intervention

	// Anomalies lists the kept records that carry quality notes, in input
	// order.
	Anomalies []domain.Anomaly

	// Summary carries the quality-control counters of the run.
	Summary domain.RunSummary
}

// Pipeline runs reassembly, extraction, normalization and classification
// over the lines of one export. Records are independent of one another;
// processing is single-threaded and synchronous.
type Pipeline struct {
	config Config
	logger *slog.Logger
}

// NewPipeline creates a pipeline. A nil logger falls back to slog.Default();
// zero or invalid config fields fall back to the defaults.
func NewPipeline(config Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if config.Delimiter == "" {
		config.Delimiter = ";"
	}
	if !config.Offsets.IsValid() {
		config.Offsets = DefaultAnchorOffsets()
	}
	if !config.Policy.IsValid() {
		config.Policy = DefaultCorrectionPolicy()
	}
	return &Pipeline{config: config, logger: logger}
}

// Run processes the raw lines of one export. Per-record problems degrade
// (malformed records are dropped and counted); only an input with no
// reconstructable records fails.
func (p *Pipeline) Run(ctx context.Context, lines []string) (*Result, error) {
	started := time.Now()

	p.logger.InfoContext(ctx, "starting repair pipeline",
		"raw_lines", len(lines),
		"year", p.config.Year,
		"delimiter", p.config.Delimiter,
	)

	rebuilt := Reassemble(lines, p.config.Delimiter)
	if len(rebuilt) == 0 {
		p.logger.ErrorContext(ctx, "reassembly produced no records")
		return nil, apperrors.NewEmptyInputError("no logical records reconstructed", ErrEmptyInput)
	}

	header := tokenize(rebuilt[0], p.config.Delimiter)
	for i, col := range header {
		header[i] = normalizeToken(col)
	}

	result := &Result{
		Header: header,
		Summary: domain.RunSummary{
			RawLineCount:       len(lines),
			RebuiltRecordCount: len(rebuilt) - 1,
			ExpectedColumns:    len(header),
			EmptyFieldCounts:   make(map[string]int),
		},
	}

	extractor := NewExtractor(header, p.config.Delimiter, p.config.Offsets)
	normalizer := NewNormalizer(p.config.Policy)
	classifier := NewClassifier(p.config.Year)

	for _, record := range rebuilt[1:] {
		ex, err := extractor.Extract(record)
		if err != nil {
			result.Summary.MalformedCount++
			p.logger.DebugContext(ctx, "dropping malformed record", "error", err)
			continue
		}

		switch ex.Mode {
		case domain.MappingAligned:
			result.Summary.AlignedCount++
		case domain.MappingHeuristic:
			result.Summary.HeuristicCount++
		}

		iv := normalizer.Normalize(ex)
		if !classifier.Keep(&iv) {
			result.Summary.SkippedCount++
			continue
		}
		result.Summary.KeptCount++

		if anomaly := classifier.Anomaly(&iv); anomaly != nil {
			result.Anomalies = append(result.Anomalies, *anomaly)
		}
		result.Records = append(result.Records, iv)
	}

	result.Summary.AnomalyCount = len(result.Anomalies)
	countEmptyFields(&result.Summary, result.Records)

	p.logger.InfoContext(ctx, "repair pipeline completed",
		"duration", time.Since(started),
		"rebuilt_records", result.Summary.RebuiltRecordCount,
		"aligned", result.Summary.AlignedCount,
		"heuristic", result.Summary.HeuristicCount,
		"malformed", result.Summary.MalformedCount,
		"kept", result.Summary.KeptCount,
		"skipped_other_year", result.Summary.SkippedCount,
		"anomalies", result.Summary.AnomalyCount,
	)

	return result, nil
}

// countEmptyFields tallies absent values over the kept records for the
// report's quality-tracked columns. All tracked columns get an entry, so
// zero counts show up in the summary too.
func countEmptyFields(summary *domain.RunSummary, records []domain.Intervention) {
	for _, field := range []string{
		domain.FieldDescription,
		domain.FieldCategory,
		domain.FieldBuilding,
		domain.FieldAddress,
		domain.FieldInstruction,
		domain.FieldAgents,
	} {
		summary.EmptyFieldCounts[field] = 0
	}

	for _, iv := range records {
		if iv.Description == "" {
			summary.EmptyFieldCounts[domain.FieldDescription]++
		}
		if iv.Category == "" {
			summary.EmptyFieldCounts[domain.FieldCategory]++
		}
		if iv.Building == "" {
			summary.EmptyFieldCounts[domain.FieldBuilding]++
		}
		if iv.Address == "" {
			summary.EmptyFieldCounts[domain.FieldAddress]++
		}
		if iv.Instruction == "" {
			summary.EmptyFieldCounts[domain.FieldInstruction]++
		}
		if iv.Agents == "" {
			summary.EmptyFieldCounts[domain.FieldAgents]++
		}
	}
}
