package exporter

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "bsplan/internal/errors"
	"bsplan/pkg/contracts/domain"
)

// DefaultOutputName is used when no explicit output path is given; the
// workbook then lands next to the input file.
const DefaultOutputName = "Planning_Ouvriers_Reformatte.xlsx"

// Sheet names in the generated workbook.
const (
	SheetPlanning  = "Planning"
	SheetAnomalies = "Anomalies"
)

// NoAnomaliesMessage fills the anomaly sheet when the run found nothing.
const NoAnomaliesMessage = "Aucune anomalie détectée avec les règles actuelles."

// Fill colors for flagged planning rows. Red marks records with parse or
// missing-field notes; blue marks interventions starting before 08:00.
const (
	fillRed  = "FFC7CE"
	fillBlue = "D9E1F2"

	earlyStartHour = 8
)

// PlanningColumns is the column order of the Planning sheet.
var PlanningColumns = []string{
	"ID",
	"Description",
	"Catégorie",
	"Bâtiment/Équipement",
	"Adresse",
	"Date Début planification",
	"Heure Début planification",
	"Date Fin planification",
	"Heure Fin planification",
	"Consigne",
	"Agents/Équipes",
	"Durée",
}

// AnomalyColumns is the column order of the Anomalies sheet.
var AnomalyColumns = []string{
	"ID",
	"Début planification (raw)",
	"Fin planification (raw)",
	"Fin planification (corrigée)",
	"Durée (corrigée)",
	"Notes",
}

// PlanningWorkbook writes the reformatted planning workbook: one sheet with
// the kept interventions in chronological order, one with the anomalies.
type PlanningWorkbook struct {
	logger *slog.Logger
}

// NewPlanningWorkbook creates a workbook writer.
func NewPlanningWorkbook(logger *slog.Logger) *PlanningWorkbook {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanningWorkbook{logger: logger}
}

// Write generates the workbook at path. Records are sorted by planning
// start, with unplanned records last in their incoming order.
func (w *PlanningWorkbook) Write(ctx context.Context, path string, records []domain.Intervention, anomalies []domain.Anomaly) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPlanning); err != nil {
		return apperrors.NewStorageError("naming planning sheet", err)
	}

	sorted := sortByStart(records)
	if err := w.writePlanning(f, sorted); err != nil {
		return err
	}
	if err := w.writeAnomalies(f, anomalies); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError("saving workbook "+path, err)
	}

	w.logger.InfoContext(ctx, "workbook written",
		"path", path,
		"records", len(records),
		"anomalies", len(anomalies),
	)
	return nil
}

func (w *PlanningWorkbook) writePlanning(f *excelize.File, records []domain.Intervention) error {
	if err := setRow(f, SheetPlanning, 1, PlanningColumns); err != nil {
		return err
	}

	redStyle, err := solidFill(f, fillRed)
	if err != nil {
		return err
	}
	blueStyle, err := solidFill(f, fillBlue)
	if err != nil {
		return err
	}

	for i, iv := range records {
		rowIdx := i + 2
		if err := setRow(f, SheetPlanning, rowIdx, planningRow(iv)); err != nil {
			return err
		}

		// Red wins over blue when both apply.
		style := 0
		switch {
		case hasQualityNote(iv.Notes):
			style = redStyle
		case iv.Start != nil && iv.Start.Hour() < earlyStartHour:
			style = blueStyle
		}
		if style != 0 {
			first, err := excelize.CoordinatesToCellName(1, rowIdx)
			if err != nil {
				return apperrors.NewStorageError("resolving planning cell name", err)
			}
			last, err := excelize.CoordinatesToCellName(len(PlanningColumns), rowIdx)
			if err != nil {
				return apperrors.NewStorageError("resolving planning cell name", err)
			}
			if err := f.SetCellStyle(SheetPlanning, first, last, style); err != nil {
				return apperrors.NewStorageError("styling planning row", err)
			}
		}
	}
	return nil
}

func (w *PlanningWorkbook) writeAnomalies(f *excelize.File, anomalies []domain.Anomaly) error {
	if _, err := f.NewSheet(SheetAnomalies); err != nil {
		return apperrors.NewStorageError("creating anomaly sheet", err)
	}

	if len(anomalies) == 0 {
		return setRow(f, SheetAnomalies, 1, []string{NoAnomaliesMessage})
	}

	if err := setRow(f, SheetAnomalies, 1, AnomalyColumns); err != nil {
		return err
	}
	for i, anomaly := range anomalies {
		if err := setRow(f, SheetAnomalies, i+2, anomalyRow(anomaly)); err != nil {
			return err
		}
	}
	return nil
}

// planningRow renders one intervention as Planning sheet cells.
func planningRow(iv domain.Intervention) []string {
	return []string{
		iv.ID,
		iv.Description,
		iv.Category,
		iv.Building,
		iv.Address,
		formatDate(iv.Start),
		formatClock(iv.Start),
		formatDate(iv.End),
		formatClock(iv.End),
		iv.Instruction,
		iv.Agents,
		formatDuration(iv.Duration),
	}
}

// anomalyRow renders one anomaly as Anomalies sheet cells.
func anomalyRow(a domain.Anomaly) []string {
	return []string{
		a.ID,
		a.RawStart,
		a.RawEnd,
		formatDateTime(a.CorrectedEnd),
		formatDuration(a.Duration),
		a.JoinedNotes(),
	}
}

// sortByStart orders records chronologically by planning start. Records
// without a start keep their relative order at the end.
func sortByStart(records []domain.Intervention) []domain.Intervention {
	sorted := make([]domain.Intervention, len(records))
	copy(sorted, records)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Start, sorted[j].Start
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return sorted
}

// hasQualityNote reports whether the notes flag a parse failure or a
// missing field. The 12-hour shift and negative-duration notes are
// informational and do not trigger the red fill.
func hasQualityNote(notes []string) bool {
	for _, note := range notes {
		switch note {
		case domain.NoteStartMissing, domain.NoteEndMissing, domain.NoteAgentsMissing:
			return true
		}
		if strings.Contains(note, "parse error") {
			return true
		}
	}
	return false
}

// setRow writes one sheet row starting at column A.
func setRow(f *excelize.File, sheet string, row int, values []string) error {
	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return apperrors.NewStorageError("resolving cell name", err)
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return apperrors.NewStorageError("writing cell "+cell, err)
		}
	}
	return nil
}

// solidFill registers a solid pattern fill style.
func solidFill(f *excelize.File, color string) (int, error) {
	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
	})
	if err != nil {
		return 0, apperrors.NewStorageError("registering fill style", err)
	}
	return style, nil
}
