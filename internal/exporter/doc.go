// Package exporter writes the outputs of a repair run.
//
// This package contains two main components:
//
// PlanningWorkbook: Generates the Excel workbook with a Planning sheet
// (kept interventions in chronological order, with red fills on records
// carrying quality notes and blue fills on early starts) and an Anomalies
// sheet listing every flagged record.
//
// CSVWriter: Writes the same planning content as a clean semicolon CSV
// with a UTF-8 BOM for Excel compatibility.
//
// Example usage:
//
//	workbook := exporter.NewPlanningWorkbook(logger)
//	err := workbook.Write(ctx, "Planning_Ouvriers_Reformatte.xlsx", result.Records, result.Anomalies)
//
//	csvWriter := exporter.NewCSVWriter(logger)
//	err = csvWriter.WritePlanning(ctx, "planning.csv", result.Records)
package exporter
