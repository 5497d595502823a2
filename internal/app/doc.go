// Package app orchestrates one repair run: it wires the validator, reader,
// repair pipeline, exporters and console reporter together and drives them
// in order.
//
// # Run Flow
//
// The sequence of one run:
//
//	1. Validate the target year and resolve the input path (a directory
//	   argument means "the newest export in there")
//	2. Validate the input file and the output destinations
//	3. Read and decode the export (encoding fallback chain)
//	4. Run the repair pipeline: reassemble, extract, normalize, classify
//	5. Write the workbook, and optionally the cleaned CSV
//	6. Print the console quality-control summary
//
// # Usage
//
// The main entry point is typically:
//
//	application := app.NewApplication(cfg, logger)
//	summary, err := application.Run(ctx, app.RunOptions{
//	    InputPath: "export.csv",
//	    Year:      2025,
//	})
//
// # Error Handling
//
// All errors are returned to the caller for proper handling. The app does
// not call os.Exit() directly, allowing the main function to control the
// exit process. Per-record problems never surface here; the pipeline
// degrades them into counters and anomaly notes.
package app
