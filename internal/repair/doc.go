// Package repair implements the record reconstruction and field-extraction
// engine for broken BetterStreet planning exports.
//
// A BetterStreet CSV export uses ; as its field delimiter but does not quote
// free-text fields, so literal newlines and semicolons typed by agents tear
// record rows apart. This package recovers the original records and maps
// their tokens back to semantic fields.
//
// # Architecture
//
// The engine is a synchronous batch pipeline over in-memory lines:
//
//   - reassembler.go: merges broken physical lines into logical records,
//     detecting record starts through the BE- id prefix
//   - extractor.go: maps one logical record to named fields, either through
//     exact header alignment (trusted) or anchor-based heuristics (best
//     effort), with anchor offsets isolated in AnchorOffsets
//   - patterns.go: the token classifiers the heuristics anchor on (ids,
//     date-times, date-only tokens, street addresses)
//   - temporal.go: multi-format date parsing, the 12-hour ambiguity
//     correction policy and duration computation
//   - normalizer.go: field map to normalized intervention, collecting
//     quality notes
//   - classifier.go: target-year membership and anomaly derivation
//   - pipeline.go: orchestration and the run summary
//
// # Usage Example
//
//	pipe := repair.NewPipeline(repair.Config{
//	    Delimiter: ";",
//	    Year:      2025,
//	    Offsets:   repair.DefaultAnchorOffsets(),
//	    Policy:    repair.DefaultCorrectionPolicy(),
//	}, slog.Default())
//
//	result, err := pipe.Run(ctx, lines)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Summary.KeptCount, "records kept")
//
// # Error Handling
//
// Structural ambiguity is expected input, not an error: heuristic misses
// degrade to absent fields and surface as notes on the record. A record
// whose first token carries no valid id is dropped silently (counted in the
// run summary). Only an input that yields no logical records at all is
// fatal.
package repair
