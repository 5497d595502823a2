// Package files locates BetterStreet export files on disk and resolves
// output paths for the generated workbook.
//
// Discovery finds .csv exports in a directory and picks the most recent
// one, so the tool can be pointed at a downloads folder instead of a
// specific file. ResolveOutputPath implements the default the planning
// team expects: the workbook lands next to the export it was built from.
//
// Example usage:
//
//	discovery := files.NewDiscovery("")
//
//	export, err := discovery.LatestExport("downloads")
//	if err != nil {
//		return err
//	}
//
//	out := files.ResolveOutputPath(export.Path, "", exporter.DefaultOutputName)
package files
