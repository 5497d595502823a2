package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ExportInfo describes one discovered export file.
type ExportInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides export file discovery operations. Relative directories
// resolve against the base path.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new discovery instance. An empty basePath leaves
// relative directories relative to the working directory.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindExports finds all .csv export files in the specified directory,
// sorted by modification time (oldest first).
func (d *Discovery) FindExports(dir string) ([]ExportInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) && d.basePath != "" {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var exports []ExportInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		exports = append(exports, ExportInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(exports, func(i, j int) bool {
		return exports[i].ModTime.Before(exports[j].ModTime)
	})

	return exports, nil
}

// LatestExport returns the most recently modified export in dir.
// BetterStreet names every download the same way, so the newest file is
// the one the operator just exported.
func (d *Discovery) LatestExport(dir string) (ExportInfo, error) {
	exports, err := d.FindExports(dir)
	if err != nil {
		return ExportInfo{}, err
	}

	latest, ok := Latest(exports)
	if !ok {
		return ExportInfo{}, fmt.Errorf("no export files (*.csv) found in %s", dir)
	}
	return latest, nil
}

// Latest returns the most recently modified file from a list.
func Latest(exports []ExportInfo) (ExportInfo, bool) {
	if len(exports) == 0 {
		return ExportInfo{}, false
	}

	latest := exports[0]
	for _, export := range exports[1:] {
		if export.ModTime.After(latest.ModTime) {
			latest = export
		}
	}
	return latest, true
}

// ResolveOutputPath decides where the workbook lands: the explicit path
// when given, otherwise defaultName next to the input file.
func ResolveOutputPath(inputPath, explicit, defaultName string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(filepath.Dir(inputPath), defaultName)
}
