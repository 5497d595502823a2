package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "bsplan/internal/errors"
)

// Year bounds accepted for the report filter. Two-digit export years all
// land inside this window after parsing, so anything outside it is a typo
// on the command line.
const (
	MinYear = 2000
	MaxYear = 2100
)

// FileValidator checks run inputs before any work happens, so a bad path
// or year fails fast with a clear message instead of an empty workbook.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateExportFile checks that the input export exists and is readable.
// Extensions other than .csv are accepted (mail clients rename attachments)
// but logged.
func (v *FileValidator) ValidateExportFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("input file does not exist",
			slog.String("file", path))
		return apperrors.NewNotFoundError("input file " + path)
	}
	if err != nil {
		v.logger.Error("failed to stat input file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("stat input file "+path, err)
	}
	if info.IsDir() {
		v.logger.Error("input path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewAppValidationError(path + " is a directory, not an export file")
	}

	if ext := strings.ToLower(filepath.Ext(path)); ext != ".csv" {
		v.logger.Warn("input file does not carry the .csv extension",
			slog.String("file", path),
			slog.String("extension", ext))
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("input file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("input file "+path+" is not readable", err)
	}
	file.Close()

	v.logger.Debug("input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateOutputPath checks that the workbook destination is an .xlsx path
// in a writable directory. Missing parent directories are created.
func (v *FileValidator) ValidateOutputPath(path string) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".xlsx" {
		v.logger.Error("output path is not an .xlsx file",
			slog.String("path", path),
			slog.String("extension", ext))
		return apperrors.NewAppValidationError("output file must end in .xlsx, got " + path)
	}

	// ~$ files are Excel's lock files; writing one confuses Excel itself.
	if strings.HasPrefix(filepath.Base(path), "~$") {
		return apperrors.NewAppValidationError(path + " uses an Excel lock file name")
	}

	return v.ensureWritableDir(filepath.Dir(path))
}

// ValidateCSVPath checks that the optional cleaned-CSV destination is a
// .csv path in a writable directory.
func (v *FileValidator) ValidateCSVPath(path string) error {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".csv" {
		v.logger.Error("csv export path is not a .csv file",
			slog.String("path", path),
			slog.String("extension", ext))
		return apperrors.NewAppValidationError("csv export file must end in .csv, got " + path)
	}

	return v.ensureWritableDir(filepath.Dir(path))
}

// ValidateYear rejects target years no export can contain.
func (v *FileValidator) ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		v.logger.Error("target year out of range",
			slog.Int("year", year))
		return apperrors.NewAppValidationError(
			fmt.Sprintf("year %d outside plausible range [%d, %d]", year, MinYear, MaxYear))
	}
	return nil
}

// ensureWritableDir creates dir if needed and verifies it accepts writes
// by creating and removing a probe file.
func (v *FileValidator) ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("create output directory "+dir, err)
	}

	probe := filepath.Join(dir, ".write_test")
	file, err := os.Create(probe)
	if err != nil {
		v.logger.Error("output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError("output directory "+dir+" is not writable", err)
	}
	file.Close()
	os.Remove(probe)

	return nil
}
