package validation

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bsplan/internal/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// errType extracts the AppError type, or "" for other errors.
func errType(err error) apperrors.ErrorType {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

func TestValidateExportFile(t *testing.T) {
	dir := t.TempDir()

	exportPath := filepath.Join(dir, "export.csv")
	require.NoError(t, os.WriteFile(exportPath, []byte("ID;Description\n"), 0644))

	renamedPath := filepath.Join(dir, "export.txt")
	require.NoError(t, os.WriteFile(renamedPath, []byte("ID;Description\n"), 0644))

	tests := []struct {
		name         string
		path         string
		expectedType apperrors.ErrorType
	}{
		{
			name: "existing csv file",
			path: exportPath,
		},
		{
			name: "renamed extension still accepted",
			path: renamedPath,
		},
		{
			name:         "missing file",
			path:         filepath.Join(dir, "nope.csv"),
			expectedType: apperrors.ErrTypeNotFound,
		},
		{
			name:         "directory instead of file",
			path:         dir,
			expectedType: apperrors.ErrTypeValidation,
		},
	}

	validator := NewFileValidator(testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateExportFile(tt.path)
			if tt.expectedType == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.expectedType, errType(err))
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name         string
		path         string
		expectedType apperrors.ErrorType
	}{
		{
			name: "xlsx in existing directory",
			path: filepath.Join(dir, "planning.xlsx"),
		},
		{
			name: "creates missing parent directories",
			path: filepath.Join(dir, "out", "2025", "planning.xlsx"),
		},
		{
			name:         "wrong extension",
			path:         filepath.Join(dir, "planning.csv"),
			expectedType: apperrors.ErrTypeValidation,
		},
		{
			name:         "excel lock file name",
			path:         filepath.Join(dir, "~$planning.xlsx"),
			expectedType: apperrors.ErrTypeValidation,
		},
	}

	validator := NewFileValidator(testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateOutputPath(tt.path)
			if tt.expectedType == "" {
				assert.NoError(t, err)
				assert.DirExists(t, filepath.Dir(tt.path))
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.expectedType, errType(err))
		})
	}
}

func TestValidateOutputPath_LeavesNoProbe(t *testing.T) {
	dir := t.TempDir()
	validator := NewFileValidator(testLogger())

	require.NoError(t, validator.ValidateOutputPath(filepath.Join(dir, "planning.xlsx")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestValidateCSVPath(t *testing.T) {
	dir := t.TempDir()
	validator := NewFileValidator(testLogger())

	assert.NoError(t, validator.ValidateCSVPath(filepath.Join(dir, "planning.csv")))

	err := validator.ValidateCSVPath(filepath.Join(dir, "planning.xlsx"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrTypeValidation, errType(err))
}

func TestValidateYear(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		wantErr bool
	}{
		{name: "current era", year: 2025},
		{name: "lower bound", year: MinYear},
		{name: "upper bound", year: MaxYear},
		{name: "two digit year", year: 25, wantErr: true},
		{name: "far future", year: 3025, wantErr: true},
		{name: "zero", year: 0, wantErr: true},
	}

	validator := NewFileValidator(testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateYear(tt.year)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.ErrTypeValidation, errType(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestNewFileValidator_NilLogger(t *testing.T) {
	validator := NewFileValidator(nil)
	require.NotNil(t, validator)
	assert.NotNil(t, validator.logger)
}
