package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bsplan/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ";", cfg.Input.Delimiter)
	assert.False(t, cfg.Output.CSVExport)
	assert.True(t, cfg.Repair.ShiftAmbiguousEnd)
	assert.Equal(t, 12*time.Hour, cfg.Repair.Shift)
	assert.Equal(t, 3, cfg.Repair.AgentsAfterDue)
	assert.Equal(t, 1, cfg.Repair.AddressBeforeDue)
	assert.Equal(t, 2, cfg.Repair.BuildingBeforeDue)
	assert.Equal(t, 7, cfg.Repair.BuildingScanWindow)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "both", cfg.Logging.Output)

	require.NoError(t, cfg.Validate())
}

func TestLoadFrom_NoFile(t *testing.T) {
	cfg, err := LoadFrom("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFrom_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
input:
  delimiter: ","
repair:
  shift_ambiguous_end: false
  agents_after_due: 4
logging:
  level: debug
  output: stdout
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, ",", cfg.Input.Delimiter)
	assert.False(t, cfg.Repair.ShiftAmbiguousEnd)
	assert.Equal(t, 4, cfg.Repair.AgentsAfterDue)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "stdout", cfg.Logging.Output)

	// Untouched sections keep their defaults.
	assert.Equal(t, 12*time.Hour, cfg.Repair.Shift)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
input:
  delimiter: ","
`)
	t.Setenv("BSPLAN_INPUT_DELIMITER", "|")
	t.Setenv("BSPLAN_REPAIR_SHIFT", "6h")
	t.Setenv("BSPLAN_OUTPUT_CSV_EXPORT", "true")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "|", cfg.Input.Delimiter)
	assert.Equal(t, 6*time.Hour, cfg.Repair.Shift)
	assert.True(t, cfg.Output.CSVExport)
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeConfig, appErr.Type)
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "input: [not a mapping")

	_, err := LoadFrom(path)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeConfig, appErr.Type)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "empty delimiter",
			mutate:  func(c *Config) { c.Input.Delimiter = "" },
			wantErr: true,
		},
		{
			name:    "multi-rune delimiter",
			mutate:  func(c *Config) { c.Input.Delimiter = ";;" },
			wantErr: true,
		},
		{
			name:    "zero shift",
			mutate:  func(c *Config) { c.Repair.Shift = 0 },
			wantErr: true,
		},
		{
			name:    "negative anchor offset",
			mutate:  func(c *Config) { c.Repair.AddressBeforeDue = -1 },
			wantErr: true,
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "unknown log output",
			mutate:  func(c *Config) { c.Logging.Output = "syslog" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bsplan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
