package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "bsplan/internal/errors"
)

// envPrefix namespaces the environment variables, e.g. BSPLAN_INPUT_DELIMITER.
const envPrefix = "BSPLAN"

// Config represents the complete application configuration. Precedence is
// defaults, then the optional YAML file, then environment variables.
type Config struct {
	Input   InputConfig   `yaml:"input" envconfig:"INPUT"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Repair  RepairConfig  `yaml:"repair" envconfig:"REPAIR"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// InputConfig controls how export files are read and tokenized.
type InputConfig struct {
	Delimiter string `yaml:"delimiter" envconfig:"DELIMITER" validate:"required,len=1"`
}

// OutputConfig controls what a run writes besides the workbook.
type OutputConfig struct {
	CSVExport bool `yaml:"csv_export" envconfig:"CSV_EXPORT"`
}

// RepairConfig tunes the reconstruction heuristics. The offsets encode
// where fields sit relative to the due-date anchor in the export layout;
// they only change when BetterStreet changes its column order.
type RepairConfig struct {
	ShiftAmbiguousEnd  bool          `yaml:"shift_ambiguous_end" envconfig:"SHIFT_AMBIGUOUS_END"`
	Shift              time.Duration `yaml:"shift" envconfig:"SHIFT" validate:"gt=0"`
	AgentsAfterDue     int           `yaml:"agents_after_due" envconfig:"AGENTS_AFTER_DUE" validate:"gt=0"`
	AddressBeforeDue   int           `yaml:"address_before_due" envconfig:"ADDRESS_BEFORE_DUE" validate:"gt=0"`
	BuildingBeforeDue  int           `yaml:"building_before_due" envconfig:"BUILDING_BEFORE_DUE" validate:"gt=0"`
	BuildingScanWindow int           `yaml:"building_scan_window" envconfig:"BUILDING_SCAN_WINDOW" validate:"gt=0"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=stdout file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Delimiter: ";",
		},
		Output: OutputConfig{
			CSVExport: false,
		},
		Repair: RepairConfig{
			ShiftAmbiguousEnd:  true,
			Shift:              12 * time.Hour,
			AgentsAfterDue:     3,
			AddressBeforeDue:   1,
			BuildingBeforeDue:  2,
			BuildingScanWindow: 7,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/bsplan.log",
		},
	}
}

// Load builds the configuration from defaults, the first config file found
// (bsplan.yaml or configs/bsplan.yaml), and BSPLAN_* environment variables.
func Load() (*Config, error) {
	return LoadFrom(findConfigFile())
}

// LoadFrom is Load with an explicit config file path; empty means no file.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.NewConfigError("reading config file "+path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperrors.NewConfigError("parsing config file "+path, err)
		}
	}

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("reading environment", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against the struct constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError("invalid configuration", err)
	}
	return nil
}

// findConfigFile returns the first config file present in the usual
// locations, or empty when none exists.
func findConfigFile() string {
	for _, location := range []string{"bsplan.yaml", "configs/bsplan.yaml"} {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}
