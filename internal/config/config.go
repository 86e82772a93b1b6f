package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Input   InputConfig   `yaml:"input" envconfig:"INPUT"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// InputConfig describes the raw export to ingest
type InputConfig struct {
	Path string `yaml:"path" envconfig:"PATH" default:"Hospital Data Revised.xlsx" validate:"required"`
}

// OutputConfig describes where cleaned artifacts are written
type OutputConfig struct {
	Dir          string `yaml:"dir" envconfig:"DIR" default:"."`
	WorkbookName string `yaml:"workbook_name" envconfig:"WORKBOOK_NAME" default:"hospital_cleaned.xlsx" validate:"required"`
	SummaryName  string `yaml:"summary_name" envconfig:"SUMMARY_NAME" default:"hospital_summary.csv" validate:"required"`
	FiguresDir   string `yaml:"figures_dir" envconfig:"FIGURES_DIR" default:"hospital_figs" validate:"required"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
}

// envPrefix namespaces the environment variables, e.g. HOSPITAL_INPUT_PATH.
const envPrefix = "HOSPITAL"

// configFileName is picked up from the working directory when present.
const configFileName = "hospitalclean.yaml"

// Load loads configuration from environment variables and an optional config
// file. Environment variables win over the file; built-in defaults fill the
// rest.
func Load() (*Config, error) {
	var envCfg Config
	if err := envconfig.Process(envPrefix, &envCfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg := envCfg
	if _, err := os.Stat(configFileName); err == nil {
		fileCfg, err := loadFromFile(configFileName)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, envCfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs overlays explicit environment settings on top of file values.
// A field set in the file wins over the envconfig default unless its env var
// was actually present.
func mergeConfigs(fileConfig, envConfig Config) Config {
	merged := envConfig

	merge := func(envVar, fileVal string, dst *string) {
		if _, set := os.LookupEnv(envVar); !set && fileVal != "" {
			*dst = fileVal
		}
	}

	merge("HOSPITAL_INPUT_PATH", fileConfig.Input.Path, &merged.Input.Path)
	merge("HOSPITAL_OUTPUT_DIR", fileConfig.Output.Dir, &merged.Output.Dir)
	merge("HOSPITAL_OUTPUT_WORKBOOK_NAME", fileConfig.Output.WorkbookName, &merged.Output.WorkbookName)
	merge("HOSPITAL_OUTPUT_SUMMARY_NAME", fileConfig.Output.SummaryName, &merged.Output.SummaryName)
	merge("HOSPITAL_OUTPUT_FIGURES_DIR", fileConfig.Output.FiguresDir, &merged.Output.FiguresDir)
	merge("HOSPITAL_LOGGING_LEVEL", fileConfig.Logging.Level, &merged.Logging.Level)
	merge("HOSPITAL_LOGGING_FORMAT", fileConfig.Logging.Format, &merged.Logging.Format)

	return merged
}

// validate checks the configuration with struct tags
func (c *Config) validate() error {
	return validator.New().Struct(c)
}
