// Package config handles exporter configuration loading and management.
package config

// Config holds all exporter settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Forces  ForcesConfig  `yaml:"forces"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds element output settings.
type ExportConfig struct {
	OutputDir string `yaml:"output_dir"` // where element files are written
	Overwrite bool   `yaml:"overwrite"`  // replace existing element files
}

// ForcesConfig holds force report settings.
type ForcesConfig struct {
	Precision int `yaml:"precision"` // decimal places in force reports
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			OutputDir: ".",
			Overwrite: false,
		},
		Forces: ForcesConfig{
			Precision: 3,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
