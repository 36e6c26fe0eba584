package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"certgen/internal/logger"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	StrategyLibrary    = "library"
	StrategyAutomation = "automation"

	ExporterLibreOffice = "libreoffice"
	ExporterAutomation  = "automation"
)

type Config struct {
	BaseDirectory string        `toml:"base_directory" json:"base_directory" yaml:"base_directory"`
	TemplateFile  string        `toml:"template_file" json:"template_file" yaml:"template_file"`
	Strategy      string        `toml:"strategy" json:"strategy" yaml:"strategy"`
	Input         InputConfig   `toml:"input" json:"input" yaml:"input"`
	Export        ExportConfig  `toml:"export" json:"export" yaml:"export"`
	Metrics       MetricsConfig `toml:"metrics" json:"metrics" yaml:"metrics"`
	Jobs          []JobConfig   `toml:"jobs" json:"towers" yaml:"jobs"`
}

type InputConfig struct {
	Sheet    string `toml:"sheet" json:"sheet" yaml:"sheet"`
	StartRow int    `toml:"start_row" json:"start_row" yaml:"start_row"`
}

type ExportConfig struct {
	Exporter        string `toml:"exporter" json:"exporter" yaml:"exporter"`
	SofficePath     string `toml:"soffice_path" json:"soffice_path" yaml:"soffice_path"`
	OutputDirectory string `toml:"output_directory" json:"output_directory" yaml:"output_directory"`
}

type MetricsConfig struct {
	Textfile string `toml:"textfile" json:"textfile" yaml:"textfile"`
}

// JobConfig describes one calibration workbook to turn into certificates.
type JobConfig struct {
	Name        string `toml:"name" json:"name" yaml:"name"`
	InputFile   string `toml:"input_file" json:"input_file" yaml:"input_file"`
	OutputFile  string `toml:"output_file" json:"output_file" yaml:"output_file"`
	SheetPrefix string `toml:"sheet_prefix" json:"sheet_prefix" yaml:"sheet_prefix"`
}

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		BaseDirectory: ".",
		TemplateFile:  "template.xlsx",
		Strategy:      StrategyLibrary,
		Input: InputConfig{
			Sheet:    "Sheet1",
			StartRow: 5,
		},
		Export: ExportConfig{
			Exporter:        ExporterLibreOffice,
			SofficePath:     "soffice",
			OutputDirectory: "pdf",
		},
		Jobs: []JobConfig{
			{
				Name:        "Tower B",
				InputFile:   "TowerB_calibration.xlsx",
				OutputFile:  "TowerB_certificates.xlsx",
				SheetPrefix: "TowerB",
			},
		},
	}
}

// LoadConfig loads configuration from the specified config file path.
// A default file is created when none exists.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		configDir := filepath.Dir(configPath)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}

		defaultConfig := Default()
		if err := SaveConfig(configPath, defaultConfig); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}

		logger.Info("Created default config file", "path", configPath)
		return defaultConfig, nil
	}

	var config Config
	if err := decodeFile(configPath, &config); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	config.applyDefaults()
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	logger.Info("Loaded configuration", "path", configPath, "jobs", len(config.Jobs))
	return &config, nil
}

func decodeFile(configPath string, config *Config) error {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".json":
		data, err := os.ReadFile(configPath)
		if err != nil {
			return err
		}
		return json.Unmarshal(data, config)
	case ".yaml", ".yml":
		data, err := os.ReadFile(configPath)
		if err != nil {
			return err
		}
		return yaml.Unmarshal(data, config)
	default:
		_, err := toml.DecodeFile(configPath, config)
		return err
	}
}

func (c *Config) applyDefaults() {
	if c.BaseDirectory == "" {
		c.BaseDirectory = "."
	}
	if c.Strategy == "" {
		c.Strategy = StrategyLibrary
	}
	if c.Input.Sheet == "" {
		c.Input.Sheet = "Sheet1"
	}
	if c.Input.StartRow == 0 {
		c.Input.StartRow = 5
	}
	if c.Export.Exporter == "" {
		c.Export.Exporter = ExporterLibreOffice
	}
	if c.Export.SofficePath == "" {
		c.Export.SofficePath = "soffice"
	}
	if c.Export.OutputDirectory == "" {
		c.Export.OutputDirectory = "pdf"
	}
}

// Validate checks the settings shared by all jobs. Per-job fields are
// checked when the job runs, so one bad job cannot stop the others.
func (c *Config) Validate() error {
	switch c.Strategy {
	case StrategyLibrary, StrategyAutomation:
	default:
		return fmt.Errorf("unknown strategy %q (must be %s or %s)", c.Strategy, StrategyLibrary, StrategyAutomation)
	}
	switch c.Export.Exporter {
	case ExporterLibreOffice, ExporterAutomation:
	default:
		return fmt.Errorf("unknown exporter %q (must be %s or %s)", c.Export.Exporter, ExporterLibreOffice, ExporterAutomation)
	}
	if c.Input.StartRow < 1 {
		return fmt.Errorf("input start_row must be at least 1, got %d", c.Input.StartRow)
	}
	return nil
}

// Missing returns the first required field job leaves empty, or "".
func (j JobConfig) Missing() string {
	switch {
	case strings.TrimSpace(j.InputFile) == "":
		return "input_file"
	case strings.TrimSpace(j.OutputFile) == "":
		return "output_file"
	case strings.TrimSpace(j.SheetPrefix) == "":
		return "sheet_prefix"
	}
	return ""
}

// Resolve joins a config-relative path onto the base directory.
func (c *Config) Resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.BaseDirectory, name)
}

// SaveConfig saves configuration to the specified config file path.
func SaveConfig(configPath string, config *Config) error {
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".json":
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "    ")
		err = encoder.Encode(config)
	case ".yaml", ".yml":
		encoder := yaml.NewEncoder(file)
		err = encoder.Encode(config)
		if err == nil {
			err = encoder.Close()
		}
	default:
		err = toml.NewEncoder(file).Encode(config)
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	logger.Info("Saved configuration", "path", configPath)
	return nil
}
