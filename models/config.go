package models

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile   = "pseudodata.yaml"
	DefaultTableFile    = "wordderivatives.json"
	DefaultReportFile   = "analysis.csv"
	DefaultOutputDir    = "pseudodata"
	DefaultOutputPrefix = "pseudo_"
	DefaultTop          = 10
)

// Partition selects how derivatives are grouped during aggregation.
type Partition string

const (
	PartitionFile   Partition = "file"
	PartitionGlobal Partition = "global"
)

// Store selects where the table is loaded from.
type Store string

const (
	StoreJSON   Store = "json"
	StoreSQLite Store = "sqlite"
)

// Config holds runtime configuration. Values come from an optional YAML
// file and are then overridden by CLI flags.
type Config struct {
	TableFile    string    `yaml:"table_file"`
	ReportFile   string    `yaml:"report_file"`
	OutputDir    string    `yaml:"output_dir"`
	OutputPrefix string    `yaml:"output_prefix"`
	Partition    Partition `yaml:"partition"`
	Policy       string    `yaml:"policy"`
	Seed         uint64    `yaml:"seed"`
	Store        Store     `yaml:"store"`
	DBPath       string    `yaml:"db_path"`
	Top          int       `yaml:"top"`
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() *Config {
	return &Config{
		TableFile:    DefaultTableFile,
		ReportFile:   DefaultReportFile,
		OutputDir:    DefaultOutputDir,
		OutputPrefix: DefaultOutputPrefix,
		Partition:    PartitionFile,
		Policy:       "uniform",
		Store:        StoreJSON,
		Top:          DefaultTop,
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
// A missing file is not an error when optional is true.
func LoadConfig(path string, optional bool) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	switch c.Partition {
	case PartitionFile, PartitionGlobal:
	default:
		return fmt.Errorf("invalid partition %q (want file or global)", c.Partition)
	}
	switch c.Store {
	case StoreJSON, StoreSQLite:
	default:
		return fmt.Errorf("invalid store %q (want json or sqlite)", c.Store)
	}
	if c.Store == StoreSQLite && c.DBPath == "" {
		return fmt.Errorf("store sqlite requires db_path")
	}
	return nil
}
