// Package config holds the settings of a polarization run.
//
// Settings come from an optional YAML or TOML file, are overridden by
// command-line flags and are validated before the run starts.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-polarization/pkg/algorithms"
	"github.com/dd0wney/cluso-polarization/pkg/dataset"
)

// DefaultOutputFile is written into the data directory unless overridden
const DefaultOutputFile = "clusters_polarization.csv"

// Config is the full run configuration
type Config struct {
	DataDir        string `yaml:"data_dir" toml:"data_dir" validate:"required"`
	NodesFile      string `yaml:"nodes_file" toml:"nodes_file" validate:"required"`
	EdgesFile      string `yaml:"edges_file" toml:"edges_file" validate:"required"`
	OutputFile     string `yaml:"output_file" toml:"output_file" validate:"required"`
	NodeScoresFile string `yaml:"node_scores_file" toml:"node_scores_file"`

	// Communities lists explicit community ids; empty selects by size
	Communities          []int   `yaml:"communities" toml:"communities" validate:"unique"`
	MinCommunityFraction float64 `yaml:"min_community_fraction" toml:"min_community_fraction" validate:"gt=0,lt=1"`

	Workers     int    `yaml:"workers" toml:"workers" validate:"gte=0,lte=1024"`
	Compress    bool   `yaml:"compress" toml:"compress"`
	RenderTable bool   `yaml:"render_table" toml:"render_table"`
	MetricsFile string `yaml:"metrics_file" toml:"metrics_file"`

	Log      LogConfig       `yaml:"log" toml:"log"`
	S3       *S3Config       `yaml:"s3" toml:"s3" validate:"omitempty"`
	Postgres *PostgresConfig `yaml:"postgres" toml:"postgres" validate:"omitempty"`
	Publish  *PublishConfig  `yaml:"publish" toml:"publish" validate:"omitempty"`
}

// LogConfig controls the run log
type LogConfig struct {
	Dir        string `yaml:"dir" toml:"dir"`
	Level      string `yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" toml:"max_age_days" validate:"gte=0"`
}

// S3Config uploads the results table to a bucket
type S3Config struct {
	Bucket string `yaml:"bucket" toml:"bucket" validate:"required,min=3,max=63"`
	Prefix string `yaml:"prefix" toml:"prefix"`
	Region string `yaml:"region" toml:"region"`
}

// PostgresConfig stores the results table in a database
type PostgresConfig struct {
	DSN   string `yaml:"dsn" toml:"dsn" validate:"required"`
	Table string `yaml:"table" toml:"table" validate:"required,max=63"`
}

// PublishConfig streams pair results on a pub socket
type PublishConfig struct {
	Address string `yaml:"address" toml:"address" validate:"required"`
}

// Default returns a configuration with every optional setting at its default
func Default() *Config {
	return &Config{
		DataDir:              ".",
		NodesFile:            dataset.DefaultNodesFile,
		EdgesFile:            dataset.DefaultEdgesFile,
		OutputFile:           DefaultOutputFile,
		MinCommunityFraction: algorithms.DefaultMinCommunityFraction,
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads a configuration file over the defaults. The format is chosen
// by extension: .yaml, .yml or .toml.
func Load(path string) (*Config, error) {
	cfg := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	return cfg, nil
}

// Resolve joins a file name with the data directory unless it is absolute
func (c *Config) Resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

// CommunityIDs converts the explicit community list
func (c *Config) CommunityIDs() []algorithms.CommunityID {
	if len(c.Communities) == 0 {
		return nil
	}
	ids := make([]algorithms.CommunityID, len(c.Communities))
	for i, id := range c.Communities {
		ids[i] = algorithms.CommunityID(id)
	}
	return ids
}
