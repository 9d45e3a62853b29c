// Package config loads pipeline settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/results"
	"github.com/draft-club/Entitity-Resolution-with-similarity-matching/internal/table"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. RESOLVER_COLUMNS_ADDRESS_COLUMN
const EnvPrefix = "RESOLVER"

// Config mirrors config.yaml
type Config struct {
	Paths      Paths         `mapstructure:"paths"`
	Files      Files         `mapstructure:"files"`
	Thresholds Thresholds    `mapstructure:"thresholds"`
	Columns    Columns       `mapstructure:"columns"`
	Encodings  Encodings     `mapstructure:"encodings"`
	Limits     Limits        `mapstructure:"limits"`
	Schema     []SchemaEntry `mapstructure:"schema"`
	Export     Export        `mapstructure:"export"`
}

type Paths struct {
	InputFolder      string `mapstructure:"input_folder"`
	OutputFolder     string `mapstructure:"output_folder"`
	DictionaryFolder string `mapstructure:"dictionary_folder"`
}

type Files struct {
	SourceDataset                string `mapstructure:"source_dataset"`
	TargetDataset                string `mapstructure:"target_dataset"`
	DictionaryFile               string `mapstructure:"dictionary_file"`
	EntityResolutionResultsCSV   string `mapstructure:"entity_resolution_results_csv"`
	FilteredMappedTransformedCSV string `mapstructure:"filtered_mapped_transformed_csv"`
}

type Thresholds struct {
	DropNAThreshold float64 `mapstructure:"drop_na_threshold"`
}

type Columns struct {
	AddressColumn string `mapstructure:"address_column"`
	SortBy        string `mapstructure:"sort_by"`
}

// Encodings are WHATWG labels such as utf-8 or windows-1252
type Encodings struct {
	Source string `mapstructure:"source"`
	Target string `mapstructure:"target"`
}

type Limits struct {
	MaxRows int `mapstructure:"max_rows"`
}

// SchemaEntry declares the kind of one column. Entries are a list rather
// than a map so column names keep their case.
type SchemaEntry struct {
	Name string `mapstructure:"name"`
	Kind string `mapstructure:"kind"`
}

type Export struct {
	Formats []string `mapstructure:"formats"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("paths.input_folder", "input")
	v.SetDefault("paths.output_folder", "output")
	v.SetDefault("paths.dictionary_folder", "")
	v.SetDefault("files.source_dataset", "DBLP1.csv")
	v.SetDefault("files.target_dataset", "Scholar.csv")
	v.SetDefault("files.dictionary_file", "updated_mapping.json")
	v.SetDefault("files.entity_resolution_results_csv", "entity_resolution_results.csv")
	v.SetDefault("files.filtered_mapped_transformed_csv", "")
	v.SetDefault("thresholds.drop_na_threshold", 0.6)
	v.SetDefault("columns.address_column", "address")
	v.SetDefault("columns.sort_by", "")
	v.SetDefault("encodings.source", "utf-8")
	v.SetDefault("encodings.target", "utf-8")
	v.SetDefault("limits.max_rows", 0)
	v.SetDefault("export.formats", []string{string(results.CSV), string(results.XLSX)})
}

// Load reads the config file at path, or ./config.yaml when path is empty,
// applies RESOLVER_* environment overrides and validates the result. A
// missing ./config.yaml is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the pipeline cannot run with
func (c *Config) Validate() error {
	if t := c.Thresholds.DropNAThreshold; t < 0 || t > 1 {
		return fmt.Errorf("thresholds.drop_na_threshold must be within [0, 1], got %v", t)
	}
	if c.Limits.MaxRows < 0 {
		return fmt.Errorf("limits.max_rows must not be negative, got %d", c.Limits.MaxRows)
	}
	if _, err := c.ExportFormats(); err != nil {
		return fmt.Errorf("export.formats: %w", err)
	}
	if _, err := c.DeclaredSchema(); err != nil {
		return err
	}
	if c.Files.EntityResolutionResultsCSV == "" {
		return fmt.Errorf("files.entity_resolution_results_csv must be set")
	}
	return nil
}

// ExportFormats parses export.formats; an empty list means the defaults
func (c *Config) ExportFormats() ([]results.Format, error) {
	if len(c.Export.Formats) == 0 {
		return results.DefaultFormats, nil
	}
	return results.ParseFormats(c.Export.Formats)
}

// DeclaredSchema returns the schema overrides; nil when none are declared
func (c *Config) DeclaredSchema() (map[string]table.Kind, error) {
	if len(c.Schema) == 0 {
		return nil, nil
	}
	decl := make(map[string]table.Kind, len(c.Schema))
	for _, e := range c.Schema {
		if e.Name == "" {
			return nil, fmt.Errorf("schema entry without a name")
		}
		kind, err := table.ParseKind(e.Kind)
		if err != nil {
			return nil, fmt.Errorf("schema entry %q: %w", e.Name, err)
		}
		decl[e.Name] = kind
	}
	return decl, nil
}

// SourcePath is the source dataset inside the input folder
func (c *Config) SourcePath() string {
	return filepath.Join(c.Paths.InputFolder, c.Files.SourceDataset)
}

// TargetPath is the target dataset inside the input folder
func (c *Config) TargetPath() string {
	return filepath.Join(c.Paths.InputFolder, c.Files.TargetDataset)
}

// DictionaryPath is the mapping dictionary, or "" when no dictionary folder is set
func (c *Config) DictionaryPath() string {
	if c.Paths.DictionaryFolder == "" || c.Files.DictionaryFile == "" {
		return ""
	}
	return filepath.Join(c.Paths.DictionaryFolder, c.Files.DictionaryFile)
}

// ResultsPath is the base path the ranked results are exported from
func (c *Config) ResultsPath() string {
	return filepath.Join(c.Paths.OutputFolder, c.Files.EntityResolutionResultsCSV)
}

// FilteredPath is where the mapped and filtered table is saved, or "" to skip it
func (c *Config) FilteredPath() string {
	if c.Files.FilteredMappedTransformedCSV == "" {
		return ""
	}
	return filepath.Join(c.Paths.OutputFolder, c.Files.FilteredMappedTransformedCSV)
}

// NormalizedPath is where the address-normalized table is saved
func (c *Config) NormalizedPath() string {
	return filepath.Join(c.Paths.OutputFolder, "normalized_addresses.csv")
}
