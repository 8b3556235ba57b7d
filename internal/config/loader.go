package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/queryscan/queryscan/internal/classify"
	"github.com/queryscan/queryscan/internal/model"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".queryscan"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File holds rule overrides loaded from the .queryscan YAML file.
//
// Overrides extend the built-in tables rather than replacing them: extra
// deny terms join the default deny list, and custom device rules are
// tried before the default table (first match wins).
type File struct {
	// DenyTerms are additional substrings that disqualify identifier
	// field names.
	DenyTerms []string `yaml:"deny_terms"`

	// DeviceRules are custom device-classification rows.
	DeviceRules []DeviceRule `yaml:"device_rules"`

	// Modules restricts analysis to the named modules. A --modules flag
	// takes precedence over this list.
	Modules []string `yaml:"modules"`
}

// DeviceRule is the YAML form of one device-classification row.
type DeviceRule struct {
	Keywords    []string `yaml:"keywords"`
	DeviceType  string   `yaml:"device_type"`
	InfraBucket string   `yaml:"infra_bucket"`
}

// ClassifyRules converts the file's device rules into classifier rows.
func (f *File) ClassifyRules() []classify.Rule {
	rules := make([]classify.Rule, 0, len(f.DeviceRules))
	for _, r := range f.DeviceRules {
		rules = append(rules, classify.Rule{
			Keywords: r.Keywords,
			Classification: model.DeviceClassification{
				DeviceType:  model.DeviceType(r.DeviceType),
				InfraBucket: model.InfraBucket(r.InfraBucket),
			},
		})
	}
	return rules
}

// LoadConfigFile loads rule overrides from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers handle
// this error based on whether the path was explicitly specified by the
// user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .queryscan in the current directory
// 3. Look for .queryscan in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
