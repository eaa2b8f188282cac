package base

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultKeyBits      = 2048
	DefaultValidityDays = 365
	DefaultProfilePath  = "certmaker.yaml"
)

// Profile holds defaults for the generate command. Explicit flags override it.
type Profile struct {
	KeyBits      int    `yaml:"keyBits"`
	ValidityDays int    `yaml:"validityDays"`
	OutputDir    string `yaml:"outputDir"`
	DER          bool   `yaml:"der"`
	MetricsFile  string `yaml:"metricsFile"`
}

// LoadProfile reads a YAML profile. A missing file yields the built-in defaults.
func LoadProfile(path string) (*Profile, error) {
	profile := &Profile{
		KeyBits:      DefaultKeyBits,
		ValidityDays: DefaultValidityDays,
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return profile, nil
		}
		return nil, fmt.Errorf("reading profile file: %w", err)
	}
	if err := yaml.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("parsing profile file: %w", err)
	}
	if profile.KeyBits == 0 {
		profile.KeyBits = DefaultKeyBits
	}
	if profile.ValidityDays == 0 {
		profile.ValidityDays = DefaultValidityDays
	}
	return profile, nil
}
