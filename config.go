package uml

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// EngineConfig promotes the global mutables §9 calls out (console,
// random, internal_transitions_trigger_completion, the qualified-name
// separator) into one struct injected at model-construction time,
// rather than package-level variables.
type EngineConfig struct {
	Logger                                Logger `yaml:"-"`
	RNG                                   RNG    `yaml:"-"`
	InternalTransitionsTriggerCompletion  bool   `yaml:"internalTransitionsTriggerCompletion"`
	Separator                             string `yaml:"separator"`
}

// engineConfigYAML is the YAML-serialisable shadow of EngineConfig: the
// Logger and RNG injection points are Go closures/interfaces and have
// no wire representation, so only the plain-data fields round-trip.
type engineConfigYAML struct {
	InternalTransitionsTriggerCompletion bool   `yaml:"internalTransitionsTriggerCompletion"`
	Separator                            string `yaml:"separator"`
}

// NewEngineConfig returns the default configuration: a stderr logger,
// math/rand-backed RNG, completion-on-internal-transitions off, and "."
// as the qualified-name separator.
func NewEngineConfig() *EngineConfig {
	return &EngineConfig{
		Logger:    NewDefaultLogger("[uml] "),
		RNG:       DefaultRNG,
		Separator: ".",
	}
}

// DumpYAML serialises the plain-data portion of the configuration.
func (c *EngineConfig) DumpYAML() ([]byte, error) {
	return yaml.Marshal(engineConfigYAML{
		InternalTransitionsTriggerCompletion: c.InternalTransitionsTriggerCompletion,
		Separator:                            c.Separator,
	})
}

// LoadEngineConfigYAML reads the plain-data portion of a configuration
// from r, layering it onto the defaults (Logger and RNG are never
// touched, since they have no YAML representation).
func LoadEngineConfigYAML(r io.Reader) (*EngineConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("uml: reading engine config: %w", err)
	}
	var shadow engineConfigYAML
	if err := yaml.Unmarshal(data, &shadow); err != nil {
		return nil, fmt.Errorf("uml: parsing engine config: %w", err)
	}
	cfg := NewEngineConfig()
	cfg.InternalTransitionsTriggerCompletion = shadow.InternalTransitionsTriggerCompletion
	if shadow.Separator != "" {
		cfg.Separator = shadow.Separator
	}
	return cfg, nil
}
