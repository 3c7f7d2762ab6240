package scenario

import (
	"context"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load reads a scenario from a YAML file and validates it.
func Load(_ context.Context, path string) (Scenario, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Scenario{}, fmt.Errorf("%w: %s: %w", ErrLoadScenario, path, err)
	}

	var s Scenario
	if err := k.UnmarshalWithConf("", &s, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return Scenario{}, fmt.Errorf("%w: %s: %w", ErrLoadScenario, path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}
