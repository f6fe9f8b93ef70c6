package config

import (
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Globfile represents the structure of the globfind.yaml configuration file.
type Globfile struct {
	Cwd      string   `yaml:"cwd"`
	Ignore   Patterns `yaml:"ignore"`
	Dot      bool     `yaml:"dot"`
	NoDir    bool     `yaml:"nodir"`
	NoFollow bool     `yaml:"nofollow"`
	NoCase   bool     `yaml:"nocase"`
}

// Patterns holds one or more glob patterns. In YAML it is written either as
// a single string or as a list. Nil means the key was absent.
type Patterns []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *Patterns) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var pattern string
		if err := node.Decode(&pattern); err != nil {
			return err
		}
		*p = Patterns{pattern}
		return nil
	case yaml.SequenceNode:
		list := []string{}
		if err := node.Decode(&list); err != nil {
			return err
		}
		*p = list
		return nil
	default:
		return zerr.With(zerr.New("ignore must be a pattern or a list of patterns"), "line", node.Line)
	}
}
