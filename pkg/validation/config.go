package validation

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseConfig parses a YAML validation config. Each attribute maps to a
// single rule-spec mapping or to a sequence of them:
//
//	email:
//	  required: true
//	  format: email
//	password:
//	  - minLength: 8
//	    message: short
//	  - maxLength: 64
//
// Function-valued expectations (fn, collection items) are not
// expressible in YAML and must be attached to the Config in code.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse validation config: %w", err)
	}
	return cfg, nil
}

// UnmarshalYAML normalizes the two accepted rule-set shapes: a single
// rule-spec mapping becomes a one-element set, a sequence is taken as-is.
func (rs *RuleSet) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		var spec RuleSpec
		if err := node.Decode(&spec); err != nil {
			return err
		}
		*rs = RuleSet{spec}
		return nil
	case yaml.SequenceNode:
		var specs []RuleSpec
		if err := node.Decode(&specs); err != nil {
			return err
		}
		*rs = RuleSet(specs)
		return nil
	default:
		return fmt.Errorf("line %d: rule set must be a mapping or a sequence", node.Line)
	}
}
