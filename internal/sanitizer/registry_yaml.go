package sanitizer

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// agentRegistryFile is the on-disk shape of a YAML agent registry:
//
//	agents:
//	  planner:
//	    allowed_destinations: [executor, critic]
//	  executor:
//	    allowed_destinations: [planner]
type agentRegistryFile struct {
	Agents map[string]struct {
		AllowedDestinations []string `yaml:"allowed_destinations"`
	} `yaml:"agents"`
}

// LoadAgentRegistryYAML reads an allow-list configuration from path and
// returns a ready-to-use MapAgentRegistry.
func LoadAgentRegistryYAML(path string) (*MapAgentRegistry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading agent registry %s: %w", path, err)
	}
	var doc agentRegistryFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing agent registry %s: %w", path, err)
	}
	allowed := make(map[string][]string, len(doc.Agents))
	for agent, entry := range doc.Agents {
		allowed[agent] = entry.AllowedDestinations
	}
	return NewMapAgentRegistry(allowed), nil
}
