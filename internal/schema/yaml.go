package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sagproto/sag/internal/ast"
)

// argumentSpecFile is the on-disk shape of one ArgumentSpec entry.
type argumentSpecFile struct {
	Name          string   `yaml:"name"`
	Type          string   `yaml:"type"`
	Required      bool     `yaml:"required"`
	Description   string   `yaml:"description"`
	AllowedValues []string `yaml:"allowed_values"`
	Pattern       string   `yaml:"pattern"`
	MinValue      *float64 `yaml:"min_value"`
	MaxValue      *float64 `yaml:"max_value"`
}

// verbSchemaFile is the on-disk shape of one verb's profile.
type verbSchemaFile struct {
	Verb           string             `yaml:"verb"`
	Positional     []argumentSpecFile `yaml:"positional"`
	Named          []argumentSpecFile `yaml:"named"`
	AllowExtraArgs bool               `yaml:"allow_extra_args"`
}

// verbSchemaProfile is the top-level document: a list of verb profiles.
type verbSchemaProfile struct {
	Verbs []verbSchemaFile `yaml:"verbs"`
}

func parseArgType(s string) (ast.ArgType, error) {
	switch s {
	case "STRING":
		return ast.TypeString, nil
	case "INTEGER":
		return ast.TypeInteger, nil
	case "FLOAT":
		return ast.TypeFloat, nil
	case "BOOLEAN":
		return ast.TypeBoolean, nil
	case "LIST":
		return ast.TypeList, nil
	case "OBJECT":
		return ast.TypeObject, nil
	case "ANY", "":
		return ast.TypeAny, nil
	default:
		return 0, fmt.Errorf("unknown argument type %q", s)
	}
}

func toArgumentSpec(f argumentSpecFile) (ast.ArgumentSpec, error) {
	t, err := parseArgType(f.Type)
	if err != nil {
		return ast.ArgumentSpec{}, err
	}
	var allowed []ast.Value
	for _, v := range f.AllowedValues {
		allowed = append(allowed, ast.String(v))
	}
	return ast.NewArgumentSpec(ast.ArgumentSpec{
		Name:          f.Name,
		Type:          t,
		Required:      f.Required,
		Description:   f.Description,
		AllowedValues: allowed,
		Pattern:       f.Pattern,
		MinValue:      f.MinValue,
		MaxValue:      f.MaxValue,
	})
}

// LoadVerbSchemasYAML reads a YAML verb-profile document from path and
// registers every verb it defines into reg.
func LoadVerbSchemasYAML(path string, reg *Registry) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading verb schema profile %s: %w", path, err)
	}
	var doc verbSchemaProfile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parsing verb schema profile %s: %w", path, err)
	}
	for _, vf := range doc.Verbs {
		positional := make([]ast.ArgumentSpec, 0, len(vf.Positional))
		for _, pf := range vf.Positional {
			spec, err := toArgumentSpec(pf)
			if err != nil {
				return fmt.Errorf("verb %s positional %s: %w", vf.Verb, pf.Name, err)
			}
			positional = append(positional, spec)
		}
		named := ast.NewNamedSpecs()
		for _, nf := range vf.Named {
			spec, err := toArgumentSpec(nf)
			if err != nil {
				return fmt.Errorf("verb %s named %s: %w", vf.Verb, nf.Name, err)
			}
			named.Set(nf.Name, spec)
		}
		reg.Register(ast.VerbSchema{
			Verb:           vf.Verb,
			Positional:     positional,
			Named:          named,
			AllowExtraArgs: vf.AllowExtraArgs,
		})
	}
	return nil
}
