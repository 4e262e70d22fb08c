package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Tables []yamlTable `yaml:"tables"`
}

type yamlTable struct {
	Name          string       `yaml:"name"`
	Description   string       `yaml:"description"`
	Fields        []yamlField  `yaml:"fields"`
	FilterBy      []yamlFilter `yaml:"filter_by"`
	SortBy        []yamlSort   `yaml:"sort_by"`
	Relationships []string     `yaml:"relationships"`
	SearchFields  []string     `yaml:"search_fields"`
}

type yamlField struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Required bool   `yaml:"required"`
	Primary  bool   `yaml:"primary"`
}

type yamlFilter struct {
	Field       string       `yaml:"field"`
	Label       string       `yaml:"label"`
	MultiSelect bool         `yaml:"multi_select"`
	Choices     []yamlChoice `yaml:"choices"`
}

type yamlChoice struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

type yamlSort struct {
	Field     string `yaml:"field"`
	Label     string `yaml:"label"`
	Direction string `yaml:"direction"`
}

// LoadFile merges table definitions from a YAML file into the registry.
// Tables already registered are replaced wholesale; deployments use this to
// extend filter/sort catalogs without recompiling.
func (r *Registry) LoadFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading registry file: %w", err)
	}

	var yf yamlFile
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return fmt.Errorf("unmarshalling registry YAML: %w", err)
	}

	for _, t := range yf.Tables {
		meta := TableMeta{
			Name:          t.Name,
			Description:   t.Description,
			Relationships: t.Relationships,
			SearchFields:  t.SearchFields,
		}

		for _, f := range t.Fields {
			kind, err := ParseKind(f.Kind)
			if err != nil {
				return fmt.Errorf("table %q, field %q: %w", t.Name, f.Name, err)
			}

			meta.Fields = append(meta.Fields, Field{
				Name:       f.Name,
				Kind:       kind,
				Required:   f.Required,
				PrimaryKey: f.Primary,
			})
		}

		for _, fo := range t.FilterBy {
			opt := FilterOption{
				Field:       fo.Field,
				Label:       fo.Label,
				MultiSelect: fo.MultiSelect,
			}
			for _, c := range fo.Choices {
				opt.Choices = append(opt.Choices, Choice{Value: c.Value, Label: c.Label})
			}

			meta.FilterOptions = append(meta.FilterOptions, opt)
		}

		for _, so := range t.SortBy {
			direction := so.Direction
			if direction == "" {
				direction = "asc"
			}

			meta.SortOptions = append(meta.SortOptions, SortOption{
				Field:     so.Field,
				Label:     so.Label,
				Direction: direction,
			})
		}

		r.Register(meta)
	}

	return nil
}
