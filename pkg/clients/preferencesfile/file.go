package preferencesfile

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/weekly-roster/pkg/core/model"
)

// File reads employee preferences from a YAML document. Two layouts are
// accepted under the top-level "employees" key, a mapping keyed by employee ID:
//
//	employees:
//	  Employee A:
//	    Monday: [morning, afternoon, evening]
//
// or a list of entries:
//
//	employees:
//	  - id: Employee A
//	    preferences:
//	      Monday: [morning, afternoon, evening]
//
// Document order is registration order in both layouts.
type File struct {
	path   string
	logger *zap.Logger
}

// entry is one employee in the list layout
type entry struct {
	ID          string              `yaml:"id" validate:"required"`
	Preferences map[string][]string `yaml:"preferences" validate:"required,min=1"`
}

var validate = validator.New()

// NewFile creates a preference source reading the YAML file at path
func NewFile(path string, logger *zap.Logger) *File {
	return &File{
		path:   path,
		logger: logger,
	}
}

// ListPreferences reads and parses the file
func (f *File) ListPreferences(ctx context.Context) ([]model.EmployeePreferences, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences file: %w", err)
	}

	preferences, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse preferences file %s: %w", f.path, err)
	}

	f.logger.Debug("Parsed preferences file",
		zap.String("path", f.path),
		zap.Int("employees", len(preferences)))

	return preferences, nil
}

// Parse decodes a preferences document, keeping employees in document order
func Parse(data []byte) ([]model.EmployeePreferences, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected a mapping with an employees key")
	}

	employees := findKey(doc.Content[0], "employees")
	if employees == nil {
		return nil, fmt.Errorf("missing employees key")
	}

	switch employees.Kind {
	case yaml.MappingNode:
		return parseMapping(employees)
	case yaml.SequenceNode:
		return parseSequence(employees)
	default:
		return nil, fmt.Errorf("line %d: employees must be a mapping or a list", employees.Line)
	}
}

// parseMapping handles the "employee ID: preferences" layout
func parseMapping(node *yaml.Node) ([]model.EmployeePreferences, error) {
	preferences := make([]model.EmployeePreferences, 0, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		e := entry{ID: keyNode.Value}
		if err := valueNode.Decode(&e.Preferences); err != nil {
			return nil, fmt.Errorf("line %d: employee %q: %w", valueNode.Line, e.ID, err)
		}

		parsed, err := e.toModel()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", keyNode.Line, err)
		}
		preferences = append(preferences, parsed)
	}

	return preferences, nil
}

// parseSequence handles the list of {id, preferences} layout
func parseSequence(node *yaml.Node) ([]model.EmployeePreferences, error) {
	preferences := make([]model.EmployeePreferences, 0, len(node.Content))

	for _, item := range node.Content {
		var e entry
		if err := item.Decode(&e); err != nil {
			return nil, fmt.Errorf("line %d: %w", item.Line, err)
		}

		parsed, err := e.toModel()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", item.Line, err)
		}
		preferences = append(preferences, parsed)
	}

	return preferences, nil
}

// toModel validates the entry and converts day and shift names
func (e entry) toModel() (model.EmployeePreferences, error) {
	if err := validate.Struct(e); err != nil {
		return model.EmployeePreferences{}, fmt.Errorf("employee %q: %w", e.ID, err)
	}

	prefs := make(model.Preferences, len(e.Preferences))
	for dayName, shiftNames := range e.Preferences {
		day, err := model.ParseDay(dayName)
		if err != nil {
			return model.EmployeePreferences{}, fmt.Errorf("employee %q: %w", e.ID, err)
		}

		ranking := make(model.Ranking, 0, len(shiftNames))
		for _, shiftName := range shiftNames {
			shift, err := model.ParseShiftPeriod(shiftName)
			if err != nil {
				return model.EmployeePreferences{}, fmt.Errorf("employee %q %s: %w", e.ID, day, err)
			}
			ranking = append(ranking, shift)
		}
		prefs[day] = ranking
	}

	return model.EmployeePreferences{
		EmployeeID:  e.ID,
		Preferences: prefs,
	}, nil
}

func findKey(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}
