// Package catalog is the built-in exercise library. Favorite and completed
// exercise ids in the exercise slice refer to entries here.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed exercises.yaml
var exercisesYAML []byte

var ErrExerciseNotFound = errors.New("exercise not found")

type Exercise struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	Description  string   `yaml:"description" json:"description"`
	MuscleGroups []string `yaml:"muscleGroups" json:"muscleGroups"`
	Equipment    string   `yaml:"equipment" json:"equipment"`
	Difficulty   string   `yaml:"difficulty" json:"difficulty"`
	Type         string   `yaml:"type" json:"type"`
	Instructions []string `yaml:"instructions" json:"instructions"`
	Tips         []string `yaml:"tips" json:"tips"`
}

// Filter narrows Search. Empty fields match everything; values within one
// field are alternatives, fields combine with AND.
type Filter struct {
	Query        string
	MuscleGroups []string
	Equipment    []string
	Difficulty   []string
	Types        []string
	IDs          []string
}

type Library struct {
	exercises []Exercise
	byID      map[string]int
}

func NewEmbeddedLibrary() (*Library, error) {
	return ParseLibrary(exercisesYAML)
}

func ParseLibrary(data []byte) (*Library, error) {
	var document struct {
		Exercises []Exercise `yaml:"exercises"`
	}
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("decode exercise catalog: %w", err)
	}

	library := &Library{
		exercises: document.Exercises,
		byID:      make(map[string]int, len(document.Exercises)),
	}
	for index, exercise := range document.Exercises {
		if strings.TrimSpace(exercise.ID) == "" {
			return nil, fmt.Errorf("exercise %d has no id", index)
		}
		if _, exists := library.byID[exercise.ID]; exists {
			return nil, fmt.Errorf("duplicate exercise id %s", exercise.ID)
		}
		library.byID[exercise.ID] = index
	}
	return library, nil
}

func (library *Library) Has(id string) bool {
	_, ok := library.byID[id]
	return ok
}

func (library *Library) Get(id string) (Exercise, error) {
	index, ok := library.byID[id]
	if !ok {
		return Exercise{}, fmt.Errorf("%w: %s", ErrExerciseNotFound, id)
	}
	return library.exercises[index], nil
}

func (library *Library) All() []Exercise {
	return slices.Clone(library.exercises)
}

// Search returns matches in catalog order. Query matches name, description
// or a muscle group, case-insensitively.
func (library *Library) Search(filter Filter) []Exercise {
	query := strings.ToLower(strings.TrimSpace(filter.Query))
	matches := make([]Exercise, 0, len(library.exercises))
	for _, exercise := range library.exercises {
		if query != "" && !matchesQuery(exercise, query) {
			continue
		}
		if len(filter.MuscleGroups) > 0 && !slices.ContainsFunc(exercise.MuscleGroups, func(group string) bool {
			return containsFold(filter.MuscleGroups, group)
		}) {
			continue
		}
		if len(filter.Equipment) > 0 && !containsFold(filter.Equipment, exercise.Equipment) {
			continue
		}
		if len(filter.Difficulty) > 0 && !containsFold(filter.Difficulty, exercise.Difficulty) {
			continue
		}
		if len(filter.Types) > 0 && !containsFold(filter.Types, exercise.Type) {
			continue
		}
		if filter.IDs != nil && !slices.Contains(filter.IDs, exercise.ID) {
			continue
		}
		matches = append(matches, exercise)
	}
	return matches
}

func matchesQuery(exercise Exercise, query string) bool {
	if strings.Contains(strings.ToLower(exercise.Name), query) ||
		strings.Contains(strings.ToLower(exercise.Description), query) {
		return true
	}
	return slices.ContainsFunc(exercise.MuscleGroups, func(group string) bool {
		return strings.Contains(strings.ToLower(group), query)
	})
}

func containsFold(values []string, target string) bool {
	return slices.ContainsFunc(values, func(value string) bool {
		return strings.EqualFold(strings.TrimSpace(value), target)
	})
}
