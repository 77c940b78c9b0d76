// Package seed bootstraps an empty document from YAML question-set files,
// so a fresh install has something to answer on day one.
package seed

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/daytrack/models"
)

// QuestionSet is one YAML file: a named group of question definitions.
type QuestionSet struct {
	Name      string     `yaml:"name"`
	Questions []Question `yaml:"questions"`
}

// Question is one trackable definition.
type Question struct {
	Question string   `yaml:"question"`
	Type     string   `yaml:"type"`
	Colour   string   `yaml:"colour,omitempty"`
	Icons    []string `yaml:"icons,omitempty"`
	Min      int      `yaml:"min,omitempty"`
	Max      int      `yaml:"max,omitempty"`
}

// Load reads all question sets from YAML files in a directory.
func Load(dir string) ([]QuestionSet, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("seed directory not found: %s", dir)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("error finding YAML files: %w", err)
	}

	var sets []QuestionSet
	for _, file := range files {
		set, err := loadSet(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}
		sets = append(sets, *set)
	}
	return sets, nil
}

func loadSet(path string) (*QuestionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var set QuestionSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, err
	}
	return &set, nil
}

// Apply adds the question sets' trackables to the document. Intended for
// empty documents; existing trackables are left alone and duplicates by
// question text are skipped.
func Apply(u *models.UserData, sets []QuestionSet) error {
	existing := map[string]bool{}
	for _, t := range u.Trackables {
		existing[t.Question] = true
	}

	for _, set := range sets {
		for _, q := range set.Questions {
			if q.Question == "" || existing[q.Question] {
				continue
			}

			kind, err := models.ParseKind(q.Type)
			if err != nil {
				return fmt.Errorf("question %q: %w", q.Question, err)
			}

			t := u.AddTrackable()
			if err := u.SetQuestion(t.ID, q.Question); err != nil {
				return err
			}
			if q.Colour != "" {
				colour, err := models.ParseColour(q.Colour)
				if err != nil {
					return fmt.Errorf("question %q: %w", q.Question, err)
				}
				if err := u.SetTrackableColour(t.ID, colour); err != nil {
					return err
				}
			}

			params := models.ConvertParams{Icons: q.Icons, ScaleMin: q.Min, ScaleMax: q.Max}
			if kind == models.KindScale && q.Min == 0 && q.Max == 0 {
				params.ScaleMin, params.ScaleMax = 1, 5
			}
			if err := u.ConvertTrackable(t.ID, kind, params); err != nil {
				return fmt.Errorf("question %q: %w", q.Question, err)
			}
			existing[q.Question] = true
		}
	}
	return nil
}
