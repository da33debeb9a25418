// Package curriculum imports a course catalogue described in YAML.
package curriculum

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Catalogue struct {
	Categories []Category `yaml:"categories" validate:"dive"`
	// Courses without a category.
	Courses []Course `yaml:"courses" validate:"dive"`
}

type Category struct {
	Name        string   `yaml:"name" validate:"required,max=100"`
	Description string   `yaml:"description"`
	Image       string   `yaml:"image"`
	Courses     []Course `yaml:"courses" validate:"dive"`
}

type Course struct {
	Title       string   `yaml:"title" validate:"required,max=255"`
	Description string   `yaml:"description"`
	Level       string   `yaml:"level" validate:"omitempty,oneof=beginner intermediate advanced"`
	Duration    string   `yaml:"duration"`
	Thumbnail   string   `yaml:"thumbnail"`
	Featured    bool     `yaml:"featured"`
	Modules     []Module `yaml:"modules" validate:"dive"`
}

// Module holds direct lessons and quizzes plus submodules. SubModules nested below a
// submodule are not supported.
type Module struct {
	Title       string   `yaml:"title" validate:"required,max=255"`
	Description string   `yaml:"description"`
	Lessons     []Lesson `yaml:"lessons" validate:"dive"`
	Quizzes     []Quiz   `yaml:"quizzes" validate:"dive"`
	SubModules  []Module `yaml:"submodules" validate:"dive"`
}

type Lesson struct {
	Title         string  `yaml:"title" validate:"required,max=255"`
	Description   string  `yaml:"description"`
	Content       string  `yaml:"content"`
	VideoURL      string  `yaml:"videoUrl"`
	VideoDuration float64 `yaml:"videoDuration" validate:"min=0"`
}

type Quiz struct {
	Title       string     `yaml:"title" validate:"required,max=255"`
	Description string     `yaml:"description"`
	Questions   []Question `yaml:"questions" validate:"dive"`
}

type Question struct {
	Question      string   `yaml:"question" validate:"required"`
	Options       []string `yaml:"options" validate:"min=2"`
	CorrectAnswer int      `yaml:"correctAnswer" validate:"min=0"`
}

var validate = validator.New()

func Parse(data []byte) (*Catalogue, error) {
	var c Catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing curriculum: %w", err)
	}
	if err := validate.Struct(&c); err != nil {
		return nil, fmt.Errorf("invalid curriculum: %w", err)
	}
	for _, cat := range c.Categories {
		for _, course := range cat.Courses {
			if err := course.checkNesting(); err != nil {
				return nil, err
			}
		}
	}
	for _, course := range c.Courses {
		if err := course.checkNesting(); err != nil {
			return nil, err
		}
	}
	return &c, nil
}

func Load(path string) (*Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func (c Course) checkNesting() error {
	for _, m := range c.Modules {
		for _, s := range m.SubModules {
			if len(s.SubModules) > 0 {
				return fmt.Errorf("course %q: submodule %q cannot contain submodules", c.Title, s.Title)
			}
		}
	}
	return nil
}

// Stats counts what an import created.
type Stats struct {
	Categories int
	Courses    int
	Modules    int
	SubModules int
	Lessons    int
	Quizzes    int
}
