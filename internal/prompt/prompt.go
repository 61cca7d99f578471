// Package prompt loads and renders the prompts sent to the language model.
// The built-in prompts are embedded from prompts.yaml; a YAML file with the
// same keys can replace either of them.
package prompt

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPrompts []byte

// ErrInvalidTemplate is returned when a prompt file is unreadable or a
// template does not parse.
var ErrInvalidTemplate = errors.New("invalid prompt template")

// file mirrors the YAML layout of a prompts file.
type file struct {
	Theme   string `yaml:"theme"`
	Article string `yaml:"article"`
}

// Templates holds the parsed theme and article prompts.
type Templates struct {
	theme   *template.Template
	article *template.Template
}

type articleData struct {
	Theme string
}

// Default returns the built-in prompts.
func Default() (*Templates, error) {
	return parse(defaultPrompts, nil)
}

// Load returns the built-in prompts with any prompt defined in the YAML file
// at path taking their place. An empty path yields Default().
func Load(path string) (*Templates, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrInvalidTemplate, path, err)
	}

	var base file
	if err := yaml.Unmarshal(defaultPrompts, &base); err != nil {
		return nil, fmt.Errorf("%w: built-in prompts: %v", ErrInvalidTemplate, err)
	}
	return parse(data, &base)
}

func parse(data []byte, base *file) (*Templates, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	if base != nil {
		if strings.TrimSpace(f.Theme) == "" {
			f.Theme = base.Theme
		}
		if strings.TrimSpace(f.Article) == "" {
			f.Article = base.Article
		}
	}

	if strings.TrimSpace(f.Theme) == "" || strings.TrimSpace(f.Article) == "" {
		return nil, fmt.Errorf("%w: both theme and article prompts are required", ErrInvalidTemplate)
	}

	theme, err := template.New("theme").Option("missingkey=error").Parse(f.Theme)
	if err != nil {
		return nil, fmt.Errorf("%w: theme: %v", ErrInvalidTemplate, err)
	}

	article, err := template.New("article").Option("missingkey=error").Parse(f.Article)
	if err != nil {
		return nil, fmt.Errorf("%w: article: %v", ErrInvalidTemplate, err)
	}

	return &Templates{theme: theme, article: article}, nil
}

// Theme renders the prompt asking for a theme of the day.
func (t *Templates) Theme() (string, error) {
	return execute(t.theme, nil)
}

// Article renders the prompt asking for one article on theme.
func (t *Templates) Article(theme string) (string, error) {
	return execute(t.article, articleData{Theme: theme})
}

func execute(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s prompt template: %w", tmpl.Name(), err)
	}
	return strings.TrimSpace(buf.String()), nil
}
