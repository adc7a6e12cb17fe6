// Package prompts provides jinja-style prompt templates.
package prompts

import (
	"github.com/cockroachdb/errors"
	"github.com/nikolalohinski/gonja"
)

// FormatPrompter renders a prompt from template variables.
type FormatPrompter interface {
	Format(values map[string]any) (string, error)
}

// Template is a FormatPrompter on a parsed gonja template.
type Template struct {
	tpl *gonja.Template
}

var _ FormatPrompter = (*Template)(nil)

// NewTemplate parses a jinja-style template string.
func NewTemplate(text string) (*Template, error) {
	tpl, err := gonja.FromString(text)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to parse template")
	}
	return &Template{tpl: tpl}, nil
}

func (t *Template) Format(values map[string]any) (string, error) {
	out, err := t.tpl.Execute(gonja.Context(values))
	if err != nil {
		return "", errors.WithMessage(err, "failed to render template")
	}
	return out, nil
}
