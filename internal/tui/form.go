package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/lasatanica/backoffice/internal/surface"
)

// requiredMessage is shown when a required field is left blank
const requiredMessage = "Este campo es obligatorio"

// buildForm turns a surface form into a huh form. Each field writes into
// the returned map under its key; prefill overrides the declared values.
func buildForm(spec *surface.Form, prefill map[string]string, width int) (*huh.Form, map[string]*string) {
	values := make(map[string]*string, len(spec.Fields))
	fields := make([]huh.Field, 0, len(spec.Fields))

	for _, f := range spec.Fields {
		value := f.Value
		if v, ok := prefill[f.Key]; ok {
			value = v
		}
		ptr := &value
		values[f.Key] = ptr
		fields = append(fields, buildField(f, ptr))
	}

	group := huh.NewGroup(fields...)
	if spec.Title != "" {
		group = group.Title(spec.Title)
	}
	form := huh.NewForm(group).WithShowHelp(true)
	if width > 0 {
		form = form.WithWidth(width)
	}
	return form, values
}

func buildField(f surface.FormField, value *string) huh.Field {
	if len(f.Options) > 0 {
		options := make([]huh.Option[string], len(f.Options))
		for i, o := range f.Options {
			options[i] = huh.NewOption(o.Label, o.Value)
		}
		return huh.NewSelect[string]().
			Key(f.Key).
			Title(f.Label).
			Options(options...).
			Value(value).
			Validate(fieldValidator(f))
	}

	input := huh.NewInput().
		Key(f.Key).
		Title(f.Label).
		Placeholder(f.Placeholder).
		Value(value).
		Validate(fieldValidator(f))
	if f.Secret {
		input = input.EchoMode(huh.EchoModePassword)
	}
	return input
}

// fieldValidator combines the required check with the field's own check
func fieldValidator(f surface.FormField) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			if f.Required {
				return validationError(requiredMessage)
			}
			return nil
		}
		if f.Validate != nil {
			return f.Validate(s)
		}
		return nil
	}
}

type validationError string

func (e validationError) Error() string { return string(e) }
