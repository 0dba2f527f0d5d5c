// Package localization holds the message-template bundle that
// Settings.localizationTemplates (spec.md §6) is populated from: a table
// from [inspecterr.Code] to a Go template string, loaded from an embedded
// YAML document so a host can override or extend it without touching Go
// code, the way cue/errors treats message formatting as data rather than
// hardcoded string concatenation.
package localization

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/flowlang/inspect/inspecterr"
)

//go:embed templates.yaml
var defaultTemplatesYAML []byte

// Bundle is a compiled set of per-Code message templates.
type Bundle struct {
	templates map[inspecterr.Code]*template.Template
}

// Default parses the embedded default template bundle. It panics on
// failure since the embedded document is a build-time constant, not user
// input — a parse failure here is a programming error caught at compile
// time by any test that calls Default.
func Default() *Bundle {
	b, err := Parse(defaultTemplatesYAML)
	if err != nil {
		panic(fmt.Sprintf("localization: embedded default bundle failed to parse: %v", err))
	}
	return b
}

// Parse compiles a YAML document of the same shape as templates.yaml (a
// map from code name to Go template string) into a Bundle. A host
// supplies raw to override or extend the default bundle.
func Parse(raw []byte) (*Bundle, error) {
	var named map[string]string
	if err := yaml.Unmarshal(raw, &named); err != nil {
		return nil, fmt.Errorf("localization: parsing template bundle: %w", err)
	}

	codesByName := map[string]inspecterr.Code{
		inspecterr.InvariantViolation.String(): inspecterr.InvariantViolation,
		inspecterr.MalformedInput.String():     inspecterr.MalformedInput,
		inspecterr.UnknownOperator.String():    inspecterr.UnknownOperator,
		inspecterr.UnknownFormat.String():      inspecterr.UnknownFormat,
	}

	templates := make(map[inspecterr.Code]*template.Template, len(named))
	for name, body := range named {
		code, ok := codesByName[name]
		if !ok {
			return nil, fmt.Errorf("localization: unrecognized code name %q", name)
		}
		tmpl, err := template.New(name).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("localization: compiling template for %q: %w", name, err)
		}
		templates[code] = tmpl
	}
	return &Bundle{templates: templates}, nil
}

// Render executes the template registered for err.Code against err,
// falling back to err.Error() when the bundle has no entry for that code
// (a host-supplied bundle is allowed to be partial) or when execution
// itself fails.
func (b *Bundle) Render(err *inspecterr.Error) string {
	if b == nil || err == nil {
		return ""
	}
	tmpl, ok := b.templates[err.Code]
	if !ok {
		return err.Error()
	}
	var buf strings.Builder
	if execErr := tmpl.Execute(&buf, err); execErr != nil {
		return err.Error()
	}
	return buf.String()
}
