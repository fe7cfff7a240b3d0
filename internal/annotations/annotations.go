// Package annotations interprets the comment directives attached to type and
// method declarations.
package annotations

import (
	"msgtools/internal/model"
	"msgtools/internal/provider"
)

// Annotations reads message annotations from raw directive lines.
type Annotations interface {
	// Name identifies the dialect.
	Name() string
	// Kind reports whether decl is annotated as a bundle or a logger.
	Kind(decl *model.TypeDeclaration) model.Kind
	// Message returns the message template of m, if m is annotated.
	Message(m model.Method) (string, bool)
	// Enclosing returns the simple name of the type decl is nested in.
	Enclosing(decl *model.TypeDeclaration) (string, bool)
}

// Register adds both dialects to r. The directive dialect comes first and is
// therefore the default.
func Register(r *provider.Registry) {
	r.Register(provider.Annotations, DirectiveName, func() (any, error) { return Directive{}, nil })
	r.Register(provider.Annotations, MarkerName, func() (any, error) { return Marker{}, nil })
}

const (
	tagBundle    = "bundle"
	tagLogger    = "logger"
	tagMessage   = "message"
	tagEnclosing = "enclosing"
)

// lookup scans lines with match and returns the first value found for tag.
func lookup(lines []string, tag string, match func(line, tag string) (string, bool)) (string, bool) {
	for _, line := range lines {
		if v, ok := match(line, tag); ok {
			return v, true
		}
	}
	return "", false
}

func kindOf(lines []string, match func(line, tag string) (string, bool)) model.Kind {
	if _, ok := lookup(lines, tagBundle, match); ok {
		return model.KindBundle
	}
	if _, ok := lookup(lines, tagLogger, match); ok {
		return model.KindLogger
	}
	return model.KindNone
}
